package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"graphstudio/internal/domain"
)

// ParseRepresentation decodes pasted representation text into the fields sent
// to the backend. Text that is not a JSON object, or whose shape does not fit
// the mode, is rejected before any request is made.
func ParseRepresentation(text string, mode domain.RepMode) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: paste a representation first", ErrMalformedRepresentation)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedRepresentation, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedRepresentation)
	}

	var err error
	switch mode {
	case domain.RepMatrix:
		err = checkMatrix(fields)
	case domain.RepAdjList:
		err = checkAdjList(fields)
	case domain.RepEdgeList:
		err = checkEdgeList(fields)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRepresentation, err)
	}
	return fields, nil
}

func checkMatrix(fields map[string]any) error {
	nodes, ok := fields["nodes"].([]any)
	if !ok {
		return fmt.Errorf("matrix needs a \"nodes\" array")
	}
	rows, ok := fields["adj_matrix"].([]any)
	if !ok {
		return fmt.Errorf("matrix needs an \"adj_matrix\" array")
	}
	if len(rows) != len(nodes) {
		return fmt.Errorf("adj_matrix has %d rows for %d nodes", len(rows), len(nodes))
	}
	for i, r := range rows {
		row, ok := r.([]any)
		if !ok || len(row) != len(nodes) {
			return fmt.Errorf("adj_matrix row %d must have %d entries", i, len(nodes))
		}
		for j, v := range row {
			w, ok := v.(float64)
			if !ok {
				return fmt.Errorf("adj_matrix[%d][%d] is not a number", i, j)
			}
			if i == j && w != 0 {
				return fmt.Errorf("adj_matrix[%d][%d] is a self-loop", i, j)
			}
		}
	}
	return nil
}

func checkAdjList(fields map[string]any) error {
	adj, ok := fields["adj_list"].(map[string]any)
	if !ok {
		return fmt.Errorf("adjacency list needs an \"adj_list\" object")
	}
	for k, v := range adj {
		nbrs, ok := v.([]any)
		if !ok {
			return fmt.Errorf("adj_list[%q] must be an array", k)
		}
		for _, n := range nbrs {
			if sameNode(k, n) {
				return fmt.Errorf("adj_list[%q] lists itself", k)
			}
		}
	}
	return nil
}

func checkEdgeList(fields map[string]any) error {
	if n, present := fields["nodes"]; present {
		if _, ok := n.([]any); !ok {
			return fmt.Errorf("\"nodes\" must be an array")
		}
	}
	edges, ok := fields["edge_list"].([]any)
	if !ok {
		return fmt.Errorf("edge list needs an \"edge_list\" array")
	}
	for i, e := range edges {
		entry, ok := e.([]any)
		if !ok || len(entry) < 2 {
			return fmt.Errorf("edge_list[%d] must be [u, v] or [u, v, w]", i)
		}
		if sameNode(entry[0], entry[1]) {
			return fmt.Errorf("edge_list[%d] is a self-loop", i)
		}
		if len(entry) >= 3 {
			if _, ok := entry[2].(float64); !ok {
				return fmt.Errorf("edge_list[%d] weight is not a number", i)
			}
		}
	}
	return nil
}

// sameNode compares node ids that may arrive as strings or numbers
func sameNode(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// FormatRepresentations renders the three representations as the text shown
// in the output area.
func FormatRepresentations(r *domain.Representations) string {
	var b strings.Builder

	b.WriteString("--- ADJACENCY MATRIX ---\n")
	b.WriteString("Nodes: " + strings.Join(r.Nodes, ", ") + "\n")
	for _, row := range r.Matrix {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = domain.FormatNumber(v)
		}
		b.WriteString("[" + strings.Join(cells, ",") + "]\n")
	}

	b.WriteString("\n--- ADJACENCY LIST ---\n")
	for _, entry := range r.AdjList {
		nbrs := entry.Neighbors
		if nbrs == nil {
			nbrs = []string{}
		}
		encoded, _ := json.Marshal(nbrs)
		fmt.Fprintf(&b, "%s: %s\n", entry.Node, encoded)
	}

	b.WriteString("\n--- EDGE LIST ---\n")
	for _, e := range r.EdgeList {
		fmt.Fprintf(&b, "(%s, %s) - w:%s\n", e.From, e.To, domain.FormatNumber(e.Weight))
	}

	return b.String()
}
