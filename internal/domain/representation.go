package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RepMode names one of the pasted representation formats a graph can be built from
type RepMode string

const (
	RepMatrix   RepMode = "matrix"
	RepAdjList  RepMode = "adjlist"
	RepEdgeList RepMode = "edgelist"
)

// RepModes lists the supported representation formats
var RepModes = []RepMode{RepMatrix, RepAdjList, RepEdgeList}

// ParseRepMode converts a string to RepMode
func ParseRepMode(s string) (RepMode, error) {
	for _, m := range RepModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown representation mode %q", s)
}

// Representations holds the three alternate forms of a graph
type Representations struct {
	Nodes    []string       `json:"nodes"`
	Matrix   [][]float64    `json:"adj_matrix"`
	AdjList  AdjList        `json:"adj_list"`
	EdgeList []WeightedEdge `json:"edge_list"`
}

// AdjEntry is one row of an adjacency list
type AdjEntry struct {
	Node      string
	Neighbors []string
}

// AdjList is an adjacency list that keeps the key order of its JSON object
type AdjList []AdjEntry

// UnmarshalJSON decodes a JSON object of node -> neighbour array, preserving key order
func (a *AdjList) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("adjacency list must be an object")
	}

	out := AdjList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var nbrs []FlexString
		if err := dec.Decode(&nbrs); err != nil {
			return fmt.Errorf("adjacency list %q: %w", key, err)
		}
		entry := AdjEntry{Node: key, Neighbors: make([]string, 0, len(nbrs))}
		for _, n := range nbrs {
			entry.Neighbors = append(entry.Neighbors, string(n))
		}
		out = append(out, entry)
	}
	*a = out
	return nil
}

// MarshalJSON encodes the list back to an ordered JSON object
func (a AdjList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Node)
		if err != nil {
			return nil, err
		}
		nbrs := e.Neighbors
		if nbrs == nil {
			nbrs = []string{}
		}
		val, err := json.Marshal(nbrs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WeightedEdge is an edge-list entry, encoded as [u, v, w]
type WeightedEdge struct {
	From   string
	To     string
	Weight float64
}

// UnmarshalJSON decodes [u, v] or [u, v, w]. A missing weight is 1.
func (w *WeightedEdge) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) < 2 {
		return fmt.Errorf("edge entry needs at least 2 elements, got %d", len(raw))
	}
	var from, to FlexString
	if err := json.Unmarshal(raw[0], &from); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &to); err != nil {
		return err
	}
	weight := FlexNumber(1)
	if len(raw) >= 3 {
		if err := json.Unmarshal(raw[2], &weight); err != nil {
			return err
		}
	}
	*w = WeightedEdge{From: string(from), To: string(to), Weight: float64(weight)}
	return nil
}

// MarshalJSON encodes the edge as [u, v, w]
func (w WeightedEdge) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.From, w.To, w.Weight})
}
