package backend

import (
	"encoding/json"
	"fmt"

	"graphstudio/internal/domain"
)

// TraversalMethod selects breadth- or depth-first traversal
type TraversalMethod string

const (
	BFS TraversalMethod = "bfs"
	DFS TraversalMethod = "dfs"
)

// MSTAlgorithm selects the spanning tree algorithm
type MSTAlgorithm string

const (
	Kruskal MSTAlgorithm = "kruskal"
	Prim    MSTAlgorithm = "prim"
)

// EulerAlgorithm selects the Euler trail/circuit algorithm
type EulerAlgorithm string

const (
	Fleury     EulerAlgorithm = "fleury"
	Hierholzer EulerAlgorithm = "hierholzer"
)

// ParseTraversalMethod converts a string to TraversalMethod
func ParseTraversalMethod(s string) (TraversalMethod, error) {
	switch m := TraversalMethod(s); m {
	case BFS, DFS:
		return m, nil
	}
	return "", fmt.Errorf("unknown traversal method %q", s)
}

// ParseMSTAlgorithm converts a string to MSTAlgorithm
func ParseMSTAlgorithm(s string) (MSTAlgorithm, error) {
	switch a := MSTAlgorithm(s); a {
	case Kruskal, Prim:
		return a, nil
	}
	return "", fmt.Errorf("unknown MST algorithm %q", s)
}

// ParseEulerAlgorithm converts a string to EulerAlgorithm
func ParseEulerAlgorithm(s string) (EulerAlgorithm, error) {
	switch a := EulerAlgorithm(s); a {
	case Fleury, Hierholzer:
		return a, nil
	}
	return "", fmt.Errorf("unknown Euler algorithm %q", s)
}

// Pair is an edge reference [u, v] as returned by the backend
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// UnmarshalJSON decodes a two element array
func (p *Pair) UnmarshalJSON(b []byte) error {
	var raw []domain.FlexString
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("edge pair needs 2 elements, got %d", len(raw))
	}
	*p = Pair{From: string(raw[0]), To: string(raw[1])}
	return nil
}

// FlowEdge is a max-flow edge [u, v, flow, capacity]
type FlowEdge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Flow     float64 `json:"flow"`
	Capacity float64 `json:"capacity"`
}

// UnmarshalJSON decodes a four element array
func (f *FlowEdge) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("flow edge needs 4 elements, got %d", len(raw))
	}
	var (
		from, to       domain.FlexString
		flow, capacity domain.FlexNumber
	)
	for i, dst := range []any{&from, &to, &flow, &capacity} {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return fmt.Errorf("flow edge element %d: %w", i, err)
		}
	}
	*f = FlowEdge{From: string(from), To: string(to), Flow: float64(flow), Capacity: float64(capacity)}
	return nil
}

// ShortestPathResult is the reply of /api/shortest_path
type ShortestPathResult struct {
	Length float64             `json:"length"`
	Path   []domain.FlexString `json:"path"`
}

// Nodes returns the path as plain ids
func (r *ShortestPathResult) Nodes() []string {
	return plain(r.Path)
}

// TraversalResult is the reply of /api/traversal
type TraversalResult struct {
	PathNodes []domain.FlexString `json:"path_nodes"`
	PathEdges []Pair              `json:"path_edges"`
}

// Nodes returns the visit order as plain ids
func (r *TraversalResult) Nodes() []string {
	return plain(r.PathNodes)
}

// BipartiteResult is the reply of /api/check_bipartite
type BipartiteResult struct {
	IsBipartite bool `json:"is_bipartite"`
	Sets        struct {
		Set1 []domain.FlexString `json:"set1"`
		Set2 []domain.FlexString `json:"set2"`
	} `json:"sets"`
}

// Partitions returns the two vertex sets as plain ids
func (r *BipartiteResult) Partitions() ([]string, []string) {
	return plain(r.Sets.Set1), plain(r.Sets.Set2)
}

// MSTResult is the reply of /api/mst
type MSTResult struct {
	Edges []Pair  `json:"edges"`
	Total float64 `json:"total"`
}

// MaxFlowResult is the reply of /api/maxflow
type MaxFlowResult struct {
	MaxFlow   float64    `json:"maxflow"`
	FlowEdges []FlowEdge `json:"flow_edges"`
}

// EulerResult is the reply of /api/euler_fleury and /api/euler_hierholzer
type EulerResult struct {
	Start string              `json:"start"`
	Odd   []domain.FlexString `json:"odd"`
	Edges []Pair              `json:"edges"`
}

// OddNodes returns the odd-degree vertices as plain ids
func (r *EulerResult) OddNodes() []string {
	return plain(r.Odd)
}

// BuildResult is the reply of /api/build_from_rep
type BuildResult struct {
	Graph *domain.ImportDocument `json:"graph"`
}

func plain(in []domain.FlexString) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
