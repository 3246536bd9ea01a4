package animator

import (
	"encoding/json"
	"fmt"
	"strings"

	"graphstudio/internal/backend"
	"graphstudio/internal/domain"
)

// NoEdgesText is logged when an Euler run has nothing to traverse
const NoEdgesText = "No edges to traverse."

func edgeID(f EdgeFinder, u, v string) string {
	if e, ok := f.FindEdge(u, v); ok {
		return e.ID
	}
	return ""
}

// ShortestPathSteps logs the length, then alternates final nodes and edges
// along the path, starting and ending on a node.
func ShortestPathSteps(res *backend.ShortestPathResult, f EdgeFinder) []Step {
	path := res.Nodes()
	steps := []Step{Msg("Shortest path length = " + domain.FormatNumber(res.Length))}
	for i, id := range path {
		steps = append(steps, Step{Type: StepFinalNode, ID: id})
		if i < len(path)-1 {
			steps = append(steps, Step{Type: StepFinalEdge, ID: edgeID(f, id, path[i+1])})
		}
	}
	return steps
}

// TraversalSteps logs a header, visits the first node, then for every tree
// edge highlights the edge and the node it reaches.
func TraversalSteps(method backend.TraversalMethod, source string, res *backend.TraversalResult, f EdgeFinder) []Step {
	steps := []Step{Msg(fmt.Sprintf("%s from %s", strings.ToUpper(string(method)), source))}
	if nodes := res.Nodes(); len(nodes) > 0 {
		steps = append(steps, Step{Type: StepNode, ID: nodes[0]})
	}
	for _, p := range res.PathEdges {
		steps = append(steps,
			Step{Type: StepEdge, ID: edgeID(f, p.From, p.To)},
			Step{Type: StepNode, ID: p.To},
		)
	}
	return steps
}

// MSTSteps logs the edge count and total weight, then marks each tree edge in order
func MSTSteps(algorithm backend.MSTAlgorithm, res *backend.MSTResult, f EdgeFinder) []Step {
	steps := []Step{Msg(fmt.Sprintf("MST (%s) edges=%d, total=%s",
		algorithm, len(res.Edges), domain.FormatNumber(res.Total)))}
	for _, p := range res.Edges {
		steps = append(steps, Step{Type: StepGoodEdge, ID: edgeID(f, p.From, p.To)})
	}
	return steps
}

// MaxFlowSteps logs the flow value, then for every edge carrying flow marks it
// and logs flow/capacity. Edges with zero flow are left out.
func MaxFlowSteps(res *backend.MaxFlowResult, f EdgeFinder) []Step {
	steps := []Step{Msg("MaxFlow = " + domain.FormatNumber(res.MaxFlow))}
	for _, fe := range res.FlowEdges {
		if fe.Flow <= 0 {
			continue
		}
		steps = append(steps,
			Step{Type: StepGoodEdge, ID: edgeID(f, fe.From, fe.To)},
			Msg(fmt.Sprintf("%s->%s: flow=%s/%s", fe.From, fe.To,
				domain.FormatNumber(fe.Flow), domain.FormatNumber(fe.Capacity))),
		)
	}
	return steps
}

// EulerSteps logs the start vertex and odd-degree set, then walks the trail or
// circuit as alternating final edges and nodes.
func EulerSteps(algorithm backend.EulerAlgorithm, res *backend.EulerResult, f EdgeFinder) []Step {
	odd, _ := json.Marshal(res.OddNodes())
	steps := []Step{Msg(fmt.Sprintf("%s start=%s, odd=%s", strings.ToUpper(string(algorithm)), res.Start, odd))}
	if len(res.Edges) == 0 {
		return append(steps, Msg(NoEdgesText))
	}

	steps = append(steps, Step{Type: StepFinalNode, ID: res.Edges[0].From})
	for _, p := range res.Edges {
		steps = append(steps,
			Step{Type: StepFinalEdge, ID: edgeID(f, p.From, p.To)},
			Step{Type: StepFinalNode, ID: p.To},
		)
	}
	return steps
}

// Painting is a one-shot styling applied without delays
type Painting struct {
	Nodes []PaintedNode `json:"nodes"`
	Lines []string      `json:"lines"`
}

// PaintedNode is a node and the style a Painting gives it
type PaintedNode struct {
	ID    string           `json:"id"`
	Style domain.NodeStyle `json:"style"`
}

// BipartitePainting colours the two vertex sets, or reports that the graph is
// not bipartite.
func BipartitePainting(res *backend.BipartiteResult) Painting {
	var p Painting
	if !res.IsBipartite {
		p.Lines = []string{"Graph is not bipartite."}
		return p
	}

	set1, set2 := res.Partitions()
	for _, id := range set1 {
		p.Nodes = append(p.Nodes, PaintedNode{ID: id, Style: domain.PartitionA})
	}
	for _, id := range set2 {
		p.Nodes = append(p.Nodes, PaintedNode{ID: id, Style: domain.PartitionB})
	}
	a, _ := json.Marshal(set1)
	b, _ := json.Marshal(set2)
	p.Lines = []string{fmt.Sprintf("Bipartite: set1=%s, set2=%s", a, b)}
	return p
}
