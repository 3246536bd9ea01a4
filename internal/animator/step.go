package animator

import "graphstudio/internal/domain"

// StepType is the kind of visual change a step makes
type StepType string

const (
	StepNode      StepType = "node"
	StepEdge      StepType = "edge"
	StepFinalNode StepType = "final_node"
	StepFinalEdge StepType = "final_edge"
	StepGoodEdge  StepType = "good_edge"
	StepMsg       StepType = "msg"
)

// Step is one entry of a playback sequence
type Step struct {
	Type StepType `json:"type"`
	ID   string   `json:"id,omitempty"`
	Text string   `json:"text,omitempty"`
}

// Msg creates a log line step
func Msg(text string) Step {
	return Step{Type: StepMsg, Text: text}
}

// Canvas receives highlight styling
type Canvas interface {
	ResetStyles()
	SetNodeStyle(id string, style domain.NodeStyle) error
	SetEdgeStyle(id string, style domain.EdgeStyle) error
}

// Output receives log lines
type Output interface {
	Append(line string)
	Clear()
}

// EdgeFinder resolves a backend (u, v) pair to an edge
type EdgeFinder interface {
	FindEdge(u, v string) (domain.Edge, bool)
}

func nodeStyleFor(t StepType) (domain.NodeStyle, bool) {
	switch t {
	case StepNode:
		return domain.VisitNode, true
	case StepFinalNode:
		return domain.FinalNode, true
	}
	return domain.NodeStyle{}, false
}

func edgeStyleFor(t StepType) (domain.EdgeStyle, bool) {
	switch t {
	case StepEdge:
		return domain.VisitEdge, true
	case StepFinalEdge:
		return domain.FinalEdge, true
	case StepGoodEdge:
		return domain.GoodEdge, true
	}
	return domain.EdgeStyle{}, false
}
