package domain

import "strconv"

// ArrowTo is the vis-network arrow setting for directed edges
const ArrowTo = "to"

// EdgeStyle is how a renderer paints an edge
type EdgeStyle struct {
	Color  string `json:"color"`
	Width  int    `json:"width"`
	Arrows string `json:"arrows"`
}

// Edge represents a weighted connection between two nodes
type Edge struct {
	ID       string    `json:"id"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Label    string    `json:"label"`
	Capacity float64   `json:"capacity"`
	Style    EdgeStyle `json:"style"`
}

// NewEdge creates an edge with neutral colouring and arrows derived from directed
func NewEdge(id, from, to, label string, capacity float64, directed bool) *Edge {
	style := NeutralEdge
	style.Arrows = ArrowsFor(directed)
	return &Edge{
		ID:       id,
		From:     from,
		To:       to,
		Label:    label,
		Capacity: capacity,
		Style:    style,
	}
}

// ArrowsFor returns the arrow setting every edge carries for a directedness flag
func ArrowsFor(directed bool) string {
	if directed {
		return ArrowTo
	}
	return ""
}

// Connects reports whether e joins u to v. Undirected edges match either orientation.
func (e *Edge) Connects(u, v string, directed bool) bool {
	if e.From == u && e.To == v {
		return true
	}
	return !directed && e.From == v && e.To == u
}

// Touches reports whether nodeID is one of the endpoints
func (e *Edge) Touches(nodeID string) bool {
	return e.From == nodeID || e.To == nodeID
}

// FormatNumber renders a float the way the canvas displays numbers: 2 rather than 2.0
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
