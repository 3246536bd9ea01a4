package domain

// NodeStyle is the colour pair a renderer paints a node with
type NodeStyle struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// Node represents a vertex placed on the canvas
type Node struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Position *Position `json:"position,omitempty"`
	Style    NodeStyle `json:"style"`
}

// NewNode creates a node with the neutral style at the given position.
// A nil position leaves placement to the layout engine.
func NewNode(id, label string, pos *Position) *Node {
	if label == "" {
		label = id
	}
	return &Node{
		ID:       id,
		Label:    label,
		Position: pos,
		Style:    NeutralNode,
	}
}

// Clone returns a copy that shares no pointers with n
func (n *Node) Clone() Node {
	c := *n
	if n.Position != nil {
		p := *n.Position
		c.Position = &p
	}
	return c
}
