package domain

// Snapshot is the derived view a renderer needs to draw the current session:
// styled nodes and edges plus the interaction state around them.
type Snapshot struct {
	Nodes       []Node   `json:"nodes"`
	Edges       []Edge   `json:"edges"`
	IsDirected  bool     `json:"isDirected"`
	Mode        Mode     `json:"mode"`
	Cursor      string   `json:"cursor"`
	PendingFrom string   `json:"pendingFrom,omitempty"`
	Log         []string `json:"log"`
}

// NewSnapshot creates an empty snapshot in move mode
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Nodes:  make([]Node, 0),
		Edges:  make([]Edge, 0),
		Mode:   ModeMove,
		Cursor: ModeMove.Cursor(),
		Log:    make([]string, 0),
	}
}

// Node returns the node with the given id
func (s *Snapshot) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given id
func (s *Snapshot) Edge(id string) (Edge, bool) {
	for _, e := range s.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}
