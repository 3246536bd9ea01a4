package store

import (
	"fmt"
	"strconv"
	"sync"

	"graphstudio/internal/domain"
)

// GraphStore holds the current node and edge collections in insertion order
type GraphStore struct {
	mu sync.RWMutex

	nodeOrder []string
	nodes     map[string]*domain.Node
	edgeOrder []string
	edges     map[string]*domain.Edge
	directed  bool
	edgeSeq   int

	pub domain.Publisher
}

// New creates an empty undirected store. A nil publisher discards events.
func New(pub domain.Publisher) *GraphStore {
	if pub == nil {
		pub = domain.Discard
	}
	return &GraphStore{
		nodes: make(map[string]*domain.Node),
		edges: make(map[string]*domain.Edge),
		pub:   pub,
	}
}

// AddNode creates a node. The id must be unused.
func (s *GraphStore) AddNode(id, label string, pos *domain.Position) (domain.Node, error) {
	if id == "" {
		return domain.Node{}, ErrEmptyID
	}

	s.mu.Lock()
	if _, exists := s.nodes[id]; exists {
		s.mu.Unlock()
		return domain.Node{}, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	node := domain.NewNode(id, label, pos)
	s.nodes[id] = node
	s.nodeOrder = append(s.nodeOrder, id)
	out := node.Clone()
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventNodeAdded, Payload: out})
	return out, nil
}

// AddEdge creates an edge with the next generated id. Arrows follow the
// current directedness.
func (s *GraphStore) AddEdge(from, to, label string, capacity float64) (domain.Edge, error) {
	if from == to {
		return domain.Edge{}, fmt.Errorf("%w: %s", ErrSelfLoop, from)
	}

	s.mu.Lock()
	for _, id := range []string{from, to} {
		if _, ok := s.nodes[id]; !ok {
			s.mu.Unlock()
			return domain.Edge{}, fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}
	edge := domain.NewEdge(s.nextEdgeIDLocked(), from, to, label, capacity, s.directed)
	s.edges[edge.ID] = edge
	s.edgeOrder = append(s.edgeOrder, edge.ID)
	out := *edge
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventEdgeAdded, Payload: out})
	return out, nil
}

// nextEdgeIDLocked returns the next unused "e<n>" token. Caller holds mu.
func (s *GraphStore) nextEdgeIDLocked() string {
	for {
		s.edgeSeq++
		id := "e" + strconv.Itoa(s.edgeSeq)
		if _, taken := s.edges[id]; !taken {
			return id
		}
	}
}

// UpdateEdge replaces the display fields of an edge. Endpoints never change.
func (s *GraphStore) UpdateEdge(id, label string, capacity float64) (domain.Edge, error) {
	s.mu.Lock()
	edge, ok := s.edges[id]
	if !ok {
		s.mu.Unlock()
		return domain.Edge{}, fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	edge.Label = label
	edge.Capacity = capacity
	out := *edge
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventEdgeUpdated, Payload: out})
	return out, nil
}

// RemoveEdge deletes a single edge
func (s *GraphStore) RemoveEdge(id string) error {
	s.mu.Lock()
	if _, ok := s.edges[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	s.removeEdgeLocked(id)
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventEdgeRemoved, Payload: map[string]string{"id": id}})
	return nil
}

// RemoveNode deletes a node together with every incident edge and returns the
// ids of the removed edges.
func (s *GraphStore) RemoveNode(id string) ([]string, error) {
	s.mu.Lock()
	if _, ok := s.nodes[id]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	var removed []string
	for _, eid := range s.edgeOrder {
		if s.edges[eid].Touches(id) {
			removed = append(removed, eid)
		}
	}
	for _, eid := range removed {
		s.removeEdgeLocked(eid)
	}
	delete(s.nodes, id)
	s.nodeOrder = without(s.nodeOrder, id)
	s.mu.Unlock()

	s.pub.Publish(domain.Event{
		Type:    domain.EventNodeRemoved,
		Payload: map[string]any{"id": id, "edges": removed},
	})
	return removed, nil
}

func (s *GraphStore) removeEdgeLocked(id string) {
	delete(s.edges, id)
	s.edgeOrder = without(s.edgeOrder, id)
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Node returns a copy of the node with the given id
func (s *GraphStore) Node(id string) (domain.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return domain.Node{}, false
	}
	return n.Clone(), true
}

// Edge returns a copy of the edge with the given id
func (s *GraphStore) Edge(id string) (domain.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.edges[id]
	if !ok {
		return domain.Edge{}, false
	}
	return *e, true
}

// FindEdge returns the first edge, in insertion order, joining u to v.
// On an undirected graph (v, u) matches as well.
func (s *GraphStore) FindEdge(u, v string) (domain.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.edgeOrder {
		if e := s.edges[id]; e.Connects(u, v, s.directed) {
			return *e, true
		}
	}
	return domain.Edge{}, false
}

// Nodes returns copies of all nodes in insertion order
func (s *GraphStore) Nodes() []domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id].Clone())
	}
	return out
}

// Edges returns copies of all edges in insertion order
func (s *GraphStore) Edges() []domain.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Edge, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		out = append(out, *s.edges[id])
	}
	return out
}

// NodeCount returns the number of nodes
func (s *GraphStore) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodeOrder)
}

// Directed reports the session-wide directedness flag
func (s *GraphStore) Directed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directed
}

// SetDirected changes directedness and re-applies arrows to every edge.
// Topology and display fields are untouched.
func (s *GraphStore) SetDirected(directed bool) {
	s.mu.Lock()
	s.directed = directed
	arrows := domain.ArrowsFor(directed)
	for _, e := range s.edges {
		e.Style.Arrows = arrows
	}
	s.mu.Unlock()

	s.pub.Publish(domain.Event{
		Type:    domain.EventDirectedChanged,
		Payload: map[string]any{"isDirected": directed, "arrows": arrows},
	})
}

// SetNodeStyle recolours a node
func (s *GraphStore) SetNodeStyle(id string, style domain.NodeStyle) error {
	s.mu.Lock()
	n, ok := s.nodes[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	n.Style = style
	out := n.Clone()
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventNodeUpdated, Payload: out})
	return nil
}

// SetEdgeStyle recolours an edge. Arrows always follow directedness.
func (s *GraphStore) SetEdgeStyle(id string, style domain.EdgeStyle) error {
	s.mu.Lock()
	e, ok := s.edges[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	style.Arrows = domain.ArrowsFor(s.directed)
	e.Style = style
	out := *e
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventEdgeUpdated, Payload: out})
	return nil
}

// ResetStyles puts every node and edge back on the neutral palette
func (s *GraphStore) ResetStyles() {
	s.mu.Lock()
	edgeStyle := domain.NeutralEdge
	edgeStyle.Arrows = domain.ArrowsFor(s.directed)
	for _, n := range s.nodes {
		n.Style = domain.NeutralNode
	}
	for _, e := range s.edges {
		e.Style = edgeStyle
	}
	s.mu.Unlock()

	s.pub.Publish(domain.Event{
		Type:    domain.EventStylesReset,
		Payload: map[string]any{"node": domain.NeutralNode, "edge": edgeStyle},
	})
}

// Export returns the canonical document for the current graph
func (s *GraphStore) Export() *domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := domain.NewDocument(s.directed)
	for _, id := range s.nodeOrder {
		n := s.nodes[id]
		doc.AddNode(domain.DocNode{ID: n.ID, Label: n.Label})
	}
	for _, id := range s.edgeOrder {
		e := s.edges[id]
		doc.AddEdge(domain.DocEdge{
			ID:       e.ID,
			From:     e.From,
			To:       e.To,
			Label:    e.Label,
			Capacity: e.Capacity,
		})
	}
	return doc
}

// Replace swaps the whole graph for doc. The document is validated first;
// on error the store is left untouched.
func (s *GraphStore) Replace(doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	nodes := make(map[string]*domain.Node, len(doc.Nodes))
	nodeOrder := make([]string, 0, len(doc.Nodes))
	for _, dn := range doc.Nodes {
		nodes[dn.ID] = domain.NewNode(dn.ID, dn.Label, nil)
		nodeOrder = append(nodeOrder, dn.ID)
	}
	edges := make(map[string]*domain.Edge, len(doc.Edges))
	edgeOrder := make([]string, 0, len(doc.Edges))
	for _, de := range doc.Edges {
		edges[de.ID] = domain.NewEdge(de.ID, de.From, de.To, de.Label, de.Capacity, doc.IsDirected)
		edgeOrder = append(edgeOrder, de.ID)
	}

	s.mu.Lock()
	s.nodes, s.nodeOrder = nodes, nodeOrder
	s.edges, s.edgeOrder = edges, edgeOrder
	s.directed = doc.IsDirected
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventGraphReplaced, Payload: doc})
	return nil
}

// Clear removes every node and edge. Directedness is kept.
func (s *GraphStore) Clear() {
	s.mu.Lock()
	s.nodes = make(map[string]*domain.Node)
	s.edges = make(map[string]*domain.Edge)
	s.nodeOrder, s.edgeOrder = nil, nil
	doc := domain.NewDocument(s.directed)
	s.mu.Unlock()

	s.pub.Publish(domain.Event{Type: domain.EventGraphReplaced, Payload: doc})
}
