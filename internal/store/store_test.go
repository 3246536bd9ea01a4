package store

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"graphstudio/internal/domain"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Publish(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// newPath builds A-B("1", cap 2), B-C("1", cap 3) undirected
func newPath(t *testing.T) *GraphStore {
	t.Helper()
	s := New(nil)
	for _, id := range []string{"A", "B", "C"} {
		if _, err := s.AddNode(id, id, nil); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	if _, err := s.AddEdge("A", "B", "1", 2); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := s.AddEdge("B", "C", "1", 3); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return s
}

func TestAddNode(t *testing.T) {
	t.Run("creates node and publishes event", func(t *testing.T) {
		rec := &recorder{}
		s := New(rec)

		node, err := s.AddNode("A", "A", domain.NewPosition(1, 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.ID != "A" {
			t.Errorf("expected id A, got %s", node.ID)
		}
		if s.NodeCount() != 1 {
			t.Errorf("expected 1 node, got %d", s.NodeCount())
		}
		if got := rec.types(); !reflect.DeepEqual(got, []domain.EventType{domain.EventNodeAdded}) {
			t.Errorf("unexpected events: %v", got)
		}
	})

	t.Run("duplicate id leaves graph unchanged", func(t *testing.T) {
		s := New(nil)
		if _, err := s.AddNode("A", "first", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := s.AddNode("A", "second", nil)
		if !errors.Is(err, ErrDuplicateNode) {
			t.Fatalf("expected ErrDuplicateNode, got %v", err)
		}
		if s.NodeCount() != 1 {
			t.Errorf("expected 1 node, got %d", s.NodeCount())
		}
		if n, _ := s.Node("A"); n.Label != "first" {
			t.Errorf("expected original label kept, got %s", n.Label)
		}
	})

	t.Run("empty id rejected", func(t *testing.T) {
		if _, err := New(nil).AddNode("", "x", nil); !errors.Is(err, ErrEmptyID) {
			t.Errorf("expected ErrEmptyID, got %v", err)
		}
	})
}

func TestAddEdge(t *testing.T) {
	t.Run("generates sequential ids", func(t *testing.T) {
		s := newPath(t)
		edges := s.Edges()
		if len(edges) != 2 {
			t.Fatalf("expected 2 edges, got %d", len(edges))
		}
		if edges[0].ID != "e1" || edges[1].ID != "e2" {
			t.Errorf("expected ids e1,e2 got %s,%s", edges[0].ID, edges[1].ID)
		}
	})

	t.Run("rejects self loop", func(t *testing.T) {
		s := newPath(t)
		if _, err := s.AddEdge("A", "A", "1", 1); !errors.Is(err, ErrSelfLoop) {
			t.Errorf("expected ErrSelfLoop, got %v", err)
		}
	})

	t.Run("rejects unknown endpoint", func(t *testing.T) {
		s := newPath(t)
		if _, err := s.AddEdge("A", "Z", "1", 1); !errors.Is(err, ErrUnknownNode) {
			t.Errorf("expected ErrUnknownNode, got %v", err)
		}
		if len(s.Edges()) != 2 {
			t.Error("expected no new edge")
		}
	})

	t.Run("skips ids already taken by imported edges", func(t *testing.T) {
		s := New(nil)
		doc := domain.NewDocument(false)
		doc.AddNode(domain.DocNode{ID: "A", Label: "A"})
		doc.AddNode(domain.DocNode{ID: "B", Label: "B"})
		doc.AddEdge(domain.DocEdge{ID: "e1", From: "A", To: "B", Label: "1", Capacity: 1})
		if err := s.Replace(doc); err != nil {
			t.Fatalf("Replace: %v", err)
		}

		edge, err := s.AddEdge("B", "A", "1", 1)
		if err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
		if edge.ID != "e2" {
			t.Errorf("expected e2, got %s", edge.ID)
		}
	})
}

func TestUpdateEdge(t *testing.T) {
	s := newPath(t)

	edge, err := s.UpdateEdge("e1", "5", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edge.Label != "5" || edge.Capacity != 9 {
		t.Errorf("unexpected edge: %+v", edge)
	}
	if edge.From != "A" || edge.To != "B" {
		t.Errorf("endpoints changed: %+v", edge)
	}

	if _, err := s.UpdateEdge("nope", "1", 1); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("expected ErrUnknownEdge, got %v", err)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	rec := &recorder{}
	s := newPath(t)
	s.pub = rec

	removed, err := s.RemoveNode("B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(removed, []string{"e1", "e2"}) {
		t.Errorf("expected e1,e2 removed, got %v", removed)
	}

	var ids []string
	for _, n := range s.Nodes() {
		ids = append(ids, n.ID)
	}
	if !reflect.DeepEqual(ids, []string{"A", "C"}) {
		t.Errorf("expected nodes A,C got %v", ids)
	}
	if len(s.Edges()) != 0 {
		t.Errorf("expected no edges, got %d", len(s.Edges()))
	}
	if got := rec.types(); !reflect.DeepEqual(got, []domain.EventType{domain.EventNodeRemoved}) {
		t.Errorf("expected a single node_removed event, got %v", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	s := newPath(t)
	if err := s.RemoveEdge("e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Edge("e1"); ok {
		t.Error("expected e1 gone")
	}
	if s.NodeCount() != 3 {
		t.Errorf("expected nodes untouched, got %d", s.NodeCount())
	}
	if err := s.RemoveEdge("e1"); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("expected ErrUnknownEdge, got %v", err)
	}
}

func TestFindEdge(t *testing.T) {
	s := newPath(t)

	t.Run("undirected matches both orientations", func(t *testing.T) {
		if e, ok := s.FindEdge("B", "A"); !ok || e.ID != "e1" {
			t.Errorf("expected e1, got %v %v", e.ID, ok)
		}
	})

	t.Run("directed matches only forward", func(t *testing.T) {
		s.SetDirected(true)
		defer s.SetDirected(false)

		if _, ok := s.FindEdge("B", "A"); ok {
			t.Error("expected no match for reversed pair")
		}
		if e, ok := s.FindEdge("A", "B"); !ok || e.ID != "e1" {
			t.Errorf("expected e1, got %v %v", e.ID, ok)
		}
	})

	t.Run("first match in insertion order wins", func(t *testing.T) {
		if _, err := s.AddEdge("B", "A", "7", 1); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
		if e, _ := s.FindEdge("A", "B"); e.ID != "e1" {
			t.Errorf("expected e1, got %s", e.ID)
		}
	})
}

func TestSetDirectedTwiceRestoresStyling(t *testing.T) {
	s := newPath(t)
	before := s.Edges()

	s.SetDirected(true)
	for _, e := range s.Edges() {
		if e.Style.Arrows != domain.ArrowTo {
			t.Errorf("edge %s: expected arrows after toggle, got %q", e.ID, e.Style.Arrows)
		}
	}
	s.SetDirected(false)

	if after := s.Edges(); !reflect.DeepEqual(before, after) {
		t.Errorf("edges changed after double toggle:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestStyles(t *testing.T) {
	s := newPath(t)
	s.SetDirected(true)

	if err := s.SetNodeStyle("A", domain.FinalNode); err != nil {
		t.Fatalf("SetNodeStyle: %v", err)
	}
	if err := s.SetEdgeStyle("e1", domain.GoodEdge); err != nil {
		t.Fatalf("SetEdgeStyle: %v", err)
	}
	if e, _ := s.Edge("e1"); e.Style.Arrows != domain.ArrowTo || e.Style.Color != domain.GoodEdge.Color {
		t.Errorf("unexpected edge style: %+v", e.Style)
	}
	if err := s.SetNodeStyle("Z", domain.FinalNode); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}

	s.ResetStyles()
	if n, _ := s.Node("A"); n.Style != domain.NeutralNode {
		t.Errorf("expected neutral node, got %+v", n.Style)
	}
	if e, _ := s.Edge("e1"); e.Style.Color != domain.NeutralEdge.Color || e.Style.Arrows != domain.ArrowTo {
		t.Errorf("expected neutral directed edge, got %+v", e.Style)
	}
}

func TestExportReplaceRoundTrip(t *testing.T) {
	s := newPath(t)
	doc := s.Export()

	other := New(nil)
	if err := other.Replace(doc); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !reflect.DeepEqual(doc, other.Export()) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", doc, other.Export())
	}
}

func TestReplaceInvalidLeavesStore(t *testing.T) {
	s := newPath(t)
	bad := domain.NewDocument(false)
	bad.AddNode(domain.DocNode{ID: "X"})
	bad.AddEdge(domain.DocEdge{ID: "e1", From: "X", To: "missing"})

	if err := s.Replace(bad); err == nil {
		t.Fatal("expected validation error")
	}
	if s.NodeCount() != 3 || len(s.Edges()) != 2 {
		t.Error("expected store untouched")
	}
}

func TestClear(t *testing.T) {
	s := newPath(t)
	s.SetDirected(true)
	s.Clear()

	if s.NodeCount() != 0 || len(s.Edges()) != 0 {
		t.Error("expected empty store")
	}
	if !s.Directed() {
		t.Error("expected directedness kept")
	}
}

func TestLog(t *testing.T) {
	rec := &recorder{}
	l := NewLog(rec)

	l.Append("one")
	l.Append("two")
	if got := l.Lines(); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("unexpected lines: %v", got)
	}

	l.Clear()
	if len(l.Lines()) != 0 {
		t.Error("expected empty log")
	}

	want := []domain.EventType{domain.EventLogAppended, domain.EventLogAppended, domain.EventLogCleared}
	if got := rec.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected events: %v", got)
	}
}
