package animator

import (
	"encoding/json"
	"reflect"
	"testing"

	"graphstudio/internal/backend"
	"graphstudio/internal/domain"
	"graphstudio/internal/store"
)

// pathStore is A-B(e1), B-C(e2), undirected
func pathStore(t *testing.T) *store.GraphStore {
	t.Helper()
	s := store.New(nil)
	for _, id := range []string{"A", "B", "C"} {
		if _, err := s.AddNode(id, id, nil); err != nil {
			t.Fatalf("AddNode: %v", err)
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

func decode[T any](t *testing.T, raw string) *T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return &v
}

func TestShortestPathSteps(t *testing.T) {
	res := decode[backend.ShortestPathResult](t, `{"length":2.0,"path":["A","B","C"]}`)

	got := ShortestPathSteps(res, pathStore(t))
	want := []Step{
		Msg("Shortest path length = 2"),
		{Type: StepFinalNode, ID: "A"},
		{Type: StepFinalEdge, ID: "e1"},
		{Type: StepFinalNode, ID: "B"},
		{Type: StepFinalEdge, ID: "e2"},
		{Type: StepFinalNode, ID: "C"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected steps:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestTraversalSteps(t *testing.T) {
	res := decode[backend.TraversalResult](t, `{"path_nodes":["B","A","C"],"path_edges":[["B","A"],["B","C"]]}`)

	got := TraversalSteps(backend.BFS, "B", res, pathStore(t))
	want := []Step{
		Msg("BFS from B"),
		{Type: StepNode, ID: "B"},
		{Type: StepEdge, ID: "e1"},
		{Type: StepNode, ID: "A"},
		{Type: StepEdge, ID: "e2"},
		{Type: StepNode, ID: "C"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected steps:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestMSTSteps(t *testing.T) {
	res := decode[backend.MSTResult](t, `{"edges":[["B","C"],["A","B"]],"total":2.0}`)

	got := MSTSteps(backend.Kruskal, res, pathStore(t))
	want := []Step{
		Msg("MST (kruskal) edges=2, total=2"),
		{Type: StepGoodEdge, ID: "e2"},
		{Type: StepGoodEdge, ID: "e1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected steps:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestMaxFlowSteps(t *testing.T) {
	res := decode[backend.MaxFlowResult](t,
		`{"maxflow":2.0,"flow_edges":[["A","B",2.0,2.0],["B","A",0.0,2.0],["B","C",2.0,3.0]]}`)

	got := MaxFlowSteps(res, pathStore(t))
	want := []Step{
		Msg("MaxFlow = 2"),
		{Type: StepGoodEdge, ID: "e1"},
		Msg("A->B: flow=2/2"),
		{Type: StepGoodEdge, ID: "e2"},
		Msg("B->C: flow=2/3"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected steps:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestEulerSteps(t *testing.T) {
	t.Run("trail", func(t *testing.T) {
		res := &backend.EulerResult{
			Start: "A",
			Odd:   []domain.FlexString{"A", "C"},
			Edges: []backend.Pair{{From: "A", To: "B"}, {From: "B", To: "C"}},
		}

		got := EulerSteps(backend.Fleury, res, pathStore(t))
		want := []Step{
			Msg(`FLEURY start=A, odd=["A","C"]`),
			{Type: StepFinalNode, ID: "A"},
			{Type: StepFinalEdge, ID: "e1"},
			{Type: StepFinalNode, ID: "B"},
			{Type: StepFinalEdge, ID: "e2"},
			{Type: StepFinalNode, ID: "C"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unexpected steps:\ngot  %+v\nwant %+v", got, want)
		}
	})

	t.Run("no edges", func(t *testing.T) {
		res := &backend.EulerResult{Start: "A"}

		got := EulerSteps(backend.Hierholzer, res, pathStore(t))
		want := []Step{Msg("HIERHOLZER start=A, odd=[]"), Msg(NoEdgesText)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unexpected steps:\ngot  %+v\nwant %+v", got, want)
		}
	})
}

func TestUnresolvedPairsKeepEmptyID(t *testing.T) {
	res := decode[backend.MSTResult](t, `{"edges":[["A","C"]],"total":1}`)

	steps := MSTSteps(backend.Prim, res, pathStore(t))
	if steps[1].Type != StepGoodEdge || steps[1].ID != "" {
		t.Errorf("expected unresolved good_edge, got %+v", steps[1])
	}
}

func TestDirectedLookupInSteps(t *testing.T) {
	s := pathStore(t)
	s.SetDirected(true)
	res := decode[backend.TraversalResult](t, `{"path_nodes":["B","A"],"path_edges":[["B","A"]]}`)

	steps := TraversalSteps(backend.DFS, "B", res, s)
	if steps[2].ID != "" {
		t.Errorf("expected reversed pair unresolved on directed graph, got %q", steps[2].ID)
	}
}

func TestBipartitePainting(t *testing.T) {
	t.Run("bipartite", func(t *testing.T) {
		res := decode[backend.BipartiteResult](t, `{"is_bipartite":true,"sets":{"set1":["A","C"],"set2":["B"]}}`)
		p := BipartitePainting(res)

		want := []PaintedNode{
			{ID: "A", Style: domain.PartitionA},
			{ID: "C", Style: domain.PartitionA},
			{ID: "B", Style: domain.PartitionB},
		}
		if !reflect.DeepEqual(p.Nodes, want) {
			t.Errorf("unexpected nodes %+v", p.Nodes)
		}
		if len(p.Lines) != 1 || p.Lines[0] != `Bipartite: set1=["A","C"], set2=["B"]` {
			t.Errorf("unexpected lines %v", p.Lines)
		}
	})

	t.Run("not bipartite", func(t *testing.T) {
		res := decode[backend.BipartiteResult](t, `{"is_bipartite":false,"sets":{}}`)
		p := BipartitePainting(res)
		if len(p.Nodes) != 0 || p.Lines[0] != "Graph is not bipartite." {
			t.Errorf("unexpected painting %+v", p)
		}
	})
}
