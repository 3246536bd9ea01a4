package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"graphstudio/internal/domain"
)

// fakeBackend answers each path with a canned body and records the last request
type fakeBackend struct {
	replies map[string]string
	last    map[string]any
	path    string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.path = r.URL.Path
	f.last = nil
	_ = json.NewDecoder(r.Body).Decode(&f.last)
	body, ok := f.replies[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func newClient(t *testing.T, replies map[string]string) (*Client, *fakeBackend) {
	t.Helper()
	fake := &fakeBackend{replies: replies}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client(), nil), fake
}

func sampleDoc() *domain.Document {
	doc := domain.NewDocument(false)
	doc.AddNode(domain.DocNode{ID: "A", Label: "A"})
	doc.AddNode(domain.DocNode{ID: "B", Label: "B"})
	doc.AddEdge(domain.DocEdge{ID: "e1", From: "A", To: "B", Label: "1", Capacity: 2})
	return doc
}

func TestShortestPath(t *testing.T) {
	c, fake := newClient(t, map[string]string{
		PathShortestPath: `{"status":"success","path":["A","B"],"length":1.0}`,
	})

	res, err := c.ShortestPath(context.Background(), sampleDoc(), "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Length != 1 || !reflect.DeepEqual(res.Nodes(), []string{"A", "B"}) {
		t.Errorf("unexpected result %+v", res)
	}

	if fake.last["source"] != "A" || fake.last["target"] != "B" {
		t.Errorf("unexpected request %+v", fake.last)
	}
	graph, ok := fake.last["graph"].(map[string]any)
	if !ok {
		t.Fatalf("expected graph object, got %T", fake.last["graph"])
	}
	edges := graph["edges"].([]any)
	if edges[0].(map[string]any)["capacity"] != 2.0 {
		t.Errorf("expected capacity sent, got %+v", edges[0])
	}
}

func TestBackendReportedError(t *testing.T) {
	c, _ := newClient(t, map[string]string{
		PathShortestPath: `{"status":"error","message":"No path"}`,
	})

	_, err := c.ShortestPath(context.Background(), sampleDoc(), "A", "Z")
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if be.Message != "No path" || be.Error() != "No path" {
		t.Errorf("unexpected message %q", be.Message)
	}
}

func TestMissingFields(t *testing.T) {
	c, _ := newClient(t, map[string]string{
		PathMST: `{"status":"success","edges":[["A","B"]]}`,
	})

	if _, err := c.MST(context.Background(), sampleDoc(), Kruskal); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestBaseURLTrimsSlash(t *testing.T) {
	c := New("http://127.0.0.1:5000/", nil, nil)
	if got := c.BaseURL(); got != "http://127.0.0.1:5000" {
		t.Errorf("unexpected base URL %q", got)
	}
}

func TestNullRequiredField(t *testing.T) {
	c, _ := newClient(t, map[string]string{
		PathShortestPath: `{"status":"success","length":1,"path":null}`,
	})

	if _, err := c.ShortestPath(context.Background(), sampleDoc(), "A", "B"); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := New(url, nil, nil)
		if _, err := c.Convert(context.Background(), sampleDoc()); !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("non JSON error page", func(t *testing.T) {
		c, _ := newClient(t, nil)
		if _, err := c.Convert(context.Background(), sampleDoc()); !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})
}

func TestStatuslessReplies(t *testing.T) {
	c, _ := newClient(t, map[string]string{
		PathCheckBipartite: `{"is_bipartite":true,"sets":{"set1":["A"],"set2":["B"]}}`,
		PathConvert: `{"nodes":["A","B"],"adj_matrix":[[0.0,1.0],[1.0,0.0]],` +
			`"adj_list":{"B":["A"],"A":["B"]},"edge_list":[["A","B",1.0]]}`,
	})

	bip, err := c.CheckBipartite(context.Background(), sampleDoc())
	if err != nil {
		t.Fatalf("CheckBipartite: %v", err)
	}
	set1, set2 := bip.Partitions()
	if !bip.IsBipartite || !reflect.DeepEqual(set1, []string{"A"}) || !reflect.DeepEqual(set2, []string{"B"}) {
		t.Errorf("unexpected bipartite result %+v", bip)
	}

	rep, err := c.Convert(context.Background(), sampleDoc())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if rep.AdjList[0].Node != "B" {
		t.Errorf("expected adjacency order kept, got %+v", rep.AdjList)
	}
	if rep.EdgeList[0] != (domain.WeightedEdge{From: "A", To: "B", Weight: 1}) {
		t.Errorf("unexpected edge list %+v", rep.EdgeList)
	}
}

func TestMaxFlowDecoding(t *testing.T) {
	c, _ := newClient(t, map[string]string{
		PathMaxFlow: `{"status":"success","maxflow":2.0,"flow_edges":[["A","B",2.0,2.0],["B","A",0.0,2.0]]}`,
	})

	res, err := c.MaxFlow(context.Background(), sampleDoc(), "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []FlowEdge{
		{From: "A", To: "B", Flow: 2, Capacity: 2},
		{From: "B", To: "A", Flow: 0, Capacity: 2},
	}
	if res.MaxFlow != 2 || !reflect.DeepEqual(res.FlowEdges, want) {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestEulerEndpoints(t *testing.T) {
	c, fake := newClient(t, map[string]string{
		PathEulerFleury:     `{"status":"success","start":"A","odd":["A","B"],"trail_edges":[["A","B"]]}`,
		PathEulerHierholzer: `{"status":"success","start":"A","odd":[],"circuit_edges":[]}`,
	})

	res, err := c.Euler(context.Background(), sampleDoc(), Fleury, "A")
	if err != nil {
		t.Fatalf("Fleury: %v", err)
	}
	if fake.path != PathEulerFleury || fake.last["start"] != "A" {
		t.Errorf("unexpected request %s %+v", fake.path, fake.last)
	}
	if res.Start != "A" || !reflect.DeepEqual(res.OddNodes(), []string{"A", "B"}) ||
		!reflect.DeepEqual(res.Edges, []Pair{{From: "A", To: "B"}}) {
		t.Errorf("unexpected result %+v", res)
	}

	res, err = c.Euler(context.Background(), sampleDoc(), Hierholzer, "")
	if err != nil {
		t.Fatalf("Hierholzer: %v", err)
	}
	if fake.path != PathEulerHierholzer || len(res.Edges) != 0 {
		t.Errorf("unexpected result %s %+v", fake.path, res)
	}
}

func TestBuildFromRepresentation(t *testing.T) {
	c, fake := newClient(t, map[string]string{
		PathBuildFromRep: `{"status":"success","graph":{"nodes":[{"id":"A","label":"A"},{"id":"B","label":"B"}],` +
			`"edges":[{"id":"e1","from":"A","to":"B","label":"1.0"}],"isDirected":true}}`,
	})
	fields := map[string]any{"adj_list": map[string]any{"A": []any{"B"}}}

	doc, err := c.BuildFromRepresentation(context.Background(), fields, domain.RepAdjList, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 || !bool(doc.IsDirected) {
		t.Errorf("unexpected document %+v", doc)
	}
	if doc.Edges[0].Capacity != nil {
		t.Error("expected capacity to be absent")
	}

	if fake.last["mode"] != "adjlist" || fake.last["isDirected"] != true {
		t.Errorf("unexpected request %+v", fake.last)
	}
	if _, ok := fake.last["adj_list"]; !ok {
		t.Error("expected fields at top level")
	}
	if _, ok := fake.last["representation"].(map[string]any); !ok {
		t.Error("expected representation field")
	}
}

func TestTraversal(t *testing.T) {
	c, fake := newClient(t, map[string]string{
		PathTraversal: `{"status":"success","path_nodes":["A","B"],"path_edges":[["A","B"]]}`,
	})

	res, err := c.Traversal(context.Background(), sampleDoc(), "A", DFS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.last["method"] != "dfs" {
		t.Errorf("expected method dfs, got %v", fake.last["method"])
	}
	if !reflect.DeepEqual(res.Nodes(), []string{"A", "B"}) || res.PathEdges[0] != (Pair{From: "A", To: "B"}) {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestParseEnums(t *testing.T) {
	if _, err := ParseTraversalMethod("bfs"); err != nil {
		t.Error(err)
	}
	if _, err := ParseMSTAlgorithm("prim"); err != nil {
		t.Error(err)
	}
	if _, err := ParseEulerAlgorithm("hierholzer"); err != nil {
		t.Error(err)
	}
	if _, err := ParseTraversalMethod("astar"); err == nil {
		t.Error("expected error for unknown method")
	}
}
