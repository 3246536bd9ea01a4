package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"graphstudio/internal/backend"
	"graphstudio/internal/codec"
	"graphstudio/internal/service"
	"graphstudio/internal/store"
)

func newTestServer(t *testing.T, replies map[string]string) http.Handler {
	t.Helper()
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := replies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(fake.Close)

	settings := service.DefaultSettings()
	settings.StepDelay = 0
	ws := service.NewWorkspace(nil, service.Options{
		Client:   backend.New(fake.URL, fake.Client(), nil),
		Settings: settings,
	})
	t.Cleanup(ws.Close)

	mux := http.NewServeMux()
	NewGraphHandler(ws, nil).Register(mux)
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func seed(t *testing.T, h http.Handler) {
	t.Helper()
	doc := `{"nodes":[{"id":"A"},{"id":"B"},{"id":"C"}],` +
		`"edges":[{"from":"A","to":"B","label":1},{"from":"B","to":"C","label":"1"}]}`
	if rec := do(t, h, http.MethodPost, "/api/import/json", doc); rec.Code != http.StatusOK {
		t.Fatalf("import failed: %d %s", rec.Code, rec.Body)
	}
}

func TestClickFlow(t *testing.T) {
	h := newTestServer(t, nil)

	if rec := do(t, h, http.MethodPost, "/api/mode", `{"mode":"add_node"}`); rec.Code != http.StatusOK {
		t.Fatalf("set mode: %d", rec.Code)
	}

	t.Run("node added with answer", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/click", `{"x":10,"y":20,"answers":{"label":"A"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body)
		}
		resp := decodeBody[map[string]any](t, rec)
		if resp["outcome"] != "node_added" {
			t.Errorf("unexpected outcome %v", resp["outcome"])
		}
		prompts := resp["prompts"].([]any)
		if len(prompts) != 1 || prompts[0].(map[string]any)["default"] != "1" {
			t.Errorf("unexpected prompts %v", prompts)
		}
	})

	t.Run("missing answer cancels", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/click", `{"x":50,"y":20}`)
		resp := decodeBody[map[string]any](t, rec)
		if resp["outcome"] != "cancelled" {
			t.Errorf("unexpected outcome %v", resp["outcome"])
		}
	})

	t.Run("duplicate node is a conflict", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/click", `{"x":90,"y":20,"answers":{"label":"A"}}`)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("bad mode", func(t *testing.T) {
		if rec := do(t, h, http.MethodPost, "/api/mode", `{"mode":"fly"}`); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestRunEndpoints(t *testing.T) {
	h := newTestServer(t, map[string]string{
		backend.PathShortestPath: `{"status":"success","path":["A","B","C"],"length":2.0}`,
		backend.PathMaxFlow:      `{"status":"error","message":"Source or target not in graph"}`,
	})
	seed(t, h)

	t.Run("shortest path", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/run/shortest_path", `{"source":"A","target":"C"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body)
		}
		run := decodeBody[service.Run](t, rec)
		if run.Message != "Path length: 2" || len(run.Steps) != 6 {
			t.Errorf("unexpected run %+v", run)
		}
	})

	t.Run("backend error", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/run/maxflow", `{"source":"A","target":"Z"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		resp := decodeBody[ErrorResponse](t, rec)
		if resp.Details != "Source or target not in graph" {
			t.Errorf("unexpected details %q", resp.Details)
		}
	})

	t.Run("backend missing endpoint", func(t *testing.T) {
		if rec := do(t, h, http.MethodPost, "/api/run/convert", ``); rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("bad algorithm", func(t *testing.T) {
		if rec := do(t, h, http.MethodPost, "/api/run/mst", `{"algorithm":"boruvka"}`); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown operation", func(t *testing.T) {
		if rec := do(t, h, http.MethodPost, "/api/run/pagerank", `{}`); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestImportExport(t *testing.T) {
	h := newTestServer(t, nil)
	seed(t, h)

	rec := do(t, h, http.MethodGet, "/api/export/json", "")
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=graph.json" {
		t.Errorf("unexpected disposition %q", cd)
	}
	exported := rec.Body.String()
	if !strings.Contains(exported, "\n  ") {
		t.Error("expected indented JSON")
	}

	if rec := do(t, h, http.MethodPost, "/api/import/json", `{"nodes":[{"id":"A"}],"edges":[{"from":"A","to":"Q"}]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for dangling edge, got %d", rec.Code)
	}
	again := do(t, h, http.MethodGet, "/api/export/json", "")
	if !bytes.Equal([]byte(exported), again.Body.Bytes()) {
		t.Error("expected failed import to leave graph unchanged")
	}

	if rec := do(t, h, http.MethodGet, "/api/export/html", ""); !strings.Contains(rec.Body.String(), "echarts") {
		t.Error("expected an echarts page")
	}
	if rec := do(t, h, http.MethodPost, "/api/save", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a repository, got %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrStale, http.StatusConflict},
		{fmt.Errorf("wrap: %w", backend.ErrTransport), http.StatusBadGateway},
		{&backend.Error{Message: "x"}, http.StatusUnprocessableEntity},
		{codec.ErrMalformedRepresentation, http.StatusBadRequest},
		{store.ErrUnknownEdge, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Recover(nopLogger()), mw("outer"), mw("inner"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected recovered 500, got %d", rec.Code)
	}
	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("unexpected order %v", order)
	}
}

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
