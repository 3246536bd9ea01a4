package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"graphstudio/internal/domain"
	"graphstudio/internal/metrics"
)

const maxResponseBytes = 8 << 20

// Endpoint paths
const (
	PathShortestPath     = "/api/shortest_path"
	PathTraversal        = "/api/traversal"
	PathCheckBipartite   = "/api/check_bipartite"
	PathConvert          = "/api/convert"
	PathBuildFromRep     = "/api/build_from_rep"
	PathMST              = "/api/mst"
	PathMaxFlow          = "/api/maxflow"
	PathEulerFleury      = "/api/euler_fleury"
	PathEulerHierholzer  = "/api/euler_hierholzer"
	statusSuccess        = "success"
	defaultClientTimeout = 10 * time.Second
)

// Client talks to the computation backend over JSON/HTTP
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the backend at baseURL. A nil http client gets a
// default with a 10s timeout.
func New(baseURL string, hc *http.Client, logger *slog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultClientTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ShortestPath asks for the weighted shortest path from source to target
func (c *Client) ShortestPath(ctx context.Context, doc *domain.Document, source, target string) (*ShortestPathResult, error) {
	var out ShortestPathResult
	req := map[string]any{"graph": doc, "source": source, "target": target}
	if err := c.call(ctx, PathShortestPath, req, &out, "length", "path"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Traversal asks for a BFS or DFS from source
func (c *Client) Traversal(ctx context.Context, doc *domain.Document, source string, method TraversalMethod) (*TraversalResult, error) {
	var out TraversalResult
	req := map[string]any{"graph": doc, "source": source, "method": method}
	if err := c.call(ctx, PathTraversal, req, &out, "path_nodes", "path_edges"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckBipartite asks whether the graph is bipartite and for its two vertex sets
func (c *Client) CheckBipartite(ctx context.Context, doc *domain.Document) (*BipartiteResult, error) {
	var out BipartiteResult
	req := map[string]any{"graph": doc}
	if err := c.call(ctx, PathCheckBipartite, req, &out, "is_bipartite"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Convert asks for the adjacency matrix, adjacency list and edge list of the graph
func (c *Client) Convert(ctx context.Context, doc *domain.Document) (*domain.Representations, error) {
	var out domain.Representations
	req := map[string]any{"graph": doc}
	if err := c.call(ctx, PathConvert, req, &out, "nodes", "adj_matrix", "adj_list", "edge_list"); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuildFromRepresentation asks the backend to build a graph from parsed
// representation fields. The fields are sent both at the top level and under
// "representation".
func (c *Client) BuildFromRepresentation(ctx context.Context, fields map[string]any, mode domain.RepMode, directed bool) (*domain.ImportDocument, error) {
	req := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		req[k] = v
	}
	req["representation"] = fields
	req["mode"] = mode
	req["isDirected"] = directed

	var out BuildResult
	if err := c.call(ctx, PathBuildFromRep, req, &out, "graph"); err != nil {
		return nil, err
	}
	if out.Graph == nil {
		return nil, fmt.Errorf("%w: %s: graph is null", ErrMalformedResponse, PathBuildFromRep)
	}
	return out.Graph, nil
}

// MST asks for a minimum spanning tree
func (c *Client) MST(ctx context.Context, doc *domain.Document, algorithm MSTAlgorithm) (*MSTResult, error) {
	var out MSTResult
	req := map[string]any{"graph": doc, "algorithm": algorithm}
	if err := c.call(ctx, PathMST, req, &out, "edges", "total"); err != nil {
		return nil, err
	}
	return &out, nil
}

// MaxFlow asks for the maximum flow from source to target
func (c *Client) MaxFlow(ctx context.Context, doc *domain.Document, source, target string) (*MaxFlowResult, error) {
	var out MaxFlowResult
	req := map[string]any{"graph": doc, "source": source, "target": target}
	if err := c.call(ctx, PathMaxFlow, req, &out, "maxflow", "flow_edges"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Euler asks for an Euler trail (Fleury) or circuit (Hierholzer) from start
func (c *Client) Euler(ctx context.Context, doc *domain.Document, algorithm EulerAlgorithm, start string) (*EulerResult, error) {
	path, edgesField := PathEulerFleury, "trail_edges"
	if algorithm == Hierholzer {
		path, edgesField = PathEulerHierholzer, "circuit_edges"
	}

	var wire map[string]json.RawMessage
	req := map[string]any{"graph": doc, "start": start}
	if err := c.call(ctx, path, req, &wire, "start", "odd", edgesField); err != nil {
		return nil, err
	}

	out := &EulerResult{}
	for field, dst := range map[string]any{"start": (*domain.FlexString)(&out.Start), "odd": &out.Odd, edgesField: &out.Edges} {
		if err := json.Unmarshal(wire[field], dst); err != nil {
			return nil, fmt.Errorf("%w: %s: %s: %v", ErrMalformedResponse, path, field, err)
		}
	}
	return out, nil
}

// envelope is the status part every reply may carry
type envelope struct {
	Status  *string `json:"status"`
	Message string  `json:"message"`
}

// call posts req to path and decodes the reply into out. A reply without a
// status field is accepted when every required field is present.
func (c *Client) call(ctx context.Context, path string, req, out any, required ...string) (err error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		metrics.BackendRequests.WithLabelValues(path, outcome).Inc()
		metrics.BackendDuration.WithLabelValues(path).Observe(float64(time.Since(start).Milliseconds()))
		c.logger.Debug("backend call", "endpoint", path, "outcome", outcome, "duration", time.Since(start))
	}()

	body, err := json.Marshal(req)
	if err != nil {
		outcome = "encode_error"
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		outcome = "transport_error"
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.logger.Warn("backend unreachable", "endpoint", path, "error", err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("%w: reading %s response: %v", ErrTransport, path, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		outcome = "transport_error"
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("%w: %s returned HTTP %d", ErrTransport, path, resp.StatusCode)
		}
		return fmt.Errorf("%w: %s returned non-JSON body", ErrTransport, path)
	}

	if env.Status != nil && *env.Status != statusSuccess {
		outcome = "backend_error"
		return &Error{Endpoint: path, Status: *env.Status, Message: env.Message}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		outcome = "backend_error"
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Endpoint: path, Status: resp.Status, Message: msg}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		outcome = "malformed"
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	for _, name := range required {
		if v, ok := fields[name]; !ok || len(v) == 0 || string(v) == "null" {
			outcome = "malformed"
			return fmt.Errorf("%w: %s: missing %q", ErrMalformedResponse, path, name)
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		outcome = "malformed"
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}
