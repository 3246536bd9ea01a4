package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"graphstudio/internal/animator"
	"graphstudio/internal/backend"
	"graphstudio/internal/codec"
	"graphstudio/internal/domain"
	"graphstudio/internal/metrics"

	"github.com/google/uuid"
)

// Operation names used in runs, logs and the HTTP API
const (
	OpShortestPath = "shortest_path"
	OpTraversal    = "traversal"
	OpBipartite    = "bipartite"
	OpConvert      = "convert"
	OpBuild        = "build_from_rep"
	OpMST          = "mst"
	OpMaxFlow      = "maxflow"
	OpEuler        = "euler"
)

// BuiltText is the message reported after a successful build from representation
const BuiltText = "Graph built successfully."

var (
	// ErrNoBackend is returned when a run is attempted without a backend
	ErrNoBackend = errors.New("no computation backend configured")
	// ErrUnknownOperation is returned by RunNamed for an unrecognised name
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidParam is returned by RunNamed when a method or algorithm is not recognised
	ErrInvalidParam = errors.New("invalid parameter")
)

// Operations lists the names RunNamed accepts
var Operations = []string{OpShortestPath, OpTraversal, OpBipartite, OpConvert, OpMST, OpMaxFlow, OpEuler}

// Params carries the inputs of a named run. Each operation reads only the
// fields it needs; an empty method or algorithm selects BFS, Kruskal or Fleury.
type Params struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Method    string `json:"method"`
	Algorithm string `json:"algorithm"`
	Start     string `json:"start"`
}

// RunNamed dispatches to the algorithm run called op
func (w *Workspace) RunNamed(ctx context.Context, op string, p Params) (*Run, error) {
	switch op {
	case OpShortestPath:
		return w.ShortestPath(ctx, p.Source, p.Target)
	case OpTraversal:
		method := backend.BFS
		if p.Method != "" {
			m, err := backend.ParseTraversalMethod(p.Method)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
			}
			method = m
		}
		return w.Traversal(ctx, p.Source, method)
	case OpBipartite:
		return w.CheckBipartite(ctx)
	case OpConvert:
		return w.Convert(ctx)
	case OpMST:
		algorithm := backend.Kruskal
		if p.Algorithm != "" {
			a, err := backend.ParseMSTAlgorithm(p.Algorithm)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
			}
			algorithm = a
		}
		return w.MST(ctx, algorithm)
	case OpMaxFlow:
		return w.MaxFlow(ctx, p.Source, p.Target)
	case OpEuler:
		algorithm := backend.Fleury
		if p.Algorithm != "" {
			a, err := backend.ParseEulerAlgorithm(p.Algorithm)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
			}
			algorithm = a
		}
		return w.Euler(ctx, algorithm, p.Start)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownOperation, op)
}

// Run is the outcome of one algorithm operation
type Run struct {
	ID         string             `json:"id"`
	Operation  string             `json:"operation"`
	Generation uint64             `json:"generation"`
	Steps      []animator.Step    `json:"steps,omitempty"`
	Painting   *animator.Painting `json:"painting,omitempty"`
	Message    string             `json:"message,omitempty"`
	Text       string             `json:"text,omitempty"`
	Document   *domain.Document   `json:"document,omitempty"`
}

func newRun(op string, gen uint64) *Run {
	return &Run{ID: uuid.NewString(), Operation: op, Generation: gen}
}

// begin starts a new generation and snapshots the document to send
func (w *Workspace) begin() (uint64, *domain.Document, error) {
	if w.client == nil {
		return 0, nil, ErrNoBackend
	}
	return w.bump(), w.store.Export(), nil
}

// settle discards replies for superseded generations
func (w *Workspace) settle(op string, gen uint64, err error) error {
	if !w.current(gen) {
		metrics.PlaybacksStale.Inc()
		w.logger.Debug("discarding stale reply", "operation", op, "generation", gen)
		return ErrStale
	}
	if err != nil {
		w.logger.Warn("run failed", "operation", op, "error", err)
	}
	return err
}

// ShortestPath highlights the weighted shortest path from source to target
func (w *Workspace) ShortestPath(ctx context.Context, source, target string) (*Run, error) {
	gen, doc, err := w.begin()
	if err != nil {
		return nil, err
	}
	res, err := w.client.ShortestPath(ctx, doc, source, target)
	if err := w.settle(OpShortestPath, gen, err); err != nil {
		return nil, err
	}

	run := newRun(OpShortestPath, gen)
	run.Steps = animator.ShortestPathSteps(res, w.store)
	run.Message = "Path length: " + domain.FormatNumber(res.Length)
	return run, w.play(ctx, run)
}

// Traversal animates a BFS or DFS from source
func (w *Workspace) Traversal(ctx context.Context, source string, method backend.TraversalMethod) (*Run, error) {
	gen, doc, err := w.begin()
	if err != nil {
		return nil, err
	}
	res, err := w.client.Traversal(ctx, doc, source, method)
	if err := w.settle(OpTraversal, gen, err); err != nil {
		return nil, err
	}

	run := newRun(OpTraversal, gen)
	run.Steps = animator.TraversalSteps(method, source, res, w.store)
	return run, w.play(ctx, run)
}

// CheckBipartite colours the two vertex sets, if there are two
func (w *Workspace) CheckBipartite(ctx context.Context) (*Run, error) {
	gen, doc, err := w.begin()
	if err != nil {
		return nil, err
	}
	res, err := w.client.CheckBipartite(ctx, doc)
	if err := w.settle(OpBipartite, gen, err); err != nil {
		return nil, err
	}

	painting := animator.BipartitePainting(res)
	run := newRun(OpBipartite, gen)
	run.Painting = &painting
	if len(painting.Lines) > 0 {
		run.Message = painting.Lines[0]
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(gen) {
		return nil, ErrStale
	}
	return run, w.player.Paint(ctx, painting)
}

// Convert writes the adjacency matrix, adjacency list and edge list to the output
func (w *Workspace) Convert(ctx context.Context) (*Run, error) {
	gen, doc, err := w.begin()
	if err != nil {
		return nil, err
	}
	res, err := w.client.Convert(ctx, doc)
	if err := w.settle(OpConvert, gen, err); err != nil {
		return nil, err
	}

	run := newRun(OpConvert, gen)
	run.Text = codec.FormatRepresentations(res)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(gen) {
		return nil, ErrStale
	}
	w.log.Clear()
	for _, line := range strings.Split(strings.TrimRight(run.Text, "\n"), "\n") {
		w.log.Append(line)
	}
	return run, nil
}

// BuildFromRepresentation parses pasted representation text, has the backend
// build a graph from it and replaces the current graph with the result.
// Text that does not parse is rejected before any request.
func (w *Workspace) BuildFromRepresentation(ctx context.Context, text string, mode domain.RepMode) (*Run, error) {
	fields, err := codec.ParseRepresentation(text, mode)
	if err != nil {
		return nil, err
	}
	if w.client == nil {
		return nil, ErrNoBackend
	}

	gen := w.bump()
	imported, err := w.client.BuildFromRepresentation(ctx, fields, mode, w.store.Directed())
	if err := w.settle(OpBuild, gen, err); err != nil {
		return nil, err
	}

	doc, err := codec.Normalize(imported, w.editor.Defaults().Capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrMalformedResponse, err)
	}
	if !w.current(gen) {
		return nil, ErrStale
	}
	if err := w.replace(doc); err != nil {
		return nil, err
	}
	w.log.Append(BuiltText)

	run := newRun(OpBuild, w.Generation())
	run.Document = doc
	run.Message = BuiltText
	return run, nil
}

// MST marks the edges of a minimum spanning tree
func (w *Workspace) MST(ctx context.Context, algorithm backend.MSTAlgorithm) (*Run, error) {
	gen, doc, err := w.begin()
	if err != nil {
		return nil, err
	}
	res, err := w.client.MST(ctx, doc, algorithm)
	if err := w.settle(OpMST, gen, err); err != nil {
		return nil, err
	}

	run := newRun(OpMST, gen)
	run.Steps = animator.MSTSteps(algorithm, res, w.store)
	return run, w.play(ctx, run)
}

// MaxFlow marks every edge carrying flow from source to target
func (w *Workspace) MaxFlow(ctx context.Context, source, target string) (*Run, error) {
	gen, doc, err := w.begin()
	if err != nil {
		return nil, err
	}
	res, err := w.client.MaxFlow(ctx, doc, source, target)
	if err := w.settle(OpMaxFlow, gen, err); err != nil {
		return nil, err
	}

	run := newRun(OpMaxFlow, gen)
	run.Steps = animator.MaxFlowSteps(res, w.store)
	run.Message = "MaxFlow = " + domain.FormatNumber(res.MaxFlow)
	return run, w.play(ctx, run)
}

// Euler walks an Euler trail (Fleury) or circuit (Hierholzer) from start
func (w *Workspace) Euler(ctx context.Context, algorithm backend.EulerAlgorithm, start string) (*Run, error) {
	gen, doc, err := w.begin()
	if err != nil {
		return nil, err
	}
	res, err := w.client.Euler(ctx, doc, algorithm, start)
	if err := w.settle(OpEuler, gen, err); err != nil {
		return nil, err
	}

	run := newRun(OpEuler, gen)
	run.Steps = animator.EulerSteps(algorithm, res, w.store)
	return run, w.play(ctx, run)
}

// play replays run.Steps, on its own goroutine when the workspace is in
// background mode. A newer generation cancels it.
func (w *Workspace) play(ctx context.Context, run *Run) error {
	base := ctx
	if w.background {
		base = context.Background()
	}

	w.mu.Lock()
	if !w.current(run.Generation) {
		w.mu.Unlock()
		return ErrStale
	}
	pctx, cancel := context.WithCancel(base)
	w.cancelPlay = cancel
	w.playGen = run.Generation
	w.playing.Add(1)
	w.mu.Unlock()

	playback := func() error {
		defer w.playing.Done()
		defer func() {
			cancel()
			w.mu.Lock()
			if w.playGen == run.Generation {
				w.cancelPlay = nil
			}
			w.mu.Unlock()
		}()

		w.bus.Publish(Event{Type: domain.EventPlaybackStarted, Payload: map[string]any{
			"id": run.ID, "operation": run.Operation, "steps": len(run.Steps),
		}})
		err := w.player.Play(pctx, run.Steps)
		status := "completed"
		if err != nil {
			status = "cancelled"
		}
		w.bus.Publish(Event{Type: domain.EventPlaybackDone, Payload: map[string]any{
			"id": run.ID, "status": status,
		}})

		if err != nil && !w.current(run.Generation) {
			metrics.PlaybacksStale.Inc()
			return ErrStale
		}
		return err
	}

	if w.background {
		go func() {
			if err := playback(); err != nil && !errors.Is(err, ErrStale) {
				w.logger.Warn("playback failed", "run", run.ID, "error", err)
			}
		}()
		return nil
	}
	return playback()
}
