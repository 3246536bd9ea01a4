package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"graphstudio/internal/animator"
	"graphstudio/internal/backend"
	"graphstudio/internal/codec"
	"graphstudio/internal/domain"
	"graphstudio/internal/editor"
	"graphstudio/internal/metrics"
	"graphstudio/internal/repository"
	"graphstudio/internal/store"
)

var (
	// ErrStale is returned when a reply arrives after a newer operation started
	ErrStale = errors.New("result superseded by a newer operation")
	// ErrNoRepository is returned by Save and Load when persistence is disabled
	ErrNoRepository = errors.New("no document store configured")
)

// AlgorithmClient is the backend contract the workspace depends on
type AlgorithmClient interface {
	ShortestPath(ctx context.Context, doc *domain.Document, source, target string) (*backend.ShortestPathResult, error)
	Traversal(ctx context.Context, doc *domain.Document, source string, method backend.TraversalMethod) (*backend.TraversalResult, error)
	CheckBipartite(ctx context.Context, doc *domain.Document) (*backend.BipartiteResult, error)
	Convert(ctx context.Context, doc *domain.Document) (*domain.Representations, error)
	BuildFromRepresentation(ctx context.Context, fields map[string]any, mode domain.RepMode, directed bool) (*domain.ImportDocument, error)
	MST(ctx context.Context, doc *domain.Document, algorithm backend.MSTAlgorithm) (*backend.MSTResult, error)
	MaxFlow(ctx context.Context, doc *domain.Document, source, target string) (*backend.MaxFlowResult, error)
	Euler(ctx context.Context, doc *domain.Document, algorithm backend.EulerAlgorithm, start string) (*backend.EulerResult, error)
}

// Settings are the values that can change while the workspace runs
type Settings struct {
	Defaults  editor.Defaults
	StepDelay time.Duration
}

// DefaultSettings returns weight "1", capacity 1 and a 450ms step delay
func DefaultSettings() Settings {
	return Settings{
		Defaults:  editor.Defaults{Weight: "1", Capacity: 1},
		StepDelay: animator.DefaultDelay,
	}
}

// Options configures a Workspace
type Options struct {
	Client   AlgorithmClient
	Repo     repository.Repository
	Settings Settings
	Logger   *slog.Logger
	// Background plays animations on their own goroutine instead of blocking the run
	Background bool
}

// Workspace is one editing session
type Workspace struct {
	store  *store.GraphStore
	log    *store.Log
	editor *editor.Controller
	player *animator.Player
	client AlgorithmClient
	repo   repository.Repository
	bus    *EventBus
	logger *slog.Logger

	background bool
	generation atomic.Uint64

	mu         sync.Mutex
	cancelPlay context.CancelFunc
	playGen    uint64
	playing    sync.WaitGroup
}

// NewWorkspace creates an empty session publishing on bus
func NewWorkspace(bus *EventBus, opts Options) *Workspace {
	if bus == nil {
		bus = NewEventBus()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := store.New(bus)
	l := store.NewLog(bus)
	return &Workspace{
		store:      s,
		log:        l,
		editor:     editor.NewController(s, l, opts.Settings.Defaults, bus),
		player:     animator.NewPlayer(s, l, opts.Settings.StepDelay, logger),
		client:     opts.Client,
		repo:       opts.Repo,
		bus:        bus,
		logger:     logger,
		background: opts.Background,
	}
}

// Bus returns the event bus
func (w *Workspace) Bus() *EventBus {
	return w.bus
}

// Generation returns the current operation generation
func (w *Workspace) Generation() uint64 {
	return w.generation.Load()
}

// bump starts a new generation and stops any running playback
func (w *Workspace) bump() uint64 {
	gen := w.generation.Add(1)
	w.mu.Lock()
	if w.cancelPlay != nil {
		w.cancelPlay()
		w.cancelPlay = nil
	}
	w.mu.Unlock()
	w.player.Barrier()
	return gen
}

func (w *Workspace) current(gen uint64) bool {
	return w.generation.Load() == gen
}

// Wait blocks until background playbacks have finished
func (w *Workspace) Wait() {
	w.playing.Wait()
}

// Close stops any running playback
func (w *Workspace) Close() {
	w.bump()
	w.Wait()
}

// Settings returns the editor defaults and step delay in effect
func (w *Workspace) Settings() Settings {
	return Settings{Defaults: w.editor.Defaults(), StepDelay: w.player.Delay()}
}

// ApplySettings replaces the editor defaults and step delay
func (w *Workspace) ApplySettings(s Settings) {
	w.editor.SetDefaults(s.Defaults)
	w.player.SetDelay(s.StepDelay)
	w.logger.Info("settings applied",
		"default_weight", s.Defaults.Weight,
		"default_capacity", s.Defaults.Capacity,
		"step_delay", s.StepDelay)
}

// Snapshot returns the current view for renderers
func (w *Workspace) Snapshot() *domain.Snapshot {
	sess := w.editor.Session()
	snap := domain.NewSnapshot()
	snap.Nodes = w.store.Nodes()
	snap.Edges = w.store.Edges()
	snap.IsDirected = w.store.Directed()
	snap.Mode = sess.Mode
	snap.Cursor = sess.Cursor()
	snap.PendingFrom = sess.PendingFrom
	snap.Log = w.log.Lines()
	return snap
}

// SetMode switches the editing mode and stops any playback
func (w *Workspace) SetMode(mode domain.Mode) {
	w.bump()
	w.editor.SetMode(mode)
}

// Click applies a canvas click in the current mode
func (w *Workspace) Click(click editor.Click, p editor.Prompter) (editor.Result, error) {
	mode := w.editor.Session().Mode
	res, err := w.editor.Click(click, p)
	outcome := string(res.Outcome)
	if err != nil {
		outcome = "error"
	}
	metrics.EditorClicks.WithLabelValues(string(mode), outcome).Inc()
	return res, err
}

// SetDirected changes directedness of every edge
func (w *Workspace) SetDirected(directed bool) {
	w.store.SetDirected(directed)
}

// Clear removes the whole graph and the output log
func (w *Workspace) Clear() {
	w.bump()
	w.editor.CancelGesture()
	w.store.Clear()
	w.log.Clear()
}

// ExportDocument returns the canonical document of the current graph
func (w *Workspace) ExportDocument() *domain.Document {
	return w.store.Export()
}

// ImportDocument validates a lenient document and replaces the graph with it.
// On error nothing changes.
func (w *Workspace) ImportDocument(in *domain.ImportDocument) (*domain.Document, error) {
	doc, err := codec.Normalize(in, w.editor.Defaults().Capacity)
	if err != nil {
		return nil, err
	}
	if err := w.replace(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (w *Workspace) replace(doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", codec.ErrMalformedDocument, err)
	}
	w.bump()
	w.editor.CancelGesture()
	if err := w.store.Replace(doc); err != nil {
		return err
	}
	w.log.Clear()
	return nil
}

// Save writes the current graph to the saved-document slot
func (w *Workspace) Save(ctx context.Context) (*domain.Document, error) {
	if w.repo == nil {
		return nil, ErrNoRepository
	}
	doc := w.store.Export()
	if err := w.repo.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}
	w.logger.Info("graph saved", "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return doc, nil
}

// Load replaces the graph with the saved-document slot
func (w *Workspace) Load(ctx context.Context) (*repository.SavedDocument, error) {
	if w.repo == nil {
		return nil, ErrNoRepository
	}
	saved, err := w.repo.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.replace(saved.Document); err != nil {
		return nil, err
	}
	w.logger.Info("graph loaded", "nodes", len(saved.Document.Nodes), "saved_at", saved.SavedAt)
	return saved, nil
}
