package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"graphstudio/internal/domain"
	"graphstudio/internal/store"
)

// ErrInvalidCapacity is returned when a capacity answer is not a number
var ErrInvalidCapacity = errors.New("capacity must be a number")

// Defaults are the values offered when creating an edge
type Defaults struct {
	Weight   string
	Capacity float64
}

// Click is a canvas click. Node and Edge are empty when nothing was under the pointer.
type Click struct {
	Node string  `json:"node,omitempty"`
	Edge string  `json:"edge,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Outcome describes what a click did
type Outcome string

const (
	OutcomeIgnored     Outcome = "ignored"
	OutcomePending     Outcome = "pending"
	OutcomeNodeAdded   Outcome = "node_added"
	OutcomeEdgeAdded   Outcome = "edge_added"
	OutcomeEdgeUpdated Outcome = "edge_updated"
	OutcomeEdgeRemoved Outcome = "edge_removed"
	OutcomeNodeRemoved Outcome = "node_removed"
	OutcomeCancelled   Outcome = "cancelled"
	OutcomeSelfLoop    Outcome = "self_loop"
)

// Result is the effect of a single click
type Result struct {
	Outcome Outcome      `json:"outcome"`
	Node    *domain.Node `json:"node,omitempty"`
	Edge    *domain.Edge `json:"edge,omitempty"`
	Removed []string     `json:"removed,omitempty"`
	Session Session      `json:"session"`
}

// Controller applies clicks to a graph store according to the active mode
type Controller struct {
	mu       sync.Mutex
	store    *store.GraphStore
	log      *store.Log
	session  Session
	defaults Defaults
	pub      domain.Publisher
}

// NewController creates a controller in move mode
func NewController(s *store.GraphStore, l *store.Log, d Defaults, pub domain.Publisher) *Controller {
	if pub == nil {
		pub = domain.Discard
	}
	return &Controller{
		store:    s,
		log:      l,
		session:  NewSession(),
		defaults: d,
		pub:      pub,
	}
}

// Session returns the current interaction state
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Defaults returns the edge defaults
func (c *Controller) Defaults() Defaults {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaults
}

// SetDefaults replaces the edge defaults
func (c *Controller) SetDefaults(d Defaults) {
	c.mu.Lock()
	c.defaults = d
	c.mu.Unlock()
}

// SetMode switches the editing mode. Any half-finished gesture is dropped and
// every highlight and log line is cleared.
func (c *Controller) SetMode(mode domain.Mode) {
	c.mu.Lock()
	c.session = Session{Mode: mode}
	c.mu.Unlock()

	c.store.ResetStyles()
	if c.log != nil {
		c.log.Clear()
	}
	c.pub.Publish(domain.Event{
		Type:    domain.EventModeChanged,
		Payload: map[string]string{"mode": string(mode), "cursor": mode.Cursor()},
	})
}

// CancelGesture forgets a pending edge start without touching styles
func (c *Controller) CancelGesture() {
	c.mu.Lock()
	c.session.PendingFrom = ""
	c.mu.Unlock()
}

// Click interprets a canvas click in the current mode
func (c *Controller) Click(click Click, p Prompter) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		res Result
		err error
	)
	switch c.session.Mode {
	case domain.ModeAddNode:
		res, err = c.addNode(click, p)
	case domain.ModeAddEdge:
		res, err = c.addEdge(click, p)
	case domain.ModeEditEdge:
		res, err = c.editEdge(click, p)
	case domain.ModeDelete:
		res, err = c.remove(click)
	default:
		res = Result{Outcome: OutcomeIgnored}
	}
	res.Session = c.session
	return res, err
}

func (c *Controller) addNode(click Click, p Prompter) (Result, error) {
	if click.Node != "" || click.Edge != "" {
		return Result{Outcome: OutcomeIgnored}, nil
	}

	label, ok := p.Ask(Prompt{
		Field:   FieldLabel,
		Message: "Node name:",
		Default: strconv.Itoa(c.store.NodeCount() + 1),
	})
	label = strings.TrimSpace(label)
	if !ok || label == "" {
		return Result{Outcome: OutcomeCancelled}, nil
	}

	node, err := c.store.AddNode(label, label, domain.NewPosition(click.X, click.Y))
	if err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	return Result{Outcome: OutcomeNodeAdded, Node: &node}, nil
}

func (c *Controller) addEdge(click Click, p Prompter) (Result, error) {
	if click.Node == "" {
		return Result{Outcome: OutcomeIgnored}, nil
	}

	if !c.session.Pending() {
		if err := c.store.SetNodeStyle(click.Node, domain.PendingNode); err != nil {
			return Result{Outcome: OutcomeIgnored}, err
		}
		c.session.PendingFrom = click.Node
		return Result{Outcome: OutcomePending}, nil
	}

	from, to := c.session.PendingFrom, click.Node
	c.session.PendingFrom = ""
	// the start node may have been removed since the first click
	_ = c.store.SetNodeStyle(from, domain.NeutralNode)
	if from == to {
		return Result{Outcome: OutcomeSelfLoop}, nil
	}

	weight, capacity, ok, err := c.askEdgeFields(p, "Edge weight:", "Edge capacity (max flow):",
		c.defaults.Weight, domain.FormatNumber(c.defaults.Capacity))
	if err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	if !ok {
		return Result{Outcome: OutcomeCancelled}, nil
	}

	edge, err := c.store.AddEdge(from, to, weight, capacity)
	if err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	return Result{Outcome: OutcomeEdgeAdded, Edge: &edge}, nil
}

func (c *Controller) editEdge(click Click, p Prompter) (Result, error) {
	if click.Edge == "" {
		return Result{Outcome: OutcomeIgnored}, nil
	}
	current, ok := c.store.Edge(click.Edge)
	if !ok {
		return Result{Outcome: OutcomeIgnored}, fmt.Errorf("%w: %s", store.ErrUnknownEdge, click.Edge)
	}

	weightDefault := current.Label
	if weightDefault == "" {
		weightDefault = c.defaults.Weight
	}
	weight, capacity, ok, err := c.askEdgeFields(p, "Edit weight:", "Edit capacity (max flow):",
		weightDefault, domain.FormatNumber(current.Capacity))
	if err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	if !ok {
		return Result{Outcome: OutcomeCancelled}, nil
	}

	edge, err := c.store.UpdateEdge(click.Edge, weight, capacity)
	if err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	return Result{Outcome: OutcomeEdgeUpdated, Edge: &edge}, nil
}

// askEdgeFields prompts for weight then capacity. An empty answer takes the
// default; a cancelled prompt returns ok=false.
func (c *Controller) askEdgeFields(p Prompter, weightMsg, capacityMsg, weightDefault, capacityDefault string) (string, float64, bool, error) {
	weight, ok := p.Ask(Prompt{Field: FieldWeight, Message: weightMsg, Default: weightDefault})
	if !ok {
		return "", 0, false, nil
	}
	if weight = strings.TrimSpace(weight); weight == "" {
		weight = weightDefault
	}

	raw, ok := p.Ask(Prompt{Field: FieldCapacity, Message: capacityMsg, Default: capacityDefault})
	if !ok {
		return "", 0, false, nil
	}
	if raw = strings.TrimSpace(raw); raw == "" {
		raw = capacityDefault
	}
	capacity, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, false, fmt.Errorf("%w: %q", ErrInvalidCapacity, raw)
	}
	return weight, capacity, true, nil
}

func (c *Controller) remove(click Click) (Result, error) {
	switch {
	case click.Edge != "":
		if err := c.store.RemoveEdge(click.Edge); err != nil {
			return Result{Outcome: OutcomeIgnored}, err
		}
		return Result{Outcome: OutcomeEdgeRemoved, Removed: []string{click.Edge}}, nil
	case click.Node != "":
		removed, err := c.store.RemoveNode(click.Node)
		if err != nil {
			return Result{Outcome: OutcomeIgnored}, err
		}
		return Result{Outcome: OutcomeNodeRemoved, Removed: removed}, nil
	default:
		return Result{Outcome: OutcomeIgnored}, nil
	}
}
