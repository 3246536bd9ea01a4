package domain

// EventType names a change a renderer must apply
type EventType string

const (
	EventNodeAdded       EventType = "node_added"
	EventNodeUpdated     EventType = "node_updated"
	EventNodeRemoved     EventType = "node_removed"
	EventEdgeAdded       EventType = "edge_added"
	EventEdgeUpdated     EventType = "edge_updated"
	EventEdgeRemoved     EventType = "edge_removed"
	EventStylesReset     EventType = "styles_reset"
	EventDirectedChanged EventType = "directed_changed"
	EventGraphReplaced   EventType = "graph_replaced"
	EventLogAppended     EventType = "log_appended"
	EventLogCleared      EventType = "log_cleared"
	EventModeChanged     EventType = "mode_changed"
	EventPlaybackStarted EventType = "playback_started"
	EventPlaybackDone    EventType = "playback_finished"
)

// Event is a data-only description of a change to the session
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Publisher receives events. Implementations must not block.
type Publisher interface {
	Publish(Event)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(Event)

// Publish calls f(e)
func (f PublisherFunc) Publish(e Event) { f(e) }

// Discard is a Publisher that drops every event
var Discard Publisher = PublisherFunc(func(Event) {})
