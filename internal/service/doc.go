// Package service composes the editing session.
//
// Workspace owns the graph store, the output log, the interaction controller,
// the algorithm client, the step player and the operation generation counter.
// Every algorithm run bumps the generation: a backend reply that arrives after
// a newer operation started is discarded with ErrStale, and the playback of an
// older run is cancelled before the next one resets the canvas.
//
// # Event System
//
// Store, log and session changes are published on an EventBus. The hub fans
// them out to renderers over Server-Sent Events and WebSocket.
package service
