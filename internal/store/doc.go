// Package store holds the graph being edited.
//
// GraphStore is the single owner of the node and edge collections. Every
// mutation goes through it, keeps the structural invariants (unique ids, no
// self loops, no dangling edges) and is published as a domain.Event so
// renderers can follow along. Log is the text output pane that algorithm
// playback writes to.
package store
