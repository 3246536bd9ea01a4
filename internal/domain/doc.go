// Package domain defines the core types for the graphstudio editor.
//
// These are plain values with no storage or transport concerns. The same
// types are shared by the graph store, the interaction controller, the step
// animator and every renderer.
//
// # Core Types
//
// Node is a vertex placed on the canvas, with a label, an optional position and
// a NodeStyle. Edge joins two nodes and carries a weight label, a capacity and
// an EdgeStyle. Directedness is not stored per edge: the arrows of every edge
// follow the session-wide flag (see ArrowsFor).
//
// Document is the canonical {nodes, edges, isDirected} shape used for save,
// load and every backend request. ImportDocument is its lenient superset used
// when reading files: ids may be numbers, optional fields may be missing.
//
// Snapshot is the derived view a renderer draws from.
//
// # Palette
//
// The highlight colours (neutral, pending, visit, final, good, bipartite
// partitions) live in palette.go so every renderer agrees on them.
package domain
