// Package editor interprets canvas clicks according to the active editing mode.
//
// The Controller owns an explicit Session (mode plus the pending first node of
// an edge gesture) and mutates the graph only through store.GraphStore. Values
// it needs from the user are requested through the Prompter port, so the same
// controller drives the HTTP API, the CLI and tests.
//
// # Modes
//
//	move       no mutation
//	add_node   click on empty canvas, prompt for a label
//	add_edge   click a first node (pending), then a second node, prompt weight and capacity
//	edit_edge  click an edge, prompt weight and capacity pre-filled with its values
//	delete     click an edge to remove it, or a node to remove it with its edges
package editor
