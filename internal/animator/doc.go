// Package animator turns algorithm results into timed highlight sequences.
//
// Builders translate each backend result into an ordered []Step. Edge
// references from the backend are resolved to edge ids with an EdgeFinder;
// pairs that match no edge keep an empty id and are skipped at playback.
//
// Player replays steps onto a Canvas and an Output: it resets every highlight
// and the output first, applies steps strictly in order and waits a fixed
// delay after each one. Cancelling the context stops a playback between steps.
package animator
