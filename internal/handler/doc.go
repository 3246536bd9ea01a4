// Package handler implements the HTTP API renderers use to drive a workspace.
//
// GraphHandler exposes the snapshot, editing clicks, mode and directedness
// switches, import and export, the saved-document slot, and one endpoint per
// algorithm run. Clicks carry their prompt answers in the request; a prompt
// without an answer counts as cancelled.
//
// # Response Format
//
// Success responses return JSON data with status 200.
// Error responses return JSON with {error, details} structure. Backend
// reported failures are 422, an unreachable or misbehaving backend is 502,
// and a reply superseded by a newer operation is 409.
//
// Middleware provides panic recovery, CORS and request logging.
package handler
