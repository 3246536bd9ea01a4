// Package backend is the client for the graph-algorithm computation service.
//
// Each endpoint has one method that packages the canonical graph document and
// its parameters into a single JSON request and decodes the reply into an
// explicit result type. There are no retries and no state between calls.
//
// Failures come in three kinds:
//
//   - *Error: the backend answered with a non-success status and a message
//   - ErrTransport: the backend could not be reached or answered garbage at the HTTP level
//   - ErrMalformedResponse: the reply was JSON but missing required fields
package backend
