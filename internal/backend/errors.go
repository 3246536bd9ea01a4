package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is returned when the backend cannot be reached
	ErrTransport = errors.New("could not reach the computation backend")
	// ErrMalformedResponse is returned when a reply lacks required fields
	ErrMalformedResponse = errors.New("malformed backend response")
)

// Error is a failure reported by the backend itself
type Error struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed (%s)", e.Endpoint, e.Status)
	}
	return e.Message
}
