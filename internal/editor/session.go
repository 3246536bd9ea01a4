package editor

import "graphstudio/internal/domain"

// Session is the interaction state of one canvas
type Session struct {
	Mode        domain.Mode `json:"mode"`
	PendingFrom string      `json:"pendingFrom,omitempty"`
}

// NewSession starts in move mode with no gesture in progress
func NewSession() Session {
	return Session{Mode: domain.ModeMove}
}

// Cursor returns the cursor affordance for the session's mode
func (s Session) Cursor() string {
	return s.Mode.Cursor()
}

// Pending reports whether an edge gesture is half complete
func (s Session) Pending() bool {
	return s.PendingFrom != ""
}
