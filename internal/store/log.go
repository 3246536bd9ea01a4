package store

import (
	"sync"

	"graphstudio/internal/domain"
)

// Log is the output pane algorithm runs write their messages to
type Log struct {
	mu    sync.RWMutex
	lines []string
	pub   domain.Publisher
}

// NewLog creates an empty log. A nil publisher discards events.
func NewLog(pub domain.Publisher) *Log {
	if pub == nil {
		pub = domain.Discard
	}
	return &Log{pub: pub}
}

// Append adds a line
func (l *Log) Append(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()

	l.pub.Publish(domain.Event{Type: domain.EventLogAppended, Payload: line})
}

// Clear empties the log
func (l *Log) Clear() {
	l.mu.Lock()
	l.lines = nil
	l.mu.Unlock()

	l.pub.Publish(domain.Event{Type: domain.EventLogCleared})
}

// Lines returns a copy of the log contents
func (l *Log) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
