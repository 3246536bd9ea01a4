package repository

import (
	"context"
	"errors"
	"time"

	"graphstudio/internal/domain"
)

// ErrNotFound is returned when nothing has been saved yet
var ErrNotFound = errors.New("no saved document")

// SavedDocument is the document held in the slot plus when it was written
type SavedDocument struct {
	Document *domain.Document
	SavedAt  time.Time
}

// Repository defines the interface for saved-document access
type Repository interface {
	// SaveDocument overwrites the slot
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// LoadDocument returns the slot contents or ErrNotFound
	LoadDocument(ctx context.Context) (*SavedDocument, error)

	// Close releases resources
	Close() error
}
