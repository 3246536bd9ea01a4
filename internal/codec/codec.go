package codec

import (
	"errors"
	"io"

	"graphstudio/internal/domain"
)

var (
	// ErrMalformedDocument is returned when an imported graph document cannot be used
	ErrMalformedDocument = errors.New("malformed graph document")
	// ErrMalformedRepresentation is returned when pasted representation text is rejected
	ErrMalformedRepresentation = errors.New("malformed representation")
)

// Importer interface for importing graph documents from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.ImportDocument, error)
	Format() string
}

// Exporter interface for exporting graph documents to various formats
type Exporter interface {
	Export(doc *domain.Document, w io.Writer) error
	Format() string
}

// ContentTyper is implemented by exporters that know their MIME type
type ContentTyper interface {
	ContentType() string
}
