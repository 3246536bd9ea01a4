package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"graphstudio/internal/domain"
)

// marshalDocument encodes a document for the data column
func marshalDocument(doc *domain.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	return string(data), nil
}

// unmarshalDocument decodes the data column and checks the graph invariants
func unmarshalDocument(ns sql.NullString) (*domain.Document, error) {
	if !ns.Valid || ns.String == "" {
		return nil, fmt.Errorf("empty document column")
	}
	doc := domain.NewDocument(false)
	if err := json.Unmarshal([]byte(ns.String), doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("stored document is invalid: %w", err)
	}
	return doc, nil
}

// boolToInt converts a bool for an INTEGER column
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
