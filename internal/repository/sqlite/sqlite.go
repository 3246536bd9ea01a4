package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"graphstudio/internal/domain"
	"graphstudio/internal/repository"

	_ "modernc.org/sqlite"
)

// slotName is the key of the single saved-document row
const slotName = "default"

// Repository implements repository.Repository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases alive and serialises writers
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db, now: time.Now}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		slot TEXT PRIMARY KEY,
		data JSON NOT NULL,
		is_directed INTEGER NOT NULL DEFAULT 0,
		node_count INTEGER NOT NULL DEFAULT 0,
		edge_count INTEGER NOT NULL DEFAULT 0,
		saved_at DATETIME NOT NULL
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveDocument overwrites the saved slot with doc
func (r *Repository) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid document: %w", err)
	}
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (slot, data, is_directed, node_count, edge_count, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			data = excluded.data,
			is_directed = excluded.is_directed,
			node_count = excluded.node_count,
			edge_count = excluded.edge_count,
			saved_at = excluded.saved_at
	`, slotName, data, boolToInt(doc.IsDirected), len(doc.Nodes), len(doc.Edges), r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// LoadDocument returns the saved document
func (r *Repository) LoadDocument(ctx context.Context) (*repository.SavedDocument, error) {
	var (
		data    sql.NullString
		savedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT data, saved_at FROM documents WHERE slot = ?
	`, slotName).Scan(&data, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	doc, err := unmarshalDocument(data)
	if err != nil {
		return nil, err
	}
	return &repository.SavedDocument{Document: doc, SavedAt: savedAt}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
