package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/google/uuid"
)

// PostgresDocs is a docstore.Store over a JSONB documents table
type PostgresDocs struct {
	db *sql.DB
}

// NewPostgresDocs wraps an open database
func NewPostgresDocs(db *sql.DB) *PostgresDocs {
	return &PostgresDocs{db: db}
}

func (p *PostgresDocs) scan(rows *sql.Rows) ([]docstore.Document, error) {
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		fields, err := docstore.DecodeFields(data)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		docs = append(docs, docstore.Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

// GetAll returns every document of a collection in insertion order
func (p *PostgresDocs) GetAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY seq`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return p.scan(rows)
}

// Get returns a single document
func (p *PostgresDocs) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	fields, err := docstore.DecodeFields(data)
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{ID: id, Fields: fields}, nil
}

// WhereEquals compares a top-level field as JSONB, so 5 matches 5.0
func (p *PostgresDocs) WhereEquals(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	if !docstore.ValidField(field) {
		return nil, fmt.Errorf("invalid field name %q", field)
	}
	want, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", field, err)
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, data FROM documents
		 WHERE collection = $1 AND data -> $2 = $3::jsonb
		 ORDER BY seq`,
		collection, field, string(want))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return p.scan(rows)
}

// Query returns documents ordered by a field and limited
func (p *PostgresDocs) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	limit := sql.NullInt64{Int64: int64(q.Limit), Valid: q.Limit > 0}

	if q.OrderBy == "" {
		rows, err := p.db.QueryContext(ctx,
			`SELECT id, data FROM documents WHERE collection = $1 ORDER BY seq LIMIT $2`,
			collection, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", collection, err)
		}
		return p.scan(rows)
	}

	if !docstore.ValidField(q.OrderBy) {
		return nil, fmt.Errorf("invalid order field %q", q.OrderBy)
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = $1
		 ORDER BY data -> $2 `+dir+`, seq LIMIT $3`,
		collection, q.OrderBy, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return p.scan(rows)
}

// Set writes a whole document
func (p *PostgresDocs) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := docstore.EncodeFields(fields)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()`,
		collection, id, string(data))
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Add writes a document under a generated id
func (p *PostgresDocs) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	if err := p.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Update merges top-level fields into an existing document
func (p *PostgresDocs) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := docstore.EncodeFields(fields)
	if err != nil {
		return err
	}
	res, err := p.db.ExecContext(ctx, `
		UPDATE documents SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2`,
		collection, id, string(data))
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
