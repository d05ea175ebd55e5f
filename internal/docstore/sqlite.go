package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is a Store kept in a local SQLite database
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// DefaultPath returns the default database path (~/.upcycle/upcycle.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".upcycle", "upcycle.db"), nil
}

// OpenSQLite opens or creates the database at path. DSNs starting with
// "file:" or ":memory:" are passed through untouched.
func OpenSQLite(path string) (*SQLite, error) {
	if !strings.HasPrefix(path, "file:") && !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serialises writers and keeps in-memory databases alive
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLite{db: sqlDB}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// OpenDefault opens the database at the default path
func OpenDefault() (*SQLite, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenSQLite(path)
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) scan(rows *sql.Rows) ([]Document, error) {
	defer func() {
		_ = rows.Close()
	}()

	var docs []Document
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		fields, err := DecodeFields([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

// GetAll returns every document of a collection in insertion order
func (s *SQLite) GetAll(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = ? ORDER BY seq`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return s.scan(rows)
}

// Get returns a single document
func (s *SQLite) Get(ctx context.Context, collection, id string) (Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	fields, err := DecodeFields([]byte(data))
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Fields: fields}, nil
}

// WhereEquals returns documents whose field equals value
func (s *SQLite) WhereEquals(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if !ValidField(field) {
		return nil, fmt.Errorf("invalid field name %q", field)
	}
	value = sqlValue(value)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents
		 WHERE collection = ? AND json_extract(data, ?) = ?
		 ORDER BY seq`,
		collection, "$."+field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return s.scan(rows)
}

// sqlValue converts a comparison value into what json_extract yields
func sqlValue(value any) any {
	switch v := value.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	}
	return value
}

// Query returns documents ordered by a field and limited
func (s *SQLite) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}

	if q.OrderBy == "" {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, data FROM documents WHERE collection = ? ORDER BY seq LIMIT ?`,
			collection, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", collection, err)
		}
		return s.scan(rows)
	}

	if !ValidField(q.OrderBy) {
		return nil, fmt.Errorf("invalid order field %q", q.OrderBy)
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = ?
		 ORDER BY json_extract(data, ?) `+dir+`, seq LIMIT ?`,
		collection, "$."+q.OrderBy, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return s.scan(rows)
}

// Set writes a whole document
func (s *SQLite) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := EncodeFields(fields)
	if err != nil {
		return err
	}
	now := time.Now().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		collection, id, string(data), now, now)
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Add writes a document under a generated id
func (s *SQLite) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Update merges fields into an existing document
func (s *SQLite) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}

	current, err := DecodeFields([]byte(data))
	if err != nil {
		return err
	}
	merged, err := EncodeFields(Merge(current, fields))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(merged), time.Now().Format(time.RFC3339), collection, id); err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return tx.Commit()
}
