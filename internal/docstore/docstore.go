// Package docstore defines the schema-less document database the domain
// store mirrors, and a SQLite implementation of it for local use.
//
// A collection is addressed by a slash-separated path: "ideas", "posts",
// "users" or "users/{uid}/projects". Documents are flat field maps; nothing
// is enforced on write, so readers must default every field.
package docstore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a document id does not exist
var ErrNotFound = errors.New("document not found")

// Top-level collections
const (
	Ideas = "ideas"
	Posts = "posts"
	Users = "users"
)

// Per-user subcollections
const (
	Inventory  = "inventory"
	Projects   = "projects"
	Activities = "activities"
)

// Document is a single stored record
type Document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Query orders and limits a collection read
type Query struct {
	OrderBy string // field name; empty keeps insertion order
	Desc    bool
	Limit   int // 0 means no limit
}

// Store is the remote document database protocol.
// Calls are independent; any of them may fail.
type Store interface {
	// GetAll returns every document in insertion order
	GetAll(ctx context.Context, collection string) ([]Document, error)
	// Get returns a document by id or ErrNotFound
	Get(ctx context.Context, collection, id string) (Document, error)
	// WhereEquals returns the documents whose field equals value
	WhereEquals(ctx context.Context, collection, field string, value any) ([]Document, error)
	// Query returns documents ordered and limited as requested
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	// Set writes a whole document, replacing any previous content
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	// Add writes a document under a generated id and returns the id
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Update merges fields into an existing document or returns ErrNotFound
	Update(ctx context.Context, collection, id string, fields map[string]any) error
}

// UserCollection returns the path of a per-user subcollection
func UserCollection(userID, name string) string {
	return Users + "/" + userID + "/" + name
}

// SplitUserPath reports the owner of a per-user path ("users/{uid}/...")
// or of a profile document collection. ok is false for global collections.
func SplitUserPath(collection string) (userID string, ok bool) {
	parts := strings.Split(collection, "/")
	if len(parts) == 3 && parts[0] == Users && parts[1] != "" && parts[2] != "" {
		return parts[1], true
	}
	return "", false
}

// ValidCollection reports whether a path is a well-formed collection path
func ValidCollection(collection string) bool {
	if collection == "" {
		return false
	}
	parts := strings.Split(collection, "/")
	if len(parts)%2 == 0 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// ValidField reports whether a field name can be used in a query
func ValidField(field string) bool {
	if field == "" {
		return false
	}
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
