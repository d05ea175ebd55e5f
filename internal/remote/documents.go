package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/sethvargo/go-retry"
)

// Retry policy for document calls. Transport failures and 5xx answers
// are retried; everything else fails at once. POST creates a document
// under a server-generated id and is never retried, so a dropped
// connection cannot store it twice.
const (
	DefaultRetryBase = 200 * time.Millisecond
	DefaultRetries   = 3
)

// Documents is a docstore.Store backed by the server's document API
type Documents struct {
	client  *Client
	backoff func() retry.Backoff
}

// DocumentsOption configures Documents
type DocumentsOption func(*Documents)

// WithRetry sets the backoff base and the number of retries
func WithRetry(base time.Duration, retries uint64) DocumentsOption {
	return func(d *Documents) {
		d.backoff = func() retry.Backoff {
			return retry.WithMaxRetries(retries, retry.NewExponential(base))
		}
	}
}

// Documents returns the document API of the logged-in session
func (c *Client) Documents(opts ...DocumentsOption) *Documents {
	d := &Documents{client: c}
	WithRetry(DefaultRetryBase, DefaultRetries)(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ docstore.Store = (*Documents)(nil)

// call runs one API request with retries and decodes the answer into out
func (d *Documents) call(ctx context.Context, method, collection string, query map[string]string, body map[string]any, out any) error {
	if !d.client.IsLoggedIn() {
		return ErrNotLoggedIn
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = docstore.EncodeFields(body); err != nil {
			return err
		}
	}

	backoff := d.backoff()
	if method == http.MethodPost {
		backoff = retry.WithMaxRetries(0, backoff)
	}

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := d.client.newRequest(ctx, method, "/api/v1/docs/"+collection, query, payload)
		if err != nil {
			return err
		}
		err = d.client.send(req, out)

		var status *StatusError
		switch {
		case err == nil:
			return nil
		case errors.As(err, &status):
			if status.Code == http.StatusNotFound {
				return docstore.ErrNotFound
			}
			if status.Code >= 500 {
				return retry.RetryableError(err)
			}
			return err
		case ctx.Err() != nil:
			return err
		default:
			return retry.RetryableError(err)
		}
	})
}

// wireDocument keeps numbers exact on decode
type wireDocument struct {
	ID     string          `json:"id"`
	Fields json.RawMessage `json:"fields"`
}

func (w wireDocument) decode() (docstore.Document, error) {
	fields, err := docstore.DecodeFields(w.Fields)
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{ID: w.ID, Fields: fields}, nil
}

func (d *Documents) list(ctx context.Context, collection string, query map[string]string) ([]docstore.Document, error) {
	var resp struct {
		Documents []wireDocument `json:"documents"`
	}
	if err := d.call(ctx, http.MethodGet, collection, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	docs := make([]docstore.Document, 0, len(resp.Documents))
	for _, w := range resp.Documents {
		doc, err := w.decode()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetAll returns every document of a collection
func (d *Documents) GetAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	return d.list(ctx, collection, nil)
}

// Get returns a single document
func (d *Documents) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var w wireDocument
	if err := d.call(ctx, http.MethodGet, collection, map[string]string{"id": id}, nil, &w); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return docstore.Document{}, err
		}
		return docstore.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return w.decode()
}

// WhereEquals returns the documents whose field equals value
func (d *Documents) WhereEquals(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", field, err)
	}
	return d.list(ctx, collection, map[string]string{"field": field, "value": string(encoded)})
}

// Query returns documents ordered and limited as requested
func (d *Documents) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	query := map[string]string{}
	if q.OrderBy != "" {
		query["order_by"] = q.OrderBy
		query["desc"] = strconv.FormatBool(q.Desc)
	}
	if q.Limit > 0 {
		query["limit"] = strconv.Itoa(q.Limit)
	}
	return d.list(ctx, collection, query)
}

// Set writes a whole document
func (d *Documents) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := d.call(ctx, http.MethodPut, collection, map[string]string{"id": id}, fields, nil); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Add writes a document under a server-generated id
func (d *Documents) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	var w wireDocument
	if err := d.call(ctx, http.MethodPost, collection, nil, fields, &w); err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return w.ID, nil
}

// Update merges fields into an existing document
func (d *Documents) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := d.call(ctx, http.MethodPatch, collection, map[string]string{"id": id}, fields, nil); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}
