package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/labstack/echo/v4"
)

// MaxDocumentSize bounds request bodies of the document API
const MaxDocumentSize = 1 << 20

// DocumentList is the response of a collection read
type DocumentList struct {
	Documents []docstore.Document `json:"documents"`
}

// canAccess applies the ownership rule: a session reaches its own profile
// document and subcollections plus the shared ideas and posts.
func canAccess(userID, collection, id string) bool {
	if collection == docstore.Users {
		return id != "" && id == userID
	}
	if owner, ok := docstore.SplitUserPath(collection); ok {
		return owner == userID
	}
	return collection == docstore.Ideas || collection == docstore.Posts
}

// collection resolves and authorizes the path of a document request. An
// empty result means the error response was already written.
func (s *Server) collection(c echo.Context, id string) (string, error) {
	collection := strings.Trim(c.Param("*"), "/")
	if !docstore.ValidCollection(collection) {
		return "", errorJSON(c, http.StatusBadRequest, "invalid collection path")
	}
	if !canAccess(currentUser(c), collection, id) {
		return "", errorJSON(c, http.StatusForbidden, "forbidden")
	}
	return collection, nil
}

func (s *Server) readFields(c echo.Context) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxDocumentSize {
		return nil, errors.New("document too large")
	}
	return docstore.DecodeFields(body)
}

func (s *Server) storeError(c echo.Context, op, collection string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "document not found")
	}
	s.log.Error("Document store failed",
		logger.F("op", op), logger.F("collection", collection), logger.Err(err))
	return errorJSON(c, http.StatusInternalServerError, "internal error")
}

// handleDocsGet serves single documents (?id=), equality filters
// (?field=&value=) and ordered reads (?order_by=&desc=&limit=)
func (s *Server) handleDocsGet(c echo.Context) error {
	id := c.QueryParam("id")
	collection, err := s.collection(c, id)
	if collection == "" {
		return err
	}
	ctx := c.Request().Context()

	if id != "" {
		doc, err := s.docs.Get(ctx, collection, id)
		if err != nil {
			return s.storeError(c, "get", collection, err)
		}
		return c.JSON(http.StatusOK, doc)
	}

	var docs []docstore.Document
	if field := c.QueryParam("field"); field != "" {
		if !docstore.ValidField(field) {
			return errorJSON(c, http.StatusBadRequest, "invalid field")
		}
		value, err := docstore.DecodeValue([]byte(c.QueryParam("value")))
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "value must be JSON")
		}
		docs, err = s.docs.WhereEquals(ctx, collection, field, value)
		if err != nil {
			return s.storeError(c, "where", collection, err)
		}
	} else {
		q := docstore.Query{
			OrderBy: c.QueryParam("order_by"),
			Desc:    c.QueryParam("desc") == "true",
		}
		if q.OrderBy != "" && !docstore.ValidField(q.OrderBy) {
			return errorJSON(c, http.StatusBadRequest, "invalid order field")
		}
		if raw := c.QueryParam("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return errorJSON(c, http.StatusBadRequest, "invalid limit")
			}
			q.Limit = limit
		}
		docs, err = s.docs.Query(ctx, collection, q)
		if err != nil {
			return s.storeError(c, "query", collection, err)
		}
	}

	if docs == nil {
		docs = []docstore.Document{}
	}
	return c.JSON(http.StatusOK, DocumentList{Documents: docs})
}

// handleDocSet writes a whole document
func (s *Server) handleDocSet(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return errorJSON(c, http.StatusBadRequest, "id required")
	}
	collection, err := s.collection(c, id)
	if collection == "" {
		return err
	}

	fields, err := s.readFields(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid document")
	}
	if err := s.docs.Set(c.Request().Context(), collection, id, fields); err != nil {
		return s.storeError(c, "set", collection, err)
	}
	return c.JSON(http.StatusOK, docstore.Document{ID: id, Fields: fields})
}

// handleDocAdd writes a document under a generated id
func (s *Server) handleDocAdd(c echo.Context) error {
	collection, err := s.collection(c, "")
	if collection == "" {
		return err
	}

	fields, err := s.readFields(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid document")
	}
	id, err := s.docs.Add(c.Request().Context(), collection, fields)
	if err != nil {
		return s.storeError(c, "add", collection, err)
	}
	return c.JSON(http.StatusCreated, docstore.Document{ID: id, Fields: fields})
}

// handleDocUpdate merges fields into an existing document
func (s *Server) handleDocUpdate(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return errorJSON(c, http.StatusBadRequest, "id required")
	}
	collection, err := s.collection(c, id)
	if collection == "" {
		return err
	}

	fields, err := s.readFields(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid document")
	}
	if err := s.docs.Update(c.Request().Context(), collection, id, fields); err != nil {
		return s.storeError(c, "update", collection, err)
	}
	return c.NoContent(http.StatusNoContent)
}
