package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/existflow/upcycle/internal/catalog"
	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
)

// Migrations backfill imageUrl on documents written before images existed.
// Only documents with an empty imageUrl are patched, so reruns are no-ops.

// MigrateIdeas fills missing idea images by idea id. Only the remote
// documents change; the mirrored ideas pick it up on the next LoadIdeas.
func (s *Store) MigrateIdeas(ctx context.Context) (int, error) {
	images := catalog.IdeaImages()
	return s.backfill(ctx, docstore.Ideas, func(d docstore.Document) (string, bool) {
		url, ok := images[int64Field(d, "id")]
		return url, ok
	}, nil)
}

// MigratePosts fills missing post images by post id. Like MigrateIdeas
// it leaves the mirror alone.
func (s *Store) MigratePosts(ctx context.Context) (int, error) {
	images := catalog.PostImages()
	return s.backfill(ctx, docstore.Posts, func(d docstore.Document) (string, bool) {
		url, ok := images[int64Field(d, "id")]
		return url, ok
	}, nil)
}

// MigrateProjects fills missing project images by title and reloads the
// project list after each successful patch
func (s *Store) MigrateProjects(ctx context.Context) (int, error) {
	uid, _ := s.session()
	if uid == "" {
		return 0, ErrNoSession
	}

	images := catalog.ProjectImages()
	return s.backfill(ctx, docstore.UserCollection(uid, docstore.Projects), func(d docstore.Document) (string, bool) {
		url, ok := images[str(d, "title")]
		return url, ok
	}, s.LoadProjects)
}

// backfill patches every document of a collection whose imageUrl is empty
// and for which lookup knows an image. Failed patches are skipped.
// patched, when set, runs after every successful patch.
func (s *Store) backfill(ctx context.Context, collection string, lookup func(docstore.Document) (string, bool), patched func(context.Context) error) (int, error) {
	docs, err := s.docs.GetAll(ctx, collection)
	if err != nil {
		s.log.Warn("Failed to read collection for migration", logger.F("collection", collection), logger.Err(err))
		return 0, fmt.Errorf("migrate %s: %w", collection, err)
	}

	var errs []error
	n := 0
	for _, d := range docs {
		if str(d, "imageUrl") != "" {
			continue
		}
		url, ok := lookup(d)
		if !ok {
			continue
		}
		if err := s.docs.Update(ctx, collection, d.ID, map[string]any{"imageUrl": url}); err != nil {
			s.log.Warn("Failed to migrate document",
				logger.F("collection", collection), logger.F("document", d.ID), logger.Err(err))
			errs = append(errs, err)
			continue
		}
		n++
		if patched != nil {
			if err := patched(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if n > 0 {
		s.log.Info("Migrated images", logger.F("collection", collection), logger.F("count", n))
	}
	return n, errors.Join(errs...)
}
