package store

import (
	"context"
	"fmt"

	"github.com/existflow/upcycle/internal/catalog"
	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
)

// Seeding checks emptiness and writes in two steps, so two clients seeding
// an empty collection at the same time can both write. Writes go to fixed
// document ids, which keeps the outcome a single copy of each seed.

// SeedIdeas writes the starter ideas when the ideas collection is empty.
// It returns how many ideas were written.
func (s *Store) SeedIdeas(ctx context.Context) (int, error) {
	empty, err := s.collectionEmpty(ctx, docstore.Ideas)
	if err != nil || !empty {
		return 0, err
	}

	n := 0
	for _, idea := range catalog.SeedIdeas() {
		if err := s.AddIdea(ctx, idea); err != nil {
			return n, err
		}
		n++
	}
	s.log.Info("Seeded ideas", logger.F("count", n))
	return n, nil
}

// SeedCommunityPosts writes the starter posts when the feed is empty.
// It returns how many posts were written.
func (s *Store) SeedCommunityPosts(ctx context.Context) (int, error) {
	empty, err := s.collectionEmpty(ctx, docstore.Posts)
	if err != nil || !empty {
		return 0, err
	}

	n := 0
	for _, post := range catalog.SeedPosts() {
		if err := s.AddCommunityPost(ctx, post); err != nil {
			return n, err
		}
		n++
	}
	s.log.Info("Seeded community posts", logger.F("count", n))
	return n, nil
}

func (s *Store) collectionEmpty(ctx context.Context, collection string) (bool, error) {
	docs, err := s.docs.Query(ctx, collection, docstore.Query{Limit: 1})
	if err != nil {
		s.log.Warn("Failed to check collection", logger.F("collection", collection), logger.Err(err))
		return false, fmt.Errorf("check %s: %w", collection, err)
	}
	return len(docs) == 0, nil
}
