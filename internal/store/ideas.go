package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
)

// LoadIdeas replaces the idea list with the global collection
func (s *Store) LoadIdeas(ctx context.Context) error {
	_, gen := s.session()

	docs, err := s.docs.GetAll(ctx, docstore.Ideas)
	if err != nil {
		s.warn("Failed to load ideas", CollectionIdeas, err)
		return fmt.Errorf("load ideas: %w", err)
	}

	ideas := make([]model.Idea, 0, len(docs))
	for _, d := range docs {
		ideas = append(ideas, decodeIdea(d))
	}

	s.mu.Lock()
	if s.generation == gen {
		s.ideas = ideas
	}
	s.mu.Unlock()

	s.notify(CollectionIdeas)
	return nil
}

// Ideas returns the mirrored ideas
func (s *Store) Ideas() []model.Idea {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.ideas)
}

// Idea looks up a mirrored idea by id
func (s *Store) Idea(id int64) (model.Idea, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByKey(s.ideas, id, ideaKey)
}

// AddIdea stores an idea under its id and appends it locally
func (s *Store) AddIdea(ctx context.Context, idea model.Idea) error {
	id := strconv.FormatInt(idea.ID, 10)
	if err := s.docs.Set(ctx, docstore.Ideas, id, encodeIdea(idea)); err != nil {
		s.warn("Failed to add idea", CollectionIdeas, err, logger.F("idea", idea.ID))
		return fmt.Errorf("add idea: %w", err)
	}

	s.mu.Lock()
	s.ideas, _ = insertIfAbsent(s.ideas, idea, ideaKey, false)
	s.mu.Unlock()

	s.notify(CollectionIdeas)
	return nil
}

func ideaKey(i model.Idea) int64 { return i.ID }
