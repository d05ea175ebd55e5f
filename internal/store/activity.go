package store

import (
	"context"
	"fmt"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
	"github.com/google/uuid"
)

// LoadActivityHistory fetches the most recent events, newest first
func (s *Store) LoadActivityHistory(ctx context.Context) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	docs, err := s.docs.Query(ctx, docstore.UserCollection(uid, docstore.Activities), docstore.Query{
		OrderBy: "timestamp",
		Desc:    true,
		Limit:   HistoryLimit,
	})
	if err != nil {
		s.warn("Failed to load activity history", CollectionActivity, err)
		return fmt.Errorf("load activity history: %w", err)
	}

	now := s.now().UnixMilli()
	events := make([]model.ActivityEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, decodeActivity(d, now))
	}

	s.mu.Lock()
	if s.generation == gen {
		s.activity = events
	}
	s.mu.Unlock()

	s.notify(CollectionActivity)
	return nil
}

// Activity returns the loaded history, newest first
func (s *Store) Activity() []model.ActivityEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.activity)
}

// AddActivityEvent stores an event under its own id and prepends it
func (s *Store) AddActivityEvent(ctx context.Context, e model.ActivityEvent) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	if err := s.docs.Set(ctx, docstore.UserCollection(uid, docstore.Activities), e.ID, encodeActivity(e)); err != nil {
		s.warn("Failed to add activity", CollectionActivity, err, logger.F("type", e.Type.String()))
		return fmt.Errorf("add activity: %w", err)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.activity, _ = insertIfAbsent(s.activity, e, activityKey, true)
	}
	s.mu.Unlock()

	s.notify(CollectionActivity)
	return nil
}

// NewActivityEvent stamps an event with a fresh id and the current time
func (s *Store) NewActivityEvent(typ model.ActivityType, title, description string) model.ActivityEvent {
	return model.ActivityEvent{
		ID:          uuid.NewString(),
		Type:        typ,
		Title:       title,
		Description: description,
		Timestamp:   s.now().UnixMilli(),
	}
}

// record appends a history entry. History is best effort: failures are
// logged by AddActivityEvent and never fail the calling operation.
func (s *Store) record(ctx context.Context, typ model.ActivityType, title, description string) {
	_ = s.AddActivityEvent(ctx, s.NewActivityEvent(typ, title, description))
}

func activityKey(e model.ActivityEvent) string { return e.ID }
