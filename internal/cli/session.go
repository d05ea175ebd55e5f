package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/existflow/upcycle/internal/config"
	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/remote"
	"github.com/existflow/upcycle/internal/store"
)

// session is a bound store over the configured backend
type session struct {
	store  *store.Store
	client *remote.Client // nil for the local backend
	close  func() error
}

// Close releases the backend
func (s *session) Close() {
	if s.close != nil {
		if err := s.close(); err != nil {
			logger.Warn("Failed to close backend", logger.Err(err))
		}
	}
}

// newClient loads the server session kept next to the config
func newClient() (*remote.Client, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return remote.NewClient(filepath.Join(dir, "session.json"))
}

// openSession opens the configured backend, seeds the shared collections,
// binds the user and waits for the initial loads
func openSession(ctx context.Context) (*session, error) {
	log := logger.WithFields(logger.F("backend", cfg.Backend))

	var (
		sess   = &session{}
		docs   docstore.Store
		userID string
	)

	switch cfg.Backend {
	case config.BackendRemote:
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		if !client.IsLoggedIn() {
			return nil, remote.ErrNotLoggedIn
		}
		sess.client = client
		docs = client.Documents()
		userID = client.UserID()

	default:
		db, err := docstore.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Error("Failed to open database", logger.Err(err))
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		sess.close = db.Close
		docs = db
		userID = cfg.LocalUser
	}

	sess.store = store.New(docs, store.WithLogger(log))

	if cfg.Backend != config.BackendRemote {
		// The server creates the profile on register; locally it is ours to make
		if _, err := sess.store.EnsureProfile(ctx, userID, cfg.Username, ""); err != nil {
			sess.Close()
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	}

	seed(ctx, sess.store, log)

	loading, err := sess.store.BindSession(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			sess.Close()
			return nil, err
		}
		log.Warn("Profile unavailable, showing defaults", logger.Err(err))
	}
	if err := loading.Wait(); err != nil {
		log.Warn("Some collections failed to load", logger.Err(err))
	}

	return sess, nil
}

// seed fills empty shared collections; failures only get logged
func seed(ctx context.Context, s *store.Store, log *logger.Logger) {
	if _, err := s.SeedIdeas(ctx); err != nil {
		log.Warn("Failed to seed ideas", logger.Err(err))
	}
	if _, err := s.SeedCommunityPosts(ctx); err != nil {
		log.Warn("Failed to seed community posts", logger.Err(err))
	}
}
