// Package store is the in-memory mirror of the user's upcycling data.
//
// A Store mirrors the remote collections of the bound session (inventory,
// projects, activity history, profile and badges) plus the global ideas and
// community posts. Adds are write-then-reflect: the local list changes only
// after the remote write succeeded. Loads replace a list wholesale and leave
// it untouched on failure. Every consumer sharing a *Store sees the same
// mirror; all methods are safe for concurrent use.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/existflow/upcycle/internal/catalog"
	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoSession is returned by per-user operations while no user is bound
	ErrNoSession = errors.New("no active session")
	// ErrProjectNotFound is returned when a project id is not in the mirror
	ErrProjectNotFound = errors.New("project not found")
	// ErrPostNotFound is returned when a post id is not in the mirror
	ErrPostNotFound = errors.New("post not found")
	// ErrIdeaNotFound is returned when an idea id is not in the mirror
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrProjectNotStarted is returned when saving steps of a project
	// that was never started
	ErrProjectNotStarted = errors.New("project not started")
)

// GuestName is the display name shown before a profile has loaded
const GuestName = "Kamu"

// HistoryLimit caps how many activity events are loaded
const HistoryLimit = 100

// Collection names a mirrored list in change notifications
type Collection string

const (
	CollectionInventory Collection = "inventory"
	CollectionProjects  Collection = "projects"
	CollectionIdeas     Collection = "ideas"
	CollectionPosts     Collection = "posts"
	CollectionActivity  Collection = "activities"
	CollectionProfile   Collection = "profile"
)

// Change tells subscribers that a mirrored collection was modified
type Change struct {
	Collection Collection
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for swallowed remote failures
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithClock overrides the time source used for ids and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the session-scoped domain mirror
type Store struct {
	docs docstore.Store
	log  *logger.Logger
	now  func() time.Time

	mu         sync.RWMutex
	userID     string
	generation uint64
	profile    model.Profile
	badges     []model.Badge
	inventory  []model.InventoryItem
	projects   []model.Project
	ideas      []model.Idea
	posts      []model.CommunityPost
	activity   []model.ActivityEvent

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int
}

// New creates an unbound store over a document database
func New(docs docstore.Store, opts ...Option) *Store {
	s := &Store{
		docs:    docs,
		log:     logger.Default(),
		now:     time.Now,
		profile: guestProfile(""),
		badges:  catalog.Badges(),
		subs:    make(map[int]chan Change),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func guestProfile(userID string) model.Profile {
	return model.Profile{
		UserID:   userID,
		Username: GuestName,
		Level:    model.DefaultLevel,
	}
}

// Loading tracks the background loads started by BindSession
type Loading struct {
	group errgroup.Group
}

// Wait blocks until every background load finished and returns the
// first failure, if any. Failures never roll back successful loads.
func (l *Loading) Wait() error {
	return l.group.Wait()
}

// BindSession makes userID the active user. It fetches the profile before
// returning and starts every other load plus the image migrations in the
// background; use the returned Loading to wait for them.
//
// Binding a different user clears every per-user list first, so nothing
// of the previous user survives a failed load. An empty userID unbinds.
func (s *Store) BindSession(ctx context.Context, userID string) (*Loading, error) {
	s.mu.Lock()
	if userID != s.userID {
		s.userID = userID
		s.generation++
		s.profile = guestProfile(userID)
		s.badges = catalog.Badges()
		s.inventory = nil
		s.projects = nil
		s.activity = nil
	}
	s.mu.Unlock()
	s.notify(CollectionProfile, CollectionInventory, CollectionProjects, CollectionActivity)

	loading := &Loading{}
	if userID == "" {
		return loading, ErrNoSession
	}

	log := s.log.WithFields(logger.F("user", userID))
	log.Info("Binding session")

	profileErr := s.LoadProfile(ctx)

	// Remote calls run to completion once issued
	bg := context.WithoutCancel(ctx)
	for _, load := range []func(context.Context) error{
		s.LoadInventory,
		s.LoadProjects,
		s.LoadIdeas,
		s.LoadPosts,
		s.LoadActivityHistory,
		s.migrateAll,
	} {
		loading.group.Go(func() error {
			return load(bg)
		})
	}

	return loading, profileErr
}

func (s *Store) migrateAll(ctx context.Context) error {
	_, ideasErr := s.MigrateIdeas(ctx)
	_, postsErr := s.MigratePosts(ctx)
	_, projectsErr := s.MigrateProjects(ctx)
	return errors.Join(ideasErr, postsErr, projectsErr)
}

// session returns the bound user and the binding generation
func (s *Store) session() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.generation
}

// UserID returns the bound user, empty when unbound
func (s *Store) UserID() string {
	uid, _ := s.session()
	return uid
}

// Subscribe returns a channel of change notifications and a function that
// cancels the subscription. Notifications are dropped for slow readers.
func (s *Store) Subscribe() (<-chan Change, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, 16)
	s.subs[id] = ch

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Store) notify(collections ...Collection) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, c := range collections {
		for _, ch := range s.subs {
			select {
			case ch <- Change{Collection: c}:
			default:
			}
		}
	}
}

// warn logs a swallowed remote failure
func (s *Store) warn(msg string, collection Collection, err error, fields ...logger.Field) {
	all := append([]logger.Field{
		logger.F("collection", string(collection)),
		logger.F("user", s.UserID()),
		logger.Err(err),
	}, fields...)
	s.log.Warn(msg, all...)
}

// insertIfAbsent adds item unless an element with the same key exists
func insertIfAbsent[T any, K comparable](list []T, item T, key func(T) K, prepend bool) ([]T, bool) {
	k := key(item)
	for _, existing := range list {
		if key(existing) == k {
			return list, false
		}
	}
	if prepend {
		out := make([]T, 0, len(list)+1)
		out = append(out, item)
		return append(out, list...), true
	}
	return append(list, item), true
}

// replaceByKey swaps the element sharing item's key in place
func replaceByKey[T any, K comparable](list []T, item T, key func(T) K) bool {
	k := key(item)
	for i := range list {
		if key(list[i]) == k {
			list[i] = item
			return true
		}
	}
	return false
}

// findByKey returns the element with key k
func findByKey[T any, K comparable](list []T, k K, key func(T) K) (T, bool) {
	for _, item := range list {
		if key(item) == k {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func cloneSlice[T any](list []T) []T {
	if list == nil {
		return nil
	}
	return append([]T(nil), list...)
}
