package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
	"github.com/existflow/upcycle/internal/store"
	"github.com/existflow/upcycle/server"
	"github.com/stretchr/testify/require"
)

// memAccounts keeps one account per username for end-to-end tests
type memAccounts struct {
	users    map[string]model.User
	sessions map[string]model.Session
}

func (m *memAccounts) CreateUser(_ context.Context, username, email, hash string) (string, error) {
	if _, ok := m.users[username]; ok {
		return "", server.ErrAccountExists
	}
	id := fmt.Sprintf("user-%d", len(m.users)+1)
	m.users[username] = model.User{ID: id, Username: username, Email: email, PasswordHash: hash}
	return id, nil
}

func (m *memAccounts) UserByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := m.users[username]
	if !ok {
		return model.User{}, server.ErrAccountNotFound
	}
	return u, nil
}

func (m *memAccounts) UserByID(_ context.Context, id string) (model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, server.ErrAccountNotFound
}

func (m *memAccounts) CreateSession(_ context.Context, s model.Session) error {
	m.sessions[s.Token] = s
	return nil
}

func (m *memAccounts) SessionByToken(_ context.Context, token string) (model.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return model.Session{}, server.ErrSessionNotFound
	}
	return s, nil
}

func (m *memAccounts) DeleteSession(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func startServer(t *testing.T) string {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	docs, err := docstore.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = docs.Close() })

	accounts := &memAccounts{users: map[string]model.User{}, sessions: map[string]model.Session{}}
	srv := server.NewWithBackends(accounts, docs, logger.Nop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts.URL
}

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, c.SetServer(url))
	return c
}

func TestClient_RegisterPersistsSession(t *testing.T) {
	url := startServer(t)
	path := filepath.Join(t.TempDir(), "session.json")

	c, err := NewClient(path)
	require.NoError(t, err)
	require.False(t, c.IsLoggedIn())
	require.NoError(t, c.SetServer(url+"/"))
	require.NoError(t, c.Register(context.Background(), "sari", "sari@example.com", "correct-horse"))

	reloaded, err := NewClient(path)
	require.NoError(t, err)
	require.True(t, reloaded.IsLoggedIn())
	require.Equal(t, c.UserID(), reloaded.UserID())
	require.Equal(t, url, reloaded.Session().ServerURL)

	me, err := reloaded.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "sari", me["username"])

	require.NoError(t, reloaded.Logout(context.Background()))
	require.False(t, reloaded.IsLoggedIn())
	_, err = reloaded.Me(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClient_LoginFailure(t *testing.T) {
	url := startServer(t)
	c := newClient(t, url)

	err := c.Login(context.Background(), "ghost", "whatever-password")
	var status *StatusError
	require.ErrorAs(t, err, &status)
	require.Equal(t, http.StatusUnauthorized, status.Code)
	require.Equal(t, "invalid credentials", status.Message)
	require.False(t, c.IsLoggedIn())
}

func TestDocuments_NotLoggedIn(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:1")
	_, err := c.Documents().GetAll(context.Background(), docstore.Ideas)
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestDocuments_StoreEndToEnd(t *testing.T) {
	url := startServer(t)
	c := newClient(t, url)
	ctx := context.Background()
	require.NoError(t, c.Register(ctx, "budi", "budi@example.com", "correct-horse"))

	s := store.New(c.Documents(), store.WithLogger(logger.Nop()))
	loading, err := s.BindSession(ctx, c.UserID())
	require.NoError(t, err)
	require.NoError(t, loading.Wait())
	require.Equal(t, "budi", s.Profile().Username)

	n, err := s.SeedIdeas(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	n, err = s.SeedIdeas(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	p, err := s.AdoptIdea(ctx, 1)
	require.NoError(t, err)
	p, err = s.StartProject(ctx, p.ID)
	require.NoError(t, err)

	check := model.NewChecklist(p)
	for i := 0; i < check.Len(); i++ {
		check.Set(i, true)
	}
	saved, err := s.SaveProjectProgress(ctx, p.ID, check)
	require.NoError(t, err)
	require.True(t, saved.IsDone())
	require.Equal(t, model.CompletionPoints, s.Points())

	require.NoError(t, s.AddInventoryItem(ctx, model.InventoryItem{ID: 1, Name: "Botol"}))

	// A fresh mirror over the same account sees the same state
	fresh := store.New(c.Documents(), store.WithLogger(logger.Nop()))
	loading, err = fresh.BindSession(ctx, c.UserID())
	require.NoError(t, err)
	require.NoError(t, loading.Wait())

	got, ok := fresh.Project(p.ID)
	require.True(t, ok)
	require.Equal(t, model.StatusDone, got.Status)
	require.Equal(t, p.Color, got.Color)
	require.Equal(t, model.CompletionPoints, fresh.Points())
	require.Len(t, fresh.Inventory(), 1)
	require.Len(t, fresh.Ideas(), 4)

	done, err := fresh.ProjectsByStatus(ctx, model.StatusDone)
	require.NoError(t, err)
	require.Len(t, done, 1)

	_, err = c.Documents().Get(ctx, docstore.Ideas, "999")
	require.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDocuments_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documents":[{"id":"1","fields":{"id":1,"likes":12345678901}}]}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	c.session.Token = "token"

	docs, err := c.Documents(WithRetry(time.Millisecond, 3)).GetAll(context.Background(), docstore.Posts)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	likes, ok := docs[0].Int64("likes")
	require.True(t, ok)
	require.Equal(t, int64(12345678901), likes)
	require.Equal(t, int32(3), calls.Load())
}

// dropConnection closes the client connection without answering
func dropConnection(w http.ResponseWriter) {
	if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
		_ = conn.Close()
	}
}

func TestDocuments_AddIsSentOnce(t *testing.T) {
	var posts atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		// The document is stored, then the connection drops before the answer
		if posts.Add(1) == 1 {
			dropConnection(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"generated","fields":{}}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	c.session.Token = "token"

	_, err := c.Documents(WithRetry(time.Millisecond, 3)).Add(context.Background(), docstore.Inventory, map[string]any{"id": 1})
	require.Error(t, err)
	require.Equal(t, int32(1), posts.Load())
}

func TestDocuments_RetriesTransportErrorsOnSet(t *testing.T) {
	var puts atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if puts.Add(1) == 1 {
			dropConnection(w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	c.session.Token = "token"

	err := c.Documents(WithRetry(time.Millisecond, 3)).Set(context.Background(), docstore.Posts, "1", map[string]any{"id": 1})
	require.NoError(t, err)
	require.Equal(t, int32(2), puts.Load())
}

func TestDocuments_NoRetryOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	c.session.Token = "token"

	err := c.Documents(WithRetry(time.Millisecond, 3)).Set(context.Background(), docstore.Posts, "1", map[string]any{})
	var status *StatusError
	require.ErrorAs(t, err, &status)
	require.Equal(t, http.StatusForbidden, status.Code)
	require.Equal(t, int32(1), calls.Load())
}

func TestRefresher(t *testing.T) {
	var loads atomic.Int32
	ok := func(context.Context) error { loads.Add(1); return nil }
	fail := func(context.Context) error { return errors.New("offline") }

	r := NewRefresher(time.Hour, logger.Nop(), ok, fail)
	defer r.Stop()

	refreshed := make(chan struct{}, 1)
	r.SetOnRefresh(func() { refreshed <- struct{}{} })

	require.Equal(t, 1, r.RefreshNow(context.Background()))
	require.Equal(t, int32(1), loads.Load())
	select {
	case <-refreshed:
	default:
		t.Fatal("callback not run")
	}

	r.Stop()
	r.Stop()
}
