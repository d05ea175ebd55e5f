// Package remote talks to the upcycle server: account login and the
// document API the domain store mirrors.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultServerURL is used until a server is configured
const DefaultServerURL = "http://localhost:8080"

// ErrNotLoggedIn is returned by calls that need a session
var ErrNotLoggedIn = errors.New("not logged in, run 'upcycle auth login' first")

// Session is the persisted login state
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// StatusError is a non-success response of the server
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Client is the server client
type Client struct {
	session     *Session
	sessionPath string
	httpClient  *http.Client
}

// DefaultSessionPath returns ~/.upcycle/session.json
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".upcycle", "session.json"), nil
}

// NewClient loads the session stored at sessionPath, if any
func NewClient(sessionPath string) (*Client, error) {
	c := &Client{
		sessionPath: sessionPath,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	if err := c.loadSession(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewDefaultClient loads the session from the default location
func NewDefaultClient() (*Client, error) {
	path, err := DefaultSessionPath()
	if err != nil {
		return nil, err
	}
	return NewClient(path)
}

func (c *Client) loadSession() error {
	c.session = &Session{ServerURL: DefaultServerURL}

	data, err := os.ReadFile(c.sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if err := json.Unmarshal(data, c.session); err != nil {
		return fmt.Errorf("failed to parse session: %w", err)
	}
	if c.session.ServerURL == "" {
		c.session.ServerURL = DefaultServerURL
	}
	return nil
}

func (c *Client) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.sessionPath, data, 0600)
}

// SetServer sets the server URL
func (c *Client) SetServer(url string) error {
	c.session.ServerURL = strings.TrimRight(url, "/")
	return c.saveSession()
}

// IsLoggedIn returns true if a token is stored
func (c *Client) IsLoggedIn() bool {
	return c.session.Token != ""
}

// Session returns a copy of the login state
func (c *Client) Session() Session {
	return *c.session
}

// UserID returns the logged-in user, empty when logged out
func (c *Client) UserID() string {
	return c.session.UserID
}

type authResult struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ExpiresAt string `json:"expires_at"`
}

// Register creates an account and logs in
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	var result authResult
	err := c.postJSON(ctx, "/api/v1/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return fmt.Errorf("register failed: %w", err)
	}
	return c.storeLogin(username, result)
}

// Login authenticates with username and password
func (c *Client) Login(ctx context.Context, username, password string) error {
	var result authResult
	err := c.postJSON(ctx, "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return c.storeLogin(username, result)
}

func (c *Client) storeLogin(username string, result authResult) error {
	c.session.Token = result.Token
	c.session.UserID = result.UserID
	c.session.Username = username
	c.session.ExpiresAt = result.ExpiresAt
	return c.saveSession()
}

// Logout revokes the token on the server and forgets it locally. The
// local session is cleared even when the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	var remoteErr error
	if c.IsLoggedIn() {
		remoteErr = c.postJSON(ctx, "/api/v1/logout", nil, nil)
	}

	c.session.Token = ""
	c.session.UserID = ""
	c.session.Username = ""
	c.session.ExpiresAt = ""
	if err := c.saveSession(); err != nil {
		return err
	}
	return remoteErr
}

// Me returns the account the token belongs to
func (c *Client) Me(ctx context.Context) (map[string]string, error) {
	if !c.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var me map[string]string
	if err := c.send(req, &me); err != nil {
		return nil, err
	}
	return me, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query map[string]string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.session.ServerURL+path, r)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	return req, nil
}

// send performs req and decodes a JSON body into out when given
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
