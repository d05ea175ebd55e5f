package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

// SessionTTL is how long a login stays valid
const SessionTTL = 30 * 24 * time.Hour

// Server is the document server
type Server struct {
	db       *sql.DB
	accounts Accounts
	docs     docstore.Store
	echo     *echo.Echo
	log      *logger.Logger
	now      func() time.Time
}

// New connects to postgres, migrates it and serves documents from it
func New(dbURL string, log *logger.Logger) (*Server, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s := NewWithBackends(NewPostgresAccounts(db), NewPostgresDocs(db), log)
	s.db = db
	return s, nil
}

// NewWithBackends builds a server over arbitrary account and document stores
func NewWithBackends(accounts Accounts, docs docstore.Store, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	s := &Server{
		accounts: accounts,
		docs:     docs,
		log:      log,
		now:      time.Now,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	// Auth endpoints (public)
	limit := s.authRateLimiter()
	api.POST("/register", s.handleRegister, limit)
	api.POST("/login", s.handleLogin, limit)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)
	protected.POST("/logout", s.handleLogout)

	docs := protected.Group("/docs")
	docs.GET("/*", s.handleDocsGet)
	docs.PUT("/*", s.handleDocSet)
	docs.POST("/*", s.handleDocAdd)
	docs.PATCH("/*", s.handleDocUpdate)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}
