package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/upcycle/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const userIDKey = "user_id"

// Register and login allow 20 requests per minute per client IP,
// bursting to 10
const (
	AuthRate  = rate.Limit(20.0 / 60.0)
	AuthBurst = 10
)

// authRateLimiter throttles credential endpoints per client IP
func (s *Server) authRateLimiter() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      AuthRate,
		Burst:     AuthBurst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			s.log.Warn("Rate limit exceeded", logger.F("ip", identifier), logger.F("path", c.Path()))
			return errorJSON(c, http.StatusTooManyRequests, "too many requests")
		},
	})
}

// requestLogger logs every request with its outcome
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		res := c.Response()
		s.log.Info("HTTP Request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()))
		return nil
	}
}

// authMiddleware checks for valid session token
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return errorJSON(c, http.StatusUnauthorized, "authorization required")
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return errorJSON(c, http.StatusUnauthorized, "invalid authorization format")
		}

		session, err := s.accounts.SessionByToken(c.Request().Context(), token)
		if errors.Is(err, ErrSessionNotFound) {
			return errorJSON(c, http.StatusUnauthorized, "invalid token")
		}
		if err != nil {
			s.log.Error("Session lookup failed", logger.Err(err))
			return errorJSON(c, http.StatusInternalServerError, "internal error")
		}

		if session.IsExpired(s.now()) {
			return errorJSON(c, http.StatusUnauthorized, "token expired")
		}

		c.Set(userIDKey, session.UserID)
		return next(c)
	}
}

func currentUser(c echo.Context) string {
	uid, _ := c.Get(userIDKey).(string)
	return uid
}
