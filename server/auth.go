package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
	"github.com/existflow/upcycle/internal/store"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
}

// handleRegister creates an account, its profile document and a session
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "username, email, and password required")
	}

	if len(req.Password) < MinPasswordLength {
		return errorJSON(c, http.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Password hashing failed", logger.Err(err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	ctx := c.Request().Context()
	userID, err := s.accounts.CreateUser(ctx, req.Username, req.Email, string(hash))
	if errors.Is(err, ErrAccountExists) {
		return errorJSON(c, http.StatusConflict, err.Error())
	}
	if err != nil {
		s.log.Error("User creation failed", logger.Err(err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	profiles := store.New(s.docs, store.WithLogger(s.log), store.WithClock(s.now))
	if _, err := profiles.EnsureProfile(ctx, userID, req.Username, req.Email); err != nil {
		s.log.Error("Profile creation failed", logger.F("user", userID), logger.Err(err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	resp, err := s.createSession(ctx, userID)
	if err != nil {
		s.log.Error("Session creation failed", logger.F("user", userID), logger.Err(err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	s.log.Info("User registered", logger.F("username", req.Username), logger.F("user", userID))
	return c.JSON(http.StatusOK, resp)
}

// handleLogin handles user login
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	user, err := s.accounts.UserByUsername(c.Request().Context(), strings.TrimSpace(req.Username))
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}

	resp, err := s.createSession(c.Request().Context(), user.ID)
	if err != nil {
		s.log.Error("Session creation failed", logger.F("user", user.ID), logger.Err(err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	s.log.Info("User logged in", logger.F("username", user.Username))
	return c.JSON(http.StatusOK, resp)
}

// handleMe returns current user info
func (s *Server) handleMe(c echo.Context) error {
	user, err := s.accounts.UserByID(c.Request().Context(), currentUser(c))
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "user not found")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// handleLogout revokes the presented token
func (s *Server) handleLogout(c echo.Context) error {
	token := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	if err := s.accounts.DeleteSession(c.Request().Context(), token); err != nil {
		s.log.Error("Logout failed", logger.Err(err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// createSession issues a token for userID
func (s *Server) createSession(ctx context.Context, userID string) (AuthResponse, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return AuthResponse{}, err
	}

	session := model.Session{
		UserID:    userID,
		Token:     hex.EncodeToString(tokenBytes),
		ExpiresAt: s.now().Add(SessionTTL),
	}
	if err := s.accounts.CreateSession(ctx, session); err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		UserID:    userID,
	}, nil
}
