// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/nomad-korea/auth"
	"github.com/danielhkuo/nomad-korea/cliparse"
	"github.com/danielhkuo/nomad-korea/middleware"
	"github.com/danielhkuo/nomad-korea/models"
	"github.com/danielhkuo/nomad-korea/store"
)

type AuthHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{store: store.New(db), cfg: cfg}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Name is optional
	name := strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	email, err := auth.NormalizeEmail(req.Email)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrWeakPassword) || errors.Is(err, auth.ErrPasswordTooLong) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	profile := models.Profile{
		ID:           auth.NewUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.store.CreateProfile(r.Context(), profile); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to create profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := h.startSession(r.Context(), profile.ID)
	if err != nil {
		slog.Error("failed to create session", "error", err, "user_id", profile.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("profile created", "user_id", profile.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{Token: token, User: profile})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	email, err := auth.NormalizeEmail(req.Email)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	profile, err := h.store.ProfileByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}
	if err != nil {
		slog.Error("failed to look up profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(profile.PasswordHash, req.Password); err != nil {
		slog.Warn("login failed", "user_id", profile.ID, "client_ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := h.startSession(r.Context(), profile.ID)
	if err != nil {
		slog.Error("failed to create session", "error", err, "user_id", profile.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{Token: token, User: profile})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		if err := h.store.DeleteSession(r.Context(), token); err != nil {
			slog.Error("failed to delete session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := authenticate(w, r, h.store)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}

func (h *AuthHandler) startSession(ctx context.Context, userID string) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	if err := h.store.CreateSession(ctx, token, userID, time.Now().Add(h.cfg.SessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// authenticate resolves the bearer session. It writes 401 and returns
// false when there is none.
func authenticate(w http.ResponseWriter, r *http.Request, st *store.Store) (models.Profile, bool) {
	token := middleware.BearerToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization: Bearer token required")
		return models.Profile{}, false
	}

	user, err := st.ProfileBySession(r.Context(), token, time.Now())
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session expired or invalid")
		return models.Profile{}, false
	}
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Profile{}, false
	}
	return user, true
}
