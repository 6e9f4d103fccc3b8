// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/nomad-korea/cliparse"
	"github.com/danielhkuo/nomad-korea/middleware"
	"github.com/danielhkuo/nomad-korea/models"
	"github.com/danielhkuo/nomad-korea/store"
)

type ReviewHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewReviewHandler(db *sql.DB, cfg cliparse.Config) *ReviewHandler {
	return &ReviewHandler{store: store.New(db), cfg: cfg}
}

// Recent handles GET /reviews/recent?limit=n
func (h *ReviewHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultRecentReviews
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	reviews, err := h.store.RecentReviews(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list recent reviews", "error", err)
		middleware.DegradedFetches.WithLabelValues("recent_reviews").Inc()
		reviews = []models.Review{}
	}

	middleware.JSONResponse(w, http.StatusOK, reviews)
}
