// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/nomad-korea/cliparse"
	"github.com/danielhkuo/nomad-korea/middleware"
	"github.com/danielhkuo/nomad-korea/models"
	"github.com/danielhkuo/nomad-korea/store"
)

type VoteHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: store.New(db), cfg: cfg}
}

// MyVote handles GET /cities/{id}/my-vote
func (h *VoteHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	user, ok := authenticate(w, r, h.store)
	if !ok {
		return
	}

	cityID := r.PathValue("id")
	action, err := h.store.UserCityLike(r.Context(), user.ID, cityID)
	if err != nil {
		slog.Error("failed to get city like", "error", err, "city_id", cityID, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{Action: action})
}

// Vote handles POST /cities/{id}/vote
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	user, ok := authenticate(w, r, h.store)
	if !ok {
		return
	}

	cityID := r.PathValue("id")

	var req models.UpdateLikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CityID != "" && req.CityID != cityID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "city_id does not match path")
		return
	}
	if !req.OldAction.Valid() || !req.NewAction.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "old_action and new_action must be like, dislike or none")
		return
	}

	state, err := h.store.UpdateCityLike(r.Context(), user.ID, cityID, req.OldAction, req.NewAction)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "City not found")
		return
	}
	if err != nil {
		slog.Error("failed to update city like", "error", err, "city_id", cityID, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "DB error")
		return
	}

	middleware.CityVotes.WithLabelValues(string(req.OldAction) + "->" + string(req.NewAction)).Inc()
	slog.Info("city vote updated",
		"city_id", cityID,
		"user_id", user.ID,
		"old_action", req.OldAction,
		"new_action", req.NewAction,
		"likes", state.Likes,
		"dislikes", state.Dislikes,
	)

	middleware.JSONResponse(w, http.StatusOK, models.UpdateLikeResponse{
		Likes:    state.Likes,
		Dislikes: state.Dislikes,
	})
}
