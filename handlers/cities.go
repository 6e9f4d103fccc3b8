// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/nomad-korea/cliparse"
	"github.com/danielhkuo/nomad-korea/listing"
	"github.com/danielhkuo/nomad-korea/middleware"
	"github.com/danielhkuo/nomad-korea/models"
	"github.com/danielhkuo/nomad-korea/store"
)

type CityHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewCityHandler(db *sql.DB, cfg cliparse.Config) *CityHandler {
	return &CityHandler{store: store.New(db), cfg: cfg}
}

// ListCities handles GET /cities
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	criteria := listing.ParseCriteria(r.URL.Query())

	cities, err := h.store.ListCities(r.Context())
	if err != nil {
		// Degrade to an empty list so the page renders its empty state
		slog.Error("failed to list cities", "error", err)
		middleware.DegradedFetches.WithLabelValues("cities").Inc()
		cities = []models.City{}
	}

	visible := listing.Apply(cities, nil, criteria)
	reason, message := listing.Explain(criteria, visible)

	middleware.JSONResponse(w, http.StatusOK, models.CityListResponse{
		Cities:      visible,
		Count:       len(visible),
		EmptyReason: string(reason),
		Message:     message,
	})
}

// GetCity handles GET /cities/{id}
func (h *CityHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	cityID := r.PathValue("id")
	if cityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "city id is required")
		return
	}

	var (
		city    models.City
		cafes   []models.Cafe
		reviews []models.Review
	)

	// Cafes and reviews never fail the group; only the city lookup does
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		city, err = h.store.GetCity(ctx, cityID)
		return err
	})
	g.Go(func() error {
		cafes = h.cafes(ctx, cityID)
		return nil
	})
	g.Go(func() error {
		reviews = h.reviews(ctx, cityID)
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "City not found")
			return
		}
		slog.Error("failed to get city", "error", err, "city_id", cityID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CityDetail{
		City:    city,
		Cafes:   cafes,
		Reviews: reviews,
		Labels:  CityLabels(city),
	})
}

// ListCafes handles GET /cities/{id}/cafes
func (h *CityHandler) ListCafes(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.cafes(r.Context(), r.PathValue("id")))
}

// ListReviews handles GET /cities/{id}/reviews
func (h *CityHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.reviews(r.Context(), r.PathValue("id")))
}

func (h *CityHandler) cafes(ctx context.Context, cityID string) []models.Cafe {
	cafes, err := h.store.ListCafes(ctx, cityID)
	if err != nil && ctx.Err() != nil {
		// Cut short by the caller or a failed city lookup
		return []models.Cafe{}
	}
	if err != nil {
		slog.Error("failed to list cafes", "error", err, "city_id", cityID)
		middleware.DegradedFetches.WithLabelValues("cafes").Inc()
		return []models.Cafe{}
	}
	return cafes
}

func (h *CityHandler) reviews(ctx context.Context, cityID string) []models.Review {
	reviews, err := h.store.ListReviews(ctx, cityID)
	if err != nil && ctx.Err() != nil {
		// Cut short by the caller or a failed city lookup
		return []models.Review{}
	}
	if err != nil {
		slog.Error("failed to list reviews", "error", err, "city_id", cityID)
		middleware.DegradedFetches.WithLabelValues("reviews").Inc()
		return []models.Review{}
	}
	return reviews
}

// CityLabels formats the detail page's headline figures.
func CityLabels(c models.City) models.CityLabels {
	return models.CityLabels{
		CostOfLiving:  humanize.Comma(int64(c.CostOfLiving)) + "원/월",
		InternetSpeed: fmt.Sprintf("%d Mbps", c.InternetSpeed),
		SafetyScore:   fmt.Sprintf("%.1f/5.0", c.SafetyScore),
		WorkSpaces:    humanize.Comma(int64(c.Metrics.CafeCount+c.Metrics.CoworkingCount)) + "개",
		ReviewCount:   "리뷰 " + humanize.Comma(int64(c.ReviewCount)) + "개",
	}
}
