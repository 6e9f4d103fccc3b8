// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/nomad-korea/cliparse"
	"github.com/danielhkuo/nomad-korea/handlers"
	"github.com/danielhkuo/nomad-korea/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	cityHandler := handlers.NewCityHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(db, cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(middleware.WithLogging(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// Cities (public)
	handle("GET /cities", cityHandler.ListCities)
	handle("GET /cities/{id}", cityHandler.GetCity)
	handle("GET /cities/{id}/cafes", cityHandler.ListCafes)
	handle("GET /cities/{id}/reviews", cityHandler.ListReviews)
	handle("GET /reviews/recent", reviewHandler.Recent)

	// Votes (bearer session)
	handle("GET /cities/{id}/my-vote", voteHandler.MyVote)
	handle("POST /cities/{id}/vote", voteHandler.Vote)

	// Accounts
	handle("POST /auth/signup", authHandler.Signup)
	handle("POST /auth/login", authHandler.Login)
	handle("POST /auth/logout", authHandler.Logout)
	handle("GET /auth/me", authHandler.Me)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nomad-korea API v1"))
	})

	return mux
}
