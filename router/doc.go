// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Nomad Korea API.

# Route Registration

	mux := router.NewRouter(db, cfg)

Every API route is wrapped with middleware.WithMetrics and
middleware.WithLogging.

# Endpoints

Operational:

	GET /health
	GET /metrics

Cities (public):

	GET /cities                - List, with q/budget/region/environment/season/sort
	GET /cities/{id}           - Detail: city, cafes, reviews, labels
	GET /cities/{id}/cafes     - Cafes in a city
	GET /cities/{id}/reviews   - Reviews, newest first
	GET /reviews/recent        - Newest reviews across cities (?limit=n)

Votes (Authorization: Bearer <token>):

	GET  /cities/{id}/my-vote  - Caller's current stance
	POST /cities/{id}/vote     - {old_action, new_action} -> {likes, dislikes}

Accounts:

	POST /auth/signup
	POST /auth/login
	POST /auth/logout
	GET  /auth/me
*/
package router
