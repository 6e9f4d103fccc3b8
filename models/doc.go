// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines view, request, and response types for the API.

View types use camelCase JSON to match what the web front end renders.
Request and response envelopes keep the snake_case used by the rest of the
API.

# View Types

  - City: listing/detail record with filterable attributes and vote counts
  - Cafe: work-friendly cafe in a city
  - Review: user review joined with author profile and city name
  - VoteState: per-city likes/dislikes and the current user's action
  - Profile: registered user (password hash never serialized)

# Request Types

  - UpdateLikeRequest: city_id, old_action, new_action
  - SignupRequest: email, password, name
  - LoginRequest: email, password

# Response Types

  - UpdateLikeResponse: likes, dislikes, or error (soft failure)
  - MyVoteResponse: action
  - CityListResponse: cities, count, empty_reason, message
  - CityDetail: city, cafes, reviews, labels
  - AuthResponse: token, user
  - ErrorResponse: error, message

# Constants

Vote actions:

	ActionNone    = "none"
	ActionLike    = "like"
	ActionDislike = "dislike"

Filter dimensions are enumerated in Budgets, Regions, Environments and
Seasons; values outside these lists never match a filter selection.
*/
package models
