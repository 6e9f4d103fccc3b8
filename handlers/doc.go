// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Nomad Korea API.

# Handler Types

Each handler is a struct with a store and config:

  - CityHandler: City list, detail, cafes and reviews
  - VoteHandler: Like/dislike mutation and the caller's stance
  - ReviewHandler: Recent reviews across cities
  - AuthHandler: Signup, login, logout, current profile

Handlers are created via constructor functions that accept *sql.DB and Config:

	cityHandler := handlers.NewCityHandler(db, cfg)

# Degraded Reads

Read paths never fail a page because a list could not be fetched. The city
list, cafes, reviews and recent reviews answer 200 with an empty array when
the query fails, and bump middleware.DegradedFetches. A single city lookup
is different: a missing city is 404 and a failed lookup is 500.

# Voting

	POST /cities/{id}/vote  {"old_action":"like","new_action":"dislike"}

The body states the caller's stance before and after the click. The
counters move by the difference and are clamped at zero; the response holds
the authoritative counts. Concurrent writers resolve last-write-wins.

# Sessions

Vote and profile routes require "Authorization: Bearer <token>", issued by
signup or login and valid for cfg.SessionTTL.
*/
package handlers
