// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Nomad Korea API server.

Nomad Korea is a directory for picking a Korean city to live and work in:
a filterable city list, city detail pages built from cities, cafes and
reviews, and a like/dislike counter per city.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run .

Or with flags, against a local SQLite file:

	go run . -p 3318 -d ./nomad.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL URL or SQLite file path

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (inferred from DATABASE_URL)
  - CORS_ORIGIN (-cors-origin): allowed origin (default: reflect caller)
  - SESSION_TTL (-session-ttl): login session lifetime (default: 720h)

Variables may also come from a .env file (-env, default ".env"). Values
already in the process environment take precedence.

# Architecture

  - handlers: HTTP request handlers (cities, votes, reviews, auth)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: View models and request/response types
  - store: SQL queries and row-to-view mapping
  - auth: IDs, session tokens, password hashing
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing
  - listing: Search/filter/sort pipeline and list container
  - vote: Optimistic like/dislike counter
  - client: HTTP client for this API

See package documentation for each component.
*/
package main
