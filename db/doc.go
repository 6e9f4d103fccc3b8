// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and handles schema creation.

# Drivers

Open picks the driver from cliparse.Config.DatabaseType:

  - postgres: github.com/lib/pq (production)
  - sqlite: modernc.org/sqlite (local development and tests)

	conn, err := db.Open(cfg)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on both drivers.

# Tables

  - profiles: Registered users (bcrypt password hash)
  - sessions: Bearer tokens for logged-in users
  - cities: City listing with filter attributes and like/dislike counters
  - cafes: Work-friendly cafes per city
  - reviews: User reviews per city
  - city_likes: One like/dislike stance per user per city

# Relationships

	profiles 1──* sessions
	cities 1──* cafes
	cities 1──* reviews (soft: city may be gone)
	profiles 1──* reviews (soft: profile may be gone)
	profiles *──* cities (via city_likes)

Reviews keep no foreign keys so that their author or city can disappear;
the read path maps those cases to fallback values.
*/
package db
