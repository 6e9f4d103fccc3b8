// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/nomad-korea/cliparse"
)

// Open connects to the database named by cfg and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	var driver string
	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		driver = "postgres"
	case cliparse.DatabaseSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	// SQLite allows a single writer
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema is valid on both Postgres and SQLite. Array and object columns
// hold JSON documents; ratings are NUMERIC and come back as text on Postgres.
const Schema = `
-- Profiles
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    avatar_url TEXT,
    occupation TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Sessions
CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);

-- Cities
CREATE TABLE IF NOT EXISTS cities (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_en TEXT NOT NULL,
    region TEXT NOT NULL,
    region_detail TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    images JSONB NOT NULL DEFAULT '[]',
    overall_rating NUMERIC(3,2) NOT NULL DEFAULT 0,
    cost_of_living INTEGER NOT NULL DEFAULT 0,
    internet_speed INTEGER NOT NULL DEFAULT 0,
    safety_score NUMERIC(3,2) NOT NULL DEFAULT 0,
    current_weather JSONB NOT NULL DEFAULT '{}',
    air_quality JSONB NOT NULL DEFAULT '{}',
    metrics JSONB NOT NULL DEFAULT '{}',
    review_count INTEGER NOT NULL DEFAULT 0,
    bookmark_count INTEGER NOT NULL DEFAULT 0,
    rank INTEGER,
    tags JSONB NOT NULL DEFAULT '[]',
    likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
    dislikes INTEGER NOT NULL DEFAULT 0 CHECK (dislikes >= 0),
    budget_range TEXT NOT NULL,
    environments JSONB NOT NULL DEFAULT '[]',
    best_season TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cities_rank ON cities(rank);

-- Cafes
CREATE TABLE IF NOT EXISTS cafes (
    id TEXT PRIMARY KEY,
    city_id TEXT NOT NULL REFERENCES cities(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    wifi_speed INTEGER NOT NULL DEFAULT 0,
    has_power_outlet BOOLEAN NOT NULL DEFAULT FALSE,
    noise_level INTEGER NOT NULL DEFAULT 0,
    price_range INTEGER NOT NULL DEFAULT 0,
    rating NUMERIC(3,2) NOT NULL DEFAULT 0,
    images JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cafes_city_id ON cafes(city_id);

-- Reviews
CREATE TABLE IF NOT EXISTS reviews (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    city_id TEXT NOT NULL,
    overall_rating NUMERIC(3,2) NOT NULL,
    ratings JSONB NOT NULL DEFAULT '{}',
    content TEXT NOT NULL,
    images JSONB NOT NULL DEFAULT '[]',
    stay_duration TEXT,
    occupation TEXT,
    recommended_season JSONB NOT NULL DEFAULT '[]',
    helpful_count INTEGER NOT NULL DEFAULT 0,
    comment_count INTEGER NOT NULL DEFAULT 0,
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reviews_city_id ON reviews(city_id);
CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at);

-- City likes (one stance per user per city)
CREATE TABLE IF NOT EXISTS city_likes (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    city_id TEXT NOT NULL REFERENCES cities(id) ON DELETE CASCADE,
    action TEXT NOT NULL CHECK (action IN ('like', 'dislike')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_id, city_id)
);

CREATE INDEX IF NOT EXISTS idx_city_likes_city_id ON city_likes(city_id);
`
