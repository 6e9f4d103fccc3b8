// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/nomad-korea/auth"
	"github.com/danielhkuo/nomad-korea/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// DefaultRecentReviews is used when a caller asks for a non-positive limit
const (
	DefaultRecentReviews = 3
	MaxRecentReviews     = 50
)

// Store runs all queries against a Postgres or SQLite connection.
// Every statement sticks to SQL both dialects accept.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const cityColumns = `
	id, name, name_en, region, region_detail, description, images,
	overall_rating, cost_of_living, internet_speed, safety_score,
	current_weather, air_quality, metrics, review_count, bookmark_count,
	rank, tags, likes, dislikes, budget_range, environments, best_season`

func scanCity(s scanner) (models.City, error) {
	var row CityRow
	err := s.Scan(
		&row.ID, &row.Name, &row.NameEn, &row.Region, &row.RegionDetail, &row.Description, &row.Images,
		&row.OverallRating, &row.CostOfLiving, &row.InternetSpeed, &row.SafetyScore,
		&row.CurrentWeather, &row.AirQuality, &row.Metrics, &row.ReviewCount, &row.BookmarkCount,
		&row.Rank, &row.Tags, &row.Likes, &row.Dislikes, &row.BudgetRange, &row.Environments, &row.BestSeason,
	)
	if err != nil {
		return models.City{}, err
	}
	return MapCity(row), nil
}

// ListCities returns every city by rank, unranked cities last.
func (s *Store) ListCities(ctx context.Context) ([]models.City, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+cityColumns+`
		FROM cities
		ORDER BY CASE WHEN rank IS NULL THEN 1 ELSE 0 END, rank, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}

	return cities, nil
}

// GetCity returns ErrNotFound when no city has the given id.
func (s *Store) GetCity(ctx context.Context, id string) (models.City, error) {
	city, err := scanCity(s.db.QueryRowContext(ctx, `
		SELECT `+cityColumns+`
		FROM cities
		WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return models.City{}, ErrNotFound
	}
	if err != nil {
		return models.City{}, fmt.Errorf("failed to query city %s: %w", id, err)
	}
	return city, nil
}

func (s *Store) ListCafes(ctx context.Context, cityID string) ([]models.Cafe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, city_id, name, address, wifi_speed, has_power_outlet,
		       noise_level, price_range, rating, images
		FROM cafes
		WHERE city_id = $1
		ORDER BY created_at, id
	`, cityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cafes: %w", err)
	}
	defer rows.Close()

	cafes := []models.Cafe{}
	for rows.Next() {
		var row CafeRow
		if err := rows.Scan(
			&row.ID, &row.CityID, &row.Name, &row.Address, &row.WifiSpeed, &row.HasPowerOutlet,
			&row.NoiseLevel, &row.PriceRange, &row.Rating, &row.Images,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cafe: %w", err)
		}
		cafes = append(cafes, MapCafe(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cafes: %w", err)
	}

	return cafes, nil
}

const reviewQuery = `
	SELECT r.id, r.user_id, r.city_id, r.overall_rating, r.ratings, r.content, r.images,
	       r.stay_duration, r.occupation, r.recommended_season, r.helpful_count,
	       r.comment_count, r.is_verified, r.created_at,
	       p.name, p.avatar_url, c.name
	FROM reviews r
	LEFT JOIN profiles p ON p.id = r.user_id
	LEFT JOIN cities c ON c.id = r.city_id`

func (s *Store) queryReviews(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var row ReviewRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.CityID, &row.OverallRating, &row.Ratings, &row.Content, &row.Images,
			&row.StayDuration, &row.Occupation, &row.RecommendedSeason, &row.HelpfulCount,
			&row.CommentCount, &row.IsVerified, &row.CreatedAt,
			&row.ProfileName, &row.ProfileAvatar, &row.CityName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, MapReview(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// ListReviews returns a city's reviews, newest first.
func (s *Store) ListReviews(ctx context.Context, cityID string) ([]models.Review, error) {
	return s.queryReviews(ctx, reviewQuery+`
		WHERE r.city_id = $1
		ORDER BY r.created_at DESC, r.id
	`, cityID)
}

// RecentReviews returns the newest reviews across all cities.
func (s *Store) RecentReviews(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = DefaultRecentReviews
	}
	if limit > MaxRecentReviews {
		limit = MaxRecentReviews
	}
	return s.queryReviews(ctx, reviewQuery+`
		ORDER BY r.created_at DESC, r.id
		LIMIT $1
	`, limit)
}

// UserCityLike returns the user's stored stance on a city, ActionNone if there is none.
func (s *Store) UserCityLike(ctx context.Context, userID, cityID string) (models.VoteAction, error) {
	var action string
	err := s.db.QueryRowContext(ctx, `
		SELECT action FROM city_likes WHERE user_id = $1 AND city_id = $2
	`, userID, cityID).Scan(&action)
	if err == sql.ErrNoRows {
		return models.ActionNone, nil
	}
	if err != nil {
		return models.ActionNone, fmt.Errorf("failed to query city like: %w", err)
	}
	return models.VoteAction(action), nil
}

// voteDelta is how much an action contributes to (likes, dislikes).
func voteDelta(a models.VoteAction) (int, int) {
	switch a {
	case models.ActionLike:
		return 1, 0
	case models.ActionDislike:
		return 0, 1
	}
	return 0, 0
}

// UpdateCityLike moves a user's stance from oldAction to newAction and
// returns the authoritative counts. The caller's oldAction is trusted;
// concurrent writers resolve last-write-wins. Counters never drop below 0.
func (s *Store) UpdateCityLike(ctx context.Context, userID, cityID string, oldAction, newAction models.VoteAction) (models.VoteState, error) {
	if !oldAction.Valid() || !newAction.Valid() {
		return models.VoteState{}, fmt.Errorf("invalid vote transition %q -> %q", oldAction, newAction)
	}

	oldLikes, oldDislikes := voteDelta(oldAction)
	newLikes, newDislikes := voteDelta(newAction)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.VoteState{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE cities
		SET likes = CASE WHEN likes + $1 < 0 THEN 0 ELSE likes + $1 END,
		    dislikes = CASE WHEN dislikes + $2 < 0 THEN 0 ELSE dislikes + $2 END
		WHERE id = $3
	`, newLikes-oldLikes, newDislikes-oldDislikes, cityID)
	if err != nil {
		return models.VoteState{}, fmt.Errorf("failed to update city counters: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.VoteState{}, ErrNotFound
	}

	if newAction == models.ActionNone {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM city_likes WHERE user_id = $1 AND city_id = $2
		`, userID, cityID)
	} else {
		var likeID string
		likeID, err = auth.GenerateID(16)
		if err != nil {
			return models.VoteState{}, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO city_likes (id, user_id, city_id, action, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, city_id)
			DO UPDATE SET action = excluded.action, created_at = excluded.created_at
		`, likeID, userID, cityID, string(newAction), time.Now().UTC())
	}
	if err != nil {
		return models.VoteState{}, fmt.Errorf("failed to record city like: %w", err)
	}

	state := models.VoteState{CityID: cityID, UserAction: newAction}
	err = tx.QueryRowContext(ctx, `
		SELECT likes, dislikes FROM cities WHERE id = $1
	`, cityID).Scan(&state.Likes, &state.Dislikes)
	if err != nil {
		return models.VoteState{}, fmt.Errorf("failed to read city counters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.VoteState{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	return state, nil
}

// InsertCity writes a city as-is, including its counters.
func (s *Store) InsertCity(ctx context.Context, c models.City) error {
	var rank sql.NullInt64
	if c.Rank != nil {
		rank = sql.NullInt64{Int64: int64(*c.Rank), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cities (
			id, name, name_en, region, region_detail, description, images,
			overall_rating, cost_of_living, internet_speed, safety_score,
			current_weather, air_quality, metrics, review_count, bookmark_count,
			rank, tags, likes, dislikes, budget_range, environments, best_season, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`,
		c.ID, c.Name, c.NameEn, c.Region, c.RegionDetail, c.Description, encodeList(c.Images),
		c.OverallRating, c.CostOfLiving, c.InternetSpeed, c.SafetyScore,
		encodeObject(c.CurrentWeather), encodeObject(c.AirQuality), encodeObject(c.Metrics), c.ReviewCount, c.BookmarkCount,
		rank, encodeList(c.Tags), c.Likes, c.Dislikes, c.BudgetRange, encodeList(c.Environments), c.BestSeason, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert city: %w", err)
	}
	return nil
}

func (s *Store) InsertCafe(ctx context.Context, c models.Cafe) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cafes (id, city_id, name, address, wifi_speed, has_power_outlet,
		                   noise_level, price_range, rating, images, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID, c.CityID, c.Name, c.Address, c.WifiSpeed, c.HasPowerOutlet,
		c.NoiseLevel, c.PriceRange, c.Rating, encodeList(c.Images), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert cafe: %w", err)
	}
	return nil
}

func (s *Store) InsertReview(ctx context.Context, r models.Review) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, city_id, overall_rating, ratings, content, images,
		                     stay_duration, occupation, recommended_season, helpful_count,
		                     comment_count, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.ID, r.UserID, r.CityID, r.OverallRating, encodeObject(r.Ratings), r.Content, encodeList(r.Images),
		nullString(r.StayDuration), nullString(r.Occupation), encodeList(r.RecommendedSeason), r.HelpfulCount,
		r.CommentCount, r.IsVerified, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// Profiles and sessions

// CreateProfile returns ErrDuplicate if the email is taken.
func (s *Store) CreateProfile(ctx context.Context, p models.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, password_hash, name, avatar_url, occupation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Email, p.PasswordHash, p.Name, nullString(p.AvatarURL), nullString(p.Occupation), p.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

const profileColumns = `p.id, p.email, p.password_hash, p.name, p.avatar_url, p.occupation, p.created_at`

func scanProfile(s scanner) (models.Profile, error) {
	var p models.Profile
	var avatar, occupation sql.NullString
	err := s.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name, &avatar, &occupation, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}
	p.AvatarURL = avatar.String
	p.Occupation = occupation.String
	return p, nil
}

func (s *Store) ProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	return scanProfile(s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles p WHERE p.email = $1
	`, email))
}

func (s *Store) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, token, userID, time.Now().UTC(), expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// ProfileBySession resolves a bearer token; expired sessions are ErrNotFound.
func (s *Store) ProfileBySession(ctx context.Context, token string, now time.Time) (models.Profile, error) {
	return scanProfile(s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM sessions s
		JOIN profiles p ON p.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > $2
	`, token, now.UTC()))
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
