// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/nomad-korea/auth"
	"github.com/danielhkuo/nomad-korea/cliparse"
	"github.com/danielhkuo/nomad-korea/db"
	"github.com/danielhkuo/nomad-korea/models"
	"github.com/danielhkuo/nomad-korea/store"
)

// SetupTestDB creates a fresh SQLite database file with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "nomad-korea-test.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		SessionTTL:   time.Hour,
	}
}

// NewCity returns a fully populated city with the given filter attributes
func NewCity(id, name, nameEn string, likes int) models.City {
	return models.City{
		ID:             id,
		Name:           name,
		NameEn:         nameEn,
		RegionDetail:   name + " 일대",
		Description:    name + " description",
		Images:         []string{"/images/" + id + ".jpg"},
		OverallRating:  4.5,
		CostOfLiving:   1500000,
		InternetSpeed:  500,
		SafetyScore:    4.2,
		CurrentWeather: models.Weather{Temp: 18, FeelsLike: 17, Condition: "맑음"},
		AirQuality:     models.AirQuality{AQI: 40, Level: "좋음"},
		Metrics:        models.CityMetrics{CafeCount: 120, CoworkingCount: 8, TransportScore: 8, CultureScore: 7},
		ReviewCount:    10,
		BookmarkCount:  3,
		Tags:           []string{"바다"},
		Likes:          likes,
		Dislikes:       0,
		BudgetRange:    models.Budget100To200,
		Region:         models.RegionCapital,
		Environments:   []string{models.EnvUrban},
		BestSeason:     models.SeasonSpring,
	}
}

// CreateTestCity inserts a city and returns it
func CreateTestCity(t *testing.T, conn *sql.DB, city models.City) models.City {
	t.Helper()

	if err := store.New(conn).InsertCity(context.Background(), city); err != nil {
		t.Fatalf("Failed to create test city: %v", err)
	}
	return city
}

// CreateTestCafe inserts a cafe for a city and returns its ID
func CreateTestCafe(t *testing.T, conn *sql.DB, cityID, name string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	err := store.New(conn).InsertCafe(context.Background(), models.Cafe{
		ID:             id,
		CityID:         cityID,
		Name:           name,
		Address:        name + " 1길",
		WifiSpeed:      300,
		HasPowerOutlet: true,
		NoiseLevel:     2,
		PriceRange:     2,
		Rating:         4.4,
		Images:         []string{},
	})
	if err != nil {
		t.Fatalf("Failed to create test cafe: %v", err)
	}
	return id
}

// CreateTestReview inserts a review and returns its ID
func CreateTestReview(t *testing.T, conn *sql.DB, cityID, userID string, createdAt time.Time) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	err := store.New(conn).InsertReview(context.Background(), models.Review{
		ID:                id,
		UserID:            userID,
		CityID:            cityID,
		OverallRating:     4.5,
		Ratings:           models.ReviewRatings{CostSatisfaction: 4, InternetQuality: 5},
		Content:           "살기 좋아요",
		RecommendedSeason: []string{models.SeasonSpring},
		CreatedAt:         createdAt,
	})
	if err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}
	return id
}

// CreateTestUser registers a profile and opens a session, returning the
// profile and its bearer token
func CreateTestUser(t *testing.T, conn *sql.DB, email string) (models.Profile, string) {
	t.Helper()

	st := store.New(conn)
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	profile := models.Profile{
		ID:           auth.NewUserID(),
		Email:        email,
		Name:         "Tester",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := st.CreateProfile(context.Background(), profile); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, _ := auth.GenerateSessionToken()
	if err := st.CreateSession(context.Background(), token, profile.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return profile, token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns an Authorization header map for token
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
