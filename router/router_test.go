// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/nomad-korea/models"
	"github.com/danielhkuo/nomad-korea/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "nomad-korea API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	// 400, 401 and 404 are all valid handler responses here
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/metrics"},

		{"GET", "/cities"},
		{"GET", "/cities/jeju"},
		{"GET", "/cities/jeju/cafes"},
		{"GET", "/cities/jeju/reviews"},
		{"GET", "/reviews/recent"},

		{"GET", "/cities/jeju/my-vote"},
		{"POST", "/cities/jeju/vote"},

		{"POST", "/auth/signup"},
		{"POST", "/auth/login"},
		{"POST", "/auth/logout"},
		{"GET", "/auth/me"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"PUT to vote endpoint", "PUT", "/cities/jeju/vote", http.StatusMethodNotAllowed},
		{"DELETE a city", "DELETE", "/cities/jeju", http.StatusMethodNotAllowed},
		{"vote without session", "POST", "/cities/jeju/vote", http.StatusUnauthorized},
		{"missing city", "GET", "/cities/atlantis", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestVoteFlowThroughRouter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestCity(t, db, testutil.NewCity("jeju", "제주", "Jeju", 503))
	_, token := testutil.CreateTestUser(t, db, "flow@example.com")
	mux := NewRouter(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/cities/jeju/vote",
		models.UpdateLikeRequest{OldAction: models.ActionNone, NewAction: models.ActionLike},
		testutil.Bearer(token))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// The list reflects the new count
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/cities", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var list models.CityListResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(list.Cities) != 1 || list.Cities[0].Likes != 504 {
		t.Errorf("Expected jeju with 504 likes, got %+v", list.Cities)
	}

	// And my-vote reports the stance
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/cities/jeju/my-vote", nil, testutil.Bearer(token)))
	var mine models.MyVoteResponse
	testutil.AssertJSON(t, w, &mine)
	if mine.Action != models.ActionLike {
		t.Errorf("Expected like, got %q", mine.Action)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	// Generate at least one observation
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/cities", nil))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "nomad_http_requests_total") {
		t.Error("Expected request counter in metrics output")
	}
}
