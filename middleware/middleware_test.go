// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/nomad-korea/models"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	wrappedHandler := WithLogging(testHandler)

	req := httptest.NewRequest("GET", "/cities", nil)
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"token":"abc"}`},
		{"BadRequest", http.StatusBadRequest, `{"error":"bad request"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/cities/jeju/vote", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestWithMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cities/{id}", WithMetrics(WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	counter := HTTPRequests.WithLabelValues("GET /cities/{id}", "GET", "404")
	before := promtest.ToFloat64(counter)

	for _, id := range []string{"jeju", "seoul"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/cities/"+id, nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	}

	if got := promtest.ToFloat64(counter) - before; got != 2 {
		t.Errorf("Expected 2 requests recorded under the route pattern, got %v", got)
	}
}

func TestWithMetrics_DefaultStatus(t *testing.T) {
	handler := WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("implicit 200"))
	})

	counter := HTTPRequests.WithLabelValues("unmatched", "GET", "200")
	before := promtest.ToFloat64(counter)

	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/anything", nil))

	if got := promtest.ToFloat64(counter) - before; got != 1 {
		t.Errorf("Expected 1 request recorded with status 200, got %v", got)
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       any
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "vote counts",
			statusCode: http.StatusOK,
			data:       models.UpdateLikeResponse{Likes: 504, Dislikes: 12},
			expected:   `{"likes":504,"dislikes":12}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"봄", "여름"},
			expected:   `["봄","여름"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if contentType := w.Header().Get("Content-Type"); contentType != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
			}

			// Encode appends a newline
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{"bad request", http.StatusBadRequest, "invalid vote action", "Bad Request"},
		{"unauthorized", http.StatusUnauthorized, "login required", "Unauthorized"},
		{"not found", http.StatusNotFound, "city not found", "Not Found"},
		{"conflict", http.StatusConflict, "email already registered", "Conflict"},
		{"internal error", http.StatusInternalServerError, "database error", "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := `{"city_id":"jeju","old_action":"none","new_action":"like"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.UpdateLikeRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.OldAction != models.ActionNone || parsed.NewAction != models.ActionLike {
			t.Errorf("Unexpected actions: %+v", parsed)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.UpdateLikeRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.LoginRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("body is consumed after parsing", func(t *testing.T) {
		body := `{"email":"a@example.com","password":"password123"}`
		req := httptest.NewRequest("POST", "/", io.NopCloser(bytes.NewReader([]byte(body))))

		var parsed models.LoginRequest
		_ = ParseJSONBody(req, &parsed)

		remaining, _ := io.ReadAll(req.Body)
		if len(remaining) > 0 {
			t.Error("Expected body to be consumed")
		}
	})
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/cities/jeju/vote", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		CORS("")(nextHandler).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
			t.Error("Expected Authorization in allowed headers")
		}
	})

	t.Run("configured origin wins", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cities", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		CORS("https://nomad.example")(nextHandler).ServeHTTP(w, req)

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://nomad.example" {
			t.Errorf("Expected configured origin, got '%s'", got)
		}
	})

	t.Run("request without origin defaults to wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cities", nil)
		w := httptest.NewRecorder()

		CORS("")(nextHandler).ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
	})
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{"valid", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing", "", ""},
		{"basic auth", "Basic dXNlcjpwYXNz", ""},
		{"no token", "Bearer", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if got := BearerToken(req); got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, "10.0.0.2:1234", "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.2:1234", "198.51.100.7"},
		{"remote addr with port", nil, "192.0.2.5:5555", "192.0.2.5"},
		{"ipv6 remote addr", nil, "[::1]:8080", "::1"},
		{"remote addr without port", nil, "192.0.2.5", "192.0.2.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}
