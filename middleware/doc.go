// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap handlers with metrics and request logging:

	mux.HandleFunc("GET /cities", middleware.WithMetrics(middleware.WithLogging(handler)))

WithLogging logs request start (method, path, client_ip) and completion
(status, duration_ms). WithMetrics feeds nomad_http_requests_total and
nomad_http_request_duration_seconds, labelled by the matched route pattern.
Handlers also bump CityVotes and DegradedFetches directly.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
	}

An empty origin reflects the caller's Origin header.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.UpdateLikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Request Helpers

	token := middleware.BearerToken(r)
	ip := middleware.GetClientIP(r)
*/
package middleware
