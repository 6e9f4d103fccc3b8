// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/danielhkuo/nomad-korea/listing"
	"github.com/danielhkuo/nomad-korea/models"
)

var (
	// ErrNotFound is returned when the requested city does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when a session is missing or expired.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is a non-2xx answer. 404 and 401 unwrap to ErrNotFound and
// ErrUnauthorized.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	}
	return nil
}

// Client talks to the Nomad Korea API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for baseURL. A nil httpClient uses a client with no
// timeout; vote calls then run until the transport gives up.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Cities fetches the full city list. Any failure yields an empty list.
func (c *Client) Cities(ctx context.Context) []models.City {
	return c.Search(ctx, listing.Criteria{}).Cities
}

// Search runs the list pipeline on the server. Any failure yields an
// empty result with the matching empty-state message.
func (c *Client) Search(ctx context.Context, criteria listing.Criteria) models.CityListResponse {
	path := "/cities"
	if q := criteria.Values().Encode(); q != "" {
		path += "?" + q
	}

	var resp models.CityListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		slog.Warn("city list fetch failed", "error", err)
		reason, msg := listing.Explain(criteria, nil)
		return models.CityListResponse{Cities: []models.City{}, EmptyReason: string(reason), Message: msg}
	}
	if resp.Cities == nil {
		resp.Cities = []models.City{}
	}
	return resp
}

// City fetches one city's detail. A missing city is ErrNotFound; any other
// failure is returned as is.
func (c *Client) City(ctx context.Context, id string) (models.CityDetail, error) {
	var detail models.CityDetail
	if err := c.do(ctx, http.MethodGet, "/cities/"+url.PathEscape(id), nil, &detail); err != nil {
		return models.CityDetail{}, err
	}
	return detail, nil
}

// Cafes fetches a city's cafes. Any failure yields an empty list.
func (c *Client) Cafes(ctx context.Context, cityID string) []models.Cafe {
	cafes := []models.Cafe{}
	if err := c.do(ctx, http.MethodGet, "/cities/"+url.PathEscape(cityID)+"/cafes", nil, &cafes); err != nil || cafes == nil {
		slog.Warn("cafe fetch failed", "city_id", cityID, "error", err)
		return []models.Cafe{}
	}
	return cafes
}

// Reviews fetches a city's reviews. Any failure yields an empty list.
func (c *Client) Reviews(ctx context.Context, cityID string) []models.Review {
	reviews := []models.Review{}
	if err := c.do(ctx, http.MethodGet, "/cities/"+url.PathEscape(cityID)+"/reviews", nil, &reviews); err != nil || reviews == nil {
		slog.Warn("review fetch failed", "city_id", cityID, "error", err)
		return []models.Review{}
	}
	return reviews
}

// RecentReviews fetches the newest reviews. Any failure yields an empty list.
func (c *Client) RecentReviews(ctx context.Context, limit int) []models.Review {
	reviews := []models.Review{}
	path := "/reviews/recent?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &reviews); err != nil || reviews == nil {
		slog.Warn("recent review fetch failed", "error", err)
		return []models.Review{}
	}
	return reviews
}

// MyVote returns the caller's stored stance on a city.
func (c *Client) MyVote(ctx context.Context, cityID string) (models.VoteAction, error) {
	var resp models.MyVoteResponse
	if err := c.do(ctx, http.MethodGet, "/cities/"+url.PathEscape(cityID)+"/my-vote", nil, &resp); err != nil {
		return models.ActionNone, err
	}
	if !resp.Action.Valid() {
		return models.ActionNone, nil
	}
	return resp.Action, nil
}

// UpdateCityLike sends one vote mutation. A rejection from the server comes
// back in the response's Error field; only transport and decoding failures
// are returned as errors.
func (c *Client) UpdateCityLike(ctx context.Context, req models.UpdateLikeRequest) (models.UpdateLikeResponse, error) {
	var resp models.UpdateLikeResponse
	err := c.do(ctx, http.MethodPost, "/cities/"+url.PathEscape(req.CityID)+"/vote", req, &resp)

	if err == nil {
		return resp, nil
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		// A non-2xx answer must never read as success.
		msg := statusErr.Message
		if msg == "" {
			msg = statusErr.Error()
		}
		return models.UpdateLikeResponse{Error: msg}, nil
	}
	return models.UpdateLikeResponse{}, err
}

// Signup creates an account and keeps its session token.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (models.Profile, error) {
	return c.authenticate(ctx, "/auth/signup", req)
}

// Login opens a session and keeps its token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.Profile, error) {
	return c.authenticate(ctx, "/auth/login", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (models.Profile, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return models.Profile{}, err
	}
	c.SetToken(resp.Token)
	return resp.User, nil
}

// Logout ends the session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// Me returns the profile behind the current session.
func (c *Client) Me(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return statusError(res)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(res *http.Response) error {
	var body models.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	msg := http.StatusText(res.StatusCode)
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			msg = body.Message
		case body.Error != "":
			msg = body.Error
		}
	}
	// Non-standard codes (CDN 52x) have no status text.
	if msg == "" {
		msg = fmt.Sprintf("status %d", res.StatusCode)
	}
	return &StatusError{StatusCode: res.StatusCode, Message: msg}
}
