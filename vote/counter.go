// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/nomad-korea/models"
)

var (
	// ErrPending is returned for a click while a previous vote is still in flight.
	ErrPending = errors.New("vote already in flight")
	// ErrRejected wraps a soft error reported by the backend.
	ErrRejected = errors.New("vote rejected")
	// ErrInvalidAction is returned when clicking anything but like or dislike.
	ErrInvalidAction = errors.New("invalid vote action")
)

// Remote is the backend vote mutation.
type Remote interface {
	UpdateCityLike(ctx context.Context, req models.UpdateLikeRequest) (models.UpdateLikeResponse, error)
}

// RemoteFunc adapts a function to Remote.
type RemoteFunc func(ctx context.Context, req models.UpdateLikeRequest) (models.UpdateLikeResponse, error)

func (f RemoteFunc) UpdateCityLike(ctx context.Context, req models.UpdateLikeRequest) (models.UpdateLikeResponse, error) {
	return f(ctx, req)
}

type Config struct {
	CityID   string
	Likes    int
	Dislikes int
	// UserAction pre-seeds the stance known to the server; empty means none.
	UserAction models.VoteAction
	Remote     Remote
	// OnUpdate is optional. It runs after every optimistic, confirmed, or
	// rolled-back change, never while the counter's lock is held.
	OnUpdate func(models.VoteState)
}

// Counter is the like/dislike tally for one city. It is Idle or Pending;
// while Pending every click is refused with ErrPending.
type Counter struct {
	remote   Remote
	onUpdate func(models.VoteState)

	mu        sync.Mutex
	state     models.VoteState
	pending   bool
	discarded bool
}

func New(cfg Config) *Counter {
	action := cfg.UserAction
	if !action.Valid() {
		action = models.ActionNone
	}
	return &Counter{
		remote:   cfg.Remote,
		onUpdate: cfg.OnUpdate,
		state: models.VoteState{
			CityID:     cfg.CityID,
			Likes:      cfg.Likes,
			Dislikes:   cfg.Dislikes,
			UserAction: action,
		},
	}
}

// Next computes the optimistic state after clicking action. Clicking the
// active action clears it; clicking the other one moves the single vote.
func Next(s models.VoteState, action models.VoteAction) models.VoteState {
	next := action
	if s.UserAction == action {
		next = models.ActionNone
	}

	switch s.UserAction {
	case models.ActionLike:
		s.Likes--
	case models.ActionDislike:
		s.Dislikes--
	}
	switch next {
	case models.ActionLike:
		s.Likes++
	case models.ActionDislike:
		s.Dislikes++
	}

	s.UserAction = next
	return s
}

func (c *Counter) State() models.VoteState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Counter) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Discard detaches the counter from its owner. A call still in flight
// completes, but its result is dropped and OnUpdate is not called again.
func (c *Counter) Discard() {
	c.mu.Lock()
	c.discarded = true
	c.mu.Unlock()
}

func (c *Counter) Like(ctx context.Context) error {
	return c.Click(ctx, models.ActionLike)
}

func (c *Counter) Dislike(ctx context.Context) error {
	return c.Click(ctx, models.ActionDislike)
}

// Click runs one optimistic round trip and blocks until it settles.
// On failure the state is restored exactly and the cause is returned;
// the counter is back to Idle in every case.
func (c *Counter) Click(ctx context.Context, action models.VoteAction) error {
	if action != models.ActionLike && action != models.ActionDislike {
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrPending
	}
	if c.discarded {
		c.mu.Unlock()
		return nil
	}
	before := c.state
	optimistic := Next(before, action)
	c.state = optimistic
	c.pending = true
	c.mu.Unlock()

	c.notify(optimistic)

	req := models.UpdateLikeRequest{
		CityID:    before.CityID,
		OldAction: before.UserAction,
		NewAction: optimistic.UserAction,
	}
	resp, err := c.remote.UpdateCityLike(ctx, req)
	if err == nil && resp.Error != "" {
		err = fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}

	settled := before
	if err == nil {
		settled = optimistic
		settled.Likes = resp.Likes
		settled.Dislikes = resp.Dislikes
	}

	c.mu.Lock()
	c.pending = false
	if c.discarded {
		c.mu.Unlock()
		return nil
	}
	c.state = settled
	c.mu.Unlock()

	if err != nil {
		slog.Warn("vote rolled back", "city_id", before.CityID, "action", action, "error", err)
	}
	c.notify(settled)

	return err
}

func (c *Counter) notify(s models.VoteState) {
	if c.onUpdate != nil {
		c.onUpdate(s)
	}
}
