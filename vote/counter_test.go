package vote

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/nomad-korea/models"
)

// fakeRemote records every request and answers with a fixed response.
type fakeRemote struct {
	mu    sync.Mutex
	calls []models.UpdateLikeRequest
	resp  models.UpdateLikeResponse
	err   error
}

func (f *fakeRemote) UpdateCityLike(_ context.Context, req models.UpdateLikeRequest) (models.UpdateLikeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func (f *fakeRemote) Calls() []models.UpdateLikeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.UpdateLikeRequest(nil), f.calls...)
}

func state(likes, dislikes int, action models.VoteAction) models.VoteState {
	return models.VoteState{CityID: "jeju", Likes: likes, Dislikes: dislikes, UserAction: action}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		from   models.VoteState
		action models.VoteAction
		want   models.VoteState
	}{
		{"like from none", state(100, 5, models.ActionNone), models.ActionLike, state(101, 5, models.ActionLike)},
		{"dislike from none", state(100, 5, models.ActionNone), models.ActionDislike, state(100, 6, models.ActionDislike)},
		{"like toggles off", state(100, 5, models.ActionLike), models.ActionLike, state(99, 5, models.ActionNone)},
		{"dislike toggles off", state(100, 5, models.ActionDislike), models.ActionDislike, state(100, 4, models.ActionNone)},
		{"like to dislike", state(100, 5, models.ActionLike), models.ActionDislike, state(99, 6, models.ActionDislike)},
		{"dislike to like", state(100, 5, models.ActionDislike), models.ActionLike, state(101, 4, models.ActionLike)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.from, tt.action))
		})
	}
}

func TestClick_SuccessUsesAuthoritativeCounts(t *testing.T) {
	remote := &fakeRemote{resp: models.UpdateLikeResponse{Likes: 102, Dislikes: 5}}
	var updates []models.VoteState
	c := New(Config{
		CityID: "jeju", Likes: 100, Dislikes: 5,
		Remote:   remote,
		OnUpdate: func(s models.VoteState) { updates = append(updates, s) },
	})

	require.NoError(t, c.Like(context.Background()))

	assert.Equal(t, state(102, 5, models.ActionLike), c.State())
	assert.False(t, c.Pending())
	require.Len(t, updates, 2)
	assert.Equal(t, state(101, 5, models.ActionLike), updates[0], "optimistic first")
	assert.Equal(t, state(102, 5, models.ActionLike), updates[1], "authoritative second")

	calls := remote.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.UpdateLikeRequest{CityID: "jeju", OldAction: models.ActionNone, NewAction: models.ActionLike}, calls[0])
}

func TestClick_SequenceSettlesOnServerCounts(t *testing.T) {
	remote := &fakeRemote{resp: models.UpdateLikeResponse{Likes: 7, Dislikes: 3}}
	c := New(Config{CityID: "jeju", Likes: 100, Dislikes: 5, Remote: remote})
	ctx := context.Background()

	clicks := []models.VoteAction{
		models.ActionLike, models.ActionDislike, models.ActionDislike,
		models.ActionLike, models.ActionLike, models.ActionDislike,
	}
	for _, a := range clicks {
		require.NoError(t, c.Click(ctx, a))
		got := c.State()
		assert.Equal(t, 7, got.Likes)
		assert.Equal(t, 3, got.Dislikes)
	}
	assert.Len(t, remote.Calls(), len(clicks))
}

func TestClick_ToggleAndSwitchRequests(t *testing.T) {
	remote := &fakeRemote{resp: models.UpdateLikeResponse{Likes: 99, Dislikes: 5}}
	c := New(Config{CityID: "jeju", Likes: 100, Dislikes: 5, UserAction: models.ActionLike, Remote: remote})
	ctx := context.Background()

	// Clicking the active action toggles it off
	require.NoError(t, c.Like(ctx))
	assert.Equal(t, models.ActionNone, c.State().UserAction)

	// Switch directly from like to dislike in a single call
	c2 := New(Config{CityID: "jeju", Likes: 100, Dislikes: 5, UserAction: models.ActionLike, Remote: remote})
	var optimistic models.VoteState
	c2.onUpdate = func(s models.VoteState) {
		if optimistic.CityID == "" {
			optimistic = s
		}
	}
	require.NoError(t, c2.Dislike(ctx))
	assert.Equal(t, state(99, 6, models.ActionDislike), optimistic)

	calls := remote.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, models.ActionLike, calls[0].OldAction)
	assert.Equal(t, models.ActionNone, calls[0].NewAction)
	assert.Equal(t, models.ActionLike, calls[1].OldAction)
	assert.Equal(t, models.ActionDislike, calls[1].NewAction)
}

func TestClick_RollbackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		remote  *fakeRemote
		wantErr error
	}{
		{
			name:    "soft error payload",
			remote:  &fakeRemote{resp: models.UpdateLikeResponse{Error: "DB error"}},
			wantErr: ErrRejected,
		},
		{
			name:   "transport error",
			remote: &fakeRemote{err: errors.New("connection refused")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updates []models.VoteState
			c := New(Config{
				CityID: "jeju", Likes: 100, Dislikes: 5, UserAction: models.ActionDislike,
				Remote:   tt.remote,
				OnUpdate: func(s models.VoteState) { updates = append(updates, s) },
			})
			before := c.State()

			err := c.Like(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.Equal(t, before, c.State(), "rollback restores exact pre-click state")
			assert.False(t, c.Pending())
			require.Len(t, updates, 2)
			assert.Equal(t, state(101, 4, models.ActionLike), updates[0])
			assert.Equal(t, before, updates[1])
		})
	}
}

func TestClick_IgnoredWhilePending(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var calls int
	var mu sync.Mutex
	remote := RemoteFunc(func(ctx context.Context, req models.UpdateLikeRequest) (models.UpdateLikeResponse, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
		return models.UpdateLikeResponse{Likes: 101, Dislikes: 5}, nil
	})

	c := New(Config{CityID: "jeju", Likes: 100, Dislikes: 5, Remote: remote})

	done := make(chan error, 1)
	go func() { done <- c.Like(context.Background()) }()

	<-entered
	assert.True(t, c.Pending())
	assert.ErrorIs(t, c.Like(context.Background()), ErrPending)
	assert.ErrorIs(t, c.Dislike(context.Background()), ErrPending)
	assert.Equal(t, state(101, 5, models.ActionLike), c.State(), "optimistic state visible while pending")

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
	assert.False(t, c.Pending())
	assert.Equal(t, state(101, 5, models.ActionLike), c.State())
}

func TestClick_WithoutCallback(t *testing.T) {
	c := New(Config{CityID: "jeju", Likes: 1, Dislikes: 1, Remote: &fakeRemote{err: errors.New("boom")}})

	assert.NotPanics(t, func() { _ = c.Dislike(context.Background()) })
	assert.Equal(t, state(1, 1, models.ActionNone), c.State())
}

func TestClick_InvalidAction(t *testing.T) {
	remote := &fakeRemote{}
	c := New(Config{CityID: "jeju", Remote: remote})

	assert.ErrorIs(t, c.Click(context.Background(), models.ActionNone), ErrInvalidAction)
	assert.Empty(t, remote.Calls())
}

func TestNew_InvalidSeedFallsBackToNone(t *testing.T) {
	c := New(Config{CityID: "jeju", UserAction: "love"})
	assert.Equal(t, models.ActionNone, c.State().UserAction)
}

func TestDiscard_DropsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	remote := RemoteFunc(func(ctx context.Context, req models.UpdateLikeRequest) (models.UpdateLikeResponse, error) {
		close(entered)
		<-release
		return models.UpdateLikeResponse{Error: "late failure"}, nil
	})

	var mu sync.Mutex
	var updates int
	c := New(Config{
		CityID: "jeju", Likes: 10, Remote: remote,
		OnUpdate: func(models.VoteState) { mu.Lock(); updates++; mu.Unlock() },
	})

	done := make(chan error, 1)
	go func() { done <- c.Like(context.Background()) }()
	<-entered
	c.Discard()
	close(release)

	assert.NoError(t, <-done, "a discarded result is not an error")
	mu.Lock()
	assert.Equal(t, 1, updates, "only the optimistic update was delivered")
	mu.Unlock()
	assert.False(t, c.Pending())

	// Further clicks on a discarded counter do nothing
	assert.NoError(t, c.Like(context.Background()))
}
