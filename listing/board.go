// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listing

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/danielhkuo/nomad-korea/models"
	"github.com/danielhkuo/nomad-korea/vote"
)

// ErrUnknownCity is returned when voting on a city the board does not hold.
var ErrUnknownCity = errors.New("city not on board")

// Snapshot is one consistent view of the board. Its maps and slices are
// never written after it is published.
type Snapshot struct {
	Criteria    Criteria
	Visible     []models.City
	Votes       map[string]models.VoteState
	EmptyReason EmptyReason
	Message     string
}

// Board is the list container. It owns the fetched cities, one vote
// counter per city, their VoteStates and the current Criteria. Every
// exported mutation is a single transition that notifies subscribers once.
type Board struct {
	remote vote.Remote

	mu       sync.Mutex
	cities   []models.City
	votes    map[string]models.VoteState // copy-on-write
	counters map[string]*vote.Counter
	criteria Criteria
	subs     map[int]func(Snapshot)
	nextSub  int
	closed   bool
}

// NewBoard builds a board over cities. Votes go through remote.
func NewBoard(cities []models.City, remote vote.Remote) *Board {
	b := &Board{
		remote:   remote,
		cities:   slices.Clone(cities),
		votes:    make(map[string]models.VoteState, len(cities)),
		counters: make(map[string]*vote.Counter, len(cities)),
		criteria: Criteria{Sort: DefaultSort},
		subs:     make(map[int]func(Snapshot)),
	}
	for _, city := range b.cities {
		b.votes[city.ID] = models.VoteState{
			CityID:     city.ID,
			Likes:      city.Likes,
			Dislikes:   city.Dislikes,
			UserAction: models.ActionNone,
		}
		b.counters[city.ID] = b.newCounter(b.votes[city.ID])
	}
	return b
}

func (b *Board) newCounter(s models.VoteState) *vote.Counter {
	var c *vote.Counter
	c = vote.New(vote.Config{
		CityID:     s.CityID,
		Likes:      s.Likes,
		Dislikes:   s.Dislikes,
		UserAction: s.UserAction,
		Remote:     b.remote,
		OnUpdate: func(s models.VoteState) {
			b.applyVote(c, s)
		},
	})
	return c
}

// Subscribe registers fn for every later transition and returns a func that
// removes it. fn runs outside the board's lock and may call back into it.
func (b *Board) Subscribe(fn func(Snapshot)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() Snapshot {
	visible := Apply(b.cities, b.votes, b.criteria)
	reason, msg := Explain(b.criteria, visible)
	return Snapshot{
		Criteria:    b.criteria.clone(),
		Visible:     visible,
		Votes:       b.votes,
		EmptyReason: reason,
		Message:     msg,
	}
}

// update applies fn under the lock and, if fn reports a change, delivers
// one snapshot.
func (b *Board) update(fn func() bool) {
	b.mu.Lock()
	if b.closed || !fn() {
		b.mu.Unlock()
		return
	}
	snap := b.snapshotLocked()
	subs := slices.Collect(maps.Values(b.subs))
	b.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (b *Board) SetQuery(q string) {
	b.update(func() bool {
		b.criteria.Query = q
		return true
	})
}

func (b *Board) SetBudgets(budgets ...string) {
	b.update(func() bool {
		b.criteria.Budgets = slices.Clone(budgets)
		return true
	})
}

func (b *Board) SetRegions(regions ...string) {
	b.update(func() bool {
		b.criteria.Regions = slices.Clone(regions)
		return true
	})
}

func (b *Board) SetEnvironments(envs ...string) {
	b.update(func() bool {
		b.criteria.Environments = slices.Clone(envs)
		return true
	})
}

func (b *Board) SetSeasons(seasons ...string) {
	b.update(func() bool {
		b.criteria.Seasons = slices.Clone(seasons)
		return true
	})
}

// SetSort switches the ordering; an unknown key falls back to the default.
func (b *Board) SetSort(key SortKey) {
	if !key.Valid() {
		key = DefaultSort
	}
	b.update(func() bool {
		b.criteria.Sort = key
		return true
	})
}

// SetCriteria replaces the whole selection, e.g. from a shared link.
func (b *Board) SetCriteria(c Criteria) {
	if !c.Sort.Valid() {
		c.Sort = DefaultSort
	}
	b.update(func() bool {
		b.criteria = c.clone()
		return true
	})
}

// Reset clears the query and every filter and restores the default sort.
func (b *Board) Reset() {
	b.update(func() bool {
		b.criteria = Criteria{Sort: DefaultSort}
		return true
	})
}

// SeedUserAction records the stance the server already knows for a city,
// replacing that city's counter. It fails with vote.ErrPending while a vote
// is in flight.
func (b *Board) SeedUserAction(cityID string, action models.VoteAction) error {
	if !action.Valid() {
		return vote.ErrInvalidAction
	}

	var err error
	b.update(func() bool {
		old, ok := b.counters[cityID]
		if !ok {
			err = ErrUnknownCity
			return false
		}
		if old.Pending() {
			err = vote.ErrPending
			return false
		}
		old.Discard()

		s := b.votes[cityID]
		s.UserAction = action
		b.votes = maps.Clone(b.votes)
		b.votes[cityID] = s
		b.counters[cityID] = b.newCounter(s)
		return true
	})
	return err
}

// Counter returns the vote counter for a city.
func (b *Board) Counter(cityID string) (*vote.Counter, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.counters[cityID]
	return c, ok
}

// Vote clicks like or dislike on a city and blocks until the call settles.
func (b *Board) Vote(ctx context.Context, cityID string, action models.VoteAction) error {
	c, ok := b.Counter(cityID)
	if !ok {
		return ErrUnknownCity
	}
	return c.Click(ctx, action)
}

// applyVote is every counter's OnUpdate. Updates from a counter that has
// since been replaced are dropped.
func (b *Board) applyVote(from *vote.Counter, s models.VoteState) {
	b.update(func() bool {
		if b.counters[s.CityID] != from {
			return false
		}
		if _, ok := b.votes[s.CityID]; !ok {
			return false
		}
		b.votes = maps.Clone(b.votes)
		b.votes[s.CityID] = s
		return true
	})
}

// Close discards every counter so late vote results are dropped, and stops
// all notifications.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, c := range b.counters {
		c.Discard()
	}
	clear(b.subs)
}
