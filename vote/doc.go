// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote implements the optimistic like/dislike counter for one city.

# States

A Counter is Idle or Pending. A click while Idle:

 1. computes the next stance with Next (toggle off, or switch)
 2. applies the optimistic counts and calls OnUpdate
 3. sends {city_id, old_action, new_action} through Remote
 4. on success, adopts the server's counts and calls OnUpdate
 5. on a soft error or a Go error, restores the pre-click state and calls OnUpdate
 6. returns to Idle

A click while Pending returns ErrPending without touching state, so there is
never more than one call in flight per city.

	c := vote.New(vote.Config{
		CityID:   city.ID,
		Likes:    city.Likes,
		Dislikes: city.Dislikes,
		Remote:   apiClient,
		OnUpdate: board.ApplyVote,
	})
	err := c.Like(ctx)

Click blocks until the call settles; run it on its own goroutine to keep
the caller responsive. Discard drops any result that arrives afterwards.
*/
package vote
