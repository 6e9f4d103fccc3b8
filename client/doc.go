// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is an HTTP client for the Nomad Korea API.

List reads never fail: Cities, Search, Cafes, Reviews and RecentReviews log
and return an empty list when the call does not succeed. City separates
ErrNotFound from other failures.

Client implements vote.Remote, so it can back a listing.Board directly:

	c := client.New("http://localhost:3318", nil)
	if _, err := c.Login(ctx, models.LoginRequest{Email: e, Password: pw}); err != nil {
		return err
	}
	board := listing.NewBoard(c.Cities(ctx), c)
	err := board.Vote(ctx, "jeju", models.ActionLike)

A rejected vote arrives in UpdateLikeResponse.Error and the counter rolls
back; a transport failure is returned as an error and rolls back the same
way.
*/
package client
