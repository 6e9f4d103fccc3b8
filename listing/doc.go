// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package listing derives the visible city list from search, filter and sort
selections, and holds the list state that vote counters write back into.

# Pipeline

Apply is a pure function of (cities, votes, criteria), run in this order:

 1. overlay each city's likes/dislikes from its VoteState, if any
 2. keep cities whose name or nameEn contains the query (case-folded)
 3. filter: budget AND region AND environment (any tag) AND season
 4. stable sort: likes-desc (default), likes-asc, name-asc, name-desc

Names compare under Korean collation, so 부산 < 서울 < 제주.

Explain reports why an empty result is empty. A non-blank query always
yields no_search_match; otherwise no_filter_match.

# Board

Board is the container a page or CLI keeps for the lifetime of a list view:

	board := listing.NewBoard(cities, apiClient)
	defer board.Close()

	board.Subscribe(func(s listing.Snapshot) { render(s.Visible) })
	board.SetRegions(models.RegionJeju)
	go board.Vote(ctx, "jeju", models.ActionLike)

Each setter, Reset included, publishes exactly one Snapshot. Vote counters
publish twice per click: once optimistically and once when the call settles.

# Links

ParseCriteria and Criteria.Values map a selection to and from URL query
parameters (q, budget, region, environment, season, sort). Unknown values
are dropped.
*/
package listing
