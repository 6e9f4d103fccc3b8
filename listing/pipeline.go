// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listing

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielhkuo/nomad-korea/models"
)

// SortKey selects the ordering of the visible list.
type SortKey string

const (
	SortLikesDesc SortKey = "likes-desc"
	SortLikesAsc  SortKey = "likes-asc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"

	DefaultSort = SortLikesDesc
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortLikesDesc, SortLikesAsc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// Criteria is the current search, filter and sort selection. An empty
// filter slice places no constraint on that dimension.
type Criteria struct {
	Query        string
	Budgets      []string
	Regions      []string
	Environments []string
	Seasons      []string
	Sort         SortKey
}

// HasFilters reports whether any categorical filter is active.
func (c Criteria) HasFilters() bool {
	return len(c.Budgets) > 0 || len(c.Regions) > 0 || len(c.Environments) > 0 || len(c.Seasons) > 0
}

// HasQuery reports whether the search text is non-blank.
func (c Criteria) HasQuery() bool {
	return strings.TrimSpace(c.Query) != ""
}

// IsZero reports whether c is the reset state.
func (c Criteria) IsZero() bool {
	return !c.HasQuery() && !c.HasFilters() && (c.Sort == "" || c.Sort == DefaultSort)
}

func (c Criteria) clone() Criteria {
	c.Budgets = slices.Clone(c.Budgets)
	c.Regions = slices.Clone(c.Regions)
	c.Environments = slices.Clone(c.Environments)
	c.Seasons = slices.Clone(c.Seasons)
	return c
}

// Apply derives the visible list: overlay votes, search, filter, then a
// stable sort. The input slice is never modified.
func Apply(cities []models.City, votes map[string]models.VoteState, c Criteria) []models.City {
	out := make([]models.City, 0, len(cities))

	query := ""
	if c.HasQuery() {
		query = fold(strings.TrimSpace(c.Query))
	}

	for _, city := range cities {
		if v, ok := votes[city.ID]; ok {
			city.Likes = v.Likes
			city.Dislikes = v.Dislikes
		}

		if query != "" && !strings.Contains(fold(city.Name), query) && !strings.Contains(fold(city.NameEn), query) {
			continue
		}
		if !matches(city, c) {
			continue
		}
		out = append(out, city)
	}

	sortCities(out, c.Sort)
	return out
}

// matches applies the categorical filters: AND across dimensions, any tag
// for environments.
func matches(city models.City, c Criteria) bool {
	if len(c.Budgets) > 0 && !slices.Contains(c.Budgets, city.BudgetRange) {
		return false
	}
	if len(c.Regions) > 0 && !slices.Contains(c.Regions, city.Region) {
		return false
	}
	if len(c.Environments) > 0 && !slices.ContainsFunc(city.Environments, func(env string) bool {
		return slices.Contains(c.Environments, env)
	}) {
		return false
	}
	if len(c.Seasons) > 0 && !slices.Contains(c.Seasons, city.BestSeason) {
		return false
	}
	return true
}

func sortCities(cities []models.City, key SortKey) {
	switch key {
	case SortLikesAsc:
		slices.SortStableFunc(cities, func(a, b models.City) int { return a.Likes - b.Likes })
	case SortNameAsc, SortNameDesc:
		// Collator is not safe for concurrent use
		col := collate.New(language.Korean)
		sign := 1
		if key == SortNameDesc {
			sign = -1
		}
		slices.SortStableFunc(cities, func(a, b models.City) int {
			return sign * col.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(cities, func(a, b models.City) int { return b.Likes - a.Likes })
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// EmptyReason says why the visible list is empty.
type EmptyReason string

const (
	EmptyNone          EmptyReason = ""
	EmptyNoSearchMatch EmptyReason = "no_search_match"
	EmptyNoFilterMatch EmptyReason = "no_filter_match"
)

// Explain picks the empty-state message. A non-blank query wins over any
// active filters.
func Explain(c Criteria, visible []models.City) (EmptyReason, string) {
	if len(visible) > 0 {
		return EmptyNone, ""
	}
	if c.HasQuery() {
		return EmptyNoSearchMatch, fmt.Sprintf("\"%s\" 검색 결과가 없습니다", strings.TrimSpace(c.Query))
	}
	return EmptyNoFilterMatch, "선택한 필터에 맞는 도시가 없습니다"
}
