// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listing

import (
	"net/url"
	"slices"
	"strings"

	"github.com/danielhkuo/nomad-korea/models"
)

// Query parameter names shared by the list endpoint and shareable links.
const (
	ParamQuery       = "q"
	ParamBudget      = "budget"
	ParamRegion      = "region"
	ParamEnvironment = "environment"
	ParamSeason      = "season"
	ParamSort        = "sort"
)

// ParseCriteria reads a selection from URL query values. Each filter
// parameter may repeat or hold a comma-separated list. Values outside the
// known categories are dropped, as is an unknown sort key.
func ParseCriteria(v url.Values) Criteria {
	c := Criteria{
		Query:        v.Get(ParamQuery),
		Budgets:      known(v[ParamBudget], models.Budgets),
		Regions:      known(v[ParamRegion], models.Regions),
		Environments: known(v[ParamEnvironment], models.Environments),
		Seasons:      known(v[ParamSeason], models.Seasons),
		Sort:         DefaultSort,
	}
	if s := SortKey(v.Get(ParamSort)); s.Valid() {
		c.Sort = s
	}
	return c
}

// Values encodes c so that ParseCriteria(c.Values()) yields c again.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.HasQuery() {
		v.Set(ParamQuery, c.Query)
	}
	for _, b := range c.Budgets {
		v.Add(ParamBudget, b)
	}
	for _, r := range c.Regions {
		v.Add(ParamRegion, r)
	}
	for _, e := range c.Environments {
		v.Add(ParamEnvironment, e)
	}
	for _, s := range c.Seasons {
		v.Add(ParamSeason, s)
	}
	if c.Sort != "" && c.Sort != DefaultSort {
		v.Set(ParamSort, string(c.Sort))
	}
	return v
}

func known(raw []string, allowed []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if slices.Contains(allowed, part) && !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}
