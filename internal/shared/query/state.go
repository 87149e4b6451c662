// Package query holds list query state (page, limit, search, sort and
// filters) and the pagination metadata returned alongside list results.
//
// State is an immutable value: every transition returns a new State and
// never mutates the receiver. Invalid input is clamped, never rejected.
package query

import (
	"maps"
	"math"
	"strings"
)

const (
	SortASC  = "ASC"
	SortDESC = "DESC"

	DefaultPage  = 1
	DefaultLimit = 10
)

// AllowedLimits are the page sizes offered to clients.
var AllowedLimits = []int{5, 10, 20, 50, 100}

type State struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]string

	initialPage  int
	initialLimit int
}

// New returns a State starting at page/limit. Both are sanitised and
// remembered as the target of Reset.
func New(page, limit int) State {
	page = clampPage(page)
	limit = ClampLimit(limit)
	return State{
		Page:         page,
		Limit:        limit,
		SortOrder:    SortDESC,
		initialPage:  page,
		initialLimit: limit,
	}
}

// Default is New(DefaultPage, DefaultLimit).
func Default() State {
	return New(DefaultPage, DefaultLimit)
}

func (s State) SetPage(n int) State {
	s = s.clone()
	s.Page = clampPage(n)
	return s
}

func (s State) SetLimit(n int) State {
	s = s.clone()
	s.Limit = ClampLimit(n)
	s.Page = 1
	return s
}

func (s State) SetSearch(term string) State {
	s = s.clone()
	s.Search = strings.TrimSpace(term)
	s.Page = 1
	return s
}

// SetSort sets the sort field and order. An empty order means DESC.
func (s State) SetSort(field, order string) State {
	s = s.clone()
	s.SortBy = strings.TrimSpace(field)
	s.SortOrder = NormalizeOrder(order)
	s.Page = 1
	return s
}

// ToggleSort flips the order when field is already the sort field,
// otherwise sorts by field descending.
func (s State) ToggleSort(field string) State {
	field = strings.TrimSpace(field)
	if field != "" && field == s.SortBy {
		return s.SetSort(field, flip(s.SortOrder))
	}
	return s.SetSort(field, SortDESC)
}

// SetFilters replaces the filter set. The map is copied.
func (s State) SetFilters(filters map[string]string) State {
	if len(filters) == 0 {
		s.Filters = nil
	} else {
		s.Filters = maps.Clone(filters)
	}
	s.Page = 1
	return s
}

// Reset restores the initial page and limit and clears search, sort and
// filters.
func (s State) Reset() State {
	return New(s.initialPage, s.initialLimit)
}

// Offset is the zero-based row offset of the current page. It saturates at
// math.MaxInt for pages too large to address.
func (s State) Offset() int {
	page, limit := clampPage(s.Page), ClampLimit(s.Limit)
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Filter returns the value of a single filter.
func (s State) Filter(key string) string {
	return s.Filters[key]
}

// NormalizeOrder maps any casing of asc/desc to SortASC/SortDESC. Anything
// else is DESC.
func NormalizeOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), SortASC) {
		return SortASC
	}
	return SortDESC
}

// ClampLimit snaps n to the nearest allowed limit; ties go to the smaller.
func ClampLimit(n int) int {
	best := AllowedLimits[0]
	for _, l := range AllowedLimits {
		if l == n {
			return l
		}
		if abs(l-n) < abs(best-n) {
			best = l
		}
	}
	return best
}

// clone gives the copy its own Filters map so transitions never share
// state with the receiver.
func (s State) clone() State {
	s.Filters = maps.Clone(s.Filters)
	return s
}

func clampPage(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func flip(order string) string {
	if NormalizeOrder(order) == SortASC {
		return SortDESC
	}
	return SortASC
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
