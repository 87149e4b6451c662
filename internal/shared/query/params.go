package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names shared by the API and its clients.
const (
	ParamPage      = "page"
	ParamLimit     = "limit"
	ParamSearch    = "search"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
)

var reservedParams = map[string]bool{
	ParamPage:      true,
	ParamLimit:     true,
	ParamSearch:    true,
	ParamSortBy:    true,
	ParamSortOrder: true,
}

// BuildQueryParams flattens the state into request parameters: page and
// limit always, search/sortBy/sortOrder when set, and every non-empty
// filter.
func (s State) BuildQueryParams() map[string]string {
	params := map[string]string{
		ParamPage:  strconv.Itoa(clampPage(s.Page)),
		ParamLimit: strconv.Itoa(ClampLimit(s.Limit)),
	}
	if s.Search != "" {
		params[ParamSearch] = s.Search
	}
	if s.SortBy != "" {
		params[ParamSortBy] = s.SortBy
		params[ParamSortOrder] = NormalizeOrder(s.SortOrder)
	}
	for k, v := range s.Filters {
		if v == "" || reservedParams[k] {
			continue
		}
		params[k] = v
	}
	return params
}

// Values is BuildQueryParams as url.Values.
func (s State) Values() url.Values {
	return ToValues(s.BuildQueryParams())
}

// ToValues converts a flat parameter map for URL encoding.
func ToValues(params map[string]string) url.Values {
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return values
}

// Parse builds a State from request values. Only keys in allowedFilters
// become filters; everything is clamped rather than rejected.
func Parse(values url.Values, allowedFilters ...string) State {
	page, _ := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage)))
	limit, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamLimit)))
	if err != nil {
		limit = DefaultLimit
	}

	s := New(DefaultPage, DefaultLimit).SetLimit(limit)
	if term := values.Get(ParamSearch); term != "" {
		s = s.SetSearch(term)
	}
	if field := values.Get(ParamSortBy); field != "" {
		s = s.SetSort(field, values.Get(ParamSortOrder))
	}

	filters := make(map[string]string)
	for _, key := range allowedFilters {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			filters[key] = v
		}
	}
	if len(filters) > 0 {
		s = s.SetFilters(filters)
	}

	return s.SetPage(page)
}
