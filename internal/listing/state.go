package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// State is the client-side state of a list page.
type State struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// NewState returns page one with the given size.
func NewState(pageSize int) State {
	return State{Page: 1, PageSize: pageSize}
}

// WithSearch changes the search term. Any filter change returns to page one.
func (s State) WithSearch(term string) State {
	if term != s.Search {
		s.Search = term
		s.Page = 1
	}
	return s
}

// WithStatus changes the status filter and returns to page one.
func (s State) WithStatus(status string) State {
	if status != s.Status {
		s.Status = status
		s.Page = 1
	}
	return s
}

// WithPage moves to page n, clamped to at least one.
func (s State) WithPage(n int) State {
	s.Page = max(n, 1)
	return s
}

// Normalize fills in defaults for a state decoded from a request.
func (s State) Normalize(defaultPageSize int) State {
	s.Search = strings.TrimSpace(s.Search)
	if s.PageSize < 1 || s.PageSize > 100 {
		s.PageSize = defaultPageSize
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Apply paginates items with this state's page and size.
func Apply[T any](s State, items []T, filter func(T) bool) Page[T] {
	return Paginate(filter, items, s.Page, s.PageSize)
}

// Reconcile compares the state the client last rendered with the one it now
// sends. If the search or status changed, the requested page is ignored and
// the result is page one.
func Reconcile(prev, next State) State {
	if prev.Search != next.Search || prev.Status != next.Status {
		next.Page = 1
	}
	return next
}

// FromQuery reads search, status, page and pageSize query parameters.
func FromQuery(q url.Values, defaultPageSize int) State {
	s := State{
		Search: q.Get("search"),
		Status: q.Get("status"),
	}
	s.Page, _ = strconv.Atoi(q.Get("page"))
	s.PageSize, _ = strconv.Atoi(q.Get("pageSize"))
	return s.Normalize(defaultPageSize)
}

// Query encodes the state for links, e.g. the pager.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.Status != "" {
		q.Set("status", s.Status)
	}
	q.Set("page", strconv.Itoa(s.Page))
	q.Set("pageSize", strconv.Itoa(s.PageSize))
	return q
}
