// Package listing implements the search, status filter and pagination shared
// by every list page.
package listing

import "strings"

// Page is one slice of a filtered list together with its totals.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }

func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Paginate filters items (keeping backend order) and returns the requested
// page. A nil filter keeps everything. page is clamped to at least 1; a page
// past the end yields no items but still reports the totals.
func Paginate[T any](filter func(T) bool, items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	filtered := items
	if filter != nil {
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			if filter(item) {
				filtered = append(filtered, item)
			}
		}
	}

	total := len(filtered)
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return result
	}
	end := min(start+pageSize, total)
	result.Items = filtered[start:end]
	return result
}

// Filter returns the items matching keep, in order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// MatchAny reports whether term is a case-insensitive substring of any field.
// An empty (or blank) term matches everything.
func MatchAny(term string, fields ...string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// MatchStatus reports whether status passes the filter. An empty filter or
// "all" passes everything.
func MatchStatus(filter, status string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(filter, status)
}
