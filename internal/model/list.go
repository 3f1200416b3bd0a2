package model

import (
	"math"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
	MaxClothesLimit  = 100

	// MaxPage bounds page so (page-1)*limit stays a valid OFFSET.
	MaxPage = math.MaxInt32
)

// SortField is one "field:dir" element of a sort expression.
type SortField struct {
	Field string
	Desc  bool
}

// ListQuery carries pagination and ordering for any listing.
type ListQuery struct {
	Page  int
	Limit int
	Sort  []SortField
}

// Offset is the number of rows skipped before the current page.
func (q ListQuery) Offset() int { return (q.Page - 1) * q.Limit }

// NewListQuery clamps page to [1, MaxPage] and limit to [1, max]. A zero or negative
// limit falls back to def.
func NewListQuery(page, limit, def, max int, sort []SortField) ListQuery {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if limit < 1 {
		limit = 1
	}
	return ListQuery{Page: page, Limit: limit, Sort: sort}
}

// ParseSort reads "createdAt:desc,price:asc". Direction defaults to desc
// unless it is exactly "asc".
func ParseSort(s string) []SortField {
	var out []SortField
	for _, part := range strings.Split(s, ",") {
		field, dir, _ := strings.Cut(part, ":")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		out = append(out, SortField{Field: field, Desc: strings.TrimSpace(dir) != "asc"})
	}
	return out
}

// Paged is the listing envelope returned by every list endpoint.
type Paged[T any] struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	Data       []T `json:"data"`
}

// NewPaged builds the envelope; data is never nil so it renders as [].
func NewPaged[T any](items []T, total int, q ListQuery) Paged[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if q.Limit > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return Paged[T]{Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages, Data: items}
}
