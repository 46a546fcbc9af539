package domain

import (
	"math"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps Offset from overflowing at any page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// SortField is a whitelisted column for account listing.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortEmail     SortField = "email"
	SortFirstName SortField = "firstName"
	SortLastName  SortField = "lastName"
)

// PageRequest selects a page of accounts. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort SortField
	Desc bool
}

// Normalize clamps the request into its supported range and fills defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	switch p.Sort {
	case SortCreatedAt, SortEmail, SortFirstName, SortLastName:
	default:
		p.Sort = SortCreatedAt
	}
	return p
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

// ParseSortOrder reads "asc"/"desc", defaulting to ascending.
func ParseSortOrder(s string) (desc bool) {
	return strings.EqualFold(strings.TrimSpace(s), "desc")
}

// Page is one slice of a listing together with the totals needed to page.
type Page[T any] struct {
	Items      []T   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"totalElements"`
	TotalPages int   `json:"totalPages"`
}

// NewPage assembles a Page from a normalized request.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		Total:      total,
		TotalPages: pages,
	}
}
