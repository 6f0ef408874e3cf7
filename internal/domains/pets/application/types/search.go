package types

import (
	"math"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SearchPetsInput carries the raw query parameters of a search request.
// Nil page fields mean "use the default".
type SearchPetsInput struct {
	State    string
	City     string
	Species  string
	Gender   string
	Size     string
	Breed    string
	Colors   string
	Pattern  string
	Coat     string
	Age      string
	Posted   string
	Page     *int
	PageSize *int
}

// SearchCriteria is the canonical filter set. Empty strings, nil pointers
// and empty slices mean the filter was not supplied.
type SearchCriteria struct {
	State    string
	City     string
	Species  string
	Breed    string
	Gender   *domain.Gender
	Size     *domain.Size
	Colors   []string
	Pattern  string
	Coat     string
	Age      *domain.AgeBounds
	Posted   *domain.TimeRange
	PageSpec PageRequest
}

// PageRequest is a validated 1-based page window.
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset is the number of rows skipped before the window.
// It saturates at math.MaxInt instead of overflowing for huge pages.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// PageInfo is the pagination metadata of a result page.
type PageInfo struct {
	Page            int
	PageSize        int
	TotalCount      int64
	TotalPages      int
	HasPreviousPage bool
	HasNextPage     bool
}

// SearchPage is one page of matching pets plus its metadata.
type SearchPage struct {
	Items []*domain.Pet
	PageInfo
}
