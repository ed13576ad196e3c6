// Package pagination holds the page and keyset listing helpers shared by the
// repositories, the services and the response envelope.
package pagination

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// PaginationParams is the page/per_page pair of a listing request
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns the first page at the default size
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: DefaultPerPage}
}

// NewPaginationParams returns validated params
func NewPaginationParams(page, perPage int) *PaginationParams {
	p := &PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}

// Validate clamps page to 1 or more and per_page to [1, MaxPerPage]. A
// missing per_page falls back to DefaultPerPage.
func (p *PaginationParams) Validate() {
	p.Page = max(p.Page, 1)
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	p.PerPage = min(p.PerPage, MaxPerPage)
}

// Offset is the number of rows skipped before the page
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination describes where a page sits in the full listing
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination derives the page counters from the matching row count
func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult is one page of T with its counters
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}
