package pagination

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// PaginationParams carries the page-based inputs read from a request
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns the default page window
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps the parameters into their valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset is the SQL offset for the current page
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination describes the page window of a list response
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination builds the page window for a total row count
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult pairs a page of items with its window
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult wraps items and their page window
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}
