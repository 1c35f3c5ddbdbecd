package models

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

func NewPage[T any](items []T, total, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// PageRequest selects one page. Page is bounded so Offset cannot overflow.
type PageRequest struct {
	Page     int    `json:"page" validate:"min=1,max=1000000"`
	PageSize int    `json:"page_size" validate:"min=1,max=50"`
	Search   string `json:"search" validate:"max=128"`
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}
