package query

// PaginationMeta is returned by list endpoints next to the page of data.
type PaginationMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := 0
	if limit > 0 {
		// ceil(total / limit)
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		CurrentPage:  page,
		TotalPages:   totalPages,
		ItemsPerPage: limit,
		TotalItems:   total,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// Consistent reports whether the has-next/has-prev flags agree with the
// page counters. Clients use it to reject malformed server metadata.
func (m PaginationMeta) Consistent() bool {
	return m.HasNextPage == (m.CurrentPage < m.TotalPages) &&
		m.HasPrevPage == (m.CurrentPage > 1)
}
