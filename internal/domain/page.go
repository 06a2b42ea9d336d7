package domain

// PaginationParams carries page/limit values from the HTTP layer to the
// history service. Page is 1-indexed. Limit is capped at 100.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil pointers fall back to page=1, limit=20 (the history list page size).
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, 100)
	}
	return p
}

// Window returns the [start, end) slice bounds of the page within n items.
// Pages past the end yield an empty window. The page number is compared
// against n before multiplying, so very large pages cannot overflow.
func (p PaginationParams) Window(n int) (int, int) {
	if n <= 0 || p.Limit < 1 || p.Page < 1 || p.Page-1 > (n-1)/p.Limit {
		return n, n
	}
	start := (p.Page - 1) * p.Limit
	return start, min(start+p.Limit, n)
}
