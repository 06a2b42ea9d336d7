package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/habit-trail/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestNewPaginationParams(t *testing.T) {
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(nil, nil))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(intPtr(0), intPtr(-5)))
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, domain.NewPaginationParams(intPtr(3), intPtr(500)))
}

func TestPaginationParams_Window(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		n          int
		start, end int
	}{
		{"first page", 1, 20, 45, 0, 20},
		{"last partial page", 3, 20, 45, 40, 45},
		{"exact last page", 2, 20, 40, 20, 40},
		{"past the end", 3, 20, 40, 40, 40},
		{"no items", 1, 20, 0, 0, 0},
		{"max page", math.MaxInt, 20, 45, 45, 45},
		{"max page with max limit", math.MaxInt, 100, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.NewPaginationParams(intPtr(tt.page), intPtr(tt.limit))

			start, end := p.Window(tt.n)

			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
