package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePageLimit(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"valid values pass through", 2, 25, 2, 25},
		{"zero page defaults to 1", 0, 10, 1, 10},
		{"negative page defaults to 1", -3, 10, 1, 10},
		{"zero limit defaults", 1, 0, 1, DefaultPageSize},
		{"oversized limit defaults", 1, 500, 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePageLimit(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, uint64(0), CalculateOffset(1, 10))
	assert.Equal(t, uint64(10), CalculateOffset(2, 10))
	assert.Equal(t, uint64(40), CalculateOffset(5, 10))
	// invalid page falls back to the first page
	assert.Equal(t, uint64(0), CalculateOffset(0, 10))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 10)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalStudents)
	assert.Equal(t, 10, p.StudentsPerPage)
}

func TestNewPaginationExactMultiple(t *testing.T) {
	p := NewPagination(30, 1, 10)
	assert.Equal(t, 3, p.TotalPages)
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, int64(0), p.TotalStudents)
}
