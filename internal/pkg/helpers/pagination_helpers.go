package helpers

import (
	"math"

	"github.com/ekoca/studenthub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// NormalizePageLimit clamps page and limit to valid values. Pages are
// 1-based; an out-of-range limit falls back to the default size.
func NormalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return page, limit
}

// CalculateOffset converts a 1-based page number to a row offset.
func CalculateOffset(page, limit int) uint64 {
	page, limit = NormalizePageLimit(page, limit)
	return uint64((page - 1) * limit)
}

// NewPagination builds the pagination envelope for a listing response.
// totalStudents counts the full filtered set, not just the returned page.
func NewPagination(totalStudents int64, page, limit int) dto.Pagination {
	page, limit = NormalizePageLimit(page, limit)

	totalPages := 0
	if totalStudents > 0 {
		totalPages = int(math.Ceil(float64(totalStudents) / float64(limit)))
	}

	return dto.Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalStudents:   totalStudents,
		StudentsPerPage: limit,
	}
}
