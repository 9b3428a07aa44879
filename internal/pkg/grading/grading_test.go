package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePointAverage(t *testing.T) {
	tests := []struct {
		name       string
		attendance float64
		assignment float64
		want       float64
	}{
		{"typical values", 95, 92, 93.2},
		{"both zero", 0, 0, 0},
		{"both max", 100, 100, 100},
		{"attendance only", 100, 0, 40},
		{"assignment only", 0, 100, 60},
		{"fractional inputs round to two decimals", 33.33, 66.67, 53.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradePointAverage(tt.attendance, tt.assignment)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradePointAverageMonotonic(t *testing.T) {
	// Raising either input never lowers the result.
	base := GradePointAverage(50, 50)
	for _, delta := range []float64{1, 10, 50} {
		assert.GreaterOrEqual(t, GradePointAverage(50+delta, 50), base)
		assert.GreaterOrEqual(t, GradePointAverage(50, 50+delta), base)
	}
}
