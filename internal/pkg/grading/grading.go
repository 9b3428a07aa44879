// Package grading computes derived academic scores.
package grading

import "math"

// Weights for the grade point average blend. Attendance counts for 40%,
// assignment score for 60%, both on a 0-100 scale.
const (
	AttendanceWeight = 0.4
	AssignmentWeight = 0.6
)

// GradePointAverage returns the weighted blend of attendance percentage and
// assignment score, rounded to two decimal places. The result stays on the
// 0-100 scale of its inputs. Inputs are expected to be pre-validated to
// [0, 100]; the function itself is total and has no error path.
func GradePointAverage(attendancePercentage, assignmentScore float64) float64 {
	gpa := attendancePercentage*AttendanceWeight + assignmentScore*AssignmentWeight
	return math.Round(gpa*100) / 100
}
