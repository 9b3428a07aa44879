package models

import (
	"time"
)

// Student defines the student model based on the 'students' table. Every
// record belongs to exactly one user; the owner reference is set at creation
// and never changes.
type Student struct {
	ID                   int64         `json:"id" db:"id" example:"1"`                                    // Unique identifier for the student record
	UserID               int64         `json:"userId" db:"user_id" example:"5"`                           // Owning user
	Name                 string        `json:"name" db:"name" example:"Alice Johnson"`                    // Student's full name
	Email                string        `json:"email" db:"email" example:"alice@university.edu"`           // Student's email address
	Status               StudentStatus `json:"status" db:"status" example:"active"`                       // Enrollment status
	IsScholarship        bool          `json:"isScholarship" db:"is_scholarship" example:"true"`          // Scholarship flag
	AttendancePercentage float64       `json:"attendancePercentage" db:"attendance_percentage" example:"95"` // Attendance, 0-100
	AssignmentScore      float64       `json:"assignmentScore" db:"assignment_score" example:"92"`        // Assignment score, 0-100
	GradePointAverage    float64       `json:"gradePointAverage" db:"grade_point_average" example:"93.2"` // Derived, recomputed on every write
	CreatedAt            time.Time     `json:"createdAt" db:"created_at"`                                 // Immutable after creation
	UpdatedAt            time.Time     `json:"updatedAt" db:"updated_at"`                                 // Refreshed on every mutation
}

// StudentInput carries the caller-settable fields of a student record.
// The id, owner, timestamps and the derived grade point average are assigned
// by the store. Fields are expected to be pre-validated at the boundary.
type StudentInput struct {
	Name                 string
	Email                string
	Status               StudentStatus
	IsScholarship        bool
	AttendancePercentage float64
	AssignmentScore      float64
}

// StudentFilter describes filtering, sorting and pagination options for
// listing students. Zero values mean "no filter"; IsScholarship is a pointer so that
// an explicit false can be distinguished from absence.
type StudentFilter struct {
	Page          int
	Limit         int
	Status        StudentStatus
	IsScholarship *bool
	Search        string
	SortBy        string
	SortOrder     string
}

// StudentStatistics aggregates a user's student records
type StudentStatistics struct {
	TotalStudents       int64   `json:"totalStudents"`
	ActiveStudents      int64   `json:"activeStudents"`
	ScholarshipStudents int64   `json:"scholarshipStudents"`
	AverageGPA          float64 `json:"averageGpa"` // 0 when there are no records
}
