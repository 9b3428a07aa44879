package dto

import (
	"github.com/ekoca/studenthub/internal/app/models"
)

// StudentRequest carries the caller-settable fields for create and update.
// Numeric fields are pointers so that a missing value can be told apart
// from an explicit zero.
type StudentRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Email                string   `json:"email" binding:"required"`
	Status               string   `json:"status" binding:"required"`
	IsScholarship        bool     `json:"isScholarship"`
	AttendancePercentage *float64 `json:"attendancePercentage" binding:"required"`
	AssignmentScore      *float64 `json:"assignmentScore" binding:"required"`
}

// ToInput converts a validated request into the store input type
func (r *StudentRequest) ToInput() models.StudentInput {
	return models.StudentInput{
		Name:                 r.Name,
		Email:                r.Email,
		Status:               models.StudentStatus(r.Status),
		IsScholarship:        r.IsScholarship,
		AttendancePercentage: *r.AttendancePercentage,
		AssignmentScore:      *r.AssignmentScore,
	}
}

// ListStudentsQuery represents the listing query parameters
type ListStudentsQuery struct {
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=10"`
	Status        string `form:"status"`
	IsScholarship *bool  `form:"isScholarship"`
	Search        string `form:"search"`
	SortBy        string `form:"sortBy"`
	SortOrder     string `form:"sortOrder"`
}

// ToFilter converts the bound query parameters into a StudentFilter
func (q *ListStudentsQuery) ToFilter() models.StudentFilter {
	return models.StudentFilter{
		Page:          q.Page,
		Limit:         q.Limit,
		Status:        models.StudentStatus(q.Status),
		IsScholarship: q.IsScholarship,
		Search:        q.Search,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
	}
}

// StudentListResponse represents a page of students with pagination metadata
type StudentListResponse struct {
	Students   []models.Student `json:"students"`
	Pagination Pagination       `json:"pagination"`
}
