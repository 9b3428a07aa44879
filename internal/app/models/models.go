// Package models defines the database-backed domain types.
package models

// StudentStatus is the closed set of enrollment states
type StudentStatus string

const (
	StatusActive    StudentStatus = "active"
	StatusInactive  StudentStatus = "inactive"
	StatusGraduated StudentStatus = "graduated"
	StatusSuspended StudentStatus = "suspended"
)

// ValidStudentStatuses lists every member of the status set
var ValidStudentStatuses = []StudentStatus{
	StatusActive,
	StatusInactive,
	StatusGraduated,
	StatusSuspended,
}

// IsValidStudentStatus reports whether the value is a member of the status set
func IsValidStudentStatus(s string) bool {
	for _, status := range ValidStudentStatuses {
		if StudentStatus(s) == status {
			return true
		}
	}
	return false
}
