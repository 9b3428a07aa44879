// Package validation holds the boundary validation rules. Input is checked
// once here, at the HTTP edge; the repositories treat it as a precondition.
package validation

import (
	"regexp"
)

// Validation rule patterns and limits
var (
	// Basic local@domain.tld shape
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	PasswordMinLength = 6
	UsernameMinLength = 3

	NameMinLength = 1
	NameMaxLength = 255
)

var emailRegex = regexp.MustCompile(EmailPattern)

// IsValidEmail reports whether the value matches the basic email shape.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPercentage reports whether the value is inside the closed [0, 100]
// interval used by attendance percentage and assignment score.
func IsValidPercentage(value float64) bool {
	return value >= 0 && value <= 100
}
