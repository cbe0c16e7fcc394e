package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Loose on purpose: internal accounts such as "a@a" have no TLD.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+$`)

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %q", email)
	}
	return nil
}

// SanitizeString removes control characters and surrounding blanks
func SanitizeString(s string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}
