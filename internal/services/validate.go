package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 255
	maxMessageLength = 2000
)

// emailPattern is intentionally loose: non-whitespace local part, @, domain
// with at least one dot. Deliverability is the mailer's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateSubmission checks raw form fields and returns the normalized
// values: name and message trimmed, email trimmed and lowercased. Bounds
// count characters, not bytes, so accented text gets the full budget. No
// side effects.
func validateSubmission(name, email, message string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", "", "", &ValidationError{
			Field:   "name",
			Message: "Name must be between 1 and 100 characters",
		}
	}

	email = strings.TrimSpace(email)
	if email == "" || utf8.RuneCountInString(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return "", "", "", &ValidationError{
			Field:   "email",
			Message: "Please provide a valid email address",
		}
	}
	email = strings.ToLower(email)

	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > maxMessageLength {
		return "", "", "", &ValidationError{
			Field:   "message",
			Message: "Message must be between 1 and 2000 characters",
		}
	}

	return name, email, message, nil
}
