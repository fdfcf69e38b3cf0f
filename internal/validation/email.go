package validation

import (
	"net/mail"
	"regexp"
)

// emailShape is the basic local@domain.tld shape accounts are created with.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateEmail validates email format and length
// Uses Go's built-in net/mail parser which follows RFC 5322
func ValidateEmail(email string) error {
	// Check length (RFC 5321: local part max 64, domain max 255, total max 254 with @)
	if len(email) > 254 {
		return fieldError("email", "email address is too long (max 254 characters)")
	}

	if email == "" {
		return fieldError("email", "email address is required")
	}

	// Reject display-name forms like "A <a@x.com>" that ParseAddress would accept
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !emailShape.MatchString(email) {
		return fieldError("email", "please use a valid email address")
	}

	return nil
}
