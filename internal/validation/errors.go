package validation

import (
	"errors"
	"fmt"
)

// ErrUploadRejected wraps every refused file upload.
var ErrUploadRejected = errors.New("upload rejected")

// Error reports a single field that failed validation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, message string) error {
	return &Error{Field: field, Message: message}
}
