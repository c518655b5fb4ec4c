package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// NewValidation builds a 400 exception for malformed input. Validation
// failures are surfaced before any write is attempted.
func NewValidation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// IsValidation reports whether err carries a 400 status.
func IsValidation(err error) bool {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusBadRequest
	}
	return false
}
