package errors

import "net/http"

// ErrTransientStore marks retryable backend failures. Reads keep the
// last-known data, writes surface the error to the caller untouched.
var ErrTransientStore = &Exception{
	Message:    "temporary store failure",
	StatusCode: http.StatusServiceUnavailable,
}
