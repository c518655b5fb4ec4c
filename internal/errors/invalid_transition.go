package errors

import "net/http"

var ErrInvalidTransition = &Exception{
	Message:    "status transition is not permitted from the current state",
	StatusCode: http.StatusConflict,
}
