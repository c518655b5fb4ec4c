package errors

import "net/http"

var ErrNotAuthorized = &Exception{
	Message:    "actor is not permitted to perform this operation",
	StatusCode: http.StatusForbidden,
}
