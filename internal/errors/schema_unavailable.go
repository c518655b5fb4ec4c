package errors

import "net/http"

// ErrSchemaUnavailable marks reads that failed because the backing table
// is missing entirely. Read-only catalog data degrades to static defaults
// instead of failing the caller.
var ErrSchemaUnavailable = &Exception{
	Message:    "backing relation does not exist",
	StatusCode: http.StatusServiceUnavailable,
}
