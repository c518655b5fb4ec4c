package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrApplicationNotFound = &Exception{
	Message:    "application not found",
	StatusCode: http.StatusNotFound,
}

var ErrProfileNotFound = &Exception{
	Message:    "profile not found",
	StatusCode: http.StatusNotFound,
}

var ErrMessageNotFound = &Exception{
	Message:    "message not found",
	StatusCode: http.StatusNotFound,
}
