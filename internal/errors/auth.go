package errors

import "net/http"

var ErrInvalidCredentials = &Exception{
	Message:    "invalid email or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidToken = &Exception{
	Message:    "invalid or expired session token",
	StatusCode: http.StatusUnauthorized,
}

var ErrUsernameTaken = &Exception{
	Message:    "username already exists",
	StatusCode: http.StatusConflict,
}

var ErrEmailTaken = &Exception{
	Message:    "email already registered",
	StatusCode: http.StatusConflict,
}
