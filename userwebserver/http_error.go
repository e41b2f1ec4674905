package userwebserver

import "net/http"

// HTTPError is a type suitable for returning errors to be passed to the user
type HTTPError struct {
	error
	StatusCode int
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(err error, statusCode int) *HTTPError {
	return &HTTPError{err, statusCode}
}

// NewBadRequestError creates a new HTTPError for a request the client sent wrongly
func NewBadRequestError(err error) *HTTPError {
	return NewHTTPError(err, http.StatusBadRequest)
}
