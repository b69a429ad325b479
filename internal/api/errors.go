package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backend could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the request was rejected for bad or missing
	// credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired means the session token is no longer valid. Callers
	// must route this through the same session-clearing path as an explicit
	// logout.
	ErrTokenExpired = errors.New("token expired")

	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")
)

// RequestError carries a server-side rejection (4xx) with the user-facing
// message returned by the backend.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Message)
}
