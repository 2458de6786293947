package api

import (
	"errors"
	"fmt"
)

// ErrNotFound means the resource does not exist upstream (HTTP 404).
var ErrNotFound = errors.New("not found")

// StatusError is any other non-success response. The status code is kept
// so callers can log it; this layer does not interpret it further.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d", e.Code)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
