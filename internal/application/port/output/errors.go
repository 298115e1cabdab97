package output

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey    = errors.New("api key not configured")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrEmptyResponse    = errors.New("empty response")
)

// StatusError carries the status code of a non-200 upstream response.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Service, e.Code)
	}
	return fmt.Sprintf("%s: status %d - %s", e.Service, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// StatusCode extracts the upstream status code from err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}
