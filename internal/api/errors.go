package api

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// StatusError is returned when a provider answers with a non-200 status
type StatusError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Detail)
}

// RequestError is returned when a request could not be completed at the
// transport level (DNS, refused connection, timeout).
type RequestError struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: send request: %v", e.Provider, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func newRequestError(provider string, err error) *RequestError {
	return &RequestError{Provider: provider, Timeout: isTimeout(err), Err: err}
}

// DecodeError is returned when a 200 response body does not have the expected shape
type DecodeError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
