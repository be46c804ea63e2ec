package dataset

import (
	"errors"
	"fmt"
)

// ErrorClass represents a classification of load failures.
type ErrorClass string

const (
	// ErrorClassNetwork represents transport failures (DNS, refused, timeout).
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassHTTP represents non-2xx responses.
	ErrorClassHTTP ErrorClass = "http"

	// ErrorClassDecode represents bodies that are not a JSON array of objects.
	ErrorClassDecode ErrorClass = "decode"
)

// NetworkError is returned when the transport rejects the request.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is returned when the dataset endpoint answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	// Status is the full status line text, e.g. "404 Not Found".
	Status string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("Error: %s", e.Status)
	}
	return fmt.Sprintf("Error: %d", e.StatusCode)
}

// DecodeError is returned when the response body is not a JSON array of objects.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode dataset: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Classify returns the ErrorClass of a load error, or "" if it is not one.
func Classify(err error) ErrorClass {
	var netErr *NetworkError
	var httpErr *HTTPError
	var decErr *DecodeError

	switch {
	case errors.As(err, &httpErr):
		return ErrorClassHTTP
	case errors.As(err, &decErr):
		return ErrorClassDecode
	case errors.As(err, &netErr):
		return ErrorClassNetwork
	default:
		return ""
	}
}
