package webproxy

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMethod means that Request.Method was not set.
	ErrMissingMethod = errors.New("request method must be set")

	// ErrMissingURI means that Request.URI was not set.
	ErrMissingURI = errors.New("request URI must be set")

	// ErrUnsupportedMethod is matched by every *UnsupportedMethodError.
	ErrUnsupportedMethod = errors.New("method not supported")
)

// UnsupportedMethodError is returned for a method string that is not one of AllMethods.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("method %q not supported", e.Method)
}

func (e *UnsupportedMethodError) Is(target error) bool {
	return target == ErrUnsupportedMethod
}

// RequestError describes a Request that cannot be executed. Field is "method" or "uri", and
// Value is what the field contained.
type RequestError struct {
	Field string
	Value string
	Err   error
}

func (e *RequestError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid request: %s", e.Err)
	}
	return fmt.Sprintf("invalid request %s %q: %s", e.Field, e.Value, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
