// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNetwork indicates the upstream could not be reached or did not answer in time.
	ErrNetwork = errors.New("network failure")

	// ErrDecode indicates the upstream answered with a body that is not a valid quote.
	ErrDecode = errors.New("decode failure")

	// ErrUpstream indicates the upstream answered with a non-success HTTP status.
	ErrUpstream = errors.New("upstream failure")
)

// NetworkError provides context for connection and timeout failures.
type NetworkError struct {
	Service string
	Timeout bool
	Err     error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("service %q timed out: %v", e.Service, e.Err)
	}

	return fmt.Sprintf("service %q unreachable: %v", e.Service, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// NewNetworkError creates a network error with context.
func NewNetworkError(service string, timeout bool, err error) error {
	return &NetworkError{Service: service, Timeout: timeout, Err: err}
}

// DecodeError provides context for malformed upstream payloads.
type DecodeError struct {
	Service string
	Err     error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %q: %v", e.Service, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// NewDecodeError creates a decode error with context.
func NewDecodeError(service string, err error) error {
	return &DecodeError{Service: service, Err: err}
}

// UpstreamError provides context for non-success upstream responses.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("service %q returned HTTP %d: %s", e.Service, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("service %q returned HTTP %d", e.Service, e.StatusCode)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// NewUpstreamError creates an upstream error with context.
func NewUpstreamError(service string, statusCode int, body string) error {
	return &UpstreamError{Service: service, StatusCode: statusCode, Body: body}
}

// IsNetwork checks if an error is a network error.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsDecode checks if an error is a decode error.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsUpstream checks if an error is an upstream error.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsTimeout checks if an error is a network error caused by a timeout.
func IsTimeout(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.Timeout
}
