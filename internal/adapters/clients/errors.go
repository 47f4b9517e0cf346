// Package clients provides HTTP client adapters for downstream services.
package clients

import (
	"context"
	"errors"
	"net"
)

// ErrRequestFailed wraps transport-level failures (dial, TLS, timeout, reset).
// These are infrastructure failures that callers translate to domain errors.
var ErrRequestFailed = errors.New("request failed")

// IsTimeout reports whether err was caused by a deadline, either the
// client's own timeout or the caller's context.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
