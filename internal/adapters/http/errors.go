package http

import (
	"net/http"

	"github.com/jsamuelsen/quote-consumer/internal/domain"
)

// StatusForError maps an error recorded by a handler to the HTTP status
// returned to the caller. Bodies are never written for failures.
//
//   - upstream timeout: 504 Gateway Timeout
//   - other network, upstream and decode failures: 502 Bad Gateway
//   - anything else: 500 Internal Server Error
func StatusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case domain.IsTimeout(err):
		return http.StatusGatewayTimeout
	case domain.IsNetwork(err), domain.IsUpstream(err), domain.IsDecode(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
