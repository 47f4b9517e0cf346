package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
)

// StatusMapper maps an error recorded with c.Error to an HTTP status.
type StatusMapper func(err error) int

// ErrorStatus returns middleware that turns the last error a handler
// recorded with c.Error into a bare status response. Nothing is written when
// the handler already produced a response.
func ErrorStatus(mapper StatusMapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		status := mapper(last.Err)

		ctx := c.Request.Context()
		logging.FromContext(ctx).WarnContext(ctx, "request failed",
			slog.Int("status", status),
			slog.Any("error", last.Err),
		)

		c.AbortWithStatus(status)
	}
}
