package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics.
// The panic and stack are logged at ERROR level and the client receives a
// bare 500 with no body. Install it first so it wraps everything else.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()

				var traceID string
				if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
					traceID = span.SpanContext().TraceID().String()
				}

				logging.FromContext(ctx).ErrorContext(ctx, "panic recovered",
					slog.Any("error", r),
					slog.String("stack", string(debug.Stack())),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
					slog.String("trace_id", traceID),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}

				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()

		c.Next()
	}
}
