package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
)

// opsPrefix marks operational endpoints (/-/live, /-/metrics, ...).
const opsPrefix = "/-/"

// Logging returns middleware that logs the start and completion of each
// request through the request-scoped logger, so request and correlation IDs
// ride along. Probe traffic under /-/ is not logged.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, opsPrefix) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := logging.FromContext(ctx).With(
			slog.String("method", c.Request.Method),
			slog.String("path", requestPath(c.Request)),
		)

		logger.InfoContext(ctx, "request started",
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logger.LogAttrs(ctx, levelForStatus(status), "request completed", attrs...)
	}
}

func requestPath(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}

	return r.URL.Path + "?" + r.URL.RawQuery
}

// levelForStatus logs 5xx at error and 4xx at warn.
func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
