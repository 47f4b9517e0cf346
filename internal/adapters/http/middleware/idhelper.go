package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxIDLength caps inbound IDs; longer values are replaced with a fresh UUID.
const maxIDLength = 128

type idMiddlewareConfig struct {
	headerName string
	ginKey     string

	// enrichers run in order against the request context.
	enrichers []func(ctx context.Context, id string) context.Context
}

// createIDMiddleware extracts an ID from the request header or generates a
// UUID, then exposes it on the gin context, the response header and the
// request context.
func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if id == "" || len(id) > maxIDLength {
			id = uuid.New().String()
		}

		c.Set(cfg.ginKey, id)
		c.Header(cfg.headerName, id)

		ctx := c.Request.Context()
		for _, enrich := range cfg.enrichers {
			ctx = enrich(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func getIDFromContext(c *gin.Context, key string) string {
	if id, exists := c.Get(key); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}
