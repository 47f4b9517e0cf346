package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-consumer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-consumer/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-consumer/internal/platform/config"
	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
	"github.com/jsamuelsen/quote-consumer/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for the quote route.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler serves GET /.
	QuoteHandler *handlers.QuoteHandler

	// Timeout bounds each quote request, upstream call included.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Error status - turn recorded handler errors into bare status codes
//  7. Timeout - request deadline (quote route only)
//
// Routes:
//   - /-/ (internal): health, build info and metrics, no timeout
//   - / : one random quote per request
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	if cfg.Logger != nil {
		engine.Use(loggerContext(cfg.Logger))
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(serviceName(cfg.AppConfig))...)
	engine.Use(
		middleware.Logging(),
		middleware.ErrorStatus(StatusForError),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.QuoteHandler != nil {
		quotes := engine.Group("")
		quotes.Use(middleware.RequestTimeout(cfg.Timeout))
		cfg.QuoteHandler.RegisterQuoteRoutes(quotes)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		Timeout:       DefaultRequestTimeout,
	}
}

// loggerContext seeds each request context with the router's logger so the
// ID middleware can enrich it.
func loggerContext(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

func serviceName(appCfg *config.AppConfig) string {
	if appCfg == nil || appCfg.Name == "" {
		return "quote-consumer"
	}

	return appCfg.Name
}
