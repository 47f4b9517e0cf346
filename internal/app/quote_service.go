// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-consumer/internal/domain"
	"github.com/jsamuelsen/quote-consumer/internal/ports"
)

// QuoteService orchestrates quote-related use cases.
// It depends on port interfaces, not concrete implementations.
// Safe for concurrent use; it holds no per-request state.
type QuoteService struct {
	quoteClient ports.QuoteClient
	metrics     *Metrics
	logger      *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	QuoteClient ports.QuoteClient

	// Metrics records fetch outcomes. Defaults to unregistered collectors.
	Metrics *Metrics

	Logger *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if QuoteClient is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.QuoteClient == nil {
		panic("QuoteService: QuoteClient is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &QuoteService{
		quoteClient: cfg.QuoteClient,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetRandomQuote fetches one quote from the upstream service.
// Errors from the client are returned unchanged.
func (s *QuoteService) GetRandomQuote(ctx context.Context) (*domain.Quote, error) {
	s.logger.DebugContext(ctx, "fetching random quote")

	start := time.Now()
	quote, err := s.quoteClient.GetRandomQuote(ctx)
	s.metrics.observe(time.Since(start).Seconds(), err)

	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch random quote",
			slog.String("result", resultLabel(err)),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "fetched random quote",
		slog.Int64("quote_id", quote.Value.ID),
		slog.String("quote", quote.String()),
	)

	return quote, nil
}
