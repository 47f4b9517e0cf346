package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jsamuelsen/quote-consumer/internal/domain"
)

// ProbePrefix starts the line the startup probe writes for a fetched quote.
const ProbePrefix = "quote1 "

// ProbeConfig configures the startup probe.
type ProbeConfig struct {
	Service *QuoteService

	// Timeout bounds the single fetch. Zero means the caller's context only.
	Timeout time.Duration

	// Out receives the "quote1 <text>" line. Defaults to os.Stdout.
	Out io.Writer

	Logger *slog.Logger
}

// RunStartupProbe fetches one quote before the listener starts, logs it and
// writes it to cfg.Out. A failure is returned for the caller to log; it is
// never fatal on its own.
func RunStartupProbe(ctx context.Context, cfg ProbeConfig) (*domain.Quote, error) {
	if cfg.Service == nil {
		panic("RunStartupProbe: Service is required")
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	quote, err := cfg.Service.GetRandomQuote(ctx)
	if err != nil {
		return nil, fmt.Errorf("startup probe: %w", err)
	}

	logger.InfoContext(ctx, "startup probe fetched quote", slog.String("quote", quote.String()))

	if _, err := fmt.Fprintln(out, ProbePrefix+quote.String()); err != nil {
		return quote, fmt.Errorf("writing probe output: %w", err)
	}

	return quote, nil
}
