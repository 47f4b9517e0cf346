// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNetwork, ErrDecode, ErrUpstream)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-consumer/internal/domain"
)

// QuoteClient fetches quotes from the upstream quote service.
// Implementations must be safe for concurrent use by multiple goroutines.
type QuoteClient interface {
	// GetRandomQuote fetches one random quote.
	// Returns domain.ErrNetwork when the upstream cannot be reached in time,
	// domain.ErrUpstream on a non-success status and domain.ErrDecode when the
	// body is not a valid quote. A nil quote is returned with every error.
	GetRandomQuote(ctx context.Context) (*domain.Quote, error)
}
