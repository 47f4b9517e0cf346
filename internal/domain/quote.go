// Package domain contains core business entities and rules.
package domain

import (
	"errors"
	"fmt"
)

// Quote is a single quotation returned by the upstream quote service.
// This is a domain entity - it has no knowledge of external systems.
// A Quote is built once per fetch and never mutated afterwards.
type Quote struct {
	// Type is the classification tag reported by the upstream (e.g. "success").
	Type string

	// Value holds the quotation itself.
	Value QuoteValue
}

// QuoteValue is the identifier and text of a quotation.
type QuoteValue struct {
	// ID is the upstream identifier. Always positive for a valid quote.
	ID int64

	// Quote is the text of the quotation.
	Quote string
}

// String returns the textual representation served to plain-text clients,
// e.g. Quote{type='success', value=Value{id=10, quote='Hello'}}.
func (q *Quote) String() string {
	return fmt.Sprintf("Quote{type='%s', value=%s}", q.Type, q.Value.String())
}

// String returns the textual representation of the value part.
func (v QuoteValue) String() string {
	return fmt.Sprintf("Value{id=%d, quote='%s'}", v.ID, v.Quote)
}

// Validate checks the invariants every fetched quote must satisfy.
// It returns a descriptive error naming the first violated field.
func (q *Quote) Validate() error {
	if q.Value.ID <= 0 {
		return fmt.Errorf("value.id must be positive, got %d", q.Value.ID)
	}

	if q.Value.Quote == "" {
		return errors.New("value.quote must not be empty")
	}

	return nil
}
