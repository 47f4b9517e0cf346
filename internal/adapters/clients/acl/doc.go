// Package acl holds the Anti-Corruption Layer adapters for external services.
//
// An ACL adapter owns the wire DTOs of one downstream API and is the only
// place they exist. It translates payloads to domain types and every failure
// to a domain error, so nothing above the adapter depends on the upstream's
// representation.
//
// # Error Translation
//
// [QuoteClient] maps failures as follows:
//
//   - Transport failure (dial, reset, deadline) → [domain.NetworkError],
//     with Timeout set when a deadline fired
//   - Non-2xx status → [domain.UpstreamError] carrying the status code
//   - Body that is not JSON, lacks "value", or fails [domain.Quote.Validate]
//     → [domain.DecodeError]
//
// A nil Quote is returned with every error.
package acl
