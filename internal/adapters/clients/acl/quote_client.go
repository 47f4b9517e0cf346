package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jsamuelsen/quote-consumer/internal/adapters/clients"
	"github.com/jsamuelsen/quote-consumer/internal/domain"
	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
)

// DefaultRandomPath is the upstream path serving a random quote.
const DefaultRandomPath = "/api/random"

// maxErrorBodyBytes caps how much of a non-2xx body is kept on UpstreamError.
const maxErrorBodyBytes = 512

// maxBodyBytes caps how much of a 2xx body is decoded.
const maxBodyBytes = 1 << 20

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the quote service root.
	Client *clients.Client

	// RandomPath is appended to the client's BaseURL. Defaults to DefaultRandomPath.
	RandomPath string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteClient against the random-quote API.
// It translates the upstream payload to domain.Quote and every failure to
// one of the domain error types.
type QuoteClient struct {
	client     *clients.Client
	randomPath string
	logger     *slog.Logger
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	randomPath := cfg.RandomPath
	if randomPath == "" {
		randomPath = DefaultRandomPath
	}

	return &QuoteClient{
		client:     cfg.Client,
		randomPath: randomPath,
		logger:     logger,
	}
}

// quoteResponse is the upstream wire shape. Never exposed outside the ACL.
type quoteResponse struct {
	Type  string              `json:"type"`
	Value *quoteValueResponse `json:"value"`
}

type quoteValueResponse struct {
	ID    int64  `json:"id"`
	Quote string `json:"quote"`
}

// GetRandomQuote fetches a random quote from the upstream API.
// Implements ports.QuoteClient.
func (c *QuoteClient) GetRandomQuote(ctx context.Context) (*domain.Quote, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", c.randomPath))

	resp, err := c.client.Get(ctx, c.randomPath)
	if err != nil {
		return nil, domain.NewNetworkError(c.Name(), clients.IsTimeout(err), err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", c.randomPath),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.handleErrorResponse(ctx, resp)
	}

	return c.parseQuoteResponse(ctx, resp.Body)
}

// parseQuoteResponse decodes the upstream body and translates it to a domain Quote.
// Deadline expiry while reading the body is a network failure, not a decode one.
func (c *QuoteClient) parseQuoteResponse(ctx context.Context, body io.Reader) (*domain.Quote, error) {
	var external quoteResponse

	err := decodeSingle(io.LimitReader(body, maxBodyBytes), &external)
	if err != nil {
		if clients.IsTimeout(err) || errors.Is(err, context.Canceled) {
			return nil, domain.NewNetworkError(c.Name(), clients.IsTimeout(err), err)
		}

		return nil, domain.NewDecodeError(c.Name(), err)
	}

	quote, err := translateToDomain(&external)
	if err != nil {
		return nil, domain.NewDecodeError(c.Name(), err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated upstream payload to domain",
		slog.Int64("quote_id", quote.Value.ID),
		slog.String("type", quote.Type))

	return quote, nil
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeSingle decodes exactly one JSON value from r. Anything other than
// whitespace after it is rejected.
func decodeSingle(r io.Reader, v any) error {
	dec := json.NewDecoder(r)

	err := dec.Decode(v)
	if err != nil {
		return err
	}

	err = dec.Decode(&json.RawMessage{})
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return errTrailingData
	case clients.IsTimeout(err) || errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %w", errTrailingData, err)
	}
}

// translateToDomain converts the upstream payload to a validated domain Quote.
func translateToDomain(ext *quoteResponse) (*domain.Quote, error) {
	if ext.Value == nil {
		return nil, errors.New("value is missing")
	}

	quote := &domain.Quote{
		Type: ext.Type,
		Value: domain.QuoteValue{
			ID:    ext.Value.ID,
			Quote: ext.Value.Quote,
		},
	}

	if err := quote.Validate(); err != nil {
		return nil, err
	}

	return quote, nil
}

// handleErrorResponse converts a non-2xx response to an UpstreamError.
func (c *QuoteClient) handleErrorResponse(ctx context.Context, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	trimmed := strings.TrimSpace(string(body))

	c.logger.WarnContext(ctx, "quote API error",
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", trimmed),
	)

	return domain.NewUpstreamError(c.Name(), resp.StatusCode, trimmed)
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.client.ServiceName()
}

// Check verifies the upstream serves a decodable quote.
// Implements ports.HealthChecker.
func (c *QuoteClient) Check(ctx context.Context) error {
	_, err := c.GetRandomQuote(ctx)
	if err != nil {
		return fmt.Errorf("fetching quote: %w", err)
	}

	return nil
}
