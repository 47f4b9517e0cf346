package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-consumer/internal/adapters/clients"
	"github.com/jsamuelsen/quote-consumer/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-consumer/internal/domain"
	"github.com/jsamuelsen/quote-consumer/internal/platform/config"
	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
	"github.com/jsamuelsen/quote-consumer/internal/ports"
)

// maxParallel caps concurrent upstream fetches for --count.
const maxParallel = 8

type fetchOptions struct {
	baseURL string
	path    string
	timeout time.Duration
	count   int
	output  string
}

func newFetchCmd() *cobra.Command {
	opts := fetchOptions{
		timeout: 10 * time.Second,
		count:   1,
		output:  outputText,
	}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one or more random quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.baseURL, "url", "", "quote service base url (default from QUOTE_SERVICE_URL or config)")
	fs.StringVar(&opts.path, "path", "", "random quote path (default from config)")
	fs.DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	fs.IntVarP(&opts.count, "count", "n", opts.count, "number of quotes to fetch")
	fs.StringVarP(&opts.output, "output", "o", opts.output, "output format: text, json or yaml")

	return cmd
}

func runFetch(cmd *cobra.Command, opts fetchOptions) error {
	if opts.count < 1 {
		return errors.New("--count must be at least 1")
	}

	if opts.timeout <= 0 {
		return errors.New("--timeout must be positive")
	}

	printer, err := newPrinter(opts.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	quoteClient, err := newQuoteClient(opts)
	if err != nil {
		return err
	}

	quotes, err := fetchQuotes(cmd.Context(), quoteClient, opts.count)
	if err != nil {
		return err
	}

	return printer.print(quotes)
}

func newQuoteClient(opts fetchOptions) (*acl.QuoteClient, error) {
	cfg, err := config.Load(os.Getenv("APP_ENVIRONMENT"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	baseURL := opts.baseURL
	if baseURL == "" {
		baseURL = cfg.Services.Quote.BaseURL
	}

	path := opts.path
	if path == "" {
		path = cfg.Services.Quote.RandomPath
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     baseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     opts.timeout,
		Transport:   cfg.Client.Transport,
		Logger:      logging.Discard(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	return acl.NewQuoteClient(acl.QuoteClientConfig{
		Client:     httpClient,
		RandomPath: path,
		Logger:     logging.Discard(),
	}), nil
}

// fetchQuotes runs count fetches in parallel. Results keep request order and
// the first failure cancels the rest.
func fetchQuotes(ctx context.Context, fetcher ports.QuoteClient, count int) ([]*domain.Quote, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	quotes := make([]*domain.Quote, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i := range count {
		g.Go(func() error {
			quote, err := fetcher.GetRandomQuote(gctx)
			if err != nil {
				return fmt.Errorf("fetch %d: %w", i+1, err)
			}

			quotes[i] = quote

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return quotes, nil
}
