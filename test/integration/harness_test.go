//go:build integration

package integration

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-consumer/internal/adapters/clients"
	"github.com/jsamuelsen/quote-consumer/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quote-consumer/internal/adapters/http"
	"github.com/jsamuelsen/quote-consumer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-consumer/internal/app"
	"github.com/jsamuelsen/quote-consumer/internal/platform/config"
	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
	"github.com/jsamuelsen/quote-consumer/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubUpstream is a programmable stand-in for the quote API.
type stubUpstream struct {
	*httptest.Server

	mu      sync.Mutex
	handler http.HandlerFunc
	release chan struct{}
}

func newStubUpstream() *stubUpstream {
	s := &stubUpstream{release: make(chan struct{})}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		h := s.handler
		s.mu.Unlock()

		if h == nil {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))

	return s
}

func (s *stubUpstream) set(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *stubUpstream) respondQuote(id int64, quote string) {
	s.set(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"type":"success","value":{"id":%d,"quote":%q}}`, id, quote)
	})
}

func (s *stubUpstream) respondStatus(code int) {
	s.set(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	})
}

func (s *stubUpstream) respondBody(body string) {
	s.set(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	})
}

// hang blocks every request until the caller gives up or the stub closes.
func (s *stubUpstream) hang() {
	s.set(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-s.release:
		}
	})
}

func (s *stubUpstream) close() {
	close(s.release)
	s.Server.Close()
}

// testConfig loads the default configuration pointed at upstreamURL.
func testConfig(upstreamURL string, clientTimeout, requestTimeout time.Duration) (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	cfg.App.Environment = "test"
	cfg.Services.Quote.BaseURL = upstreamURL
	cfg.Client.Timeout = clientTimeout
	cfg.Server.RequestTimeout = requestTimeout
	cfg.Startup.ProbeEnabled = false

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newService wires the service the way cmd/service does and serves it on a
// loopback listener.
func newService(cfg *config.Config) (*httptest.Server, error) {
	logger := logging.Discard()

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{
		Client:     httpClient,
		RandomPath: cfg.Services.Quote.RandomPath,
		Logger:     logger,
	})

	registry := ports.NewHealthRegistry(cfg.Client.Timeout)
	if err := registry.Register(quoteClient); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	service := app.NewQuoteService(app.QuoteServiceConfig{
		QuoteClient: quoteClient,
		Metrics:     app.NewMetrics(reg),
		Logger:      logger,
	})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", "test"), reg),
		QuoteHandler:  handlers.NewQuoteHandler(service),
		Timeout:       cfg.Server.RequestTimeout,
	})

	return httptest.NewServer(engine), nil
}
