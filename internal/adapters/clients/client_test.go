package clients

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-consumer/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-consumer/internal/platform/config"
	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
)

func defaultConfig() *Config {
	return &Config{
		ServiceName: "test-service",
		Timeout:     5 * time.Second,
		Transport: config.TransportConfig{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     30 * time.Second,
		},
		Logger: logging.Discard(),
	}
}

// closeBody is a test helper that closes the response body and fails the test on error.
func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close response body: %v", err)
	}
}

// slowServer blocks each request until the client goes away or the test ends.
func slowServer(t *testing.T) *httptest.Server {
	t.Helper()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	return server
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")
}

func TestNew_RequiresServiceName(t *testing.T) {
	cfg := defaultConfig()
	cfg.ServiceName = ""

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name is required")
}

func TestNew_Success(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaseURL = "http://quotes.example.com/"

	client, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://quotes.example.com", client.BaseURL())
	assert.Equal(t, "test-service", client.ServiceName())
	assert.Equal(t, 5*time.Second, client.http.Timeout)
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(&Config{ServiceName: "defaults"})
	require.NoError(t, err)

	assert.Equal(t, defaultTimeout, client.http.Timeout)

	transport, ok := client.http.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, defaultMaxIdleConns, transport.MaxIdleConns)
	assert.Equal(t, defaultMaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
	assert.Equal(t, defaultIdleConnTimeout, transport.IdleConnTimeout)
}

func TestNew_TransportConfig(t *testing.T) {
	client, err := New(defaultConfig())
	require.NoError(t, err)

	transport, ok := client.http.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 10, transport.MaxIdleConns)
	assert.Equal(t, 2, transport.MaxIdleConnsPerHost)
	assert.Equal(t, 30*time.Second, transport.IdleConnTimeout)
}

func TestClient_HeaderPropagation(t *testing.T) {
	var receivedRequestID, receivedCorrelationID, receivedAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedRequestID = r.Header.Get(middleware.HeaderRequestID)
		receivedCorrelationID = r.Header.Get(middleware.HeaderCorrelationID)
		receivedAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL

	client, err := New(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	ctx = middleware.ContextWithRequestID(ctx, "test-request-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "test-correlation-456")

	resp, err := client.Get(ctx, "/api/random")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "test-request-123", receivedRequestID)
	assert.Equal(t, "test-correlation-456", receivedCorrelationID)
	assert.Equal(t, "application/json", receivedAccept)
}

func TestClient_NoHeadersWithoutIDs(t *testing.T) {
	var hadRequestID bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadRequestID = r.Header[middleware.HeaderRequestID]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL

	client, err := New(cfg)
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/api/random")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.False(t, hadRequestID)
}

func TestClient_SingleAttemptOnServerError(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL

	client, err := New(cfg)
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/api/random")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = baseURL

	client, err := New(cfg)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/api/random")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, IsTimeout(err))
}

func TestClient_Timeout(t *testing.T) {
	server := slowServer(t)

	cfg := defaultConfig()
	cfg.BaseURL = server.URL
	cfg.Timeout = 50 * time.Millisecond

	client, err := New(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Get(context.Background(), "/api/random")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.True(t, IsTimeout(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_ContextDeadline(t *testing.T) {
	server := slowServer(t)

	cfg := defaultConfig()
	cfg.BaseURL = server.URL

	client, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Get(ctx, "/api/random")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestClient_ContextCanceled(t *testing.T) {
	server := slowServer(t)

	cfg := defaultConfig()
	cfg.BaseURL = server.URL

	client, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Get(ctx, "/api/random")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTimeout(err))
}

func TestClient_BuildURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaseURL = "http://quotes.example.com"

	client, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "http://quotes.example.com/api/random", client.buildURL("/api/random"))
	assert.Equal(t, "http://quotes.example.com/api/random", client.buildURL("api/random"))
}

type testNetError struct{ timeout bool }

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return false }

var _ net.Error = testNetError{}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", errors.Join(ErrRequestFailed, context.DeadlineExceeded), true},
		{"net timeout", testNetError{timeout: true}, true},
		{"net non-timeout", testNetError{timeout: false}, false},
		{"canceled", context.Canceled, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTimeout(tt.err))
		})
	}
}
