package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-consumer/internal/mocks"
	"github.com/jsamuelsen/quote-consumer/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// opsEngine mounts a HealthHandler under /- on a fresh engine.
func opsEngine(t *testing.T, registry ports.HealthRegistry, gatherer prometheus.Gatherer) *gin.Engine {
	t.Helper()

	engine := gin.New()
	NewHealthHandler(registry, NewBuildInfo("1.4.0", "9f2c1ab", "2026-10-01T08:00:00Z"), gatherer).
		RegisterHealthRoutesOnEngine(engine)

	return engine
}

func doGet(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.4.0", "9f2c1ab", "2026-10-01T08:00:00Z")

	assert.Equal(t, BuildInfo{
		Version:   "1.4.0",
		Commit:    "9f2c1ab",
		BuildTime: "2026-10-01T08:00:00Z",
		GoVersion: runtime.Version(),
	}, bi)
}

func TestLiveness_NeverConsultsRegistry(t *testing.T) {
	// The mock fails the test on any unexpected CheckAll call.
	engine := opsEngine(t, mocks.NewMockHealthRegistry(t), nil)

	w := doGet(engine, "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantStatus int
		wantBody   string
	}{
		{
			name: "quote upstream reachable",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"quote-service": {Status: ports.HealthStatusHealthy},
				},
			},
			wantStatus: http.StatusOK,
			wantBody:   `"quote-service"`,
		},
		{
			name: "quote upstream failing",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"quote-service": {
						Status:  ports.HealthStatusUnhealthy,
						Message: `fetching quote: service "quote-service" returned HTTP 503`,
					},
				},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "returned HTTP 503",
		},
		{
			name: "nothing registered",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{},
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"healthy"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result).Once()

			w := doGet(opsEngine(t, registry, nil), "/-/ready")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestBuildInfoEndpoint(t *testing.T) {
	w := doGet(opsEngine(t, mocks.NewMockHealthRegistry(t), nil), "/-/build")

	require.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1.4.0", resp.Version)
	assert.Equal(t, "9f2c1ab", resp.Commit)
	assert.Equal(t, runtime.Version(), resp.GoVersion)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Run("default registry", func(t *testing.T) {
		w := doGet(opsEngine(t, mocks.NewMockHealthRegistry(t), nil), "/-/metrics")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "go_goroutines")
	})

	t.Run("injected gatherer", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_fetch_total",
			Help: "test",
		}, []string{"result"})
		reg.MustRegister(fetches)
		fetches.WithLabelValues("success").Add(3)

		w := doGet(opsEngine(t, mocks.NewMockHealthRegistry(t), reg), "/-/metrics")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `quote_fetch_total{result="success"} 3`)
		assert.NotContains(t, w.Body.String(), "go_goroutines")
	})
}

func TestRegisterHealthRoutes(t *testing.T) {
	engine := gin.New()
	NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, nil).
		RegisterHealthRoutes(engine.Group("/ops"))

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{"GET /ops/live", "GET /ops/ready", "GET /ops/build", "GET /ops/metrics"} {
		assert.True(t, routes[want], "missing route: %s", want)
	}
}
