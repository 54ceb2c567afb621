package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cohort-roas-api/internal/config"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning/mocks"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.Server{
			Host:            "127.0.0.1",
			Port:            "0",
			ShutdownTimeout: time.Second,
			AllowedOrigins:  []string{"http://localhost:5173"},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("Dependências obrigatórias", func(t *testing.T) {
		_, err := New(newTestConfig(), Dependencies{})
		assert.Error(t, err)
	})

	t.Run("Cadeia de middlewares aplicada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		srv, err := New(newTestConfig(), Dependencies{
			Sessions:  mocks.NewMockSessionManager(ctrl),
			Dashboard: dashboard.NewService(),
			Metrics:   metrics.New(),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

		scrape := httptest.NewRecorder()
		srv.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Contains(t, scrape.Body.String(), `roas_http_requests_total{method="GET",route="/healthcheck",status="200"} 1`)
	})

	t.Run("Sem métricas a rota responde 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		srv, err := New(newTestConfig(), Dependencies{
			Sessions:  mocks.NewMockSessionManager(ctrl),
			Dashboard: dashboard.NewService(),
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, err := New(newTestConfig(), Dependencies{
		Sessions:  mocks.NewMockSessionManager(ctrl),
		Dashboard: dashboard.NewService(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("servidor não desligou a tempo")
	}
}
