package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/infrastructure"
	"github.com/Endio1/LAB-App-1/internal/services"
)

func testApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Pipeline.SnapshotFormat = "csv"

	paths, err := config.NewPaths(cfg.Paths)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	app := &Application{
		Config:  cfg,
		Paths:   paths,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: infrastructure.NewPipelineMetrics(),
	}
	app.CorrectionService = services.NewCorrectionService(cfg, paths, app.Logger, app.Metrics)
	app.setupRouter()
	app.createServer()
	return app
}

func TestRouterHealthEndpoint(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRouterMetricsEndpoint(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouterUnknownRouteIsProblemJSON(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}

func TestServerConfiguration(t *testing.T) {
	app := testApplication(t)

	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
	assert.NotNil(t, app.Server.Handler)
}
