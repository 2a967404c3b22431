package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkcross/internal/config"
	"parkcross/internal/metrics"
)

func newTestServer(t *testing.T, devMode bool) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.DevMode = devMode
	return NewServer(cfg, zerolog.Nop())
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/api/status", http.StatusOK, `"name":"parkcross"`},
		{"/", http.StatusOK, "Cruce de Parqueaderos"},
		{"/api/export/download/unknown", http.StatusNotFound, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, false)
	s.Metrics().ObserveFailure(metrics.OutcomeMalformed)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `parkcross_runs_total{outcome="malformed_workbook"} 1`)
}

func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer(t, false)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/cross", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_DevModeRedirects(t *testing.T) {
	s := newTestServer(t, true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "http://localhost:5173/", rec.Header().Get("Location"))
}
