package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"lol-overlay/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOverlay(t *testing.T) (*OverlayServer, string) {
	t.Helper()
	dir := t.TempDir()
	srv := NewOverlayServer(&config.Config{OverlayDir: dir}, zerolog.Nop())
	return srv, dir
}

func TestServesStatsFile(t *testing.T) {
	srv, dir := newTestOverlay(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stats.json"), []byte(`{"playerName":"Piekasso#EUW"}`), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/stats.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Piekasso#EUW")
}

func TestResponsesAreNeverCached(t *testing.T) {
	srv, dir := newTestOverlay(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stats.json"), []byte(`{}`), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/stats.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "no-store, no-cache, must-revalidate", rec.Header().Get("Cache-Control"))
}

func TestCORSHeadersForBrowserSource(t *testing.T) {
	srv, dir := newTestOverlay(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stats.json"), []byte(`{}`), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/stats.json", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestOverlay(t)

	req := httptest.NewRequest(http.MethodGet, "/missing.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestOverlay(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
