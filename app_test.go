package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vit0-9/imagefetch_api/pkg/config"
	"github.com/vit0-9/imagefetch_api/pkg/safefetch"
	"github.com/vit0-9/imagefetch_api/pkg/storage"
)

type nopDownloader struct{}

func (nopDownloader) Download(context.Context, string) (*safefetch.Image, error) {
	return nil, &safefetch.RejectionError{Reason: safefetch.ReasonPrivateIP}
}

func newTestApp(t *testing.T, netTools bool) (*App, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Upload.Dir = t.TempDir()
	cfg.Server.EnableNetTools = netTools

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicBaseURL, cfg.Upload.AllowedScopes)
	require.NoError(t, err)

	app, err := NewApp(cfg, zerolog.Nop(), nopDownloader{}, store, nil)
	require.NoError(t, err)
	return app, cfg.Upload.Dir
}

func serve(app *App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewApp_Routes(t *testing.T) {
	app, dir := newTestApp(t, false)

	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/v1/health").Code)
	assert.Equal(t, http.StatusNotFound, serve(app, http.MethodGet, "/api/v1/net/ip-info?ip=8.8.8.8").Code)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "a.gif"), []byte("GIF89a"), 0644))
	w := serve(app, http.MethodGet, "/uploads/pages/a.gif")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GIF89a", w.Body.String())
}

func TestNewApp_NetToolsEnabled(t *testing.T) {
	app, _ := newTestApp(t, true)

	w := serve(app, http.MethodGet, "/api/v1/net/ip-info?ip=127.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fetch_allowed":false`)
}

func TestFetchOptions(t *testing.T) {
	cfg := config.Default()
	opts := fetchOptions(cfg, zerolog.Nop())
	assert.Equal(t, 3, opts.MaxRedirects)
	assert.Equal(t, cfg.Upload.MaxBytes, opts.MaxBytes)
	assert.Equal(t, cfg.Fetch.Timeout, opts.Timeout)

	cfg.Fetch.MaxRedirects = 0
	assert.Equal(t, -1, fetchOptions(cfg, zerolog.Nop()).MaxRedirects)
}
