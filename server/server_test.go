package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/cutverse/internal/profile"
	"github.com/hrygo/cutverse/store"
	"github.com/hrygo/cutverse/store/db/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	p := &profile.Profile{
		Mode:            "dev",
		Driver:          "sqlite",
		DSN:             filepath.Join(t.TempDir(), "server.db"),
		RevealEnabled:   true,
		RevealSpeed:     1,
		FormatCacheSize: 8,
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	require.NoError(t, st.Migrate(context.Background()))

	s, err := NewServer(context.Background(), p, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s.Handler(), "/api/v1/tools")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cutverse_")
}

func TestServer_DemoPage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cutverse AI Tools")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = get(t, s.Handler(), "/some/client/route")
	assert.Equal(t, http.StatusOK, rec.Code)
}
