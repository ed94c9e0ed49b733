package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"modhome/internal/scraper"
	"modhome/pkg/models"
)

func TestMirrorServesRawCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Capsule Pod X", "price": "$300", "image": "img2.jpg"}]`), 0o644))

	srv := httptest.NewServer(newRouter(path, zap.NewNop()))
	defer srv.Close()

	got, err := scraper.NewMirrorSource(srv.URL).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Capsule Pod X", models.Value(got[0].Name))
}

func TestMirrorRejectsBadFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644))

	r := newRouter(path, zap.NewNop())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	newRouter(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop()).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
