package endpoints

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosciej/cabrillo-log/pkg/archive"
)

func TestStaticFiles(t *testing.T) {
	s := NewTestServer(archive.NewMemoryStore())

	t.Run("index", func(t *testing.T) {
		w := serve(s.Router, httptestRequest("GET", "/"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "cabrillo")
	})

	t.Run("asset", func(t *testing.T) {
		w := serve(s.Router, httptestRequest("GET", "/static/style.css"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "body {}", w.Body.String())
	})

	t.Run("missing asset", func(t *testing.T) {
		w := serve(s.Router, httptestRequest("GET", "/static/missing.js"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("favicon", func(t *testing.T) {
		w := serve(s.Router, httptestRequest("GET", "/favicon.ico"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStaticFS(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		fsys, err := StaticFS(true, "")
		require.NoError(t, err)

		for _, name := range []string{IndexFile, "style.css", "app.js"} {
			_, err := fs.Stat(fsys, name)
			assert.NoError(t, err, name)
		}
	})

	t.Run("embedded map", func(t *testing.T) {
		fsys, err := StaticFS(true, "")
		require.NoError(t, err)

		index, err := fs.ReadFile(fsys, IndexFile)
		require.NoError(t, err)
		assert.Contains(t, string(index), `<svg id="map"`)
		assert.Contains(t, string(index), `id="map-markers"`)

		script, err := fs.ReadFile(fsys, "app.js")
		require.NoError(t, err)
		assert.Contains(t, string(script), "function drawMap(markers)")
		assert.Contains(t, string(script), "cy: -m.latitude")
	})

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte("<html></html>"), 0o644))

		fsys, err := StaticFS(false, dir)
		require.NoError(t, err)
		data, err := fs.ReadFile(fsys, IndexFile)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(data))
	})

	t.Run("directory without entry point", func(t *testing.T) {
		_, err := StaticFS(false, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), IndexFile)
	})
}
