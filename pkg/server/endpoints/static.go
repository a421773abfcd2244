package endpoints

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/kosciej/cabrillo-log/pkg/server"
)

// IndexFile is the entry point served at /
const IndexFile = "index.html"

//go:embed static
var staticFiles embed.FS

// EmbeddedStatic returns the entry point and assets compiled into the binary
func EmbeddedStatic() fs.FS {
	sub, _ := fs.Sub(staticFiles, "static")
	return sub
}

// StaticFS returns the embedded files for release builds or dir on disk for
// development. The entry point must exist.
func StaticFS(release bool, dir string) (fs.FS, error) {
	var fsys fs.FS
	if release {
		fsys = EmbeddedStatic()
	} else {
		fsys = os.DirFS(dir)
	}

	if _, err := fs.Stat(fsys, IndexFile); err != nil {
		where := dir
		if release {
			where = "embedded files"
		}
		return nil, fmt.Errorf("entry point %s not found in %s: %w", IndexFile, where, err)
	}
	return fsys, nil
}

// RegisterStaticFiles serves the entry point at / and assets under /static/
func RegisterStaticFiles(srv *server.Server) {
	srv.Router.HandleFunc("/", handleIndex(srv.Static)).Methods("GET")

	srv.Router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(srv.Static))),
	)

	// Serve favicon.ico (return 404 if not present)
	srv.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}

func handleIndex(fsys fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, IndexFile)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	}
}
