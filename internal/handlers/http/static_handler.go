// internal/handlers/http/static_handler.go
package http

import (
	"net/http"
	"path/filepath"
	"strings"
)

// IndexHandler serves index.html from dir for GET /.
func IndexHandler(dir string) http.HandlerFunc {
	page := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, page)
	}
}

// StaticHandler serves files under /static/ from dir. Directory listings
// are not exposed.
func StaticHandler(dir string) http.Handler {
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
