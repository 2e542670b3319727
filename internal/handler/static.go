package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// Static serves files from dir. Paths that do not name a regular file fall
// back to dir/index.html; without an index the response is 404.
func Static(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		name := filepath.Join(dir, filepath.FromSlash(clean))
		if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
			r2 := r.Clone(r.Context())
			r2.URL.Path = clean
			files.ServeHTTP(w, r2)
			return
		}

		serveIndex(w, r, index)
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request, index string) {
	f, err := os.Open(index)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("not found"))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		writeJSON(w, http.StatusNotFound, errorResponse("not found"))
		return
	}
	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}

// NotFound answers unmatched routes: GET requests get the index page, other
// methods a JSON 404.
func NotFound(dir string) http.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeJSON(w, http.StatusNotFound, errorResponse("not found"))
			return
		}
		serveIndex(w, r, index)
	}
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
