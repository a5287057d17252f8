package mediahttp

import (
	"net/http"
	"os"
	"path"
)

// fetchFile отдаёт файл; Range и If-Modified-Since обрабатывает http.ServeContent.
func (a *Server) fetchFile(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireFileRequest(w, r)
	if !ok {
		return
	}

	f, err := os.Open(req.path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, path.Base(req.name), info.ModTime(), f)
}
