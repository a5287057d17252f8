package mediahttp

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
)

func (a *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireFileRequest(w, r)
	if !ok {
		return
	}

	if err := os.Remove(req.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
