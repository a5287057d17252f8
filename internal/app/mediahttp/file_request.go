package mediahttp

import (
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// fileRequest имя файла из URL и его путь на диске.
type fileRequest struct {
	name string
	path string
}

// requireFileRequest валидирует имя из URL; на плохое имя отвечает 404.
func (a *Server) requireFileRequest(w http.ResponseWriter, r *http.Request) (*fileRequest, bool) {
	req, err := newFileRequest(a.dataDir, chi.URLParam(r, "*"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	return req, true
}

// newFileRequest запрещает выход за DataDir и сегменты, начинающиеся с точки.
func newFileRequest(root, name string) (*fileRequest, error) {
	if name == "" || strings.Contains(name, `\`) {
		return nil, fmt.Errorf("invalid name")
	}

	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" {
		return nil, fmt.Errorf("invalid name")
	}
	for _, seg := range strings.Split(clean, "/") {
		if strings.HasPrefix(seg, ".") {
			return nil, fmt.Errorf("invalid name segment %q", seg)
		}
	}

	return &fileRequest{
		name: clean,
		path: filepath.Join(root, filepath.FromSlash(clean)),
	}, nil
}
