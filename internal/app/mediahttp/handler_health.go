package mediahttp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/sir_venger/foodgram/pkg/mediaproto"
)

// health возвращает агрегированную статистику по данным узла.
func (a *Server) health(w http.ResponseWriter, r *http.Request) {
	stats := mediaproto.Health{OK: true}
	err := filepath.WalkDir(a.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == a.tmpDir {
				return fs.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		stats.TotalBytes += info.Size()
		stats.Files++
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		a.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		a.fail(w, r, err)
	}
}
