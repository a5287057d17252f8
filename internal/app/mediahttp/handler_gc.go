package mediahttp

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// gcOnce вручную запускает сбор брошенных временных файлов.
func (a *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	n, err := sweepOnce(a.tmpDir, a.gcTTL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.log.Info("manual gc", zap.Int("removed", n))
	w.WriteHeader(http.StatusNoContent)
}

// StartGC стартует периодическую очистку временного каталога узла.
func StartGC(dataDir string, ttl, every time.Duration, log *zap.Logger) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	root := filepath.Join(dataDir, incomingDir)
	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := sweepOnce(root, ttl)
				if err != nil {
					log.Warn("media gc", zap.Error(err))
					continue
				}
				if n > 0 {
					log.Info("media gc", zap.Int("removed", n))
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// sweepOnce удаляет временные файлы старше ttl и возвращает их число.
func sweepOnce(root string, ttl time.Duration) (int, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	now := time.Now()
	removed := 0
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < ttl {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
