package mediahttp

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// incomingDir каталог недописанных загрузок внутри DataDir.
const incomingDir = ".incoming"

// Options параметры медиа-узла.
type Options struct {
	DataDir string
	// GCTTL возраст временного файла, после которого он считается брошенным.
	GCTTL time.Duration
	// MaxBytes предельный размер одного файла; 0: DefaultMaxBytes.
	MaxBytes int64
	Log      *zap.Logger
}

// DefaultMaxBytes предел размера файла по умолчанию.
const DefaultMaxBytes = 10 << 20

// Server serves the media node HTTP API on top of the local filesystem.
type Server struct {
	dataDir string
	tmpDir  string
	gcTTL    time.Duration
	maxBytes int64
	log      *zap.Logger
}

// New создаёт HTTP-обработчик медиа-узла поверх каталога с данными.
func New(opts Options) http.Handler {
	srv := &Server{
		dataDir: opts.DataDir,
		tmpDir:  filepath.Join(opts.DataDir, incomingDir),
		gcTTL:    opts.GCTTL,
		maxBytes: opts.MaxBytes,
		log:      opts.Log,
	}
	if srv.maxBytes <= 0 {
		srv.maxBytes = DefaultMaxBytes
	}
	if srv.gcTTL <= 0 {
		srv.gcTTL = 24 * time.Hour
	}
	if srv.log == nil {
		srv.log = zap.NewNop()
	}

	return srv.routes()
}

// routes регистрирует обработчики файлов, здоровья и GC.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/files", func(fr chi.Router) {
		fr.Put("/*", a.insertFile)
		fr.Get("/*", a.fetchFile)
		fr.Head("/*", a.inspectFile)
		fr.Delete("/*", a.deleteFile)
	})

	r.Get("/health", a.health)
	r.Post("/admin/gc", a.gcOnce)

	return r
}

func (a *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	a.log.Error("media request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
