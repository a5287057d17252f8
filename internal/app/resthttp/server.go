package resthttp

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/internal/config"
	"github.com/sir_venger/foodgram/internal/repo"
	"github.com/sir_venger/foodgram/internal/repo/catalog"
	"github.com/sir_venger/foodgram/internal/repo/recipes"
	"github.com/sir_venger/foodgram/internal/repo/tokens"
	"github.com/sir_venger/foodgram/internal/repo/users"
	"github.com/sir_venger/foodgram/internal/usecase/accountsvc"
	"github.com/sir_venger/foodgram/internal/usecase/auth"
	"github.com/sir_venger/foodgram/internal/usecase/catalogsvc"
	"github.com/sir_venger/foodgram/internal/usecase/mediasvc"
	"github.com/sir_venger/foodgram/internal/usecase/mediasvc/adapters/health"
	"github.com/sir_venger/foodgram/internal/usecase/recipesvc"
	"github.com/sir_venger/foodgram/pkg/mediaclient"
)

type Server struct {
	Accounts accountsvc.Service
	Catalog  catalogsvc.Service
	Recipes  recipesvc.Service
	Media    mediasvc.Service
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *repo.DB

	metrics   *metrics
	stopSweep func()
}

// NewServer открывает базу, собирает сервисы и возвращает корневой обработчик.
// Ресурсы освобождает (*Server).Close.
func NewServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (http.Handler, *Server, error) {
	db, err := repo.Open(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}

	srv := buildServer(cfg, log, db)
	return srv.routes(), srv, nil
}

func buildServer(cfg *config.Config, log *zap.Logger, db *repo.DB) *Server {
	userStore := users.New(db)
	recipeStore := recipes.New(db)
	catalogStore := catalog.New(db)

	tok := auth.New(cfg.Auth.Secret, cfg.Auth.TokenTTL, tokens.New(db))
	media := buildMediaService(cfg)

	return &Server{
		Accounts: accountsvc.New(accountsvc.Deps{
			Users:   userStore,
			Recipes: recipeStore,
			Tokens:  tok,
		}),
		Catalog: catalogsvc.New(catalogsvc.Deps{Store: catalogStore}),
		Recipes: recipesvc.New(recipesvc.Deps{
			Recipes: recipeStore,
			Users:   userStore,
			Catalog: catalogStore,
			Media:   media,
			Log:     log.Named("recipes"),
		}),
		Media:     media,
		Cfg:       cfg,
		Log:       log,
		DB:        db,
		metrics:   newMetrics(),
		stopSweep: tok.StartSweeper(cfg.Auth.SweepInterval, log.Named("auth")),
	}
}

func buildMediaService(cfg *config.Config) *mediasvc.Media {
	if len(cfg.Media.Nodes) == 0 {
		return mediasvc.New(mediasvc.Deps{
			Backend:  mediasvc.NewLocalStore(cfg.Media.Dir, cfg.Media.PublicURL),
			MaxBytes: cfg.Media.MaxImageBytes,
		})
	}

	cli := mediaclient.New()
	router := mediasvc.NewRouter(health.NewAdapter(cli, 0))
	router.Set(cfg.Media.Nodes)

	return mediasvc.New(mediasvc.Deps{
		Backend:  mediasvc.NewNodeStore(router, cli),
		Router:   router,
		MaxBytes: cfg.Media.MaxImageBytes,
	})
}

// Close останавливает фоновую очистку и закрывает базу.
func (s *Server) Close() error {
	s.stopSweep()
	return s.DB.Close()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(s.authenticate)

	r.Get("/health", s.health)
	r.Handle("/metrics", s.metrics.handler())
	if len(s.Cfg.Media.Nodes) == 0 && strings.HasPrefix(s.Cfg.Media.PublicURL, "/") {
		prefix := strings.TrimRight(s.Cfg.Media.PublicURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, mediaFiles(s.Cfg.Media.Dir)))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/token/login", s.login)
		api.With(s.requireAuth).Post("/auth/token/logout", s.logout)

		api.Route("/users", func(u chi.Router) {
			u.Get("/", s.listUsers)
			u.Post("/", s.register)
			u.With(s.requireAuth).Get("/me", s.me)
			u.With(s.requireAuth).Post("/set_password", s.setPassword)
			u.With(s.requireAuth).Get("/subscriptions", s.subscriptions)
			u.Get("/{id}", s.getUser)
			u.With(s.requireAuth).Post("/{id}/subscribe", s.subscribe)
			u.With(s.requireAuth).Delete("/{id}/subscribe", s.unsubscribe)
		})

		api.Get("/tags", s.listTags)
		api.Get("/tags/{id}", s.getTag)
		api.Get("/ingredients", s.listIngredients)
		api.Get("/ingredients/{id}", s.getIngredient)

		api.Route("/recipes", func(rr chi.Router) {
			rr.Get("/", s.listRecipes)
			rr.With(s.requireAuth).Post("/", s.createRecipe)
			rr.With(s.requireAuth).Get("/download_shopping_cart", s.downloadShoppingCart)
			rr.Get("/{id}", s.getRecipe)
			rr.With(s.requireAuth).Patch("/{id}", s.updateRecipe)
			rr.With(s.requireAuth).Delete("/{id}", s.deleteRecipe)
			rr.With(s.requireAuth).Post("/{id}/favorite", s.addMark(markFavorite))
			rr.With(s.requireAuth).Delete("/{id}/favorite", s.removeMark(markFavorite))
			rr.With(s.requireAuth).Post("/{id}/shopping_cart", s.addMark(markCart))
			rr.With(s.requireAuth).Delete("/{id}/shopping_cart", s.removeMark(markCart))
		})

		api.Route("/admin", func(ar chi.Router) {
			ar.Use(s.requireAuth, s.requireAdmin)
			ar.Get("/config", s.adminConfig)
			ar.Post("/media/nodes", s.addMediaNodes)
		})
	})

	return r
}

// mediaFiles раздаёт локальные картинки без листинга каталогов.
func mediaFiles(dir string) http.Handler {
	return http.FileServer(filesOnly{http.Dir(dir)})
}

// filesOnly отвечает 404 на любой каталог.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
