// internal/wire/wire.go
package wire

import (
	"net/http"

	"cineacme/internal/adaptor"
	"cineacme/internal/data/repository"
	"cineacme/internal/usecase"
	"cineacme/pkg/metrics"
	"cineacme/pkg/middleware"
	"cineacme/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// deps are the shared pieces every route group needs. rdb and metrics may be nil.
type deps struct {
	repo    *repository.Repository
	config  *utils.Config
	rdb     *redis.Client
	metrics *metrics.Metrics
	log     *zap.Logger
}

// authenticated is the chain for read routes: a valid token, then the response cache.
func (d deps) authenticated() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.JWTAuth(d.config.JWT.Secret, d.log),
		middleware.ResponseCache(d.config.Cache, d.rdb, d.log),
	}
}

// adminOnly guards write routes and drops cached reads once a write succeeds.
func (d deps) adminOnly() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.JWTAuth(d.config.JWT.Secret, d.log),
		middleware.Admin(d.repo.User, d.log),
		middleware.InvalidateCache(d.rdb, d.config.Cache.Prefix, d.log),
	}
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, rdb *redis.Client, m *metrics.Metrics, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, m, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, deps{
		repo:    repo,
		config:  config,
		rdb:     rdb,
		metrics: m,
		log:     logger,
	})

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, d deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(d.log, d.metrics))
	r.Use(middleware.Recover(d.log))
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(d.config.RateLimit, d.log))

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, d)
	wireCinema(r, handler.Cinema, d)
	wireRoom(r, handler.Room, d)
	wireMovie(r, handler.Movie, d)
	wireScreening(r, handler.Screening, handler.Report, d)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if d.metrics != nil {
		r.Handle("/metrics", d.metrics.Handler())
	}

	return r
}
