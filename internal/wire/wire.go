// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger is the part of the database the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	Router *chi.Mux
}

func Wiring(db Pinger, repo *repository.Repository, deps usecase.Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(db, handler, repo, deps, config.App.CORSAllowedOrigins, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	db Pinger,
	handler *adaptor.Handler,
	repo *repository.Repository,
	deps usecase.Deps,
	corsOrigins []string,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))
	if deps.Metrics != nil {
		r.Use(middleware.Prometheus(deps.Metrics))
	}

	auth := middleware.AuthSession(repo.Session, repo.User, logger)
	admin := middleware.Admin(logger)

	wireAuth(r, handler.Auth, auth)
	wireCatalog(r, handler, auth, admin)
	wireOrder(r, handler.Order, auth)

	r.Get("/health", health(db, logger))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseServiceUnavailable(w, "Database unavailable")
			return
		}

		utils.ResponseSuccess(w, "OK", nil)
	}
}
