package usecase

import (
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/queue"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// Deps are the platform collaborators shared by services.
type Deps struct {
	Cache     cache.Cache
	Metrics   *metrics.Metrics
	Publisher queue.Publisher
}

type Service struct {
	Auth         AuthService
	Genre        GenreService
	Actor        ActorService
	Hall         HallService
	Movie        MovieService
	MovieSession MovieSessionService
	Order        OrderService
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Publisher == nil {
		deps.Publisher = queue.Noop{}
	}

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Genre:        NewGenreService(repo.Genre, log),
		Actor:        NewActorService(repo.Actor, log),
		Hall:         NewHallService(repo.Hall, deps.Cache, log),
		Movie:        NewMovieService(repo, deps.Cache, log),
		MovieSession: NewMovieSessionService(repo, deps.Cache, deps.Metrics, log),
		Order:        NewOrderService(repo, deps, log),
	}
}
