package adaptor

import (
	"cinema-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Genre        *GenreHandler
	Actor        *ActorHandler
	Hall         *HallHandler
	Movie        *MovieHandler
	MovieSession *MovieSessionHandler
	Order        *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Genre:        NewGenreHandler(service.Genre, log),
		Actor:        NewActorHandler(service.Actor, log),
		Hall:         NewHallHandler(service.Hall, log),
		Movie:        NewMovieHandler(service.Movie, log),
		MovieSession: NewMovieSessionHandler(service.MovieSession, log),
		Order:        NewOrderHandler(service.Order, log),
	}
}
