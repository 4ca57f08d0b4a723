package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Genre        GenreRepository
	Actor        ActorRepository
	Hall         HallRepository
	Movie        MovieRepository
	MovieSession MovieSessionRepository
	Order        OrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Genre:        NewGenreRepository(db, log),
		Actor:        NewActorRepository(db, log),
		Hall:         NewHallRepository(db, log),
		Movie:        NewMovieRepository(db, log),
		MovieSession: NewMovieSessionRepository(db, log),
		Order:        NewOrderRepository(db, log),
	}
}
