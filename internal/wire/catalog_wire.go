package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// resource is the CRUD surface every catalog handler exposes.
type resource struct {
	list, get, create, update, remove http.HandlerFunc
}

// wireCatalog mounts genres, actors, halls, movies and screenings: reads
// are public, writes need an admin session.
func wireCatalog(r chi.Router, h *adaptor.Handler, auth, admin func(http.Handler) http.Handler) {
	resources := map[string]resource{
		"/api/genres": {
			h.Genre.GetGenres, h.Genre.GetGenreByID,
			h.Genre.CreateGenre, h.Genre.UpdateGenre, h.Genre.DeleteGenre,
		},
		"/api/actors": {
			h.Actor.GetActors, h.Actor.GetActorByID,
			h.Actor.CreateActor, h.Actor.UpdateActor, h.Actor.DeleteActor,
		},
		"/api/cinema_halls": {
			h.Hall.GetHalls, h.Hall.GetHallByID,
			h.Hall.CreateHall, h.Hall.UpdateHall, h.Hall.DeleteHall,
		},
		"/api/movies": {
			h.Movie.GetMovies, h.Movie.GetMovieByID,
			h.Movie.CreateMovie, h.Movie.UpdateMovie, h.Movie.DeleteMovie,
		},
		"/api/movie_sessions": {
			h.MovieSession.GetMovieSessions, h.MovieSession.GetMovieSessionByID,
			h.MovieSession.CreateMovieSession, h.MovieSession.UpdateMovieSession, h.MovieSession.DeleteMovieSession,
		},
	}

	for prefix, res := range resources {
		r.Route(prefix, func(r chi.Router) {
			r.Get("/", res.list)
			r.Get("/{id}", res.get)

			r.Group(func(r chi.Router) {
				r.Use(auth, admin)
				r.Post("/", res.create)
				r.Put("/{id}", res.update)
				r.Delete("/{id}", res.remove)
			})
		})
	}
}
