package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/reservation"
)

type MovieSessionListResponse struct {
	ID                 string    `json:"id"`
	ShowTime           time.Time `json:"show_time"`
	MovieTitle         string    `json:"movie_title"`
	CinemaHallName     string    `json:"cinema_hall_name"`
	CinemaHallCapacity int       `json:"cinema_hall_capacity"`
	TicketsAvailable   int       `json:"tickets_available"`
}

type PlaceResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type MovieSessionDetailResponse struct {
	ID          string            `json:"id"`
	ShowTime    time.Time         `json:"show_time"`
	Movie       MovieListResponse `json:"movie"`
	CinemaHall  HallResponse      `json:"cinema_hall"`
	TakenPlaces []PlaceResponse   `json:"taken_places"`
}

type MovieSessionWriteResponse struct {
	ID         string    `json:"id"`
	ShowTime   time.Time `json:"show_time"`
	Movie      string    `json:"movie"`
	CinemaHall string    `json:"cinema_hall"`
}

func MovieSessionToListResponse(s *entity.MovieSessionSummary) MovieSessionListResponse {
	return MovieSessionListResponse{
		ID:                 s.ID.String(),
		ShowTime:           s.ShowTime,
		MovieTitle:         s.MovieTitle,
		CinemaHallName:     s.CinemaHallName,
		CinemaHallCapacity: s.CinemaHallCapacity,
		TicketsAvailable:   reservation.TicketsAvailable(s.CinemaHallCapacity, s.TicketsSold),
	}
}

func MovieSessionToDetailResponse(s *entity.MovieSession, movie *entity.Movie, hall *entity.Hall, taken []entity.Place) MovieSessionDetailResponse {
	places := make([]PlaceResponse, len(taken))
	for i, p := range taken {
		places[i] = PlaceResponse{Row: p.Row, Seat: p.Seat}
	}

	return MovieSessionDetailResponse{
		ID:          s.ID.String(),
		ShowTime:    s.ShowTime,
		Movie:       MovieToListResponse(movie),
		CinemaHall:  HallToResponse(hall),
		TakenPlaces: places,
	}
}

func MovieSessionToWriteResponse(s *entity.MovieSession) MovieSessionWriteResponse {
	return MovieSessionWriteResponse{
		ID:         s.ID.String(),
		ShowTime:   s.ShowTime,
		Movie:      s.MovieID.String(),
		CinemaHall: s.CinemaHallID.String(),
	}
}
