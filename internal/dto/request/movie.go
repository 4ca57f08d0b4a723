package request

import "time"

// MovieRequest is used for both create and full update.
type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Genres      []string `json:"genres" validate:"dive,uuid"`
	Actors      []string `json:"actors" validate:"dive,uuid"`
}

// MovieFilterRequest holds the raw comma separated query parameters.
type MovieFilterRequest struct {
	Actors string
	Genres string
	Title  string
}

type MovieSessionRequest struct {
	ShowTime   time.Time `json:"show_time" validate:"required"`
	Movie      string    `json:"movie" validate:"required,uuid"`
	CinemaHall string    `json:"cinema_hall" validate:"required,uuid"`
}

// MovieSessionFilterRequest holds the raw query parameters; Date is
// YYYY-MM-DD.
type MovieSessionFilterRequest struct {
	Movie string
	Date  string
}
