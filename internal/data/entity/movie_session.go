package entity

import (
	"time"

	"github.com/google/uuid"
)

// MovieSession is a single screening of a movie in a hall.
type MovieSession struct {
	Base
	ShowTime     time.Time `db:"show_time"`
	MovieID      uuid.UUID `db:"movie_id"`
	CinemaHallID uuid.UUID `db:"cinema_hall_id"`
}

// MovieSessionSummary is the list projection of a screening.
type MovieSessionSummary struct {
	ID                 uuid.UUID `db:"id"`
	ShowTime           time.Time `db:"show_time"`
	MovieTitle         string    `db:"movie_title"`
	CinemaHallName     string    `db:"cinema_hall_name"`
	CinemaHallCapacity int       `db:"cinema_hall_capacity"`
	TicketsSold        int       `db:"tickets_sold"`
}

// MovieSessionFilter narrows a screening listing; nil fields are ignored.
// Date matches the UTC calendar day of show_time.
type MovieSessionFilter struct {
	MovieID *uuid.UUID
	Date    *time.Time
}

// Place is a (row, seat) position in a hall.
type Place struct {
	Row  int `db:"row"`
	Seat int `db:"seat"`
}

// MovieSessionLayout is the seating state of one screening.
type MovieSessionLayout struct {
	MovieSessionID uuid.UUID
	Rows           int
	SeatsInRow     int
	Taken          []Place
}
