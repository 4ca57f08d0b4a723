// Package reservation holds the seat rules for tickets: a seat must lie
// inside the hall grid and can be sold once per screening.
package reservation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrOutOfRange = errors.New("seat out of range")
	ErrSeatTaken  = errors.New("seat already taken")
)

// Reason codes exposed to API clients.
const (
	ReasonOutOfRange = "out_of_range"
	ReasonSeatTaken  = "seat_taken"
)

// SeatGrid is the seating geometry of a hall.
type SeatGrid struct {
	Rows       int
	SeatsInRow int
}

func (g SeatGrid) Capacity() int {
	return g.Rows * g.SeatsInRow
}

func (g SeatGrid) Contains(row, seat int) bool {
	return row >= 1 && row <= g.Rows && seat >= 1 && seat <= g.SeatsInRow
}

// SeatError describes the ticket that failed validation. Index is the
// position of the ticket in the request.
type SeatError struct {
	Index          int
	MovieSessionID uuid.UUID
	Row            int
	Seat           int
	Message        string
	Err            error
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("ticket %d (row %d, seat %d): %s", e.Index, e.Row, e.Seat, e.Message)
}

func (e *SeatError) Unwrap() error {
	return e.Err
}

// Reason maps the error to its client-facing code.
func (e *SeatError) Reason() string {
	if errors.Is(e.Err, ErrSeatTaken) {
		return ReasonSeatTaken
	}
	return ReasonOutOfRange
}

// NewOutOfRange reports a seat that lies outside grid.
func NewOutOfRange(grid SeatGrid, row, seat int) *SeatError {
	msg := fmt.Sprintf("Seat number must be between 1 and %d", grid.SeatsInRow)
	if row < 1 || row > grid.Rows {
		msg = fmt.Sprintf("Row number must be between 1 and %d", grid.Rows)
	}
	return &SeatError{Row: row, Seat: seat, Message: msg, Err: ErrOutOfRange}
}

// NewSeatTaken reports a seat that is already sold.
func NewSeatTaken(row, seat int) *SeatError {
	return &SeatError{Row: row, Seat: seat, Message: "Seat is already taken", Err: ErrSeatTaken}
}

// Validate checks a single seat against the grid and the set of taken
// places. taken may be nil.
func Validate(grid SeatGrid, taken Places, row, seat int) *SeatError {
	if !grid.Contains(row, seat) {
		return NewOutOfRange(grid, row, seat)
	}
	if taken.Has(row, seat) {
		return NewSeatTaken(row, seat)
	}
	return nil
}

// Places is a set of (row, seat) positions.
type Places map[[2]int]struct{}

func NewPlaces() Places {
	return make(Places)
}

func (p Places) Has(row, seat int) bool {
	_, ok := p[[2]int{row, seat}]
	return ok
}

func (p Places) Add(row, seat int) {
	p[[2]int{row, seat}] = struct{}{}
}

// Request is one requested ticket.
type Request struct {
	MovieSessionID uuid.UUID
	Row            int
	Seat           int
}

// Screening carries what the validator needs to know about one screening.
type Screening struct {
	Grid  SeatGrid
	Taken Places
}

// ValidateOrder checks every request in order and returns the first
// failure. Seats repeated inside the request count as taken. The caller
// must supply a Screening for every referenced movie session.
func ValidateOrder(screenings map[uuid.UUID]Screening, requests []Request) *SeatError {
	seen := make(map[uuid.UUID]Places, len(screenings))

	for i, req := range requests {
		s, ok := screenings[req.MovieSessionID]
		if !ok {
			panic(fmt.Sprintf("reservation: no screening loaded for %s", req.MovieSessionID))
		}

		batch, ok := seen[req.MovieSessionID]
		if !ok {
			batch = NewPlaces()
			seen[req.MovieSessionID] = batch
		}

		err := Validate(s.Grid, s.Taken, req.Row, req.Seat)
		if err == nil && batch.Has(req.Row, req.Seat) {
			err = NewSeatTaken(req.Row, req.Seat)
		}
		if err != nil {
			err.Index = i
			err.MovieSessionID = req.MovieSessionID
			return err
		}

		batch.Add(req.Row, req.Seat)
	}

	return nil
}

// TicketsAvailable is capacity minus sold, never below zero.
func TicketsAvailable(capacity, sold int) int {
	if sold >= capacity {
		return 0
	}
	return capacity - sold
}
