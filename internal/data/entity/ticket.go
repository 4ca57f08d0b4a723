package entity

import "github.com/google/uuid"

type Ticket struct {
	BaseSimple
	MovieSessionID uuid.UUID `db:"movie_session_id"`
	OrderID        uuid.UUID `db:"order_id"`
	Row            int       `db:"row"`
	Seat           int       `db:"seat"`
	// Position is the ticket's index in the order request.
	Position int `db:"position"`

	// Filled by order reads.
	MovieSession *MovieSessionSummary
}
