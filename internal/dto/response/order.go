package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type TicketResponse struct {
	ID           string                   `json:"id"`
	MovieSession MovieSessionListResponse `json:"movie_session"`
	Row          int                      `json:"row"`
	Seat         int                      `json:"seat"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

// TicketErrorResponse points at the ticket that was rejected.
type TicketErrorResponse struct {
	Index        int    `json:"index"`
	MovieSession string `json:"movie_session"`
	Row          int    `json:"row"`
	Seat         int    `json:"seat"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	tickets := make([]TicketResponse, len(order.Tickets))
	for i := range order.Tickets {
		t := &order.Tickets[i]
		resp := TicketResponse{
			ID:   t.ID.String(),
			Row:  t.Row,
			Seat: t.Seat,
		}
		if t.MovieSession != nil {
			resp.MovieSession = MovieSessionToListResponse(t.MovieSession)
		}
		tickets[i] = resp
	}

	return OrderResponse{
		ID:        order.ID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   tickets,
	}
}
