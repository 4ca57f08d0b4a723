package request

type TicketRequest struct {
	MovieSession string `json:"movie_session" validate:"required,uuid"`
	Row          int    `json:"row"`
	Seat         int    `json:"seat"`
}

type OrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}
