package response

import "cinema-reservation/internal/data/entity"

type HallResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:         hall.ID.String(),
		Name:       hall.Name,
		Rows:       hall.Rows,
		SeatsInRow: hall.SeatsInRow,
		Capacity:   hall.Capacity(),
	}
}
