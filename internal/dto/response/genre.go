package response

import "cinema-reservation/internal/data/entity"

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ActorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID.String(),
		Name: genre.Name,
	}
}

func GenresToResponse(genres []entity.Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i := range genres {
		out[i] = GenreToResponse(&genres[i])
	}
	return out
}

func ActorToResponse(actor *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID.String(),
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		FullName:  actor.FullName(),
	}
}

func ActorsToResponse(actors []entity.Actor) []ActorResponse {
	out := make([]ActorResponse, len(actors))
	for i := range actors {
		out[i] = ActorToResponse(&actors[i])
	}
	return out
}
