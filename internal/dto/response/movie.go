package response

import "cinema-reservation/internal/data/entity"

// MovieListResponse names genres and actors instead of nesting them.
type MovieListResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

type MovieDetailResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
}

// MovieWriteResponse echoes the ids a create or update was given.
type MovieWriteResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

func MovieToListResponse(movie *entity.Movie) MovieListResponse {
	genres := make([]string, len(movie.Genres))
	for i, g := range movie.Genres {
		genres[i] = g.Name
	}

	actors := make([]string, len(movie.Actors))
	for i, a := range movie.Actors {
		actors[i] = a.FullName()
	}

	return MovieListResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      genres,
		Actors:      actors,
	}
}

func MovieToDetailResponse(movie *entity.Movie) MovieDetailResponse {
	return MovieDetailResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      GenresToResponse(movie.Genres),
		Actors:      ActorsToResponse(movie.Actors),
	}
}

func MovieToWriteResponse(movie *entity.Movie) MovieWriteResponse {
	genres := make([]string, len(movie.Genres))
	for i, g := range movie.Genres {
		genres[i] = g.ID.String()
	}

	actors := make([]string, len(movie.Actors))
	for i, a := range movie.Actors {
		actors[i] = a.ID.String()
	}

	return MovieWriteResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      genres,
		Actors:      actors,
	}
}
