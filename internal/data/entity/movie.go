package entity

import "github.com/google/uuid"

type Movie struct {
	Base
	Title       string `db:"title"`
	Description string `db:"description"`
	Duration    int    `db:"duration"` // minutes

	// Loaded from the join tables, not columns of movies.
	Genres []Genre
	Actors []Actor
}

// MovieFilter narrows a movie listing. Kinds combine with AND, ids inside
// one kind with OR.
type MovieFilter struct {
	ActorIDs []uuid.UUID
	GenreIDs []uuid.UUID
	Title    string
}
