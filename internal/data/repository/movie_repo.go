package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// Create and Update write the movie row and its genre/actor links in
	// one transaction.
	Create(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, filter entity.MovieFilter) ([]entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (id, title, description, duration, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		_, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Description,
			movie.Duration,
			movie.CreatedAt,
			movie.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return insertMovieLinks(ctx, tx, movie.ID, genreIDs, actorIDs)
	})

	if foreignKeyViolation(err) {
		return fmt.Errorf("create movie %q: %w", movie.Title, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE movies
			SET title = $2, description = $3, duration = $4, updated_at = $5
			WHERE id = $1
		`

		result, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Description,
			movie.Duration,
			movie.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movie.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM movie_actors WHERE movie_id = $1`, movie.ID); err != nil {
			return err
		}

		return insertMovieLinks(ctx, tx, movie.ID, genreIDs, actorIDs)
	})

	if errors.Is(err, ErrNotFound) || foreignKeyViolation(err) {
		return fmt.Errorf("update movie %s: %w", movie.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID, err)
	}

	return nil
}

// insertMovieLinks writes the join rows with one multi-row insert per table.
func insertMovieLinks(ctx context.Context, q database.Querier, movieID uuid.UUID, genreIDs, actorIDs []uuid.UUID) error {
	if err := insertLinks(ctx, q, "movie_genres", "genre_id", movieID, genreIDs); err != nil {
		return err
	}
	return insertLinks(ctx, q, "movie_actors", "actor_id", movieID, actorIDs)
}

func insertLinks(ctx context.Context, q database.Querier, table, column string, movieID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `INSERT INTO %s (movie_id, %s) VALUES `, table, column)
	args := make([]any, 0, len(ids)*2)

	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d)", i*2+1, i*2+2)
		args = append(args, movieID, id)
	}
	sb.WriteString(" ON CONFLICT DO NOTHING")

	_, err := q.Exec(ctx, sb.String(), args...)
	return err
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, duration, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}

	movies := []entity.Movie{movie}
	if err := r.loadRelations(ctx, movies); err != nil {
		return nil, err
	}

	return &movies[0], nil
}

// FindAll applies the filter with EXISTS subqueries so a movie matching
// several requested ids is still returned once.
func (r *movieRepository) FindAll(ctx context.Context, filter entity.MovieFilter) ([]entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT m.id, m.title, m.description, m.duration, m.created_at, m.updated_at
		FROM movies m
		WHERE TRUE
	`)

	args := []any{}
	argCount := 1

	if len(filter.ActorIDs) > 0 {
		fmt.Fprintf(&queryBuilder,
			" AND EXISTS (SELECT 1 FROM movie_actors ma WHERE ma.movie_id = m.id AND ma.actor_id = ANY($%d))", argCount)
		args = append(args, filter.ActorIDs)
		argCount++
	}

	if len(filter.GenreIDs) > 0 {
		fmt.Fprintf(&queryBuilder,
			" AND EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = ANY($%d))", argCount)
		args = append(args, filter.GenreIDs)
		argCount++
	}

	if filter.Title != "" {
		fmt.Fprintf(&queryBuilder, " AND m.title ILIKE $%d", argCount)
		args = append(args, "%"+escapeLike(filter.Title)+"%")
	}

	queryBuilder.WriteString(" ORDER BY m.title, m.id")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Int("actor_filter", len(filter.ActorIDs)),
			zap.Int("genre_filter", len(filter.GenreIDs)),
			zap.String("title_filter", filter.Title),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	movies := make([]entity.Movie, 0)
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Duration,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	if err := r.loadRelations(ctx, movies); err != nil {
		return nil, err
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))
	return movies, nil
}

// loadRelations fills Genres and Actors for every movie with two queries.
func (r *movieRepository) loadRelations(ctx context.Context, movies []entity.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(movies))
	index := make(map[uuid.UUID]int, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
		index[movies[i].ID] = i
		movies[i].Genres = []entity.Genre{}
		movies[i].Actors = []entity.Actor{}
	}

	genreRows, err := r.db.Query(ctx, `
		SELECT mg.movie_id, g.id, g.name, g.created_at
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = ANY($1)
		ORDER BY g.name
	`, ids)
	if err != nil {
		r.log.Error("Failed to load movie genres", zap.Error(err))
		return fmt.Errorf("load movie genres: %w", err)
	}
	defer genreRows.Close()

	for genreRows.Next() {
		var movieID uuid.UUID
		var genre entity.Genre
		if err := genreRows.Scan(&movieID, &genre.ID, &genre.Name, &genre.CreatedAt); err != nil {
			return fmt.Errorf("scan movie genre: %w", err)
		}
		i := index[movieID]
		movies[i].Genres = append(movies[i].Genres, genre)
	}
	if err := genreRows.Err(); err != nil {
		return fmt.Errorf("iterate movie genres: %w", err)
	}

	actorRows, err := r.db.Query(ctx, `
		SELECT ma.movie_id, a.id, a.first_name, a.last_name, a.created_at
		FROM movie_actors ma
		JOIN actors a ON a.id = ma.actor_id
		WHERE ma.movie_id = ANY($1)
		ORDER BY a.last_name, a.first_name
	`, ids)
	if err != nil {
		r.log.Error("Failed to load movie actors", zap.Error(err))
		return fmt.Errorf("load movie actors: %w", err)
	}
	defer actorRows.Close()

	for actorRows.Next() {
		var movieID uuid.UUID
		var actor entity.Actor
		if err := actorRows.Scan(&movieID, &actor.ID, &actor.FirstName, &actor.LastName, &actor.CreatedAt); err != nil {
			return fmt.Errorf("scan movie actor: %w", err)
		}
		i := index[movieID]
		movies[i].Actors = append(movies[i].Actors, actor)
	}

	return actorRows.Err()
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie %s: %w", id, ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
