package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const genreNameConstraint = "genres_name_key"

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Genre, error)
	FindAll(ctx context.Context) ([]entity.Genre, error)
	Update(ctx context.Context, genre *entity.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.CreatedAt)
	if uniqueViolation(err, genreNameConstraint) {
		return fmt.Errorf("create genre %q: %w", genre.Name, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("name", genre.Name),
		)
		return fmt.Errorf("create genre: %w", err)
	}

	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	query := `SELECT id, name, created_at FROM genres WHERE id = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, id).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by ID",
			zap.Error(err),
			zap.String("genre_id", id.String()),
		)
		return nil, fmt.Errorf("find genre by id: %w", err)
	}

	return &genre, nil
}

// FindByIDs returns the genres that exist among ids; missing ids are
// silently absent from the result.
func (r *genreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, created_at FROM genres WHERE id = ANY($1) ORDER BY name`
	return r.list(ctx, query, ids)
}

func (r *genreRepository) FindAll(ctx context.Context) ([]entity.Genre, error) {
	query := `SELECT id, name, created_at FROM genres ORDER BY name`
	return r.list(ctx, query)
}

func (r *genreRepository) list(ctx context.Context, query string, args ...any) ([]entity.Genre, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]entity.Genre, 0)
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	query := `UPDATE genres SET name = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, genre.ID, genre.Name)
	if uniqueViolation(err, genreNameConstraint) {
		return fmt.Errorf("update genre %q: %w", genre.Name, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update genre",
			zap.Error(err),
			zap.String("genre_id", genre.ID.String()),
		)
		return fmt.Errorf("update genre %s: %w", genre.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update genre %s: %w", genre.ID, ErrNotFound)
	}

	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete genre",
			zap.Error(err),
			zap.String("genre_id", id.String()),
		)
		return fmt.Errorf("delete genre %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete genre %s: %w", id, ErrNotFound)
	}

	r.log.Info("Genre deleted", zap.String("genre_id", id.String()))
	return nil
}
