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

type HallRepository interface {
	Create(ctx context.Context, hall *entity.Hall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindAll(ctx context.Context) ([]entity.Hall, error)
	Update(ctx context.Context, hall *entity.Hall) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	query := `
		INSERT INTO cinema_halls (id, name, rows, seats_in_row, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Rows,
		hall.SeatsInRow,
		hall.CreatedAt,
		hall.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("name", hall.Name),
			zap.Int("rows", hall.Rows),
			zap.Int("seats_in_row", hall.SeatsInRow),
		)
		return fmt.Errorf("create hall %q: %w", hall.Name, err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `
		SELECT id, name, rows, seats_in_row, created_at, updated_at
		FROM cinema_halls
		WHERE id = $1
	`

	var hall entity.Hall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Rows,
		&hall.SeatsInRow,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find hall %s: %w", id, err)
	}

	return &hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context) ([]entity.Hall, error) {
	query := `
		SELECT id, name, rows, seats_in_row, created_at, updated_at
		FROM cinema_halls
		ORDER BY name, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list halls", zap.Error(err))
		return nil, fmt.Errorf("list halls: %w", err)
	}
	defer rows.Close()

	halls := make([]entity.Hall, 0)
	for rows.Next() {
		var hall entity.Hall
		err := rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.Rows,
			&hall.SeatsInRow,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, fmt.Errorf("scan hall row: %w", err)
		}
		halls = append(halls, hall)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate hall rows: %w", err)
	}

	return halls, nil
}

// Update refuses to shrink the grid past a ticket already sold in one of the
// hall's screenings; that case yields ErrConflict. The hall row is locked
// before the sold-seat check, so orders still in flight either finish first
// and are counted or wait and are checked against the new grid.
func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM cinema_halls WHERE id = $1 FOR UPDATE`, hall.ID,
		).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var outside bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
			    SELECT 1
			    FROM tickets t
			    JOIN movie_sessions ms ON ms.id = t.movie_session_id
			    WHERE ms.cinema_hall_id = $1
			      AND (t.row > $2 OR t.seat > $3)
			)
		`, hall.ID, hall.Rows, hall.SeatsInRow).Scan(&outside)
		if err != nil {
			return err
		}
		if outside {
			return ErrConflict
		}

		_, err = tx.Exec(ctx, `
			UPDATE cinema_halls
			SET name = $2, rows = $3, seats_in_row = $4, updated_at = $5
			WHERE id = $1
		`, hall.ID, hall.Name, hall.Rows, hall.SeatsInRow, hall.UpdatedAt)
		return err
	})

	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("update hall %s: %w", hall.ID, ErrNotFound)
	case errors.Is(err, ErrConflict):
		return fmt.Errorf("update hall %s: sold seats outside %dx%d: %w",
			hall.ID, hall.Rows, hall.SeatsInRow, ErrConflict)
	case err != nil:
		r.log.Error("Failed to update hall",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return fmt.Errorf("update hall %s: %w", hall.ID, err)
	}

	return nil
}

func (r *hallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cinema_halls WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete hall",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return fmt.Errorf("delete hall %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete hall %s: %w", id, ErrNotFound)
	}

	r.log.Info("Hall deleted", zap.String("hall_id", id.String()))
	return nil
}
