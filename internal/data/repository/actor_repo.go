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

type ActorRepository interface {
	Create(ctx context.Context, actor *entity.Actor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Actor, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Actor, error)
	FindAll(ctx context.Context) ([]entity.Actor, error)
	Update(ctx context.Context, actor *entity.Actor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type actorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActorRepository(db database.PgxIface, log *zap.Logger) ActorRepository {
	return &actorRepository{
		db:  db,
		log: log.With(zap.String("repository", "actor")),
	}
}

func (r *actorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	query := `
		INSERT INTO actors (id, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, actor.ID, actor.FirstName, actor.LastName, actor.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create actor",
			zap.Error(err),
			zap.String("full_name", actor.FullName()),
		)
		return fmt.Errorf("create actor: %w", err)
	}

	return nil
}

func (r *actorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Actor, error) {
	query := `SELECT id, first_name, last_name, created_at FROM actors WHERE id = $1`

	var actor entity.Actor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&actor.ID,
		&actor.FirstName,
		&actor.LastName,
		&actor.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find actor by ID",
			zap.Error(err),
			zap.String("actor_id", id.String()),
		)
		return nil, fmt.Errorf("find actor by id: %w", err)
	}

	return &actor, nil
}

func (r *actorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Actor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, first_name, last_name, created_at
		FROM actors
		WHERE id = ANY($1)
		ORDER BY last_name, first_name
	`
	return r.list(ctx, query, ids)
}

func (r *actorRepository) FindAll(ctx context.Context) ([]entity.Actor, error) {
	query := `
		SELECT id, first_name, last_name, created_at
		FROM actors
		ORDER BY last_name, first_name
	`
	return r.list(ctx, query)
}

func (r *actorRepository) list(ctx context.Context, query string, args ...any) ([]entity.Actor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list actors", zap.Error(err))
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	actors := make([]entity.Actor, 0)
	for rows.Next() {
		var actor entity.Actor
		if err := rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName, &actor.CreatedAt); err != nil {
			r.log.Error("Failed to scan actor row", zap.Error(err))
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		actors = append(actors, actor)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate actor rows: %w", err)
	}

	return actors, nil
}

func (r *actorRepository) Update(ctx context.Context, actor *entity.Actor) error {
	query := `UPDATE actors SET first_name = $2, last_name = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, actor.ID, actor.FirstName, actor.LastName)
	if err != nil {
		r.log.Error("Failed to update actor",
			zap.Error(err),
			zap.String("actor_id", actor.ID.String()),
		)
		return fmt.Errorf("update actor %s: %w", actor.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update actor %s: %w", actor.ID, ErrNotFound)
	}

	return nil
}

func (r *actorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete actor",
			zap.Error(err),
			zap.String("actor_id", id.String()),
		)
		return fmt.Errorf("delete actor %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete actor %s: %w", id, ErrNotFound)
	}

	r.log.Info("Actor deleted", zap.String("actor_id", id.String()))
	return nil
}
