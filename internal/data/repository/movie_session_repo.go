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

type MovieSessionRepository interface {
	Create(ctx context.Context, session *entity.MovieSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSession, error)
	FindSummaries(ctx context.Context, filter entity.MovieSessionFilter) ([]entity.MovieSessionSummary, error)
	FindSummaryByID(ctx context.Context, id uuid.UUID) (*entity.MovieSessionSummary, error)
	TakenPlaces(ctx context.Context, id uuid.UUID) ([]entity.Place, error)
	FindLayouts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.MovieSessionLayout, error)
	Update(ctx context.Context, session *entity.MovieSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieSessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieSessionRepository(db database.PgxIface, log *zap.Logger) MovieSessionRepository {
	return &movieSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_session")),
	}
}

// summarySelect projects a screening into its list view. Availability is
// derived from capacity and tickets_sold by the caller.
const summarySelect = `
	SELECT ms.id, ms.show_time, m.title, h.name, h.rows * h.seats_in_row,
	       (SELECT COUNT(*) FROM tickets t WHERE t.movie_session_id = ms.id)
	FROM movie_sessions ms
	JOIN movies m ON m.id = ms.movie_id
	JOIN cinema_halls h ON h.id = ms.cinema_hall_id
`

func scanSummary(row pgx.Row) (entity.MovieSessionSummary, error) {
	var s entity.MovieSessionSummary
	err := row.Scan(
		&s.ID,
		&s.ShowTime,
		&s.MovieTitle,
		&s.CinemaHallName,
		&s.CinemaHallCapacity,
		&s.TicketsSold,
	)
	return s, err
}

func (r *movieSessionRepository) Create(ctx context.Context, session *entity.MovieSession) error {
	query := `
		INSERT INTO movie_sessions (id, show_time, movie_id, cinema_hall_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.ShowTime,
		session.MovieID,
		session.CinemaHallID,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if foreignKeyViolation(err) {
		return fmt.Errorf("create movie session: %w", ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to create movie session",
			zap.Error(err),
			zap.String("movie_id", session.MovieID.String()),
			zap.String("cinema_hall_id", session.CinemaHallID.String()),
		)
		return fmt.Errorf("create movie session: %w", err)
	}

	return nil
}

func (r *movieSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSession, error) {
	query := `
		SELECT id, show_time, movie_id, cinema_hall_id, created_at, updated_at
		FROM movie_sessions
		WHERE id = $1
	`

	var session entity.MovieSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.ShowTime,
		&session.MovieID,
		&session.CinemaHallID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie session by ID",
			zap.Error(err),
			zap.String("movie_session_id", id.String()),
		)
		return nil, fmt.Errorf("find movie session %s: %w", id, err)
	}

	return &session, nil
}

func (r *movieSessionRepository) FindSummaries(ctx context.Context, filter entity.MovieSessionFilter) ([]entity.MovieSessionSummary, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(summarySelect)
	queryBuilder.WriteString(" WHERE TRUE")

	args := []any{}
	argCount := 1

	if filter.MovieID != nil {
		fmt.Fprintf(&queryBuilder, " AND ms.movie_id = $%d", argCount)
		args = append(args, *filter.MovieID)
		argCount++
	}

	if filter.Date != nil {
		fmt.Fprintf(&queryBuilder, " AND (ms.show_time AT TIME ZONE 'UTC')::date = $%d::date", argCount)
		args = append(args, filter.Date.UTC().Format("2006-01-02"))
	}

	queryBuilder.WriteString(" ORDER BY ms.show_time, ms.id")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movie sessions", zap.Error(err))
		return nil, fmt.Errorf("find movie sessions: %w", err)
	}
	defer rows.Close()

	summaries := make([]entity.MovieSessionSummary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			r.log.Error("Failed to scan movie session row", zap.Error(err))
			return nil, fmt.Errorf("scan movie session row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie session rows: %w", err)
	}

	return summaries, nil
}

func (r *movieSessionRepository) FindSummaryByID(ctx context.Context, id uuid.UUID) (*entity.MovieSessionSummary, error) {
	s, err := scanSummary(r.db.QueryRow(ctx, summarySelect+" WHERE ms.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie session summary",
			zap.Error(err),
			zap.String("movie_session_id", id.String()),
		)
		return nil, fmt.Errorf("find movie session summary %s: %w", id, err)
	}

	return &s, nil
}

// TakenPlaces lists sold seats ordered by row, then seat.
func (r *movieSessionRepository) TakenPlaces(ctx context.Context, id uuid.UUID) ([]entity.Place, error) {
	return takenPlaces(ctx, r.db, id)
}

// FindLayouts loads the hall grid and sold seats of every existing screening
// in ids. Missing ids are absent from the map.
func (r *movieSessionRepository) FindLayouts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.MovieSessionLayout, error) {
	layouts := make(map[uuid.UUID]entity.MovieSessionLayout, len(ids))
	if len(ids) == 0 {
		return layouts, nil
	}

	query := `
		SELECT ms.id, h.rows, h.seats_in_row
		FROM movie_sessions ms
		JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE ms.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load movie session layouts", zap.Error(err))
		return nil, fmt.Errorf("find movie session layouts: %w", err)
	}

	for rows.Next() {
		var l entity.MovieSessionLayout
		if err := rows.Scan(&l.MovieSessionID, &l.Rows, &l.SeatsInRow); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan movie session layout: %w", err)
		}
		layouts[l.MovieSessionID] = l
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie session layouts: %w", err)
	}

	if len(layouts) == 0 {
		return layouts, nil
	}

	placeRows, err := r.db.Query(ctx, `
		SELECT movie_session_id, row, seat
		FROM tickets
		WHERE movie_session_id = ANY($1)
		ORDER BY movie_session_id, row, seat
	`, ids)
	if err != nil {
		r.log.Error("Failed to load taken places", zap.Error(err), zap.Int("movie_sessions", len(layouts)))
		return nil, fmt.Errorf("find taken places: %w", err)
	}
	defer placeRows.Close()

	for placeRows.Next() {
		var id uuid.UUID
		var p entity.Place
		if err := placeRows.Scan(&id, &p.Row, &p.Seat); err != nil {
			return nil, fmt.Errorf("scan taken place: %w", err)
		}
		l, ok := layouts[id]
		if !ok {
			continue
		}
		l.Taken = append(l.Taken, p)
		layouts[id] = l
	}
	if err := placeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate taken places: %w", err)
	}

	return layouts, nil
}

func takenPlaces(ctx context.Context, q database.Querier, movieSessionID uuid.UUID) ([]entity.Place, error) {
	query := `
		SELECT row, seat
		FROM tickets
		WHERE movie_session_id = $1
		ORDER BY row, seat
	`

	rows, err := q.Query(ctx, query, movieSessionID)
	if err != nil {
		return nil, fmt.Errorf("find taken places: %w", err)
	}
	defer rows.Close()

	places := make([]entity.Place, 0)
	for rows.Next() {
		var p entity.Place
		if err := rows.Scan(&p.Row, &p.Seat); err != nil {
			return nil, fmt.Errorf("scan taken place: %w", err)
		}
		places = append(places, p)
	}

	return places, rows.Err()
}

// Update refuses to move a screening into a hall whose grid would not
// contain its sold seats. The screening is locked for update and the target
// hall for share before the check, so neither tickets nor the grid can change
// underneath it.
func (r *movieSessionRepository) Update(ctx context.Context, session *entity.MovieSession) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM movie_sessions WHERE id = $1 FOR UPDATE`, session.ID,
		).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var rows, seatsInRow int
		err = tx.QueryRow(ctx,
			`SELECT rows, seats_in_row FROM cinema_halls WHERE id = $1 FOR SHARE`, session.CinemaHallID,
		).Scan(&rows, &seatsInRow)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var outside bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
			    SELECT 1 FROM tickets
			    WHERE movie_session_id = $1
			      AND (row > $2 OR seat > $3)
			)
		`, session.ID, rows, seatsInRow).Scan(&outside)
		if err != nil {
			return err
		}
		if outside {
			return ErrConflict
		}

		_, err = tx.Exec(ctx, `
			UPDATE movie_sessions
			SET show_time = $2, movie_id = $3, cinema_hall_id = $4, updated_at = $5
			WHERE id = $1
		`, session.ID, session.ShowTime, session.MovieID, session.CinemaHallID, session.UpdatedAt)
		return err
	})

	switch {
	case errors.Is(err, ErrNotFound), foreignKeyViolation(err):
		return fmt.Errorf("update movie session %s: %w", session.ID, ErrNotFound)
	case errors.Is(err, ErrConflict):
		return fmt.Errorf("update movie session %s: sold seats outside hall %s: %w",
			session.ID, session.CinemaHallID, ErrConflict)
	case err != nil:
		r.log.Error("Failed to update movie session",
			zap.Error(err),
			zap.String("movie_session_id", session.ID.String()),
		)
		return fmt.Errorf("update movie session %s: %w", session.ID, err)
	}

	return nil
}

func (r *movieSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movie_sessions WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie session",
			zap.Error(err),
			zap.String("movie_session_id", id.String()),
		)
		return fmt.Errorf("delete movie session %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie session %s: %w", id, ErrNotFound)
	}

	r.log.Info("Movie session deleted", zap.String("movie_session_id", id.String()))
	return nil
}
