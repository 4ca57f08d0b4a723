package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/reservation"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const ticketSeatConstraint = "tickets_movie_session_row_seat_key"

type OrderRepository interface {
	// CreateWithTickets inserts the order and its tickets in request order
	// inside one transaction. A seat rejected by the database is reported as
	// a *reservation.SeatError and nothing is persisted.
	CreateWithTickets(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

// insertTicket only inserts when the seat lies inside the hall grid as it is
// at insert time; zero affected rows means the seat is out of range. The
// screening and hall rows stay share-locked until commit, so a concurrent
// hall shrink or screening move waits for the order and then sees its seats.
const insertTicket = `
	INSERT INTO tickets (id, movie_session_id, order_id, row, seat, position, created_at)
	SELECT $1::uuid, ms.id, $3::uuid, $4::int, $5::int, $6::int, $7::timestamptz
	FROM movie_sessions ms
	JOIN cinema_halls h ON h.id = ms.cinema_hall_id
	WHERE ms.id = $2
	  AND $4::int BETWEEN 1 AND h.rows
	  AND $5::int BETWEEN 1 AND h.seats_in_row
	FOR SHARE OF ms, h
	RETURNING id
`

func (r *orderRepository) CreateWithTickets(ctx context.Context, order *entity.Order) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO orders (id, user_id, created_at) VALUES ($1, $2, $3)`,
			order.ID, order.UserID, order.CreatedAt,
		)
		if err != nil {
			return err
		}

		for i := range order.Tickets {
			t := &order.Tickets[i]
			t.Position = i
			var inserted uuid.UUID
			err := tx.QueryRow(ctx, insertTicket,
				t.ID, t.MovieSessionID, order.ID, t.Row, t.Seat, t.Position, t.CreatedAt,
			).Scan(&inserted)

			if errors.Is(err, pgx.ErrNoRows) {
				grid, gridErr := r.gridOf(ctx, tx, t.MovieSessionID)
				if gridErr != nil {
					return gridErr
				}
				seatErr := reservation.NewOutOfRange(grid, t.Row, t.Seat)
				seatErr.Index, seatErr.MovieSessionID = i, t.MovieSessionID
				return seatErr
			}
			if uniqueViolation(err, ticketSeatConstraint) {
				seatErr := reservation.NewSeatTaken(t.Row, t.Seat)
				seatErr.Index, seatErr.MovieSessionID = i, t.MovieSessionID
				return seatErr
			}
			if err != nil {
				return err
			}
		}

		return nil
	})

	var seatErr *reservation.SeatError
	if errors.As(err, &seatErr) {
		r.log.Info("Ticket rejected by storage",
			zap.String("order_id", order.ID.String()),
			zap.Int("index", seatErr.Index),
			zap.String("reason", seatErr.Reason()),
		)
		return seatErr
	}
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.Int("tickets", len(order.Tickets)),
		)
		return fmt.Errorf("create order %s: %w", order.ID, err)
	}

	return nil
}

// gridOf reads the current grid of a screening's hall. A screening deleted
// mid-order yields a zero grid, which every seat falls outside of.
func (r *orderRepository) gridOf(ctx context.Context, q database.Querier, movieSessionID uuid.UUID) (reservation.SeatGrid, error) {
	var grid reservation.SeatGrid
	err := q.QueryRow(ctx, `
		SELECT h.rows, h.seats_in_row
		FROM movie_sessions ms
		JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE ms.id = $1
	`, movieSessionID).Scan(&grid.Rows, &grid.SeatsInRow)

	if errors.Is(err, pgx.ErrNoRows) {
		return reservation.SeatGrid{}, nil
	}
	return grid, err
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT id, user_id, created_at FROM orders WHERE id = $1`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.UserID, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}

	orders := []entity.Order{order}
	if err := r.loadTickets(ctx, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// FindByUser pages through a user's orders, newest first.
func (r *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Order, error) {
	query := `
		SELECT id, user_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find orders by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find orders of user %s: %w", userID, err)
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	for rows.Next() {
		var order entity.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.CreatedAt); err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if err := r.loadTickets(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count orders of user %s: %w", userID, err)
	}

	return count, nil
}

// loadTickets attaches tickets in request order, each with its screening
// summary.
func (r *orderRepository) loadTickets(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Tickets = []entity.Ticket{}
	}

	query := `
		SELECT t.id, t.order_id, t.movie_session_id, t.row, t.seat, t.position, t.created_at,
		       ms.show_time, m.title, h.name, h.rows * h.seats_in_row,
		       (SELECT COUNT(*) FROM tickets s WHERE s.movie_session_id = ms.id)
		FROM tickets t
		JOIN movie_sessions ms ON ms.id = t.movie_session_id
		JOIN movies m ON m.id = ms.movie_id
		JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE t.order_id = ANY($1)
		ORDER BY t.order_id, t.position
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load order tickets", zap.Error(err))
		return fmt.Errorf("load order tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.Ticket
		var s entity.MovieSessionSummary
		err := rows.Scan(
			&t.ID,
			&t.OrderID,
			&t.MovieSessionID,
			&t.Row,
			&t.Seat,
			&t.Position,
			&t.CreatedAt,
			&s.ShowTime,
			&s.MovieTitle,
			&s.CinemaHallName,
			&s.CinemaHallCapacity,
			&s.TicketsSold,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return fmt.Errorf("scan ticket row: %w", err)
		}
		s.ID = t.MovieSessionID
		t.MovieSession = &s

		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}

	return rows.Err()
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete order %s: %w", id, ErrNotFound)
	}

	r.log.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}
