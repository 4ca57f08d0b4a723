package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/reservation"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderPageSize is fixed; clients only choose the page.
const OrderPageSize = 5

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *request.OrderRequest) (*response.OrderResponse, error)
	GetOrders(ctx context.Context, userID uuid.UUID, page int) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrderByID(ctx context.Context, userID uuid.UUID, orderID string) (*response.OrderResponse, error)
	DeleteOrder(ctx context.Context, userID uuid.UUID, orderID string) error
}

type orderService struct {
	repo      *repository.Repository
	cache     cache.Cache
	metrics   *metrics.Metrics
	publisher queue.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(repo *repository.Repository, deps Deps, log *zap.Logger) OrderService {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Publisher == nil {
		deps.Publisher = queue.Noop{}
	}

	return &orderService{
		repo:      repo,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		publisher: deps.Publisher,
		log:       log.With(zap.String("service", "order")),
		now:       time.Now,
	}
}

// CreateOrder validates every ticket against the current seating of its
// screening and then persists the order and all tickets atomically. The
// database re-checks bounds and uniqueness, so a seat sold by a concurrent
// order between the two steps is still reported as taken.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.OrderRequest) (*response.OrderResponse, error) {
	if len(req.Tickets) == 0 {
		s.metrics.ObserveOrder("invalid", 0)
		return nil, fmt.Errorf("%w: an order needs at least one ticket", ErrValidation)
	}

	requests := make([]reservation.Request, len(req.Tickets))
	sessionIDs := make([]uuid.UUID, 0, len(req.Tickets))
	for i, t := range req.Tickets {
		id, err := uuid.Parse(t.MovieSession)
		if err != nil {
			s.metrics.ObserveOrder("invalid", 0)
			return nil, fmt.Errorf("%w: tickets[%d].movie_session %q is not a valid id", ErrValidation, i, t.MovieSession)
		}
		requests[i] = reservation.Request{MovieSessionID: id, Row: t.Row, Seat: t.Seat}
		sessionIDs = append(sessionIDs, id)
	}

	layouts, err := s.repo.MovieSession.FindLayouts(ctx, sessionIDs)
	if err != nil {
		s.metrics.ObserveOrder("error", 0)
		return nil, fmt.Errorf("load seating: %w", err)
	}

	screenings := make(map[uuid.UUID]reservation.Screening, len(layouts))
	for _, r := range requests {
		if _, ok := screenings[r.MovieSessionID]; ok {
			continue
		}
		layout, ok := layouts[r.MovieSessionID]
		if !ok {
			s.metrics.ObserveOrder("not_found", 0)
			return nil, fmt.Errorf("movie session %s: %w", r.MovieSessionID, ErrNotFound)
		}
		taken := reservation.NewPlaces()
		for _, p := range layout.Taken {
			taken.Add(p.Row, p.Seat)
		}
		screenings[r.MovieSessionID] = reservation.Screening{
			Grid:  reservation.SeatGrid{Rows: layout.Rows, SeatsInRow: layout.SeatsInRow},
			Taken: taken,
		}
	}

	if seatErr := reservation.ValidateOrder(screenings, requests); seatErr != nil {
		s.metrics.ObserveOrder(seatErr.Reason(), 0)
		s.log.Info("Order rejected",
			zap.String("user_id", userID.String()),
			zap.Int("index", seatErr.Index),
			zap.String("reason", seatErr.Reason()),
		)
		return nil, seatErr
	}

	now := s.now().UTC()
	order := &entity.Order{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     userID,
		Tickets:    make([]entity.Ticket, len(requests)),
	}
	for i, r := range requests {
		order.Tickets[i] = entity.Ticket{
			BaseSimple:     entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			MovieSessionID: r.MovieSessionID,
			OrderID:        order.ID,
			Row:            r.Row,
			Seat:           r.Seat,
			Position:       i,
		}
	}

	if err := s.repo.Order.CreateWithTickets(ctx, order); err != nil {
		var seatErr *reservation.SeatError
		if errors.As(err, &seatErr) {
			s.metrics.ObserveOrder(seatErr.Reason(), 0)
			return nil, seatErr
		}
		s.metrics.ObserveOrder("error", 0)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.metrics.ObserveOrder("created", len(order.Tickets))
	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("tickets", len(order.Tickets)),
	)

	invalidateSessionList(ctx, s.cache, s.log)
	s.publishCreated(ctx, order)

	created, err := s.repo.Order.FindByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
	}

	resp := response.OrderToResponse(created)
	return &resp, nil
}

// publishCreated never fails the request; the order is already committed.
func (s *orderService) publishCreated(ctx context.Context, order *entity.Order) {
	event := queue.OrderCreatedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]queue.TicketEvent, len(order.Tickets)),
	}
	for i, t := range order.Tickets {
		event.Tickets[i] = queue.TicketEvent{
			MovieSessionID: t.MovieSessionID,
			Row:            t.Row,
			Seat:           t.Seat,
		}
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.metrics.ObserveOrderEvent("failed")
		s.log.Warn("Failed to publish order created event",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return
	}
	s.metrics.ObserveOrderEvent("published")
}

func (s *orderService) GetOrders(ctx context.Context, userID uuid.UUID, page int) (*response.PaginatedResponse[response.OrderResponse], error) {
	pageReq := request.NewPageRequest(page, OrderPageSize)

	orders, err := s.repo.Order.FindByUser(ctx, userID, pageReq.Limit(), pageReq.Offset())
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.Order.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	out := make([]response.OrderResponse, len(orders))
	for i := range orders {
		out[i] = response.OrderToResponse(&orders[i])
	}

	return response.NewPaginatedResponse(out, pageReq.Page, OrderPageSize, total), nil
}

func (s *orderService) GetOrderByID(ctx context.Context, userID uuid.UUID, orderID string) (*response.OrderResponse, error) {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, userID uuid.UUID, orderID string) error {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if err := s.repo.Order.Delete(ctx, order.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
		}
		return fmt.Errorf("delete order: %w", err)
	}

	s.log.Info("Order deleted",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
	)

	invalidateSessionList(ctx, s.cache, s.log)
	return nil
}

func (s *orderService) findOwned(ctx context.Context, userID uuid.UUID, orderID string) (*entity.Order, error) {
	id, err := parseID("order", orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s belongs to another user: %w", id, ErrForbidden)
	}

	return order, nil
}
