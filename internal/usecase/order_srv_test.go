package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/reservation"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/queue"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	sessions  *MockMovieSessionRepository
	orders    *MockOrderRepository
	cache     *MockCache
	publisher *MockPublisher
	metrics   *metrics.Metrics
	svc       *orderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		sessions:  new(MockMovieSessionRepository),
		orders:    new(MockOrderRepository),
		cache:     new(MockCache),
		publisher: new(MockPublisher),
		metrics:   metrics.NewWithRegistry(prometheus.NewRegistry()),
	}

	repo := &repository.Repository{
		MovieSession: f.sessions,
		Order:        f.orders,
	}
	deps := Deps{Cache: f.cache, Metrics: f.metrics, Publisher: f.publisher}

	f.svc = NewOrderService(repo, deps, zap.NewNop()).(*orderService)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC) }
	return f
}

func smallHall(id uuid.UUID, taken ...entity.Place) map[uuid.UUID]entity.MovieSessionLayout {
	return map[uuid.UUID]entity.MovieSessionLayout{
		id: {MovieSessionID: id, Rows: 10, SeatsInRow: 15, Taken: taken},
	}
}

func TestOrderService_CreateOrder_RejectsEmptyOrder(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.CreateOrder(context.Background(), uuid.New(), &request.OrderRequest{})

	require.ErrorIs(t, err, ErrValidation)
	f.sessions.AssertNotCalled(t, "FindLayouts", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrdersTotal.WithLabelValues("invalid")))
}

func TestOrderService_CreateOrder_UnknownMovieSession(t *testing.T) {
	f := newOrderFixture()
	sessionID := uuid.New()
	f.sessions.On("FindLayouts", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]entity.MovieSessionLayout{}, nil)

	_, err := f.svc.CreateOrder(context.Background(), uuid.New(), &request.OrderRequest{
		Tickets: []request.TicketRequest{{MovieSession: sessionID.String(), Row: 1, Seat: 1}},
	})

	require.ErrorIs(t, err, ErrNotFound)
	f.orders.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_SeatErrors(t *testing.T) {
	sessionID := uuid.New()

	tests := []struct {
		name    string
		taken   []entity.Place
		tickets []request.TicketRequest
		index   int
		reason  string
		target  error
		message string
	}{
		{
			name: "row out of range",
			tickets: []request.TicketRequest{
				{MovieSession: sessionID.String(), Row: 1, Seat: 1},
				{MovieSession: sessionID.String(), Row: 11, Seat: 1},
			},
			index:   1,
			reason:  reservation.ReasonOutOfRange,
			target:  reservation.ErrOutOfRange,
			message: "Row number must be between 1 and 10",
		},
		{
			name: "seat out of range",
			tickets: []request.TicketRequest{
				{MovieSession: sessionID.String(), Row: 2, Seat: 16},
			},
			index:   0,
			reason:  reservation.ReasonOutOfRange,
			target:  reservation.ErrOutOfRange,
			message: "Seat number must be between 1 and 15",
		},
		{
			name:  "already sold",
			taken: []entity.Place{{Row: 3, Seat: 4}},
			tickets: []request.TicketRequest{
				{MovieSession: sessionID.String(), Row: 3, Seat: 4},
			},
			index:   0,
			reason:  reservation.ReasonSeatTaken,
			target:  reservation.ErrSeatTaken,
			message: "Seat is already taken",
		},
		{
			name: "repeated inside the order",
			tickets: []request.TicketRequest{
				{MovieSession: sessionID.String(), Row: 5, Seat: 5},
				{MovieSession: sessionID.String(), Row: 5, Seat: 6},
				{MovieSession: sessionID.String(), Row: 5, Seat: 5},
			},
			index:   2,
			reason:  reservation.ReasonSeatTaken,
			target:  reservation.ErrSeatTaken,
			message: "Seat is already taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			f.sessions.On("FindLayouts", mock.Anything, mock.Anything).
				Return(smallHall(sessionID, tt.taken...), nil)

			_, err := f.svc.CreateOrder(context.Background(), uuid.New(), &request.OrderRequest{Tickets: tt.tickets})

			var seatErr *reservation.SeatError
			require.ErrorAs(t, err, &seatErr)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.index, seatErr.Index)
			assert.Equal(t, sessionID, seatErr.MovieSessionID)
			assert.Equal(t, tt.reason, seatErr.Reason())
			assert.Equal(t, tt.message, seatErr.Message)
			f.orders.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrdersTotal.WithLabelValues(tt.reason)))
		})
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	sessionID := uuid.New()

	f.sessions.On("FindLayouts", mock.Anything, mock.Anything).Return(smallHall(sessionID), nil)

	var persisted *entity.Order
	f.orders.On("CreateWithTickets", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.orders.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(func(_ context.Context, id uuid.UUID) *entity.Order {
			o := *persisted
			o.Tickets = append([]entity.Ticket(nil), persisted.Tickets...)
			for i := range o.Tickets {
				o.Tickets[i].MovieSession = &entity.MovieSessionSummary{
					ID:                 sessionID,
					MovieTitle:         "Arrival",
					CinemaHallName:     "Blue",
					CinemaHallCapacity: 150,
					TicketsSold:        2,
				}
			}
			return &o
		}, nil).Once()
	f.cache.On("Invalidate", mock.Anything, movieSessionsNamespace).Return(nil)
	f.publisher.On("PublishOrderCreated", mock.Anything, mock.MatchedBy(func(e queue.OrderCreatedEvent) bool {
		return e.UserID == userID && len(e.Tickets) == 2
	})).Return(nil)

	resp, err := f.svc.CreateOrder(context.Background(), userID, &request.OrderRequest{
		Tickets: []request.TicketRequest{
			{MovieSession: sessionID.String(), Row: 1, Seat: 1},
			{MovieSession: sessionID.String(), Row: 1, Seat: 2},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, userID, persisted.UserID)
	require.Len(t, persisted.Tickets, 2)
	for _, ticket := range persisted.Tickets {
		assert.Equal(t, persisted.ID, ticket.OrderID)
		assert.Equal(t, persisted.CreatedAt, ticket.CreatedAt)
	}

	assert.Equal(t, persisted.ID.String(), resp.ID)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, 1, resp.Tickets[0].Row)
	assert.Equal(t, 2, resp.Tickets[1].Seat)
	assert.Equal(t, 148, resp.Tickets[0].MovieSession.TicketsAvailable)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrdersTotal.WithLabelValues("created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.TicketsSoldTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrderEventsTotal.WithLabelValues("published")))
	f.cache.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_KeepsRequestOrder(t *testing.T) {
	f := newOrderFixture()
	sessionID := uuid.New()

	f.sessions.On("FindLayouts", mock.Anything, mock.Anything).Return(smallHall(sessionID), nil)

	var persisted *entity.Order
	f.orders.On("CreateWithTickets", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(*entity.Order) }).
		Return(nil)
	f.orders.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(func(_ context.Context, id uuid.UUID) *entity.Order {
			o := *persisted
			o.Tickets = append([]entity.Ticket(nil), persisted.Tickets...)
			for i := range o.Tickets {
				o.Tickets[i].MovieSession = &entity.MovieSessionSummary{ID: sessionID, CinemaHallCapacity: 150}
			}
			return &o
		}, nil).Once()
	f.cache.On("Invalidate", mock.Anything, movieSessionsNamespace).Return(nil)
	f.publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.CreateOrder(context.Background(), uuid.New(), &request.OrderRequest{
		Tickets: []request.TicketRequest{
			{MovieSession: sessionID.String(), Row: 3, Seat: 5},
			{MovieSession: sessionID.String(), Row: 1, Seat: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, persisted.Tickets, 2)
	assert.Equal(t, 0, persisted.Tickets[0].Position)
	assert.Equal(t, 1, persisted.Tickets[1].Position)

	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, 3, resp.Tickets[0].Row)
	assert.Equal(t, 5, resp.Tickets[0].Seat)
	assert.Equal(t, 1, resp.Tickets[1].Row)
	assert.Equal(t, 2, resp.Tickets[1].Seat)
}

func TestOrderService_CreateOrder_LostRace(t *testing.T) {
	f := newOrderFixture()
	sessionID := uuid.New()

	f.sessions.On("FindLayouts", mock.Anything, mock.Anything).Return(smallHall(sessionID), nil)
	raced := reservation.NewSeatTaken(1, 1)
	raced.MovieSessionID = sessionID
	f.orders.On("CreateWithTickets", mock.Anything, mock.Anything).Return(raced)

	_, err := f.svc.CreateOrder(context.Background(), uuid.New(), &request.OrderRequest{
		Tickets: []request.TicketRequest{{MovieSession: sessionID.String(), Row: 1, Seat: 1}},
	})

	require.ErrorIs(t, err, reservation.ErrSeatTaken)
	f.publisher.AssertNotCalled(t, "PublishOrderCreated", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_PublishFailureIsNotFatal(t *testing.T) {
	f := newOrderFixture()
	sessionID := uuid.New()

	f.sessions.On("FindLayouts", mock.Anything, mock.Anything).Return(smallHall(sessionID), nil)
	f.orders.On("CreateWithTickets", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("FindByID", mock.Anything, mock.Anything).Return(&entity.Order{}, nil)
	f.cache.On("Invalidate", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	f.publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.svc.CreateOrder(context.Background(), uuid.New(), &request.OrderRequest{
		Tickets: []request.TicketRequest{{MovieSession: sessionID.String(), Row: 1, Seat: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrderEventsTotal.WithLabelValues("failed")))
}

func TestOrderService_GetOrders(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()

	f.orders.On("FindByUser", mock.Anything, userID, OrderPageSize, 5).
		Return([]entity.Order{{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID}}, nil)
	f.orders.On("CountByUser", mock.Anything, userID).Return(int64(6), nil)

	resp, err := f.svc.GetOrders(context.Background(), userID, 2)
	require.NoError(t, err)

	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Nil(t, resp.Pagination.NextPage)
	require.NotNil(t, resp.Pagination.PreviousPage)
	assert.Equal(t, 1, *resp.Pagination.PreviousPage)
}

func TestOrderService_Ownership(t *testing.T) {
	owner := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{BaseSimple: entity.BaseSimple{ID: orderID}, UserID: owner}

	t.Run("owner reads", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByID", mock.Anything, orderID).Return(stored, nil)

		resp, err := f.svc.GetOrderByID(context.Background(), owner, orderID.String())
		require.NoError(t, err)
		assert.Equal(t, orderID.String(), resp.ID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByID", mock.Anything, orderID).Return(stored, nil)

		_, err := f.svc.GetOrderByID(context.Background(), uuid.New(), orderID.String())
		assert.ErrorIs(t, err, ErrForbidden)

		err = f.svc.DeleteOrder(context.Background(), uuid.New(), orderID.String())
		assert.ErrorIs(t, err, ErrForbidden)
		f.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByID", mock.Anything, orderID).Return(nil, nil)

		_, err := f.svc.GetOrderByID(context.Background(), owner, orderID.String())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newOrderFixture()

		_, err := f.svc.GetOrderByID(context.Background(), owner, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
		f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("owner deletes", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByID", mock.Anything, orderID).Return(stored, nil)
		f.orders.On("Delete", mock.Anything, orderID).Return(nil)
		f.cache.On("Invalidate", mock.Anything, movieSessionsNamespace).Return(nil)

		require.NoError(t, f.svc.DeleteOrder(context.Background(), owner, orderID.String()))
		f.orders.AssertExpectations(t)
	})
}
