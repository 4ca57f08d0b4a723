package usecase

import (
	"context"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

type MockGenreRepository struct{ mock.Mock }

func (m *MockGenreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *MockGenreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	args := m.Called(ctx, id)
	genre, _ := args.Get(0).(*entity.Genre)
	return genre, args.Error(1)
}

func (m *MockGenreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Genre, error) {
	args := m.Called(ctx, ids)
	genres, _ := args.Get(0).([]entity.Genre)
	return genres, args.Error(1)
}

func (m *MockGenreRepository) FindAll(ctx context.Context) ([]entity.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]entity.Genre)
	return genres, args.Error(1)
}

func (m *MockGenreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *MockGenreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockActorRepository struct{ mock.Mock }

func (m *MockActorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockActorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Actor, error) {
	args := m.Called(ctx, id)
	actor, _ := args.Get(0).(*entity.Actor)
	return actor, args.Error(1)
}

func (m *MockActorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Actor, error) {
	args := m.Called(ctx, ids)
	actors, _ := args.Get(0).([]entity.Actor)
	return actors, args.Error(1)
}

func (m *MockActorRepository) FindAll(ctx context.Context) ([]entity.Actor, error) {
	args := m.Called(ctx)
	actors, _ := args.Get(0).([]entity.Actor)
	return actors, args.Error(1)
}

func (m *MockActorRepository) Update(ctx context.Context, actor *entity.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockActorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockHallRepository struct{ mock.Mock }

func (m *MockHallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	return m.Called(ctx, hall).Error(0)
}

func (m *MockHallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	args := m.Called(ctx, id)
	hall, _ := args.Get(0).(*entity.Hall)
	return hall, args.Error(1)
}

func (m *MockHallRepository) FindAll(ctx context.Context) ([]entity.Hall, error) {
	args := m.Called(ctx)
	halls, _ := args.Get(0).([]entity.Hall)
	return halls, args.Error(1)
}

func (m *MockHallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	return m.Called(ctx, hall).Error(0)
}

func (m *MockHallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMovieRepository struct{ mock.Mock }

func (m *MockMovieRepository) Create(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error {
	return m.Called(ctx, movie, genreIDs, actorIDs).Error(0)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*entity.Movie)
	return movie, args.Error(1)
}

func (m *MockMovieRepository) FindAll(ctx context.Context, filter entity.MovieFilter) ([]entity.Movie, error) {
	args := m.Called(ctx, filter)
	movies, _ := args.Get(0).([]entity.Movie)
	return movies, args.Error(1)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error {
	return m.Called(ctx, movie, genreIDs, actorIDs).Error(0)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMovieSessionRepository struct{ mock.Mock }

func (m *MockMovieSessionRepository) Create(ctx context.Context, session *entity.MovieSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockMovieSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.MovieSession)
	return session, args.Error(1)
}

func (m *MockMovieSessionRepository) FindSummaries(ctx context.Context, filter entity.MovieSessionFilter) ([]entity.MovieSessionSummary, error) {
	args := m.Called(ctx, filter)
	summaries, _ := args.Get(0).([]entity.MovieSessionSummary)
	return summaries, args.Error(1)
}

func (m *MockMovieSessionRepository) FindSummaryByID(ctx context.Context, id uuid.UUID) (*entity.MovieSessionSummary, error) {
	args := m.Called(ctx, id)
	summary, _ := args.Get(0).(*entity.MovieSessionSummary)
	return summary, args.Error(1)
}

func (m *MockMovieSessionRepository) TakenPlaces(ctx context.Context, id uuid.UUID) ([]entity.Place, error) {
	args := m.Called(ctx, id)
	places, _ := args.Get(0).([]entity.Place)
	return places, args.Error(1)
}

func (m *MockMovieSessionRepository) FindLayouts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.MovieSessionLayout, error) {
	args := m.Called(ctx, ids)
	layouts, _ := args.Get(0).(map[uuid.UUID]entity.MovieSessionLayout)
	return layouts, args.Error(1)
}

func (m *MockMovieSessionRepository) Update(ctx context.Context, session *entity.MovieSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockMovieSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) CreateWithTickets(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) *entity.Order); ok {
		return fn(ctx, id), args.Error(1)
	}
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	orders, _ := args.Get(0).([]entity.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(ctx context.Context, key string, dst any) error {
	return m.Called(ctx, key, dst).Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockCache) Generation(ctx context.Context, namespace string) (int64, error) {
	args := m.Called(ctx, namespace)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Invalidate(ctx context.Context, namespace string) error {
	return m.Called(ctx, namespace).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, event queue.OrderCreatedEvent) error {
	return m.Called(ctx, event).Error(0)
}
