package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type movieSessionFixture struct {
	sessions *MockMovieSessionRepository
	movies   *MockMovieRepository
	halls    *MockHallRepository
	cache    *MockCache
	metrics  *metrics.Metrics
	svc      MovieSessionService
}

func newMovieSessionFixture() *movieSessionFixture {
	f := &movieSessionFixture{
		sessions: new(MockMovieSessionRepository),
		movies:   new(MockMovieRepository),
		halls:    new(MockHallRepository),
		cache:    new(MockCache),
		metrics:  metrics.NewWithRegistry(prometheus.NewRegistry()),
	}
	repo := &repository.Repository{
		MovieSession: f.sessions,
		Movie:        f.movies,
		Hall:         f.halls,
	}
	f.svc = NewMovieSessionService(repo, f.cache, f.metrics, zap.NewNop())
	return f
}

func TestMovieSessionService_GetMovieSessions(t *testing.T) {
	ctx := context.Background()
	movieID := uuid.New()

	t.Run("cache miss loads and stores", func(t *testing.T) {
		f := newMovieSessionFixture()
		date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		key := cache.Key(movieSessionsNamespace, 3, "movie="+movieID.String(), "date=2026-05-01")

		f.cache.On("Generation", ctx, movieSessionsNamespace).Return(int64(3), nil)
		f.cache.On("Get", ctx, key, mock.Anything).Return(cache.ErrCacheMiss)
		f.sessions.On("FindSummaries", ctx, entity.MovieSessionFilter{MovieID: &movieID, Date: &date}).
			Return([]entity.MovieSessionSummary{{
				ID:                 uuid.New(),
				MovieTitle:         "Arrival",
				CinemaHallName:     "Blue",
				CinemaHallCapacity: 150,
				TicketsSold:        1,
			}}, nil)
		f.cache.On("Set", ctx, key, mock.Anything).Return(nil)

		got, err := f.svc.GetMovieSessions(ctx, &request.MovieSessionFilterRequest{
			Movie: movieID.String(),
			Date:  "2026-05-01",
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 149, got[0].TicketsAvailable)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheRequestsTotal.WithLabelValues("miss")))
		f.cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		f := newMovieSessionFixture()
		key := cache.Key(movieSessionsNamespace, 0, "movie=", "date=")
		cached := []response.MovieSessionListResponse{{MovieTitle: "Cached", TicketsAvailable: 7}}

		f.cache.On("Generation", ctx, movieSessionsNamespace).Return(int64(0), nil)
		f.cache.On("Get", ctx, key, mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*[]response.MovieSessionListResponse) = cached
			}).
			Return(nil)

		got, err := f.svc.GetMovieSessions(ctx, &request.MovieSessionFilterRequest{})
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheRequestsTotal.WithLabelValues("hit")))
		f.sessions.AssertNotCalled(t, "FindSummaries", mock.Anything, mock.Anything)
	})

	t.Run("unparsable date is ignored", func(t *testing.T) {
		f := newMovieSessionFixture()
		f.cache.On("Generation", ctx, movieSessionsNamespace).Return(int64(0), nil)
		f.cache.On("Get", ctx, mock.Anything, mock.Anything).Return(cache.ErrCacheMiss)
		f.cache.On("Set", ctx, mock.Anything, mock.Anything).Return(nil)
		f.sessions.On("FindSummaries", ctx, entity.MovieSessionFilter{}).
			Return([]entity.MovieSessionSummary{}, nil)

		got, err := f.svc.GetMovieSessions(ctx, &request.MovieSessionFilterRequest{Date: "01/05/2026"})
		require.NoError(t, err)
		assert.Empty(t, got)
		f.sessions.AssertExpectations(t)
	})

	t.Run("malformed movie id", func(t *testing.T) {
		f := newMovieSessionFixture()

		_, err := f.svc.GetMovieSessions(ctx, &request.MovieSessionFilterRequest{Movie: "abc"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestMovieSessionService_GetMovieSessionByID(t *testing.T) {
	ctx := context.Background()
	f := newMovieSessionFixture()

	session := &entity.MovieSession{
		Base:         entity.Base{ID: uuid.New()},
		ShowTime:     time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC),
		MovieID:      uuid.New(),
		CinemaHallID: uuid.New(),
	}
	f.sessions.On("FindByID", ctx, session.ID).Return(session, nil)
	f.movies.On("FindByID", ctx, session.MovieID).Return(&entity.Movie{
		Base:   entity.Base{ID: session.MovieID},
		Title:  "Arrival",
		Genres: []entity.Genre{{Name: "Drama"}},
		Actors: []entity.Actor{{FirstName: "Amy", LastName: "Adams"}},
	}, nil)
	f.halls.On("FindByID", ctx, session.CinemaHallID).Return(&entity.Hall{
		Base: entity.Base{ID: session.CinemaHallID}, Name: "Blue", Rows: 10, SeatsInRow: 15,
	}, nil)
	f.sessions.On("TakenPlaces", ctx, session.ID).Return([]entity.Place{{Row: 1, Seat: 1}, {Row: 2, Seat: 3}}, nil)

	got, err := f.svc.GetMovieSessionByID(ctx, session.ID.String())
	require.NoError(t, err)

	assert.Equal(t, []string{"Drama"}, got.Movie.Genres)
	assert.Equal(t, []string{"Amy Adams"}, got.Movie.Actors)
	assert.Equal(t, 150, got.CinemaHall.Capacity)
	assert.Equal(t, []response.PlaceResponse{{Row: 1, Seat: 1}, {Row: 2, Seat: 3}}, got.TakenPlaces)
}

func TestMovieSessionService_CreateMovieSession(t *testing.T) {
	ctx := context.Background()
	showTime := time.Date(2026, 5, 1, 20, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("missing hall", func(t *testing.T) {
		f := newMovieSessionFixture()
		movieID, hallID := uuid.New(), uuid.New()
		f.movies.On("FindByID", ctx, movieID).Return(&entity.Movie{Base: entity.Base{ID: movieID}}, nil)
		f.halls.On("FindByID", ctx, hallID).Return(nil, nil)

		_, err := f.svc.CreateMovieSession(ctx, &request.MovieSessionRequest{
			ShowTime: showTime, Movie: movieID.String(), CinemaHall: hallID.String(),
		})
		assert.ErrorIs(t, err, ErrNotFound)
		f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("created and cache invalidated", func(t *testing.T) {
		f := newMovieSessionFixture()
		movieID, hallID := uuid.New(), uuid.New()
		f.movies.On("FindByID", ctx, movieID).Return(&entity.Movie{Base: entity.Base{ID: movieID}}, nil)
		f.halls.On("FindByID", ctx, hallID).Return(&entity.Hall{Base: entity.Base{ID: hallID}}, nil)
		f.sessions.On("Create", ctx, mock.AnythingOfType("*entity.MovieSession")).Return(nil)
		f.cache.On("Invalidate", ctx, movieSessionsNamespace).Return(nil)

		got, err := f.svc.CreateMovieSession(ctx, &request.MovieSessionRequest{
			ShowTime: showTime, Movie: movieID.String(), CinemaHall: hallID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, movieID.String(), got.Movie)
		assert.Equal(t, hallID.String(), got.CinemaHall)
		assert.Equal(t, time.UTC, got.ShowTime.Location())
		assert.True(t, got.ShowTime.Equal(showTime))
		f.cache.AssertExpectations(t)
	})
}
