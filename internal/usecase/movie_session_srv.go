package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type MovieSessionService interface {
	GetMovieSessions(ctx context.Context, req *request.MovieSessionFilterRequest) ([]response.MovieSessionListResponse, error)
	GetMovieSessionByID(ctx context.Context, sessionID string) (*response.MovieSessionDetailResponse, error)
	CreateMovieSession(ctx context.Context, req *request.MovieSessionRequest) (*response.MovieSessionWriteResponse, error)
	UpdateMovieSession(ctx context.Context, sessionID string, req *request.MovieSessionRequest) (*response.MovieSessionWriteResponse, error)
	DeleteMovieSession(ctx context.Context, sessionID string) error
}

type movieSessionService struct {
	repo    *repository.Repository
	cache   cache.Cache
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewMovieSessionService(
	repo *repository.Repository,
	c cache.Cache,
	m *metrics.Metrics,
	log *zap.Logger,
) MovieSessionService {
	return &movieSessionService{
		repo:    repo,
		cache:   c,
		metrics: m,
		log:     log.With(zap.String("service", "movie_session")),
	}
}

// GetMovieSessions lists screenings with their remaining capacity. An
// unparsable date is dropped from the filter.
func (s *movieSessionService) GetMovieSessions(ctx context.Context, req *request.MovieSessionFilterRequest) ([]response.MovieSessionListResponse, error) {
	var filter entity.MovieSessionFilter

	if raw := strings.TrimSpace(req.Movie); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: movie %q is not a valid id", ErrValidation, raw)
		}
		filter.MovieID = &id
	}

	if raw := strings.TrimSpace(req.Date); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			s.log.Warn("Ignoring unparsable date filter",
				zap.String("date", raw),
				zap.Error(err),
			)
		} else {
			filter.Date = &date
		}
	}

	key := s.listKey(ctx, filter)
	if key != "" {
		var cached []response.MovieSessionListResponse
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			s.metrics.ObserveCache("hit")
			return cached, nil
		case errors.Is(err, cache.ErrCacheMiss):
			s.metrics.ObserveCache("miss")
		default:
			s.metrics.ObserveCache("error")
			s.log.Warn("Movie session cache read failed", zap.Error(err))
		}
	}

	summaries, err := s.repo.MovieSession.FindSummaries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get movie sessions: %w", err)
	}

	out := make([]response.MovieSessionListResponse, len(summaries))
	for i := range summaries {
		out[i] = response.MovieSessionToListResponse(&summaries[i])
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, out); err != nil {
			s.log.Warn("Movie session cache write failed", zap.Error(err))
		}
	}

	return out, nil
}

// listKey returns "" when the cache generation cannot be read, which skips
// the cache for this request.
func (s *movieSessionService) listKey(ctx context.Context, filter entity.MovieSessionFilter) string {
	gen, err := s.cache.Generation(ctx, movieSessionsNamespace)
	if err != nil {
		s.metrics.ObserveCache("error")
		s.log.Warn("Movie session cache generation unavailable", zap.Error(err))
		return ""
	}

	movie, date := "", ""
	if filter.MovieID != nil {
		movie = filter.MovieID.String()
	}
	if filter.Date != nil {
		date = filter.Date.Format(dateLayout)
	}

	return cache.Key(movieSessionsNamespace, gen, "movie="+movie, "date="+date)
}

func (s *movieSessionService) GetMovieSessionByID(ctx context.Context, sessionID string) (*response.MovieSessionDetailResponse, error) {
	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, session.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	hall, err := s.repo.Hall.FindByID(ctx, session.CinemaHallID)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	// Both are cascade parents, so this only happens mid-delete.
	if movie == nil || hall == nil {
		return nil, fmt.Errorf("movie session %s: %w", session.ID, ErrNotFound)
	}

	taken, err := s.repo.MovieSession.TakenPlaces(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("get taken places: %w", err)
	}

	resp := response.MovieSessionToDetailResponse(session, movie, hall, taken)
	return &resp, nil
}

func (s *movieSessionService) CreateMovieSession(ctx context.Context, req *request.MovieSessionRequest) (*response.MovieSessionWriteResponse, error) {
	movieID, hallID, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.MovieSession{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ShowTime:     req.ShowTime.UTC(),
		MovieID:      movieID,
		CinemaHallID: hallID,
	}

	if err := s.repo.MovieSession.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("movie session references: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("create movie session: %w", err)
	}

	s.log.Info("Movie session created",
		zap.String("movie_session_id", session.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.String("cinema_hall_id", hallID.String()),
		zap.Time("show_time", session.ShowTime),
	)

	invalidateSessionList(ctx, s.cache, s.log)

	resp := response.MovieSessionToWriteResponse(session)
	return &resp, nil
}

func (s *movieSessionService) UpdateMovieSession(ctx context.Context, sessionID string, req *request.MovieSessionRequest) (*response.MovieSessionWriteResponse, error) {
	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	movieID, hallID, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	session.ShowTime = req.ShowTime.UTC()
	session.MovieID = movieID
	session.CinemaHallID = hallID
	session.UpdatedAt = time.Now()

	if err := s.repo.MovieSession.Update(ctx, session); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("movie session %s: %w", session.ID, ErrNotFound)
		case errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("movie session %s has sold seats outside the new hall: %w", session.ID, ErrConflict)
		}
		return nil, fmt.Errorf("update movie session: %w", err)
	}

	invalidateSessionList(ctx, s.cache, s.log)

	resp := response.MovieSessionToWriteResponse(session)
	return &resp, nil
}

func (s *movieSessionService) DeleteMovieSession(ctx context.Context, sessionID string) error {
	id, err := parseID("movie session", sessionID)
	if err != nil {
		return err
	}

	if err := s.repo.MovieSession.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("movie session %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete movie session: %w", err)
	}

	invalidateSessionList(ctx, s.cache, s.log)
	return nil
}

func (s *movieSessionService) find(ctx context.Context, sessionID string) (*entity.MovieSession, error) {
	id, err := parseID("movie session", sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.MovieSession.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("movie session %s: %w", id, ErrNotFound)
	}

	return session, nil
}

func (s *movieSessionService) resolveRefs(ctx context.Context, req *request.MovieSessionRequest) (uuid.UUID, uuid.UUID, error) {
	movieID, err := uuid.Parse(req.Movie)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: movie %q is not a valid id", ErrValidation, req.Movie)
	}
	hallID, err := uuid.Parse(req.CinemaHall)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: cinema_hall %q is not a valid id", ErrValidation, req.CinemaHall)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("hall %s: %w", hallID, ErrNotFound)
	}

	return movieID, hallID, nil
}
