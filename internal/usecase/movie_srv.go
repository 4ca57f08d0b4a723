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
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.MovieFilterRequest) ([]response.MovieListResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieWriteResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieWriteResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo  *repository.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	c cache.Cache,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.MovieFilterRequest) ([]response.MovieListResponse, error) {
	actorIDs, err := utils.ParseUUIDList(req.Actors)
	if err != nil {
		return nil, fmt.Errorf("%w: actors: %v", ErrValidation, err)
	}
	genreIDs, err := utils.ParseUUIDList(req.Genres)
	if err != nil {
		return nil, fmt.Errorf("%w: genres: %v", ErrValidation, err)
	}

	filter := entity.MovieFilter{
		ActorIDs: actorIDs,
		GenreIDs: genreIDs,
		Title:    strings.TrimSpace(req.Title),
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.String("title", filter.Title),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	out := make([]response.MovieListResponse, len(movies))
	for i := range movies {
		out[i] = response.MovieToListResponse(&movies[i])
	}
	return out, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	movie, err := s.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToDetailResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieWriteResponse, error) {
	genreIDs, actorIDs, err := s.resolveLinks(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Duration:    req.Duration,
	}

	if err := s.repo.Movie.Create(ctx, movie, genreIDs, actorIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("movie links: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.Int("genres", len(genreIDs)),
		zap.Int("actors", len(actorIDs)),
	)

	resp := writeResponse(movie, genreIDs, actorIDs)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieWriteResponse, error) {
	movie, err := s.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	genreIDs, actorIDs, err := s.resolveLinks(ctx, req)
	if err != nil {
		return nil, err
	}

	movie.Title = strings.TrimSpace(req.Title)
	movie.Description = req.Description
	movie.Duration = req.Duration
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie, genreIDs, actorIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("movie %s: %w", movie.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	// Listings embed the title.
	invalidateSessionList(ctx, s.cache, s.log)

	resp := writeResponse(movie, genreIDs, actorIDs)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseID("movie", movieID)
	if err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("movie %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete movie: %w", err)
	}

	invalidateSessionList(ctx, s.cache, s.log)
	return nil
}

func (s *movieService) find(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}

	return movie, nil
}

// resolveLinks parses the referenced genre and actor ids and confirms each
// one exists.
func (s *movieService) resolveLinks(ctx context.Context, req *request.MovieRequest) ([]uuid.UUID, []uuid.UUID, error) {
	genreIDs, err := utils.ParseUUIDs(req.Genres)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: genres: %v", ErrValidation, err)
	}
	actorIDs, err := utils.ParseUUIDs(req.Actors)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: actors: %v", ErrValidation, err)
	}

	genreIDs = utils.UniqueUUIDs(genreIDs)
	actorIDs = utils.UniqueUUIDs(actorIDs)

	if len(genreIDs) > 0 {
		genres, err := s.repo.Genre.FindByIDs(ctx, genreIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("get genres: %w", err)
		}
		if len(genres) != len(genreIDs) {
			return nil, nil, fmt.Errorf("genres %v: %w", req.Genres, ErrNotFound)
		}
	}

	if len(actorIDs) > 0 {
		actors, err := s.repo.Actor.FindByIDs(ctx, actorIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("get actors: %w", err)
		}
		if len(actors) != len(actorIDs) {
			return nil, nil, fmt.Errorf("actors %v: %w", req.Actors, ErrNotFound)
		}
	}

	return genreIDs, actorIDs, nil
}

func writeResponse(movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) response.MovieWriteResponse {
	movie.Genres = make([]entity.Genre, len(genreIDs))
	for i, id := range genreIDs {
		movie.Genres[i].ID = id
	}
	movie.Actors = make([]entity.Actor, len(actorIDs))
	for i, id := range actorIDs {
		movie.Actors[i].ID = id
	}
	return response.MovieToWriteResponse(movie)
}
