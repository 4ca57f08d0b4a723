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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreService interface {
	GetGenres(ctx context.Context) ([]response.GenreResponse, error)
	GetGenreByID(ctx context.Context, genreID string) (*response.GenreResponse, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, genreID string) error
}

type genreService struct {
	genres repository.GenreRepository
	log    *zap.Logger
}

func NewGenreService(genres repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genres: genres,
		log:    log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.genres.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *genreService) GetGenreByID(ctx context.Context, genreID string) (*response.GenreResponse, error) {
	id, err := parseID("genre", genreID)
	if err != nil {
		return nil, err
	}

	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if genre == nil {
		return nil, fmt.Errorf("genre %s: %w", id, ErrNotFound)
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: strings.TrimSpace(req.Name),
	}

	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("genre with name %q %w", genre.Name, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created",
		zap.String("genre_id", genre.ID.String()),
		zap.String("name", genre.Name))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*response.GenreResponse, error) {
	id, err := parseID("genre", genreID)
	if err != nil {
		return nil, err
	}

	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if genre == nil {
		return nil, fmt.Errorf("genre %s: %w", id, ErrNotFound)
	}

	genre.Name = strings.TrimSpace(req.Name)
	if err := s.genres.Update(ctx, genre); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("genre with name %q %w", genre.Name, ErrAlreadyExists)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("genre %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update genre: %w", err)
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, genreID string) error {
	id, err := parseID("genre", genreID)
	if err != nil {
		return err
	}

	if err := s.genres.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("genre %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete genre: %w", err)
	}

	return nil
}
