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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HallService interface {
	GetHalls(ctx context.Context) ([]response.HallResponse, error)
	GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error)
	CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error)
	UpdateHall(ctx context.Context, hallID string, req *request.HallRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, hallID string) error
}

type hallService struct {
	halls repository.HallRepository
	cache cache.Cache
	log   *zap.Logger
}

func NewHallService(halls repository.HallRepository, c cache.Cache, log *zap.Logger) HallService {
	return &hallService{
		halls: halls,
		cache: c,
		log:   log.With(zap.String("service", "hall")),
	}
}

func validateGrid(rows, seatsInRow int) error {
	if rows < 1 || seatsInRow < 1 {
		return fmt.Errorf("%w: rows and seats_in_row must be at least 1", ErrValidation)
	}
	return nil
}

func (s *hallService) GetHalls(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.halls.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get halls: %w", err)
	}

	out := make([]response.HallResponse, len(halls))
	for i := range halls {
		out[i] = response.HallToResponse(&halls[i])
	}
	return out, nil
}

func (s *hallService) GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error) {
	hall, err := s.find(ctx, hallID)
	if err != nil {
		return nil, err
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error) {
	if err := validateGrid(req.Rows, req.SeatsInRow); err != nil {
		return nil, err
	}

	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       strings.TrimSpace(req.Name),
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}

	if err := s.halls.Create(ctx, hall); err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.Int("capacity", hall.Capacity()))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

// UpdateHall rejects a grid that would leave a sold seat outside it.
func (s *hallService) UpdateHall(ctx context.Context, hallID string, req *request.HallRequest) (*response.HallResponse, error) {
	if err := validateGrid(req.Rows, req.SeatsInRow); err != nil {
		return nil, err
	}

	hall, err := s.find(ctx, hallID)
	if err != nil {
		return nil, err
	}

	hall.Name = strings.TrimSpace(req.Name)
	hall.Rows = req.Rows
	hall.SeatsInRow = req.SeatsInRow
	hall.UpdatedAt = time.Now()

	if err := s.halls.Update(ctx, hall); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("hall %s has sold seats outside %dx%d: %w",
				hall.ID, hall.Rows, hall.SeatsInRow, ErrConflict)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("hall %s: %w", hall.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("update hall: %w", err)
	}

	s.invalidateSessions(ctx)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) DeleteHall(ctx context.Context, hallID string) error {
	id, err := parseID("hall", hallID)
	if err != nil {
		return err
	}

	if err := s.halls.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("hall %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete hall: %w", err)
	}

	s.invalidateSessions(ctx)
	return nil
}

func (s *hallService) find(ctx context.Context, hallID string) (*entity.Hall, error) {
	id, err := parseID("hall", hallID)
	if err != nil {
		return nil, err
	}

	hall, err := s.halls.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s: %w", id, ErrNotFound)
	}

	return hall, nil
}

func (s *hallService) invalidateSessions(ctx context.Context) {
	invalidateSessionList(ctx, s.cache, s.log)
}
