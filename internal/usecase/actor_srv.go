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

type ActorService interface {
	GetActors(ctx context.Context) ([]response.ActorResponse, error)
	GetActorByID(ctx context.Context, actorID string) (*response.ActorResponse, error)
	CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error)
	UpdateActor(ctx context.Context, actorID string, req *request.ActorRequest) (*response.ActorResponse, error)
	DeleteActor(ctx context.Context, actorID string) error
}

type actorService struct {
	actors repository.ActorRepository
	log    *zap.Logger
}

func NewActorService(actors repository.ActorRepository, log *zap.Logger) ActorService {
	return &actorService{
		actors: actors,
		log:    log.With(zap.String("service", "actor")),
	}
}

func (s *actorService) GetActors(ctx context.Context) ([]response.ActorResponse, error) {
	actors, err := s.actors.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get actors: %w", err)
	}
	return response.ActorsToResponse(actors), nil
}

func (s *actorService) GetActorByID(ctx context.Context, actorID string) (*response.ActorResponse, error) {
	actor, err := s.find(ctx, actorID)
	if err != nil {
		return nil, err
	}

	resp := response.ActorToResponse(actor)
	return &resp, nil
}

func (s *actorService) CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error) {
	actor := &entity.Actor{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, fmt.Errorf("create actor: %w", err)
	}

	s.log.Info("Actor created",
		zap.String("actor_id", actor.ID.String()),
		zap.String("full_name", actor.FullName()))

	resp := response.ActorToResponse(actor)
	return &resp, nil
}

func (s *actorService) UpdateActor(ctx context.Context, actorID string, req *request.ActorRequest) (*response.ActorResponse, error) {
	actor, err := s.find(ctx, actorID)
	if err != nil {
		return nil, err
	}

	actor.FirstName = strings.TrimSpace(req.FirstName)
	actor.LastName = strings.TrimSpace(req.LastName)

	if err := s.actors.Update(ctx, actor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("actor %s: %w", actor.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("update actor: %w", err)
	}

	resp := response.ActorToResponse(actor)
	return &resp, nil
}

func (s *actorService) DeleteActor(ctx context.Context, actorID string) error {
	id, err := parseID("actor", actorID)
	if err != nil {
		return err
	}

	if err := s.actors.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("actor %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete actor: %w", err)
	}

	return nil
}

func (s *actorService) find(ctx context.Context, actorID string) (*entity.Actor, error) {
	id, err := parseID("actor", actorID)
	if err != nil {
		return nil, err
	}

	actor, err := s.actors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}
	if actor == nil {
		return nil, fmt.Errorf("actor %s: %w", id, ErrNotFound)
	}

	return actor, nil
}
