package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ActorHandler struct {
	service usecase.ActorService
	log     *zap.Logger
}

func NewActorHandler(service usecase.ActorService, log *zap.Logger) *ActorHandler {
	return &ActorHandler{
		service: service,
		log:     log.With(zap.String("handler", "actor")),
	}
}

func (h *ActorHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.service.GetActors(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get actors")
		return
	}
	utils.ResponseSuccess(w, "Actors retrieved successfully", actors)
}

func (h *ActorHandler) GetActorByID(w http.ResponseWriter, r *http.Request) {
	actor, err := h.service.GetActorByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get actor")
		return
	}
	utils.ResponseSuccess(w, "Actor retrieved successfully", actor)
}

func (h *ActorHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req request.ActorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	actor, err := h.service.CreateActor(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create actor")
		return
	}
	utils.ResponseCreated(w, "Actor created successfully", actor)
}

func (h *ActorHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	var req request.ActorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	actor, err := h.service.UpdateActor(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update actor")
		return
	}
	utils.ResponseSuccess(w, "Actor updated successfully", actor)
}

func (h *ActorHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteActor(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete actor")
		return
	}
	utils.ResponseSuccess(w, "Actor deleted successfully", nil)
}
