package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.GetHalls(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get halls")
		return
	}
	utils.ResponseSuccess(w, "Cinema halls retrieved successfully", halls)
}

func (h *HallHandler) GetHallByID(w http.ResponseWriter, r *http.Request) {
	hall, err := h.service.GetHallByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get hall")
		return
	}
	utils.ResponseSuccess(w, "Cinema hall retrieved successfully", hall)
}

func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hall, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hall")
		return
	}
	utils.ResponseCreated(w, "Cinema hall created successfully", hall)
}

func (h *HallHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hall, err := h.service.UpdateHall(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update hall")
		return
	}
	utils.ResponseSuccess(w, "Cinema hall updated successfully", hall)
}

func (h *HallHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHall(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete hall")
		return
	}
	utils.ResponseSuccess(w, "Cinema hall deleted successfully", nil)
}
