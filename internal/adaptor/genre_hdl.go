package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}
	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

func (h *GenreHandler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	genre, err := h.service.GetGenreByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get genre")
		return
	}
	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}

func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	genre, err := h.service.CreateGenre(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}
	utils.ResponseCreated(w, "Genre created successfully", genre)
}

func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	genre, err := h.service.UpdateGenre(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update genre")
		return
	}
	utils.ResponseSuccess(w, "Genre updated successfully", genre)
}

func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGenre(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete genre")
		return
	}
	utils.ResponseSuccess(w, "Genre deleted successfully", nil)
}
