package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieSessionHandler struct {
	service usecase.MovieSessionService
	log     *zap.Logger
}

func NewMovieSessionHandler(service usecase.MovieSessionService, log *zap.Logger) *MovieSessionHandler {
	return &MovieSessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie_session")),
	}
}

// GetMovieSessions handles GET /api/movie_sessions?movie=&date=
func (h *MovieSessionHandler) GetMovieSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.MovieSessionFilterRequest{
		Movie: query.Get("movie"),
		Date:  query.Get("date"),
	}

	sessions, err := h.service.GetMovieSessions(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie sessions")
		return
	}

	utils.ResponseSuccess(w, "Movie sessions retrieved successfully", sessions)
}

// GetMovieSessionByID handles GET /api/movie_sessions/{id} with taken places.
func (h *MovieSessionHandler) GetMovieSessionByID(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetMovieSessionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie session")
		return
	}

	utils.ResponseSuccess(w, "Movie session retrieved successfully", session)
}

func (h *MovieSessionHandler) CreateMovieSession(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.service.CreateMovieSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie session")
		return
	}

	utils.ResponseCreated(w, "Movie session created successfully", session)
}

func (h *MovieSessionHandler) UpdateMovieSession(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.service.UpdateMovieSession(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie session")
		return
	}

	utils.ResponseSuccess(w, "Movie session updated successfully", session)
}

func (h *MovieSessionHandler) DeleteMovieSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovieSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete movie session")
		return
	}

	utils.ResponseSuccess(w, "Movie session deleted successfully", nil)
}
