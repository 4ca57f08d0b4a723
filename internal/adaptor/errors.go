package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/reservation"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var seatErr *reservation.SeatError

	switch {
	case errors.As(err, &seatErr):
		log.Info(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, seatErr.Message, response.TicketErrorResponse{
			Index:        seatErr.Index,
			MovieSession: seatErr.MovieSessionID.String(),
			Row:          seatErr.Row,
			Seat:         seatErr.Seat,
			Reason:       seatErr.Reason(),
			Message:      seatErr.Message,
		})

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrAlreadyExists),
		errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation + " failed - invalid credentials")
		utils.ResponseUnauthorized(w, "Invalid username or password")

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate writes the 400 response itself and reports false when
// the body is unusable.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}
