package usecase

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinels are wrapped with context and classified by handlers with
// errors.Is. Seat failures surface as *reservation.SeatError instead.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyExists      = errors.New("already exists")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// parseID parses a path id. A malformed id cannot name an existing row, so
// it is reported as not found.
func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", kind, raw, ErrNotFound)
	}
	return id, nil
}
