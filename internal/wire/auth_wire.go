package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth func(http.Handler) http.Handler) {
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	r.With(auth).Post("/api/logout", authHandler.Logout)
}
