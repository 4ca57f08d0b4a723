package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireOrder mounts the caller's own orders; ownership is checked by the
// service.
func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", orderHandler.GetOrders)
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/{id}", orderHandler.GetOrderByID)
		r.Delete("/{id}", orderHandler.DeleteOrder)
	})
}
