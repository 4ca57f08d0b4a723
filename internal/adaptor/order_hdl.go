package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.OrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order created successfully", order)
}

// GetOrders handles GET /api/orders?page=N
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)

	orders, err := h.service.GetOrders(r.Context(), userID, page)
	if err != nil {
		handleServiceError(w, h.log, err, "get orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	order, err := h.service.GetOrderByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved successfully", order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteOrder(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete order")
		return
	}

	utils.ResponseSuccess(w, "Order deleted successfully", nil)
}
