package handler

import (
	"net/http"
	"time"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SessionCookie configures the anonymous order session cookie.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	auth    auth.Authorizer
	cookie  SessionCookie
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, authorizer auth.Authorizer, cookie SessionCookie, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		auth:    authorizer,
		cookie:  cookie,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PlaceOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), &req, h.sessionID(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if result.IsNewSession {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookie.Name,
			Value:    result.SessionID,
			Path:     "/",
			MaxAge:   int(h.cookie.MaxAge.Seconds()),
			HttpOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	writeJSON(w, http.StatusCreated, model.CreatedResponse{OrderID: &result.OrderID})
}

// List handles GET /orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrdersResponse{Orders: orders})
}

// ListMine handles GET /orders/my requests.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListMyOrders(r.Context(), h.sessionID(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrdersResponse{Orders: orders})
}

// ListCurrentByTable handles GET /tables/{tableId}/orders/current requests.
func (h *OrderHandler) ListCurrentByTable(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin, model.RoleWaiter) == nil {
		return
	}

	orders, err := h.service.ListCurrentByTable(r.Context(), chi.URLParam(r, "tableId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrdersResponse{Orders: orders})
}

// UpdateStatus handles PATCH /orders/{orderId}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin, model.RoleWaiter, model.RoleKitchen) == nil {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) sessionID(r *http.Request) string {
	c, err := r.Cookie(h.cookie.Name)
	if err != nil {
		return ""
	}
	return c.Value
}
