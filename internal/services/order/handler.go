package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/models"
	"restaurant-menu/internal/services/web"
	"restaurant-menu/internal/validation"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register adds the order routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", web.WithLogging(h.logger, "/orders", h.PlaceOrder))
	mux.HandleFunc("POST /orders/dispatch", web.WithLogging(h.logger, "/orders/dispatch", h.DispatchNext))
	mux.HandleFunc("GET /health", web.WithLogging(h.logger, "/health", h.HealthCheck))
}

// PlaceOrder handles POST /orders requests
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.PlaceOrderRequest
	if err := web.DecodeJSON(r, &req, true); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	if err := validation.ValidatePlaceOrderRequest(&req); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
		})
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.PlaceOrder(ctx, &req, requestID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			web.WriteError(w, http.StatusNotFound, err.Error(), requestID)
			return
		}
		h.logger.Error("order_creation_failed", "Failed to place order", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
		})
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if err := web.WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// DispatchNext handles POST /orders/dispatch requests. An empty queue answers 204.
func (h *Handler) DispatchNext(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	msg, ok, err := h.service.DispatchNext(ctx, requestID)
	if err != nil {
		web.WriteError(w, http.StatusBadGateway, "Failed to publish order", requestID)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := web.WriteJSON(w, http.StatusOK, msg); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":         "ok",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"service":        "menu-service",
		"pending_orders": h.service.Pending(),
	}

	if err := web.WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", web.RequestID(r), err, nil)
	}
}
