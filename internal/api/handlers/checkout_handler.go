package handlers

import (
	"context"
	"net/http"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// CheckoutService defines the interface for order operations
type CheckoutService interface {
	Checkout(ctx context.Context, req *entities.CheckoutRequest) (*entities.Order, error)
	Mine(ctx context.Context) ([]*entities.Order, error)
}

// CheckoutHandler handles /Checkout and /Orders requests
type CheckoutHandler struct {
	service CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Checkout handles POST /Checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req entities.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	order, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusCreated, "order placed", order)
}

// Mine handles GET /Orders/mine
func (h *CheckoutHandler) Mine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.Mine(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}
