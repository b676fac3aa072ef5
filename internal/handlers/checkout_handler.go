package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/foodie-express/internal/middleware"
	"github.com/Lixing-Zhang/foodie-express/internal/models"
	"github.com/Lixing-Zhang/foodie-express/internal/service"
)

// CheckoutHandler places orders from the session's cart
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	log             *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		log:             log,
	}
}

// PlaceOrder handles POST /api/checkout. The body is optional; missing
// fields fall back to the signed-in user's profile.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	var req models.OrderRequest
	if err := decodeJSON(r, &req, true); err != nil {
		h.log.Warn("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.checkoutService.PlaceOrder(r.Context(), sess, req)
	if err != nil {
		var validation *service.ValidationError
		var transient *service.TransientError

		switch {
		case errors.Is(err, service.ErrCheckoutInProgress):
			WriteError(w, http.StatusConflict, err.Error(), h.log)
		case errors.As(err, &validation):
			WriteError(w, http.StatusBadRequest, validation.Reason, h.log)
		case errors.As(err, &transient):
			h.log.Warn("order submission failed", "session_id", sess.ID, "error", err)
			WriteError(w, http.StatusServiceUnavailable, "Order could not be placed, please try again", h.log)
		default:
			h.log.Error("failed to place order", "session_id", sess.ID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.log)
	h.log.Info("order placed", "order_id", order.ID, "items_count", len(order.Items))
}
