package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/foodie-express/internal/middleware"
	"github.com/Lixing-Zhang/foodie-express/internal/repository"
	"github.com/Lixing-Zhang/foodie-express/internal/service"
)

// CartHandler handles requests against the session's cart
type CartHandler struct {
	service *service.CartService
	log     *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// AddItemRequest is the body of POST /api/cart/items. Quantity defaults to 1.
type AddItemRequest struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            *int   `json:"quantity,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// UpdateQuantityRequest is the body of PUT /api/cart/items/{itemId}
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, h.service.View(sess.Cart), h.log)
}

// AddItem handles POST /api/cart/items
// - 200: the updated cart
// - 400: malformed body or quantity below 1
// - 404: unknown menu item
// - 409: item unavailable, restaurant closed, or checkout in progress
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	var req AddItemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		h.log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if req.MenuItemID == "" {
		WriteError(w, http.StatusBadRequest, "menuItemId is required", h.log)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	totals, err := h.service.AddItem(r.Context(), sess, req.MenuItemID, quantity, req.SpecialInstructions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
		case errors.Is(err, repository.ErrMenuItemNotFound):
			WriteError(w, http.StatusNotFound, "Menu item not found", h.log)
		case errors.Is(err, service.ErrItemUnavailable):
			WriteError(w, http.StatusConflict, "Menu item is not available", h.log)
		case errors.Is(err, service.ErrRestaurantClosed):
			WriteError(w, http.StatusConflict, "Restaurant is closed", h.log)
		case errors.Is(err, service.ErrCheckoutInProgress):
			h.writeCheckoutPending(w)
		default:
			h.log.Error("failed to add cart item", "menu_item_id", req.MenuItemID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("cart item added",
		"session_id", sess.ID,
		"menu_item_id", req.MenuItemID,
		"quantity", quantity,
		"total_items", totals.ItemCount,
	)
	WriteJSON(w, http.StatusOK, h.service.View(sess.Cart), h.log)
}

// UpdateItem handles PUT /api/cart/items/{itemId}. A quantity of zero or
// less removes the line; an item not in the cart is left alone.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req, false); err != nil || req.Quantity == nil {
		WriteError(w, http.StatusBadRequest, "quantity is required", h.log)
		return
	}

	if _, err := h.service.UpdateQuantity(r.Context(), sess, chi.URLParam(r, "itemId"), *req.Quantity); err != nil {
		h.writeCheckoutPending(w)
		return
	}
	WriteJSON(w, http.StatusOK, h.service.View(sess.Cart), h.log)
}

// RemoveItem handles DELETE /api/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	if _, err := h.service.RemoveItem(r.Context(), sess, chi.URLParam(r, "itemId")); err != nil {
		h.writeCheckoutPending(w)
		return
	}
	WriteJSON(w, http.StatusOK, h.service.View(sess.Cart), h.log)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	if _, err := h.service.Clear(r.Context(), sess); err != nil {
		h.writeCheckoutPending(w)
		return
	}
	WriteJSON(w, http.StatusOK, h.service.View(sess.Cart), h.log)
}

func (h *CartHandler) writeCheckoutPending(w http.ResponseWriter) {
	WriteError(w, http.StatusConflict, "Cart cannot change while an order is being placed", h.log)
}
