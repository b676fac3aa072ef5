package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/foodie-express/internal/repository"
	"github.com/Lixing-Zhang/foodie-express/internal/service"
)

// RestaurantHandler handles restaurant and menu HTTP requests
type RestaurantHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(service *service.CatalogService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		logger:  logger,
	}
}

// ListRestaurants handles GET /api/restaurants?q=
// Returns every restaurant, or the ones matching the search query
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.service.SearchRestaurants(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("failed to list restaurants", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, restaurants, h.logger)
}

// GetRestaurant handles GET /api/restaurants/{restaurantId}
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantId")

	restaurant, err := h.service.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		h.writeCatalogError(w, err, "restaurantId", restaurantID)
		return
	}

	WriteJSON(w, http.StatusOK, restaurant, h.logger)
}

// GetMenu handles GET /api/restaurants/{restaurantId}/menu?category=
// - 200: menu of an open restaurant
// - 404: restaurant not found
// - 409: restaurant is closed
func (h *RestaurantHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantId")

	menu, err := h.service.Menu(r.Context(), restaurantID, r.URL.Query().Get("category"))
	if err != nil {
		h.writeCatalogError(w, err, "restaurantId", restaurantID)
		return
	}

	WriteJSON(w, http.StatusOK, menu, h.logger)
}

// GetMenuItem handles GET /api/menu/{itemId}
func (h *RestaurantHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.service.GetMenuItem(r.Context(), itemID)
	if err != nil {
		h.writeCatalogError(w, err, "itemId", itemID)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

func (h *RestaurantHandler) writeCatalogError(w http.ResponseWriter, err error, idKey, id string) {
	switch {
	case errors.Is(err, repository.ErrRestaurantNotFound):
		h.logger.Info("restaurant not found", idKey, id)
		WriteError(w, http.StatusNotFound, "Restaurant not found", h.logger)
	case errors.Is(err, repository.ErrMenuItemNotFound):
		h.logger.Info("menu item not found", idKey, id)
		WriteError(w, http.StatusNotFound, "Menu item not found", h.logger)
	case errors.Is(err, service.ErrRestaurantClosed):
		WriteError(w, http.StatusConflict, "Restaurant is closed", h.logger)
	default:
		h.logger.Error("catalog lookup failed", idKey, id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
