package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-express/internal/models"
	"github.com/Lixing-Zhang/foodie-express/internal/repository"
)

func intPtr(n int) *int { return &n }

// restrictedCatalog has one orderable item, one sold-out item, and one item
// from a closed restaurant
func restrictedCatalog() repository.CatalogRepository {
	return repository.NewInMemoryCatalogRepositoryWith(
		[]models.Restaurant{
			{ID: "r1", Name: "Open Kitchen", IsOpen: true},
			{ID: "r2", Name: "Closed Kitchen", IsOpen: false},
		},
		[]models.MenuItem{
			{ID: "a", RestaurantID: "r1", Name: "Soup", Price: decimal.NewFromInt(5), IsAvailable: true},
			{ID: "b", RestaurantID: "r1", Name: "Stew", Price: decimal.NewFromInt(7), IsAvailable: false},
			{ID: "c", RestaurantID: "r2", Name: "Roll", Price: decimal.NewFromInt(9), IsAvailable: true},
		},
	)
}

func TestCartHandler_AddItem(t *testing.T) {
	tests := []struct {
		name         string
		requestBody  interface{}
		wantStatus   int
		wantError    string
		wantQuantity int
	}{
		{
			name:         "quantity defaults to one",
			requestBody:  AddItemRequest{MenuItemID: "a"},
			wantStatus:   http.StatusOK,
			wantQuantity: 1,
		},
		{
			name:         "explicit quantity",
			requestBody:  AddItemRequest{MenuItemID: "a", Quantity: intPtr(3)},
			wantStatus:   http.StatusOK,
			wantQuantity: 3,
		},
		{
			name:        "zero quantity",
			requestBody: AddItemRequest{MenuItemID: "a", Quantity: intPtr(0)},
			wantStatus:  http.StatusBadRequest,
			wantError:   "Quantity must be positive",
		},
		{
			name:        "missing menu item id",
			requestBody: AddItemRequest{Quantity: intPtr(1)},
			wantStatus:  http.StatusBadRequest,
			wantError:   "menuItemId is required",
		},
		{
			name:        "unknown menu item",
			requestBody: AddItemRequest{MenuItemID: "zzz"},
			wantStatus:  http.StatusNotFound,
			wantError:   "Menu item not found",
		},
		{
			name:        "unavailable menu item",
			requestBody: AddItemRequest{MenuItemID: "b"},
			wantStatus:  http.StatusConflict,
			wantError:   "Menu item is not available",
		},
		{
			name:        "closed restaurant",
			requestBody: AddItemRequest{MenuItemID: "c"},
			wantStatus:  http.StatusConflict,
			wantError:   "Restaurant is closed",
		},
		{
			name:        "invalid JSON",
			requestBody: "invalid json",
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, restrictedCatalog())
			id := srv.newSession(t)

			w := srv.do(t, http.MethodPost, "/api/cart/items", id, tt.requestBody)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if msg := decodeError(t, w); msg != tt.wantError {
					t.Errorf("error = %q, want %q", msg, tt.wantError)
				}
				return
			}

			view := decodeCart(t, w)
			if len(view.Items) != 1 {
				t.Fatalf("expected 1 line, got %d", len(view.Items))
			}
			if view.Items[0].Quantity != tt.wantQuantity {
				t.Errorf("quantity = %d, want %d", view.Items[0].Quantity, tt.wantQuantity)
			}
			if view.Totals.ItemCount != tt.wantQuantity {
				t.Errorf("total items = %d, want %d", view.Totals.ItemCount, tt.wantQuantity)
			}
		})
	}
}

func TestCartHandler_AddSameItemMerges(t *testing.T) {
	srv := newTestServer(t, nil)
	id := srv.newSession(t)

	srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "1", Quantity: intPtr(1)})
	w := srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{
		MenuItemID:          "1",
		Quantity:            intPtr(1),
		SpecialInstructions: "extra basil",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	view := decodeCart(t, w)
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", view.Items[0].Quantity)
	}
	if view.Items[0].Note != "extra basil" {
		t.Errorf("note = %q, want %q", view.Items[0].Note, "extra basil")
	}
	if !view.Totals.Amount.Equal(decimal.RequireFromString("29.98")) {
		t.Errorf("total = %s, want 29.98", view.Totals.Amount)
	}
	// 29.98 is above the free delivery threshold
	if !view.Quote.DeliveryFee.IsZero() {
		t.Errorf("delivery fee = %s, want 0", view.Quote.DeliveryFee)
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	tests := []struct {
		name        string
		itemID      string
		requestBody interface{}
		wantStatus  int
		wantLines   int
		wantItems   int
	}{
		{"increase quantity", "1", UpdateQuantityRequest{Quantity: intPtr(4)}, http.StatusOK, 1, 4},
		{"zero removes the line", "1", UpdateQuantityRequest{Quantity: intPtr(0)}, http.StatusOK, 0, 0},
		{"negative removes the line", "1", UpdateQuantityRequest{Quantity: intPtr(-2)}, http.StatusOK, 0, 0},
		{"item not in cart is ignored", "2", UpdateQuantityRequest{Quantity: intPtr(5)}, http.StatusOK, 1, 2},
		{"missing quantity", "1", map[string]string{}, http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			id := srv.newSession(t)
			srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "1", Quantity: intPtr(2)})

			w := srv.do(t, http.MethodPut, "/api/cart/items/"+tt.itemID, id, tt.requestBody)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			view := decodeCart(t, w)
			if len(view.Items) != tt.wantLines {
				t.Errorf("lines = %d, want %d", len(view.Items), tt.wantLines)
			}
			if view.Totals.ItemCount != tt.wantItems {
				t.Errorf("total items = %d, want %d", view.Totals.ItemCount, tt.wantItems)
			}
		})
	}
}

func TestCartHandler_RemoveAndClear(t *testing.T) {
	srv := newTestServer(t, nil)
	id := srv.newSession(t)

	srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "1"})
	srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "5", Quantity: intPtr(2)})

	w := srv.do(t, http.MethodDelete, "/api/cart/items/1", id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove: status = %d, want %d", w.Code, http.StatusOK)
	}
	view := decodeCart(t, w)
	if len(view.Items) != 1 || view.Items[0].Product.ID != "5" {
		t.Fatalf("expected only item 5 to remain, got %+v", view.Items)
	}

	// removing an absent item is not an error
	w = srv.do(t, http.MethodDelete, "/api/cart/items/1", id, nil)
	if w.Code != http.StatusOK {
		t.Errorf("remove absent: status = %d, want %d", w.Code, http.StatusOK)
	}

	w = srv.do(t, http.MethodDelete, "/api/cart", id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: status = %d, want %d", w.Code, http.StatusOK)
	}
	view = decodeCart(t, w)
	if len(view.Items) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(view.Items))
	}
	if !view.Totals.Amount.IsZero() || !view.Quote.Total.IsZero() {
		t.Errorf("expected zero totals, got %s / %s", view.Totals.Amount, view.Quote.Total)
	}
}

func TestCartHandler_GetCartQuotesDeliveryFee(t *testing.T) {
	srv := newTestServer(t, nil)
	id := srv.newSession(t)

	w := srv.do(t, http.MethodGet, "/api/cart", id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	view := decodeCart(t, w)
	if view.Items == nil || len(view.Items) != 0 {
		t.Errorf("expected an empty list of lines, got %v", view.Items)
	}

	srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "6"})

	view = decodeCart(t, srv.do(t, http.MethodGet, "/api/cart", id, nil))
	if !view.Quote.DeliveryFee.Equal(decimal.RequireFromString("3.99")) {
		t.Errorf("delivery fee = %s, want 3.99", view.Quote.DeliveryFee)
	}
	if !view.Quote.Total.Equal(decimal.RequireFromString("14.98")) {
		t.Errorf("total = %s, want 14.98", view.Quote.Total)
	}
}

func TestCartHandler_LockedWhileCheckoutPending(t *testing.T) {
	srv := newTestServer(t, nil)
	id := srv.newSession(t)
	srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "1", Quantity: intPtr(2)})

	sess, err := srv.sessions.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	sess.BeginCheckout()

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"add item", http.MethodPost, "/api/cart/items", AddItemRequest{MenuItemID: "2"}},
		{"update quantity", http.MethodPut, "/api/cart/items/1", UpdateQuantityRequest{Quantity: intPtr(5)}},
		{"remove item", http.MethodDelete, "/api/cart/items/1", nil},
		{"clear cart", http.MethodDelete, "/api/cart", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, tt.method, tt.path, id, tt.body)
			if w.Code != http.StatusConflict {
				t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
			}
		})
	}

	view := decodeCart(t, srv.do(t, http.MethodGet, "/api/cart", id, nil))
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Errorf("cart changed while checkout pending: %+v", view.Items)
	}
}
