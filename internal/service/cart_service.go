package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-express/internal/cart"
	"github.com/Lixing-Zhang/foodie-express/internal/models"
	"github.com/Lixing-Zhang/foodie-express/internal/repository"
	"github.com/Lixing-Zhang/foodie-express/internal/session"
)

// Pricing holds the delivery fee rule applied on top of the cart subtotal
type Pricing struct {
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

// Quote prices a subtotal. Delivery is free above the threshold and for an
// empty cart.
func (p Pricing) Quote(subtotal decimal.Decimal) models.Quote {
	fee := p.DeliveryFee
	if subtotal.IsZero() || subtotal.GreaterThan(p.FreeDeliveryThreshold) {
		fee = decimal.Zero
	}
	return models.Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
	}
}

// CartView is the cart as presented to the customer
type CartView struct {
	Items  []cart.LineItem `json:"items"`
	Totals cart.Totals     `json:"totals"`
	Quote  models.Quote    `json:"quote"`
}

// CartService resolves menu items against the catalog before they reach a
// ledger
type CartService struct {
	catalog repository.CatalogRepository
	pricing Pricing
}

// NewCartService creates a new cart service
func NewCartService(catalog repository.CatalogRepository, pricing Pricing) *CartService {
	return &CartService{
		catalog: catalog,
		pricing: pricing,
	}
}

// AddItem adds quantity of a catalog item to the session's cart. Unknown
// items, unavailable items, and items of closed restaurants are rejected, as
// is any change while a checkout is in flight.
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, menuItemID string, quantity int, note string) (cart.Totals, error) {
	if quantity < 1 {
		return cart.Totals{}, ErrInvalidQuantity
	}

	item, err := s.catalog.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return cart.Totals{}, err
	}
	if !item.IsAvailable {
		return cart.Totals{}, ErrItemUnavailable
	}

	restaurant, err := s.catalog.GetRestaurant(ctx, item.RestaurantID)
	if err != nil {
		return cart.Totals{}, err
	}
	if !restaurant.IsOpen {
		return cart.Totals{}, ErrRestaurantClosed
	}

	if sess.CheckoutPending() {
		return cart.Totals{}, ErrCheckoutInProgress
	}
	return sess.Cart.Add(ctx, *item, quantity, note), nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, menuItemID string, quantity int) (cart.Totals, error) {
	if sess.CheckoutPending() {
		return cart.Totals{}, ErrCheckoutInProgress
	}
	return sess.Cart.SetQuantity(ctx, menuItemID, quantity), nil
}

// RemoveItem drops the line for menuItemID from the session's cart
func (s *CartService) RemoveItem(ctx context.Context, sess *session.Session, menuItemID string) (cart.Totals, error) {
	if sess.CheckoutPending() {
		return cart.Totals{}, ErrCheckoutInProgress
	}
	return sess.Cart.Remove(ctx, menuItemID), nil
}

// Clear empties the session's cart
func (s *CartService) Clear(ctx context.Context, sess *session.Session) (cart.Totals, error) {
	if sess.CheckoutPending() {
		return cart.Totals{}, ErrCheckoutInProgress
	}
	return sess.Cart.Clear(ctx), nil
}

// View returns the lines, totals, and price quote of the ledger
func (s *CartService) View(ledger *cart.Ledger) CartView {
	items := ledger.Items()
	if items == nil {
		items = []cart.LineItem{}
	}
	totals := ledger.Totals()
	return CartView{
		Items:  items,
		Totals: totals,
		Quote:  s.pricing.Quote(totals.Amount),
	}
}
