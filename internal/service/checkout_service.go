package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-express/internal/cart"
	"github.com/Lixing-Zhang/foodie-express/internal/models"
	"github.com/Lixing-Zhang/foodie-express/internal/session"
)

const (
	defaultPaymentMethod = "card"
	deliveryLeadTime     = 30 * time.Minute
)

// OrderSubmitter sends a placed order downstream
type OrderSubmitter interface {
	Submit(ctx context.Context, order *models.Order) error
}

// CheckoutService validates a session's cart and submits it as an order
type CheckoutService struct {
	submitter OrderSubmitter
	pricing   Pricing
	log       *slog.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(submitter OrderSubmitter, pricing Pricing, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		submitter: submitter,
		pricing:   pricing,
		log:       log,
		now:       time.Now,
	}
}

// PlaceOrder submits the session's cart. The ordered lines are taken out of
// the cart only after the submission succeeds; validation and submission
// failures leave it as is.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sess *session.Session, req models.OrderRequest) (*models.Order, error) {
	user := sess.User()
	if user == nil {
		return nil, ErrNotSignedIn
	}
	if sess.Cart.TotalItemCount() == 0 {
		return nil, ErrEmptyCart
	}
	if !sess.BeginCheckout() {
		return nil, ErrCheckoutInProgress
	}
	defer sess.EndCheckout()

	items := sess.Cart.Items()
	order := s.buildOrder(user, items, req)

	if err := s.submitter.Submit(ctx, order); err != nil {
		s.log.Warn("order submission failed",
			"session_id", sess.ID,
			"order_id", order.ID,
			"error", err,
		)
		return nil, &TransientError{Err: err}
	}

	order.Status = models.OrderConfirmed
	order.PaymentStatus = models.PaymentCompleted
	// the order is placed even if the client went away during submission
	sess.Cart.Deduct(context.WithoutCancel(ctx), items)

	s.log.Info("order placed",
		"session_id", sess.ID,
		"order_id", order.ID,
		"user_id", user.ID,
		"total", order.Quote.Total.StringFixed(2),
	)
	return order, nil
}

func (s *CheckoutService) buildOrder(user *models.User, items []cart.LineItem, req models.OrderRequest) *models.Order {
	now := s.now().UTC()

	lines := make([]models.OrderLine, 0, len(items))
	restaurantIDs := make([]string, 0, 1)
	seen := map[string]bool{}
	subtotal := decimal.Zero
	maxPrep := 0

	for _, item := range items {
		lines = append(lines, models.OrderLine{
			MenuItemID:          item.Product.ID,
			Name:                item.Product.Name,
			UnitPrice:           item.Product.Price,
			Quantity:            item.Quantity,
			SpecialInstructions: item.Note,
		})
		if rid := item.Product.RestaurantID; rid != "" && !seen[rid] {
			seen[rid] = true
			restaurantIDs = append(restaurantIDs, rid)
		}
		subtotal = subtotal.Add(item.Subtotal())
		maxPrep = max(maxPrep, item.Product.PreparationTime)
	}

	address := req.DeliveryAddress
	if address == "" {
		address = user.Address
	}
	payment := req.PaymentMethod
	if payment == "" {
		payment = defaultPaymentMethod
	}

	return &models.Order{
		ID:                    uuid.New().String(),
		UserID:                user.ID,
		RestaurantIDs:         restaurantIDs,
		Items:                 lines,
		Quote:                 s.pricing.Quote(subtotal),
		DeliveryAddress:       address,
		Status:                models.OrderPending,
		OrderTime:             now,
		EstimatedDeliveryTime: now.Add(time.Duration(maxPrep)*time.Minute + deliveryLeadTime),
		PaymentMethod:         payment,
		PaymentStatus:         models.PaymentPending,
	}
}
