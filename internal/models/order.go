package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out-for-delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// OrderRequest carries the checkout details supplied by the customer
type OrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	PaymentMethod   string `json:"paymentMethod,omitempty"`
}

// OrderLine is one ordered menu item
type OrderLine struct {
	MenuItemID          string          `json:"menuItemId"`
	Name                string          `json:"name"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

// Quote is the price breakdown shown before checkout
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// Order represents a placed order
type Order struct {
	ID                    string        `json:"id"`
	UserID                string        `json:"userId"`
	RestaurantIDs         []string      `json:"restaurantIds"`
	Items                 []OrderLine   `json:"items"`
	Quote                 Quote         `json:"quote"`
	DeliveryAddress       string        `json:"deliveryAddress"`
	Status                OrderStatus   `json:"status"`
	OrderTime             time.Time     `json:"orderTime"`
	EstimatedDeliveryTime time.Time     `json:"estimatedDeliveryTime"`
	PaymentMethod         string        `json:"paymentMethod"`
	PaymentStatus         PaymentStatus `json:"paymentStatus"`
}
