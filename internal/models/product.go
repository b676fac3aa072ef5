package models

import "github.com/shopspring/decimal"

// MenuItem is a product a restaurant offers. It is read-only reference data
// owned by the catalog; carts hold copies of it.
type MenuItem struct {
	ID              string          `json:"id"`
	RestaurantID    string          `json:"restaurantId"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image"`
	Category        string          `json:"category"`
	IsVegetarian    bool            `json:"isVegetarian"`
	IsAvailable     bool            `json:"isAvailable"`
	PreparationTime int             `json:"preparationTime"` // minutes
}
