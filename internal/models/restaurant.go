package models

import "github.com/shopspring/decimal"

// Restaurant represents a venue listed on the storefront
type Restaurant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Rating       float64         `json:"rating"`
	DeliveryTime string          `json:"deliveryTime"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	MinimumOrder decimal.Decimal `json:"minimumOrder"`
	Cuisine      []string        `json:"cuisine"`
	IsOpen       bool            `json:"isOpen"`
}
