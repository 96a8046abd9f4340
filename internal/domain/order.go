package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency of every catalog price.
const Currency = "USD"

// UserInfo is the checkout form as entered by the shopper.
type UserInfo struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

// Order is the record produced by a successful checkout. It captures the cart
// as it was at submission time.
type Order struct {
	ID         uuid.UUID       `json:"id"`
	Customer   UserInfo        `json:"customer"`
	Lines      []CartLine      `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
	PlacedAt   time.Time       `json:"placed_at"`
}
