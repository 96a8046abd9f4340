package domain

import "github.com/shopspring/decimal"

// CartLine holds one product in the cart. Title, price and image are copied
// from the Product when it is first added and never refreshed.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns quantity x unit price in source currency.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
