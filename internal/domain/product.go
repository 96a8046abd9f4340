package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as returned by the catalog API. It is read-only once fetched.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}
