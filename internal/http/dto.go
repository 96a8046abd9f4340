package http

import (
	"time"

	"github.com/fjod/kshop/internal/cart"
	"github.com/fjod/kshop/internal/display"
	"github.com/fjod/kshop/internal/domain"
	"github.com/fjod/kshop/internal/view"
	"github.com/shopspring/decimal"
)

const (
	emptyCartMessage = "Your cart is empty. Please add products to your cart before proceeding to checkout."
	thankYouMessage  = "Thank You for Your Order! Your order has been placed successfully."
)

type ProductResponse struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	DisplayPrice string          `json:"display_price"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type DetailResponse struct {
	Status  string           `json:"status"`
	Product *ProductResponse `json:"product,omitempty"`
}

type CartLineResponse struct {
	ProductID        int64           `json:"product_id"`
	Title            string          `json:"title"`
	Image            string          `json:"image"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	DisplayUnitPrice string          `json:"display_unit_price"`
	DisplaySubtotal  string          `json:"display_subtotal"`
	CanDecrease      bool            `json:"can_decrease"`
}

type CartResponse struct {
	Lines        []CartLineResponse `json:"lines"`
	TotalItems   int                `json:"total_items"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	DisplayTotal string             `json:"display_total"`
	State        string             `json:"state"`
}

type CheckoutFormResponse struct {
	Available bool         `json:"available"`
	Message   string       `json:"message,omitempty"`
	Cart      CartResponse `json:"cart"`
}

type OrderConfirmationResponse struct {
	OrderID      string    `json:"order_id"`
	Message      string    `json:"message"`
	TotalItems   int       `json:"total_items"`
	DisplayTotal string    `json:"display_total"`
	PlacedAt     time.Time `json:"placed_at"`
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		DisplayPrice: display.Format(p.Price),
		Description:  p.Description,
		Image:        p.Image,
		Category:     p.Category,
	}
}

func toDetailResponse(s view.Snapshot) DetailResponse {
	resp := DetailResponse{Status: s.Status.String()}
	if s.Product != nil {
		p := toProductResponse(*s.Product)
		resp.Product = &p
	}
	return resp
}

// toCartResponse must run under the session lock.
func toCartResponse(c *cart.Cart) CartResponse {
	snapshot := c.Snapshot()
	lines := make([]CartLineResponse, 0, len(snapshot))
	for _, line := range snapshot {
		lines = append(lines, CartLineResponse{
			ProductID:        line.ProductID,
			Title:            line.Title,
			Image:            line.Image,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			DisplayUnitPrice: display.Format(line.UnitPrice),
			DisplaySubtotal:  display.Format(line.Subtotal()),
			CanDecrease:      line.Quantity > 1,
		})
	}

	total := c.TotalPrice()
	return CartResponse{
		Lines:        lines,
		TotalItems:   c.TotalItems(),
		TotalPrice:   total,
		DisplayTotal: display.Format(total),
		State:        c.State().String(),
	}
}
