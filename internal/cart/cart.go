// Package cart implements the shopping cart engine: a keyed collection of
// line items with guarded mutations and totals derived on demand.
//
// A Cart is not safe for concurrent use. Callers that share one across
// goroutines serialize access themselves (see internal/session).
package cart

import (
	"github.com/fjod/kshop/internal/domain"
	"github.com/shopspring/decimal"
)

// State tells whether the cart holds any line.
type State int

const (
	Empty State = iota
	NonEmpty
)

func (s State) String() string {
	switch s {
	case Empty:
		return "EMPTY"
	case NonEmpty:
		return "NON_EMPTY"
	default:
		return "UNKNOWN"
	}
}

// Cart maps product id to line and remembers the order in which products were
// first added. Every line has quantity >= 1 and there is at most one line per
// product.
type Cart struct {
	lines map[int64]*domain.CartLine
	order []int64
}

func New() *Cart {
	return &Cart{
		lines: make(map[int64]*domain.CartLine),
	}
}

// AddItem adds one unit of p. The first add copies title, price and image
// into a new line; later adds only bump the quantity.
func (c *Cart) AddItem(p domain.Product) {
	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
		return
	}

	c.lines[p.ID] = &domain.CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		UnitPrice: p.Price,
		Image:     p.Image,
		Quantity:  1,
	}
	c.order = append(c.order, p.ID)
}

// RemoveItem deletes the line for productID. Absent ids are ignored.
func (c *Cart) RemoveItem(productID int64) {
	if _, ok := c.lines[productID]; !ok {
		return
	}

	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) IncreaseQuantity(productID int64) {
	if line, ok := c.lines[productID]; ok {
		line.Quantity++
	}
}

// DecreaseQuantity takes one unit off the line but never below 1; a line at
// quantity 1 is left as is. Only RemoveItem deletes lines.
func (c *Cart) DecreaseQuantity(productID int64) {
	line, ok := c.lines[productID]
	if !ok || line.Quantity <= 1 {
		return
	}
	line.Quantity--
}

func (c *Cart) Clear() {
	c.lines = make(map[int64]*domain.CartLine)
	c.order = nil
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of quantity x unit price over all lines, in source
// currency. Display conversion is not applied here.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Snapshot returns copies of the lines in first-add order.
func (c *Cart) Snapshot() []domain.CartLine {
	snapshot := make([]domain.CartLine, 0, len(c.order))
	for _, id := range c.order {
		snapshot = append(snapshot, *c.lines[id])
	}
	return snapshot
}

// Line returns a copy of the line for productID.
func (c *Cart) Line(productID int64) (domain.CartLine, bool) {
	line, ok := c.lines[productID]
	if !ok {
		return domain.CartLine{}, false
	}
	return *line, true
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) State() State {
	if c.IsEmpty() {
		return Empty
	}
	return NonEmpty
}
