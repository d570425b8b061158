package models

// Outcome signals how a cart command resolved. Commands are total: every
// call returns an Outcome and leaves the cart in a usable state.
type Outcome string

const (
	OutcomeAdded             Outcome = "added"
	OutcomeQuantityIncreased Outcome = "quantity_increased"
	OutcomeQuantityChanged   Outcome = "quantity_changed"
	OutcomeRemoved           Outcome = "removed"
	OutcomeNotInCart         Outcome = "not_in_cart"
	OutcomeStockExceeded     Outcome = "stock_exceeded"
	OutcomeCleared           Outcome = "cleared"
)

// CartLine is one row in the cart: a product's identifying and pricing
// fields plus a quantity. Stock is the snapshot captured when the line was
// first added; it is not re-synced with the catalog afterward.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Discount  int     `json:"discount"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

// EffectivePrice is the line's base price reduced by its discount.
func (l CartLine) EffectivePrice() float64 {
	return l.Price * (1 - float64(l.Discount)/100)
}

// Cart is an ordered sequence of lines, at most one per product id,
// insertion order preserved. Invariant: 1 <= Quantity <= Stock for every
// line. Owned by a single session; commands never interleave.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c *Cart) find(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Add appends a new line with quantity 1, or increments an existing one.
// Incrementing past the captured stock is rejected with OutcomeStockExceeded
// and the cart is left unchanged.
func (c *Cart) Add(p Product) Outcome {
	if line := c.find(p.ID); line != nil {
		if line.Quantity+1 > line.Stock {
			return OutcomeStockExceeded
		}
		line.Quantity++
		return OutcomeQuantityIncreased
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Discount:  p.Discount,
		Image:     p.Image,
		Stock:     p.Stock,
		Quantity:  1,
	})
	return OutcomeAdded
}

// UpdateQuantity adjusts a line's quantity by delta. The quantity never
// drops below 1; pushing it above the captured stock is rejected with
// OutcomeStockExceeded and the line keeps its prior quantity. An unknown
// product id is a no-op, not an error.
func (c *Cart) UpdateQuantity(productID string, delta int) Outcome {
	line := c.find(productID)
	if line == nil {
		return OutcomeNotInCart
	}
	candidate := line.Quantity + delta
	if candidate < 1 {
		candidate = 1
	}
	if candidate > line.Stock {
		return OutcomeStockExceeded
	}
	line.Quantity = candidate
	return OutcomeQuantityChanged
}

// Remove deletes the line for productID if present. Idempotent.
func (c *Cart) Remove(productID string) Outcome {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return OutcomeRemoved
		}
	}
	return OutcomeNotInCart
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() Outcome {
	c.Lines = nil
	return OutcomeCleared
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal is the sum of effective price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.EffectivePrice() * float64(l.Quantity)
	}
	return sum
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total is the subtotal with tax applied.
func (c *Cart) Total(taxRate float64) float64 {
	return c.Subtotal() * (1 + taxRate)
}
