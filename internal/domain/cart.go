package domain

import "github.com/shopspring/decimal"

// Product is the catalog metadata for a single product.
type Product struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CartLine is one product entry in the cart with its quantity.
type CartLine struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

// NewCartLine creates a line for p with quantity 1.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		Image:  p.Image,
		Amount: 1,
	}
}

// Subtotal returns Amount * Price.
func (l CartLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Amount)))
}

// Cart is the ordered sequence of lines, in the order they were added.
// No two lines share an ID.
type Cart []CartLine

// Index returns the position of the line with the given id, or -1.
func (c Cart) Index(id int64) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the line with the given id.
func (c Cart) Find(id int64) (CartLine, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return CartLine{}, false
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Total sums the subtotals of every line.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c {
		total = total.Add(l.Subtotal())
	}
	return total
}
