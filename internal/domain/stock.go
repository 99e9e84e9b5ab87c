package domain

// ReserveUnits is the number of units the storefront never sells.
// A product whose stock is at or below it is treated as out of stock.
const ReserveUnits = 1

// Stock is the available amount reported by the inventory for a product.
type Stock struct {
	ProductID int64 `json:"id"`
	Amount    int   `json:"amount"`
}

// Sellable reports whether the product can be added or have its quantity changed.
func (s Stock) Sellable() bool {
	return s.Amount > ReserveUnits
}

// Covers reports whether the stock holds at least n units.
func (s Stock) Covers(n int) bool {
	return s.Amount >= n
}
