package inventory

import (
	"context"
	"errors"

	"github.com/fjod/cart-store/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Inventory is the read-only stock and catalog lookup the cart validates against.
type Inventory interface {
	// GetStock returns the available amount for a product
	GetStock(ctx context.Context, productID int64) (domain.Stock, error)

	// GetProduct returns catalog metadata for a product
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
}
