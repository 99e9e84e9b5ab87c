package inventory

import (
	"context"
	"testing"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInventory_SetProduct_And_Get(t *testing.T) {
	inv := NewMemoryInventory()
	inv.SetProduct(domain.Product{ID: 1, Title: "Tênis", Price: 139.9}, 3)

	stock, err := inv.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Stock{ProductID: 1, Amount: 3}, stock)

	product, err := inv.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Tênis", product.Title)
}

func TestMemoryInventory_SetStock(t *testing.T) {
	inv := NewMemoryInventory()
	inv.SetProduct(domain.Product{ID: 1}, 3)
	inv.SetStock(1, 0)

	stock, err := inv.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.Amount)
}

func TestMemoryInventory_Unknown(t *testing.T) {
	inv := NewMemoryInventory()

	_, err := inv.GetStock(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = inv.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
