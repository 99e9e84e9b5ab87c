package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fjod/cart-store/internal/domain"
)

// MemoryInventory implements Inventory with in-memory maps
type MemoryInventory struct {
	mu       sync.RWMutex
	stocks   map[int64]int            // productID -> available amount
	products map[int64]domain.Product // productID -> metadata
}

// NewMemoryInventory creates an empty in-memory inventory
func NewMemoryInventory() *MemoryInventory {
	return &MemoryInventory{
		stocks:   make(map[int64]int),
		products: make(map[int64]domain.Product),
	}
}

// GetStock returns the stock of a known product
func (m *MemoryInventory) GetStock(_ context.Context, productID int64) (domain.Stock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	amount, exists := m.stocks[productID]
	if !exists {
		return domain.Stock{}, fmt.Errorf("stock %d: %w", productID, ErrProductNotFound)
	}
	return domain.Stock{ProductID: productID, Amount: amount}, nil
}

// GetProduct returns the metadata of a known product
func (m *MemoryInventory) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.products[productID]
	if !exists {
		return domain.Product{}, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}
	return p, nil
}

// SetProduct registers a product with the given stock
func (m *MemoryInventory) SetProduct(p domain.Product, amount int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[p.ID] = p
	m.stocks[p.ID] = amount
}

// SetStock sets the stock level for a product
func (m *MemoryInventory) SetStock(productID int64, amount int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stocks[productID] = amount
}
