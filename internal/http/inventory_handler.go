package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/fjod/cart-store/internal/inventory"
	"github.com/go-chi/chi/v5"
)

// ProductLister is implemented by inventories that can enumerate the catalog.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// InventoryHandler serves stock and product reads in the shape
// inventory.HTTPClient consumes. The inventory server mounts it over the
// catalog; the cart store mounts it over the same client the cart uses.
type InventoryHandler struct {
	inv     inventory.Inventory
	timeout time.Duration
}

func NewInventoryHandler(inv inventory.Inventory, timeout time.Duration) *InventoryHandler {
	return &InventoryHandler{inv: inv, timeout: timeout}
}

func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	stock, err := h.inv.GetStock(ctx, id)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stock)
}

func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	product, err := h.inv.GetProduct(ctx, id)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	lister, ok := h.inv.(ProductLister)
	if !ok {
		respondError(w, r, http.StatusNotImplemented, "not_supported", "product listing is not available")
		return
	}

	products, err := lister.ListProducts(ctx)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func respondCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, inventory.ErrProductNotFound) {
		respondError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondError(w, r, http.StatusInternalServerError, "internal_error", "failed to read inventory")
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
