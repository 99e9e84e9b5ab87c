package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/cart-store/internal/service"
	"github.com/fjod/cart-store/internal/view"
	"github.com/go-chi/chi/v5"
)

// CartHandler serves the cart as JSON under /api/v1/cart.
type CartHandler struct {
	ctrl    *view.Controller
	timeout time.Duration
}

func NewCartHandler(ctrl *view.Controller, timeout time.Duration) *CartHandler {
	return &CartHandler{
		ctrl:    ctrl,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateAmountRequestDTO struct {
	Amount int `json:"amount"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ctrl.Page())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	if err := h.ctrl.Add(ctx, req.ProductID); err != nil {
		h.fail(w, r, service.OpAdd, err)
		return
	}

	respondJSON(w, http.StatusCreated, h.ctrl.Page())
}

func (h *CartHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateAmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.ctrl.SetAmount(ctx, productID, req.Amount); err != nil {
		h.fail(w, r, service.OpUpdateAmount, err)
		return
	}

	respondJSON(w, http.StatusOK, h.ctrl.Page())
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.ctrl.Increment)
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.ctrl.Decrement)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := h.ctrl.Remove(ctx, productID); err != nil {
		h.fail(w, r, service.OpRemove, err)
		return
	}

	respondJSON(w, http.StatusOK, h.ctrl.Page())
}

func (h *CartHandler) step(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := fn(ctx, productID); err != nil {
		h.fail(w, r, service.OpUpdateAmount, err)
		return
	}

	respondJSON(w, http.StatusOK, h.ctrl.Page())
}

func (h *CartHandler) fail(w http.ResponseWriter, r *http.Request, op service.Op, err error) {
	status, code := statusFor(err)
	respondError(w, r, status, code, h.ctrl.Message(op, err))
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
