package service

import (
	"errors"
)

var (
	// ErrOutOfStock is returned when the inventory holds no sellable units
	ErrOutOfStock = errors.New("requested quantity is out of stock")
	// ErrInvalidAmount is returned when a requested quantity is below 1
	ErrInvalidAmount = errors.New("amount must be at least 1")
	// ErrNotFound is returned when the product has no line in the cart
	ErrNotFound = errors.New("product not found in cart")
	// ErrLookupFailure wraps any error reported by the inventory
	ErrLookupFailure = errors.New("inventory lookup failed")
	// ErrPersistFailure wraps any error writing the snapshot
	ErrPersistFailure = errors.New("cart snapshot write failed")
	// ErrInvalidSnapshot is returned when a stored snapshot cannot be decoded
	ErrInvalidSnapshot = errors.New("invalid cart snapshot")
)
