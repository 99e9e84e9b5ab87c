package service

import (
	"encoding/json"
	"fmt"

	"github.com/fjod/cart-store/internal/domain"
)

// DefaultSnapshotKey is the namespaced key the cart snapshot is stored under.
const DefaultSnapshotKey = "@RocketShoes:cart"

func EncodeSnapshot(cart domain.Cart) ([]byte, error) {
	if cart == nil {
		cart = domain.Cart{}
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("marshal cart failed: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored cart. Lines with amount below 1 or a
// repeated id make the whole snapshot invalid.
func DecodeSnapshot(data []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	seen := make(map[int64]struct{}, len(cart))
	for _, line := range cart {
		if line.Amount < 1 {
			return nil, fmt.Errorf("%w: product %d has amount %d", ErrInvalidSnapshot, line.ID, line.Amount)
		}
		if _, dup := seen[line.ID]; dup {
			return nil, fmt.Errorf("%w: product %d appears twice", ErrInvalidSnapshot, line.ID)
		}
		seen[line.ID] = struct{}{}
	}

	if cart == nil {
		cart = domain.Cart{}
	}
	return cart, nil
}
