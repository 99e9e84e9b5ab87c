package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/fjod/cart-store/internal/inventory"
	"github.com/fjod/cart-store/internal/storage"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/fjod/cart-store/internal/service"

type Options struct {
	// Key the snapshot is stored under. Defaults to DefaultSnapshotKey.
	Key string
	// StrictStock also rejects quantities the inventory cannot cover.
	StrictStock bool
	Logger      logrus.FieldLogger
}

// UpdateAmount sets the quantity of a line to Amount exactly.
type UpdateAmount struct {
	ProductID int64
	Amount    int
}

// CartStore owns the shopper's cart. Every mutation validates against the
// inventory, writes the full snapshot and only then becomes visible.
// Mutations are serialized; the lock is held across inventory lookups.
type CartStore struct {
	mu   sync.Mutex
	cart domain.Cart

	inventory inventory.Inventory
	kv        storage.KV
	key       string
	strict    bool
	log       logrus.FieldLogger
	tracer    trace.Tracer
}

// NewCartStore hydrates the cart from the snapshot in kv. A missing or
// unparseable snapshot yields an empty cart; a failing backend is an error.
func NewCartStore(ctx context.Context, inv inventory.Inventory, kv storage.KV, opts Options) (*CartStore, error) {
	s := &CartStore{
		cart:      domain.Cart{},
		inventory: inv,
		kv:        kv,
		key:       opts.Key,
		strict:    opts.StrictStock,
		log:       opts.Logger,
		tracer:    otel.Tracer(tracerName),
	}
	if s.key == "" {
		s.key = DefaultSnapshotKey
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	data, err := kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	cart, err := DecodeSnapshot(data)
	if err != nil {
		s.log.WithError(err).WithField("key", s.key).Warn("discarding unreadable cart snapshot")
		return s, nil
	}
	s.cart = cart
	return s, nil
}

// Cart returns a copy of the current lines in insertion order.
func (s *CartStore) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddProduct appends a line with quantity 1, or increments the existing line.
func (s *CartStore) AddProduct(ctx context.Context, productID int64) (err error) {
	ctx, span := s.startSpan(ctx, "CartStore.AddProduct", productID)
	defer func() { s.finish(span, OpAdd, productID, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.inventory.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: stock %d: %w", ErrLookupFailure, productID, err)
	}
	if !stock.Sellable() {
		return fmt.Errorf("product %d: %w", productID, ErrOutOfStock)
	}

	next := s.cart.Clone()
	if i := next.Index(productID); i >= 0 {
		if s.strict && !stock.Covers(next[i].Amount+1) {
			return fmt.Errorf("product %d: %w", productID, ErrOutOfStock)
		}
		next[i].Amount++
	} else {
		product, err := s.inventory.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("%w: product %d: %w", ErrLookupFailure, productID, err)
		}
		product.ID = productID
		next = append(next, domain.NewCartLine(product))
	}

	return s.commit(ctx, next)
}

// RemoveProduct drops the line for productID.
func (s *CartStore) RemoveProduct(ctx context.Context, productID int64) (err error) {
	ctx, span := s.startSpan(ctx, "CartStore.RemoveProduct", productID)
	defer func() { s.finish(span, OpRemove, productID, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.Index(productID)
	if i < 0 {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	next := make(domain.Cart, 0, len(s.cart)-1)
	next = append(next, s.cart[:i]...)
	next = append(next, s.cart[i+1:]...)

	return s.commit(ctx, next)
}

// UpdateProductAmount sets the quantity of the line for req.ProductID to
// req.Amount. An id with no line still passes the stock check and rewrites
// the cart unchanged.
func (s *CartStore) UpdateProductAmount(ctx context.Context, req UpdateAmount) (err error) {
	ctx, span := s.startSpan(ctx, "CartStore.UpdateProductAmount", req.ProductID)
	span.SetAttributes(attribute.Int("cart.amount", req.Amount))
	defer func() { s.finish(span, OpUpdateAmount, req.ProductID, err) }()

	if req.Amount < 1 {
		return fmt.Errorf("product %d amount %d: %w", req.ProductID, req.Amount, ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkStock(ctx, req.ProductID, req.Amount, true); err != nil {
		return err
	}

	next := s.cart.Clone()
	if i := next.Index(req.ProductID); i >= 0 {
		next[i].Amount = req.Amount
	}

	return s.commit(ctx, next)
}

// StepProductAmount moves the quantity of an existing line by delta. The
// read, the stock check and the write happen under one lock, so concurrent
// steps on the same line all apply. A step that would take the line below 1
// is a no-op.
func (s *CartStore) StepProductAmount(ctx context.Context, productID int64, delta int) (err error) {
	ctx, span := s.startSpan(ctx, "CartStore.StepProductAmount", productID)
	span.SetAttributes(attribute.Int("cart.delta", delta))
	defer func() { s.finish(span, OpUpdateAmount, productID, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.Index(productID)
	if i < 0 {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	target := s.cart[i].Amount + delta
	if delta == 0 || target < 1 {
		return nil
	}

	if err := s.checkStock(ctx, productID, target, delta > 0); err != nil {
		return err
	}

	next := s.cart.Clone()
	next[i].Amount = target

	return s.commit(ctx, next)
}

// checkStock applies the reserve floor and, in strict mode, requires stock to
// cover amount when growing is set. Caller holds s.mu.
func (s *CartStore) checkStock(ctx context.Context, productID int64, amount int, growing bool) error {
	stock, err := s.inventory.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: stock %d: %w", ErrLookupFailure, productID, err)
	}
	if !stock.Sellable() || (s.strict && growing && !stock.Covers(amount)) {
		return fmt.Errorf("product %d: %w", productID, ErrOutOfStock)
	}
	return nil
}

// commit persists next and swaps it in. Caller holds s.mu.
func (s *CartStore) commit(ctx context.Context, next domain.Cart) error {
	data, err := EncodeSnapshot(next)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailure, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailure, err)
	}
	s.cart = next
	return nil
}

func (s *CartStore) startSpan(ctx context.Context, name string, productID int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int64("product.id", productID)))
}

func (s *CartStore) finish(span trace.Span, op Op, productID int64, err error) {
	defer span.End()
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	entry := s.log.WithFields(logrus.Fields{
		"op":         op,
		"product_id": productID,
	}).WithError(err)
	if errors.Is(err, ErrLookupFailure) || errors.Is(err, ErrPersistFailure) {
		entry.Error("cart operation failed")
		return
	}
	entry.Info("cart operation rejected")
}
