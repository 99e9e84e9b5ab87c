package view

import (
	"context"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/fjod/cart-store/internal/notify"
	"github.com/fjod/cart-store/internal/service"
)

// CartStore is the part of the store the view reads from and dispatches to.
type CartStore interface {
	Cart() domain.Cart
	AddProduct(ctx context.Context, productID int64) error
	RemoveProduct(ctx context.Context, productID int64) error
	UpdateProductAmount(ctx context.Context, req service.UpdateAmount) error
	StepProductAmount(ctx context.Context, productID int64, delta int) error
}

// Controller turns shopper intents into store operations. Every failure is
// sent to the notifier once and also returned.
type Controller struct {
	store     CartStore
	notifier  notify.Notifier
	messages  service.Messages
	formatter Formatter
}

func NewController(store CartStore, notifier notify.Notifier, messages service.Messages, formatter Formatter) *Controller {
	return &Controller{
		store:     store,
		notifier:  notifier,
		messages:  messages,
		formatter: formatter,
	}
}

func (c *Controller) Page() Page {
	return Build(c.store.Cart(), c.formatter)
}

// Message returns the text shown for a failed op.
func (c *Controller) Message(op service.Op, err error) string {
	return c.messages.For(op, err)
}

func (c *Controller) Add(ctx context.Context, productID int64) error {
	return c.report(ctx, service.OpAdd, c.store.AddProduct(ctx, productID))
}

func (c *Controller) SetAmount(ctx context.Context, productID int64, amount int) error {
	err := c.store.UpdateProductAmount(ctx, service.UpdateAmount{ProductID: productID, Amount: amount})
	return c.report(ctx, service.OpUpdateAmount, err)
}

func (c *Controller) Increment(ctx context.Context, productID int64) error {
	return c.report(ctx, service.OpUpdateAmount, c.store.StepProductAmount(ctx, productID, 1))
}

// Decrement is a no-op when the line is already at quantity 1.
func (c *Controller) Decrement(ctx context.Context, productID int64) error {
	return c.report(ctx, service.OpUpdateAmount, c.store.StepProductAmount(ctx, productID, -1))
}

func (c *Controller) Remove(ctx context.Context, productID int64) error {
	return c.report(ctx, service.OpRemove, c.store.RemoveProduct(ctx, productID))
}

func (c *Controller) report(ctx context.Context, op service.Op, err error) error {
	if err != nil {
		c.notifier.NotifyError(ctx, c.messages.For(op, err))
	}
	return err
}
