package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/fjod/cart-store/internal/inventory"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// Client reads the inventory from a remote InventoryServer.
type Client struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// Dial opens a plaintext connection speaking the json codec.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to inventory service: %w", err)
	}
	return conn, nil
}

// NewClient wraps conn. A zero timeout leaves deadlines to the caller.
func NewClient(conn grpc.ClientConnInterface, timeout time.Duration) *Client {
	return &Client{conn: conn, timeout: timeout}
}

func (c *Client) GetStock(ctx context.Context, productID int64) (domain.Stock, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var out domain.Stock
	if err := c.conn.Invoke(ctx, getStockMethod, &ProductRequest{ProductID: productID}, &out,
		grpc.CallContentSubtype(CodecName)); err != nil {
		return domain.Stock{}, fromStatus(err, "stock", productID)
	}
	out.ProductID = productID
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var out domain.Product
	if err := c.conn.Invoke(ctx, getProductMethod, &ProductRequest{ProductID: productID}, &out,
		grpc.CallContentSubtype(CodecName)); err != nil {
		return domain.Product{}, fromStatus(err, "product", productID)
	}
	return out, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func fromStatus(err error, what string, productID int64) error {
	if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
		return fmt.Errorf("%s %d: %w", what, productID, inventory.ErrProductNotFound)
	}
	return fmt.Errorf("%s %d: %w", what, productID, err)
}
