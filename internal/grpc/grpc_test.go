package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/fjod/cart-store/internal/domain"
	invgrpc "github.com/fjod/cart-store/internal/grpc"
	"github.com/fjod/cart-store/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var _ inventory.Inventory = (*invgrpc.Client)(nil)

type brokenInventory struct{}

func (brokenInventory) GetStock(context.Context, int64) (domain.Stock, error) {
	return domain.Stock{}, errors.New("disk on fire")
}

func (brokenInventory) GetProduct(context.Context, int64) (domain.Product, error) {
	return domain.Product{}, errors.New("disk on fire")
}

func seeded() *inventory.MemoryInventory {
	inv := inventory.NewMemoryInventory()
	inv.SetProduct(domain.Product{ID: 1, Title: "Tênis de Caminhada", Price: 179.9, Image: "https://cdn/1.jpg"}, 3)
	inv.SetProduct(domain.Product{ID: 2, Title: "Tênis VR", Price: 139.9}, 1)
	return inv
}

func startServer(t *testing.T, inv inventory.Inventory) *invgrpc.Client {
	lis := bufconn.Listen(1 << 20)
	srv := invgrpc.NewServer(inv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := invgrpc.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return invgrpc.NewClient(conn, 2*time.Second)
}

func TestClient_GetStock(t *testing.T) {
	client := startServer(t, seeded())

	stock, err := client.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Stock{ProductID: 1, Amount: 3}, stock)

	stock, err = client.GetStock(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, stock.Sellable())
}

func TestClient_GetProduct(t *testing.T) {
	client := startServer(t, seeded())

	product, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: 1, Title: "Tênis de Caminhada", Price: 179.9, Image: "https://cdn/1.jpg"}, product)
}

func TestClient_NotFound(t *testing.T) {
	client := startServer(t, seeded())

	_, err := client.GetStock(context.Background(), 99)
	assert.ErrorIs(t, err, inventory.ErrProductNotFound)

	_, err = client.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, inventory.ErrProductNotFound)
}

func TestClient_InternalError(t *testing.T) {
	client := startServer(t, brokenInventory{})

	_, err := client.GetStock(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, inventory.ErrProductNotFound)
	assert.Equal(t, codes.Internal, status.Code(errors.Unwrap(err)))
}

func TestServer_InvalidID(t *testing.T) {
	server := invgrpc.NewInventoryServiceServer(seeded())

	_, err := server.GetStock(context.Background(), &invgrpc.ProductRequest{ProductID: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = server.GetProduct(context.Background(), &invgrpc.ProductRequest{ProductID: -4})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_MapsErrors(t *testing.T) {
	server := invgrpc.NewInventoryServiceServer(seeded())

	_, err := server.GetStock(context.Background(), &invgrpc.ProductRequest{ProductID: 42})
	assert.Equal(t, codes.NotFound, status.Code(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = invgrpc.NewInventoryServiceServer(cancelledInventory{}).GetProduct(ctx, &invgrpc.ProductRequest{ProductID: 1})
	assert.Equal(t, codes.Canceled, status.Code(err))
}

type cancelledInventory struct{}

func (cancelledInventory) GetStock(ctx context.Context, _ int64) (domain.Stock, error) {
	return domain.Stock{}, ctx.Err()
}

func (cancelledInventory) GetProduct(ctx context.Context, _ int64) (domain.Product, error) {
	return domain.Product{}, ctx.Err()
}
