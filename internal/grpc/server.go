package grpc

import (
	"context"
	"errors"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/fjod/cart-store/internal/inventory"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InventoryServiceServer exposes an inventory.Inventory over gRPC.
type InventoryServiceServer struct {
	inv inventory.Inventory
}

func NewInventoryServiceServer(inv inventory.Inventory) *InventoryServiceServer {
	return &InventoryServiceServer{inv: inv}
}

// NewServer builds a grpc.Server with tracing and the inventory service registered.
func NewServer(inv inventory.Inventory, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.StatsHandler(otelgrpc.NewServerHandler())}, opts...)
	s := grpc.NewServer(opts...)
	RegisterInventoryServer(s, NewInventoryServiceServer(inv))
	return s
}

func (s *InventoryServiceServer) GetStock(ctx context.Context, req *ProductRequest) (*domain.Stock, error) {
	if req.ProductID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be greater than 0")
	}

	stock, err := s.inv.GetStock(ctx, req.ProductID)
	if err != nil {
		return nil, toStatus(err, "failed to get stock")
	}
	return &stock, nil
}

func (s *InventoryServiceServer) GetProduct(ctx context.Context, req *ProductRequest) (*domain.Product, error) {
	if req.ProductID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be greater than 0")
	}

	product, err := s.inv.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, toStatus(err, "failed to get product")
	}
	return &product, nil
}

func toStatus(err error, msg string) error {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return status.Error(codes.NotFound, "product not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Errorf(codes.Internal, "%s: %v", msg, err)
	}
}
