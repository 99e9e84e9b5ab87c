package grpc

import (
	"context"

	"github.com/fjod/cart-store/internal/domain"
	"google.golang.org/grpc"
)

const (
	serviceName      = "inventory.Inventory"
	getStockMethod   = "/" + serviceName + "/GetStock"
	getProductMethod = "/" + serviceName + "/GetProduct"
)

type ProductRequest struct {
	ProductID int64 `json:"id"`
}

// InventoryServer is the server side of the inventory.Inventory service.
type InventoryServer interface {
	GetStock(context.Context, *ProductRequest) (*domain.Stock, error)
	GetProduct(context.Context, *ProductRequest) (*domain.Product, error)
}

var InventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*InventoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStock", Handler: getStockHandler},
		{MethodName: "GetProduct", Handler: getProductHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "inventory",
}

func RegisterInventoryServer(s grpc.ServiceRegistrar, srv InventoryServer) {
	s.RegisterService(&InventoryServiceDesc, srv)
}

func getStockHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServer).GetStock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getStockMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServer).GetStock(ctx, req.(*ProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServer).GetProduct(ctx, req.(*ProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}
