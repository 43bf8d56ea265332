package entity

import "context"

// OrdersServiceClient is the blocking remote handle of the orders service.
type OrdersServiceClient interface {
	PostOrder(ctx context.Context, req *PostOrderRequest) (*PostOrderResponse, error)
	CancelOrder(ctx context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error)
	GetOrderState(ctx context.Context, req *GetOrderStateRequest) (*OrderState, error)
	GetOrders(ctx context.Context, req *GetOrdersRequest) (*GetOrdersResponse, error)
	ReplaceOrder(ctx context.Context, req *ReplaceOrderRequest) (*PostOrderResponse, error)
}

// OrdersServiceAsyncClient is the non-blocking remote handle. Every method returns
// immediately and invokes done exactly once with either a response or an error.
type OrdersServiceAsyncClient interface {
	PostOrder(ctx context.Context, req *PostOrderRequest, done func(*PostOrderResponse, error))
	CancelOrder(ctx context.Context, req *CancelOrderRequest, done func(*CancelOrderResponse, error))
	GetOrderState(ctx context.Context, req *GetOrderStateRequest, done func(*OrderState, error))
	GetOrders(ctx context.Context, req *GetOrdersRequest, done func(*GetOrdersResponse, error))
	ReplaceOrder(ctx context.Context, req *ReplaceOrderRequest, done func(*PostOrderResponse, error))
}
