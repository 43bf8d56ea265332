package transport

import (
	"context"

	"github.com/krobus00/invest-orders/pkg/entity"
)

// OrdersAsyncClient gives any blocking orders stub the callback shape. Each
// call runs on its own goroutine and completes done exactly once.
type OrdersAsyncClient struct {
	client entity.OrdersServiceClient
}

func NewOrdersAsyncClient(client entity.OrdersServiceClient) *OrdersAsyncClient {
	return &OrdersAsyncClient{client: client}
}

func (c *OrdersAsyncClient) PostOrder(ctx context.Context, req *entity.PostOrderRequest, done func(*entity.PostOrderResponse, error)) {
	go func() {
		done(c.client.PostOrder(ctx, req))
	}()
}

func (c *OrdersAsyncClient) CancelOrder(ctx context.Context, req *entity.CancelOrderRequest, done func(*entity.CancelOrderResponse, error)) {
	go func() {
		done(c.client.CancelOrder(ctx, req))
	}()
}

func (c *OrdersAsyncClient) GetOrderState(ctx context.Context, req *entity.GetOrderStateRequest, done func(*entity.OrderState, error)) {
	go func() {
		done(c.client.GetOrderState(ctx, req))
	}()
}

func (c *OrdersAsyncClient) GetOrders(ctx context.Context, req *entity.GetOrdersRequest, done func(*entity.GetOrdersResponse, error)) {
	go func() {
		done(c.client.GetOrders(ctx, req))
	}()
}

func (c *OrdersAsyncClient) ReplaceOrder(ctx context.Context, req *entity.ReplaceOrderRequest, done func(*entity.PostOrderResponse, error)) {
	go func() {
		done(c.client.ReplaceOrder(ctx, req))
	}()
}
