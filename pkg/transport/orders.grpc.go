package transport

import (
	"context"

	"github.com/krobus00/invest-orders/pkg/call"
	"github.com/krobus00/invest-orders/pkg/entity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	OrdersServiceName = "tinkoff.public.invest.api.contract.v1.OrdersService"

	PostOrderMethod     = "/" + OrdersServiceName + "/PostOrder"
	CancelOrderMethod   = "/" + OrdersServiceName + "/CancelOrder"
	GetOrderStateMethod = "/" + OrdersServiceName + "/GetOrderState"
	GetOrdersMethod     = "/" + OrdersServiceName + "/GetOrders"
	ReplaceOrderMethod  = "/" + OrdersServiceName + "/ReplaceOrder"

	TrackingIDHeader = "x-tracking-id"
)

// OrdersClient is the blocking orders stub on top of a gRPC connection.
type OrdersClient struct {
	conn grpc.ClientConnInterface
}

func NewOrdersClient(conn grpc.ClientConnInterface) *OrdersClient {
	return &OrdersClient{conn: conn}
}

func (c *OrdersClient) PostOrder(ctx context.Context, req *entity.PostOrderRequest) (*entity.PostOrderResponse, error) {
	resp := new(entity.PostOrderResponse)
	if err := c.invoke(ctx, PostOrderMethod, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *OrdersClient) CancelOrder(ctx context.Context, req *entity.CancelOrderRequest) (*entity.CancelOrderResponse, error) {
	resp := new(entity.CancelOrderResponse)
	if err := c.invoke(ctx, CancelOrderMethod, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *OrdersClient) GetOrderState(ctx context.Context, req *entity.GetOrderStateRequest) (*entity.OrderState, error) {
	resp := new(entity.OrderState)
	if err := c.invoke(ctx, GetOrderStateMethod, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *OrdersClient) GetOrders(ctx context.Context, req *entity.GetOrdersRequest) (*entity.GetOrdersResponse, error) {
	resp := new(entity.GetOrdersResponse)
	if err := c.invoke(ctx, GetOrdersMethod, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *OrdersClient) ReplaceOrder(ctx context.Context, req *entity.ReplaceOrderRequest) (*entity.PostOrderResponse, error) {
	resp := new(entity.PostOrderResponse)
	if err := c.invoke(ctx, ReplaceOrderMethod, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *OrdersClient) invoke(ctx context.Context, method string, req, resp any) error {
	var header, trailer metadata.MD

	err := c.conn.Invoke(ctx, method, req, resp,
		grpc.ForceCodec(Codec{}),
		grpc.Header(&header),
		grpc.Trailer(&trailer),
	)
	if err != nil {
		return call.WithTrackingID(err, trackingID(header, trailer))
	}

	return nil
}

func trackingID(mds ...metadata.MD) string {
	for _, md := range mds {
		if values := md.Get(TrackingIDHeader); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
