package investapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/guregu/null/v6"
	"github.com/krobus00/invest-orders/pkg/call"
	"github.com/krobus00/invest-orders/pkg/entity"
	"github.com/krobus00/invest-orders/pkg/transport"
	"github.com/krobus00/invest-orders/pkg/validation"
	"google.golang.org/grpc"
)

const maxOrderIDLength = 36

// ErrEmptyResponse is returned when the remote side answers without an error and without a payload.
var ErrEmptyResponse = errors.New("empty response")

// OrdersService places, cancels, replaces and reads orders of the remote
// orders service. Every operation has a blocking form and an Async form
// returning a future. The service keeps no mutable state and is safe for
// concurrent use.
type OrdersService struct {
	blockingStub entity.OrdersServiceClient
	asyncStub    entity.OrdersServiceAsyncClient
	readonlyMode bool
}

func NewOrdersService(blockingStub entity.OrdersServiceClient, asyncStub entity.OrdersServiceAsyncClient, readonlyMode bool) *OrdersService {
	return &OrdersService{
		blockingStub: blockingStub,
		asyncStub:    asyncStub,
		readonlyMode: readonlyMode,
	}
}

// NewOrdersServiceFromConn builds both stubs on top of an established connection.
func NewOrdersServiceFromConn(conn grpc.ClientConnInterface, readonlyMode bool) *OrdersService {
	blockingStub := transport.NewOrdersClient(conn)
	return NewOrdersService(blockingStub, transport.NewOrdersAsyncClient(blockingStub), readonlyMode)
}

// PostOrder places an order. When orderID is not set a random UUID is used as
// the idempotency key.
func (s *OrdersService) PostOrder(ctx context.Context, instrumentID string, quantity int64, price entity.Quotation,
	direction entity.OrderDirection, accountID string, orderType entity.OrderType, orderID null.String) (*entity.PostOrderResponse, error) {
	if err := validation.CheckReadonly(s.readonlyMode); err != nil {
		return nil, err
	}

	req := newPostOrderRequest(instrumentID, quantity, price, direction, accountID, orderType, resolveOrderID(orderID))

	return call.UnaryCall(func() (*entity.PostOrderResponse, error) {
		return s.blockingStub.PostOrder(ctx, req)
	})
}

func (s *OrdersService) PostOrderAsync(ctx context.Context, instrumentID string, quantity int64, price entity.Quotation,
	direction entity.OrderDirection, accountID string, orderType entity.OrderType, orderID null.String) (*call.Future[*entity.PostOrderResponse], error) {
	if err := validation.CheckReadonly(s.readonlyMode); err != nil {
		return nil, err
	}

	req := newPostOrderRequest(instrumentID, quantity, price, direction, accountID, orderType, resolveOrderID(orderID))

	return call.UnaryAsyncCall(func(done func(*entity.PostOrderResponse, error)) {
		s.asyncStub.PostOrder(ctx, req, done)
	}), nil
}

// CancelOrder cancels an order and returns the cancellation time reported by the remote side.
func (s *OrdersService) CancelOrder(ctx context.Context, accountID, orderID string) (time.Time, error) {
	if err := validation.CheckReadonly(s.readonlyMode); err != nil {
		return time.Time{}, err
	}

	req := newCancelOrderRequest(accountID, orderID)

	resp, err := call.UnaryCall(func() (*entity.CancelOrderResponse, error) {
		return s.blockingStub.CancelOrder(ctx, req)
	})
	if err != nil {
		return time.Time{}, err
	}

	return cancelTime(resp)
}

func (s *OrdersService) CancelOrderAsync(ctx context.Context, accountID, orderID string) (*call.Future[time.Time], error) {
	if err := validation.CheckReadonly(s.readonlyMode); err != nil {
		return nil, err
	}

	req := newCancelOrderRequest(accountID, orderID)

	future := call.UnaryAsyncCall(func(done func(*entity.CancelOrderResponse, error)) {
		s.asyncStub.CancelOrder(ctx, req, done)
	})

	return call.Map(future, cancelTime), nil
}

func (s *OrdersService) GetOrderState(ctx context.Context, accountID, orderID string) (*entity.OrderState, error) {
	req := newGetOrderStateRequest(accountID, orderID)

	return call.UnaryCall(func() (*entity.OrderState, error) {
		return s.blockingStub.GetOrderState(ctx, req)
	})
}

func (s *OrdersService) GetOrderStateAsync(ctx context.Context, accountID, orderID string) *call.Future[*entity.OrderState] {
	req := newGetOrderStateRequest(accountID, orderID)

	return call.UnaryAsyncCall(func(done func(*entity.OrderState, error)) {
		s.asyncStub.GetOrderState(ctx, req, done)
	})
}

// GetOrders lists the active orders of an account in the order reported by the remote side.
func (s *OrdersService) GetOrders(ctx context.Context, accountID string) ([]*entity.OrderState, error) {
	req := newGetOrdersRequest(accountID)

	resp, err := call.UnaryCall(func() (*entity.GetOrdersResponse, error) {
		return s.blockingStub.GetOrders(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	return ordersList(resp)
}

func (s *OrdersService) GetOrdersAsync(ctx context.Context, accountID string) *call.Future[[]*entity.OrderState] {
	req := newGetOrdersRequest(accountID)

	future := call.UnaryAsyncCall(func(done func(*entity.GetOrdersResponse, error)) {
		s.asyncStub.GetOrders(ctx, req, done)
	})

	return call.Map(future, ordersList)
}

// ReplaceOrder cancels orderID and places a new order with the given quantity
// and price on the remote side. Unlike PostOrder, a missing idempotency key is
// sent as an empty string.
func (s *OrdersService) ReplaceOrder(ctx context.Context, accountID string, quantity int64, price entity.Quotation,
	idempotencyKey null.String, orderID string, priceType *entity.PriceType) (*entity.PostOrderResponse, error) {
	if err := validation.CheckReadonly(s.readonlyMode); err != nil {
		return nil, err
	}

	req := newReplaceOrderRequest(accountID, quantity, price, resolveIdempotencyKey(idempotencyKey), orderID, resolvePriceType(priceType))

	return call.UnaryCall(func() (*entity.PostOrderResponse, error) {
		return s.blockingStub.ReplaceOrder(ctx, req)
	})
}

func (s *OrdersService) ReplaceOrderAsync(ctx context.Context, accountID string, quantity int64, price entity.Quotation,
	idempotencyKey null.String, orderID string, priceType *entity.PriceType) (*call.Future[*entity.PostOrderResponse], error) {
	if err := validation.CheckReadonly(s.readonlyMode); err != nil {
		return nil, err
	}

	req := newReplaceOrderRequest(accountID, quantity, price, resolveIdempotencyKey(idempotencyKey), orderID, resolvePriceType(priceType))

	return call.UnaryAsyncCall(func(done func(*entity.PostOrderResponse, error)) {
		s.asyncStub.ReplaceOrder(ctx, req, done)
	}), nil
}

// resolveOrderID generates a random UUID when the caller did not pick an id.
// Supplied ids are trimmed and cut to the number of characters the remote side accepts.
func resolveOrderID(orderID null.String) string {
	if !orderID.Valid {
		return uuid.NewString()
	}

	trimmed := strings.TrimSpace(orderID.String)
	if utf8.RuneCountInString(trimmed) > maxOrderIDLength {
		return string([]rune(trimmed)[:maxOrderIDLength])
	}

	return trimmed
}

func cancelTime(resp *entity.CancelOrderResponse) (time.Time, error) {
	if resp == nil {
		return time.Time{}, fmt.Errorf("cancel order: %w", ErrEmptyResponse)
	}

	return entity.TimestampToTime(resp.Time), nil
}

func ordersList(resp *entity.GetOrdersResponse) ([]*entity.OrderState, error) {
	if resp == nil {
		return nil, fmt.Errorf("get orders: %w", ErrEmptyResponse)
	}

	return resp.Orders, nil
}

func resolveIdempotencyKey(idempotencyKey null.String) string {
	if !idempotencyKey.Valid {
		return ""
	}

	return idempotencyKey.String
}

func resolvePriceType(priceType *entity.PriceType) entity.PriceType {
	if priceType == nil {
		return entity.PriceTypeUnspecified
	}

	return *priceType
}

func newPostOrderRequest(instrumentID string, quantity int64, price entity.Quotation, direction entity.OrderDirection,
	accountID string, orderType entity.OrderType, orderID string) *entity.PostOrderRequest {
	return &entity.PostOrderRequest{
		InstrumentID: instrumentID,
		Quantity:     quantity,
		Price:        &price,
		Direction:    direction,
		AccountID:    accountID,
		OrderType:    orderType,
		OrderID:      orderID,
	}
}

func newCancelOrderRequest(accountID, orderID string) *entity.CancelOrderRequest {
	return &entity.CancelOrderRequest{
		AccountID: accountID,
		OrderID:   orderID,
	}
}

func newGetOrderStateRequest(accountID, orderID string) *entity.GetOrderStateRequest {
	return &entity.GetOrderStateRequest{
		AccountID: accountID,
		OrderID:   orderID,
	}
}

func newGetOrdersRequest(accountID string) *entity.GetOrdersRequest {
	return &entity.GetOrdersRequest{
		AccountID: accountID,
	}
}

func newReplaceOrderRequest(accountID string, quantity int64, price entity.Quotation, idempotencyKey, orderID string,
	priceType entity.PriceType) *entity.ReplaceOrderRequest {
	return &entity.ReplaceOrderRequest{
		AccountID:      accountID,
		OrderID:        orderID,
		IdempotencyKey: idempotencyKey,
		Quantity:       quantity,
		Price:          &price,
		PriceType:      priceType,
	}
}
