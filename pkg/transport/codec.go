package transport

import (
	"errors"
	"fmt"

	"github.com/krobus00/invest-orders/pkg/entity"
)

// CodecName doubles as the content subtype, so calls go out as application/grpc+proto.
const CodecName = "proto"

var ErrUnsupportedMessage = errors.New("unsupported message type")

// Codec encodes the orders payloads in the protobuf wire format of the
// orders contract. It is passed per call and never registered globally.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *entity.PostOrderRequest:
		return appendPostOrderRequest(nil, m), nil
	case *entity.PostOrderResponse:
		return appendPostOrderResponse(nil, m), nil
	case *entity.CancelOrderRequest:
		return appendCancelOrderRequest(nil, m), nil
	case *entity.CancelOrderResponse:
		return appendCancelOrderResponse(nil, m), nil
	case *entity.GetOrderStateRequest:
		return appendGetOrderStateRequest(nil, m), nil
	case *entity.OrderState:
		return appendOrderState(nil, m), nil
	case *entity.GetOrdersRequest:
		return appendGetOrdersRequest(nil, m), nil
	case *entity.GetOrdersResponse:
		return appendGetOrdersResponse(nil, m), nil
	case *entity.ReplaceOrderRequest:
		return appendReplaceOrderRequest(nil, m), nil
	}

	return nil, fmt.Errorf("marshal: %w: %T", ErrUnsupportedMessage, v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	var err error

	switch m := v.(type) {
	case *entity.PostOrderRequest:
		err = decodePostOrderRequest(data, m)
	case *entity.PostOrderResponse:
		err = decodePostOrderResponse(data, m)
	case *entity.CancelOrderRequest:
		err = decodeCancelOrderRequest(data, m)
	case *entity.CancelOrderResponse:
		err = decodeCancelOrderResponse(data, m)
	case *entity.GetOrderStateRequest:
		err = decodeGetOrderStateRequest(data, m)
	case *entity.OrderState:
		err = decodeOrderState(data, m)
	case *entity.GetOrdersRequest:
		err = decodeGetOrdersRequest(data, m)
	case *entity.GetOrdersResponse:
		err = decodeGetOrdersResponse(data, m)
	case *entity.ReplaceOrderRequest:
		err = decodeReplaceOrderRequest(data, m)
	default:
		return fmt.Errorf("unmarshal: %w: %T", ErrUnsupportedMessage, v)
	}

	if err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string {
	return CodecName
}
