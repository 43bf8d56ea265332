package transport

import (
	"github.com/krobus00/invest-orders/pkg/entity"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Field numbers follow tinkoff.public.invest.api.contract.v1 (orders.proto, common.proto).

func appendQuotation(b []byte, num protowire.Number, q *entity.Quotation) []byte {
	if q == nil {
		return b
	}

	var m []byte
	m = appendInt64(m, 1, q.Units)
	m = appendInt32(m, 2, q.Nano)
	return appendMessage(b, num, m)
}

func readQuotation(typ protowire.Type, b []byte, dst **entity.Quotation) (int, error) {
	q := new(entity.Quotation)
	n, err := readMessage(typ, b, func(b []byte) error {
		return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			switch num {
			case 1:
				return readInt64(typ, b, &q.Units)
			case 2:
				return readInt32(typ, b, &q.Nano)
			}
			return 0, errSkipField
		})
	})
	if err != nil {
		return n, err
	}

	*dst = q
	return n, nil
}

func appendMoneyValue(b []byte, num protowire.Number, v *entity.MoneyValue) []byte {
	if v == nil {
		return b
	}

	var m []byte
	m = appendString(m, 1, v.Currency)
	m = appendInt64(m, 2, v.Units)
	m = appendInt32(m, 3, v.Nano)
	return appendMessage(b, num, m)
}

func readMoneyValue(typ protowire.Type, b []byte, dst **entity.MoneyValue) (int, error) {
	v := new(entity.MoneyValue)
	n, err := readMessage(typ, b, func(b []byte) error {
		return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			switch num {
			case 1:
				return readString(typ, b, &v.Currency)
			case 2:
				return readInt64(typ, b, &v.Units)
			case 3:
				return readInt32(typ, b, &v.Nano)
			}
			return 0, errSkipField
		})
	})
	if err != nil {
		return n, err
	}

	*dst = v
	return n, nil
}

func appendTimestamp(b []byte, num protowire.Number, ts *timestamppb.Timestamp) []byte {
	if ts == nil {
		return b
	}

	var m []byte
	m = appendInt64(m, 1, ts.GetSeconds())
	m = appendInt32(m, 2, ts.GetNanos())
	return appendMessage(b, num, m)
}

func readTimestamp(typ protowire.Type, b []byte, dst **timestamppb.Timestamp) (int, error) {
	ts := new(timestamppb.Timestamp)
	n, err := readMessage(typ, b, func(b []byte) error {
		return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			switch num {
			case 1:
				return readInt64(typ, b, &ts.Seconds)
			case 2:
				return readInt32(typ, b, &ts.Nanos)
			}
			return 0, errSkipField
		})
	})
	if err != nil {
		return n, err
	}

	*dst = ts
	return n, nil
}

func appendPostOrderRequest(b []byte, req *entity.PostOrderRequest) []byte {
	b = appendInt64(b, 2, req.Quantity)
	b = appendQuotation(b, 3, req.Price)
	b = appendEnum(b, 4, req.Direction)
	b = appendString(b, 5, req.AccountID)
	b = appendEnum(b, 6, req.OrderType)
	b = appendString(b, 7, req.OrderID)
	b = appendString(b, 8, req.InstrumentID)
	return b
}

func decodePostOrderRequest(b []byte, req *entity.PostOrderRequest) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 2:
			return readInt64(typ, b, &req.Quantity)
		case 3:
			return readQuotation(typ, b, &req.Price)
		case 4:
			return readEnum(typ, b, &req.Direction)
		case 5:
			return readString(typ, b, &req.AccountID)
		case 6:
			return readEnum(typ, b, &req.OrderType)
		case 7:
			return readString(typ, b, &req.OrderID)
		case 8:
			return readString(typ, b, &req.InstrumentID)
		}
		return 0, errSkipField
	})
}

func appendPostOrderResponse(b []byte, resp *entity.PostOrderResponse) []byte {
	b = appendString(b, 1, resp.OrderID)
	b = appendEnum(b, 2, resp.ExecutionReportStatus)
	b = appendInt64(b, 3, resp.LotsRequested)
	b = appendInt64(b, 4, resp.LotsExecuted)
	b = appendMoneyValue(b, 5, resp.InitialOrderPrice)
	b = appendMoneyValue(b, 6, resp.ExecutedOrderPrice)
	b = appendMoneyValue(b, 7, resp.TotalOrderAmount)
	b = appendMoneyValue(b, 8, resp.InitialCommission)
	b = appendMoneyValue(b, 9, resp.ExecutedCommission)
	b = appendString(b, 11, resp.Figi)
	b = appendEnum(b, 12, resp.Direction)
	b = appendMoneyValue(b, 13, resp.InitialSecurityPrice)
	b = appendEnum(b, 14, resp.OrderType)
	b = appendString(b, 15, resp.Message)
	b = appendQuotation(b, 16, resp.InitialOrderPricePt)
	b = appendString(b, 17, resp.InstrumentUID)
	b = appendString(b, 18, resp.OrderRequestID)
	return b
}

func decodePostOrderResponse(b []byte, resp *entity.PostOrderResponse) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &resp.OrderID)
		case 2:
			return readEnum(typ, b, &resp.ExecutionReportStatus)
		case 3:
			return readInt64(typ, b, &resp.LotsRequested)
		case 4:
			return readInt64(typ, b, &resp.LotsExecuted)
		case 5:
			return readMoneyValue(typ, b, &resp.InitialOrderPrice)
		case 6:
			return readMoneyValue(typ, b, &resp.ExecutedOrderPrice)
		case 7:
			return readMoneyValue(typ, b, &resp.TotalOrderAmount)
		case 8:
			return readMoneyValue(typ, b, &resp.InitialCommission)
		case 9:
			return readMoneyValue(typ, b, &resp.ExecutedCommission)
		case 11:
			return readString(typ, b, &resp.Figi)
		case 12:
			return readEnum(typ, b, &resp.Direction)
		case 13:
			return readMoneyValue(typ, b, &resp.InitialSecurityPrice)
		case 14:
			return readEnum(typ, b, &resp.OrderType)
		case 15:
			return readString(typ, b, &resp.Message)
		case 16:
			return readQuotation(typ, b, &resp.InitialOrderPricePt)
		case 17:
			return readString(typ, b, &resp.InstrumentUID)
		case 18:
			return readString(typ, b, &resp.OrderRequestID)
		}
		return 0, errSkipField
	})
}

func appendCancelOrderRequest(b []byte, req *entity.CancelOrderRequest) []byte {
	b = appendString(b, 1, req.AccountID)
	b = appendString(b, 2, req.OrderID)
	return b
}

func decodeCancelOrderRequest(b []byte, req *entity.CancelOrderRequest) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &req.AccountID)
		case 2:
			return readString(typ, b, &req.OrderID)
		}
		return 0, errSkipField
	})
}

func appendCancelOrderResponse(b []byte, resp *entity.CancelOrderResponse) []byte {
	return appendTimestamp(b, 1, resp.Time)
}

func decodeCancelOrderResponse(b []byte, resp *entity.CancelOrderResponse) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readTimestamp(typ, b, &resp.Time)
		}
		return 0, errSkipField
	})
}

func appendGetOrderStateRequest(b []byte, req *entity.GetOrderStateRequest) []byte {
	b = appendString(b, 1, req.AccountID)
	b = appendString(b, 2, req.OrderID)
	return b
}

func decodeGetOrderStateRequest(b []byte, req *entity.GetOrderStateRequest) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &req.AccountID)
		case 2:
			return readString(typ, b, &req.OrderID)
		}
		return 0, errSkipField
	})
}

func appendGetOrdersRequest(b []byte, req *entity.GetOrdersRequest) []byte {
	return appendString(b, 1, req.AccountID)
}

func decodeGetOrdersRequest(b []byte, req *entity.GetOrdersRequest) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &req.AccountID)
		}
		return 0, errSkipField
	})
}

func appendGetOrdersResponse(b []byte, resp *entity.GetOrdersResponse) []byte {
	for _, order := range resp.Orders {
		if order == nil {
			order = &entity.OrderState{}
		}
		b = appendMessage(b, 1, appendOrderState(nil, order))
	}
	return b
}

func decodeGetOrdersResponse(b []byte, resp *entity.GetOrdersResponse) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, errSkipField
		}

		return readMessage(typ, b, func(b []byte) error {
			order := new(entity.OrderState)
			if err := decodeOrderState(b, order); err != nil {
				return err
			}
			resp.Orders = append(resp.Orders, order)
			return nil
		})
	})
}

func appendOrderState(b []byte, state *entity.OrderState) []byte {
	b = appendString(b, 1, state.OrderID)
	b = appendEnum(b, 2, state.ExecutionReportStatus)
	b = appendInt64(b, 3, state.LotsRequested)
	b = appendInt64(b, 4, state.LotsExecuted)
	b = appendMoneyValue(b, 5, state.InitialOrderPrice)
	b = appendMoneyValue(b, 6, state.ExecutedOrderPrice)
	b = appendMoneyValue(b, 7, state.TotalOrderAmount)
	b = appendMoneyValue(b, 8, state.AveragePositionPrice)
	b = appendMoneyValue(b, 9, state.InitialCommission)
	b = appendMoneyValue(b, 10, state.ExecutedCommission)
	b = appendString(b, 11, state.Figi)
	b = appendEnum(b, 12, state.Direction)
	b = appendMoneyValue(b, 13, state.InitialSecurityPrice)
	for _, stage := range state.Stages {
		if stage == nil {
			stage = &entity.OrderStage{}
		}
		b = appendMessage(b, 14, appendOrderStage(nil, stage))
	}
	b = appendMoneyValue(b, 15, state.ServiceCommission)
	b = appendString(b, 16, state.Currency)
	b = appendEnum(b, 17, state.OrderType)
	b = appendTimestamp(b, 18, state.OrderDate)
	b = appendString(b, 19, state.InstrumentUID)
	b = appendString(b, 20, state.OrderRequestID)
	return b
}

func decodeOrderState(b []byte, state *entity.OrderState) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &state.OrderID)
		case 2:
			return readEnum(typ, b, &state.ExecutionReportStatus)
		case 3:
			return readInt64(typ, b, &state.LotsRequested)
		case 4:
			return readInt64(typ, b, &state.LotsExecuted)
		case 5:
			return readMoneyValue(typ, b, &state.InitialOrderPrice)
		case 6:
			return readMoneyValue(typ, b, &state.ExecutedOrderPrice)
		case 7:
			return readMoneyValue(typ, b, &state.TotalOrderAmount)
		case 8:
			return readMoneyValue(typ, b, &state.AveragePositionPrice)
		case 9:
			return readMoneyValue(typ, b, &state.InitialCommission)
		case 10:
			return readMoneyValue(typ, b, &state.ExecutedCommission)
		case 11:
			return readString(typ, b, &state.Figi)
		case 12:
			return readEnum(typ, b, &state.Direction)
		case 13:
			return readMoneyValue(typ, b, &state.InitialSecurityPrice)
		case 14:
			return readMessage(typ, b, func(b []byte) error {
				stage := new(entity.OrderStage)
				if err := decodeOrderStage(b, stage); err != nil {
					return err
				}
				state.Stages = append(state.Stages, stage)
				return nil
			})
		case 15:
			return readMoneyValue(typ, b, &state.ServiceCommission)
		case 16:
			return readString(typ, b, &state.Currency)
		case 17:
			return readEnum(typ, b, &state.OrderType)
		case 18:
			return readTimestamp(typ, b, &state.OrderDate)
		case 19:
			return readString(typ, b, &state.InstrumentUID)
		case 20:
			return readString(typ, b, &state.OrderRequestID)
		}
		return 0, errSkipField
	})
}

func appendOrderStage(b []byte, stage *entity.OrderStage) []byte {
	b = appendMoneyValue(b, 1, stage.Price)
	b = appendInt64(b, 2, stage.Quantity)
	b = appendString(b, 3, stage.TradeID)
	return b
}

func decodeOrderStage(b []byte, stage *entity.OrderStage) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readMoneyValue(typ, b, &stage.Price)
		case 2:
			return readInt64(typ, b, &stage.Quantity)
		case 3:
			return readString(typ, b, &stage.TradeID)
		}
		return 0, errSkipField
	})
}

func appendReplaceOrderRequest(b []byte, req *entity.ReplaceOrderRequest) []byte {
	b = appendString(b, 1, req.AccountID)
	b = appendString(b, 6, req.OrderID)
	b = appendString(b, 7, req.IdempotencyKey)
	b = appendInt64(b, 11, req.Quantity)
	b = appendQuotation(b, 12, req.Price)
	b = appendEnum(b, 13, req.PriceType)
	return b
}

func decodeReplaceOrderRequest(b []byte, req *entity.ReplaceOrderRequest) error {
	return decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &req.AccountID)
		case 6:
			return readString(typ, b, &req.OrderID)
		case 7:
			return readString(typ, b, &req.IdempotencyKey)
		case 11:
			return readInt64(typ, b, &req.Quantity)
		case 12:
			return readQuotation(typ, b, &req.Price)
		case 13:
			return readEnum(typ, b, &req.PriceType)
		}
		return 0, errSkipField
	})
}
