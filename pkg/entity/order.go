package entity

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/timestamppb"
)

type OrderDirection int32
type OrderType int32
type PriceType int32
type ExecutionReportStatus int32

const (
	OrderDirectionUnspecified OrderDirection = 0
	OrderDirectionBuy         OrderDirection = 1
	OrderDirectionSell        OrderDirection = 2

	OrderTypeUnspecified OrderType = 0
	OrderTypeLimit       OrderType = 1
	OrderTypeMarket      OrderType = 2
	OrderTypeBestPrice   OrderType = 3

	PriceTypeUnspecified PriceType = 0
	PriceTypePoint       PriceType = 1
	PriceTypeCurrency    PriceType = 2

	ExecutionReportStatusUnspecified   ExecutionReportStatus = 0
	ExecutionReportStatusFill          ExecutionReportStatus = 1
	ExecutionReportStatusRejected      ExecutionReportStatus = 2
	ExecutionReportStatusCancelled     ExecutionReportStatus = 3
	ExecutionReportStatusNew           ExecutionReportStatus = 4
	ExecutionReportStatusPartiallyFill ExecutionReportStatus = 5
)

var orderDirectionNames = map[OrderDirection]string{
	OrderDirectionUnspecified: "ORDER_DIRECTION_UNSPECIFIED",
	OrderDirectionBuy:         "ORDER_DIRECTION_BUY",
	OrderDirectionSell:        "ORDER_DIRECTION_SELL",
}

var orderTypeNames = map[OrderType]string{
	OrderTypeUnspecified: "ORDER_TYPE_UNSPECIFIED",
	OrderTypeLimit:       "ORDER_TYPE_LIMIT",
	OrderTypeMarket:      "ORDER_TYPE_MARKET",
	OrderTypeBestPrice:   "ORDER_TYPE_BESTPRICE",
}

var priceTypeNames = map[PriceType]string{
	PriceTypeUnspecified: "PRICE_TYPE_UNSPECIFIED",
	PriceTypePoint:       "PRICE_TYPE_POINT",
	PriceTypeCurrency:    "PRICE_TYPE_CURRENCY",
}

var executionReportStatusNames = map[ExecutionReportStatus]string{
	ExecutionReportStatusUnspecified:   "EXECUTION_REPORT_STATUS_UNSPECIFIED",
	ExecutionReportStatusFill:          "EXECUTION_REPORT_STATUS_FILL",
	ExecutionReportStatusRejected:      "EXECUTION_REPORT_STATUS_REJECTED",
	ExecutionReportStatusCancelled:     "EXECUTION_REPORT_STATUS_CANCELLED",
	ExecutionReportStatusNew:           "EXECUTION_REPORT_STATUS_NEW",
	ExecutionReportStatusPartiallyFill: "EXECUTION_REPORT_STATUS_PARTIALLYFILL",
}

func (d OrderDirection) String() string {
	if name, ok := orderDirectionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("ORDER_DIRECTION(%d)", int32(d))
}

func (t OrderType) String() string {
	if name, ok := orderTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ORDER_TYPE(%d)", int32(t))
}

func (p PriceType) String() string {
	if name, ok := priceTypeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PRICE_TYPE(%d)", int32(p))
}

func (s ExecutionReportStatus) String() string {
	if name, ok := executionReportStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("EXECUTION_REPORT_STATUS(%d)", int32(s))
}

// ParseOrderDirection accepts either the full enum name or its short suffix ("buy", "SELL").
func ParseOrderDirection(raw string) (OrderDirection, error) {
	return parseEnum(raw, "ORDER_DIRECTION_", orderDirectionNames)
}

func ParseOrderType(raw string) (OrderType, error) {
	return parseEnum(raw, "ORDER_TYPE_", orderTypeNames)
}

func ParsePriceType(raw string) (PriceType, error) {
	return parseEnum(raw, "PRICE_TYPE_", priceTypeNames)
}

func parseEnum[E comparable](raw, prefix string, names map[E]string) (E, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.HasPrefix(normalized, prefix) {
		normalized = prefix + normalized
	}

	for value, name := range names {
		if name == normalized {
			return value, nil
		}
	}

	var zero E
	return zero, fmt.Errorf("unknown value %q for %s*", raw, prefix)
}

type PostOrderRequest struct {
	InstrumentID string         `json:"instrument_id"`
	Quantity     int64          `json:"quantity"`
	Price        *Quotation     `json:"price,omitempty"`
	Direction    OrderDirection `json:"direction"`
	AccountID    string         `json:"account_id"`
	OrderType    OrderType      `json:"order_type"`
	OrderID      string         `json:"order_id"`
}

type PostOrderResponse struct {
	OrderID               string                `json:"order_id"`
	ExecutionReportStatus ExecutionReportStatus `json:"execution_report_status"`
	LotsRequested         int64                 `json:"lots_requested"`
	LotsExecuted          int64                 `json:"lots_executed"`
	InitialOrderPrice     *MoneyValue           `json:"initial_order_price,omitempty"`
	ExecutedOrderPrice    *MoneyValue           `json:"executed_order_price,omitempty"`
	TotalOrderAmount      *MoneyValue           `json:"total_order_amount,omitempty"`
	InitialCommission     *MoneyValue           `json:"initial_commission,omitempty"`
	ExecutedCommission    *MoneyValue           `json:"executed_commission,omitempty"`
	Figi                  string                `json:"figi"`
	Direction             OrderDirection        `json:"direction"`
	InitialSecurityPrice  *MoneyValue           `json:"initial_security_price,omitempty"`
	OrderType             OrderType             `json:"order_type"`
	Message               string                `json:"message"`
	InitialOrderPricePt   *Quotation            `json:"initial_order_price_pt,omitempty"`
	InstrumentUID         string                `json:"instrument_uid"`
	OrderRequestID        string                `json:"order_request_id"`
}

type CancelOrderRequest struct {
	AccountID string `json:"account_id"`
	OrderID   string `json:"order_id"`
}

type CancelOrderResponse struct {
	Time *timestamppb.Timestamp `json:"time,omitempty"`
}

type GetOrderStateRequest struct {
	AccountID string `json:"account_id"`
	OrderID   string `json:"order_id"`
}

type GetOrdersRequest struct {
	AccountID string `json:"account_id"`
}

type GetOrdersResponse struct {
	Orders []*OrderState `json:"orders"`
}

type ReplaceOrderRequest struct {
	AccountID      string     `json:"account_id"`
	OrderID        string     `json:"order_id"`
	IdempotencyKey string     `json:"idempotency_key"`
	Quantity       int64      `json:"quantity"`
	Price          *Quotation `json:"price,omitempty"`
	PriceType      PriceType  `json:"price_type"`
}

// OrderState is the remote snapshot of an order. Fields are passed through as reported.
type OrderState struct {
	OrderID               string                 `json:"order_id"`
	ExecutionReportStatus ExecutionReportStatus  `json:"execution_report_status"`
	LotsRequested         int64                  `json:"lots_requested"`
	LotsExecuted          int64                  `json:"lots_executed"`
	InitialOrderPrice     *MoneyValue            `json:"initial_order_price,omitempty"`
	ExecutedOrderPrice    *MoneyValue            `json:"executed_order_price,omitempty"`
	TotalOrderAmount      *MoneyValue            `json:"total_order_amount,omitempty"`
	AveragePositionPrice  *MoneyValue            `json:"average_position_price,omitempty"`
	InitialCommission     *MoneyValue            `json:"initial_commission,omitempty"`
	ExecutedCommission    *MoneyValue            `json:"executed_commission,omitempty"`
	Figi                  string                 `json:"figi"`
	Direction             OrderDirection         `json:"direction"`
	InitialSecurityPrice  *MoneyValue            `json:"initial_security_price,omitempty"`
	Stages                []*OrderStage          `json:"stages,omitempty"`
	ServiceCommission     *MoneyValue            `json:"service_commission,omitempty"`
	Currency              string                 `json:"currency"`
	OrderType             OrderType              `json:"order_type"`
	OrderDate             *timestamppb.Timestamp `json:"order_date,omitempty"`
	InstrumentUID         string                 `json:"instrument_uid"`
	OrderRequestID        string                 `json:"order_request_id"`
}

type OrderStage struct {
	Price    *MoneyValue `json:"price,omitempty"`
	Quantity int64       `json:"quantity"`
	TradeID  string      `json:"trade_id"`
}
