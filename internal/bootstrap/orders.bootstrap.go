package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guregu/null/v6"
	"github.com/krobus00/invest-orders/internal/config"
	"github.com/krobus00/invest-orders/internal/infrastructure"
	"github.com/krobus00/invest-orders/internal/util"
	"github.com/krobus00/invest-orders/pkg/call"
	"github.com/krobus00/invest-orders/pkg/entity"
	"github.com/krobus00/invest-orders/pkg/investapi"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	flagAccount        = "account"
	flagInstrument     = "instrument"
	flagQuantity       = "quantity"
	flagPrice          = "price"
	flagDirection      = "direction"
	flagOrderType      = "type"
	flagOrderID        = "order-id"
	flagIdempotencyKey = "idempotency-key"
	flagPriceType      = "price-type"
	flagAsync          = "async"
)

var (
	ErrAccountIDRequired = errors.New("account id is required, set --account or account_id")
	ErrInvalidPrice      = errors.New("invalid price")
)

// ordersAPI is the part of investapi.OrdersService the commands drive.
type ordersAPI interface {
	PostOrder(ctx context.Context, instrumentID string, quantity int64, price entity.Quotation,
		direction entity.OrderDirection, accountID string, orderType entity.OrderType, orderID null.String) (*entity.PostOrderResponse, error)
	PostOrderAsync(ctx context.Context, instrumentID string, quantity int64, price entity.Quotation,
		direction entity.OrderDirection, accountID string, orderType entity.OrderType, orderID null.String) (*call.Future[*entity.PostOrderResponse], error)
	CancelOrder(ctx context.Context, accountID, orderID string) (time.Time, error)
	CancelOrderAsync(ctx context.Context, accountID, orderID string) (*call.Future[time.Time], error)
	GetOrderState(ctx context.Context, accountID, orderID string) (*entity.OrderState, error)
	GetOrderStateAsync(ctx context.Context, accountID, orderID string) *call.Future[*entity.OrderState]
	GetOrders(ctx context.Context, accountID string) ([]*entity.OrderState, error)
	GetOrdersAsync(ctx context.Context, accountID string) *call.Future[[]*entity.OrderState]
	ReplaceOrder(ctx context.Context, accountID string, quantity int64, price entity.Quotation,
		idempotencyKey null.String, orderID string, priceType *entity.PriceType) (*entity.PostOrderResponse, error)
	ReplaceOrderAsync(ctx context.Context, accountID string, quantity int64, price entity.Quotation,
		idempotencyKey null.String, orderID string, priceType *entity.PriceType) (*call.Future[*entity.PostOrderResponse], error)
}

type ordersAction func(ctx context.Context, cmd *cobra.Command, api ordersAPI) (any, error)

type cancelOrderResult struct {
	AccountID string    `json:"account_id"`
	OrderID   string    `json:"order_id"`
	Time      time.Time `json:"time"`
}

type getOrdersResult struct {
	AccountID string              `json:"account_id"`
	Orders    []*entity.OrderState `json:"orders"`
}

func BindOrdersFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(flagAccount, "", "account id (default: account_id from config)")
	cmd.PersistentFlags().Bool(flagAsync, false, "use the non-blocking call and wait for its future")
}

func BindPostOrderFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagInstrument, "", "instrument id (figi or instrument uid)")
	cmd.Flags().Int64(flagQuantity, 0, "quantity in lots")
	cmd.Flags().String(flagPrice, "0", "price per instrument unit, e.g. 101.25")
	cmd.Flags().String(flagDirection, "buy", "order direction: buy or sell")
	cmd.Flags().String(flagOrderType, "limit", "order type: limit, market or bestprice")
	cmd.Flags().String(flagOrderID, "", "idempotency key, a random uuid is used when omitted")
	_ = cmd.MarkFlagRequired(flagInstrument)
	_ = cmd.MarkFlagRequired(flagQuantity)
}

func BindOrderIDFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagOrderID, "", "order id")
	_ = cmd.MarkFlagRequired(flagOrderID)
}

func BindReplaceOrderFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagOrderID, "", "id of the order to replace")
	cmd.Flags().Int64(flagQuantity, 0, "new quantity in lots")
	cmd.Flags().String(flagPrice, "0", "new price per instrument unit")
	cmd.Flags().String(flagIdempotencyKey, "", "idempotency key of the new order")
	cmd.Flags().String(flagPriceType, "", "price type: point or currency")
	_ = cmd.MarkFlagRequired(flagOrderID)
	_ = cmd.MarkFlagRequired(flagQuantity)
}

func PostOrder(cmd *cobra.Command, _ []string) {
	runOrdersCommand(cmd, postOrder)
}

func CancelOrder(cmd *cobra.Command, _ []string) {
	runOrdersCommand(cmd, cancelOrder)
}

func GetOrderState(cmd *cobra.Command, _ []string) {
	runOrdersCommand(cmd, getOrderState)
}

func GetOrders(cmd *cobra.Command, _ []string) {
	runOrdersCommand(cmd, getOrders)
}

func ReplaceOrder(cmd *cobra.Command, _ []string) {
	runOrdersCommand(cmd, replaceOrder)
}

func runOrdersCommand(cmd *cobra.Command, action ordersAction) {
	ctx, stop := signalContext()
	defer stop()

	conn, err := infrastructure.NewGRPCConnection(config.Env.API)
	util.ContinueOrFatal(err)

	ordersService := investapi.NewOrdersServiceFromConn(conn, config.Env.API.Readonly)

	result, err := action(ctx, cmd, ordersService)

	cleanup(config.Env.GracefulShutdownTimeout, map[string]operation{
		"grpc connection": func(ctx context.Context) error {
			return conn.Close()
		},
	})

	util.ContinueOrFatal(err)
	util.ContinueOrFatal(util.WriteJSON(cmd.OutOrStdout(), result))
}

func postOrder(ctx context.Context, cmd *cobra.Command, api ordersAPI) (any, error) {
	flags := cmd.Flags()

	accountID, err := resolveAccountID(cmd)
	if err != nil {
		return nil, err
	}

	instrumentID, _ := flags.GetString(flagInstrument)
	quantity, _ := flags.GetInt64(flagQuantity)

	rawPrice, _ := flags.GetString(flagPrice)
	price, err := parsePrice(rawPrice)
	if err != nil {
		return nil, err
	}

	rawDirection, _ := flags.GetString(flagDirection)
	direction, err := entity.ParseOrderDirection(rawDirection)
	if err != nil {
		return nil, err
	}

	rawOrderType, _ := flags.GetString(flagOrderType)
	orderType, err := entity.ParseOrderType(rawOrderType)
	if err != nil {
		return nil, err
	}

	orderID := optionalString(cmd, flagOrderID)

	logrus.WithFields(logrus.Fields{
		"account_id":    accountID,
		"instrument_id": instrumentID,
		"quantity":      quantity,
		"price":         price.String(),
		"direction":     direction.String(),
		"order_type":    orderType.String(),
	}).Info("posting order")

	if isAsync(cmd) {
		future, err := api.PostOrderAsync(ctx, instrumentID, quantity, price, direction, accountID, orderType, orderID)
		if err != nil {
			return nil, err
		}
		return future.Get(ctx)
	}

	return api.PostOrder(ctx, instrumentID, quantity, price, direction, accountID, orderType, orderID)
}

func cancelOrder(ctx context.Context, cmd *cobra.Command, api ordersAPI) (any, error) {
	accountID, err := resolveAccountID(cmd)
	if err != nil {
		return nil, err
	}

	orderID, _ := cmd.Flags().GetString(flagOrderID)

	var cancelledAt time.Time
	if isAsync(cmd) {
		future, err := api.CancelOrderAsync(ctx, accountID, orderID)
		if err != nil {
			return nil, err
		}
		cancelledAt, err = future.Get(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		cancelledAt, err = api.CancelOrder(ctx, accountID, orderID)
		if err != nil {
			return nil, err
		}
	}

	return &cancelOrderResult{AccountID: accountID, OrderID: orderID, Time: cancelledAt}, nil
}

func getOrderState(ctx context.Context, cmd *cobra.Command, api ordersAPI) (any, error) {
	accountID, err := resolveAccountID(cmd)
	if err != nil {
		return nil, err
	}

	orderID, _ := cmd.Flags().GetString(flagOrderID)

	if isAsync(cmd) {
		return api.GetOrderStateAsync(ctx, accountID, orderID).Get(ctx)
	}

	return api.GetOrderState(ctx, accountID, orderID)
}

func getOrders(ctx context.Context, cmd *cobra.Command, api ordersAPI) (any, error) {
	accountID, err := resolveAccountID(cmd)
	if err != nil {
		return nil, err
	}

	var orders []*entity.OrderState
	if isAsync(cmd) {
		orders, err = api.GetOrdersAsync(ctx, accountID).Get(ctx)
	} else {
		orders, err = api.GetOrders(ctx, accountID)
	}
	if err != nil {
		return nil, err
	}

	return &getOrdersResult{AccountID: accountID, Orders: orders}, nil
}

func replaceOrder(ctx context.Context, cmd *cobra.Command, api ordersAPI) (any, error) {
	flags := cmd.Flags()

	accountID, err := resolveAccountID(cmd)
	if err != nil {
		return nil, err
	}

	orderID, _ := flags.GetString(flagOrderID)
	quantity, _ := flags.GetInt64(flagQuantity)

	rawPrice, _ := flags.GetString(flagPrice)
	price, err := parsePrice(rawPrice)
	if err != nil {
		return nil, err
	}

	priceType, err := optionalPriceType(cmd)
	if err != nil {
		return nil, err
	}

	idempotencyKey := optionalString(cmd, flagIdempotencyKey)

	if isAsync(cmd) {
		future, err := api.ReplaceOrderAsync(ctx, accountID, quantity, price, idempotencyKey, orderID, priceType)
		if err != nil {
			return nil, err
		}
		return future.Get(ctx)
	}

	return api.ReplaceOrder(ctx, accountID, quantity, price, idempotencyKey, orderID, priceType)
}

func resolveAccountID(cmd *cobra.Command) (string, error) {
	accountID, _ := cmd.Flags().GetString(flagAccount)
	accountID = strings.TrimSpace(accountID)
	if accountID == "" && config.Env != nil {
		accountID = strings.TrimSpace(config.Env.AccountID)
	}
	if accountID == "" {
		return "", ErrAccountIDRequired
	}

	return accountID, nil
}

func parsePrice(raw string) (entity.Quotation, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return entity.Quotation{}, fmt.Errorf("%w %q: %w", ErrInvalidPrice, raw, err)
	}

	return entity.QuotationFromDecimal(value), nil
}

// optionalString is only valid when the flag was given on the command line.
func optionalString(cmd *cobra.Command, name string) null.String {
	if !cmd.Flags().Changed(name) {
		return null.String{}
	}

	value, _ := cmd.Flags().GetString(name)
	return null.StringFrom(value)
}

func optionalPriceType(cmd *cobra.Command) (*entity.PriceType, error) {
	if !cmd.Flags().Changed(flagPriceType) {
		return nil, nil
	}

	raw, _ := cmd.Flags().GetString(flagPriceType)
	priceType, err := entity.ParsePriceType(raw)
	if err != nil {
		return nil, err
	}

	return &priceType, nil
}

func isAsync(cmd *cobra.Command) bool {
	async, _ := cmd.Flags().GetBool(flagAsync)
	return async
}
