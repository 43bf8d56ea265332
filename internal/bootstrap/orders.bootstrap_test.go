package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/krobus00/invest-orders/internal/config"
	"github.com/krobus00/invest-orders/pkg/call"
	"github.com/krobus00/invest-orders/pkg/entity"
	"github.com/krobus00/invest-orders/pkg/validation"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postOrderCall struct {
	instrumentID string
	quantity     int64
	price        entity.Quotation
	direction    entity.OrderDirection
	accountID    string
	orderType    entity.OrderType
	orderID      null.String
	async        bool
}

type replaceOrderCall struct {
	accountID      string
	quantity       int64
	price          entity.Quotation
	idempotencyKey null.String
	orderID        string
	priceType      *entity.PriceType
	async          bool
}

type fakeOrdersAPI struct {
	posts    []postOrderCall
	replaces []replaceOrderCall
	cancels  []string
	asyncUse int

	cancelledAt time.Time
	orders      []*entity.OrderState
	err         error
}

func resolved[T any](value T, err error) *call.Future[T] {
	return call.UnaryAsyncCall(func(done func(T, error)) {
		done(value, err)
	})
}

func (f *fakeOrdersAPI) PostOrder(_ context.Context, instrumentID string, quantity int64, price entity.Quotation,
	direction entity.OrderDirection, accountID string, orderType entity.OrderType, orderID null.String) (*entity.PostOrderResponse, error) {
	f.posts = append(f.posts, postOrderCall{instrumentID, quantity, price, direction, accountID, orderType, orderID, false})
	if f.err != nil {
		return nil, f.err
	}
	return &entity.PostOrderResponse{OrderID: "exch-1", LotsRequested: quantity}, nil
}

func (f *fakeOrdersAPI) PostOrderAsync(_ context.Context, instrumentID string, quantity int64, price entity.Quotation,
	direction entity.OrderDirection, accountID string, orderType entity.OrderType, orderID null.String) (*call.Future[*entity.PostOrderResponse], error) {
	if f.err != nil {
		return nil, f.err
	}
	f.posts = append(f.posts, postOrderCall{instrumentID, quantity, price, direction, accountID, orderType, orderID, true})
	return resolved(&entity.PostOrderResponse{OrderID: "exch-async", LotsRequested: quantity}, nil), nil
}

func (f *fakeOrdersAPI) CancelOrder(_ context.Context, accountID, orderID string) (time.Time, error) {
	f.cancels = append(f.cancels, accountID+"/"+orderID)
	return f.cancelledAt, f.err
}

func (f *fakeOrdersAPI) CancelOrderAsync(_ context.Context, accountID, orderID string) (*call.Future[time.Time], error) {
	f.asyncUse++
	f.cancels = append(f.cancels, accountID+"/"+orderID)
	return resolved(f.cancelledAt, f.err), nil
}

func (f *fakeOrdersAPI) GetOrderState(_ context.Context, _, orderID string) (*entity.OrderState, error) {
	return &entity.OrderState{OrderID: orderID}, f.err
}

func (f *fakeOrdersAPI) GetOrderStateAsync(_ context.Context, _, orderID string) *call.Future[*entity.OrderState] {
	f.asyncUse++
	return resolved(&entity.OrderState{OrderID: orderID}, f.err)
}

func (f *fakeOrdersAPI) GetOrders(context.Context, string) ([]*entity.OrderState, error) {
	return f.orders, f.err
}

func (f *fakeOrdersAPI) GetOrdersAsync(context.Context, string) *call.Future[[]*entity.OrderState] {
	f.asyncUse++
	return resolved(f.orders, f.err)
}

func (f *fakeOrdersAPI) ReplaceOrder(_ context.Context, accountID string, quantity int64, price entity.Quotation,
	idempotencyKey null.String, orderID string, priceType *entity.PriceType) (*entity.PostOrderResponse, error) {
	f.replaces = append(f.replaces, replaceOrderCall{accountID, quantity, price, idempotencyKey, orderID, priceType, false})
	return &entity.PostOrderResponse{OrderID: "replaced"}, f.err
}

func (f *fakeOrdersAPI) ReplaceOrderAsync(_ context.Context, accountID string, quantity int64, price entity.Quotation,
	idempotencyKey null.String, orderID string, priceType *entity.PriceType) (*call.Future[*entity.PostOrderResponse], error) {
	f.replaces = append(f.replaces, replaceOrderCall{accountID, quantity, price, idempotencyKey, orderID, priceType, true})
	return resolved(&entity.PostOrderResponse{OrderID: "replaced-async"}, nil), nil
}

// runAction executes action through a cobra tree wired with the real flag bindings.
func runAction(t *testing.T, api ordersAPI, action ordersAction, bind func(*cobra.Command), args ...string) (any, error) {
	t.Helper()

	var (
		result    any
		actionErr error
	)

	parent := &cobra.Command{Use: "orders"}
	BindOrdersFlags(parent)

	child := &cobra.Command{
		Use: "run",
		Run: func(cmd *cobra.Command, _ []string) {
			result, actionErr = action(context.Background(), cmd, api)
		},
	}
	if bind != nil {
		bind(child)
	}
	parent.AddCommand(child)

	parent.SetArgs(append([]string{"run"}, args...))
	parent.SilenceUsage = true
	parent.SilenceErrors = true
	require.NoError(t, parent.Execute())

	return result, actionErr
}

func withConfig(t *testing.T, env *config.EnvConfig) {
	t.Helper()

	previous := config.Env
	config.Env = env
	t.Cleanup(func() { config.Env = previous })
}

func TestPostOrderCommand(t *testing.T) {
	withConfig(t, &config.EnvConfig{AccountID: "acc-cfg"})
	api := &fakeOrdersAPI{}

	result, err := runAction(t, api, postOrder, BindPostOrderFlags,
		"--instrument", "BBG000B9XRY4", "--quantity", "10", "--price", "100.5", "--direction", "sell", "--type", "market")
	require.NoError(t, err)

	resp, ok := result.(*entity.PostOrderResponse)
	require.True(t, ok)
	assert.Equal(t, "exch-1", resp.OrderID)

	require.Len(t, api.posts, 1)
	got := api.posts[0]
	assert.Equal(t, "BBG000B9XRY4", got.instrumentID)
	assert.Equal(t, int64(10), got.quantity)
	assert.Equal(t, entity.Quotation{Units: 100, Nano: 500000000}, got.price)
	assert.Equal(t, entity.OrderDirectionSell, got.direction)
	assert.Equal(t, entity.OrderTypeMarket, got.orderType)
	assert.Equal(t, "acc-cfg", got.accountID)
	assert.False(t, got.orderID.Valid)
	assert.False(t, got.async)
}

func TestPostOrderCommand_AsyncWithOrderID(t *testing.T) {
	withConfig(t, &config.EnvConfig{})
	api := &fakeOrdersAPI{}

	result, err := runAction(t, api, postOrder, BindPostOrderFlags,
		"--account", "acc-flag", "--instrument", "BBG000B9XRY4", "--quantity", "2", "--order-id", "my-id", "--async")
	require.NoError(t, err)
	assert.Equal(t, "exch-async", result.(*entity.PostOrderResponse).OrderID)

	require.Len(t, api.posts, 1)
	assert.True(t, api.posts[0].async)
	assert.Equal(t, "acc-flag", api.posts[0].accountID)
	assert.Equal(t, null.StringFrom("my-id"), api.posts[0].orderID)
	assert.Equal(t, entity.OrderDirectionBuy, api.posts[0].direction)
	assert.Equal(t, entity.OrderTypeLimit, api.posts[0].orderType)
}

func TestPostOrderCommand_ValidationErrorFromAsync(t *testing.T) {
	withConfig(t, &config.EnvConfig{AccountID: "acc-1"})
	api := &fakeOrdersAPI{err: validation.ErrReadonlyModeViolation}

	_, err := runAction(t, api, postOrder, BindPostOrderFlags,
		"--instrument", "BBG000B9XRY4", "--quantity", "1", "--async")
	assert.ErrorIs(t, err, validation.ErrReadonlyModeViolation)
	assert.Empty(t, api.posts)
}

func TestPostOrderCommand_RejectsBadInput(t *testing.T) {
	withConfig(t, &config.EnvConfig{AccountID: "acc-1"})

	_, err := runAction(t, &fakeOrdersAPI{}, postOrder, BindPostOrderFlags,
		"--instrument", "X", "--quantity", "1", "--price", "abc")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = runAction(t, &fakeOrdersAPI{}, postOrder, BindPostOrderFlags,
		"--instrument", "X", "--quantity", "1", "--direction", "hold")
	assert.Error(t, err)
}

func TestCommand_RequiresAccount(t *testing.T) {
	withConfig(t, &config.EnvConfig{})
	api := &fakeOrdersAPI{}

	_, err := runAction(t, api, getOrders, nil)
	assert.ErrorIs(t, err, ErrAccountIDRequired)
}

func TestCancelOrderCommand(t *testing.T) {
	withConfig(t, &config.EnvConfig{AccountID: "acc-1"})
	cancelledAt := time.Unix(1700000000, 0).UTC()

	for _, async := range []bool{false, true} {
		api := &fakeOrdersAPI{cancelledAt: cancelledAt}
		args := []string{"--order-id", "ord-1"}
		if async {
			args = append(args, "--async")
		}

		result, err := runAction(t, api, cancelOrder, BindOrderIDFlags, args...)
		require.NoError(t, err)
		assert.Equal(t, &cancelOrderResult{AccountID: "acc-1", OrderID: "ord-1", Time: cancelledAt}, result)
		assert.Equal(t, []string{"acc-1/ord-1"}, api.cancels)
		if async {
			assert.Equal(t, 1, api.asyncUse)
		}
	}
}

func TestGetOrderStateCommand(t *testing.T) {
	withConfig(t, &config.EnvConfig{AccountID: "acc-1"})
	api := &fakeOrdersAPI{}

	result, err := runAction(t, api, getOrderState, BindOrderIDFlags, "--order-id", "ord-7", "--async")
	require.NoError(t, err)
	assert.Equal(t, "ord-7", result.(*entity.OrderState).OrderID)
	assert.Equal(t, 1, api.asyncUse)
}

func TestGetOrdersCommand_PropagatesRemoteError(t *testing.T) {
	withConfig(t, &config.EnvConfig{AccountID: "acc-1"})
	remoteErr := errors.New("unavailable")

	_, err := runAction(t, &fakeOrdersAPI{err: remoteErr}, getOrders, nil, "--async")
	assert.ErrorIs(t, err, remoteErr)

	orders := []*entity.OrderState{{OrderID: "a"}, {OrderID: "b"}}
	result, err := runAction(t, &fakeOrdersAPI{orders: orders}, getOrders, nil)
	require.NoError(t, err)
	assert.Equal(t, &getOrdersResult{AccountID: "acc-1", Orders: orders}, result)
}

func TestReplaceOrderCommand(t *testing.T) {
	withConfig(t, &config.EnvConfig{AccountID: "acc-1"})

	api := &fakeOrdersAPI{}
	_, err := runAction(t, api, replaceOrder, BindReplaceOrderFlags,
		"--order-id", "ord-1", "--quantity", "3", "--price", "99.9")
	require.NoError(t, err)

	require.Len(t, api.replaces, 1)
	got := api.replaces[0]
	assert.Equal(t, "ord-1", got.orderID)
	assert.Equal(t, int64(3), got.quantity)
	assert.Equal(t, entity.Quotation{Units: 99, Nano: 900000000}, got.price)
	assert.False(t, got.idempotencyKey.Valid)
	assert.Nil(t, got.priceType)

	api = &fakeOrdersAPI{}
	result, err := runAction(t, api, replaceOrder, BindReplaceOrderFlags,
		"--order-id", "ord-1", "--quantity", "3", "--idempotency-key", "idem-1", "--price-type", "currency", "--async")
	require.NoError(t, err)
	assert.Equal(t, "replaced-async", result.(*entity.PostOrderResponse).OrderID)

	got = api.replaces[0]
	assert.True(t, got.async)
	assert.Equal(t, null.StringFrom("idem-1"), got.idempotencyKey)
	require.NotNil(t, got.priceType)
	assert.Equal(t, entity.PriceTypeCurrency, *got.priceType)
}

func TestParsePrice(t *testing.T) {
	price, err := parsePrice(" -1.5 ")
	require.NoError(t, err)
	assert.Equal(t, entity.Quotation{Units: -1, Nano: -500000000}, price)

	_, err = parsePrice("")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCleanup(t *testing.T) {
	closed := make(chan string, 2)

	cleanup(time.Second, map[string]operation{
		"first": func(context.Context) error {
			closed <- "first"
			return nil
		},
		"second": func(context.Context) error {
			closed <- "second"
			return errors.New("already closed")
		},
	})

	assert.Len(t, closed, 2)
}

func TestCleanup_StopsWaitingAfterTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	startedAt := time.Now()
	cleanup(50*time.Millisecond, map[string]operation{
		"stuck": func(context.Context) error {
			<-release
			return nil
		},
	})

	assert.Less(t, time.Since(startedAt), 5*time.Second)
}
