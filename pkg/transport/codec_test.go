package transport

import (
	"testing"

	"github.com/krobus00/invest-orders/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func fieldNumbers(t *testing.T, payload []byte) []protowire.Number {
	t.Helper()

	var nums []protowire.Number
	for len(payload) > 0 {
		num, _, n := protowire.ConsumeField(payload)
		require.GreaterOrEqual(t, n, 0, "payload is not valid protobuf: %v", protowire.ParseError(n))
		nums = append(nums, num)
		payload = payload[n:]
	}
	return nums
}

func TestCodec_CancelOrderRequestWireBytes(t *testing.T) {
	payload, err := Codec{}.Marshal(&entity.CancelOrderRequest{AccountID: "acc-1", OrderID: "ord-1"})
	require.NoError(t, err)

	want := []byte{0x0a, 0x05, 'a', 'c', 'c', '-', '1', 0x12, 0x05, 'o', 'r', 'd', '-', '1'}
	assert.Equal(t, want, payload)
	assert.Equal(t, []protowire.Number{1, 2}, fieldNumbers(t, payload))
}

func TestCodec_ReplaceOrderRequestFieldNumbers(t *testing.T) {
	payload, err := Codec{}.Marshal(&entity.ReplaceOrderRequest{
		AccountID:      "acc-1",
		OrderID:        "ord-1",
		IdempotencyKey: "idem-1",
		Quantity:       3,
		Price:          &entity.Quotation{Units: 10},
		PriceType:      entity.PriceTypeCurrency,
	})
	require.NoError(t, err)
	assert.Equal(t, []protowire.Number{1, 6, 7, 11, 12, 13}, fieldNumbers(t, payload))

	payload, err = Codec{}.Marshal(&entity.ReplaceOrderRequest{AccountID: "acc-1", OrderID: "ord-1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, []protowire.Number{1, 6, 11}, fieldNumbers(t, payload), "empty idempotency key and price are omitted")
}

func TestCodec_PostOrderRequestKeepsSignedValues(t *testing.T) {
	req := &entity.PostOrderRequest{
		InstrumentID: "BBG000B9XRY4",
		Quantity:     10,
		Price:        &entity.Quotation{Units: -1, Nano: -500000000},
		Direction:    entity.OrderDirectionSell,
		AccountID:    "acc-1",
		OrderType:    entity.OrderTypeLimit,
		OrderID:      "4f0c9b5e-1b2a-4c1e-9d47-0a3b5c6d7e8f",
	}

	payload, err := Codec{}.Marshal(req)
	require.NoError(t, err)
	assert.Equal(t, []protowire.Number{2, 3, 4, 5, 6, 7, 8}, fieldNumbers(t, payload))

	got := new(entity.PostOrderRequest)
	require.NoError(t, Codec{}.Unmarshal(payload, got))
	assert.Equal(t, req, got)
}

func TestCodec_DecodesTimestampEncodedByProto(t *testing.T) {
	ts := &timestamppb.Timestamp{Seconds: 1700000000, Nanos: 250}
	encoded, err := proto.Marshal(ts)
	require.NoError(t, err)

	payload := protowire.AppendTag(nil, 1, protowire.BytesType)
	payload = protowire.AppendBytes(payload, encoded)

	got := new(entity.CancelOrderResponse)
	require.NoError(t, Codec{}.Unmarshal(payload, got))
	require.NotNil(t, got.Time)
	assert.True(t, proto.Equal(ts, got.Time))
}

func TestCodec_SkipsUnknownFields(t *testing.T) {
	stage := protowire.AppendTag(nil, 2, protowire.VarintType)
	stage = protowire.AppendVarint(stage, 4)
	stage = protowire.AppendTag(stage, 4, protowire.BytesType) // execution_time
	stage = protowire.AppendBytes(stage, []byte{0x08, 0x01})

	payload := protowire.AppendTag(nil, 1, protowire.BytesType)
	payload = protowire.AppendString(payload, "ord-1")
	payload = protowire.AppendTag(payload, 14, protowire.BytesType)
	payload = protowire.AppendBytes(payload, stage)
	payload = protowire.AppendTag(payload, 99, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 7)
	payload = protowire.AppendTag(payload, 3, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 10)

	got := new(entity.OrderState)
	require.NoError(t, Codec{}.Unmarshal(payload, got))
	assert.Equal(t, "ord-1", got.OrderID)
	assert.Equal(t, int64(10), got.LotsRequested)
	require.Len(t, got.Stages, 1)
	assert.Equal(t, int64(4), got.Stages[0].Quantity)
}

func TestCodec_GetOrdersResponseKeepsOrdering(t *testing.T) {
	resp := &entity.GetOrdersResponse{Orders: []*entity.OrderState{
		{OrderID: "ord-1", ExecutionReportStatus: entity.ExecutionReportStatusNew},
		{OrderID: "ord-2", InitialOrderPrice: &entity.MoneyValue{Currency: "rub", Units: 100, Nano: 5}},
	}}

	payload, err := Codec{}.Marshal(resp)
	require.NoError(t, err)

	got := new(entity.GetOrdersResponse)
	require.NoError(t, Codec{}.Unmarshal(payload, got))
	assert.Equal(t, resp, got)
}

func TestCodec_Errors(t *testing.T) {
	_, err := Codec{}.Marshal(struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedMessage)

	assert.ErrorIs(t, Codec{}.Unmarshal(nil, new(string)), ErrUnsupportedMessage)

	truncated := []byte{0x0a, 0x05, 'a', 'c'}
	assert.Error(t, Codec{}.Unmarshal(truncated, new(entity.CancelOrderRequest)))

	jsonPayload := []byte(`{"account_id":"acc-1"}`)
	assert.Error(t, Codec{}.Unmarshal(jsonPayload, new(entity.CancelOrderRequest)))

	assert.Equal(t, "proto", Codec{}.Name())
}
