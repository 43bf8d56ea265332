package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const nanoExp = -9

var nanoFactor = decimal.New(1, -nanoExp)

// Quotation is a price as whole units plus billionths. Nano carries the same sign as Units.
type Quotation struct {
	Units int64 `json:"units"`
	Nano  int32 `json:"nano"`
}

type MoneyValue struct {
	Currency string `json:"currency"`
	Units    int64  `json:"units"`
	Nano     int32  `json:"nano"`
}

// QuotationFromDecimal drops anything finer than a nano.
func QuotationFromDecimal(value decimal.Decimal) Quotation {
	units := value.Truncate(0)
	nano := value.Sub(units).Mul(nanoFactor).Truncate(0)

	return Quotation{
		Units: units.IntPart(),
		Nano:  int32(nano.IntPart()),
	}
}

func (q Quotation) Decimal() decimal.Decimal {
	return decimal.NewFromInt(q.Units).Add(decimal.New(int64(q.Nano), nanoExp))
}

func (q Quotation) String() string {
	return q.Decimal().String()
}

func (m MoneyValue) Decimal() decimal.Decimal {
	return Quotation{Units: m.Units, Nano: m.Nano}.Decimal()
}

func (m MoneyValue) String() string {
	if m.Currency == "" {
		return m.Decimal().String()
	}
	return m.Decimal().String() + " " + m.Currency
}

// TimestampToTime decodes a wire timestamp. A missing timestamp decodes to the zero time.
func TimestampToTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}

	return ts.AsTime()
}
