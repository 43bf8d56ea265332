package transport

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// errSkipField marks a field the decoder does not know or whose wire type
// does not match; such fields are skipped like unknown protobuf fields.
var errSkipField = errors.New("skip field")

type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// appendInt32 sign extends negative values to ten bytes like protobuf int32.
func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendInt64(b, num, int64(v))
}

func appendEnum[E ~int32](b []byte, num protowire.Number, v E) []byte {
	return appendInt32(b, num, int32(v))
}

func appendMessage(b []byte, num protowire.Number, payload []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

func decodeMessage(b []byte, field fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := field(num, typ, b)
		if errors.Is(err, errSkipField) {
			n = protowire.ConsumeFieldValue(num, typ, b)
		} else if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}

	return nil
}

func readString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, errSkipField
	}

	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	*dst = v
	return n, nil
}

func readInt64(typ protowire.Type, b []byte, dst *int64) (int, error) {
	if typ != protowire.VarintType {
		return 0, errSkipField
	}

	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	*dst = int64(v)
	return n, nil
}

func readInt32(typ protowire.Type, b []byte, dst *int32) (int, error) {
	var v int64
	n, err := readInt64(typ, b, &v)
	if err != nil {
		return n, err
	}

	*dst = int32(v)
	return n, nil
}

func readEnum[E ~int32](typ protowire.Type, b []byte, dst *E) (int, error) {
	var v int32
	n, err := readInt32(typ, b, &v)
	if err != nil {
		return n, err
	}

	*dst = E(v)
	return n, nil
}

func readMessage(typ protowire.Type, b []byte, decode func([]byte) error) (int, error) {
	if typ != protowire.BytesType {
		return 0, errSkipField
	}

	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	if err := decode(v); err != nil {
		return 0, err
	}

	return n, nil
}
