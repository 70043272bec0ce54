package value

import (
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Value is implemented by every type of the loom type system.
type Value interface {
	Type() Type

	// V returns the underlying Go representation. It is meant for
	// generic plumbing; typed code should use the As* helpers.
	V() any

	String() string
}

func AsInt64(v Value) int64 {
	lv, ok := v.(LongValue)
	if ok {
		return int64(lv)
	}

	return v.V().(int64)
}

func AsFloat64(v Value) float64 {
	dv, ok := v.(DoubleValue)
	if ok {
		return float64(dv)
	}

	return v.V().(float64)
}

func AsString(v Value) string {
	switch x := v.(type) {
	case TextValue:
		return string(x)
	case URIValue:
		return string(x)
	case KeywordValue:
		return string(x)
	}

	return v.V().(string)
}

func AsBool(v Value) bool {
	bv, ok := v.(BoolValue)
	if ok {
		return bool(bv)
	}

	return v.V().(bool)
}

func AsByteSlice(v Value) []byte {
	bv, ok := v.(BlobValue)
	if ok {
		return bv
	}

	return v.V().([]byte)
}

func AsTime(v Value) time.Time {
	switch x := v.(type) {
	case DateValue:
		return x.Time()
	case InstantValue:
		return x.Time()
	}

	return v.V().(time.Time)
}

// Equal reports deep structural equality. Sequences compare
// element-wise, maps compare as ordered pair lists.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case SequenceValue:
		return slices.EqualFunc(x, b.(SequenceValue), Equal)
	case MapValue:
		y := b.(MapValue)
		return slices.EqualFunc(x, y, func(p, q Pair) bool {
			return Equal(p.Key, q.Key) && Equal(p.Value, q.Value)
		})
	case *BigIntValue:
		return (*big.Int)(x).Cmp((*big.Int)(b.(*BigIntValue))) == 0
	case BlobValue:
		return slices.Equal(x, b.(BlobValue))
	case UUIDValue:
		return uuid.UUID(x) == uuid.UUID(b.(UUIDValue))
	}

	if fa, ok := a.(Foreign); ok {
		fb, ok := b.(Foreign)
		return ok && fa.ForeignType() == fb.ForeignType() && fa.Lexical() == fb.Lexical()
	}

	return a == b
}
