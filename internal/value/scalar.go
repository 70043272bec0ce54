package value

import (
	"strconv"
)

var _ Value = NewLongValue(0)

// LongValue is a signed 64-bit integer.
type LongValue int64

func NewLongValue(x int64) LongValue {
	return LongValue(x)
}

func (v LongValue) Type() Type {
	return TypeLong
}

func (v LongValue) V() any {
	return int64(v)
}

func (v LongValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

var _ Value = NewDoubleValue(0)

// DoubleValue is an IEEE-754 double.
type DoubleValue float64

func NewDoubleValue(x float64) DoubleValue {
	return DoubleValue(x)
}

func (v DoubleValue) Type() Type {
	return TypeDouble
}

func (v DoubleValue) V() any {
	return float64(v)
}

func (v DoubleValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

var _ Value = NewBoolValue(false)

// BoolValue exists only as an encapsulated ID; it has no stored byte
// representation.
type BoolValue bool

func NewBoolValue(x bool) BoolValue {
	return BoolValue(x)
}

func (v BoolValue) Type() Type {
	return TypeBool
}

func (v BoolValue) V() any {
	return bool(v)
}

func (v BoolValue) String() string {
	return strconv.FormatBool(bool(v))
}

var _ Value = NewNodeValue(0)

// NodeValue references a node slot in the graph layer. Like booleans
// it only ever travels inline, packed into an encapsulated ID.
type NodeValue int64

func NewNodeValue(idx int64) NodeValue {
	return NodeValue(idx)
}

func (v NodeValue) Type() Type {
	return TypeNode
}

func (v NodeValue) V() any {
	return int64(v)
}

func (v NodeValue) String() string {
	return "#node[" + strconv.FormatInt(int64(v), 10) + "]"
}
