package value

import (
	"math/big"

	"github.com/cockroachdb/errors"
)

var _ Value = NewBigintValue(big.NewInt(0))

// BigIntValue is an arbitrary-precision signed integer.
type BigIntValue big.Int

func NewBigintValue(x *big.Int) *BigIntValue {
	return (*BigIntValue)(x)
}

func NewBigintFromString(s string) (*BigIntValue, error) {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid integer literal %q", s)
	}

	return (*BigIntValue)(x), nil
}

func (v *BigIntValue) Type() Type {
	return TypeBigint
}

func (v *BigIntValue) V() any {
	return (*big.Int)(v)
}

func (v *BigIntValue) Int() *big.Int {
	return (*big.Int)(v)
}

func (v *BigIntValue) String() string {
	return (*big.Int)(v).String()
}

var _ Value = NewBigdecValue("0")

// BigDecValue is an arbitrary-precision decimal, held in its canonical
// string form. Keeping the lexical form preserves scale exactly
// ("1.10" and "1.1" stay distinct values) and round-trips byte for
// byte through the codec.
type BigDecValue string

func NewBigdecValue(canonical string) BigDecValue {
	return BigDecValue(canonical)
}

func (v BigDecValue) Type() Type {
	return TypeBigdec
}

func (v BigDecValue) V() any {
	return string(v)
}

// Rat parses the decimal into a rational for arithmetic. It reports
// false when the lexical form is not a valid decimal.
func (v BigDecValue) Rat() (*big.Rat, bool) {
	return new(big.Rat).SetString(string(v))
}

func (v BigDecValue) String() string {
	return string(v)
}
