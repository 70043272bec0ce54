package encoding

import (
	"math"
	"math/big"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"

	"github.com/loomdb/loom/internal/value"
)

// EncodeValue appends the stored representation of v to dst.
// Re-encoding a decoded value reproduces the original bytes.
func EncodeValue(dst []byte, v value.Value) ([]byte, error) {
	switch x := v.(type) {
	case value.TextValue:
		if len(x) <= MaxShortString {
			dst = append(dst, byte(len(x)))
			return append(dst, x...), nil
		}
	case value.URIValue:
		if len(x) <= MaxShortURI {
			dst = append(dst, shortURIHeader|byte(len(x)))
			return append(dst, x...), nil
		}
	case value.KeywordValue:
		if len(x) <= MaxShortKeyword {
			dst = append(dst, shortKeywordHeader|byte(len(x)))
			return append(dst, x...), nil
		}
	case value.BoolValue, value.NodeValue:
		return nil, errors.Errorf("%s values only exist as encapsulated IDs", v.Type())
	}

	p, fixed, err := payload(v)
	if err != nil {
		return nil, err
	}

	code := byte(v.Type()) & typeMask
	if fixed {
		dst = append(dst, fullHeader|code)
		return append(dst, p...), nil
	}

	dst, err = appendHeaderLength(dst, code, len(p))
	if err != nil {
		return nil, err
	}

	return append(dst, p...), nil
}

// payload builds the body of a value without its header. fixed reports
// that the body has a type-implied width and carries no length field.
func payload(v value.Value) (p []byte, fixed bool, err error) {
	switch x := v.(type) {
	case value.LongValue:
		return appendBE(nil, uint64(x), 8), true, nil
	case value.DoubleValue:
		return appendBE(nil, math.Float64bits(float64(x)), 8), true, nil
	case value.TextValue:
		return []byte(x), false, nil
	case value.URIValue:
		return []byte(x), false, nil
	case value.KeywordValue:
		return []byte(x), false, nil
	case *value.BigIntValue:
		return appendTwosComplement(nil, x.Int()), false, nil
	case value.BigDecValue:
		return []byte(x), false, nil
	case value.DateValue:
		return appendBE(nil, uint64(int64(x)), 8), true, nil
	case value.InstantValue:
		p = appendBE(nil, uint64(x.Seconds), 8)
		return appendBE(p, uint32(x.Nanos), 4), true, nil
	case value.UUIDValue:
		u := x.UUID()
		p = append(p, u[8:16]...)
		return append(p, u[0:8]...), true, nil
	case value.BlobValue:
		return x, false, nil
	case value.TypedValue:
		return []byte(x.Datatype + " " + x.Lexical), false, nil
	case value.SequenceValue:
		p, err = encodeSequenceBody(x)
		return p, false, err
	case value.MapValue:
		flat := make([]value.Value, 0, len(x)*2)
		for _, pair := range x {
			flat = append(flat, pair.Key, pair.Value)
		}
		p, err = encodeSequenceBody(flat)
		return p, false, err
	}

	if f, ok := v.(value.Foreign); ok {
		return []byte(f.ForeignType() + " " + f.Lexical()), false, nil
	}

	return nil, false, errors.Errorf("cannot encode %s value", v.Type())
}

// appendHeaderLength writes a full-form header and the smallest length
// flavor that frames n payload bytes.
func appendHeaderLength(dst []byte, code byte, n int) ([]byte, error) {
	switch {
	case n <= maxLen1:
		return append(dst, fullHeader|code, byte(n)), nil
	case n <= maxLen2:
		return append(dst, fullHeader|longLenBit|code, byte(n>>8), byte(n)), nil
	case n <= maxLen4:
		return append(dst, fullHeader|longLenBit|code,
			byte(n>>24)|0x80, byte(n>>16), byte(n>>8), byte(n)), nil
	}

	return nil, errors.Errorf("value of %d bytes exceeds the maximum encodable length", n)
}

// encodeSequenceBody builds a sequence body including its leading
// element-typing marker. Uniform longs take the fixed-width form,
// elements of one kind with small payloads share a single tagged
// marker, anything else falls back to per-element headers.
func encodeSequenceBody(elems []value.Value) ([]byte, error) {
	if w, ok := uniformLongWidth(elems); ok {
		body := make([]byte, 0, 1+len(elems)*w)
		body = append(body, longNHeader|byte(w))
		for _, e := range elems {
			body = appendBE(body, uint64(int64(e.(value.LongValue))), w)
		}
		return body, nil
	}

	if code, ok := uniformTaggedCode(elems); ok {
		body := []byte{fullHeader | code}
		for _, e := range elems {
			p, fixed, err := payload(e)
			if err != nil {
				return nil, err
			}
			if !fixed {
				body = append(body, byte(len(p)))
			}
			body = append(body, p...)
		}
		return body, nil
	}

	body := []byte{heterogeneousMarker}
	var err error
	for _, e := range elems {
		body, err = EncodeValue(body, e)
		if err != nil {
			return nil, err
		}
	}

	return body, nil
}

// uniformLongWidth reports the fixed byte width covering every element
// when all of them are longs.
func uniformLongWidth(elems []value.Value) (int, bool) {
	if len(elems) == 0 {
		return 0, false
	}

	w := 1
	for _, e := range elems {
		lv, ok := e.(value.LongValue)
		if !ok {
			return 0, false
		}
		if ew := longWidth(int64(lv)); ew > w {
			w = ew
		}
	}

	return w, true
}

func longWidth(n int64) int {
	for w := 1; w < 8; w++ {
		lo := int64(-1) << (8*w - 1)
		if n >= lo && n <= -lo-1 {
			return w
		}
	}

	return 8
}

// uniformTaggedCode reports the shared type code when every element
// has the same kind and fits a headerless 1-byte-length body.
func uniformTaggedCode(elems []value.Value) (byte, bool) {
	if len(elems) == 0 {
		return 0, false
	}

	t := elems[0].Type()
	switch t {
	case value.TypeDouble, value.TypeDate, value.TypeInstant, value.TypeUUID,
		value.TypeText, value.TypeURI, value.TypeKeyword, value.TypeBigdec, value.TypeBlob:
	default:
		return 0, false
	}

	for _, e := range elems {
		if e.Type() != t {
			return 0, false
		}

		switch x := e.(type) {
		case value.TextValue:
			if len(x) > maxLen1 {
				return 0, false
			}
		case value.URIValue:
			if len(x) > maxLen1 {
				return 0, false
			}
		case value.KeywordValue:
			if len(x) > maxLen1 {
				return 0, false
			}
		case value.BigDecValue:
			if len(x) > maxLen1 {
				return 0, false
			}
		case value.BlobValue:
			if len(x) > maxLen1 {
				return 0, false
			}
		}
	}

	return byte(t) & typeMask, true
}

// appendTwosComplement writes the minimal big-endian two's-complement
// form of x.
func appendTwosComplement(dst []byte, x *big.Int) []byte {
	if x.Sign() >= 0 {
		b := x.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			dst = append(dst, 0)
		}
		return append(dst, b...)
	}

	n := (x.BitLen() + 7) / 8
	if n == 0 {
		n = 1
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(8*n-1))
	if x.Cmp(bound.Neg(bound)) < 0 {
		n++
	}

	tc := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	tc.Add(tc, x)
	b := tc.Bytes()
	for i := len(b); i < n; i++ {
		dst = append(dst, 0xFF)
	}

	return append(dst, b...)
}

func appendBE[T constraints.Unsigned](dst []byte, x T, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, byte(x>>(8*i)))
	}

	return dst
}
