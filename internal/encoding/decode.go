package encoding

import (
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/loomdb/loom/internal/pager"
	"github.com/loomdb/loom/internal/value"
)

var (
	// ErrBadHeader reports malformed stored bytes: a homogeneous-long
	// marker of unusable width (with the marker byte and position
	// attached), a map body of odd length, or a typed literal or
	// foreign value without its space separator.
	ErrBadHeader = errors.New("malformed value header")

	// ErrArrayType reports a homogeneous sequence marker naming a
	// type code with no decoder.
	ErrArrayType = errors.New("illegal datatype in array")
)

// ReadObject decodes the value stored at pos.
func ReadObject(r pager.Reader, pos int64) (value.Value, error) {
	v, _, err := ReadObjectSize(r, pos)
	return v, err
}

// ReadObjectSize decodes the value stored at pos and returns the total
// number of bytes consumed, header and length bytes included.
func ReadObjectSize(r pager.Reader, pos int64) (value.Value, int64, error) {
	b0, err := r.ReadByteAt(pos)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case b0&0x80 == 0:
		data, err := r.ReadBytesAt(pos+1, int(b0))
		if err != nil {
			return nil, 0, err
		}
		return value.NewTextValue(string(data)), int64(b0) + 1, nil

	case b0&0x40 == 0:
		n := int(b0 & 0x3F)
		data, err := r.ReadBytesAt(pos+1, n)
		if err != nil {
			return nil, 0, err
		}
		return value.NewURIValue(string(data)), int64(n) + 1, nil

	case b0&0xE0 == 0xE0:
		ext := b0&longLenBit == 0
		v, n, err := decodePayload(value.Type(b0&typeMask), ext, r, pos+1)
		if err != nil {
			return nil, 0, err
		}
		return v, n + 1, nil

	default:
		// 110 family: a short keyword, or a fixed-width long.
		n := int(b0 & typeMask)
		data, err := r.ReadBytesAt(pos+1, n)
		if err != nil {
			return nil, 0, err
		}
		if b0&0x30 == 0 {
			return value.NewKeywordValue(string(data)), int64(n) + 1, nil
		}
		return value.NewLongValue(signedBE(data)), int64(n) + 1, nil
	}
}

// decodePayload decodes the body of a full-form value. pos is just
// past the header byte; the returned count covers length bytes and
// payload but not the header.
func decodePayload(t value.Type, ext bool, r pager.Reader, pos int64) (value.Value, int64, error) {
	switch t {
	case value.TypeLong:
		b, err := r.ReadBytesAt(pos, 8)
		if err != nil {
			return nil, 0, err
		}
		return value.NewLongValue(signedBE(b)), 8, nil

	case value.TypeDouble:
		b, err := r.ReadBytesAt(pos, 8)
		if err != nil {
			return nil, 0, err
		}
		return value.NewDoubleValue(math.Float64frombits(unsignedBE(b))), 8, nil

	case value.TypeText:
		data, n, err := readFramed(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		return value.NewTextValue(string(data)), n, nil

	case value.TypeURI:
		data, n, err := readFramed(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		return value.NewURIValue(string(data)), n, nil

	case value.TypeKeyword:
		data, n, err := readFramed(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		return value.NewKeywordValue(string(data)), n, nil

	case value.TypeBigint:
		data, n, err := readFramed(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		return value.NewBigintValue(bigIntFromTwos(data)), n, nil

	case value.TypeBigdec:
		data, n, err := readFramed(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		return value.NewBigdecValue(string(data)), n, nil

	case value.TypeDate:
		b, err := r.ReadBytesAt(pos, 8)
		if err != nil {
			return nil, 0, err
		}
		return value.NewDateValue(signedBE(b)), 8, nil

	case value.TypeInstant:
		b, err := r.ReadBytesAt(pos, 12)
		if err != nil {
			return nil, 0, err
		}
		return value.NewInstantFromUnix(signedBE(b[:8]), int32(unsignedBE(b[8:12]))), 12, nil

	case value.TypeUUID:
		b, err := r.ReadBytesAt(pos, 16)
		if err != nil {
			return nil, 0, err
		}
		var u uuid.UUID
		copy(u[0:8], b[8:16])
		copy(u[8:16], b[0:8])
		return value.NewUUIDValue(u), 16, nil

	case value.TypeBlob:
		data, n, err := readFramed(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		return value.NewBlobValue(cp), n, nil

	case value.TypeTyped:
		data, n, err := readFramed(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		dt, lex, ok := strings.Cut(string(data), " ")
		if !ok {
			return nil, 0, errors.Wrapf(ErrBadHeader, "typed literal %q has no datatype separator", data)
		}
		return value.NewTypedValue(dt, lex), n, nil

	case value.TypeSequence:
		elems, n, err := decodeSequence(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		return value.NewSequenceValue(elems), n, nil

	case value.TypeMap:
		elems, n, err := decodeSequence(ext, r, pos)
		if err != nil {
			return nil, 0, err
		}
		if len(elems)%2 != 0 {
			return nil, 0, errors.Wrapf(ErrBadHeader, "map body with %d elements", len(elems))
		}
		pairs := make([]value.Pair, 0, len(elems)/2)
		for i := 0; i < len(elems); i += 2 {
			pairs = append(pairs, value.Pair{Key: elems[i], Value: elems[i+1]})
		}
		return value.NewMapValue(pairs), n, nil
	}

	// No builtin decoder: a foreign value stored as "name lexical".
	data, n, err := readFramed(ext, r, pos)
	if err != nil {
		return nil, 0, err
	}
	name, lex, ok := strings.Cut(string(data), " ")
	if !ok {
		return nil, 0, errors.Wrapf(ErrBadHeader, "foreign value %q has no type separator", data)
	}
	v, err := value.NewForeign(name, lex)
	if err != nil {
		return nil, 0, err
	}

	return v, n, nil
}

// readFramed reads a length field in the requested flavor followed by
// that many payload bytes.
func readFramed(ext bool, r pager.Reader, pos int64) ([]byte, int64, error) {
	l, n, err := readLength(ext, r, pos)
	if err != nil {
		return nil, 0, err
	}

	data, err := r.ReadBytesAt(pos+n, l)
	if err != nil {
		return nil, 0, err
	}

	return data, n + int64(l), nil
}

// readLength decodes a length field: one byte when ext, otherwise a
// 2-byte big-endian value whose set top bit promotes it to the high 15
// bits of a 4-byte length.
func readLength(ext bool, r pager.Reader, pos int64) (int, int64, error) {
	if ext {
		b, err := r.ReadByteAt(pos)
		return int(b), 1, err
	}

	s, err := r.ReadShortAt(pos)
	if err != nil {
		return 0, 0, err
	}
	if s >= 0 {
		return int(s), 2, nil
	}

	lo, err := r.ReadShortAt(pos + 2)
	if err != nil {
		return 0, 0, err
	}

	return int(uint16(s)&0x7FFF)<<16 | int(uint16(lo)), 4, nil
}

// decodeSequence decodes a sequence body. The length field frames the
// whole body including the element-typing marker.
func decodeSequence(ext bool, r pager.Reader, pos int64) ([]value.Value, int64, error) {
	l, n, err := readLength(ext, r, pos)
	if err != nil {
		return nil, 0, err
	}
	if l == 0 {
		return nil, n, nil
	}

	seq0, err := r.ReadByteAt(pos + n)
	if err != nil {
		return nil, 0, err
	}

	body := pos + n + 1
	end := pos + n + int64(l)
	var elems []value.Value

	switch {
	case seq0 == heterogeneousMarker:
		for cur := body; cur < end; {
			v, sz, err := ReadObjectSize(r, cur)
			if err != nil {
				return nil, 0, err
			}
			elems = append(elems, v)
			cur += sz
		}

	case seq0&0xF0 == longNHeader:
		w := int(seq0 & typeMask)
		if w == 0 || w > 8 || (l-1)%w != 0 {
			return nil, 0, errors.Wrapf(ErrBadHeader, "byte %#x at %d: homogeneous long width %d over %d body bytes", seq0, pos+n, w, l-1)
		}
		for cur := body; cur < end; cur += int64(w) {
			b, err := r.ReadBytesAt(cur, w)
			if err != nil {
				return nil, 0, err
			}
			elems = append(elems, value.NewLongValue(signedBE(b)))
		}

	default:
		code := value.Type(seq0 & typeMask)
		if code > value.TypeTyped {
			return nil, 0, errors.Wrapf(ErrArrayType, "type code %d at %d", code, pos+n)
		}
		for cur := body; cur < end; {
			v, sz, err := decodePayload(code, true, r, cur)
			if err != nil {
				return nil, 0, err
			}
			elems = append(elems, v)
			cur += sz
		}
	}

	return elems, n + int64(l), nil
}

// bigIntFromTwos interprets big-endian two's-complement bytes.
func bigIntFromTwos(b []byte) *big.Int {
	x := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		w := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		x.Sub(x, w)
	}

	return x
}

// signedBE reads a big-endian signed integer of up to 8 bytes,
// sign-extending from the top bit.
func signedBE(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}

	x := int64(int8(b[0]))
	for _, c := range b[1:] {
		x = x<<8 | int64(c)
	}

	return x
}

func unsignedBE(b []byte) uint64 {
	var x uint64
	for _, c := range b {
		x = x<<8 | uint64(c)
	}

	return x
}
