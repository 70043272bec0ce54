// Package encoding implements the durable value codec: the tagged
// byte format values are stored in, the bit-packed 64-bit inline ID
// scheme for small values, and the prefix comparator used by index
// nodes that hold only the leading bytes of a stored value.
//
// The header byte at a value's position encodes both type and length
// scheme through its high bits:
//
//	0xxxxxxx  short string, length in the low 7 bits
//	10xxxxxx  short URI, length in the low 6 bits
//	1100xxxx  short keyword, length in the low 4 bits
//	1101xxxx  big-endian signed long, width in the low nibble;
//	          doubles as the homogeneous-long marker inside sequences
//	1110tttt  full form, 1-byte length follows
//	1111tttt  full form, 2-byte big-endian length follows; a set top
//	          bit promotes it to a 4-byte (31-bit) length
//
// All multi-byte integers are big-endian, strings are UTF-8, length
// fields count payload only.
package encoding

import (
	"github.com/loomdb/loom/internal/value"
)

const (
	// Maximum payload lengths of the short header forms.
	MaxShortString  = 0x7F
	MaxShortURI     = 0x3F
	MaxShortKeyword = 0x0F

	shortURIHeader     byte = 0x80
	shortKeywordHeader byte = 0xC0

	// longNHeader marks a big-endian signed long of 1-8 bytes, the
	// width in the low nibble.
	longNHeader byte = 0xD0

	fullHeader byte = 0xE0

	// longLenBit clear means a 1-byte length follows the header,
	// set means a 2- or 4-byte length.
	longLenBit byte = 0x10

	typeMask byte = 0x0F

	// heterogeneousMarker opens a sequence body whose elements each
	// carry their own header.
	heterogeneousMarker byte = 0
)

const (
	maxLen1 = 0xFF
	maxLen2 = 0x7FFF
	maxLen4 = 0x7FFFFFFF
)

// TypeInfo names the canonical type of a header byte for comparator
// dispatch. It is total: every byte maps to some type.
func TypeInfo(b byte) value.Type {
	switch {
	case b&0x80 == 0:
		return value.TypeText
	case b&0x40 == 0:
		return value.TypeURI
	case b&0xE0 == 0xE0:
		return value.Type(b & typeMask)
	case b&0x30 == 0:
		return value.TypeKeyword
	}

	return value.Type(b & typeMask)
}

// NodeHeaderLength reports the payload length declared by the header
// at the start of buf, without reading past the header byte. For the
// full form the length lives in separate length bytes, so a
// conservative lower bound of 63 is reported instead: longer than any
// index slot, which is all a caller needs to know.
func NodeHeaderLength(buf []byte) int {
	b := buf[0]
	switch {
	case b&0x80 == 0:
		return int(b)
	case b&0x40 == 0:
		return int(b & 0x3F)
	case b&0xE0 == 0xE0:
		return 63
	}

	return int(b & typeMask)
}
