package encoding

import (
	"github.com/loomdb/loom/internal/value"
)

// Whole-ID boolean constants. They live in the otherwise unused 0xB
// nibble and are matched before any nibble dispatch.
const (
	FalseID int64 = -0x5000000000000000
	TrueID  int64 = -0x4800000000000000
)

// Inline type nibbles, held in bits 60-63 of an encapsulated ID.
const (
	nibbleLong    = 0x8
	nibbleKeyword = 0x9
	nibbleInstant = 0xA
	nibbleDate    = 0xC
	nibbleNode    = 0xD
	nibbleString  = 0xE
)

const (
	// Inline strings and keywords keep their byte length in bits
	// 56-59 and pack up to 7 bytes MSB-first from bit 48 downward.
	sbytesShift    = 48
	lenNibbleShift = 56

	maxInlineBytes = 7

	low60Mask uint64 = 0x0FFF_FFFF_FFFF_FFFF
	signBit60 uint64 = 0x0800_0000_0000_0000
	signExt60 uint64 = 0xF000_0000_0000_0000
)

// Unencapsulate extracts the value packed inline into id. It reports
// false for every non-negative id and every unused nibble; such ids
// must be treated as storage pointers.
func Unencapsulate(id int64) (value.Value, bool) {
	if id >= 0 {
		return nil, false
	}

	switch id {
	case FalseID:
		return value.NewBoolValue(false), true
	case TrueID:
		return value.NewBoolValue(true), true
	}

	switch uint64(id) >> 60 {
	case nibbleLong:
		return value.NewLongValue(signExtend60(id)), true
	case nibbleDate:
		return value.NewDateValue(signExtend60(id)), true
	case nibbleInstant:
		ms := signExtend60(id)
		secs, rem := ms/1000, ms%1000
		if rem < 0 {
			secs--
			rem += 1000
		}
		return value.NewInstantFromUnix(secs, int32(rem)*1_000_000), true
	case nibbleString:
		s, ok := inlineString(id)
		if !ok {
			return nil, false
		}
		return value.NewTextValue(s), true
	case nibbleKeyword:
		s, ok := inlineString(id)
		if !ok {
			return nil, false
		}
		return value.NewKeywordValue(s), true
	case nibbleNode:
		return value.NewNodeValue(int64(uint64(id) & low60Mask)), true
	}

	return nil, false
}

// Encapsulate packs v into a 64-bit ID when it fits inline. Every
// returned ID has its sign bit set, keeping the inline space disjoint
// from storage offsets.
func Encapsulate(v value.Value) (int64, bool) {
	switch x := v.(type) {
	case value.BoolValue:
		if bool(x) {
			return TrueID, true
		}
		return FalseID, true

	case value.LongValue:
		if !fits60(int64(x)) {
			return 0, false
		}
		return packLow60(nibbleLong, int64(x)), true

	case value.DateValue:
		if !fits60(int64(x)) {
			return 0, false
		}
		return packLow60(nibbleDate, int64(x)), true

	case value.InstantValue:
		if !x.WholeMillis() || !fits60(x.Millis()) {
			return 0, false
		}
		return packLow60(nibbleInstant, x.Millis()), true

	case value.TextValue:
		return packInlineString(nibbleString, string(x))

	case value.KeywordValue:
		return packInlineString(nibbleKeyword, x.Name())

	case value.NodeValue:
		if x < 0 || uint64(x) > low60Mask {
			return 0, false
		}
		return packLow60(nibbleNode, int64(x)), true
	}

	return 0, false
}

// IsEncapsulatedNode reports whether id belongs to the referential
// inline family: internal node references and short keywords.
func IsEncapsulatedNode(id int64) bool {
	nib := uint64(id) >> 60
	return nib == nibbleNode || nib == nibbleKeyword
}

func fits60(n int64) bool {
	return n >= -(1<<59) && n < 1<<59
}

// signExtend60 recovers a signed value from the low 60 bits. The sign
// test and OR-mask are explicit: an arithmetic shift over the whole ID
// would drag the type nibble into the result.
func signExtend60(id int64) int64 {
	low := uint64(id) & low60Mask
	if low&signBit60 != 0 {
		low |= signExt60
	}

	return int64(low)
}

func packLow60(nibble uint64, n int64) int64 {
	return int64(nibble<<60 | uint64(n)&low60Mask)
}

func packInlineString(nibble uint64, s string) (int64, bool) {
	if len(s) > maxInlineBytes {
		return 0, false
	}

	u := nibble<<60 | uint64(len(s))<<lenNibbleShift
	for i := 0; i < len(s); i++ {
		u |= uint64(s[i]) << (sbytesShift - 8*i)
	}

	return int64(u), true
}

func inlineString(id int64) (string, bool) {
	n := int(uint64(id) >> lenNibbleShift & 0xF)
	if n > maxInlineBytes {
		return "", false
	}

	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(uint64(id) >> (sbytesShift - 8*i))
	}

	return string(b), true
}
