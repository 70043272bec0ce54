package encoding

import (
	"strings"
	"unicode/utf8"

	"github.com/loomdb/loom/internal/value"
)

// ComparePrefix orders an in-memory value against the raw bytes of an
// index slot, header byte included, which may hold only the leading
// prefix of the stored value. left is the materialized value,
// leftBody its encoded body without the header, right the slot bytes.
// The result sign matches a comparison against the full stored value
// whenever the slot holds enough bytes to decide it and, for
// string-shaped kinds, the slot starts with a short-form header: the
// text is read from the byte right after the header, so for a
// full-form header the length is taken as 63 and the length bytes are
// read as part of the text.
func ComparePrefix(leftType value.Type, leftHeader byte, leftBody []byte, left value.Value, right []byte) int {
	if leftType.IsTextual() {
		return compareTextualPrefix(left, right)
	}

	// fixed-width big-endian encodings inherit their ordering from a
	// raw byte compare, skipping the right slot's type byte
	n := len(leftBody)
	if m := len(right) - 1; m < n {
		n = m
	}
	for i := 0; i < n; i++ {
		if leftBody[i] != right[1+i] {
			if leftBody[i] < right[1+i] {
				return -1
			}
			return 1
		}
	}

	return 0
}

func compareTextualPrefix(left value.Value, right []byte) int {
	ls := canonicalString(left)

	full := NodeHeaderLength(right)
	rlen := len(right) - 1
	if full < rlen {
		rlen = full
	}

	trunc := partialUTF8Tail(right, rlen+1)
	rs := string(right[1 : 1+rlen-trunc])

	if full <= len(right)-1 {
		// the slot holds the whole string
		return sign(strings.Compare(ls, rs))
	}

	// prefix compare over the code points actually present
	lp := truncateRunes(ls, utf8.RuneCountInString(rs))
	return sign(strings.Compare(lp, rs))
}

// canonicalString reduces a string-shaped value to the form it is
// ordered by: URIs by their spelling, keywords by their name without
// the sigil.
func canonicalString(v value.Value) string {
	switch x := v.(type) {
	case value.TextValue:
		return string(x)
	case value.URIValue:
		return string(x)
	case value.KeywordValue:
		return x.Name()
	}

	return value.AsString(v)
}

// partialUTF8Tail counts the trailing bytes before offset end that
// form an incomplete UTF-8 code unit and must be dropped before
// decoding. The backward scan is bounded at 4 bytes; running off that
// bound means malformed input and drops nothing.
func partialUTF8Tail(b []byte, end int) int {
	for back := 1; back <= 4 && back < end; back++ {
		c := b[end-back]

		if c&0x80 == 0 {
			// single-byte char, nothing dangling
			return 0
		}

		if c&0xC0 == 0x80 {
			// continuation byte, keep scanning for its lead
			continue
		}

		var need int
		switch {
		case c&0xE0 == 0xC0:
			need = 1
		case c&0xF0 == 0xE0:
			need = 2
		case c&0xF8 == 0xF0:
			need = 3
		default:
			// invalid lead, drop everything scanned
			return back
		}

		if back-1 < need {
			// the lead is too close to the end, its unit is truncated
			return back
		}

		return 0
	}

	return 0
}

// truncateRunes returns the first n code points of s.
func truncateRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}

	return s
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}

	return 0
}
