package encoding_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loomdb/loom/internal/encoding"
	"github.com/loomdb/loom/internal/value"
)

// comparePrefix splits an encoded value into the arguments the
// comparator takes: its declared type, header byte and body.
func comparePrefix(t *testing.T, left value.Value, right []byte) int {
	t.Helper()

	enc := mustEncode(t, left)
	return encoding.ComparePrefix(encoding.TypeInfo(enc[0]), enc[0], enc[1:], left, right)
}

func TestComparePrefixFullStrings(t *testing.T) {
	tests := []struct {
		left, right string
		want        int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"b", "a", 1},
		{"", "a", -1},
		{"a", "", 1},
		{"", "", 0},
		{"abc", "abd", -1},
		{"abc", "ab", 1},
		{"ab", "abc", -1},
		{"héllo", "héllo", 0},
		{"hz", "héllo", -1},
		{"héllo", "hz", 1},
	}

	for _, tt := range tests {
		t.Run(tt.left+"/"+tt.right, func(t *testing.T) {
			right := mustEncode(t, value.NewTextValue(tt.right))
			got := comparePrefix(t, value.NewTextValue(tt.left), right)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestComparePrefixAgreesWithFullCompare(t *testing.T) {
	words := []string{"", "a", "ab", "abc", "b", "ba", "héllo", "hz", "zzz"}

	for _, l := range words {
		for _, r := range words {
			want := sign(strings.Compare(l, r))
			right := mustEncode(t, value.NewTextValue(r))
			got := comparePrefix(t, value.NewTextValue(l), right)
			require.Equal(t, want, got, "cmp(%q, %q)", l, r)
		}
	}
}

func TestComparePrefixTruncated(t *testing.T) {
	// a stored string cut in the middle of a 2-byte code unit: the
	// slot declares the full length but holds only a prefix
	full := "héllo world"
	enc := mustEncode(t, value.NewTextValue(full))

	// cut inside 'é' (bytes 2 and 3 of the payload)
	cut := enc[:3]

	tests := []struct {
		name string
		left string
		want int
	}{
		{"decided before truncation high", "z", 1},
		{"decided before truncation low", "a", -1},
		{"equal up to the cut", "h", 0},
		{"undecidable at the cut", "hz", 0},
		{"prefix equal", "héllo world", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := comparePrefix(t, value.NewTextValue(tt.left), cut)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestComparePrefixURIsAndKeywords(t *testing.T) {
	ua := value.NewURIValue("http://example.com/a")
	ub := value.NewURIValue("http://example.com/b")

	right := mustEncode(t, ub)
	require.Equal(t, -1, comparePrefix(t, ua, right))
	require.Equal(t, 0, comparePrefix(t, ub, right))

	ka := value.NewKeywordValue(":aaa/name")
	kb := value.NewKeywordValue(":bbb/name")

	right = mustEncode(t, kb)
	require.Equal(t, -1, comparePrefix(t, ka, right))
	require.Equal(t, 1, comparePrefix(t, kb, mustEncode(t, ka)))
}

func TestComparePrefixFixedWidth(t *testing.T) {
	tests := []struct {
		name        string
		left, right value.Value
		want        int
	}{
		{"longs", value.NewLongValue(5), value.NewLongValue(7), -1},
		{"longs equal", value.NewLongValue(5), value.NewLongValue(5), 0},
		{"longs reversed", value.NewLongValue(7), value.NewLongValue(5), 1},
		{"negative longs", value.NewLongValue(-7), value.NewLongValue(-5), -1},
		{"dates", value.NewDateValue(1000), value.NewDateValue(2000), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			right := mustEncode(t, tt.right)
			require.Equal(t, tt.want, comparePrefix(t, tt.left, right))
		})
	}
}

func TestComparePrefixBlobPrefix(t *testing.T) {
	left := value.NewBlobValue([]byte{1, 2, 3, 4})
	right := mustEncode(t, value.NewBlobValue([]byte{1, 2, 3, 4}))

	// equal through the held prefix reads as 0
	require.Equal(t, 0, comparePrefix(t, left, right[:4]))
	require.Equal(t, 0, comparePrefix(t, left, right))

	smaller := value.NewBlobValue([]byte{1, 2, 2, 9})
	require.Equal(t, -1, comparePrefix(t, smaller, right[:5]))
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
