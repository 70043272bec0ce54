package encoding_test

import (
	"testing"

	"github.com/loomdb/loom/internal/encoding"
	"github.com/loomdb/loom/internal/pager"
	"github.com/loomdb/loom/internal/value"
)

func benchValue() value.Value {
	return value.NewMapValue([]value.Pair{
		{Key: value.NewKeywordValue(":id"), Value: value.NewLongValue(42)},
		{Key: value.NewKeywordValue(":name"), Value: value.NewTextValue("a benchmark value")},
		{Key: value.NewKeywordValue(":tags"), Value: value.NewSequenceValue([]value.Value{
			value.NewLongValue(1), value.NewLongValue(2), value.NewLongValue(3),
		})},
	})
}

func BenchmarkEncodeValue(b *testing.B) {
	v := benchValue()
	var buf []byte

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = buf[:0]
		var err error
		buf, err = encoding.EncodeValue(buf, v)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadObject(b *testing.B) {
	enc, err := encoding.EncodeValue(nil, benchValue())
	if err != nil {
		b.Fatal(err)
	}
	r := pager.NewBuffer(enc)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := encoding.ReadObject(r, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncapsulate(b *testing.B) {
	v := value.NewTextValue("inline")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := encoding.Encapsulate(v); !ok {
			b.Fatal("should fit inline")
		}
	}
}
