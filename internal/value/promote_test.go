package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/loomdb/loom/internal/value"
)

func TestPromote(t *testing.T) {
	t.Run("date", func(t *testing.T) {
		v, err := value.Promote(value.NewTypedValue(value.XSDDate, "2021-06-15"))
		require.NoError(t, err)

		d, ok := v.(value.DateValue)
		require.True(t, ok)
		require.Equal(t, time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), d.Time())
	})

	t.Run("dateTime", func(t *testing.T) {
		v, err := value.Promote(value.NewTypedValue(value.XSDDateTime, "2021-06-15 12:30:45"))
		require.NoError(t, err)

		in, ok := v.(value.InstantValue)
		require.True(t, ok)
		require.Equal(t, time.Date(2021, 6, 15, 12, 30, 45, 0, time.UTC), in.Time())
	})

	t.Run("long", func(t *testing.T) {
		v, err := value.Promote(value.NewTypedValue(value.XSDLong, "-42"))
		require.NoError(t, err)
		require.Equal(t, int64(-42), value.AsInt64(v))
	})

	t.Run("unknown datatype passes through", func(t *testing.T) {
		tv := value.NewTypedValue("http://example.com/custom", "payload")
		v, err := value.Promote(tv)
		require.NoError(t, err)
		require.Equal(t, tv, v)
	})

	t.Run("invalid lexical form", func(t *testing.T) {
		_, err := value.Promote(value.NewTypedValue(value.XSDLong, "not-a-number"))
		require.Error(t, err)
	})
}
