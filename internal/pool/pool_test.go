package pool_test

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/require"

	"github.com/loomdb/loom/internal/pager"
	"github.com/loomdb/loom/internal/pool"
	"github.com/loomdb/loom/internal/value"
)

func newTestPool(t *testing.T) *pool.Pool {
	t.Helper()

	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	s, err := pager.Open(db, pager.Options{Prefix: []byte("pool")})
	require.NoError(t, err)

	return pool.New(s)
}

func TestInternInline(t *testing.T) {
	p := newTestPool(t)

	tests := []value.Value{
		value.NewLongValue(1),
		value.NewBoolValue(true),
		value.NewTextValue("tiny"),
		value.NewKeywordValue(":a/b"),
		value.NewNodeValue(99),
	}

	for _, v := range tests {
		id, err := p.Intern(v)
		require.NoError(t, err)
		require.Negative(t, id, "%s should be inline", v)

		got, err := p.Value(id)
		require.NoError(t, err)
		require.True(t, value.Equal(v, got))
	}
}

func TestInternStored(t *testing.T) {
	p := newTestPool(t)

	long := value.NewTextValue(strings.Repeat("wide ", 40))
	id, err := p.Intern(long)
	require.NoError(t, err)
	require.GreaterOrEqual(t, id, int64(0))

	got, err := p.Value(id)
	require.NoError(t, err)
	require.True(t, value.Equal(long, got))

	// a second stored value lands at a distinct offset
	other := value.NewSequenceValue([]value.Value{
		value.NewLongValue(1), value.NewLongValue(2 << 40),
	})
	id2, err := p.Intern(other)
	require.NoError(t, err)
	require.Greater(t, id2, id)

	got, err = p.Value(id2)
	require.NoError(t, err)
	require.True(t, value.Equal(other, got))
}

func TestInternAll(t *testing.T) {
	p := newTestPool(t)

	vs := []value.Value{
		value.NewLongValue(5),
		value.NewTextValue(strings.Repeat("x", 500)),
		value.NewKeywordValue(":inline"),
		value.NewTextValue(strings.Repeat("y", 300)),
	}

	ids, err := p.InternAll(context.Background(), vs)
	require.NoError(t, err)
	require.Len(t, ids, len(vs))

	// inline values keep the sign bit, stored ones are offsets in
	// append order
	require.Negative(t, ids[0])
	require.Negative(t, ids[2])
	require.GreaterOrEqual(t, ids[1], int64(0))
	require.Greater(t, ids[3], ids[1])

	for i, v := range vs {
		got, err := p.Value(ids[i])
		require.NoError(t, err)
		require.True(t, value.Equal(v, got))
	}

	require.NoError(t, p.Flush())
}

func TestInternAllCanceled(t *testing.T) {
	p := newTestPool(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.InternAll(ctx, []value.Value{value.NewLongValue(1)})
	require.Error(t, err)
}
