package pager_test

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/require"

	"github.com/loomdb/loom/internal/pager"
)

func openTestDB(t *testing.T) *pebble.DB {
	t.Helper()

	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

func TestStoreAppendRead(t *testing.T) {
	db := openTestDB(t)

	s, err := pager.Open(db, pager.Options{Prefix: []byte("v"), PageSize: 64})
	require.NoError(t, err)

	pos, err := s.Append([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)

	// spans several 64-byte pages
	long := bytes.Repeat([]byte{0xAB}, 200)
	pos2, err := s.Append(long)
	require.NoError(t, err)
	require.Equal(t, int64(5), pos2)

	// unflushed data is readable
	got, err := s.ReadBytesAt(pos2, len(long))
	require.NoError(t, err)
	require.Equal(t, long, got)

	b, err := s.ReadByteAt(1)
	require.NoError(t, err)
	require.Equal(t, byte('e'), b)

	sh, err := s.ReadShortAt(0)
	require.NoError(t, err)
	require.Equal(t, int16('h')<<8|int16('e'), sh)

	_, err = s.ReadBytesAt(200, 100)
	require.ErrorIs(t, err, pager.ErrOutOfRange)

	require.NoError(t, s.Flush())

	got, err = s.ReadBytesAt(pos2, len(long))
	require.NoError(t, err)
	require.Equal(t, long, got)
}

func TestStoreReopen(t *testing.T) {
	db := openTestDB(t)
	opts := pager.Options{Prefix: []byte("v"), PageSize: 64}

	s, err := pager.Open(db, opts)
	require.NoError(t, err)

	pos, err := s.Append([]byte("durable"))
	require.NoError(t, err)
	require.NoError(t, s.Flush())

	s2, err := pager.Open(db, opts)
	require.NoError(t, err)
	require.Equal(t, s.End(), s2.End())

	got, err := s2.ReadBytesAt(pos, 7)
	require.NoError(t, err)
	require.Equal(t, []byte("durable"), got)

	// appends continue where the flushed cursor left off
	pos2, err := s2.Append([]byte("!"))
	require.NoError(t, err)
	require.Equal(t, int64(7), pos2)
	require.NoError(t, s2.Flush())

	got, err = s2.ReadBytesAt(0, 8)
	require.NoError(t, err)
	require.Equal(t, []byte("durable!"), got)
}

func TestStorePrefixIsolation(t *testing.T) {
	db := openTestDB(t)

	a, err := pager.Open(db, pager.Options{Prefix: []byte("a")})
	require.NoError(t, err)
	b, err := pager.Open(db, pager.Options{Prefix: []byte("b")})
	require.NoError(t, err)

	_, err = a.Append([]byte("from a"))
	require.NoError(t, err)
	_, err = b.Append([]byte("from b"))
	require.NoError(t, err)
	require.NoError(t, a.Flush())
	require.NoError(t, b.Flush())

	got, err := a.ReadBytesAt(0, 6)
	require.NoError(t, err)
	require.Equal(t, []byte("from a"), got)

	got, err = b.ReadBytesAt(0, 6)
	require.NoError(t, err)
	require.Equal(t, []byte("from b"), got)
}
