// Package loom provides the durable value layer of the loom graph
// database: a type system for graph values, a tagged byte codec with
// an inline 64-bit ID scheme for small values, and a Pebble-backed
// pool that interns values and resolves their IDs.
package loom

import (
	"context"

	"github.com/cockroachdb/pebble"

	"github.com/loomdb/loom/internal/pager"
	"github.com/loomdb/loom/internal/pool"
	"github.com/loomdb/loom/internal/value"
)

// Options configures a ValueStore.
type Options struct {
	// Pebble is passed through to pebble.Open. Nil means Pebble's
	// defaults.
	Pebble *pebble.Options

	// Prefix namespaces the store inside the Pebble keyspace.
	// Defaults to "loom/values/".
	Prefix []byte

	// PageSize overrides the pager's default page size.
	PageSize int
}

// ValueStore is a durable pool of graph values.
type ValueStore struct {
	db   *pebble.DB
	pool *pool.Pool
}

// Open opens or creates a value store at path.
func Open(path string, opts *Options) (*ValueStore, error) {
	if opts == nil {
		opts = &Options{}
	}
	prefix := opts.Prefix
	if prefix == nil {
		prefix = []byte("loom/values/")
	}

	db, err := pebble.Open(path, opts.Pebble)
	if err != nil {
		return nil, err
	}

	store, err := pager.Open(db, pager.Options{Prefix: prefix, PageSize: opts.PageSize})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ValueStore{
		db:   db,
		pool: pool.New(store),
	}, nil
}

// Intern stores v and returns its ID: an inline encapsulated ID when
// the value is small enough, a storage offset otherwise.
func (s *ValueStore) Intern(v value.Value) (int64, error) {
	return s.pool.Intern(v)
}

// InternAll interns a batch of values with concurrent encoding.
func (s *ValueStore) InternAll(ctx context.Context, vs []value.Value) ([]int64, error) {
	return s.pool.InternAll(ctx, vs)
}

// Value resolves an ID back into a value.
func (s *ValueStore) Value(id int64) (value.Value, error) {
	return s.pool.Value(id)
}

// Flush persists interned values.
func (s *ValueStore) Flush() error {
	return s.pool.Flush()
}

// Close flushes and releases the underlying database.
func (s *ValueStore) Close() error {
	if err := s.pool.Flush(); err != nil {
		_ = s.db.Close()
		return err
	}

	return s.db.Close()
}
