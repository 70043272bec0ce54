// Package pool interns values of the graph layer: small values are
// packed into encapsulated 64-bit IDs, everything else is appended to
// a paged store and referenced by its storage offset. Offsets are
// non-negative and inline IDs all have the sign bit set, so the two ID
// spaces never collide.
package pool

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/loomdb/loom/internal/encoding"
	"github.com/loomdb/loom/internal/pager"
	"github.com/loomdb/loom/internal/value"
)

type Pool struct {
	store *pager.Store
}

func New(store *pager.Store) *Pool {
	return &Pool{store: store}
}

// Intern stores v and returns its ID. Values that fit inline never
// touch storage.
func (p *Pool) Intern(v value.Value) (int64, error) {
	if id, ok := encoding.Encapsulate(v); ok {
		return id, nil
	}

	enc, err := encoding.EncodeValue(nil, v)
	if err != nil {
		return 0, err
	}

	return p.store.Append(enc)
}

// Value resolves an ID back to its value. Inline IDs decode without a
// storage read.
func (p *Pool) Value(id int64) (value.Value, error) {
	if v, ok := encoding.Unencapsulate(id); ok {
		return v, nil
	}

	return encoding.ReadObject(p.store, id)
}

// InternAll interns a batch. Encoding runs concurrently; appends
// happen in slice order so the returned IDs are deterministic.
func (p *Pool) InternAll(ctx context.Context, vs []value.Value) ([]int64, error) {
	ids := make([]int64, len(vs))
	encoded := make([][]byte, len(vs))

	g, _ := errgroup.WithContext(ctx)
	for i, v := range vs {
		i, v := i, v
		g.Go(func() error {
			if id, ok := encoding.Encapsulate(v); ok {
				ids[i] = id
				return nil
			}

			enc, err := encoding.EncodeValue(nil, v)
			if err != nil {
				return err
			}
			encoded[i] = enc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, enc := range encoded {
		if enc == nil {
			continue
		}
		id, err := p.store.Append(enc)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	return ids, nil
}

// Flush persists appended values to the underlying store.
func (p *Pool) Flush() error {
	return p.store.Flush()
}
