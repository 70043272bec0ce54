// Package pager provides random-access byte readers over stored
// pages. The durable codec consumes the Reader interface and never
// performs I/O of its own.
package pager

import (
	"github.com/cockroachdb/errors"
)

// ErrOutOfRange is returned when a read reaches past the end of the
// underlying data.
var ErrOutOfRange = errors.New("read past end of data")

// Reader is the random-access surface consumed by the codec. All
// three reads are idempotent and free of side effects. Implementations
// must be safe for concurrent use.
type Reader interface {
	ReadByteAt(pos int64) (byte, error)

	// ReadBytesAt reads n contiguous bytes starting at pos.
	ReadBytesAt(pos int64, n int) ([]byte, error)

	// ReadShortAt reads a 16-bit big-endian signed short.
	ReadShortAt(pos int64) (int16, error)
}
