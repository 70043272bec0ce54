package pager

import (
	"github.com/cockroachdb/errors"
)

var _ Reader = (*Buffer)(nil)

// Buffer is an in-memory Reader over a byte slice.
type Buffer struct {
	data []byte
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) Len() int64 {
	return int64(len(b.data))
}

func (b *Buffer) ReadByteAt(pos int64) (byte, error) {
	if pos < 0 || pos >= int64(len(b.data)) {
		return 0, errors.Wrapf(ErrOutOfRange, "byte at %d of %d", pos, len(b.data))
	}

	return b.data[pos], nil
}

func (b *Buffer) ReadBytesAt(pos int64, n int) ([]byte, error) {
	if n < 0 || pos < 0 || pos+int64(n) > int64(len(b.data)) {
		return nil, errors.Wrapf(ErrOutOfRange, "%d bytes at %d of %d", n, pos, len(b.data))
	}

	return b.data[pos : pos+int64(n)], nil
}

func (b *Buffer) ReadShortAt(pos int64) (int16, error) {
	if pos < 0 || pos+2 > int64(len(b.data)) {
		return 0, errors.Wrapf(ErrOutOfRange, "short at %d of %d", pos, len(b.data))
	}

	return int16(uint16(b.data[pos])<<8 | uint16(b.data[pos+1])), nil
}
