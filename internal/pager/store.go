package pager

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// DefaultPageSize is the size of one stored page.
const DefaultPageSize = 4096

const (
	pageKeyTag byte = 'p'
	metaKeyTag byte = 'm'
)

// Options configures a Store.
type Options struct {
	// Prefix namespaces the store's keys inside the shared Pebble
	// database.
	Prefix []byte

	// PageSize overrides DefaultPageSize. All pages of a store must
	// be written and reopened with the same size.
	PageSize int
}

var _ Reader = (*Store)(nil)

// Store is an append-only paged file backed by Pebble. Pages are keyed
// by big-endian page number under the store prefix; the append cursor
// is persisted under a meta key at every Flush. Reads observe appended
// but not yet flushed data.
type Store struct {
	db       *pebble.DB
	prefix   []byte
	pageSize int

	mu    sync.RWMutex
	end   int64
	dirty map[int64][]byte
	cache map[int64][]byte
}

// Open attaches a Store to db under opts.Prefix, recovering the append
// cursor left by the last Flush.
func Open(db *pebble.DB, opts Options) (*Store, error) {
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageSize < 16 {
		return nil, errors.Errorf("page size %d too small", opts.PageSize)
	}

	s := Store{
		db:       db,
		prefix:   opts.Prefix,
		pageSize: opts.PageSize,
		dirty:    make(map[int64][]byte),
		cache:    make(map[int64][]byte),
	}

	v, closer, err := db.Get(s.metaKey())
	switch {
	case errors.Is(err, pebble.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if len(v) != 8 {
			_ = closer.Close()
			return nil, errors.Errorf("corrupt store meta for prefix %q", opts.Prefix)
		}
		s.end = int64(uint64(v[0])<<56 | uint64(v[1])<<48 | uint64(v[2])<<40 | uint64(v[3])<<32 |
			uint64(v[4])<<24 | uint64(v[5])<<16 | uint64(v[6])<<8 | uint64(v[7]))
		if err := closer.Close(); err != nil {
			return nil, err
		}
	}

	return &s, nil
}

func (s *Store) metaKey() []byte {
	k := make([]byte, 0, len(s.prefix)+1)
	k = append(k, s.prefix...)
	return append(k, metaKeyTag)
}

func (s *Store) pageKey(page int64) []byte {
	k := make([]byte, 0, len(s.prefix)+9)
	k = append(k, s.prefix...)
	k = append(k, pageKeyTag)
	n := uint64(page)
	return append(k,
		byte(n>>56), byte(n>>48), byte(n>>40), byte(n>>32),
		byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}

// End returns the position one past the last appended byte.
func (s *Store) End() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.end
}

// Append writes data at the current cursor and returns the position it
// was written at. The data is buffered in dirty pages until Flush.
func (s *Store) Append(data []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.end
	off := pos
	for len(data) > 0 {
		page := off / int64(s.pageSize)
		in := int(off % int64(s.pageSize))

		buf, err := s.dirtyPageLocked(page)
		if err != nil {
			return 0, err
		}

		n := copy(buf[in:], data)
		data = data[n:]
		off += int64(n)
	}

	s.end = off
	return pos, nil
}

// dirtyPageLocked returns the writable buffer of a page, pulling the
// stored content in first when the page already exists.
func (s *Store) dirtyPageLocked(page int64) ([]byte, error) {
	if buf, ok := s.dirty[page]; ok {
		return buf, nil
	}

	buf := make([]byte, s.pageSize)
	if page*int64(s.pageSize) < s.end {
		stored, err := s.loadPageLocked(page)
		if err != nil && !errors.Is(err, pebble.ErrNotFound) {
			return nil, err
		}
		copy(buf, stored)
	}

	delete(s.cache, page)
	s.dirty[page] = buf
	return buf, nil
}

// Flush commits every dirty page and the cursor in a single batch.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.dirty) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for page, buf := range s.dirty {
		if err := batch.Set(s.pageKey(page), buf, nil); err != nil {
			return err
		}
	}

	n := uint64(s.end)
	endv := []byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
	}
	if err := batch.Set(s.metaKey(), endv, nil); err != nil {
		return err
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return err
	}

	for page, buf := range s.dirty {
		s.cache[page] = buf
		delete(s.dirty, page)
	}

	return nil
}

func (s *Store) ReadByteAt(pos int64) (byte, error) {
	b, err := s.ReadBytesAt(pos, 1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (s *Store) ReadBytesAt(pos int64, n int) ([]byte, error) {
	s.mu.RLock()
	end := s.end
	s.mu.RUnlock()

	if n < 0 || pos < 0 || pos+int64(n) > end {
		return nil, errors.Wrapf(ErrOutOfRange, "%d bytes at %d of %d", n, pos, end)
	}

	out := make([]byte, 0, n)
	for len(out) < n {
		off := pos + int64(len(out))
		page := off / int64(s.pageSize)
		in := int(off % int64(s.pageSize))

		buf, err := s.page(page)
		if err != nil {
			return nil, err
		}

		take := s.pageSize - in
		if rem := n - len(out); take > rem {
			take = rem
		}
		out = append(out, buf[in:in+take]...)
	}

	return out, nil
}

func (s *Store) ReadShortAt(pos int64) (int16, error) {
	b, err := s.ReadBytesAt(pos, 2)
	if err != nil {
		return 0, err
	}

	return int16(uint16(b[0])<<8 | uint16(b[1])), nil
}

func (s *Store) page(page int64) ([]byte, error) {
	s.mu.RLock()
	if buf, ok := s.dirty[page]; ok {
		s.mu.RUnlock()
		return buf, nil
	}
	if buf, ok := s.cache[page]; ok {
		s.mu.RUnlock()
		return buf, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if buf, ok := s.dirty[page]; ok {
		return buf, nil
	}
	if buf, ok := s.cache[page]; ok {
		return buf, nil
	}

	buf, err := s.loadPageLocked(page)
	if err != nil {
		return nil, err
	}

	s.cache[page] = buf
	return buf, nil
}

func (s *Store) loadPageLocked(page int64) ([]byte, error) {
	v, closer, err := s.db.Get(s.pageKey(page))
	if err != nil {
		return nil, err
	}

	cp := make([]byte, len(v))
	copy(cp, v)

	if err := closer.Close(); err != nil {
		return nil, err
	}

	if len(cp) != s.pageSize {
		return nil, errors.Errorf("page %d has size %d, want %d", page, len(cp), s.pageSize)
	}

	return cp, nil
}
