package internal

import (
	"unsafe"
)

// Pool is an allocator for string storage and auxiliary tables. Each VM owns
// one pool; values allocated from it must not outlive the VM.
type Pool interface {
	// Alloc returns a buffer of exactly size bytes with unspecified contents.
	Alloc(size int) ([]byte, error)
	// Zalloc returns a zeroed buffer of exactly size bytes.
	Zalloc(size int) ([]byte, error)
	// Align returns a buffer of size bytes whose first byte is aligned to
	// alignment, which must be a power of two.
	Align(alignment, size int) ([]byte, error)
	// Free returns a buffer obtained from the pool.
	Free(b []byte)
}

// MemPool is a Pool that allocates from the Go heap and enforces an optional
// limit on the number of live bytes.
type MemPool struct {
	limit int
	used  int
	peak  int
}

// NewMemPool creates a pool that fails allocations once more than limit
// bytes are live. A limit of zero or less means unlimited.
func NewMemPool(limit int) *MemPool {
	return &MemPool{limit: limit}
}

func (p *MemPool) reserve(size int) error {
	if size < 0 {
		return ErrMemory
	}
	if p.limit > 0 && p.used+size > p.limit {
		log.Warningf("memory limit %d reached (used %d, requested %d)", p.limit, p.used, size)
		return ErrMemory
	}
	p.used += size
	if p.used > p.peak {
		p.peak = p.used
	}
	return nil
}

// Alloc allocates size bytes.
func (p *MemPool) Alloc(size int) ([]byte, error) {
	if err := p.reserve(size); err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// Zalloc allocates size zeroed bytes.
func (p *MemPool) Zalloc(size int) ([]byte, error) {
	// The Go heap always hands out zeroed memory.
	return p.Alloc(size)
}

// Align allocates size bytes starting at a multiple of alignment.
func (p *MemPool) Align(alignment, size int) ([]byte, error) {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return nil, internalErrorf("bad alignment %d", alignment)
	}
	if err := p.reserve(size); err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}
	b := make([]byte, size+alignment-1)
	off := 0
	if r := int(uintptr(unsafe.Pointer(&b[0])) & uintptr(alignment-1)); r != 0 {
		off = alignment - r
	}
	return b[off : off+size : off+size], nil
}

// Free releases b's accounting. The memory itself is reclaimed by the
// garbage collector.
func (p *MemPool) Free(b []byte) {
	p.used -= cap(b)
	if p.used < 0 {
		p.used = 0
	}
}

// Used returns the number of live bytes.
func (p *MemPool) Used() int {
	return p.used
}

// Peak returns the largest number of bytes that were live at once.
func (p *MemPool) Peak() int {
	return p.peak
}
