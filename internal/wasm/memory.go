package wasm

import (
	"sync"
	"sync/atomic"
)

// MemoryInstance is a guest linear memory: a growable byte buffer guarded
// by a reader/writer lock so that grow (the sole relocating writer) never
// races with concurrent reads or writes into the existing buffer.
//
// size is additionally tracked with an atomic so Size can be read without
// taking the lock at all, matching the "no write lock" requirement on the
// hot read path.
type MemoryInstance struct {
	mu       sync.RWMutex
	buf      []byte
	min, max uint32 // in pages
	hasMax   bool
	size     atomic.Uint32 // current size in pages
}

// NewMemoryInstance constructs a memory from its static Limits, growing it
// to Min pages immediately. The buffer is allocated with make; a failed
// allocation is not turned into OutOfMemoryError, and the returned error
// is always nil.
func NewMemoryInstance(min, max uint32, hasMax bool) (*MemoryInstance, error) {
	mi := &MemoryInstance{min: min, max: max, hasMax: hasMax}
	mi.buf = make([]byte, int(min)*int(MemoryPageSize))
	mi.size.Store(min)
	return mi, nil
}

// Size returns the current size in pages, via an acquire load: it never
// takes mu, so it never blocks behind a concurrent Grow.
func (m *MemoryInstance) Size() uint32 {
	return m.size.Load()
}

// ByteLength returns the current size in bytes.
func (m *MemoryInstance) ByteLength() uint32 {
	return m.Size() * MemoryPageSize
}

// Grow adds delta pages, returning the previous size on success. A
// zero delta is a no-op that still returns the current size, without
// taking the write lock. It fails with InvalidParameterError if the new
// size would exceed the memory's maximum (or wrap). It never returns
// OutOfMemoryError: a failed allocation of the new buffer is not turned
// into an error.
func (m *MemoryInstance) Grow(delta uint32) (previous uint32, err error) {
	if delta == 0 {
		return m.Size(), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.size.Load()
	next := current + delta
	if next < current { // overflow
		return 0, &InvalidParameterError{Context: "memory.grow overflows page count"}
	}
	if next > MemoryMaxPages {
		return 0, &InvalidParameterError{Context: "memory.grow exceeds addressable page count"}
	}
	if m.hasMax && next > m.max {
		return 0, &InvalidParameterError{Context: "memory.grow exceeds declared maximum"}
	}

	grown := make([]byte, int(next)*int(MemoryPageSize))
	copy(grown, m.buf)
	m.buf = grown
	m.size.Store(next) // release store: visible to size() readers once published
	return current, nil
}

// TryBorrow acquires a non-blocking shared (read) lock on the memory,
// returning MemoryBorrowError instead of parking if a writer (Grow) holds
// it. The caller must call the returned release function exactly once.
func (m *MemoryInstance) TryBorrow() (release func(), err error) {
	if !m.mu.TryRLock() {
		return nil, &MemoryBorrowError{}
	}
	return m.mu.RUnlock, nil
}

// WriteSlice copies src into the memory at offset, under a shared lock.
// It fails with OutOfBoundsError if [offset, offset+len(src)) does not fit
// in the current buffer, checked with an overflow-safe addition.
func (m *MemoryInstance) WriteSlice(offset uint32, src []byte) error {
	release, err := m.TryBorrow()
	if err != nil {
		return err
	}
	defer release()

	end := uint64(offset) + uint64(len(src))
	if end > uint64(len(m.buf)) {
		return &OutOfBoundsError{Context: "write_slice"}
	}
	copy(m.buf[offset:end], src)
	return nil
}

// ReadSlice copies length bytes starting at offset into a new slice, under
// a shared lock, failing with OutOfBoundsError the same way WriteSlice does.
func (m *MemoryInstance) ReadSlice(offset, length uint32) ([]byte, error) {
	release, err := m.TryBorrow()
	if err != nil {
		return nil, err
	}
	defer release()

	end := uint64(offset) + uint64(length)
	if end > uint64(len(m.buf)) {
		return nil, &OutOfBoundsError{Context: "read_slice"}
	}
	out := make([]byte, length)
	copy(out, m.buf[offset:end])
	return out, nil
}

// sizeOf returns the byte width of one T, for EffectiveAddress's bounds
// check. Only the primitive types the instruction set actually loads and
// stores are supported; an unrecognized T is a programmer error, not a
// runtime one, so it panics rather than returning an error.
func sizeOf[T any]() uint32 {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	case uint64, int64, float64:
		return 8
	default:
		panic("wasm: unsupported EffectiveAddress type")
	}
}

// EffectiveAddress computes the byte address for a memarg-style access:
// (offset as u64) + (index as u64), wrapping per the Wasm spec, then
// checks that address+sizeof(T) fits within limit. It returns OutOfBoundsError
// if not, so callers never need a second bounds check before the raw read.
func EffectiveAddress[T any](offset, index uint32, limit uint32) (uint64, error) {
	address := uint64(offset) + uint64(index)
	if address+uint64(sizeOf[T]()) > uint64(limit) {
		return 0, &OutOfBoundsError{Context: "effective address"}
	}
	return address, nil
}
