package wasm

import (
	"testing"

	"github.com/wasmrt/wasmrt/internal/testing/require"
)

func TestMemoryGrow(t *testing.T) {
	mi, err := NewMemoryInstance(1, 2, true)
	require.NoError(t, err)
	require.Equal(t, uint32(1), mi.Size())

	prev, err := mi.Grow(1)
	require.NoError(t, err)
	require.Equal(t, uint32(1), prev)
	require.Equal(t, uint32(2), mi.Size())
}

func TestMemoryGrowZeroIsNoop(t *testing.T) {
	mi, err := NewMemoryInstance(1, 2, true)
	require.NoError(t, err)
	prev, err := mi.Grow(0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), prev)
	require.Equal(t, uint32(1), mi.Size())
}

func TestMemoryGrowPastMaxFails(t *testing.T) {
	mi, err := NewMemoryInstance(1, 2, true)
	require.NoError(t, err)
	_, err = mi.Grow(2)
	require.Error(t, err)
	require.Equal(t, uint32(1), mi.Size()) // failed grow does not mutate size
}

func TestMemoryWriteSliceBounds(t *testing.T) {
	mi, err := NewMemoryInstance(1, 1, true)
	require.NoError(t, err)
	require.NoError(t, mi.WriteSlice(0, []byte("hello")))

	err = mi.WriteSlice(MemoryPageSize-2, []byte("abc"))
	require.Error(t, err)
	_, ok := err.(*OutOfBoundsError)
	require.True(t, ok)
}

func TestMemoryReadSliceRoundTrip(t *testing.T) {
	mi, err := NewMemoryInstance(1, 1, true)
	require.NoError(t, err)
	require.NoError(t, mi.WriteSlice(0x100, []byte("hello")))

	got, err := mi.ReadSlice(0x100, 5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))
}

func TestEffectiveAddressExactFit(t *testing.T) {
	addr, err := EffectiveAddress[uint32](4, 0, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(4), addr)
}

func TestEffectiveAddressOffByOneFails(t *testing.T) {
	_, err := EffectiveAddress[uint32](5, 0, 8)
	require.Error(t, err)
	_, ok := err.(*OutOfBoundsError)
	require.True(t, ok)
}

func TestMemoryTryBorrowBlockedDuringGrow(t *testing.T) {
	mi, err := NewMemoryInstance(1, 2, true)
	require.NoError(t, err)

	mi.mu.Lock() // simulate a concurrent Grow holding the write lock
	_, err = mi.TryBorrow()
	mi.mu.Unlock()

	require.Error(t, err)
	_, ok := err.(*MemoryBorrowError)
	require.True(t, ok)
}
