package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReallocGrowPreservesPrefix(t *testing.T) {
	a := newTestArena(t)

	r, ok := a.Alloc(64)
	require.True(t, ok)
	for i := range a.Bytes(r) {
		a.Bytes(r)[i] = 0xAB
	}

	r2, ok := a.Realloc(r, 128)
	require.True(t, ok)
	assert.EqualValues(t, 128, a.blockSizeOf(r2))
	for i := 0; i < 64; i++ {
		assert.Equalf(t, byte(0xAB), a.Bytes(r2)[i], "byte %d", i)
	}
	assertInvariants(t, a)
}

func TestReallocShrinkPreservesPrefix(t *testing.T) {
	a := newTestArena(t)

	r, ok := a.Alloc(256)
	require.True(t, ok)
	buf := a.Bytes(r)
	for i := range buf {
		buf[i] = byte(i)
	}

	r2, ok := a.Realloc(r, 64)
	require.True(t, ok)
	for i := 0; i < 64; i++ {
		assert.Equalf(t, byte(i), a.Bytes(r2)[i], "byte %d", i)
	}
	assertInvariants(t, a)
}

func TestReallocFailureLeavesOriginalIntact(t *testing.T) {
	a := newTestArena(t)

	r, ok := a.Alloc(32)
	require.True(t, ok)
	a.Bytes(r)[0] = 0x42

	// Exhaust the arena with large allocations so a subsequent big realloc
	// cannot succeed.
	for {
		if _, ok := a.Alloc(int(a.pageBytes)); !ok {
			break
		}
	}

	_, ok = a.Realloc(r, len(a.buf))
	assert.False(t, ok)
	assert.Equal(t, byte(0x42), a.Bytes(r)[0], "original block must survive a failed realloc")
}
