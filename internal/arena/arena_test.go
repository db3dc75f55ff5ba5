package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{ArenaBytes: 65536, PageBytes: 3000})
	assert.Error(t, err, "page bytes must be a power of two")

	_, err = New(Config{ArenaBytes: 65535, PageBytes: 2048})
	assert.Error(t, err, "arena bytes must be a multiple of page bytes")

	_, err = New(Config{ArenaBytes: 2048, PageBytes: 64})
	assert.Error(t, err, "page too small to hold directory and free-list table, or < 4x descriptor size")
}

func TestInitIsIdempotent(t *testing.T) {
	a := newTestArena(t)

	snapshot := func() []byte {
		out := make([]byte, len(a.buf[:a.pageBytes]))
		copy(out, a.buf[:a.pageBytes])
		return out
	}

	first := snapshot()
	a.Init()
	second := snapshot()
	assert.Equal(t, first, second)

	// Perturb the arena, then re-init should restore post-init state.
	_, ok := a.Alloc(64)
	require.True(t, ok)
	a.Init()
	third := snapshot()
	assert.Equal(t, first, third)
}

func TestInitMarksOnlyPageZeroBusy(t *testing.T) {
	a := newTestArena(t)
	assert.Equal(t, slotBusy, *a.dirEntry(0))
	for p := int32(1); p < a.pageCount; p++ {
		assert.Equalf(t, slotFree, *a.dirEntry(p), "page %d", p)
	}
	for c := int32(0); c < a.numSizeClasses; c++ {
		assert.Equalf(t, noPage, *a.freelistHead(c), "class %d", c)
	}
}

func TestFullReclamationLaw(t *testing.T) {
	a := newTestArena(t)

	var refs []Ref
	for i := 0; i < 20; i++ {
		r, ok := a.Alloc(48)
		require.True(t, ok)
		refs = append(refs, r)
	}
	assertInvariants(t, a)

	for _, r := range refs {
		a.Free(r)
	}

	for p := int32(1); p < a.pageCount; p++ {
		assert.Equalf(t, slotFree, *a.dirEntry(p), "page %d not reclaimed", p)
	}
	for c := int32(0); c < a.numSizeClasses; c++ {
		assert.Equalf(t, noPage, *a.freelistHead(c), "class %d head not cleared", c)
	}
}
