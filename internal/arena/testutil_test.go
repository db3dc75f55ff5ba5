package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// assertInvariants walks the directory, free-list table, and every
// descriptor's free-block chain and checks the size-class-list and
// free-chain invariants from spec.md section 8 (properties 2 and 3).
func assertInvariants(t *testing.T, a *Arena) {
	t.Helper()

	for c := int32(0); c < a.numSizeClasses; c++ {
		seen := map[int32]bool{}
		for p := *a.freelistHead(c); p != noPage; {
			require.Falsef(t, seen[p], "cycle in size class %d list at page %d", c, p)
			seen[p] = true

			descOff := *a.dirEntry(p)
			require.GreaterOrEqualf(t, descOff, int32(0), "page %d listed in class %d has no descriptor", p, c)
			desc := a.descriptorAt(descOff)

			require.Equalf(t, c, log2(desc.BlockSize), "page %d in class %d list has block size %d", p, c, desc.BlockSize)
			inPage := isInPage(desc.BlockSize)
			mb := maxBlocks(a.pageBytes, desc.BlockSize, inPage)
			require.Greaterf(t, desc.FreeCount, int32(0), "page %d in class %d list has free_count 0", p, c)
			require.Lessf(t, desc.FreeCount, mb, "page %d in class %d list is full but still listed", p, c)

			assertFreeChain(t, a, p, desc)

			p = desc.Next
		}
	}

	for p := int32(1); p < a.pageCount; p++ {
		v := *a.dirEntry(p)
		if v < 0 {
			continue
		}
		desc := a.descriptorAt(v)
		if desc.BlockSize >= a.pageBytes {
			continue
		}
		assertFreeChain(t, a, p, desc)
	}
}

// assertFreeChain checks invariant 3: the free-block chain starting at
// free_head has exactly free_count elements, each within the page's byte
// range and aligned to a block boundary.
func assertFreeChain(t *testing.T, a *Arena, p int32, desc *pageDescriptor) {
	t.Helper()
	base := a.pageBase(p)
	count := int32(0)
	seen := map[int32]bool{}
	for off := desc.FreeHead; off != noOffset; {
		require.Falsef(t, seen[off], "cycle in free chain of page %d", p)
		seen[off] = true
		require.GreaterOrEqualf(t, off, base, "free block %d of page %d out of range", off, p)
		require.Lessf(t, off, base+a.pageBytes, "free block %d of page %d out of range", off, p)
		require.Zerof(t, (off-base)%desc.BlockSize, "free block %d of page %d misaligned to block size %d", off, p, desc.BlockSize)
		count++
		off = *a.linkAt(off)
	}
	require.Equalf(t, desc.FreeCount, count, "page %d free_count %d does not match chain length %d", p, desc.FreeCount, count)
}

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	return a
}
