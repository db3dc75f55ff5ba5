package arena

import "unsafe"

// This file is the allocator's single unsafe boundary: every read or write
// of a directory slot, free-list-table head, page descriptor, or intrusive
// free-block link goes through one of the accessors below. Everything
// outside this file works with plain Ref/int32 values, apart from the
// arena's base pointer and the byte-slice view built by Bytes (arena.go).
//
// Directory slots and free-list-table heads are encoded as int32 "codes"
// laid out directly inside the arena's backing array (page 0). Go can't
// alias an arbitrary pointer into a []byte, so a sentinel-or-offset int32
// stands in for what would otherwise be a raw pointer:
//
//	slotFree  (-1) -- page unused / no page on this free-list head
//	slotBusy  (-2) -- page reserved, not yet (or no longer) described
//	>= 0          -- the arena-relative byte offset of a page descriptor

const (
	slotFree int32 = -1
	slotBusy int32 = -2
	noPage   int32 = -1
	noOffset int32 = -1
)

// pageDescriptor is the per-active-page bookkeeping record. It is placed
// either in-page (at the start of the page it describes) or remote (as a
// small-class block on some other page); descriptorAt overlays this struct
// directly onto the arena bytes at the given offset.
type pageDescriptor struct {
	BlockSize int32
	FreeHead  int32 // arena-relative byte offset of the first free block, or noOffset
	FreeCount int32
	Next      int32 // page index of the next page in this size class's list, or noPage
	Prev      int32 // page index of the previous page in this size class's list, or noPage
}

const descriptorSize = int32(unsafe.Sizeof(pageDescriptor{}))

func (a *Arena) ptrAt(off int32) unsafe.Pointer {
	return unsafe.Add(a.base, off)
}

// dirEntry returns a pointer into the page directory slot for page p.
func (a *Arena) dirEntry(p int32) *int32 {
	return (*int32)(a.ptrAt(p * 4))
}

// freelistHead returns a pointer into the free-list table's head-of-list
// slot for size class c. The table sits immediately after the directory.
func (a *Arena) freelistHead(c int32) *int32 {
	return (*int32)(a.ptrAt(a.pageCount*4 + c*4))
}

// descriptorAt overlays a *pageDescriptor onto the arena at byte offset off.
func (a *Arena) descriptorAt(off int32) *pageDescriptor {
	return (*pageDescriptor)(a.ptrAt(off))
}

// linkAt returns a pointer to the intrusive free-block link word stored at
// the first machine word of the block at byte offset off.
func (a *Arena) linkAt(off int32) *int32 {
	return (*int32)(a.ptrAt(off))
}

// pageBase returns the arena-relative byte offset of page idx.
func (a *Arena) pageBase(idx int32) int32 { return idx * a.pageBytes }

// pageIndexOf returns the page index containing byte offset off.
func (a *Arena) pageIndexOf(off int32) int32 { return off / a.pageBytes }
