package arena

import "github.com/sirupsen/logrus"

// Free accepts a reference previously yielded by Alloc or Realloc. Behavior
// is undefined for any other reference, including a double-free -- no
// validation is performed.
func (a *Arena) Free(r Ref) {
	addr := int32(r)
	p := a.pageIndexOf(addr)
	descOff := *a.dirEntry(p)
	desc := a.descriptorAt(descOff)

	if desc.BlockSize >= a.pageBytes {
		a.freeLarge(p, desc)
		return
	}
	a.freeSmall(p, descOff, desc, addr)
}

// freeSmall appends the block to the tail of the page's intrusive free
// list, then decides whether the page is now fully empty (and should be
// returned to the pool) or newly non-empty (and should be enqueued into its
// size class's list).
func (a *Arena) freeSmall(p, descOff int32, desc *pageDescriptor, addr int32) {
	*a.linkAt(addr) = noOffset
	if desc.FreeHead == noOffset {
		desc.FreeHead = addr
	} else {
		cur := desc.FreeHead
		for *a.linkAt(cur) != noOffset {
			cur = *a.linkAt(cur)
		}
		*a.linkAt(cur) = addr
	}
	desc.FreeCount++

	inPage := isInPage(desc.BlockSize)
	usable := maxBlocks(a.pageBytes, desc.BlockSize, inPage)
	class := log2(desc.BlockSize)

	if desc.FreeCount == usable {
		a.unlinkPage(p, class, desc)
		*a.dirEntry(p) = slotFree
		a.logDebug("page reclaimed", logrus.Fields{"page": p, "class": class, "block_size": desc.BlockSize})
		if !inPage {
			a.Free(Ref(descOff))
		}
		return
	}

	if desc.FreeCount == 1 {
		a.appendPageToClassList(p, class, desc)
	}
}

// unlinkPage removes page p's descriptor from its size class's doubly
// linked list, fixing up prev/next on both sides -- never just clearing the
// slot head, which would strand the remaining entries.
func (a *Arena) unlinkPage(p, class int32, desc *pageDescriptor) {
	if desc.Prev != noPage {
		prevDesc := a.descriptorAt(*a.dirEntry(desc.Prev))
		prevDesc.Next = desc.Next
	} else {
		*a.freelistHead(class) = desc.Next
	}
	if desc.Next != noPage {
		nextDesc := a.descriptorAt(*a.dirEntry(desc.Next))
		nextDesc.Prev = desc.Prev
	}
}

// appendPageToClassList adds page p to the tail of size class class's list
// of pages with a free block.
func (a *Arena) appendPageToClassList(p, class int32, desc *pageDescriptor) {
	head := *a.freelistHead(class)
	if head == noPage {
		*a.freelistHead(class) = p
		desc.Prev, desc.Next = noPage, noPage
		return
	}
	cur := head
	for {
		curDesc := a.descriptorAt(*a.dirEntry(cur))
		if curDesc.Next == noPage {
			curDesc.Next = p
			desc.Prev, desc.Next = cur, noPage
			return
		}
		cur = curDesc.Next
	}
}
