package arena

import "github.com/sirupsen/logrus"

// Alloc yields a reference to size contiguous bytes, or (0, false) on
// failure. It never returns a reference into page 0: the request is rounded
// to a size class and dispatched to the small or large path.
func (a *Arena) Alloc(size int) (Ref, bool) {
	if size < 0 {
		size = 0
	}
	// The power-of-two rounding only decides small-vs-large routing; the
	// large path re-rounds the original request to a PAGE_BYTES multiple
	// (see sizeclass.go's roundUpMultiple doc comment for why these must
	// be two separate roundings).
	pow2 := nextPow2(size)

	if pow2 > a.pageBytes/2 {
		return a.allocLarge(roundUpMultiple(int32(size), a.pageBytes))
	}
	if pow2 < a.minBlockSize {
		a.logDebug("alloc rejected", logrus.Fields{"cause": ErrSizeTooSmall.Error(), "size": size})
		return 0, false
	}
	return a.allocSmall(log2(pow2), pow2)
}

// allocSmall finds or builds a page of the requested size class, detaches
// its head free block, and returns it.
func (a *Arena) allocSmall(class, rounded int32) (Ref, bool) {
	headPage := *a.freelistHead(class)
	if headPage == noPage {
		p, ok := a.createPage(class, rounded)
		if !ok {
			a.logDebug("alloc rejected", logrus.Fields{"cause": ErrArenaExhausted.Error(), "class": class, "block_size": rounded})
			return 0, false
		}
		headPage = p
		*a.freelistHead(class) = headPage
	}

	descOff := *a.dirEntry(headPage)
	desc := a.descriptorAt(descOff)

	block := desc.FreeHead
	desc.FreeHead = *a.linkAt(block)
	desc.FreeCount--

	if desc.FreeCount == 0 {
		next := desc.Next
		*a.freelistHead(class) = next
		if next != noPage {
			nextDesc := a.descriptorAt(*a.dirEntry(next))
			nextDesc.Prev = noPage
		}
		desc.Next = noPage
	}

	return Ref(block), true
}

// createPage reserves a free page slot, decides descriptor placement,
// carves the page into an intrusive free-block chain, and installs the
// descriptor.
func (a *Arena) createPage(class, blockSize int32) (int32, bool) {
	pageIdx, found := int32(-1), false
	for p := int32(0); p < a.pageCount; p++ {
		if *a.dirEntry(p) == slotFree {
			pageIdx, found = p, true
			break
		}
	}
	if !found {
		return 0, false
	}
	*a.dirEntry(pageIdx) = slotBusy

	inPage := isInPage(blockSize)
	var descOff, firstBlock, usable int32
	if inPage {
		descOff = a.pageBase(pageIdx)
		firstBlock = descOff + blockSize
		usable = maxBlocks(a.pageBytes, blockSize, true)
	} else {
		ref, ok := a.Alloc(int(descriptorSize))
		if !ok {
			*a.dirEntry(pageIdx) = slotFree
			return 0, false
		}
		descOff = int32(ref)
		firstBlock = a.pageBase(pageIdx)
		usable = maxBlocks(a.pageBytes, blockSize, false)
	}

	for i := int32(0); i < usable-1; i++ {
		cur := firstBlock + i*blockSize
		*a.linkAt(cur) = cur + blockSize
	}
	if usable > 0 {
		*a.linkAt(firstBlock + (usable-1)*blockSize) = noOffset
	}

	desc := a.descriptorAt(descOff)
	desc.BlockSize = blockSize
	desc.FreeHead = firstBlock
	desc.FreeCount = usable
	desc.Next = noPage
	desc.Prev = noPage

	*a.dirEntry(pageIdx) = descOff

	a.logDebug("page constructed", logrus.Fields{
		"page": pageIdx, "class": class, "block_size": blockSize, "in_page_descriptor": inPage, "usable_blocks": usable,
	})
	return pageIdx, true
}
