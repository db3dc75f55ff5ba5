package arena

import "github.com/sirupsen/logrus"

// allocLarge scans for the smallest run of k contiguous free pages,
// tentatively marks them busy, obtains a descriptor via a nested small
// allocation, and installs it at the run's leader slot. blockSize must
// already be a multiple of a.pageBytes.
func (a *Arena) allocLarge(blockSize int32) (Ref, bool) {
	k := blockSize / a.pageBytes

	p0, ok := a.findFreeRun(k)
	if !ok {
		a.logDebug("large alloc rejected", logrus.Fields{"cause": ErrLargeRunUnavailable.Error(), "pages": k})
		return 0, false
	}
	for i := int32(0); i < k; i++ {
		*a.dirEntry(p0+i) = slotBusy
	}

	ref, ok := a.Alloc(int(descriptorSize))
	if !ok {
		for i := int32(0); i < k; i++ {
			*a.dirEntry(p0+i) = slotFree
		}
		a.logDebug("large alloc rejected", logrus.Fields{"cause": ErrArenaExhausted.Error(), "pages": k})
		return 0, false
	}

	descOff := int32(ref)
	desc := a.descriptorAt(descOff)
	desc.BlockSize = blockSize
	desc.FreeHead = noOffset
	desc.FreeCount = 0
	desc.Next = noPage
	desc.Prev = noPage

	*a.dirEntry(p0) = descOff

	a.logDebug("large page constructed", logrus.Fields{"page": p0, "pages": k, "block_size": blockSize})
	return Ref(a.pageBase(p0)), true
}

// findFreeRun scans the directory for the smallest leader page index p0
// such that pages [p0, p0+k) are all free.
func (a *Arena) findFreeRun(k int32) (int32, bool) {
	for p0 := int32(0); p0+k <= a.pageCount; p0++ {
		run := true
		for j := int32(0); j < k; j++ {
			if *a.dirEntry(p0+j) != slotFree {
				run = false
				break
			}
		}
		if run {
			return p0, true
		}
	}
	return 0, false
}

// freeLarge restores every page slot in the run to free, then recursively
// frees the descriptor's own (always remote) block.
func (a *Arena) freeLarge(p0 int32, desc *pageDescriptor) {
	k := desc.BlockSize / a.pageBytes
	descOff := *a.dirEntry(p0)
	for i := int32(0); i < k; i++ {
		*a.dirEntry(p0+i) = slotFree
	}
	a.logDebug("large page freed", logrus.Fields{"page": p0, "pages": k, "block_size": desc.BlockSize})
	a.Free(Ref(descOff))
}
