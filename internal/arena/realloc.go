package arena

// Realloc allocates n bytes, copies min(old_block_size, n) bytes from r's
// current block, frees r, and returns the new reference. On failure it
// returns (0, false) and leaves r intact -- callers must recheck rather
// than assume r survives. Copying only the smaller of the two sizes avoids
// reading or writing past whichever block is shorter.
func (a *Arena) Realloc(r Ref, n int) (Ref, bool) {
	oldSize := a.blockSizeOf(r)

	newRef, ok := a.Alloc(n)
	if !ok {
		return 0, false
	}

	copyLen := int(oldSize)
	if n < copyLen {
		copyLen = n
	}
	if copyLen > 0 {
		copy(a.Bytes(newRef)[:copyLen], a.Bytes(r)[:copyLen])
	}

	a.Free(r)
	return newRef, true
}
