package arena

// Size-class math: round requests up to a power of two, map the rounded
// size to a size-class index, and decide whether a block size's descriptor
// is placed in-page or remote. Computed directly rather than via a
// precomputed table, since PageBytes is configurable.

// nextPow2 returns the smallest power of two >= n, or 1 if n <= 1.
func nextPow2(n int) int32 {
	if n <= 1 {
		return 1
	}
	p := int32(1)
	for int(p) < n {
		p <<= 1
	}
	return p
}

// log2 returns log base 2 of p, which must be a power of two.
func log2(p int32) int32 {
	var c int32
	for p > 1 {
		p >>= 1
		c++
	}
	return c
}

// isInPage reports whether a page of the given block size carries its
// descriptor in the first block of the page: true when descriptorSize <=
// blockSize <= 3*descriptorSize, the range where the descriptor fits
// without wasting most of the page's remaining capacity.
func isInPage(blockSize int32) bool {
	return blockSize >= descriptorSize && blockSize <= 3*descriptorSize
}

// maxBlocks returns the usable block count of a page of the given block
// size: one less than PAGE_BYTES/block_size when the descriptor lives
// in-page (it occupies the first slot), otherwise PAGE_BYTES/block_size.
func maxBlocks(pageBytes, blockSize int32, inPage bool) int32 {
	n := pageBytes / blockSize
	if inPage {
		n--
	}
	return n
}

// roundUpMultiple rounds n up to the nearest multiple of m (m must be a
// power of two). The large path uses this instead of nextPow2 on the
// original request: a power-of-two rounding of an arbitrary large size can
// overshoot the page grid by a full page (e.g. an arena-sized request one
// page short of the arena is not itself a power of two), whereas rounding
// to the page grid directly gives the tightest run that still satisfies
// the request.
func roundUpMultiple(n, m int32) int32 {
	if n <= 0 {
		return m
	}
	return (n + m - 1) / m * m
}
