package arena

import "github.com/pkg/errors"

// These sentinels never reach a caller directly -- every public operation
// collapses failure to a plain false/zero Ref -- but they tag the internal
// log traces so a debug-enabled caller (or a test) can tell the three
// failure causes apart.
var (
	// ErrSizeTooSmall is the cause when a requested size rounds below the
	// minimum block size (the page-descriptor size rounded up to a power of
	// two).
	ErrSizeTooSmall = errors.New("arena: requested size rounds below the minimum block size")
	// ErrArenaExhausted is the cause when no page slot or descriptor block
	// can be obtained for a small allocation or for a large allocation's
	// descriptor.
	ErrArenaExhausted = errors.New("arena: no page slot or descriptor block available")
	// ErrLargeRunUnavailable is the cause when no contiguous run of free
	// pages is long enough for a large allocation.
	ErrLargeRunUnavailable = errors.New("arena: no contiguous free page run long enough")
)
