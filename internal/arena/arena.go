// Package arena implements a fixed-size, size-segregated block allocator.
//
// The whole heap is a single contiguous []byte ("the arena"), split into
// equal-sized pages. Page 0 carries the allocator's own bookkeeping: a page
// directory (one slot per page: free, busy, or owned by a descriptor) and a
// free-list table (one head-of-list per size class). Everything else --
// page descriptors, intrusive free-block links -- lives inside the arena
// too; the allocator never reaches for memory outside of it.
//
// See alloc.go, free.go, large.go and realloc.go for the request router,
// layout.go for the unsafe accessors, and sizeclass.go for the
// size-class math.
package arena

import (
	"io"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Ref is a reference to an allocated block: a byte offset from the start of
// the arena. The zero Ref is never returned by a successful Alloc/Realloc
// (page 0 is always reserved), so callers can use it as a sentinel.
type Ref int32

// Config holds the arena's sizing parameters, made runtime-configurable so
// the allocator can be instantiated more than once (e.g. for isolated
// tests) without disturbing any other instance.
type Config struct {
	// ArenaBytes is the total size of the arena. Must be a power of two and
	// a multiple of PageBytes. Reference value: 65536.
	ArenaBytes int
	// PageBytes is the size of one page. Must be a power of two and at
	// least four times the size of a page descriptor. Reference value: 2048.
	PageBytes int
	// Logger receives debug traces of page construction, reclamation, and
	// large-run placement. Defaults to a discard logger.
	Logger *logrus.Entry
}

// DefaultConfig returns the reference parameters (ArenaBytes=65536,
// PageBytes=2048).
func DefaultConfig() Config {
	return Config{ArenaBytes: 65536, PageBytes: 2048}
}

// Arena is a single instance of the allocator's arena, directory, free-list
// table and page descriptors -- all backed by one []byte.
type Arena struct {
	buf  []byte
	base unsafe.Pointer

	pageBytes      int32
	pageCount      int32
	numSizeClasses int32
	minBlockSize   int32

	log *logrus.Entry
}

// New allocates the backing buffer and initializes the arena (equivalent to
// calling Init immediately after construction).
func New(cfg Config) (*Arena, error) {
	if cfg.ArenaBytes <= 0 {
		cfg.ArenaBytes = DefaultConfig().ArenaBytes
	}
	if cfg.PageBytes <= 0 {
		cfg.PageBytes = DefaultConfig().PageBytes
	}
	if cfg.PageBytes&(cfg.PageBytes-1) != 0 {
		return nil, errors.Errorf("arena: PageBytes %d is not a power of two", cfg.PageBytes)
	}
	if cfg.ArenaBytes%cfg.PageBytes != 0 {
		return nil, errors.Errorf("arena: ArenaBytes %d is not a multiple of PageBytes %d", cfg.ArenaBytes, cfg.PageBytes)
	}

	pageCount := int32(cfg.ArenaBytes / cfg.PageBytes)
	numClasses := log2(int32(cfg.PageBytes/2)) + 1
	headerBytes := pageCount*4 + numClasses*4
	if headerBytes > int32(cfg.PageBytes) {
		return nil, errors.Errorf("arena: PageBytes %d too small to hold the directory and free-list table for %d pages", cfg.PageBytes, pageCount)
	}
	if int32(cfg.PageBytes) < 4*descriptorSize {
		return nil, errors.Errorf("arena: PageBytes %d must be at least %d (4x descriptor size)", cfg.PageBytes, 4*descriptorSize)
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	buf := make([]byte, cfg.ArenaBytes)
	a := &Arena{
		buf:            buf,
		base:           unsafe.Pointer(&buf[0]),
		pageBytes:      int32(cfg.PageBytes),
		pageCount:      pageCount,
		numSizeClasses: numClasses,
		minBlockSize:   nextPow2(int(descriptorSize)),
		log:            log,
	}
	a.Init()
	return a, nil
}

// Init (re)sets the directory and free-list table: page 0's slot is marked
// busy, every other page slot is freed, and every size-class head is
// cleared. Calling Init twice yields the same state as calling it once.
func (a *Arena) Init() {
	for p := int32(0); p < a.pageCount; p++ {
		*a.dirEntry(p) = slotFree
	}
	*a.dirEntry(0) = slotBusy
	for c := int32(0); c < a.numSizeClasses; c++ {
		*a.freelistHead(c) = noPage
	}
}

// PageBytes returns the arena's page size.
func (a *Arena) PageBytes() int { return int(a.pageBytes) }

// PageCount returns the number of pages in the arena.
func (a *Arena) PageCount() int { return int(a.pageCount) }

// ArenaBytes returns the total arena size.
func (a *Arena) ArenaBytes() int { return len(a.buf) }

// Bytes returns a byte slice view over the block referenced by r, sized to
// that block's size class (or, for a large allocation, its full page run).
// The caller must not retain the slice past the next Free/Realloc of r.
func (a *Arena) Bytes(r Ref) []byte {
	size := a.blockSizeOf(r)
	return unsafe.Slice((*byte)(a.ptrAt(int32(r))), size)
}

func (a *Arena) blockSizeOf(r Ref) int32 {
	p := a.pageIndexOf(int32(r))
	desc := a.descriptorAt(*a.dirEntry(p))
	return desc.BlockSize
}

func (a *Arena) logDebug(msg string, fields logrus.Fields) {
	if a.log == nil {
		return
	}
	a.log.WithFields(fields).Debug(msg)
}
