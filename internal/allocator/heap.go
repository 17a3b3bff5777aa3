package allocator

import (
	"unsafe"

	"github.com/wentworth/Malloc/internal/errors"
)

// Heap is the explicit value form of a heap's process-wide state (the
// directory head pointers and the heap bounds): a struct that gets
// threaded through every call, in the style this module's teacher
// prefers explicit state over bare package globals for (compare
// RegionAllocator, PoolAllocatorImpl). A package-level convenience
// singleton is layered on top in globalheap.go for callers that want
// classic malloc/free call sites.
//
// Heap is not safe for concurrent use; a caller sharing one across
// goroutines must provide its own mutual exclusion.
type Heap struct {
	pp  PageProvider
	cfg Config

	base       uintptr // pp.Low() at init: one padding word, then the directory block's header.
	dirBP      uintptr // directory sentinel's block pointer.
	prologueBP uintptr // prologue sentinel's block pointer; fixed after init.
	heapListp  uintptr // first real-block position; fixed after init, used as the heap-walk start.
	epilogue   uintptr // current epilogue word's address (always pp.High() - wordSize).

	err error // most recent error, for introspection; cleared by each Allocate.
}

// initPrefixBytes is one leading padding word (so that the directory's
// block pointer, and with it every later block pointer, is D-aligned)
// plus the directory sentinel block plus the prologue block plus the
// initial epilogue word: the fixed heap prefix laid down once at
// construction.
const initPrefixBytes = wordSize + directoryBlockSize + doubleWord + wordSize

// New creates a heap backed by a fresh in-process PageProvider simulator.
// Use NewWithProvider to supply a different one (e.g. the mmap-backed
// provider in pageprovider_unix.go).
func New(opts ...Option) (*Heap, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return NewWithProvider(newSimPageProvider(cfg.InitialCapacity), cfg)
}

// NewWithProvider creates a heap over an already-constructed PageProvider.
func NewWithProvider(pp PageProvider, cfg *Config) (*Heap, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	h := &Heap{pp: pp, cfg: *cfg}

	base, err := pp.Extend(initPrefixBytes)
	if err != nil {
		return nil, err
	}

	h.base = base
	h.dirBP = base + doubleWord
	writeTags(h.dirBP, directoryBlockSize, true)

	prologueBP := nextBlock(h.dirBP)
	writeTags(prologueBP, doubleWord, true)
	h.prologueBP = prologueBP

	h.heapListp = nextBlock(prologueBP)
	h.epilogue = h.heapListp - wordSize
	writeEpilogue(h.epilogue)

	return h, nil
}

// adjustSize normalizes a caller-requested payload size into the
// D-aligned, minimum-enforced block size used internally as asize.
func adjustSize(size uintptr) uint32 {
	if size <= doubleWord {
		return uint32(minBlock)
	}

	return uint32(alignUp(size+doubleWord, doubleWord))
}

// Allocate returns a pointer to a payload of at least size bytes, or nil
// if the request cannot be satisfied. A size of 0 returns nil.
func (h *Heap) Allocate(size uintptr) unsafe.Pointer {
	h.err = nil

	if size == 0 {
		return nil
	}

	asize := adjustSize(size)

	if bp := h.findFit(asize); bp != 0 {
		return unsafe.Pointer(h.place(bp, asize))
	}

	grow := uintptr(asize)
	if h.cfg.ChunkSize > grow {
		grow = h.cfg.ChunkSize
	}

	bp, err := h.extendHeap(grow)
	if err != nil {
		h.err = err
		return nil
	}

	return unsafe.Pointer(h.place(bp, asize))
}

// Free releases the block at ptr back to the heap. A nil pointer is a
// no-op; anything else out-of-contract (double free, non-heap pointer,
// interior pointer) is undefined behavior, not handled here.
func (h *Heap) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	bp := uintptr(ptr)
	setAllocated(bp, false)
	h.coalesce(bp)
}

// Reallocate resizes the block at ptr to hold size bytes, preserving its
// contents up to the smaller of the old and new sizes.
func (h *Heap) Reallocate(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	if size == 0 {
		h.Free(ptr)
		return nil
	}

	if ptr == nil {
		return h.Allocate(size)
	}

	bp := uintptr(ptr)
	asize := adjustSize(size)

	if asize <= readSize(bp) {
		return ptr
	}

	newPtr := h.Allocate(size)
	if newPtr == nil {
		return nil
	}

	oldPayload := uintptr(readSize(bp)) - 2*wordSize
	copySize := oldPayload
	if copySize > size {
		copySize = size
	}

	copyMemory(newPtr, ptr, copySize)
	h.Free(ptr)

	return newPtr
}

// Calloc allocates n*size bytes and zeroes the requested payload.
// Overflow of n*size is out-of-contract territory, but this
// implementation still refuses deterministically rather than silently
// wrapping (see SPEC_FULL.md §4.8).
func (h *Heap) Calloc(n, size uintptr) unsafe.Pointer {
	if n == 0 || size == 0 {
		return h.Allocate(0)
	}

	if size > 0 && n > (^uintptr(0))/size {
		h.err = errors.CallocOverflow(n, size)
		return nil
	}

	total := n * size

	ptr := h.Allocate(total)
	if ptr == nil {
		return nil
	}

	zeroMemory(ptr, total)

	return ptr
}

// LastError returns the error recorded by the most recent failed
// Allocate, Reallocate or Calloc. Allocate clears it on entry, and so
// does every Reallocate or Calloc that goes through Allocate; Free, the
// in-place Reallocate path and Reallocate(ptr, 0) leave it unchanged.
func (h *Heap) LastError() error { return h.err }

// Low and High expose the current heap bounds, mirroring the
// PageProvider contract the core itself consumes. Used by the checker
// and by tests.
func (h *Heap) Low() uintptr  { return h.pp.Low() }
func (h *Heap) High() uintptr { return h.pp.High() }

func copyMemory(dst unsafe.Pointer, src unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}

func zeroMemory(dst unsafe.Pointer, n uintptr) {
	b := unsafe.Slice((*byte)(dst), n)
	for i := range b {
		b[i] = 0
	}
}
