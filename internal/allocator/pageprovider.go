package allocator

import (
	"unsafe"

	"github.com/wentworth/Malloc/internal/errors"
)

// PageProvider is the external sbrk-style primitive the heap core is
// built on top of. It is intentionally the only collaborator the core
// depends on for raw memory: everything else — block layout, free lists,
// coalescing, placement — is pure arithmetic over the bytes it hands out.
//
// Extend must return an address equal to the provider's current High();
// after a successful Extend, High() must equal the old High() plus the
// requested byte count, and addresses returned by prior calls must remain
// valid and unchanged (the region only ever grows upward).
type PageProvider interface {
	// Extend grows the region by n bytes and returns the address of the
	// first byte of the new span. n is always a positive multiple of
	// wordSize. Returns an error if the provider cannot grow further.
	Extend(n uintptr) (uintptr, error)

	// Low returns the inclusive lower bound of the region.
	Low() uintptr

	// High returns the exclusive upper bound of the region: the address
	// one past the last byte currently handed out.
	High() uintptr
}

// simPageProvider is the default, always-available PageProvider. It
// mirrors the "placeholder for mmap()" idiom used throughout the runtime
// this module was grown from (internal/runtime.allocateSystemMemory):
// reserve a large backing buffer up front with Go's own allocator, then
// only ever advance a used-length counter into it. Because the backing
// slice is never resized, the address of byte 0 never changes, which is
// the address-stability guarantee the block-pointer-based free lists
// depend on.
type simPageProvider struct {
	backing []byte
	base    uintptr
	used    uintptr
	cap     uintptr
}

// newSimPageProvider reserves capacity bytes and returns a provider whose
// region starts out empty (Low() == High()).
func newSimPageProvider(capacity uintptr) *simPageProvider {
	buf := make([]byte, capacity)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))

	return &simPageProvider{
		backing: buf,
		base:    base,
		used:    0,
		cap:     capacity,
	}
}

func (p *simPageProvider) Extend(n uintptr) (uintptr, error) {
	if p.used+n > p.cap {
		return 0, errors.PageProviderExhausted(p.used, n, p.cap)
	}

	addr := p.base + p.used
	p.used += n

	return addr, nil
}

func (p *simPageProvider) Low() uintptr  { return p.base }
func (p *simPageProvider) High() uintptr { return p.base + p.used }
