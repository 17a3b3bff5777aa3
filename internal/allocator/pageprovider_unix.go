//go:build unix

package allocator

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/wentworth/Malloc/internal/errors"
)

// mmapPageProvider backs the heap with a real anonymous mapping instead
// of Go-managed memory. Like simPageProvider it reserves its full
// capacity in one call and only ever advances a high-water mark — the
// mapping is never grown or moved after creation, which is what keeps
// block-pointer addresses stable across Extend calls.
type mmapPageProvider struct {
	region []byte
	base   uintptr
	used   uintptr
	cap    uintptr
}

// NewMmapPageProvider reserves capacity bytes of anonymous, private,
// read-write memory. Used by cmd/heapdemo and by the unix-only tests in
// pageprovider_unix_test.go; every other test in this module runs
// against simPageProvider so it never depends on the host OS.
func NewMmapPageProvider(capacity uintptr) (*mmapPageProvider, error) {
	region, err := unix.Mmap(-1, 0, int(capacity), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.NewStandardError(errors.CategorySystem, "MMAP_FAILED", err.Error(), map[string]interface{}{
			"capacity": capacity,
		})
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(region)))

	return &mmapPageProvider{region: region, base: base, cap: capacity}, nil
}

func (p *mmapPageProvider) Extend(n uintptr) (uintptr, error) {
	if p.used+n > p.cap {
		return 0, errors.PageProviderExhausted(p.used, n, p.cap)
	}

	addr := p.base + p.used
	p.used += n

	return addr, nil
}

func (p *mmapPageProvider) Low() uintptr  { return p.base }
func (p *mmapPageProvider) High() uintptr { return p.base + p.used }

// Close releases the mapping. Not part of PageProvider: the core never
// shrinks or releases memory during its lifetime, so this is only
// meaningful for a caller tearing down a demo process.
func (p *mmapPageProvider) Close() error {
	return unix.Munmap(p.region)
}
