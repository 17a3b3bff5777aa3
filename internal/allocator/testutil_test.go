package allocator

import (
	"testing"
	"unsafe"
)

// baseOf returns the address of backing's first byte, keeping backing
// alive for the caller via t.Cleanup so the address stays valid for the
// duration of the test. Used by the low-level block.go tests, which
// need real addressable memory but not a whole Heap.
func baseOf(t *testing.T, backing []byte) uintptr {
	t.Helper()

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(backing)))
	t.Cleanup(func() { _ = backing })

	return addr
}

// newTestHeap builds a small Heap over a simPageProvider sized generously
// for unit tests, so extension never fails mid-test.
func newTestHeap(t *testing.T) *Heap {
	t.Helper()

	h, err := New(WithInitialCapacity(8 * 1024 * 1024))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return h
}
