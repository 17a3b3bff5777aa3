package allocator

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// TestLawIdempotenceOfInit: allocate(0) repeated after init always
// yields null and never changes heap state.
func TestLawIdempotenceOfInit(t *testing.T) {
	h := newTestHeap(t)

	before := h.High()

	for i := 0; i < 5; i++ {
		require.Nil(t, h.Allocate(0))
	}

	require.Equal(t, before, h.High())
	require.NoError(t, h.Check())
}

// TestLawZeroInitialization: every byte returned by calloc is zero,
// across a spread of shapes.
func TestLawZeroInitialization(t *testing.T) {
	h := newTestHeap(t)

	cases := []struct{ n, size uintptr }{
		{1, 1}, {3, 8}, {17, 5}, {1, 4096},
	}

	for _, c := range cases {
		p := h.Calloc(c.n, c.size)
		require.NotNil(t, p)

		b := unsafe.Slice((*byte)(p), int(c.n*c.size))
		for _, v := range b {
			require.Equal(t, byte(0), v)
		}
	}
}

// TestLawAlignment: every non-zero allocation is 8-aligned.
func TestLawAlignment(t *testing.T) {
	h := newTestHeap(t)

	for _, sz := range []uintptr{1, 2, 7, 8, 9, 15, 16, 17, 100, 4096, 10000} {
		p := h.Allocate(sz)
		require.NotNil(t, p)
		require.Zero(t, uintptr(p)%doubleWord)
	}
}

// TestLawCopyPreservation: reallocate copies min(old, new) bytes.
func TestLawCopyPreservation(t *testing.T) {
	h := newTestHeap(t)

	p := h.Allocate(64)
	require.NotNil(t, p)

	src := unsafe.Slice((*byte)(p), 64)
	for i := range src {
		src[i] = byte(i)
	}

	q := h.Reallocate(p, 256)
	require.NotNil(t, q)

	got := unsafe.Slice((*byte)(q), 64)
	for i, v := range got {
		require.Equal(t, byte(i), v)
	}
}

// TestInvariantEveryBlockDAlignedAndTagged walks the heap after a burst
// of activity and checks the first quantified invariant directly
// (independent of Check, which folds the same walk together with the
// free-list checks).
func TestInvariantEveryBlockDAlignedAndTagged(t *testing.T) {
	h := newTestHeap(t)

	var ptrs []unsafe.Pointer
	for _, sz := range []uintptr{8, 40, 200, 16, 4096} {
		ptrs = append(ptrs, h.Allocate(sz))
	}
	for i := 0; i < len(ptrs); i += 2 {
		h.Free(ptrs[i])
	}

	epilogueBP := h.epilogue + wordSize
	for bp := h.heapListp; bp != epilogueBP; bp = nextBlock(bp) {
		require.Zero(t, bp%doubleWord)
		require.Zero(t, readSize(bp)%doubleWord)
		require.Equal(t, readHeader(bp), readFooter(bp))
	}
}

// TestInvariantFreeListMembershipMatchesClass: every node reachable from
// any class head actually classifies into that class.
func TestInvariantFreeListMembershipMatchesClass(t *testing.T) {
	h := newTestHeap(t)

	var ptrs []unsafe.Pointer
	for _, sz := range []uintptr{24, 48, 1000, 32, 2048, 48, 8, 4096} {
		ptrs = append(ptrs, h.Allocate(sz))
	}
	for _, p := range ptrs {
		h.Free(p)
	}

	for class := 1; class <= MaxFreeClasses; class++ {
		for bp := h.head(class); bp != 0; bp = freeNext(bp) {
			require.Equal(t, class, classOf(readSize(bp)))
			require.False(t, isAllocated(bp))
		}
	}

	require.NoError(t, h.Check())
}
