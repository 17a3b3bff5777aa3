package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFitReturnsSmallestViableClassFirst(t *testing.T) {
	h := newTestHeap(t)

	small := h.heapListp
	writeTags(small, 32, false)
	h.insert(small)

	big := nextBlock(small)
	writeTags(big, 2048, false)
	h.insert(big)

	got := h.findFit(32)
	require.Equal(t, small, got)
}

func TestFindFitSkipsTooSmallWithinAClass(t *testing.T) {
	h := newTestHeap(t)

	tooSmall := h.heapListp
	writeTags(tooSmall, 88, false)
	h.insert(tooSmall)

	fits := nextBlock(tooSmall)
	writeTags(fits, 96, false)
	h.insert(fits)

	// Both land in the same class (class 9 covers D-units 11 and 12), so
	// this also exercises walking past a same-class block that is too
	// small.
	require.Equal(t, classOf(88), classOf(96))

	got := h.findFit(96)
	require.Equal(t, fits, got)
}

func TestFindFitSearchesLargerClassesOnMiss(t *testing.T) {
	h := newTestHeap(t)

	big := h.heapListp
	writeTags(big, 2048, false)
	h.insert(big)

	got := h.findFit(64)
	require.Equal(t, big, got, "must search upward into larger classes when the target class is empty")
}

func TestFindFitReturnsZeroOnNoCandidate(t *testing.T) {
	h := newTestHeap(t)

	require.Equal(t, uintptr(0), h.findFit(64))
}
