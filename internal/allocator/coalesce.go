package allocator

// coalesce merges a just-freed block bp with any free physical neighbors
// and publishes the resulting block to its size class's free list. bp's
// header and footer must already be marked free, and bp must not yet be
// on any free list — exactly the state Free() and splitting leave a
// block in before calling this. Implements the classic four-case
// boundary-tag merge table.
func (h *Heap) coalesce(bp uintptr) uintptr {
	// The prologue and epilogue sentinels are always allocated, so the
	// neighbor checks never need to special-case the heap's edges.
	leftFree := !isAllocated(prevBlock(bp))
	rightFree := !isAllocated(nextBlock(bp))

	switch {
	case !leftFree && !rightFree:
		h.insert(bp)

	case !leftFree && rightFree:
		right := nextBlock(bp)
		h.remove(right)

		size := readSize(bp) + readSize(right)
		writeTags(bp, size, false)
		h.insert(bp)

	case leftFree && !rightFree:
		left := prevBlock(bp)
		h.remove(left)

		size := readSize(left) + readSize(bp)
		writeTags(left, size, false)
		bp = left
		h.insert(bp)

	default: // leftFree && rightFree
		left := prevBlock(bp)
		right := nextBlock(bp)
		h.remove(left)
		h.remove(right)

		size := readSize(left) + readSize(bp) + readSize(right)
		writeTags(left, size, false)
		bp = left
		h.insert(bp)
	}

	return bp
}
