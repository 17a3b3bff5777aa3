package allocator

// place commits an allocation inside a free block already known to be
// large enough, splitting off the remainder when it would still meet the
// minimum block size. Postcondition: bp is allocated and on no free
// list; every other free block remains well-formed.
func (h *Heap) place(bp uintptr, asize uint32) uintptr {
	csize := readSize(bp)

	h.remove(bp)

	if csize-asize >= minBlock {
		writeTags(bp, asize, true)

		remainder := nextBlock(bp)
		writeTags(remainder, csize-asize, false)

		// Defensive: bp is now allocated so the remainder cannot merge
		// left, but it may still merge right, so the generic coalesce
		// path is used rather than a bare insert.
		h.coalesce(remainder)
	} else {
		writeTags(bp, csize, true)
	}

	return bp
}
