package allocator

// extendHeap grows the heap by at least minBytes, rounding up to an even
// number of words to preserve double-word alignment. The PageProvider's
// returned address becomes the new block's bp; its header position,
// bp-wordSize, is precisely where the old epilogue sat — see
// newBlockFromGrowth for why that overwrite is safe.
func (h *Heap) extendHeap(minBytes uintptr) (uintptr, error) {
	words := (minBytes + wordSize - 1) / wordSize
	if words%2 != 0 {
		words++
	}

	sz := words * wordSize

	bp, err := h.pp.Extend(sz)
	if err != nil {
		return 0, err
	}

	return h.newBlockFromGrowth(bp, uint32(sz)), nil
}

// newBlockFromGrowth finishes what extendHeap started: bp is exactly the
// PageProvider's prior high-water mark, which is also exactly where the
// old epilogue word lived (headerAddr(bp) == bp-wordSize == old High() -
// wordSize). Writing this block's header there overwrites that epilogue
// word in place; a fresh epilogue then goes at the new high-water mark.
// Finally the new free block is coalesced, handling the case where the
// block physically before it (the one the old epilogue trailed) was
// free.
func (h *Heap) newBlockFromGrowth(bp uintptr, sz uint32) uintptr {
	writeTags(bp, sz, false)

	newEpi := bp + uintptr(sz) - wordSize
	writeEpilogue(newEpi)
	h.epilogue = newEpi

	return h.coalesce(bp)
}
