package allocator

// insert publishes a free block at the head of its size class's list
// (LIFO). The caller must guarantee bp is currently unlinked from every
// list.
func (h *Heap) insert(bp uintptr) {
	class := classOf(readSize(bp))
	top := h.head(class)

	setFreePrev(bp, 0)
	setFreeNext(bp, top)

	if top != 0 {
		setFreePrev(top, bp)
	}

	h.setHead(class, bp)
}

// remove unlinks a free block from whichever list it currently sits on.
// The caller must guarantee bp is currently free and on that list.
func (h *Heap) remove(bp uintptr) {
	prev := freePrev(bp)
	next := freeNext(bp)

	if prev != 0 {
		setFreeNext(prev, next)
	} else {
		h.setHead(classOf(readSize(bp)), next)
	}

	if next != 0 {
		setFreePrev(next, prev)
	}
}
