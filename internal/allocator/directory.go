package allocator

// The free-list directory is resident inside the heap as an
// always-allocated sentinel block: addressable like any other block, but
// never placed on a free list and never coalesced. Its payload is
// directorySlots (18) nullable block-pointer slots, addressed by class
// number; classOf only ever returns 1..MaxFreeClasses (17), so slot 0 is
// an unused spare.

const directoryPayload = directorySlots * doubleWord
const directoryBlockSize = directoryPayload + 2*wordSize

// classOf returns the size class (1..MaxFreeClasses) for a block of the
// given byte size, per the half-open-interval table: class k holds sizes
// in (C[k-1], C[k]] D-units, and anything past the last tabulated
// threshold (C[16]=1024 D-units) lands in the open-ended class 17 —
// which also covers sizes past 2048 D-units, since that is a subset of
// ">1024".
func classOf(size uint32) int {
	sizeD := size / doubleWord
	for k := 1; k < MaxFreeClasses; k++ {
		if sizeD <= classThresholds[k] {
			return k
		}
	}

	return MaxFreeClasses
}

func (h *Heap) slotAddr(class int) uintptr {
	return h.dirBP + uintptr(class)*doubleWord
}

func (h *Heap) head(class int) uintptr {
	return loadPtr(h.slotAddr(class))
}

func (h *Heap) setHead(class int, bp uintptr) {
	storePtr(h.slotAddr(class), bp)
}
