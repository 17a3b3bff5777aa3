package allocator

import "github.com/wentworth/Malloc/internal/errors"

// Check runs the heap's consistency predicate: a physical walk of every
// block from the prologue to the epilogue, a walk of every free-list
// class, and a reconciliation between what each one saw. It returns the
// first violation found as a *errors.StandardError, or nil if the heap
// is consistent.
//
// Check never mutates the heap; it is safe to call between any two
// public operations, including concurrently with nothing else touching
// the same *Heap (the core itself is not concurrency-safe, see Heap's
// doc comment).
func (h *Heap) Check() error {
	freeByWalk, err := h.checkPhysicalWalk()
	if err != nil {
		return err
	}

	freeByLists, err := h.checkFreeLists()
	if err != nil {
		return err
	}

	if freeByWalk != freeByLists {
		return errors.FreeCountMismatch(freeByWalk, freeByLists)
	}

	return nil
}

// checkPhysicalWalk walks every block from heapListp to the epilogue,
// verifying each block's header/footer agree, that no two physically
// adjacent blocks are both free (coalescing should have merged them),
// that every block pointer stays double-word aligned and in bounds, and
// that every block meets the minimum block size (a corrupted size below
// that, if zero, would also spin nextBlock forever). The prologue and
// epilogue sentinels are checked for their fixed shape before and after
// the walk respectively. It returns the number of free blocks it
// encountered.
func (h *Heap) checkPhysicalWalk() (int, error) {
	prologueSize := readSize(h.prologueBP)
	if prologueSize != doubleWord || !isAllocated(h.prologueBP) {
		return 0, errors.SentinelCorrupted("prologue", h.prologueBP, prologueSize, isAllocated(h.prologueBP))
	}

	low, high := h.Low(), h.High()
	freeCount := 0
	prevWasFree := false
	var prevBP uintptr

	// The epilogue is a single sentinel word at h.epilogue; as a
	// zero-size "block" its own bp would sit one word past that, which
	// is exactly where the physical walk must stop.
	epilogueBP := h.epilogue + wordSize

	for bp := h.heapListp; bp != epilogueBP; bp = nextBlock(bp) {
		if bp%doubleWord != 0 {
			return 0, errors.MisalignedBlock(bp)
		}

		if bp < low || bp >= high {
			return 0, errors.BlockOutOfBounds(bp, low, high)
		}

		size := readSize(bp)
		if size < minBlock {
			return 0, errors.BlockTooSmall(bp, size, minBlock)
		}

		header := readHeader(bp)
		footer := readFooter(bp)
		if header != footer {
			return 0, errors.HeaderFooterMismatch(bp, header, footer)
		}

		free := !isAllocated(bp)
		if free {
			if prevWasFree {
				return 0, errors.AdjacentFreeBlocks(prevBP, bp)
			}
			freeCount++
		}

		prevWasFree = free
		prevBP = bp
	}

	epilogueWord := loadWord(h.epilogue)
	if unpackSize(epilogueWord) != 0 || !unpackAlloc(epilogueWord) {
		return 0, errors.SentinelCorrupted("epilogue", h.epilogue, unpackSize(epilogueWord), unpackAlloc(epilogueWord))
	}

	return freeCount, nil
}

// checkFreeLists walks every size class's list, verifying each node is
// actually free, actually belongs in that class per classOf, and that
// its prev/next links agree with its neighbors' links. It returns the
// total number of nodes found across all classes.
func (h *Heap) checkFreeLists() (int, error) {
	low, high := h.Low(), h.High()
	total := 0

	for class := 1; class <= MaxFreeClasses; class++ {
		var prev uintptr

		for bp := h.head(class); bp != 0; bp = freeNext(bp) {
			if bp < low || bp >= high {
				return 0, errors.BlockOutOfBounds(bp, low, high)
			}

			if isAllocated(bp) {
				return 0, errors.AllocatedOnFreeList(bp, class)
			}

			if actual := classOf(readSize(bp)); actual != class {
				return 0, errors.WrongFreeListClass(bp, class, actual)
			}

			if freePrev(bp) != prev {
				return 0, errors.BrokenFreeListLink(bp, freePrev(bp), prev, "prev")
			}

			if prev != 0 && freeNext(prev) != bp {
				return 0, errors.BrokenFreeListLink(prev, bp, bp, "next")
			}

			prev = bp
			total++
		}
	}

	return total, nil
}
