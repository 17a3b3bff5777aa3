// Command heapdemo exercises the allocator core end to end against a
// real mmap-backed PageProvider: ten allocations of varying size, frees
// of every other one, a realloc, and a consistency check after each step.
// It is a smoke test a reader can run and watch, not a benchmark.
package main

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/wentworth/Malloc/internal/allocator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "heapdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	pp, err := allocator.NewMmapPageProvider(16 * 1024 * 1024)
	if err != nil {
		return err
	}
	defer pp.Close()

	h, err := allocator.NewWithProvider(pp, allocator.DefaultConfig())
	if err != nil {
		return err
	}

	var ptrs []unsafe.Pointer
	sizes := []uintptr{16, 32, 48, 8, 4096, 128, 64, 1, 256, 1024}

	for _, sz := range sizes {
		p := h.Allocate(sz)
		if p == nil {
			return fmt.Errorf("allocate(%d) failed: %v", sz, h.LastError())
		}
		ptrs = append(ptrs, p)

		if err := h.Check(); err != nil {
			return fmt.Errorf("after allocate(%d): %w", sz, err)
		}
	}

	fmt.Printf("allocated %d blocks, heap now spans [0x%x, 0x%x)\n", len(ptrs), h.Low(), h.High())

	for i := 0; i < len(ptrs); i += 2 {
		h.Free(ptrs[i])
		if err := h.Check(); err != nil {
			return fmt.Errorf("after free #%d: %w", i, err)
		}
	}

	grown := h.Reallocate(ptrs[1], 512)
	if grown == nil {
		return fmt.Errorf("reallocate failed: %v", h.LastError())
	}

	if err := h.Check(); err != nil {
		return fmt.Errorf("after reallocate: %w", err)
	}

	fmt.Println("heap consistent after reallocate")

	return nil
}
