package allocator

import "unsafe"

// GlobalAllocator mirrors the package-level singleton this module's
// teacher exposes alongside its explicit Allocator type: most callers
// want one process-wide heap and classic malloc/free/realloc/calloc call
// sites, not a *Heap to carry around. It is nil until Initialize runs.
var GlobalAllocator *Heap

// Initialize sets up GlobalAllocator on first call and is an idempotent
// no-op on every call after. Options passed to a call after the first
// are ignored, since there is nothing left to configure.
func Initialize(opts ...Option) error {
	if GlobalAllocator != nil {
		return nil
	}

	h, err := New(opts...)
	if err != nil {
		return err
	}

	GlobalAllocator = h

	return nil
}

// ensureGlobal lazily initializes GlobalAllocator with defaults so the
// package-level Allocate/Calloc entry points work without an explicit
// Initialize call, the same lazy-default posture SystemAllocatorImpl
// takes for its first allocation.
func ensureGlobal() *Heap {
	if GlobalAllocator == nil {
		_ = Initialize()
	}

	return GlobalAllocator
}

// Allocate delegates to GlobalAllocator, initializing it with defaults
// if necessary.
func Allocate(size uintptr) unsafe.Pointer { return ensureGlobal().Allocate(size) }

// Free delegates to GlobalAllocator.
func Free(ptr unsafe.Pointer) { ensureGlobal().Free(ptr) }

// Reallocate delegates to GlobalAllocator.
func Reallocate(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return ensureGlobal().Reallocate(ptr, size)
}

// Calloc delegates to GlobalAllocator.
func Calloc(n, size uintptr) unsafe.Pointer { return ensureGlobal().Calloc(n, size) }
