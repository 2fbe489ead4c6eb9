// Package mem implements the kernel's physical frame allocator: a
// bump/free-list allocator handing out 4096-byte, 4096-aligned frames of
// physical RAM. It is the rvos analogue of biscuit's mem.Physmem_t, cut down
// to a single-owner model (no refcounting — vm and proc never share a frame,
// so there is nothing to count).
package mem

import (
	"sync"
	"unsafe"

	"util"
)

// Pa_t is a physical address. It is a distinct type from a virtual address
// so the compiler catches code that tries to dereference one directly; on
// this kernel every physical address below RAMEnd also happens to be
// identity-mapped in the kernel's own page table, so Bytes can safely turn
// one into a byte slice.
type Pa_t uintptr

// PGSIZE is the frame size and alignment granularity.
const PGSIZE = 4096

// Pg_t is the content of one physical page, addressable as 512 uint64s —
// the same shape PTEs and trapframes both want.
type Pg_t [PGSIZE / 8]uint64

// freeFrame is the free-list node biscuit's allocator avoids only because it
// refcounts; we embed the `next` pointer in the first word of the frame
// itself, the classic xv6/biscuit kfree trick, so freeing never allocates.
type freeFrame struct {
	next *freeFrame
}

// Allocator is a single spin-mutex-guarded free list over a contiguous RAM
// range, per spec.md's "Frame allocator: a single spin-mutex (or
// equivalent) guards the global free list."
type Allocator struct {
	mu ffmutex

	// start/end bound the region this allocator may hand out. Both are
	// PGSIZE-aligned; end is exclusive.
	start, end Pa_t

	// bumpNext is the next never-yet-touched frame; the free list only
	// holds frames that were allocated and returned at least once.
	bumpNext Pa_t
	free     *freeFrame

	nfree int
	ntot  int
}

// ffmutex is a thin rename of sync.Mutex: on real hardware this guard is
// held for only a handful of instructions (list push/pop), so a spinlock
// would do, but nothing in this kernel implements one yet.
type ffmutex = sync.Mutex

// New creates an allocator over [start, end), rounding start up and end down
// to page boundaries. start is normally one page past the end of the kernel
// image; end is normally memlayout.RAMEnd.
func New(start, end uintptr) *Allocator {
	s := Pa_t(util.Roundup(start, PGSIZE))
	e := Pa_t(util.Rounddown(end, PGSIZE))
	n := 0
	if e > s {
		n = int((e - s) / PGSIZE)
	}
	return &Allocator{start: s, end: e, bumpNext: s, ntot: n}
}

// Alloc_frame returns one zeroed physical frame, or ok=false if the
// allocator is exhausted. Mirrors biscuit's Phys_alloc naming.
func (a *Allocator) Alloc_frame() (Pa_t, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.free != nil {
		f := a.free
		a.free = f.next
		a.nfree--
		pa := Pa_t(uintptr(unsafe.Pointer(f)))
		zero(pa)
		return pa, true
	}
	if a.bumpNext >= a.end {
		return 0, false
	}
	pa := a.bumpNext
	a.bumpNext += PGSIZE
	zero(pa)
	return pa, true
}

// Free_frame returns a frame to the allocator. Passing a frame not obtained
// from Alloc_frame, or passing one twice without an intervening Alloc_frame,
// corrupts the free list — the same contract biscuit's Phys_free carries.
func (a *Allocator) Free_frame(pa Pa_t) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := (*freeFrame)(unsafe.Pointer(uintptr(pa)))
	n.next = a.free
	a.free = n
	a.nfree++
}

// Nfree reports how many frames are currently free (bump-untouched plus
// freed-and-relisted), for diagnostics and tests.
func (a *Allocator) Nfree() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	untouched := int((a.end - a.bumpNext) / PGSIZE)
	return untouched + a.nfree
}

// Total reports the total frame capacity of this allocator's range.
func (a *Allocator) Total() int { return a.ntot }

// Bytes views the frame at pa as a byte slice, valid for as long as the
// kernel's identity map of RAM is installed (i.e. always, on this kernel —
// there is no separate physical direct-map region the way biscuit's dmap.go
// needs one for its higher-half x86 layout).
func Bytes(pa Pa_t) []byte {
	return util.Bytes(uintptr(pa), PGSIZE)
}

func zero(pa Pa_t) {
	b := Bytes(pa)
	for i := range b {
		b[i] = 0
	}
}
