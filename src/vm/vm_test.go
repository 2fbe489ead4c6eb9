package vm

import (
	"testing"
	"unsafe"

	"mem"
)

func newAlloc(t *testing.T, npages int) *mem.Allocator {
	t.Helper()
	buf := make([]byte, npages*PGSIZE+PGSIZE) // +1 page of slop for alignment
	start := addrOf(t, buf)
	return mem.New(start, start+uintptr(len(buf)))
}

func addrOf(t *testing.T, b []byte) uintptr {
	t.Helper()
	return uintptr(unsafe.Pointer(&b[0]))
}

func TestVirtAddrVpnAndOffset(t *testing.T) {
	va := VirtAddr(0x0000_0040_2010_3456)
	if off := va.Offset(); off != 0x456 {
		t.Fatalf("Offset() = %#x, want 0x456", off)
	}
	// Reconstruct from vpns and offset and check it equals the low 39 bits.
	re := va.Vpn(0)<<12 | va.Vpn(1)<<21 | va.Vpn(2)<<30 | va.Offset()
	if re != uint64(va)&((1<<39)-1) {
		t.Fatalf("vpn/offset reconstruction = %#x, want %#x", re, uint64(va)&((1<<39)-1))
	}
}

func TestVirtAddrValid(t *testing.T) {
	if !VirtAddr(0x1000).Valid() {
		t.Fatal("low address should be valid")
	}
	top := VirtAddr(uint64(0xffff_ffc0_0000_0000) | uint64(0x3fffffffff))
	if !top.Valid() {
		t.Fatal("all-ones-extended address should be valid")
	}
	bad := VirtAddr(uint64(1) << 40) // bit 40 set, bits 63:38 not uniform
	if bad.Valid() {
		t.Fatal("non-canonical address should be invalid")
	}
}

func TestPTERoundTrip(t *testing.T) {
	ppn := uint64(0x1_2345_678)
	pte := makePTE(ppn, PteV|PteR|PteW)
	if pte.Ppn() != ppn {
		t.Fatalf("Ppn() = %#x, want %#x", pte.Ppn(), ppn)
	}
	if !pte.Valid() || !pte.Leaf() {
		t.Fatal("expected a valid leaf entry")
	}
	if pte.Interior() {
		t.Fatal("a leaf entry must not also report Interior")
	}
}

func TestStrongMapAndTranslate(t *testing.T) {
	alloc := newAlloc(t, 16)
	rootPa, ok := alloc.Alloc_frame()
	if !ok {
		t.Fatal("could not allocate root table")
	}
	root := pageTableAt(rootPa)
	w := &Walker{Alloc: alloc}

	va := VirtAddr(0x1000)
	pa := PhysAddr(0x8000_1000)
	if _, err := w.StrongMap(root, va, pa, PteR|PteW); err != nil {
		t.Fatalf("StrongMap: %v", err)
	}

	got, err := Translate(root, va, PteR)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != pa {
		t.Fatalf("Translate = %#x, want %#x", got, pa)
	}

	// Requesting a permission that wasn't granted must fail.
	if _, err := Translate(root, va, PteX); err == nil {
		t.Fatal("expected permission error for X access on a non-executable page")
	}

	// Unmapped address must fail.
	if _, err := Translate(root, VirtAddr(0x9000_0000), PteR); err == nil {
		t.Fatal("expected unmapped error")
	}
}

func TestStrongMapCollisionReturnsOldPTE(t *testing.T) {
	alloc := newAlloc(t, 16)
	rootPa, _ := alloc.Alloc_frame()
	root := pageTableAt(rootPa)
	w := &Walker{Alloc: alloc}

	va := VirtAddr(0x2000)
	if _, err := w.StrongMap(root, va, PhysAddr(0x8000_2000), PteR); err != nil {
		t.Fatal(err)
	}
	old, err := w.StrongMap(root, va, PhysAddr(0x8000_3000), PteR|PteW)
	if err != nil {
		t.Fatal(err)
	}
	if !old.Valid() {
		t.Fatal("expected the previously-installed leaf back")
	}
	if old.PhysAddr() != PhysAddr(0x8000_2000) {
		t.Fatalf("old PTE physaddr = %#x, want 0x80002000", old.PhysAddr())
	}
}

func TestSatpEncoding(t *testing.T) {
	satp := Satp(mem.Pa_t(0x8000_1000))
	if mode := satp >> 60; mode != 8 {
		t.Fatalf("mode = %d, want 8 (Sv39)", mode)
	}
	if ppn := satp & ((1 << 44) - 1); ppn != 0x8000_1000>>12 {
		t.Fatalf("ppn = %#x, want %#x", ppn, 0x8000_1000>>12)
	}
}
