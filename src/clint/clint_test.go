//go:build !riscv64

package clint

import (
	"testing"
	"unsafe"
)

func uintptrOfField(p *uint64) uintptr {
	return uintptr(unsafe.Pointer(p))
}

func TestInitArmsFirstTick(t *testing.T) {
	var table ScratchTable
	before := ReadMtime()
	Init(&table, 0, 1000)
	if table[0].Interval != 1000 {
		t.Fatalf("Interval = %d, want 1000", table[0].Interval)
	}
	if hostMtimecmps[0] <= before {
		t.Fatal("expected the first tick to be armed strictly after the current time")
	}
}

func TestScratchOffsets(t *testing.T) {
	var s Scratch
	base := uintptrOfField(&s.reg0)
	if got := uintptrOfField(&s.MtimecmpAddr) - base; got != ScratchMtimecmpAddr {
		t.Fatalf("MtimecmpAddr offset = %d, want %d", got, ScratchMtimecmpAddr)
	}
	if got := uintptrOfField(&s.Interval) - base; got != ScratchInterval {
		t.Fatalf("Interval offset = %d, want %d", got, ScratchInterval)
	}
}
