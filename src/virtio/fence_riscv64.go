//go:build riscv64

package virtio

import "unsafe"

func read32(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

func write32(addr uintptr, v uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = v
}

// memFence orders the driver's writes to the avail ring before the device
// (running, conceptually, on another agent entirely) observes them. A
// plain Go memory barrier has no RISC-V `fence` equivalent exposed in this
// package; arch.SfenceVMA is a TLB fence, not a memory-ordering fence, so
// this calls into a dedicated one-instruction stub instead.
func memFence() { fenceRW() }

func fenceRW()
