//go:build riscv64

package plic

import "unsafe"

func read32(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

func write32(addr uintptr, v uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = v
}
