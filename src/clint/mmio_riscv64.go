//go:build riscv64

package clint

import "unsafe"

import "memlayout"

func ReadMtime() uint64 {
	return *(*uint64)(unsafe.Pointer(uintptr(memlayout.MtimeAddr)))
}

func WriteMtimecmp(hart int, v uint64) {
	addr := memlayout.MtimecmpAddr(hart)
	*(*uint64)(unsafe.Pointer(addr)) = v
}
