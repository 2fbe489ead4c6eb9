//go:build riscv64

package uart

import (
	"unsafe"

	"memlayout"
)

func readReg(off uintptr) byte {
	return *(*byte)(unsafe.Pointer(uintptr(memlayout.UartBase) + off))
}

func writeReg(off uintptr, v byte) {
	*(*byte)(unsafe.Pointer(uintptr(memlayout.UartBase) + off)) = v
}
