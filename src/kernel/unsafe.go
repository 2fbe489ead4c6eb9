package main

import "unsafe"

// scratchAddrOf returns the address of hart's CLINT scratch slot, for
// earlyMain to hand to boot.Start as the value mscratch should hold.
func scratchAddrOf(hart int) uintptr {
	return uintptr(unsafe.Pointer(&clintScratch[hart]))
}
