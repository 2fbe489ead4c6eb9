package vm

import (
	"mem"
	"unsafe"
)

// pointerTo turns a physical frame address into a Go pointer. Valid only
// because this kernel identity-maps all of RAM in the address space it is
// currently running under — there is no separate physical-to-virtual
// translation step the way biscuit's higher-half dmap needs one.
func pointerTo(pa mem.Pa_t) unsafe.Pointer {
	return unsafe.Pointer(uintptr(pa))
}
