package proc

import (
	"unsafe"

	"mem"
	"vm"
)

// pointerOf returns the address of a page table, used once at process-table
// construction time to record each slot's page-table physical address.
func pointerOf(pt *vm.PageTable) unsafe.Pointer {
	return unsafe.Pointer(pt)
}

// uintptrOf is a test helper exposing a field's address for offset checks.
func uintptrOf(p *uint64) uintptr {
	return uintptr(unsafe.Pointer(p))
}

// physAddrOf returns the address of a kernel object as a physical address.
// Valid because the kernel identity-maps all of RAM in its own page table,
// the same assumption vm.pointerTo relies on for the reverse direction.
func physAddrOf(p *Trapframe) mem.Pa_t {
	return mem.Pa_t(uintptr(unsafe.Pointer(p)))
}

// dataPtrOf returns the address backing a byte slice, used to locate an
// already-loaded ELF image's bytes as a source physical address for
// strong_map, mirroring the original's `file_data.as_ptr() as usize`.
func dataPtrOf(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&b[0])))
}
