package virtio

import "unsafe"

// The helpers below convert between Go objects and the plain integer
// addresses the virtio-mmio registers and descriptor fields want. They
// rely on the same identity-map assumption mem and vm document: every
// object the kernel allocates for itself is addressable directly, with no
// separate physical/virtual translation step to go through.

func allocDescTable() *[VirtqCap]Desc { return &[VirtqCap]Desc{} }
func allocAvail() *AvailRing          { return &AvailRing{} }
func allocUsed() *UsedRing            { return &UsedRing{} }

func addrOfDescTable(t *[VirtqCap]Desc) uint64 { return uint64(uintptr(unsafe.Pointer(t))) }
func addrOfAvail(a *AvailRing) uint64          { return uint64(uintptr(unsafe.Pointer(a))) }
func addrOfUsed(u *UsedRing) uint64            { return uint64(uintptr(unsafe.Pointer(u))) }
func addrOfBlkReq(r *BlkReq) uint64            { return uint64(uintptr(unsafe.Pointer(r))) }
func addrOfStatus(s *byte) uint64              { return uint64(uintptr(unsafe.Pointer(s))) }

func addrOfBuf(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&b[0])))
}

func newStatusByte() *byte {
	s := new(byte)
	*s = 0xff
	return s
}

// waitStatus spins until the device has written a real completion code
// over the 0xff sentinel ReadSector primed status with. On real hardware
// this would be a wfi-friendly poll; on the host test stub the fake device
// already completed the request synchronously by the time this is called.
func waitStatus(s *byte) {
	for *s == 0xff {
	}
}
