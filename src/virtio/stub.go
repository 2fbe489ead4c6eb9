//go:build !riscv64

package virtio

import "unsafe"

// fakeDisk backs one simulated virtio-blk device for host tests: enough
// register state to pass Init's handshake, plus a small in-memory sector
// store that OnNotify serves descriptor chains out of exactly the way
// qemu's real device would, so ReadSector can be exercised end to end
// without real hardware.
type fakeDisk struct {
	regs     map[uintptr]uint32
	sectors  map[uint64][sectorSize]byte
	descBase uintptr
	avail    *AvailRing
	used     *UsedRing
	descTbl  *[VirtqCap]Desc
}

var fakes = map[uintptr]*fakeDisk{}

// NewFakeDisk installs a simulated device at base with the given sector
// contents, for tests to call Init(base) against.
func NewFakeDisk(base uintptr, sectors map[uint64][sectorSize]byte) {
	fakes[base] = &fakeDisk{
		regs: map[uintptr]uint32{
			base + regMagicValue:     magicValue,
			base + regVersion:        version,
			base + regDeviceID:       deviceIDBlk,
			base + regVendorID:       vendorID,
			base + regDeviceFeatures: featBlkRO | featBlkConfigWCE,
			base + regQueueNumMax:    VirtqCap,
		},
		sectors: sectors,
	}
}

func read32(addr uintptr) uint32 {
	f, _ := lookupFake(addr)
	if f == nil {
		return 0
	}
	return f.regs[addr]
}

func write32(addr uintptr, v uint32) {
	f, base := lookupFake(addr)
	if f == nil {
		return
	}
	off := addr - base
	f.regs[addr] = v

	switch off {
	case regQueueDescHigh:
		f.descTbl = (*[VirtqCap]Desc)(unsafe.Pointer(uintptr(uint64(v)<<32 | uint64(f.regs[base+regQueueDescLow]))))
	case regQueueDriverHigh:
		f.avail = (*AvailRing)(unsafe.Pointer(uintptr(uint64(v)<<32 | uint64(f.regs[base+regQueueDriverLow]))))
	case regQueueDeviceHigh:
		f.used = (*UsedRing)(unsafe.Pointer(uintptr(uint64(v)<<32 | uint64(f.regs[base+regQueueDeviceLow]))))
	case regQueueNotify:
		f.process()
	case regStatus:
		if v == 0 { // device reset
			f.regs[base+regStatus] = 0
		}
	}
}

func (f *fakeDisk) process() {
	if f.avail == nil || f.used == nil || f.descTbl == nil {
		return
	}
	headIdx := f.avail.Ring[(f.avail.Idx-1)%VirtqCap]

	hdrDesc := f.descTbl[headIdx]
	req := (*BlkReq)(unsafe.Pointer(uintptr(hdrDesc.Addr)))

	dataDesc := f.descTbl[hdrDesc.Next]
	data := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(dataDesc.Addr))), dataDesc.Len)

	statusDesc := f.descTbl[dataDesc.Next]
	status := (*byte)(unsafe.Pointer(uintptr(statusDesc.Addr)))

	switch req.Type {
	case blkTypeIn:
		sec, ok := f.sectors[req.Sector]
		if !ok {
			*status = 1
			break
		}
		copy(data, sec[:])
		*status = 0
	default:
		*status = 2
	}

	f.used.Ring[f.used.Idx%VirtqCap] = UsedElem{ID: uint32(headIdx), Len: dataDesc.Len}
	f.used.Idx++
}

func memFence() {}

func lookupFake(addr uintptr) (*fakeDisk, uintptr) {
	for base, f := range fakes {
		if addr >= base && addr < base+0x200 {
			return f, base
		}
	}
	return nil, 0
}
