// Package virtio implements the virtio-mmio block device driver: the
// legacy-modern init handshake, a single 8-descriptor split virtqueue, and
// a synchronous single-sector read used by the file layer (src/fs). It is
// grounded on the original kernel's virtio.rs for the handshake constants
// and on biscuit's fs.Disk_i/Bdev_req_t shape for how a block device is
// presented to the rest of the kernel.
package virtio

import (
	"defs"
)

// Disk is a narrow ReadSector/Stats surface in the spirit of biscuit's
// fs.Disk_i interface, so the file layer can depend on an interface
// rather than this concrete driver.
type Disk interface {
	ReadSector(sector uint64, buf []byte) defs.Err_t
	Stats() string
}

// Device is one virtio-mmio block device at a fixed MMIO base.
type Device struct {
	base uintptr

	descTable *[VirtqCap]Desc
	avail     *AvailRing
	used      *UsedRing

	alloc      descAlloc
	usedSeen   uint16
	lastSector uint64
	nreqs      uint64
}

// Init performs the legacy-modern virtio-mmio handshake (spec.md §4.10
// steps 1-7) against the device at base.
func Init(base uintptr) (*Device, defs.Err_t) {
	d := &Device{base: base, alloc: newDescAlloc()}

	if read32(base+regMagicValue) != magicValue ||
		read32(base+regVersion) != version ||
		read32(base+regDeviceID) != deviceIDBlk ||
		read32(base+regVendorID) != vendorID {
		return nil, -defs.EIO
	}

	write32(base+regStatus, 0)
	write32(base+regStatus, statusAck)
	write32(base+regStatus, statusAck|statusDriver)

	feat := read32(base + regDeviceFeatures)
	feat &^= featBlkRO | featBlkConfigWCE | featRingIndirectDesc | featRingEventIdx
	write32(base+regDriverFeatures, feat)

	write32(base+regStatus, statusAck|statusDriver|statusFeaturesOK)
	if read32(base+regStatus)&statusFeaturesOK == 0 {
		return nil, -defs.EIO
	}

	write32(base+regQueueSel, 0)
	if read32(base+regQueueReady) != 0 {
		return nil, -defs.EIO
	}
	if read32(base+regQueueNumMax) < VirtqCap {
		return nil, -defs.EIO
	}
	write32(base+regQueueNum, VirtqCap)

	d.descTable = allocDescTable()
	d.avail = allocAvail()
	d.used = allocUsed()

	writeQueueAddr(base, regQueueDescLow, regQueueDescHigh, addrOfDescTable(d.descTable))
	writeQueueAddr(base, regQueueDriverLow, regQueueDriverHigh, addrOfAvail(d.avail))
	writeQueueAddr(base, regQueueDeviceLow, regQueueDeviceHigh, addrOfUsed(d.used))

	write32(base+regQueueReady, 1)
	write32(base+regStatus, statusAck|statusDriver|statusFeaturesOK|statusDriverOK)

	return d, 0
}

func writeQueueAddr(base uintptr, loReg, hiReg uintptr, addr uint64) {
	write32(base+loReg, uint32(addr))
	write32(base+hiReg, uint32(addr>>32))
}

// ReadSector issues a synchronous single-sector (512-byte) read into buf,
// which must be exactly 512 bytes, per spec.md §4.10's per-request
// protocol: a 3-descriptor chain (header, payload, status), submitted via
// the avail ring and awaited by spinning on the status byte.
func (d *Device) ReadSector(sector uint64, buf []byte) defs.Err_t {
	if len(buf) != sectorSize {
		return -defs.EINVAL
	}

	idxs, ok := d.alloc.allocChain(3)
	if !ok {
		return -defs.ENOMEM
	}
	hdrIdx, dataIdx, statusIdx := idxs[0], idxs[1], idxs[2]

	hdr := &BlkReq{Type: blkTypeIn, Sector: sector}
	status := newStatusByte()

	d.descTable[hdrIdx] = Desc{Addr: addrOfBlkReq(hdr), Len: 16, Flags: descFNext, Next: uint16(dataIdx)}
	d.descTable[dataIdx] = Desc{Addr: addrOfBuf(buf), Len: uint32(len(buf)), Flags: descFNext | descFWrite, Next: uint16(statusIdx)}
	d.descTable[statusIdx] = Desc{Addr: addrOfStatus(status), Len: 1, Flags: descFWrite}

	d.avail.Ring[d.avail.Idx%VirtqCap] = uint16(hdrIdx)
	memFence()
	d.avail.Idx++
	memFence()
	write32(d.base+regQueueNotify, 0)

	waitStatus(status)

	d.alloc.freeChain(idxs)
	d.nreqs++

	if *status != 0 {
		return -defs.EIO
	}
	return 0
}

// Intr acks the pending interrupt bits and advances the driver's
// last-seen used index. Per spec.md §4.10, completion status is written
// in place by the device, so there is no further per-descriptor
// bookkeeping here.
func (d *Device) Intr() {
	bits := read32(d.base + regInterruptStatus)
	write32(d.base+regInterruptACK, bits&0x3)
	d.usedSeen = d.used.Idx
}

func (d *Device) Stats() string {
	return "virtio-blk reqs=" + itoa(d.nreqs)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
