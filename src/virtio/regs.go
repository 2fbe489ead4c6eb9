package virtio

// MMIO register offsets, virtio-mmio spec v2 (the "modern" layout qemu's
// virtio-mmio transport implements for version=2 devices).
const (
	regMagicValue        = 0x000
	regVersion           = 0x004
	regDeviceID          = 0x008
	regVendorID          = 0x00c
	regDeviceFeatures    = 0x010
	regDeviceFeaturesSel = 0x014
	regDriverFeatures    = 0x020
	regDriverFeaturesSel = 0x024
	regQueueSel          = 0x030
	regQueueNumMax       = 0x034
	regQueueNum          = 0x038
	regQueueReady        = 0x044
	regQueueNotify       = 0x050
	regInterruptStatus   = 0x060
	regInterruptACK      = 0x064
	regStatus            = 0x070
	regQueueDescLow      = 0x080
	regQueueDescHigh     = 0x084
	regQueueDriverLow    = 0x090
	regQueueDriverHigh   = 0x094
	regQueueDeviceLow    = 0x0a0
	regQueueDeviceHigh   = 0x0a4
)

const (
	magicValue = 0x74726976 // "virt"
	version    = 2
	deviceIDBlk = 2
	vendorID   = 0x554d4551 // "QEMU"
)

// Status register bits.
const (
	statusAck         = 1 << 0
	statusDriver      = 1 << 1
	statusDriverOK    = 1 << 2
	statusFeaturesOK  = 1 << 3
	statusNeedsReset  = 1 << 6
	statusFailed      = 1 << 7
)

// virtio-blk feature bits the kernel negotiates away (it never writes, so
// VIRTIO_BLK_F_RO is irrelevant, and none of the driver's request framing
// needs write-cache hints or indirect/event-idx ring extensions).
const (
	featBlkRO           = 1 << 5
	featBlkConfigWCE    = 1 << 11
	featRingIndirectDesc = 1 << 28
	featRingEventIdx     = 1 << 29
)

// VirtqCap is the fixed virtqueue size this driver uses — small enough
// that every descriptor fits a uint8 free-bitmap.
const VirtqCap = 8

// Descriptor flags, split virtqueue layout.
const (
	descFNext  = 1 << 0
	descFWrite = 1 << 1
)

// Block request types.
const (
	blkTypeIn  = 0 // read
	blkTypeOut = 1 // write
)

const sectorSize = 512
