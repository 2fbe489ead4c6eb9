//go:build !riscv64

package clint

// On the host test platform there is no real CLINT MMIO region; a fake
// free-running counter and per-hart compare array stand in so Init and the
// scheduler's preemption logic can be exercised.

var (
	hostMtime     uint64
	hostMtimecmps [proc_NCPU]uint64
)

func ReadMtime() uint64 {
	hostMtime++ // each read advances the fake clock, so tests see progress
	return hostMtime
}

func WriteMtimecmp(hart int, v uint64) {
	hostMtimecmps[hart] = v
}

func Timervec() {}

func TimervecAddr() uintptr { return 0x2000 }
