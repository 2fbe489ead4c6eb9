//go:build !riscv64

package plic

// On the host test platform, the PLIC's MMIO window is simulated with a
// plain map so InitGlobal/InitHart/Claim/Complete can be exercised.
var hostRegs = map[uintptr]uint32{}

func read32(addr uintptr) uint32 { return hostRegs[addr] }

func write32(addr uintptr, v uint32) { hostRegs[addr] = v }
