//go:build !riscv64

package trampoline

// On the host test platform there is no real trampoline page; Addr returns
// a fixed sentinel so code that merely plumbs the value through (vm's
// kernel-page-table construction, proc.Activate) can be exercised without
// real riscv64 hardware.
var hostTrampolineAddr uintptr = 0x1000

func Uservec() {}

func Userret(satp uint64) { _ = satp }

func Addr() uintptr { return hostTrampolineAddr }

func UserretAddr() uintptr { return hostTrampolineAddr + 0x200 }
