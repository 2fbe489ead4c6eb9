//go:build riscv64

package clint

// Timervec is the machine-mode trap entry for the CLINT timer interrupt,
// installed via mtvec during boot.Start. Implemented in clint_riscv64.s.
func Timervec()

// TimervecAddr returns Timervec's address for writing into mtvec.
func TimervecAddr() uintptr
