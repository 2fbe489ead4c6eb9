// Package clint programs the SiFive CLINT timer qemu-virt emulates. Timer
// interrupts only ever fire in machine mode; the machine-mode handler
// (timervec, in clint_riscv64.s) rearms the next tick and forwards it to
// supervisor mode as a software interrupt, since supervisor-mode timer
// interrupts cannot be delegated on RISC-V.
package clint

import "memlayout"

// Scratch is the per-hart five-word scratch area timervec indexes via
// mscratch: three words for saved registers, then &mtimecmp[hart], then
// the rearm interval. Its layout is load-bearing — timervec reads fixed
// byte offsets, not Go field names.
type Scratch struct {
	reg0, reg1, reg2 uint64
	MtimecmpAddr     uint64
	Interval         uint64
}

// Scratch offsets for timervec's assembly.
const (
	ScratchReg0         = 0
	ScratchReg1         = 8
	ScratchReg2         = 16
	ScratchMtimecmpAddr = 24
	ScratchInterval     = 32
)

// ScratchTable holds one Scratch per hart; it must live at a stable
// address for the lifetime of the kernel, since mscratch points directly
// into it.
type ScratchTable [proc_NCPU]Scratch

const proc_NCPU = 8

// Init arms hart `hart`'s first timer tick, interval ticks of mtime from
// now, and records the interval and mtimecmp address in that hart's
// scratch slot for timervec to use on every subsequent tick.
func Init(table *ScratchTable, hart int, interval uint64) {
	s := &table[hart]
	s.MtimecmpAddr = uint64(memlayout.MtimecmpAddr(hart))
	s.Interval = interval
	WriteMtimecmp(hart, ReadMtime()+interval)
}
