// Package boot is the first Go code any hart runs: a tiny machine-mode
// stack setup in assembly (_entry), followed by Start, which performs the
// M-mode to S-mode privilege descent spec.md §4.1 describes. Grounded on
// the original kernel's entry.rs/start.rs — which itself trails off into
// `todo!()` right where the real mret-and-jump would happen, so the
// completion here (funcPC plus a one-instruction mret stub) is this
// kernel's own resolution of that gap, not a translation of anything the
// original actually finished.
package boot

import (
	"unsafe"

	"arch"
)

// PerHartStackSize is how much of the boot-time global stack each hart
// gets before any process exists to hand it a kernel stack of its own.
// Kept independent of proc.StackSize: this stack only has to survive
// Start and the first few instructions of S-mode init, not a process's
// entire kernel-side lifetime.
const PerHartStackSize = 64 * 1024

// funcPC extracts a plain top-level function's code address — the same
// trick the Go runtime's own internals use to treat a func value as a
// bare PC — so Mepc can be pointed at it before `mret`. Only valid for a
// non-closure, package-level function; sEntry must be exactly that.
func funcPC(f func(int)) uintptr {
	return **(**uintptr)(unsafe.Pointer(&f))
}

// Start performs the privilege descent spec.md §4.1 lists: arm the
// machine-mode timer vector (spec.md §4.7 — mscratch/mtvec/mie.MTIE are
// M-mode-only CSRs, so this is the only place in the kernel that can ever
// set them), set MPP so `mret` lands in supervisor mode, point Mepc at
// sEntry, delegate the exceptions and interrupts S-mode is expected to
// field itself, enable software/timer/external interrupts in sie, open PMP
// to the whole physical address space, write hart into tp, and `mret`. It
// never returns on real hardware — execution resumes at sEntry, already in
// supervisor mode, with hart still in a0 from _entry and in tp.
//
// timervec/scratch are the CLINT's machine-mode trap entry and this hart's
// Scratch slot (clint.TimervecAddr(), &ScratchTable[hart]); boot does not
// import clint itself — clint is a leaf MMIO driver and boot is privilege-
// transition plumbing only, so the kernel's own wiring passes the two
// addresses through as plain uintptrs.
func Start(hart int, timervec, scratch uintptr, mie uint64, sEntry func(int)) {
	arch.WrMscratch(uint64(scratch))
	arch.WrMtvec(uint64(timervec))
	arch.WrMie(mie)

	mstatus := arch.MstatusWithMPP(arch.RdMstatus(), arch.Supervisor)
	arch.WrMstatus(mstatus)
	arch.WrMepc(uint64(funcPC(sEntry)))

	arch.WrMedeleg(arch.MedelegDefault)
	arch.WrMideleg(arch.MidelegDefault)
	arch.WrSie(arch.SieDefault)

	arch.WrPmpaddr0(arch.Pmpaddr0Full)
	arch.WrPmpcfg0(arch.Pmpcfg0RWX)

	arch.WrTp(uint64(hart))

	mret()
}
