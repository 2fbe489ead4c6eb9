package main

import (
	"arch"
	"proc"
	"sched"
	"trampoline"
)

// usertrap is reached by a bare jump out of the trampoline's Uservec (via
// the trapframe's KernelTrap field, primed by sched's launchUser/userTrap
// Return) whenever a user process traps. Like launchUser, it is niladic —
// there is no Go call site to pass it arguments — so it recovers the
// trapping process via sched.Current and this hart's id in tp.
func usertrap() {
	hart := int(arch.RdTp())
	p := sched.Current(hart)
	tf := p.Trapframe

	// Nested traps while this handler runs must not re-enter through the
	// trampoline (the trapframe's a0/sscratch swap trick assumes a single
	// level of user trap in flight); route them to the kernel vector
	// instead, same as kerneltrap's own handler does for itself.
	arch.WrStvec(uint64(kernelvecAddr()))

	scause := arch.RdScause()
	switch scause {
	case arch.ExcEcallU:
		tf.Epc += 4
		dispatchSyscall(p)
	case arch.ScauseInterruptBit | arch.IntSEI:
		deviceInterrupt(hart)
	case arch.ScauseInterruptBit | arch.IntSSI:
		arch.WrSip(arch.RdSip() &^ (1 << arch.IntSSI))
		sched.Yield(p)
	default:
		// Production implementations should kill the process and
		// reschedule; this one panics, per spec.
		panic("usertrap: fatal user exception")
	}

	userTrapReturn(p)
}

// userTrapReturn re-primes the trapframe's kernel-context fields — the
// hart (and therefore kernel sp/satp/trap-entry) a rescheduled process
// resumes on need not be the one it trapped from — arms sepc/sstatus/stvec
// for the drop to user mode, and tail-calls into the trampoline. It never
// returns; control resumes in userspace at tf.Epc.
//
// dispatchSyscall's exit case (sched.Exit) never reaches here: Exit's
// Swtch only returns once some future dispatch Swtches back into this
// process's Context, which cannot happen while its slot is Unused.
func userTrapReturn(p *proc.Process) {
	tf := p.Trapframe

	tf.KernelSatp = arch.RdSatp()
	tf.KernelSp = p.Context.Sp
	tf.KernelTrap = uint64(usertrapAddr())
	tf.KernelHartid = arch.RdTp()

	arch.WrStvec(uint64(trampoline.Addr()))
	arch.WrSepc(tf.Epc)
	arch.WrSstatus(arch.SstatusForUserEntry(arch.RdSstatus()))

	satp := arch.MakeSatp(uint64(p.PageTablePa) >> 12)
	trampoline.Userret(satp)
}
