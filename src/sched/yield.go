package sched

import (
	"arch"
	"proc"
)

// Current returns the process this hart's CPU record marks as running, or
// nil if the hart is idle. The kernel's own trap entry points (usertrap,
// reached by the bare jump trampoline.Uservec leaves in the trapframe's
// KernelTrap field) cannot receive arguments, so this is how they find
// which process trapped.
func Current(hart int) *proc.Process {
	return globalCPUs[hart].Current
}

// Yield voluntarily gives up the hart on a preemption tick: it marks p
// Runnable again and swtches back to this hart's scheduler context,
// resuming dispatch right after the Swtch call that first ran p. Yield
// returns, on some later call to Run's dispatch loop (possibly on a
// different hart — nothing pins a process to the hart it last ran on),
// once p has been rescheduled and swtched into again.
func Yield(p *proc.Process) {
	if !p.Status.CompareAndSwap(proc.Running, proc.Runnable) {
		panic("sched: Yield called on a non-Running process")
	}
	cpu := &globalCPUs[int(arch.RdTp())]
	Swtch(&p.Context, &cpu.SchedContext)
}

// Exit marks p permanently Unused and swtches back to the scheduler. Unlike
// Yield, this call never returns: nothing ever swtches into p.Context
// again while the slot is Unused, and proc.Activate zeroes Context before
// the slot can become Runnable once more (see proc.go's Activate), so a
// reused slot never jumps into a dead process's stale call frame.
func Exit(p *proc.Process) {
	if !p.Status.CompareAndSwap(proc.Running, proc.Unused) {
		panic("sched: Exit called on a non-Running process")
	}
	cpu := &globalCPUs[int(arch.RdTp())]
	Swtch(&p.Context, &cpu.SchedContext)
}
