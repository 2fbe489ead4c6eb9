package sched

import (
	"arch"
	"proc"
	"trampoline"
)

var kernelTrapAddr uint64

// SetKernelTrapAddr records where the kernel's own S-mode trap handler
// lives, so launchUser can prime each process's trapframe with it before
// first entry. Called once during kernel init, before any hart's Run loop
// starts.
func SetKernelTrapAddr(addr uintptr) { kernelTrapAddr = uint64(addr) }

// launchUser is the Context.Ra a process's very first dispatch swtches
// into: it runs once, on that process's own kernel stack, with
// cpu.Current already pointing at it (dispatch sets that before calling
// Swtch). It primes the trapframe's kernel-context fields the way the
// original's activate() leaves for the scheduler to fill in at run time
// (kernel satp/sp/trap/hartid can only be known once a specific hart is
// about to run the process), arms stvec/sepc/sstatus for the drop to user
// mode, and falls into trampoline.Userret — which never returns here.
func launchUser() {
	hart := arch.RdTp()
	p := globalCPUs[int(hart)].Current
	tf := p.Trapframe

	tf.KernelSatp = arch.RdSatp()
	tf.KernelSp = p.Context.Sp
	tf.KernelTrap = kernelTrapAddr
	tf.KernelHartid = hart

	arch.WrStvec(uint64(trampoline.Addr()))
	arch.WrSepc(tf.Epc)
	arch.WrSstatus(arch.SstatusForUserEntry(arch.RdSstatus()))

	satp := arch.MakeSatp(uint64(p.PageTablePa) >> 12)
	trampoline.Userret(satp)
}

// globalCPUs lets launchUser (reached via a bare jump, not a Go call, so
// it cannot receive arguments) find its way back to the CPU table a
// Scheduler was constructed with. Set once by New.
var globalCPUs *proc.CPUs
