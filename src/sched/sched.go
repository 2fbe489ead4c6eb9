// Package sched implements the per-hart round-robin scheduler loop:
// scanning the process table for a Runnable slot, claiming it via CAS, and
// switching this hart's execution onto it. Grounded on the original
// kernel's scheduler() loop in scheduler.rs, with the one-way "write
// sp/ra, ret" launch trick it shows replaced by a standard two-way swtch
// (src/sched/swtch_riscv64.s) so that a process trapping back into the
// kernel has somewhere real to return control to.
package sched

import (
	"arch"
	"proc"
)

// Scheduler owns the shared process table and per-hart CPU records every
// hart's Run loop scans and dispatches out of.
type Scheduler struct {
	Table *proc.Table
	CPUs  *proc.CPUs
}

// New builds a scheduler over an already-populated process table.
func New(table *proc.Table, cpus *proc.CPUs) *Scheduler {
	globalCPUs = cpus
	return &Scheduler{Table: table, CPUs: cpus}
}

// Run is the per-hart scheduler loop (spec.md §4.6): forever, enable
// interrupts, scan every slot for one this hart can claim, dispatch into
// it, and park with wfi if none was found. It never returns; callers on
// real hardware tail-call it once per hart from boot.Start's S-mode
// continuation.
func (s *Scheduler) Run(hart int) {
	arch.WrTp(uint64(hart))
	for {
		arch.WrSie(arch.SieDefault)
		if !s.tryRunOne(hart) {
			arch.WFI()
		}
	}
}

// tryRunOne scans the table once for a Runnable process, claims and
// dispatches the first one found, and reports whether it found one.
// Split out from Run so host tests can drive a single scheduling decision
// without looping forever.
func (s *Scheduler) tryRunOne(hart int) bool {
	for id := 0; id < proc.NPROC; id++ {
		p := s.Table.Get(uint8(id))
		if !p.Status.CompareAndSwap(proc.Runnable, proc.Running) {
			continue
		}
		s.dispatch(hart, p)
		return true
	}
	return false
}

// dispatch parks p as this hart's current process and swtches onto its
// kernel-stack context. Swtch only returns once the process has re-entered
// the kernel and the trap path has swtched back to cpu.SchedContext — on
// a process's very first dispatch, p.Context.Ra is primed to jump into
// launchUser instead of resuming a prior trap.
func (s *Scheduler) dispatch(hart int, p *proc.Process) {
	cpu := &s.CPUs[hart]
	cpu.Current = p
	if p.Context.Ra == 0 {
		p.Context.Ra = uint64(launchUserAddr())
	}
	Swtch(&cpu.SchedContext, &p.Context)
	cpu.Current = nil
}
