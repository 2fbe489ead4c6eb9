//go:build riscv64

package main

// kernelvec is the trap entry stvec is pointed at whenever the kernel
// itself is executing — the scheduler's idle loop, or any already-entered
// kernel trap handler — as opposed to a user process, which traps through
// the trampoline's Uservec instead. Implemented in trapvec_riscv64.s.
func kernelvec()

// kernelvecAddr returns kernelvec's address, for arming stvec before
// dropping into the scheduler loop and on entry to usertrap (on the way
// back out, userTrapReturn re-arms the trampoline's vector instead).
func kernelvecAddr() uintptr

// usertrapAddr returns usertrap's address, for sched.SetKernelTrapAddr —
// usertrap is reached via a bare jump out of the trampoline's Uservec, not
// a Go call, so nothing but its raw address can be handed across that
// boundary.
func usertrapAddr() uintptr
