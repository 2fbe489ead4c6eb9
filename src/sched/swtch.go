//go:build riscv64

package sched

import "proc"

// Swtch saves the callee-saved registers described by proc.Context into
// old and restores them from nxt, the same context switch xv6's swtch.S
// performs. Implemented in assembly (swtch_riscv64.s) because Go offers no
// portable way to redirect a goroutine-free, freestanding kernel's raw
// sp/ra.
func Swtch(old, nxt *proc.Context)

// launchUserAddr returns launchUser's address, the way trampoline.Addr
// returns Uservec's: Go gives no portable way to take a plain function
// address without assembly.
func launchUserAddr() uintptr
