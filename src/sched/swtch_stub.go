//go:build !riscv64

package sched

import "proc"

// hostLaunchAddr is a nonzero sentinel standing in for launchUser's real
// address, so tests can tell a freshly-Activated process (Context.Ra == 0)
// apart from one dispatch has already primed.
const hostLaunchAddr = 0xdead_beef

// Swtch on a non-riscv64 host cannot perform a real register-level context
// switch (there are no raw sp/ra to redirect outside a real stack frame),
// so it just copies the two contexts far enough to exercise dispatch's
// bookkeeping: old receives a zeroed "we were here" marker and nxt is left
// untouched, simulating a process that immediately re-enters the kernel
// and yields back.
func Swtch(old, nxt *proc.Context) {
	*old = proc.Context{}
}

func launchUserAddr() uintptr { return hostLaunchAddr }
