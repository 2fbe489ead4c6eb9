package proc

// Context is the callee-saved register set a swtch between two kernel
// execution contexts (a hart's scheduler loop and a process's kernel
// stack) must preserve: ra, sp, and the twelve s registers. Grounded on
// the xv6/biscuit lineage's struct context — the original's scheduler.rs
// only shows the one-way launch path (write sp/ra, `ret`), which explains
// how a process is first entered but not how control returns to the
// scheduler; a real two-way swtch is the standard way that lineage closes
// the loop, so sched.Swtch operates on this layout instead.
//
// Like Trapframe, the field order is load-bearing: sched's swtch assembly
// indexes into it by fixed byte offset.
type Context struct {
	Ra  uint64
	Sp  uint64
	S0  uint64
	S1  uint64
	S2  uint64
	S3  uint64
	S4  uint64
	S5  uint64
	S6  uint64
	S7  uint64
	S8  uint64
	S9  uint64
	S10 uint64
	S11 uint64
}

const (
	ContextRa = 0
	ContextSp = 8
	ContextS0 = 16
)
