package boot

// globalStack backs every hart's boot-time stack: hart h's slice runs from
// globalStack[h*PerHartStackSize : (h+1)*PerHartStackSize], matching the
// original's GLOBAL_STACK layout and _entry's "(hartid+1)*STACK_SIZE"
// offset arithmetic (stacks grow down, so a hart's initial sp is the high
// end of its own slice).
var globalStack [PerHartStackSize * MaxHarts]byte

// MaxHarts bounds how many harts' worth of boot stack globalStack reserves.
const MaxHarts = 8

// EntryMain is _entry's Go-reachable continuation: called with a valid
// stack for the first time, hart id in a0. It is a variable, not a
// constant function, because boot cannot import the kernel's top-level
// wiring (that package imports boot instead) — cmd/kernel sets this once,
// before hart 0 is released from reset.
var EntryMain func(hart int) = func(int) {}

//go:nosplit
func entryMain(hart int) {
	EntryMain(hart)
}
