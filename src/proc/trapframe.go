package proc

// Trapframe is the per-process save area the trampoline reads and writes.
// Its layout is load-bearing: uservec/userret (src/trampoline) index into
// it by fixed byte offset, not by Go field name, so field order here must
// never change without updating the assembly that mirrors it.
//
//	  0  KernelSatp   kernel page table
//	  8  KernelSp     top of this process's kernel stack
//	 16  KernelTrap   usertrap() entry address
//	 24  Epc          saved user program counter
//	 32  KernelHartid saved kernel tp
//	 40… the 31 user GPRs, ra through t6, in RISC-V register order
type Trapframe struct {
	KernelSatp   uint64
	KernelSp     uint64
	KernelTrap   uint64
	Epc          uint64
	KernelHartid uint64

	Ra uint64
	Sp uint64
	Gp uint64
	Tp uint64
	T0 uint64
	T1 uint64
	T2 uint64
	S0 uint64
	S1 uint64
	A0 uint64
	A1 uint64
	A2 uint64
	A3 uint64
	A4 uint64
	A5 uint64
	A6 uint64
	A7 uint64
	S2 uint64
	S3 uint64
	S4 uint64
	S5 uint64
	S6 uint64
	S7 uint64
	S8 uint64
	S9 uint64
	S10 uint64
	S11 uint64
	T3 uint64
	T4 uint64
	T5 uint64
	T6 uint64
}

// Byte offsets of the fields uservec/userret touch directly, for the
// assembly in src/trampoline to reference via #define. Kept here, next to
// the struct, so the two never drift apart silently.
const (
	TfKernelSatp   = 0
	TfKernelSp     = 8
	TfKernelTrap   = 16
	TfEpc          = 24
	TfKernelHartid = 32
	TfA0           = 112
)
