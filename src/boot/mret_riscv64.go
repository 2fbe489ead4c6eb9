//go:build riscv64

package boot

// mret issues the `mret` instruction, the actual privilege-level drop from
// machine to whatever mstatus.MPP and mepc were last set to. Implemented
// in assembly (mret_riscv64.s) because Go has no portable way to emit a
// bare privileged instruction.
func mret()
