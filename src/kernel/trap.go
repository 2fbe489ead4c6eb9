package main

import (
	"arch"
	"memlayout"
	"plic"
)

// kerneltrap is kernelvec's Go-level handler, entered whenever the kernel
// itself (not a user process) takes a trap — the only traps that can reach
// here are the two interrupt sources spec.md §4.4 names; anything else is
// a kernel bug, fatal.
func kerneltrap() {
	sepc := arch.RdSepc() // saved so a nested device interrupt can't clobber it
	scause := arch.RdScause()

	switch scause {
	case arch.ScauseInterruptBit | arch.IntSEI:
		deviceInterrupt(int(arch.RdTp()))
	case arch.ScauseInterruptBit | arch.IntSSI:
		arch.WrSip(arch.RdSip() &^ (1 << arch.IntSSI))
	default:
		panic("kerneltrap: unexpected scause")
	}

	arch.WrSepc(sepc)
}

// deviceInterrupt claims the pending PLIC interrupt for hart, dispatches it
// to the owning driver, and completes it. Shared by kerneltrap (fired while
// the kernel itself runs) and usertrap (fired while a user process runs).
func deviceInterrupt(hart int) {
	irq := plic.Claim(hart)
	switch irq {
	case 0:
		// nothing pending
	case memlayout.UartIRQ:
		consoleUART.Intr()
	case memlayout.Virtio0IRQ:
		diskDevice.Intr()
	default:
		panic("kerneltrap: device_interrupt: unknown irq")
	}
	if irq != 0 {
		plic.Complete(hart, irq)
	}
}
