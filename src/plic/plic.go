// Package plic drives the Platform-Level Interrupt Controller qemu-virt
// emulates: per-hart context priority/enable/threshold setup and the
// claim/complete protocol device_interrupt uses to identify and ack an
// external interrupt. Grounded on the original kernel's plic.rs, except
// spec.md overrides that file's simpler context-id formula (context_id =
// hart_id) with context_id = hart*2+1, which this package implements.
package plic

import "memlayout"

// ContextID returns the S-mode PLIC context id for hart, per spec.md §4.8.
func ContextID(hart int) int { return hart*2 + 1 }

func priorityAddr(irq int) uintptr {
	return uintptr(memlayout.PlicPriorityBase + 4*irq)
}

func enableAddr(ctx int) uintptr {
	return uintptr(memlayout.PlicEnableBase + 0x80*ctx)
}

func thresholdAddr(ctx int) uintptr {
	return uintptr(memlayout.PlicClaimThresholdBase + 0x1000*ctx)
}

func claimAddr(ctx int) uintptr {
	return uintptr(memlayout.PlicClaimBase + 0x1000*ctx)
}

// InitGlobal sets the priority of every IRQ source the kernel cares about
// to 1 (anything higher than the PLIC's reset priority of 0, which masks
// an interrupt no matter its enable bit). Must run once, before any
// InitHart.
func InitGlobal() {
	write32(priorityAddr(memlayout.UartIRQ), 1)
	write32(priorityAddr(memlayout.Virtio0IRQ), 1)
}

// InitHart enables the UART and virtio0 IRQ sources for hart's context and
// lowers that context's threshold to 0 so both can fire.
func InitHart(hart int) {
	ctx := ContextID(hart)
	mask := uint32(1<<memlayout.UartIRQ | 1<<memlayout.Virtio0IRQ)
	write32(enableAddr(ctx), mask)
	write32(thresholdAddr(ctx), 0)
}

// Claim returns the next pending IRQ id for hart's context, or 0 if none is
// pending.
func Claim(hart int) int {
	return int(read32(claimAddr(ContextID(hart))))
}

// Complete acknowledges irq on hart's context, telling the PLIC it may
// deliver that source again.
func Complete(hart int, irq int) {
	write32(claimAddr(ContextID(hart)), uint32(irq))
}
