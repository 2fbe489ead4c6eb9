package proc

import "memlayout"

// Compile-time process-model parameters. There is no runtime configuration
// layer in this kernel — these are the rvos equivalents of the original's
// param.rs constants, sized the same way.
const (
	// NPROC bounds the process table; a process id is a single byte, so
	// the largest table that can be indexed without widening ProcId is
	// 255 slots (spec.md's "NPROC ≈ 255").
	NPROC = 255

	// NCPU bounds the number of harts this kernel schedules across.
	NCPU = 8

	pagesPerStack = 40
	// StackSize is how much kernel-heap-backed stack each process gets,
	// both in kernel space (Process.KernelStack) and user space (the
	// anonymous mapping Activate installs above the data segment's end).
	StackSize = memlayout.PageSize * pagesPerStack

	pagesPerHeap = 1000
	// HeapSize is how much anonymous memory Activate maps at HeapStart.
	HeapSize = pagesPerHeap * memlayout.PageSize

	// HeapStart is the fixed user virtual address every process's heap
	// begins at.
	HeapStart = 0x2200_0000

	// TimerIntervalCycles is the default spacing between timer
	// interrupts the CLINT is armed with, in mtime ticks.
	TimerIntervalCycles = 1_000_000
)
