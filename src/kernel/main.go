// Command kernel is the top-level wiring every hart's boot path eventually
// reaches: it owns the kernel's own page table, process table, scheduler,
// and the block/UART/PLIC devices, and drives per-hart bring-up from
// boot.EntryMain through to the scheduler's infinite Run loop. Grounded on
// the original kernel's own crate wiring (there is no single main.rs in the
// retrieved original_source — bring-up is scattered across entry.rs,
// start.rs and proc.rs, exactly what this file reassembles) and, for the
// split between a machine-mode early path and a supervisor-mode main, on
// xv6-riscv's start.c/main.c lineage biscuit itself descends from.
package main

import (
	"fmt"
	"sync/atomic"

	"arch"
	"boot"
	"clint"
	"elf"
	"fs"
	"mem"
	"memlayout"
	"plic"
	"proc"
	"sched"
	"trampoline"
	"uart"
	"virtio"
	"vm"
)

// initProcessName is the on-disk file this kernel tries to activate as
// its first process once global init is done. Its absence is not fatal —
// a disk image carrying only data files and no executable (the boot
// parity scenario's "hi.txt"-only image) boots with an idle, processless
// scheduler, all harts spinning on WFI until something arrives.
const initProcessName = "init"

// kernelTextEndPlaceholder/kernelDataEndPlaceholder stand in for a real
// linker script's _etext/_end symbols. This module has no linker script
// (see DESIGN.md) — a real build would size these from the link, not a
// compile-time constant; these are a conservative budget for the kernel
// image, generous enough that RAM past them is always free for the frame
// allocator.
const (
	kernelTextEndPlaceholder = memlayout.KernelBase + 2*memlayout.MB
	kernelDataEndPlaceholder = memlayout.KernelBase + 4*memlayout.MB
)

var (
	allocator    *mem.Allocator
	kernelRoot   *vm.PageTable
	kernelRootPa mem.Pa_t

	processTable *proc.Table
	cpus         *proc.CPUs
	scheduler    *sched.Scheduler

	diskDevice  *virtio.Device
	fileTable   *fs.Table
	consoleUART uart.Uart

	clintScratch clint.ScratchTable

	// started is the boot barrier every non-zero hart spins on until hart
	// 0 has finished global init (spec.md §5's "STARTED boot barrier").
	started atomic.Bool
)

func main() {}

func init() {
	boot.EntryMain = earlyMain
}

// earlyMain is _entry's Go-reachable continuation, still in machine mode
// with hart id in a0 and nothing else initialized. It arms this hart's
// CLINT scratch slot — mscratch/mtvec/mie are M-mode-only CSRs, so this is
// the last point any of them can be touched — then calls boot.Start to
// descend to supervisor mode and land at kmain.
func earlyMain(hart int) {
	clint.Init(&clintScratch, hart, proc.TimerIntervalCycles)
	boot.Start(hart, clint.TimervecAddr(), scratchAddrOf(hart), arch.MieMTIE, kmain)
}

// kmain is supervisor mode's entry point on every hart. Hart 0 performs
// all one-time global bring-up before releasing the STARTED barrier; every
// hart then runs the same per-hart setup and falls into the scheduler,
// never to return.
func kmain(hart int) {
	if hart == 0 {
		kmainPrimary()
		started.Store(true)
	} else {
		for !started.Load() {
		}
	}

	kmainPerHart(hart)
}

// kmainPrimary builds every structure the kernel has exactly one of: the
// frame allocator, the kernel's own page table, the process table and
// scheduler, and the block/file/UART/PLIC devices.
func kmainPrimary() {
	allocator = mem.New(kernelDataEndPlaceholder, memlayout.RAMEnd)

	trampolinePa := mem.Pa_t(trampoline.Addr())
	root, rootPa, err := vm.BuildKernelPageTable(allocator, vm.KernelLayout{
		TextEnd:     kernelTextEndPlaceholder,
		DataEnd:     kernelDataEndPlaceholder,
		TrampolineP: uintptr(trampolinePa),
	})
	if err != nil {
		panic("kmain: BuildKernelPageTable: " + err.Error())
	}
	kernelRoot, kernelRootPa = root, rootPa

	processTable = proc.NewTable()
	cpus = proc.NewCPUs()
	scheduler = sched.New(processTable, cpus)
	sched.SetKernelTrapAddr(usertrapAddr())

	dev, derr := virtio.Init(memlayout.Virtio0)
	if derr != 0 {
		panic("kmain: virtio.Init: " + derr.String())
	}
	diskDevice = dev

	ft, ferr := fs.Init(diskDevice)
	if ferr != 0 {
		panic("kmain: fs.Init: " + ferr.String())
	}
	fileTable = ft

	consoleUART.Init()
	plic.InitGlobal()

	bootstrapInitProcess()
}

// bootstrapInitProcess loads initProcessName from the disk's file table,
// parses it as a RISC-V ELF executable, and activates it as process 0 —
// the one piece of process bring-up this kernel performs unprompted by
// any syscall. Scenarios that exercise proc.Table.AllocProc/Activate
// directly (multiple instances of a program, specific activation
// failures) do so through the proc/sched package APIs themselves rather
// than through this path.
func bootstrapInitProcess() {
	data, err := fileTable.CopyToRAM(initProcessName)
	if err != 0 {
		return
	}
	exe, perr := elf.Parse(data)
	if perr != 0 {
		panic("kmain: bootstrapInitProcess: elf.Parse: " + perr.String())
	}

	id, ok := processTable.AllocProc(initProcessName)
	if !ok {
		panic("kmain: bootstrapInitProcess: process table full")
	}
	p := processTable.Get(id)
	if aerr := p.Activate(allocator, exe, mem.Pa_t(trampoline.Addr())); aerr != 0 {
		panic("kmain: bootstrapInitProcess: Activate: " + aerr.String())
	}
}

// kmainPerHart performs the bring-up every hart repeats: switch onto the
// kernel's own page table, enable this hart's PLIC context, point stvec at
// the kernel trap vector, and fall into the scheduler.
func kmainPerHart(hart int) {
	arch.WrSatp(arch.MakeSatp(uint64(kernelRootPa) >> 12))
	arch.SfenceVMA()

	plic.InitHart(hart)
	arch.WrStvec(uint64(kernelvecAddr()))

	greetHart(hart)

	scheduler.Run(hart)
}

// greetHart writes this hart's boot-parity line straight to the UART,
// synchronously: this runs before the scheduler loop has enabled this
// hart's interrupts, so the interrupt-driven TX ring has no pump yet.
func greetHart(hart int) {
	msg := fmt.Sprintf("Hello from Hart #%d\n", hart)
	for i := 0; i < len(msg); i++ {
		consoleUART.PutcNow(msg[i])
	}
}
