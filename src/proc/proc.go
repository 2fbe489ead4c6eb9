// Package proc implements the process table, per-process address space
// activation, and the CPU record the scheduler parks the running process
// in. It is grounded on the original kernel's proc.rs — the most complete
// of several inconsistent early drafts — translated into a CAS-heavy,
// small fixed-table idiom for the process table.
package proc

import (
	"fmt"
	"sync"

	"defs"
	"elf"
	"mem"
	"memlayout"
	"vm"
)

const inactiveName = "X"

// Process is one process-table slot. Every field below the name is owned
// by the slot from table construction until the kernel is torn down: there
// is no destruction path in this kernel, only reuse of Unused slots.
type Process struct {
	mu sync.Mutex // guards Name; status transitions are lock-free

	Name   string
	Id     uint8
	Status *AtomicStatus

	KernelStack []byte
	PageTable   *vm.PageTable
	PageTablePa mem.Pa_t
	Trapframe   *Trapframe
	Context     Context
}

func newInactiveProcess(id uint8) *Process {
	pt := &vm.PageTable{}
	p := &Process{
		Name:        inactiveName,
		Id:          id,
		Status:      NewAtomicStatus(Unused),
		KernelStack: make([]byte, StackSize),
		PageTable:   pt,
		Trapframe:   &Trapframe{},
	}
	p.PageTablePa = mem.Pa_t(uintptr(pointerOf(pt)))
	return p
}

func (p *Process) String() string {
	return fmt.Sprintf("proc(%d %q %s)", p.Id, p.Name, p.Status.Load())
}

// Table is the fixed-size, shared process table. Concurrency discipline:
// every slot's status is an independent CAS variable; no lock protects the
// table as a whole; the only thing the scheduler and alloc_proc ever need
// to agree on atomically is a single slot's status word.
type Table struct {
	slots [NPROC]*Process
}

// NewTable allocates a fresh process table with every slot Unused.
func NewTable() *Table {
	t := &Table{}
	for i := range t.slots {
		t.slots[i] = newInactiveProcess(uint8(i))
	}
	return t
}

// Get returns the process at id.
func (t *Table) Get(id uint8) *Process { return t.slots[id] }

// AllocProc scans for the first Unused slot, claims it (Unused->Inactive),
// names it, and returns its id. It returns ok=false if every slot is taken.
func (t *Table) AllocProc(name string) (uint8, bool) {
	for _, p := range t.slots {
		if p.Status.CompareAndSwap(Unused, Inactive) {
			p.mu.Lock()
			p.Name = name
			p.mu.Unlock()
			return p.Id, true
		}
	}
	return 0, false
}

// Activate maps exe's segments, stack, heap, trapframe and trampoline into
// p's page table and primes its trapframe to start execution, transitioning
// p from Inactive to Runnable. It panics if p was not Inactive — the same
// fatal-misconfiguration contract the original's activate() has for
// activating an Unused or already-Running process.
func (p *Process) Activate(alloc *mem.Allocator, exe *elf.Executable, trampolinePhys mem.Pa_t) defs.Err_t {
	if p.Status.Load() != Inactive {
		panic("proc: Activate called on a non-Inactive process")
	}

	w := &vm.Walker{Alloc: alloc}
	root := p.PageTable

	fileBase := dataPtrOf(exe.Data)
	var dataEnd uint64

	for _, seg := range exe.Segments {
		for off := uint64(0); off < seg.Memsz; off += memlayout.PageSize {
			va := seg.Vaddr + off
			pa := fileBase + off + seg.Offset
			if _, err := w.StrongMap(root, vm.VirtAddr(va), vm.PhysAddr(pa), seg.Flags|vm.PteU); err != nil {
				return -defs.ENOMEM
			}
		}
		dataEnd = seg.Vaddr + seg.Memsz
	}

	// Stack: STACK_SIZE worth of anonymous frames mapped at
	// dataEnd+StackSize+PageSize, above the data segment's end; the range
	// between the two is left unmapped.
	stackAddr := dataEnd + StackSize + memlayout.PageSize
	for off := uint64(0); off < StackSize; off += memlayout.PageSize {
		frame, ok := alloc.Alloc_frame()
		if !ok {
			return -defs.ENOMEM
		}
		old, err := w.StrongMap(root, vm.VirtAddr(stackAddr+off), vm.PhysAddr(frame), vm.PteR|vm.PteW|vm.PteU)
		if err != nil {
			return -defs.ENOMEM
		}
		if old.Valid() {
			panic("proc: stack section overlaps with data segments")
		}
	}
	stackTop := stackAddr + StackSize

	// Heap: HEAP_SIZE worth of anonymous frames at the fixed HeapStart.
	for off := uint64(0); off < HeapSize; off += memlayout.PageSize {
		frame, ok := alloc.Alloc_frame()
		if !ok {
			return -defs.ENOMEM
		}
		old, err := w.StrongMap(root, vm.VirtAddr(HeapStart+off), vm.PhysAddr(frame), vm.PteR|vm.PteW|vm.PteU)
		if err != nil {
			return -defs.ENOMEM
		}
		if old.Valid() {
			panic("proc: heap section overlaps with data segments")
		}
	}

	tfPhys := physAddrOf(p.Trapframe)
	if _, err := w.StrongMap(root, vm.VirtAddr(memlayout.TrapframeV), vm.PhysAddr(tfPhys), vm.PteR|vm.PteW); err != nil {
		return -defs.ENOMEM
	}
	if _, err := w.StrongMap(root, vm.VirtAddr(memlayout.TrampolineV), vm.PhysAddr(trampolinePhys), vm.PteR|vm.PteX); err != nil {
		return -defs.ENOMEM
	}

	p.Trapframe.Sp = stackTop
	p.Trapframe.Epc = exe.Entry

	// A reused slot's Context may still hold the dead process's last
	// saved registers (sched.Exit marks the slot Unused without ever
	// touching Context — see sched/yield.go). Zeroing it here, the one
	// place every process (first-run or reused slot) passes through
	// before becoming Runnable, is this kernel's resolution of the
	// spec's unspecified exit/slot-reuse semantics: a slot's Context is
	// only ever trusted from its own Activate onward.
	//
	// Context.Sp gives the process its own kernel stack the first time
	// it is dispatched; Context.Ra is left zero and primed lazily by
	// sched on first dispatch, once it knows where to jump into.
	p.Context = Context{}
	p.Context.Sp = uint64(dataPtrOf(p.KernelStack)) + uint64(len(p.KernelStack))

	if !p.Status.CompareAndSwap(Inactive, Runnable) {
		panic("proc: Activate called on a non-Inactive process")
	}
	return 0
}
