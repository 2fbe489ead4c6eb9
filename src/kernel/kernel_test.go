//go:build !riscv64

package main

import (
	"testing"
	"unsafe"

	"defs"
	"fs"
	"mem"
	"proc"
	"uart"
	"vm"
)

// emptyDisk is a virtio.Disk whose sector 0 has no valid FileMeta entries
// — the boot-parity scenario's "data files only, no executable" image.
type emptyDisk struct{}

func (emptyDisk) ReadSector(sector uint64, buf []byte) defs.Err_t {
	for i := range buf {
		buf[i] = 0
	}
	return 0
}

func (emptyDisk) Stats() string { return "emptyDisk" }

func TestBootstrapInitProcessSkipsWhenAbsent(t *testing.T) {
	ft, err := fs.Init(emptyDisk{})
	if err != 0 {
		t.Fatalf("fs.Init: %v", err)
	}
	fileTable = ft
	processTable = proc.NewTable()
	allocator = newHostAlloc(t, 8)

	bootstrapInitProcess() // must not panic when "init" isn't on disk

	if got := processTable.Get(0).Status.Load(); got != proc.Unused {
		t.Fatalf("slot 0 status = %s, want unused (no process should have been activated)", got)
	}
}

func TestGreetHartWritesBootLine(t *testing.T) {
	uart.TakeTX()
	greetHart(3)
	if got, want := string(uart.TakeTX()), "Hello from Hart #3\n"; got != want {
		t.Fatalf("greetHart wrote %q, want %q", got, want)
	}
}

// newHostAlloc backs an allocator with real host memory (the same trick
// vm's own tests use), so mem.Bytes on an allocated frame is safe to read
// and write from Go code.
func newHostAlloc(t *testing.T, npages int) *mem.Allocator {
	t.Helper()
	buf := make([]byte, npages*vm.PGSIZE+vm.PGSIZE)
	start := uintptr(unsafe.Pointer(&buf[0]))
	return mem.New(start, start+uintptr(len(buf)))
}

func TestDoPrintCopiesUserBytesToUART(t *testing.T) {
	alloc := newHostAlloc(t, 4)
	table := proc.NewTable()
	p := table.Get(0)

	w := &vm.Walker{Alloc: alloc}
	frame, ok := alloc.Alloc_frame()
	if !ok {
		t.Fatal("setup: out of frames")
	}
	const uva = 0x1000
	if _, err := w.StrongMap(p.PageTable, vm.VirtAddr(uva), vm.PhysAddr(frame), vm.PteR|vm.PteU); err != nil {
		t.Fatalf("setup: StrongMap: %v", err)
	}
	copy(mem.Bytes(frame), "hi")

	uart.TakeTX() // drain anything left over from another test in this package
	doPrint(p, uva, 2)

	if got := string(uart.TakeTX()); got != "hi" {
		t.Fatalf("doPrint wrote %q to the UART, want %q", got, "hi")
	}
	if p.Trapframe.A0 != 2 {
		t.Fatalf("A0 = %d, want 2 (bytes written)", p.Trapframe.A0)
	}
}

func TestDoPrintFaultsOnUnmappedVA(t *testing.T) {
	table := proc.NewTable()
	p := table.Get(1)

	doPrint(p, 0x4000, 4)

	if int64(p.Trapframe.A0) >= 0 {
		t.Fatalf("A0 = %d, want a negative errno for an unmapped read", int64(p.Trapframe.A0))
	}
}

func TestDoPrintFaultsOnMissingUserBit(t *testing.T) {
	alloc := newHostAlloc(t, 4)
	table := proc.NewTable()
	p := table.Get(2)

	w := &vm.Walker{Alloc: alloc}
	frame, ok := alloc.Alloc_frame()
	if !ok {
		t.Fatal("setup: out of frames")
	}
	const uva = 0x5000
	// Readable but not U-accessible: a kernel-only page a user ecall has
	// no business reading.
	if _, err := w.StrongMap(p.PageTable, vm.VirtAddr(uva), vm.PhysAddr(frame), vm.PteR); err != nil {
		t.Fatalf("setup: StrongMap: %v", err)
	}

	doPrint(p, uva, 1)

	if int64(p.Trapframe.A0) >= 0 {
		t.Fatalf("A0 = %d, want a negative errno for a permission violation", int64(p.Trapframe.A0))
	}
}

func TestCopyInUserSpansPageBoundary(t *testing.T) {
	alloc := newHostAlloc(t, 4)
	table := proc.NewTable()
	p := table.Get(3)

	w := &vm.Walker{Alloc: alloc}
	const base = 0x2000 // one page below a boundary
	want := make([]byte, 0, vm.PGSIZE+8)
	for i := 0; i < 2; i++ {
		frame, ok := alloc.Alloc_frame()
		if !ok {
			t.Fatal("setup: out of frames")
		}
		page := mem.Bytes(frame)
		for j := range page {
			page[j] = byte(i*64 + j%64)
		}
		if i == 0 {
			want = append(want, page...)
		} else {
			want = append(want, page[:8]...)
		}
		if _, err := w.StrongMap(p.PageTable, vm.VirtAddr(base+i*vm.PGSIZE), vm.PhysAddr(frame), vm.PteR|vm.PteU); err != nil {
			t.Fatalf("setup: StrongMap: %v", err)
		}
	}

	got, errno := copyInUser(p.PageTable, base, len(want))
	if errno != 0 {
		t.Fatalf("copyInUser: errno %d", errno)
	}
	if string(got) != string(want) {
		t.Fatalf("copyInUser returned %v, want %v", got, want)
	}
}

func TestDispatchSyscallReadIsUnimplemented(t *testing.T) {
	table := proc.NewTable()
	p := table.Get(4)
	p.Trapframe.A6 = sysRead

	dispatchSyscall(p)

	if int64(p.Trapframe.A0) >= 0 {
		t.Fatalf("A0 = %d, want a negative errno for the unimplemented read syscall", int64(p.Trapframe.A0))
	}
}

func TestDispatchSyscallUnknownNumberIsUnimplemented(t *testing.T) {
	table := proc.NewTable()
	p := table.Get(5)
	p.Trapframe.A6 = 0xff

	dispatchSyscall(p)

	if int64(p.Trapframe.A0) >= 0 {
		t.Fatalf("A0 = %d, want a negative errno for an unknown syscall number", int64(p.Trapframe.A0))
	}
}

func TestDeviceInterruptNoPendingIRQIsANoop(t *testing.T) {
	deviceInterrupt(0) // plic.Claim returning 0 must not panic or touch either driver
}
