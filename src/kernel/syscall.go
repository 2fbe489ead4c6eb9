// Syscall dispatch, per spec.md §4.11: number in a6, arguments in a0-a5.
package main

import (
	"defs"
	"mem"
	"proc"
	"sched"
	"vm"
)

const (
	sysRead  = 10
	sysPrint = 11
	sysExit  = 12
)

// dispatchSyscall runs the syscall named in tf.A6 and, for everything but
// exit, leaves its result in tf.A0 for the return to user mode to carry
// back. usertrap has already advanced tf.Epc past the ecall before calling
// this.
func dispatchSyscall(p *proc.Process) {
	tf := p.Trapframe
	switch tf.A6 {
	case sysRead:
		// Reserved; not implemented in any drafted version of this
		// kernel, per spec.md §4.11.
		enosys := -defs.ENOSYS
		tf.A0 = uint64(int64(enosys))
	case sysPrint:
		doPrint(p, tf.A0, tf.A1)
	case sysExit:
		sched.Exit(p) // never returns
	default:
		enosys := -defs.ENOSYS
		tf.A0 = uint64(int64(enosys))
	}
}

// doPrint translates the len bytes at the user virtual address uva under
// p's own page table (requiring R+U, per spec.md §4.11) and writes them
// straight to the UART, the same synchronous path kernel panic output
// uses — the trap handler runs with interrupts masked, so there is no
// point queuing through the TX ring's interrupt-driven pump.
func doPrint(p *proc.Process, uva, length uint64) {
	data, errno := copyInUser(p.PageTable, uva, int(length))
	if errno != 0 {
		p.Trapframe.A0 = uint64(int64(errno))
		return
	}
	for _, b := range data {
		consoleUART.PutcNow(b)
	}
	p.Trapframe.A0 = uint64(len(data))
}

// copyInUser reads n bytes starting at the user virtual address uva,
// translating one page at a time under root (spec.md's print syscall is
// the only caller, but nothing here is specific to it).
func copyInUser(root *vm.PageTable, uva uint64, n int) ([]byte, defs.Err_t) {
	if n < 0 {
		return nil, -defs.EINVAL
	}
	out := make([]byte, 0, n)
	for len(out) < n {
		pa, err := vm.Translate(root, vm.VirtAddr(uva), vm.PteR|vm.PteU)
		if err != nil {
			return nil, -defs.EFAULT
		}
		page := mem.Bytes(mem.Pa_t(pa.FrameAddr()))
		off := int(pa.Offset())
		take := n - len(out)
		if room := len(page) - off; take > room {
			take = room
		}
		out = append(out, page[off:off+take]...)
		uva += uint64(take)
	}
	return out, 0
}
