package vm

import (
	"mem"
	"memlayout"
	"util"
)

// KernelLayout carries the addresses that depend on where the kernel image
// was placed: the end of the text segment (where the trampoline page
// borrows the kernel's last text page) and the end of data/bss (where the
// frame allocator's range begins). The caller supplies them; this package
// has no way to know them on its own.
type KernelLayout struct {
	TextEnd     uintptr
	DataEnd     uintptr
	TrampolineP uintptr
}

// BuildKernelPageTable constructs and returns KERNEL_PAGE_TABLE per spec.md
// §4.2: it identity-maps every MMIO region the kernel drives directly, the
// kernel's own text/data/bss, a high trampoline mapping, and the remainder
// of RAM for the frame allocator to hand out.
func BuildKernelPageTable(alloc *mem.Allocator, kl KernelLayout) (*PageTable, mem.Pa_t, error) {
	rootPa, ok := alloc.Alloc_frame()
	if !ok {
		return nil, 0, errOOM
	}
	root := pageTableAt(rootPa)
	w := &Walker{Alloc: alloc}

	ident := func(base uintptr, flags uint64) error {
		_, err := w.StrongMap(root, VirtAddr(base), PhysAddr(base), flags)
		return err
	}
	identRange := func(base uintptr, size uintptr, flags uint64) error {
		for off := uintptr(0); off < size; off += PGSIZE {
			if err := ident(base+off, flags); err != nil {
				return err
			}
		}
		return nil
	}

	// UART MMIO.
	if err := ident(memlayout.UartBase, PteR|PteW); err != nil {
		return nil, 0, err
	}
	// PLIC, [PLIC, PLIC+0x400000).
	if err := identRange(memlayout.Plic, 0x400000, PteR|PteW); err != nil {
		return nil, 0, err
	}
	// virtio-mmio slot 0.
	if err := ident(memlayout.Virtio0, PteR|PteW); err != nil {
		return nil, 0, err
	}
	// CLINT base, mtimecmp (hart 0), mtime, and the page after mtime.
	if err := ident(memlayout.ClintBase, PteR|PteW); err != nil {
		return nil, 0, err
	}
	if err := ident(uintptr(memlayout.MtimecmpAddr(0)), PteR|PteW); err != nil {
		return nil, 0, err
	}
	if err := ident(memlayout.MtimeAddr, PteR|PteW); err != nil {
		return nil, 0, err
	}
	if err := ident(memlayout.MtimeAddr+memlayout.PageSize, PteR|PteW); err != nil {
		return nil, 0, err
	}
	// Boot ROM page (QEMU virt's reset vector / OpenSBI landing page).
	if err := ident(0x1000, PteR|PteX); err != nil {
		return nil, 0, err
	}

	// Kernel text, leaving the very last page free for the trampoline.
	textLast := util.Roundup(kl.TextEnd, memlayout.PageSize) - memlayout.PageSize
	if err := identRange(memlayout.KernelBase, textLast-memlayout.KernelBase, PteR|PteX); err != nil {
		return nil, 0, err
	}

	// Trampoline: high virtual address, mapped to wherever the linker put
	// the trampoline's physical page.
	if _, err := w.StrongMap(root, VirtAddr(memlayout.TrampolineV), PhysAddr(kl.TrampolineP), PteR|PteX); err != nil {
		return nil, 0, err
	}

	// Kernel data/bss, identity, R+W.
	if err := identRange(textLast+memlayout.PageSize, kl.DataEnd-(textLast+memlayout.PageSize), PteR|PteW); err != nil {
		return nil, 0, err
	}

	// Remaining RAM, for the frame allocator, R+W+X (the kernel trusts its
	// own heap; user segments get their own, more restrictive, mappings).
	tailReserve := uintptr(memlayout.PageSize) // the very top page is TrampolineV, mapped above
	remStart := util.Roundup(kl.DataEnd, memlayout.PageSize)
	remEnd := uintptr(memlayout.RAMEnd) - tailReserve
	if err := identRange(remStart, remEnd-remStart, PteR|PteW|PteX); err != nil {
		return nil, 0, err
	}

	return root, rootPa, nil
}
