// Package elf parses the RISC-V executables the ELF loader (proc.Activate)
// maps into a fresh process, reusing the standard library's debug/elf
// reader rather than hand-rolling a parser, with the machine/class checks
// narrowed to riscv64.
package elf

import (
	"bytes"
	stdelf "debug/elf"
	"fmt"

	"defs"
)

// Segment is one loadable program header, reduced to the fields the
// process activation path needs: where in the file it starts, how many
// bytes to copy, where it lands in the user address space, how large the
// mapping should be (memsz can exceed filesz — the tail is zero-filled
// bss), and the permission bits to map it with.
type Segment struct {
	Vaddr  uint64
	Offset uint64
	Filesz uint64
	Memsz  uint64
	Flags  uint64 // vm.PteR / PteW / PteX, already translated from ELF flags
}

// Executable is a parsed user binary: its entry point and loadable
// segments, plus the raw file bytes the segments' Offset/Filesz index into.
type Executable struct {
	Entry    uint64
	Segments []Segment
	Data     []byte
}

// Parse validates that data is a RISC-V 64-bit executable ELF and extracts
// its loadable segments. It mirrors the original's parse_executable_file,
// which likewise asserts e_machine == 0xf3 (stdelf.EM_RISCV) and only looks
// at the segment table.
func Parse(data []byte) (*Executable, defs.Err_t) {
	f, err := stdelf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, -defs.EINVAL
	}
	if f.Machine != stdelf.EM_RISCV {
		return nil, -defs.EINVAL
	}
	if f.Class != stdelf.ELFCLASS64 {
		return nil, -defs.EINVAL
	}
	if f.Type != stdelf.ET_EXEC {
		return nil, -defs.EINVAL
	}

	var segs []Segment
	for _, p := range f.Progs {
		if p.Type != stdelf.PT_LOAD {
			continue
		}
		segs = append(segs, Segment{
			Vaddr:  p.Vaddr,
			Offset: p.Off,
			Filesz: p.Filesz,
			Memsz:  p.Memsz,
			Flags:  segFlags(p.Flags),
		})
	}
	if len(segs) == 0 {
		return nil, -defs.EINVAL
	}

	return &Executable{
		Entry:    f.Entry,
		Segments: segs,
		Data:     data,
	}, 0
}

// segFlags translates ELF program-header permission bits (PF_R/PF_W/PF_X)
// into the vm package's PTE bit values (1<<1, 1<<2, 1<<3 respectively) —
// elf does not import vm to avoid a dependency cycle (vm will eventually
// want to report load errors using defs too), so the numeric values are
// restated here; they are fixed by the RISC-V privileged spec and do not
// change.
func segFlags(f stdelf.ProgFlag) uint64 {
	const (
		pteR = 1 << 1
		pteW = 1 << 2
		pteX = 1 << 3
	)
	var out uint64
	if f&stdelf.PF_R != 0 {
		out |= pteR
	}
	if f&stdelf.PF_W != 0 {
		out |= pteW
	}
	if f&stdelf.PF_X != 0 {
		out |= pteX
	}
	return out
}

func (e *Executable) String() string {
	return fmt.Sprintf("elf entry=%#x segments=%d", e.Entry, len(e.Segments))
}
