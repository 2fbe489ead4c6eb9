package elf

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"
)

// buildTestELF assembles a minimal valid RISC-V 64-bit executable with one
// PT_LOAD segment, entirely in memory, so the parser can be exercised
// without a real toolchain-produced binary on disk.
func buildTestELF(t *testing.T) []byte {
	t.Helper()

	const (
		ehsize  = 64
		phsize  = 56
		entry   = 0x1000
		vaddr   = 0x1000
		payload = "hello"
	)
	off := uint64(ehsize + phsize)

	var buf bytes.Buffer
	hdr := elf.Header64{
		Ident:     [elf.EI_NIDENT]byte{0x7f, 'E', 'L', 'F', byte(elf.ELFCLASS64), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT)},
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_RISCV),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entry,
		Phoff:     ehsize,
		Ehsize:    ehsize,
		Phentsize: phsize,
		Phnum:     1,
	}
	binary.Write(&buf, binary.LittleEndian, &hdr)

	ph := elf.Prog64{
		Type:   uint32(elf.PT_LOAD),
		Flags:  uint32(elf.PF_R | elf.PF_X),
		Off:    off,
		Vaddr:  vaddr,
		Paddr:  vaddr,
		Filesz: uint64(len(payload)),
		Memsz:  uint64(len(payload)) + 3, // extra bss tail
		Align:  0x1000,
	}
	binary.Write(&buf, binary.LittleEndian, &ph)
	buf.WriteString(payload)

	return buf.Bytes()
}

func TestParseValidExecutable(t *testing.T) {
	data := buildTestELF(t)
	exe, errno := Parse(data)
	if errno != 0 {
		t.Fatalf("Parse failed with errno %d", errno)
	}
	if exe.Entry != 0x1000 {
		t.Fatalf("Entry = %#x, want 0x1000", exe.Entry)
	}
	if len(exe.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(exe.Segments))
	}
	seg := exe.Segments[0]
	if seg.Vaddr != 0x1000 || seg.Filesz != 5 || seg.Memsz != 8 {
		t.Fatalf("unexpected segment %+v", seg)
	}
	const pteR, pteX = 1 << 1, 1 << 3
	if seg.Flags != pteR|pteX {
		t.Fatalf("Flags = %#x, want R|X", seg.Flags)
	}
}

func TestParseRejectsWrongMachine(t *testing.T) {
	data := buildTestELF(t)
	// Flip the e_machine field (offset 18) to x86_64.
	binary.LittleEndian.PutUint16(data[18:20], uint16(elf.EM_X86_64))
	if _, errno := Parse(data); errno == 0 {
		t.Fatal("expected Parse to reject a non-RISC-V binary")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, errno := Parse([]byte("not an elf file")); errno == 0 {
		t.Fatal("expected Parse to reject garbage input")
	}
}
