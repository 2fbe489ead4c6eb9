package fs

import (
	"testing"

	"defs"
)

// fakeDisk is an in-memory virtio.Disk backing a tiny disk image, for
// exercising Init/GetFileMeta/CopyToRAM without real hardware.
type fakeDisk struct {
	sectors map[uint64][SectorSize]byte
}

func (f *fakeDisk) ReadSector(sector uint64, buf []byte) defs.Err_t {
	if len(buf) != SectorSize {
		return -defs.EINVAL
	}
	s, ok := f.sectors[sector]
	if !ok {
		return -defs.EIO
	}
	copy(buf, s[:])
	return 0
}

func (f *fakeDisk) Stats() string { return "fakeDisk" }

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

func putU16(b []byte, off int, v uint16) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
}

func marshalFileMeta(m *FileMeta) [fileMetaSize]byte {
	var b [fileMetaSize]byte
	putU32(b[:], 0, m.Magic)
	putU32(b[:], 4, m.NodeListStart)
	putU16(b[:], 8, m.FileID)
	copy(b[10:10+FileNameLen], m.Name[:])
	putU32(b[:], 28, m.Size)
	return b
}

func marshalNode(n *Node) [NodeSize]byte {
	var b [NodeSize]byte
	putU32(b[:], 0, n.Magic)
	putU16(b[:], 4, n.FileID)
	putU16(b[:], 6, n.Flags)
	putU32(b[:], 8, n.Next)
	putU32(b[:], 12, n.Prev)
	copy(b[16:16+FileDataSize], n.Data[:])
	return b
}

// buildDisk writes one FileMeta entry named name with the given node chain
// contents into a fresh sector map.
func buildDisk(t *testing.T, name string, nodeData [][]byte) (*fakeDisk, uint32) {
	t.Helper()
	disk := &fakeDisk{sectors: map[uint64][SectorSize]byte{}}

	var sector0 [SectorSize]byte
	var nameBuf [FileNameLen]byte
	copy(nameBuf[:], name)

	total := 0
	for _, d := range nodeData {
		total += len(d)
	}

	meta := FileMeta{
		Magic:         FileMagicNumber,
		NodeListStart: 0,
		FileID:        1,
		Name:          nameBuf,
		Size:          uint32(total),
	}
	mb := marshalFileMeta(&meta)
	copy(sector0[:fileMetaSize], mb[:])
	disk.sectors[0] = sector0
	disk.sectors[1] = [SectorSize]byte{} // rest of the 1024-byte FileMeta table

	for i, d := range nodeData {
		var node Node
		node.Magic = NodeMagicNumber
		node.FileID = 1
		copy(node.Data[:], d)
		if i == len(nodeData)-1 {
			node.Next = 0xffffffff
		} else {
			node.Next = uint32(i + 1)
		}
		nb := marshalNode(&node)

		addr := NodeAddr(uint32(i))
		sec := addr / SectorSize
		var s0, s1 [SectorSize]byte
		copy(s0[:], nb[:SectorSize])
		copy(s1[:], nb[SectorSize:])
		disk.sectors[sec] = s0
		disk.sectors[sec+1] = s1
	}

	return disk, meta.NodeListStart
}

func TestInitAndGetFileMeta(t *testing.T) {
	disk, _ := buildDisk(t, "hello.txt", [][]byte{[]byte("hi there")})
	tbl, errno := Init(disk)
	if errno != 0 {
		t.Fatalf("Init failed: %d", errno)
	}
	m, ok := tbl.GetFileMeta("hello.txt")
	if !ok {
		t.Fatal("expected to find hello.txt")
	}
	if m.Size != uint32(len("hi there")) {
		t.Fatalf("size = %d, want %d", m.Size, len("hi there"))
	}
}

func TestGetFileMetaMissing(t *testing.T) {
	disk, _ := buildDisk(t, "hello.txt", [][]byte{[]byte("hi")})
	tbl, _ := Init(disk)
	if _, ok := tbl.GetFileMeta("nope.txt"); ok {
		t.Fatal("expected lookup of an absent name to fail")
	}
}

func TestCopyToRAMSingleNode(t *testing.T) {
	content := "the quick brown fox"
	disk, _ := buildDisk(t, "fox.txt", [][]byte{[]byte(content)})
	tbl, _ := Init(disk)

	got, errno := tbl.CopyToRAM("fox.txt")
	if errno != 0 {
		t.Fatalf("CopyToRAM failed: %d", errno)
	}
	if string(got) != content {
		t.Fatalf("got %q, want %q", got, content)
	}
}

func TestCopyToRAMMultiNode(t *testing.T) {
	first := make([]byte, FileDataSize)
	for i := range first {
		first[i] = 'a'
	}
	second := []byte("tail segment")
	disk, _ := buildDisk(t, "big.bin", [][]byte{first, second})
	tbl, _ := Init(disk)

	got, errno := tbl.CopyToRAM("big.bin")
	if errno != 0 {
		t.Fatalf("CopyToRAM failed: %d", errno)
	}
	want := append(append([]byte{}, first...), second...)
	if string(got) != string(want) {
		t.Fatalf("got %d bytes, want %d bytes", len(got), len(want))
	}
}

func TestCat(t *testing.T) {
	disk, _ := buildDisk(t, "msg.txt", [][]byte{[]byte("hello world")})
	tbl, _ := Init(disk)

	s, errno := tbl.Cat("msg.txt")
	if errno != 0 {
		t.Fatalf("Cat failed: %d", errno)
	}
	if s != "hello world" {
		t.Fatalf("Cat = %q", s)
	}
}

func TestLs(t *testing.T) {
	disk, _ := buildDisk(t, "only.txt", [][]byte{[]byte("x")})
	tbl, _ := Init(disk)

	names := tbl.Ls()
	if len(names) != 1 || names[0] != "only.txt" {
		t.Fatalf("Ls = %v", names)
	}
}
