// Command mkdisk builds a raw disk image in the flat file layout the
// fs package reads: a FileMeta table in the image's first 1024 bytes
// (32 entries of 32 bytes, spanning sectors 0 and 1 up to fs.NodesOffset)
// followed by each file's 1024-byte node chain.
//
// A predecessor disk-image builder in this lineage takes a fixed
// positional argument list (bootimage, kernel image, output image,
// skeleton dir) and walks the skeleton directory itself. This kernel's
// on-disk format has no directories or inodes to walk — just a flat,
// 32-entry file table — so the host-side input is a YAML manifest of
// (name, path) pairs instead, the same declarative-manifest shape
// tinyrange-cc uses for its own image-building tool.
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fs"
)

type manifestEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type manifest struct {
	Files []manifestEntry `yaml:"files"`
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <manifest.yaml> <output image>\n", os.Args[0])
		os.Exit(1)
	}
	manifestPath, imagePath := os.Args[1], os.Args[2]

	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		fatal(err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		fatal(err)
	}
	if len(m.Files) > fs.MaxFiles {
		fatal(fmt.Errorf("manifest lists %d files, the disk table only holds %d", len(m.Files), fs.MaxFiles))
	}

	b := newImageBuilder()
	for i, entry := range m.Files {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			fatal(err)
		}
		if err := b.addFile(uint16(i), entry.Name, data); err != nil {
			fatal(err)
		}
	}

	if err := os.WriteFile(imagePath, b.bytes(), 0644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s: %d file(s), %d byte(s)\n", imagePath, len(m.Files), len(b.bytes()))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "mkdisk:", err)
	os.Exit(1)
}

// imageBuilder accumulates the FileMeta table and the node chains behind
// it. Nodes are appended in allocation order starting at node id 0, so
// nextNode also doubles as "how many nodes written so far".
type imageBuilder struct {
	metaEntries [fs.MaxFiles]fs.FileMeta
	nodes       []byte
	nextNode    uint32
}

func newImageBuilder() *imageBuilder { return &imageBuilder{} }

// addFile chunks data into fs.FileDataSize-byte nodes and records a
// FileMeta entry for it at table slot id. A zero-length file still gets
// one (empty) node, matching the +1 segment-count the fs package's
// CopyToRAM already expects from a zero-size file.
func (b *imageBuilder) addFile(id uint16, name string, data []byte) error {
	if len(name) > fs.FileNameLen {
		return fmt.Errorf("file name %q longer than %d bytes", name, fs.FileNameLen)
	}

	first := b.nextNode
	cur := first
	off := 0
	for {
		take := len(data) - off
		if take > fs.FileDataSize {
			take = fs.FileDataSize
		}
		more := off+take < len(data)

		var node [fs.NodeSize]byte
		binary.LittleEndian.PutUint32(node[0:4], uint32(fs.NodeMagicNumber))
		binary.LittleEndian.PutUint16(node[4:6], id)
		if more {
			binary.LittleEndian.PutUint32(node[8:12], cur+1)
		}
		if cur != first {
			binary.LittleEndian.PutUint32(node[12:16], cur-1)
		}
		copy(node[16:16+fs.FileDataSize], data[off:off+take])
		b.nodes = append(b.nodes, node[:]...)

		off += take
		cur++
		if !more {
			break
		}
	}
	b.nextNode = cur

	meta := fs.FileMeta{
		Magic:         fs.FileMagicNumber,
		NodeListStart: first,
		FileID:        id,
		Size:          uint32(len(data)),
	}
	copy(meta.Name[:], name)
	b.metaEntries[id] = meta
	return nil
}

// bytes serializes the table and node chain into a single raw image,
// using the exact field layout fs.Init/fs.Table.readNode expect.
func (b *imageBuilder) bytes() []byte {
	table := make([]byte, fs.NodesOffset)
	for i := range b.metaEntries {
		m := &b.metaEntries[i]
		off := i * 32
		binary.LittleEndian.PutUint32(table[off:off+4], m.Magic)
		binary.LittleEndian.PutUint32(table[off+4:off+8], m.NodeListStart)
		binary.LittleEndian.PutUint16(table[off+8:off+10], m.FileID)
		copy(table[off+10:off+10+fs.FileNameLen], m.Name[:])
		binary.LittleEndian.PutUint32(table[off+28:off+32], m.Size)
	}

	out := make([]byte, 0, fs.NodesOffset+len(b.nodes))
	out = append(out, table...)
	out = append(out, b.nodes...)
	return out
}
