// Package console implements the byte ring buffers the UART driver's
// interrupt handler drains into and flushes from. It is the rvos analogue
// of biscuit's circbuf.Circbuf_t, simplified: no swappable backing page (a
// console ring is a handful of bytes, always resident, never paged), and
// no Userio_i copy interface since nothing here ever crosses a user/kernel
// boundary directly — uart and the syscall layer move bytes one at a time.
package console

// ringSize is generous for a line-buffered 16550: more than enough to hold
// a burst of keystrokes or a pending printf between TX-empty interrupts.
const ringSize = 256

// Ring is a single-producer single-consumer byte ring buffer. head is only
// ever advanced by the writer, tail only by the reader; head-tail (mod
// ringSize never taken directly, only on indexing) gives the occupancy,
// following the same head/tail-never-wrap discipline as biscuit's
// Circbuf_t.
type Ring struct {
	buf        [ringSize]byte
	head, tail int
}

// Full reports whether the ring has no room for another byte.
func (r *Ring) Full() bool { return r.head-r.tail == ringSize }

// Empty reports whether the ring has nothing left to read.
func (r *Ring) Empty() bool { return r.head == r.tail }

// Push appends one byte, dropping it if the ring is full — the same
// overrun behavior a real 16550 RX FIFO has once software stops draining
// it in time.
func (r *Ring) Push(b byte) bool {
	if r.Full() {
		return false
	}
	r.buf[r.head%ringSize] = b
	r.head++
	return true
}

// Pop removes and returns the oldest byte, or ok=false if empty.
func (r *Ring) Pop() (byte, bool) {
	if r.Empty() {
		return 0, false
	}
	b := r.buf[r.tail%ringSize]
	r.tail++
	return b, true
}
