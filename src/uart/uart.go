// Package uart drives the ns16550-compatible UART qemu-virt emulates: the
// DLAB-dance init sequence and the RX/TX interrupt handler that moves bytes
// to and from a pair of console.Ring buffers.
package uart

import "console"

// Register offsets from the UART's MMIO base, ns16550 layout.
const (
	regRHR = 0 // receive holding register (DLAB=0, read)
	regTHR = 0 // transmit holding register (DLAB=0, write)
	regDLL = 0 // divisor latch low (DLAB=1)
	regIER = 1 // interrupt enable register (DLAB=0)
	regDLM = 1 // divisor latch high (DLAB=1)
	regFCR = 2 // FIFO control register (write)
	regISR = 2 // interrupt status register (read)
	regLCR = 3 // line control register
	regLSR = 5 // line status register
)

const (
	lcrDLAB  = 1 << 7
	lcr8N1   = 0x03
	fcrEnable = 1 << 0
	fcrClearRX = 1 << 1
	fcrClearTX = 1 << 2
	ierRXAvail = 1 << 0
	ierTXEmpty = 1 << 1
	lsrRXReady = 1 << 0
	lsrTXIdle  = 1 << 5
)

// Uart is one 16550 instance plus the console rings its interrupt handler
// moves bytes through.
type Uart struct {
	rx console.Ring
	tx console.Ring
}

// Init runs the standard ns16550 bring-up: mask interrupts, set the
// divisor for 38.4K baud (low=3, high=0, the qemu-virt UART clock's
// standard divisor for that rate), switch to 8-N-1, enable and clear the
// FIFOs, then enable RX-available and TX-empty interrupts.
func (u *Uart) Init() {
	writeReg(regIER, 0x00)

	writeReg(regLCR, lcrDLAB)
	writeReg(regDLL, 3)
	writeReg(regDLM, 0)

	writeReg(regLCR, lcr8N1)

	writeReg(regFCR, fcrEnable|fcrClearRX|fcrClearTX)

	writeReg(regIER, ierRXAvail|ierTXEmpty)
}

// PutcNow writes one byte directly to the THR, spinning until the
// transmitter is idle. Used for kernel-panic output where the interrupt
// path cannot be trusted to still be running.
func (u *Uart) PutcNow(c byte) {
	for readReg(regLSR)&lsrTXIdle == 0 {
	}
	writeReg(regTHR, c)
}

// Putc queues c for transmission via the TX ring, returning false if the
// ring is full (the caller may retry or drop the byte, matching how a
// 16550's own FIFO behaves under overrun).
func (u *Uart) Putc(c byte) bool {
	ok := u.tx.Push(c)
	u.pump()
	return ok
}

// Getc dequeues one byte the interrupt handler already moved into the RX
// ring, or ok=false if none is available.
func (u *Uart) Getc() (byte, bool) {
	return u.rx.Pop()
}

// Intr services a UART interrupt: drains every byte currently available in
// the RHR into the RX ring, then pumps the TX ring into the THR.
func (u *Uart) Intr() {
	for readReg(regLSR)&lsrRXReady != 0 {
		u.rx.Push(readReg(regRHR))
	}
	u.pump()
}

// pump flushes the TX ring into the THR until the ring empties or the
// transmitter is not ready; the remainder waits for the next TX-empty
// interrupt.
func (u *Uart) pump() {
	for readReg(regLSR)&lsrTXIdle != 0 {
		b, ok := u.tx.Pop()
		if !ok {
			break
		}
		writeReg(regTHR, b)
	}
}
