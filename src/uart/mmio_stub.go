//go:build !riscv64

package uart

// hostRegs backs a tiny fake 16550 for host tests: LSR always reports the
// transmitter idle, and a test can stage incoming bytes via InjectRX
// before calling Intr, the same way real hardware would latch a byte into
// RHR and raise LSR's RX-ready bit.
var (
	hostRegs   = map[uintptr]byte{regLSR: lsrTXIdle}
	hostRXQ    []byte
	hostTXOut  []byte
)

func readReg(off uintptr) byte {
	if off == regRHR {
		if len(hostRXQ) == 0 {
			return 0
		}
		b := hostRXQ[0]
		hostRXQ = hostRXQ[1:]
		if len(hostRXQ) == 0 {
			hostRegs[regLSR] &^= lsrRXReady
		}
		return b
	}
	return hostRegs[off]
}

func writeReg(off uintptr, v byte) {
	if off == regTHR {
		hostTXOut = append(hostTXOut, v)
		return
	}
	hostRegs[off] = v
}

// InjectRX stages bytes as if the 16550 had latched them from the wire,
// for tests of Intr's RX-draining path.
func InjectRX(bs ...byte) {
	hostRXQ = append(hostRXQ, bs...)
	hostRegs[regLSR] |= lsrRXReady
}

// TakeTX drains and returns everything written to THR so far, for tests of
// the TX-pumping path.
func TakeTX() []byte {
	out := hostTXOut
	hostTXOut = nil
	return out
}
