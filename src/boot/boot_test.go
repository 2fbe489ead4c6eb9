//go:build !riscv64

package boot

import (
	"testing"

	"arch"
)

func TestStartSetsSupervisorMPP(t *testing.T) {
	called := false
	Start(0, 0x2000, 0x3000, arch.MieMTIE, func(hart int) {
		called = true
		if hart != 0 {
			t.Fatalf("hart = %d, want 0", hart)
		}
	})

	mpp := (arch.RdMstatus() >> 11) & 0b11
	if mpp != uint64(arch.Supervisor) {
		t.Fatalf("MPP = %d, want Supervisor (%d)", mpp, arch.Supervisor)
	}
	if arch.RdSie() != arch.SieDefault {
		t.Fatalf("sie = %#x, want %#x", arch.RdSie(), arch.SieDefault)
	}
	if arch.RdMscratch() != 0x3000 {
		t.Fatalf("mscratch = %#x, want 0x3000", arch.RdMscratch())
	}
	if arch.RdMie() != arch.MieMTIE {
		t.Fatalf("mie = %#x, want %#x", arch.RdMie(), arch.MieMTIE)
	}
	// mret is a no-op on this host, so sEntry is never actually reached;
	// Start's CSR bookkeeping is all that's testable here.
	if called {
		t.Fatal("sEntry should not run on a host where mret is a no-op")
	}
}
