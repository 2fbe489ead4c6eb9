//go:build !riscv64

package plic

import "testing"

func TestContextIDFormula(t *testing.T) {
	cases := map[int]int{0: 1, 1: 3, 2: 5}
	for hart, want := range cases {
		if got := ContextID(hart); got != want {
			t.Fatalf("ContextID(%d) = %d, want %d", hart, got, want)
		}
	}
}

func TestInitAndClaimComplete(t *testing.T) {
	InitGlobal()
	InitHart(0)

	if v := read32(enableAddr(ContextID(0))); v == 0 {
		t.Fatal("expected UART/virtio0 IRQs enabled for hart 0's context")
	}
	if v := read32(thresholdAddr(ContextID(0))); v != 0 {
		t.Fatalf("threshold = %d, want 0", v)
	}

	write32(claimAddr(ContextID(0)), 10) // simulate the PLIC handing back IRQ 10
	if got := Claim(0); got != 10 {
		t.Fatalf("Claim(0) = %d, want 10", got)
	}
	Complete(0, 10)
	if got := read32(claimAddr(ContextID(0))); got != 10 {
		t.Fatalf("Complete should write the irq id back, got %d", got)
	}
}
