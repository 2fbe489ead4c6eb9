//go:build !riscv64

package trampoline

import "testing"

func TestAddrsAreDistinctAndNonZero(t *testing.T) {
	u, r := Addr(), UserretAddr()
	if u == 0 || r == 0 {
		t.Fatal("trampoline addresses must not be the zero address")
	}
	if u == r {
		t.Fatal("Uservec and Userret must not be at the same address")
	}
}
