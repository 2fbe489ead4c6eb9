//go:build !riscv64

package boot

// On a host build there is no machine mode to drop out of; mret is a
// no-op so Start's CSR setup can still be exercised and Start still
// returns to its caller (unlike on real hardware).
func mret() {}
