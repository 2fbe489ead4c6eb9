//go:build riscv64

package arch

// CSR accessors. Each pair of Rd*/Wr* functions is implemented in
// csr_riscv64.s as a single `csrr`/`csrw` instruction — there is no generic
// "read CSR number N" primitive because the CSR number is encoded in the
// instruction immediate, not passed in a register. This is the same
// constraint the original Rust's `arch/registers/csr.rs` works around with
// per-register const-generic shims; we use one assembly stub per register
// instead of generics over an instruction encoding.
//
// Privilege and trap notes:
//   - The M* registers (Mstatus, Mepc, Medeleg, Mideleg, Pmpaddr0, Pmpcfg0)
//     are only accessible in machine mode; reading or writing them from S or
//     U mode traps an illegal-instruction exception. They are only touched
//     from boot.Start, before `mret`.
//   - The S* registers are accessible from supervisor mode; user-mode access
//     traps. Sepc/Scause/Stval/Sscratch are only meaningful between trap
//     entry and the matching sret/trap-return.
//   - None of these reads or writes require an explicit fence; Satp writes
//     must be followed by SfenceVMA for the new mapping to take effect on
//     this hart.

func RdMstatus() uint64
func WrMstatus(v uint64)

func WrMepc(v uint64)

func WrMedeleg(v uint64)
func WrMideleg(v uint64)

func RdSie() uint64
func WrSie(v uint64)

func WrPmpaddr0(v uint64)
func WrPmpcfg0(v uint64)

func RdSstatus() uint64
func WrSstatus(v uint64)

func RdSepc() uint64
func WrSepc(v uint64)

func RdScause() uint64
func RdStval() uint64

func WrStvec(v uint64)

func RdSatp() uint64
func WrSatp(v uint64)

func RdSscratch() uint64
func WrSscratch(v uint64)

func RdSip() uint64
func WrSip(v uint64)

func RdMhartid() uint64
func RdMscratch() uint64
func WrMscratch(v uint64)
func WrMtvec(v uint64)
func RdMie() uint64
func WrMie(v uint64)

// Tp reads/writes the thread-pointer GPR, which this kernel repurposes to
// hold the current hart's id throughout supervisor mode (spec.md §4.1 step 7
// and the invariant in §4.4's kernelvec that tp is preserved across traps
// so a migrated hart never sees a stale id).
func RdTp() uint64
func WrTp(v uint64)

// SfenceVMA flushes this hart's TLB. Required after writing Satp and after
// any page-table edit that could be visible to a TLB entry already cached
// on this hart. Privilege: supervisor. Never traps.
func SfenceVMA()

// WFI halts the hart until the next interrupt. Privilege: supervisor (when
// delegated) or machine. Never traps (but may be a no-op under some
// hypervisors — not a concern on bare qemu-virt).
func WFI()
