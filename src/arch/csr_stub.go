//go:build !riscv64

package arch

// On any host other than riscv64 (i.e. whenever the kernel's pure-logic
// packages are being unit tested on the development machine) there is no
// real CSR file to read. These stubs back the same package-level state a
// single hart would see, so tests of code that merely plumbs values through
// arch's accessors (rather than programming real hardware) still run.
// Nothing above supervisor-mode boot and the trap path calls these outside
// of riscv64 builds.

var (
	hostMstatus, hostSie, hostSstatus, hostSepc, hostScause, hostStval uint64
	hostSatp, hostSscratch, hostSip, hostMscratch, hostMie, hostTp     uint64
)

func RdMstatus() uint64    { return hostMstatus }
func WrMstatus(v uint64)   { hostMstatus = v }
func WrMepc(uint64)        {}
func WrMedeleg(uint64)     {}
func WrMideleg(uint64)     {}
func RdSie() uint64        { return hostSie }
func WrSie(v uint64)       { hostSie = v }
func WrPmpaddr0(uint64)    {}
func WrPmpcfg0(uint64)     {}
func RdSstatus() uint64    { return hostSstatus }
func WrSstatus(v uint64)   { hostSstatus = v }
func RdSepc() uint64       { return hostSepc }
func WrSepc(v uint64)      { hostSepc = v }
func RdScause() uint64     { return hostScause }
func RdStval() uint64      { return hostStval }
func WrStvec(uint64)       {}
func RdSatp() uint64       { return hostSatp }
func WrSatp(v uint64)      { hostSatp = v }
func RdSscratch() uint64   { return hostSscratch }
func WrSscratch(v uint64)  { hostSscratch = v }
func RdSip() uint64        { return hostSip }
func WrSip(v uint64)       { hostSip = v }
func RdMhartid() uint64    { return 0 }
func RdMscratch() uint64   { return hostMscratch }
func WrMscratch(v uint64)  { hostMscratch = v }
func WrMtvec(uint64)       {}
func RdMie() uint64        { return hostMie }
func WrMie(v uint64)       { hostMie = v }
func RdTp() uint64         { return hostTp }
func WrTp(v uint64)        { hostTp = v }
func SfenceVMA()           {}
func WFI()                 {}
