package codesign

// Executable segment flag bits, stored in CodeDirectory.ExecSegFlags for
// code directories at version >= 0x20400. Part of the external wire
// contract; values are bit-exact with the constants Apple's toolchain emits.
const (
	ExecSegMainBinary    uint64 = 0x1
	ExecSegAllowUnsigned uint64 = 0x10
	ExecSegDebugger      uint64 = 0x20
	ExecSegJIT           uint64 = 0x40
	ExecSegSkipLV        uint64 = 0x80
	ExecSegCanLoadCDHash uint64 = 0x100
	ExecSegCanExecCDHash uint64 = 0x200
)

// Signer-type constants recorded by some producers outside the core
// CodeDirectory fields (legacy VPN plugins, Mac App Store signing, and
// their supplemental counterparts).
const (
	SignerTypeUnknown         uint32 = 0
	SignerTypeLegacyVPN       uint32 = 5
	SignerTypeMacAppStore     uint32 = 6
	SupplSignerTypeUnknown    uint32 = 0
	SupplSignerTypeTrustCache uint32 = 7
	SupplSignerTypeLocal      uint32 = 8
)

// SafeLinkSystemLibraries is the fixed set of system library names exempted
// from library-validation checks. Part of the external wire contract.
var SafeLinkSystemLibraries = []string{
	"cabinet",
	"iphlpapi",
	"msi",
	"rpcrt4",
	"rt",
	"winmm",
	"ws2_32",
}
