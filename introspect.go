package luneffi

import "runtime"

// OSFamily is the closed platform-OS enumeration a script sees as
// `platformOS` (spec §4.8, §6's exported module surface).
type OSFamily string

const (
	OSWindows OSFamily = "Windows"
	OSOSX     OSFamily = "OSX"
	OSiOS     OSFamily = "iOS"
	OSLinux   OSFamily = "Linux"
	OSBSD     OSFamily = "BSD"
	OSSolaris OSFamily = "Solaris"
	OSOther   OSFamily = "Other"
)

// ArchFamily is the closed architecture enumeration a script sees as
// `platformArch` (spec §4.8, §6).
type ArchFamily string

const (
	ArchX64     ArchFamily = "x64"
	ArchX86     ArchFamily = "x86"
	ArchArm64   ArchFamily = "arm64"
	ArchArm     ArchFamily = "arm"
	ArchPpc64   ArchFamily = "ppc64"
	ArchPpc     ArchFamily = "ppc"
	ArchMips64  ArchFamily = "mips64"
	ArchMips    ArchFamily = "mips"
	ArchRiscv64 ArchFamily = "riscv64"
	ArchS390x   ArchFamily = "s390x"
	ArchOther   ArchFamily = "other"
)

// AbiInfo is the `{32bit, 64bit, le, be, fpu, softfp, hardfp, win, bsd, elf}`
// boolean record a script sees as `abiInfo` (spec §4.8, §6), derived from
// the running binary's GOOS/GOARCH target facts.
type AbiInfo struct {
	Is32Bit      bool
	Is64Bit      bool
	LittleEndian bool
	BigEndian    bool
	Fpu          bool
	Softfp       bool
	Hardfp       bool
	Win          bool
	Bsd          bool
	Elf          bool
}

// PlatformInfo reports the data-model and ABI facts a script needs before
// it can safely build signatures and coerce values: pointer geometry, the
// long data model, the closed OS/arch enums, and the `abiInfo`
// boolean record (spec §3, component C8, [EXPANSION] per SPEC_FULL.md §4).
type PlatformInfo struct {
	OS           string
	Arch         string
	PlatformOS   OSFamily
	PlatformArch ArchFamily
	Abi          AbiInfo
	PointerSize  uintptr
	PointerAlign uintptr
	LongIs64     bool
	Kernel       string // uname -r / GetVersion-derived, best effort
}

// Introspect reports the running target's platform and data-model facts.
func Introspect() PlatformInfo {
	return PlatformInfo{
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		PlatformOS:   platformOS(),
		PlatformArch: platformArch(),
		Abi:          abiInfo(),
		PointerSize:  Pointer.SizeOf(),
		PointerAlign: Pointer.AlignOf(),
		LongIs64:     longIs64(),
		Kernel:       kernelRelease(),
	}
}

// platformOS maps runtime.GOOS onto spec §4.8's closed `platformOS`
// enumeration. android shares Linux's kernel and ABI family, so it maps to
// OSLinux rather than OSOther.
func platformOS() OSFamily {
	switch runtime.GOOS {
	case "windows":
		return OSWindows
	case "darwin":
		return OSOSX
	case "ios":
		return OSiOS
	case "linux", "android":
		return OSLinux
	case "freebsd", "netbsd", "openbsd", "dragonfly":
		return OSBSD
	case "solaris", "illumos":
		return OSSolaris
	default:
		return OSOther
	}
}

// platformArch maps runtime.GOARCH onto spec §4.8's closed `platformArch`
// enumeration, folding little/big-endian variants of the same family
// together (ppc64le -> ppc64, mipsle -> mips, mips64le -> mips64).
func platformArch() ArchFamily {
	switch runtime.GOARCH {
	case "amd64", "amd64p32":
		return ArchX64
	case "386":
		return ArchX86
	case "arm64":
		return ArchArm64
	case "arm":
		return ArchArm
	case "ppc64", "ppc64le":
		return ArchPpc64
	case "ppc":
		return ArchPpc
	case "mips64", "mips64le":
		return ArchMips64
	case "mips", "mipsle":
		return ArchMips
	case "riscv64":
		return ArchRiscv64
	case "s390x":
		return ArchS390x
	default:
		return ArchOther
	}
}

// hardfpArches lists the architectures whose calling convention passes
// floating-point values through a hardware FPU unconditionally. 32-bit arm
// is reported as softfp instead; any architecture in neither set reports
// no FPU at all.
var hardfpArches = map[string]bool{
	"386":      true,
	"amd64":    true,
	"arm64":    true,
	"ppc64":    true,
	"ppc64le":  true,
	"mips":     true,
	"mipsle":   true,
	"mips64":   true,
	"mips64le": true,
	"riscv64":  true,
	"s390x":    true,
}

// abiInfo derives spec §4.8's `abiInfo` boolean record.
func abiInfo() AbiInfo {
	is64 := pointerWidthBits == 64
	hardfp := hardfpArches[runtime.GOARCH]
	softfp := runtime.GOARCH == "arm"
	return AbiInfo{
		Is32Bit:      !is64,
		Is64Bit:      is64,
		LittleEndian: isLittleEndian(),
		BigEndian:    !isLittleEndian(),
		Fpu:          hardfp || softfp,
		Softfp:       softfp,
		Hardfp:       hardfp,
		Win:          runtime.GOOS == "windows",
		Bsd:          isBSDOS(runtime.GOOS),
		Elf:          isElfOS(runtime.GOOS),
	}
}

func isLittleEndian() bool {
	switch runtime.GOARCH {
	case "amd64", "386", "arm64", "arm", "riscv64", "loong64":
		return true
	case "ppc64", "s390x", "mips", "mips64":
		return false
	case "ppc64le", "mipsle", "mips64le":
		return true
	default:
		return true
	}
}

func isElfOS(goos string) bool {
	switch goos {
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "android", "illumos":
		return true
	default:
		return false
	}
}

func isBSDOS(goos string) bool {
	switch goos {
	case "freebsd", "netbsd", "openbsd", "dragonfly":
		return true
	default:
		return false
	}
}

// primitiveLayout reports size/align for every canonical type spelling this
// core recognises, for script code that wants to lay out a struct-like
// buffer manually without calling into the C compiler (spec §4.7,
// [EXPANSION]).
func primitiveLayout() map[string]struct{ Size, Align uintptr } {
	out := make(map[string]struct{ Size, Align uintptr }, len(spellings))
	for name, code := range spellings {
		out[name] = struct{ Size, Align uintptr }{code.SizeOf(), code.AlignOf()}
	}
	return out
}

// PrimitiveLayout is the exported form of primitiveLayout, keyed by every
// recognised spelling (spec §4.7, [EXPANSION] per SPEC_FULL.md §4).
func PrimitiveLayout() map[string]struct{ Size, Align uintptr } {
	return primitiveLayout()
}
