package luneffi

import "runtime"

// Abi names a calling-convention selector. The zero value (AbiDefault)
// leaves the choice to the platform's default C calling convention.
type Abi int

const (
	AbiDefault Abi = iota
	AbiSysV
	AbiStdcall
	AbiMsCdecl
	AbiWin64
)

func (a Abi) String() string {
	switch a {
	case AbiDefault:
		return "default"
	case AbiSysV:
		return "sysv"
	case AbiStdcall:
		return "stdcall"
	case AbiMsCdecl:
		return "ms_cdecl"
	case AbiWin64:
		return "win64"
	default:
		return "unknown"
	}
}

// AbiChoice is either Default or an explicit selector, per spec §3.
type AbiChoice struct {
	Explicit bool
	Abi      Abi
}

// DefaultAbi is the zero-value "use the platform default" choice.
var DefaultAbi = AbiChoice{}

// is32BitX86 / is64BitX86 / etc. name the target validity checks called
// out in spec §3, expressed the way flapc's ParseArch/ParseOS pair a parse
// function with a target-validity switch.
func is32BitX86() bool   { return runtime.GOARCH == "386" }
func isWindows() bool    { return runtime.GOOS == "windows" }
func is64BitX86() bool   { return runtime.GOARCH == "amd64" }
func is32BitTarget() bool {
	switch runtime.GOARCH {
	case "386", "arm":
		return true
	default:
		return false
	}
}

// ParseAbi resolves an ABI spelling to an AbiChoice, validating it against
// the running target per spec §3's table. An unrecognised spelling, or one
// that does not apply to the current target, is an *InvalidSignature error.
func ParseAbi(spelling string) (AbiChoice, error) {
	switch normalise(spelling) {
	case "", "default", "cdecl":
		return DefaultAbi, nil

	case "sysv":
		switch {
		case is64BitX86() && !isWindows():
			return AbiChoice{Explicit: true, Abi: AbiSysV}, nil
		case is32BitTarget(), runtime.GOARCH == "arm64", runtime.GOARCH == "ppc64":
			return AbiChoice{Explicit: true, Abi: AbiSysV}, nil
		case isWindows() && is64BitX86():
			// sysv on 64-bit Windows maps onto WIN64's own ABI selector,
			// since Windows x86_64 has no native SysV convention.
			return AbiChoice{Explicit: true, Abi: AbiWin64}, nil
		default:
			return AbiChoice{}, newErrf(ErrInvalidSignature, "ParseAbi", "sysv ABI not available on %s/%s", runtime.GOOS, runtime.GOARCH)
		}

	case "stdcall":
		if !is32BitX86() {
			return AbiChoice{}, newErrf(ErrInvalidSignature, "ParseAbi", "stdcall is only valid on 32-bit x86, not %s/%s", runtime.GOOS, runtime.GOARCH)
		}
		return AbiChoice{Explicit: true, Abi: AbiStdcall}, nil

	case "ms_abi", "ms_cdecl":
		if !isWindows() {
			return AbiChoice{}, newErrf(ErrInvalidSignature, "ParseAbi", "ms_abi/ms_cdecl is only valid on Windows, not %s/%s", runtime.GOOS, runtime.GOARCH)
		}
		if is32BitX86() {
			return AbiChoice{Explicit: true, Abi: AbiMsCdecl}, nil
		}
		return AbiChoice{Explicit: true, Abi: AbiWin64}, nil

	case "win64":
		if !isWindows() {
			return AbiChoice{}, newErrf(ErrInvalidSignature, "ParseAbi", "win64 is only valid on Windows, not %s/%s", runtime.GOOS, runtime.GOARCH)
		}
		return AbiChoice{Explicit: true, Abi: AbiWin64}, nil

	default:
		return AbiChoice{}, newErrf(ErrInvalidSignature, "ParseAbi", "unrecognised ABI spelling %q", spelling)
	}
}

// SupportedABIs returns the ABI selector spellings valid on the running
// target, so script code can validate a spelling before constructing a
// Signature. [EXPANSION] over spec.md, see SPEC_FULL.md §6.3.
func SupportedABIs() []string {
	out := []string{"default", "cdecl"}
	for _, s := range []string{"sysv", "stdcall", "ms_abi", "ms_cdecl", "win64"} {
		if _, err := ParseAbi(s); err == nil {
			out = append(out, s)
		}
	}
	return out
}
