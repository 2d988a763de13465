package luneffi

import (
	"runtime"
	"testing"
)

// Confidence that this function is working: 90%
func TestIntrospectMatchesRuntimePackage(t *testing.T) {
	info := Introspect()
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.PointerSize != Pointer.SizeOf() {
		t.Errorf("PointerSize = %d, want %d", info.PointerSize, Pointer.SizeOf())
	}
}

// Confidence that this function is working: 85%
// TestPlatformOSIsClosedEnum checks that platformOS() always returns one of
// spec §4.8's seven named values, never a bare runtime.GOOS passthrough.
func TestPlatformOSIsClosedEnum(t *testing.T) {
	switch got := platformOS(); got {
	case OSWindows, OSOSX, OSiOS, OSLinux, OSBSD, OSSolaris, OSOther:
	default:
		t.Errorf("platformOS() = %q, not one of the closed enum values", got)
	}
	if runtime.GOOS == "windows" && platformOS() != OSWindows {
		t.Errorf("platformOS() on windows = %q, want Windows", platformOS())
	}
	if runtime.GOOS == "linux" && platformOS() != OSLinux {
		t.Errorf("platformOS() on linux = %q, want Linux", platformOS())
	}
	if runtime.GOOS == "darwin" && platformOS() != OSOSX {
		t.Errorf("platformOS() on darwin = %q, want OSX", platformOS())
	}
}

// Confidence that this function is working: 85%
func TestPlatformArchIsClosedEnum(t *testing.T) {
	switch got := platformArch(); got {
	case ArchX64, ArchX86, ArchArm64, ArchArm, ArchPpc64, ArchPpc, ArchMips64, ArchMips, ArchRiscv64, ArchS390x, ArchOther:
	default:
		t.Errorf("platformArch() = %q, not one of the closed enum values", got)
	}
	if runtime.GOARCH == "amd64" && platformArch() != ArchX64 {
		t.Errorf("platformArch() on amd64 = %q, want x64", platformArch())
	}
	if runtime.GOARCH == "arm64" && platformArch() != ArchArm64 {
		t.Errorf("platformArch() on arm64 = %q, want arm64", platformArch())
	}
}

// Confidence that this function is working: 85%
// TestAbiInfoAgreesWithPointerWidth cross-checks abiInfo()'s 32bit/64bit/
// le/be/elf/win flags against the facts this package derives independently
// elsewhere (pointer width, GOOS).
func TestAbiInfoAgreesWithPointerWidth(t *testing.T) {
	abi := abiInfo()
	if abi.Is64Bit == abi.Is32Bit {
		t.Errorf("abiInfo() 32bit/64bit must be mutually exclusive, got %+v", abi)
	}
	if abi.Is64Bit != (Pointer.SizeOf() == 8) {
		t.Errorf("abiInfo().Is64Bit = %v, disagrees with pointer size %d", abi.Is64Bit, Pointer.SizeOf())
	}
	if abi.LittleEndian == abi.BigEndian {
		t.Errorf("abiInfo() le/be must be mutually exclusive, got %+v", abi)
	}
	if abi.Win != (runtime.GOOS == "windows") {
		t.Errorf("abiInfo().Win = %v, disagrees with GOOS %q", abi.Win, runtime.GOOS)
	}
	if abi.Elf != isElfOS(runtime.GOOS) {
		t.Errorf("abiInfo().Elf = %v, disagrees with isElfOS(%q)", abi.Elf, runtime.GOOS)
	}
	if runtime.GOARCH != "arm" && !abi.Fpu {
		t.Errorf("abiInfo().Fpu should be true on non-arm architectures, got %+v", abi)
	}
}

// Confidence that this function is working: 85%
func TestPrimitiveLayoutCoversEveryTypeCode(t *testing.T) {
	layout := PrimitiveLayout()
	for _, spelling := range []string{
		"void", "int8", "uint8", "int16", "uint16", "int", "unsigned int",
		"int64", "uint64", "intptr_t", "uintptr_t", "float", "double", "pointer", "char",
	} {
		entry, ok := layout[spelling]
		if !ok {
			t.Fatalf("PrimitiveLayout() missing entry for %q", spelling)
		}
		ct, err := ParseCType(spelling)
		if err != nil {
			t.Fatalf("ParseCType(%q) failed: %v", spelling, err)
		}
		if entry.Size != ct.Code.SizeOf() || entry.Align != ct.Code.AlignOf() {
			t.Errorf("PrimitiveLayout()[%q] = %+v, want size=%d align=%d",
				spelling, entry, ct.Code.SizeOf(), ct.Code.AlignOf())
		}
	}
}
