package luneffi

import (
	"runtime"
	"testing"
)

// Confidence that this function is working: 95%
func TestParseAbiDefaultSpellings(t *testing.T) {
	for _, s := range []string{"", "default", "cdecl"} {
		choice, err := ParseAbi(s)
		if err != nil {
			t.Fatalf("ParseAbi(%q) unexpectedly failed: %v", s, err)
		}
		if choice != DefaultAbi {
			t.Errorf("ParseAbi(%q) = %+v, want DefaultAbi", s, choice)
		}
	}
}

// Confidence that this function is working: 90%
// TestParseAbiStdcallTargetGating checks stdcall is only accepted on 32-bit
// x86, matching spec §3's target-validity table.
func TestParseAbiStdcallTargetGating(t *testing.T) {
	_, err := ParseAbi("stdcall")
	if runtime.GOARCH == "386" {
		if err != nil {
			t.Errorf("stdcall should be valid on 386, got error: %v", err)
		}
	} else if err == nil {
		t.Errorf("stdcall should be rejected on %s, got no error", runtime.GOARCH)
	}
}

// Confidence that this function is working: 90%
func TestParseAbiWin64TargetGating(t *testing.T) {
	_, err := ParseAbi("win64")
	if runtime.GOOS == "windows" {
		if err != nil {
			t.Errorf("win64 should be valid on windows, got error: %v", err)
		}
	} else if err == nil {
		t.Error("win64 should be rejected off windows, got no error")
	}
}

// Confidence that this function is working: 90%
func TestParseAbiUnrecognisedSpelling(t *testing.T) {
	_, err := ParseAbi("bogus_abi")
	if err == nil {
		t.Fatal("expected an error for an unrecognised ABI spelling")
	}
	if !Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

// Confidence that this function is working: 90%
// TestSupportedABIsAlwaysIncludesDefault ensures the self-description helper
// never omits the one ABI choice valid on every target.
func TestSupportedABIsAlwaysIncludesDefault(t *testing.T) {
	found := false
	for _, s := range SupportedABIs() {
		if s == "default" {
			found = true
		}
		if _, err := ParseAbi(s); err != nil {
			t.Errorf("SupportedABIs() reported %q, but ParseAbi rejected it: %v", s, err)
		}
	}
	if !found {
		t.Error(`SupportedABIs() should always include "default"`)
	}
}
