//go:build !windows

package luneffi

import "testing"

// Confidence that this function is working: 80%
// TestResolveLibraryPathFindsLibm resolves the C math library, which is
// present (directly or via libc) on every POSIX system this runs on.
func TestResolveLibraryPathFindsLibm(t *testing.T) {
	path, err := ResolveLibraryPath("m")
	if err != nil {
		t.Skipf("libm not found in standard search paths: %v", err)
	}
	if path == "" {
		t.Error("ResolveLibraryPath(\"m\") returned an empty path with no error")
	}
}

// Confidence that this function is working: 85%
func TestResolveLibraryPathRejectsUnknownName(t *testing.T) {
	_, err := ResolveLibraryPath("definitely_not_a_real_library_xyz123")
	if err == nil {
		t.Error("expected an error for a library that cannot be located")
	}
	if !Is(err, ErrLoader) {
		t.Errorf("expected ErrLoader, got %v", err)
	}
}

// Confidence that this function is working: 85%
func TestResolveLibraryPathPassesThroughExistingPath(t *testing.T) {
	path, err := ResolveLibraryPath("/bin/sh")
	if err != nil {
		t.Skipf("/bin/sh not present on this system: %v", err)
	}
	if path != "/bin/sh" {
		t.Errorf("ResolveLibraryPath(existing path) = %q, want the path unchanged", path)
	}
}
