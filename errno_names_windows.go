//go:build windows

package luneffi

import "golang.org/x/sys/windows"

// ErrnoName reports the Win32 FormatMessage string for code, since Windows
// errno semantics (and GetLastError's much larger code space) differ enough
// from POSIX that a macro-name table isn't the useful answer here. See the
// POSIX variant's doc comment for the overall rationale (SPEC_FULL.md §6.4).
func ErrnoName(code int) string {
	return windows.Errno(code).Error()
}
