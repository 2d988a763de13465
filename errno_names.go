//go:build !windows

package luneffi

import (
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrnoName maps a raw errno value to its C macro name (e.g. 2 -> "ENOENT"),
// for scripts that want to report a native failure the way a C program's
// perror would, without hand-maintaining their own errno table. Unrecognised
// values fall back to "E"+code. [EXPANSION] over spec.md (SPEC_FULL.md
// §6.4): spec.md only exposes GetErrno/SetErrno as raw integers, consistent
// with a low-level memory surface, but a script reporting a failed native
// call needs the symbolic name to be useful to a human.
func ErrnoName(code int) string {
	if name := unix.ErrnoName(syscall.Errno(code)); name != "" {
		return name
	}
	return "E" + strconv.Itoa(code)
}
