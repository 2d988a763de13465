//go:build !windows

package luneffi

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// kernelRelease reports the running kernel's release string (the output of
// `uname -r`) via a direct Uname syscall, best effort (spec §3, component
// C8, [EXPANSION] per SPEC_FULL.md §4's Uname enrichment of platform
// introspection).
func kernelRelease() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return cstringToString(u.Release[:])
}

func cstringToString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
