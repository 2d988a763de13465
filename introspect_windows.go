//go:build windows

package luneffi

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// kernelRelease reports the running Windows build as MajorVersion.
// MinorVersion.BuildNumber via RtlGetVersion, best effort (spec §3,
// component C8, [EXPANSION] per SPEC_FULL.md §4's GetVersion/RtlGetVersion
// enrichment of platform introspection).
func kernelRelease() string {
	v := windows.RtlGetVersion()
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
