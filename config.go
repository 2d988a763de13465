package luneffi

import (
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
)

// init seeds the package's ambient configuration from the environment, the
// same place flapc's own VerboseMode/target-selection globals are seeded
// from (main.go's flag defaults layered over os.Getenv). Script hosts that
// embed luneffi programmatically can still override Verbose directly after
// import.
func init() {
	if env.Bool("LUNEFFI_VERBOSE") {
		Verbose = true
	}
}

// trace writes a diagnostic line to standard error when Verbose is set.
// Every component that narrates its own decisions (library open/close,
// closure creation and teardown) goes through this one entry point.
func trace(format string, args ...any) {
	if !Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "luneffi: "+format+"\n", args...)
}

// ConfiguredLibraryPath reports the extra search path LUNEFFI_LIBRARY_PATH
// currently holds, as ResolveLibraryPath consults it. Exposed so host code
// can report its own diagnostics without re-reading the environment.
func ConfiguredLibraryPath() string {
	return env.Str("LUNEFFI_LIBRARY_PATH")
}
