package luneffi

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/xyproto/env/v2"
)

// libraryExtension returns the host's native shared-library suffix.
func libraryExtension() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// standardLibraryDirs lists the directories dlopen would implicitly search,
// preceded by the entries of LUNEFFI_LIBRARY_PATH (spec ambient config,
// SPEC_FULL.md §3.2), which is read from the process environment on every
// call.
func standardLibraryDirs() []string {
	var dirs []string
	if extra := env.Str("LUNEFFI_LIBRARY_PATH"); extra != "" {
		dirs = append(dirs, filepath.SplitList(extra)...)
	}
	switch runtime.GOOS {
	case "darwin":
		dirs = append(dirs, "/usr/local/lib", "/opt/homebrew/lib", "/usr/lib")
	case "windows":
		dirs = append(dirs, os.Getenv("SystemRoot")+`\System32`)
	default:
		dirs = append(dirs, "/usr/lib", "/usr/local/lib", "/lib",
			"/usr/lib/x86_64-linux-gnu", "/usr/lib/aarch64-linux-gnu")
	}
	return dirs
}

// pkgConfigLibDirs runs pkg-config --libs-only-L for name and extracts the
// -L search directories it reports, mirroring cffi.go's getPkgConfigIncludes
// but for link (not header) search paths.
func pkgConfigLibDirs(name string) []string {
	cmd := exec.Command("pkg-config", "--libs-only-L", name)
	output, err := cmd.Output()
	if err != nil {
		return nil
	}
	var dirs []string
	for _, flag := range strings.Fields(string(output)) {
		if strings.HasPrefix(flag, "-L") {
			dirs = append(dirs, strings.TrimPrefix(flag, "-L"))
		}
	}
	return dirs
}

// ResolveLibraryPath finds a loadable path for a bare library name (e.g.
// "m", "sdl3"), trying pkg-config's reported directories before falling
// back to the platform's standard search paths, and widening the bare name
// to the platform's lib<name><ext>[.<version>] naming conventions the same
// way findMainHeader widens a header name to its conventional spellings.
// [EXPANSION] over spec.md (SPEC_FULL.md §6.2): spec.md's Open Question
// about library discovery is resolved in favour of this best-effort helper,
// with Open itself still accepting any path or bare name a platform loader
// understands directly.
func ResolveLibraryPath(name string) (string, error) {
	if strings.ContainsAny(name, "/\\") || filepath.Ext(name) == libraryExtension() {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	ext := libraryExtension()
	candidates := []string{name + ext, "lib" + name + ext}

	dirs := pkgConfigLibDirs(name)
	dirs = append(dirs, standardLibraryDirs()...)

	for _, dir := range dirs {
		for _, candidate := range candidates {
			p := filepath.Join(dir, candidate)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
			if matches, _ := filepath.Glob(p + ".*"); len(matches) > 0 {
				return matches[0], nil
			}
		}
	}

	return "", newErrf(ErrLoader, "ResolveLibraryPath", "could not locate a library for %q", name)
}
