package luneffi

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// ListExportedSymbols lists the defined, exported function symbols in a
// shared library on disk, by shelling out to nm -D the same way a linker
// would discover them. This is [EXPANSION] over spec.md (SPEC_FULL.md §6.1):
// it lets script code enumerate what it can Resolve before attempting a
// lookup, rather than discovering missing symbols one Open/Resolve pair at
// a time. The result is sorted and deduplicated, since nm can list the same
// weak symbol more than once and callers want a stable, scannable list.
func ListExportedSymbols(path string) ([]string, error) {
	cmd := exec.Command("nm", "-D", "--defined-only", path)
	output, err := cmd.Output()
	if err != nil {
		return nil, newErrf(ErrLoader, "ListExportedSymbols", "nm failed for %s: %v", path, err)
	}

	seen := make(map[string]struct{})
	var symbols []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// nm -D output: "<address> <type> <name>", e.g. "0000000000001149 T sum7"
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		symbolType, symbolName := parts[1], parts[2]
		// Newer nm appends the symbol version ("pow@@GLIBC_2.29"); keep only
		// the bare name, which is what Resolve looks up.
		if at := strings.IndexByte(symbolName, '@'); at > 0 {
			symbolName = symbolName[:at]
		}
		// T/W: defined in the text section, plain or weak. t/w are local
		// text symbols, deliberately excluded: they aren't resolvable from
		// outside the library.
		if symbolType != "T" && symbolType != "W" {
			continue
		}
		if _, dup := seen[symbolName]; dup {
			continue
		}
		seen[symbolName] = struct{}{}
		symbols = append(symbols, symbolName)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// symbolTypeDescription explains an nm one-letter symbol type code. Nothing
// in this module calls it yet.
func symbolTypeDescription(t string) string {
	switch t {
	case "T":
		return "text (code), global"
	case "W":
		return "text (code), weak"
	case "t":
		return "text (code), local"
	case "D":
		return "data, global"
	case "B":
		return "bss, global"
	default:
		return fmt.Sprintf("symbol type %q", t)
	}
}
