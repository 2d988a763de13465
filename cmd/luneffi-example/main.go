// Command luneffi-example is a small CLI harness around the luneffi
// package: it opens a shared library, resolves a symbol, builds a
// signature from flag-supplied type spellings, and invokes it -- useful
// for poking at a library's ABI from a shell without writing a script
// host.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xyproto/luneffi"
)

const versionString = "luneffi-example 1.0.0"

func main() {
	var (
		verbose = flag.Bool("v", false, "verbose mode (show detailed diagnostics)")
		version = flag.Bool("V", false, "print version information and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println(versionString)
		return
	}
	if *verbose {
		luneffi.Verbose = true
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "platform":
		err = cmdPlatform()
	case "symbols":
		err = cmdSymbols(args[1:])
	case "resolve":
		err = cmdResolve(args[1:])
	case "call":
		err = cmdCall(args[1:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		err = fmt.Errorf("unknown subcommand %q", args[0])
	}
	if err != nil {
		log.Fatalf("luneffi-example: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `%s

usage:
  luneffi-example platform
  luneffi-example symbols <library>
  luneffi-example resolve <library-name>
  luneffi-example call <library> <symbol> <result-type> [arg-type:arg-value ...]

types are luneffi spellings: void, int, unsigned int, long, double,
pointer, etc. "call" arguments are given as type:value pairs, e.g.
"double:3.5" or "pointer:0".

flags:
`, versionString)
	flag.PrintDefaults()
}

func cmdPlatform() error {
	info := luneffi.Introspect()
	fmt.Printf("os=%s arch=%s pointer=%d bytes long64=%v kernel=%q\n",
		info.OS, info.Arch, info.PointerSize, info.LongIs64, info.Kernel)
	fmt.Printf("platformOS=%s platformArch=%s\n", info.PlatformOS, info.PlatformArch)
	fmt.Printf("abiInfo: 32bit=%v 64bit=%v le=%v be=%v fpu=%v softfp=%v hardfp=%v win=%v bsd=%v elf=%v\n",
		info.Abi.Is32Bit, info.Abi.Is64Bit, info.Abi.LittleEndian, info.Abi.BigEndian,
		info.Abi.Fpu, info.Abi.Softfp, info.Abi.Hardfp, info.Abi.Win, info.Abi.Bsd, info.Abi.Elf)
	fmt.Printf("supported ABIs: %s\n", strings.Join(luneffi.SupportedABIs(), ", "))
	return nil
}

func cmdSymbols(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: symbols <library>")
	}
	path, err := resolvePathOrName(args[0])
	if err != nil {
		return err
	}
	symbols, err := luneffi.ListExportedSymbols(path)
	if err != nil {
		return err
	}
	for _, s := range symbols {
		fmt.Println(s)
	}
	return nil
}

func cmdResolve(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: resolve <library-name>")
	}
	path, err := luneffi.ResolveLibraryPath(args[0])
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func cmdCall(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: call <library> <symbol> <result-type> [arg-type:arg-value ...]")
	}
	libArg, symbolName, resultSpelling := args[0], args[1], args[2]

	path, err := resolvePathOrName(libArg)
	if err != nil {
		return err
	}
	handle, err := luneffi.Open(path)
	if err != nil {
		return err
	}
	defer luneffi.Close(handle)

	fn, msg := luneffi.Resolve(handle, symbolName)
	if msg != "" {
		return fmt.Errorf("%s", msg)
	}

	resultType, err := luneffi.ParseCType(resultSpelling)
	if err != nil {
		return err
	}

	var argTypes []luneffi.CType
	var values []luneffi.Value
	for _, pair := range args[3:] {
		typ, val, err := parseArgPair(pair)
		if err != nil {
			return err
		}
		argTypes = append(argTypes, typ)
		values = append(values, val)
	}

	sig, err := luneffi.NewSignature(luneffi.DefaultAbi, resultType, argTypes, false, len(argTypes))
	if err != nil {
		return err
	}

	result, err := luneffi.Call(fn, sig, luneffi.Args{Values: values})
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func parseArgPair(pair string) (luneffi.CType, luneffi.Value, error) {
	parts := strings.SplitN(pair, ":", 2)
	if len(parts) != 2 {
		return luneffi.CType{}, luneffi.Value{}, fmt.Errorf("argument %q must be type:value", pair)
	}
	typ, err := luneffi.ParseCType(parts[0])
	if err != nil {
		return luneffi.CType{}, luneffi.Value{}, err
	}

	switch {
	case typ.Code.IsFloat():
		f, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return luneffi.CType{}, luneffi.Value{}, err
		}
		return typ, luneffi.Float(f), nil
	case typ.Code.IsPointerLike():
		n, err := strconv.ParseUint(parts[1], 0, 64)
		if err != nil {
			return luneffi.CType{}, luneffi.Value{}, err
		}
		return typ, luneffi.PointerValue(uintptr(n)), nil
	case typ.Code.IsInteger():
		n, err := strconv.ParseInt(parts[1], 0, 64)
		if err != nil {
			return luneffi.CType{}, luneffi.Value{}, err
		}
		return typ, luneffi.Int(n), nil
	default:
		return typ, luneffi.String(parts[1]), nil
	}
}

func printResult(v luneffi.Value) {
	switch v.Kind {
	case luneffi.KindNil:
		fmt.Println("(void)")
	case luneffi.KindInt:
		fmt.Println(v.I)
	case luneffi.KindFloat:
		fmt.Println(v.F)
	case luneffi.KindPointer:
		fmt.Printf("%#x\n", v.Ptr)
	default:
		fmt.Println(v.S)
	}
}

// resolvePathOrName treats an argument containing a path separator as a
// literal path, and anything else as a bare library name to resolve.
func resolvePathOrName(arg string) (string, error) {
	if strings.ContainsAny(arg, "/\\") {
		return arg, nil
	}
	return luneffi.ResolveLibraryPath(arg)
}
