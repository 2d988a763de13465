//go:build !amd64 && !386

package luneffi

/*
#include <ffi.h>
*/
import "C"

// Every other target (arm, arm64, ppc64, mips, riscv64, s390x, ...) only
// ever sees AbiDefault or AbiSysV out of ParseAbi, since stdcall/ms_abi/
// win64 are gated to amd64/386+windows there. FFI_SYSV is libffi's generic
// "the target's own default" constant on these architectures.
func ffiSysVAbi() C.ffi_abi    { return C.FFI_SYSV }
func ffiStdcallAbi() C.ffi_abi { return C.FFI_DEFAULT_ABI }
func ffiMsCdeclAbi() C.ffi_abi { return C.FFI_DEFAULT_ABI }
func ffiWin64Abi() C.ffi_abi   { return C.FFI_DEFAULT_ABI }
