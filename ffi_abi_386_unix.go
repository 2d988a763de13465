//go:build 386 && !windows

package luneffi

/*
#include <ffi.h>
*/
import "C"

func ffiSysVAbi() C.ffi_abi    { return C.FFI_SYSV }
func ffiStdcallAbi() C.ffi_abi { return C.FFI_STDCALL }
func ffiMsCdeclAbi() C.ffi_abi { return C.FFI_DEFAULT_ABI }
func ffiWin64Abi() C.ffi_abi   { return C.FFI_DEFAULT_ABI }
