//go:build amd64 && windows

package luneffi

/*
#include <ffi.h>
*/
import "C"

func ffiSysVAbi() C.ffi_abi    { return C.FFI_WIN64 }
func ffiStdcallAbi() C.ffi_abi { return C.FFI_DEFAULT_ABI }
func ffiMsCdeclAbi() C.ffi_abi { return C.FFI_WIN64 }
func ffiWin64Abi() C.ffi_abi   { return C.FFI_WIN64 }
