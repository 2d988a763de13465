package luneffi

/*
#cgo pkgconfig: libffi
#cgo !windows LDFLAGS: -lffi
#include <ffi.h>
*/
import "C"

// toFFIType maps a TypeCode to libffi's descriptor for it, per spec §4.1.
// intptr/uintptr resolve to the 32- or 64-bit integer descriptor based on
// the host pointer width; pointer maps to libffi's generic pointer type.
func (c TypeCode) toFFIType() *C.ffi_type {
	switch c {
	case Void:
		return &C.ffi_type_void
	case Int8:
		return &C.ffi_type_sint8
	case Uint8:
		return &C.ffi_type_uint8
	case Int16:
		return &C.ffi_type_sint16
	case Uint16:
		return &C.ffi_type_uint16
	case Int32:
		return &C.ffi_type_sint32
	case Uint32:
		return &C.ffi_type_uint32
	case Int64:
		return &C.ffi_type_sint64
	case Uint64:
		return &C.ffi_type_uint64
	case Float32:
		return &C.ffi_type_float
	case Float64:
		return &C.ffi_type_double
	case Pointer:
		return &C.ffi_type_pointer
	case Intptr:
		if pointerWidthBits == 64 {
			return &C.ffi_type_sint64
		}
		return &C.ffi_type_sint32
	case Uintptr:
		if pointerWidthBits == 64 {
			return &C.ffi_type_uint64
		}
		return &C.ffi_type_uint32
	default:
		return &C.ffi_type_void
	}
}

// ffiAbi maps an AbiChoice to libffi's ffi_abi enum. Unexplicit choices map
// to FFI_DEFAULT_ABI; explicit ones map to the closest libffi constant
// libffi exposes for the running target -- libffi itself will reject a
// combination that genuinely cannot be satisfied.
func (a AbiChoice) ffiAbi() C.ffi_abi {
	if !a.Explicit {
		return C.FFI_DEFAULT_ABI
	}
	switch a.Abi {
	case AbiSysV:
		return ffiSysVAbi()
	case AbiStdcall:
		return ffiStdcallAbi()
	case AbiMsCdecl:
		return ffiMsCdeclAbi()
	case AbiWin64:
		return ffiWin64Abi()
	default:
		return C.FFI_DEFAULT_ABI
	}
}
