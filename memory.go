package luneffi

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import "unsafe"

// Alloc returns a zero-initialised block of size bytes via the host C
// allocator's calloc (spec §4.7). A non-zero size that fails to allocate is
// an error; Alloc(0) allocates a single zeroed byte, so it still returns a
// valid non-null pointer.
func Alloc(size uintptr) (uintptr, error) {
	n := size
	if n == 0 {
		n = 1
	}
	p := C.calloc(C.size_t(n), 1)
	if p == nil {
		return 0, newErrf(ErrRange, "Alloc", "calloc(%d) returned null", size)
	}
	return uintptr(p), nil
}

// Free releases a block obtained from Alloc. A null pointer is a no-op.
func Free(p uintptr) {
	if p == 0 {
		return
	}
	C.free(unsafe.Pointer(p))
}

// StoreScalar coerces value per the typed rules (§4.2) and writes it at ptr
// at natural alignment. Unaligned writes are the caller's bug, per spec
// §4.7.
func StoreScalar(ptr uintptr, code TypeCode, value Value) error {
	if ptr == 0 {
		return newErr(ErrNullPointerDeref, "StoreScalar", nil)
	}
	switch {
	case code == Pointer:
		p, err := CoercePointer(value, nil)
		if err != nil {
			return err
		}
		*(*uintptr)(unsafe.Pointer(ptr)) = p
		return nil

	case code.IsFloat():
		f, err := CoerceFloat(value)
		if err != nil {
			return err
		}
		if code == Float32 {
			*(*float32)(unsafe.Pointer(ptr)) = float32(f)
		} else {
			*(*float64)(unsafe.Pointer(ptr)) = f
		}
		return nil

	case code.IsInteger():
		bits := uint(code.SizeOf()) * 8
		if code.IsSigned() {
			n, err := CoerceSigned(value, bits)
			if err != nil {
				return err
			}
			storeSignedAt(ptr, code, n)
			return nil
		}
		u, err := CoerceUnsigned(value, bits)
		if err != nil {
			return err
		}
		storeUnsignedAt(ptr, code, u)
		return nil

	default:
		return newErrf(ErrUnsupportedType, "StoreScalar", "cannot store a %s", code)
	}
}

func storeSignedAt(ptr uintptr, code TypeCode, n int64) {
	switch code {
	case Int8:
		*(*int8)(unsafe.Pointer(ptr)) = int8(n)
	case Int16:
		*(*int16)(unsafe.Pointer(ptr)) = int16(n)
	case Int32:
		*(*int32)(unsafe.Pointer(ptr)) = int32(n)
	case Int64, Intptr:
		*(*int64)(unsafe.Pointer(ptr)) = n
	}
}

func storeUnsignedAt(ptr uintptr, code TypeCode, u uint64) {
	switch code {
	case Uint8:
		*(*uint8)(unsafe.Pointer(ptr)) = uint8(u)
	case Uint16:
		*(*uint16)(unsafe.Pointer(ptr)) = uint16(u)
	case Uint32:
		*(*uint32)(unsafe.Pointer(ptr)) = uint32(u)
	case Uint64, Uintptr:
		*(*uint64)(unsafe.Pointer(ptr)) = u
	}
}

// LoadScalar reads the value at ptr at natural alignment and converts it to
// a script Value using the same widening rules the call engine applies to
// native results (§4.5).
func LoadScalar(ptr uintptr, code TypeCode) (Value, error) {
	if ptr == 0 {
		return Value{}, newErr(ErrNullPointerDeref, "LoadScalar", nil)
	}
	switch {
	case code == Pointer:
		p := *(*uintptr)(unsafe.Pointer(ptr))
		if p == 0 {
			return Nil(), nil
		}
		return PointerValue(p), nil

	case code == Float32:
		return Float(float64(*(*float32)(unsafe.Pointer(ptr)))), nil
	case code == Float64:
		return Float(*(*float64)(unsafe.Pointer(ptr))), nil

	case code.IsSigned():
		return Int(loadSignedAt(ptr, code)), nil

	case code.IsInteger(): // unsigned
		u := loadUnsignedAt(ptr, code)
		return unsignedResultValue(u, code), nil

	default:
		return Value{}, newErrf(ErrUnsupportedType, "LoadScalar", "cannot load a %s", code)
	}
}

func loadSignedAt(ptr uintptr, code TypeCode) int64 {
	switch code {
	case Int8:
		return int64(*(*int8)(unsafe.Pointer(ptr)))
	case Int16:
		return int64(*(*int16)(unsafe.Pointer(ptr)))
	case Int32:
		return int64(*(*int32)(unsafe.Pointer(ptr)))
	default: // Int64, Intptr
		return *(*int64)(unsafe.Pointer(ptr))
	}
}

func loadUnsignedAt(ptr uintptr, code TypeCode) uint64 {
	switch code {
	case Uint8:
		return uint64(*(*uint8)(unsafe.Pointer(ptr)))
	case Uint16:
		return uint64(*(*uint16)(unsafe.Pointer(ptr)))
	case Uint32:
		return uint64(*(*uint32)(unsafe.Pointer(ptr)))
	default: // Uint64, Uintptr
		return *(*uint64)(unsafe.Pointer(ptr))
	}
}

// unsignedResultValue implements the 64-bit-unsigned result rule shared by
// LoadScalar and the call engine's result marshalling (§4.5): within the
// signed positive range, return an integer; above it, fall back to a
// (lossy, for magnitudes above 2^53) float.
func unsignedResultValue(u uint64, code TypeCode) Value {
	if code != Uint64 && code != Uintptr {
		return Int(int64(u))
	}
	if u <= (1<<63)-1 {
		return Int(int64(u))
	}
	return Float(float64(u))
}

// ReadString reads len bytes from ptr when len is non-nil, or treats ptr as
// NUL-terminated and reads until the first NUL when it is nil.
func ReadString(ptr uintptr, length *int) (string, error) {
	if ptr == 0 {
		return "", newErr(ErrNullPointerDeref, "ReadString", nil)
	}
	if length != nil {
		return C.GoStringN((*C.char)(unsafe.Pointer(ptr)), C.int(*length)), nil
	}
	return C.GoString((*C.char)(unsafe.Pointer(ptr))), nil
}

// WriteBytes copies bytes to dest, optionally appending a single 0 byte
// immediately after.
func WriteBytes(dest uintptr, bytes []byte, appendNull bool) error {
	if dest == 0 {
		return newErr(ErrNullPointerDeref, "WriteBytes", nil)
	}
	if len(bytes) > 0 {
		C.memcpy(unsafe.Pointer(dest), unsafe.Pointer(&bytes[0]), C.size_t(len(bytes)))
	}
	if appendNull {
		*(*byte)(unsafe.Pointer(dest + uintptr(len(bytes)))) = 0
	}
	return nil
}
