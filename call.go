package luneffi

/*
#include <ffi.h>
#include <stdlib.h>
#include <string.h>

// luneffi_ffi_call wraps ffi_call's C-function-pointer parameter, which
// cgo cannot express directly, the same way the loader files wrap awkward
// platform calls behind a tiny named shim.
static void luneffi_ffi_call(ffi_cif *cif, void *fn, void *rvalue, void **avalues) {
    ffi_call(cif, (void (*)(void))fn, rvalue, avalues);
}
*/
import "C"

import "unsafe"

const ptrSize = unsafe.Sizeof(unsafe.Pointer(nil))

// Args is the args table the call engine consumes: positional values, plus
// an optional explicit count overriding len(Values) (spec §6).
type Args struct {
	Values []Value
	N      *int
}

func (a Args) count() int {
	if a.N != nil {
		return *a.N
	}
	return len(a.Values)
}

func (a Args) at(i int) Value {
	if i < len(a.Values) {
		return a.Values[i]
	}
	return Nil()
}

// cMallocBuf allocates n bytes of C memory, panicking is never done here --
// callers receive an error instead, matching Alloc's own contract.
func cMallocBuf(n uintptr) (unsafe.Pointer, error) {
	if n == 0 {
		n = 1
	}
	p := C.malloc(C.size_t(n))
	if p == nil {
		return nil, newErrf(ErrRange, "call", "failed to allocate %d bytes of scratch", n)
	}
	return p, nil
}

// callAnchors owns NUL-terminated C copies of outgoing string arguments for
// the duration of one call (spec §4.2, §9).
type callAnchors struct {
	bufs []unsafe.Pointer
}

func (a *callAnchors) AnchorCString(s string) (uintptr, error) {
	buf, err := cMallocBuf(uintptr(len(s) + 1))
	if err != nil {
		return 0, err
	}
	if len(s) > 0 {
		C.memcpy(buf, unsafe.Pointer(unsafe.StringData(s)), C.size_t(len(s)))
	}
	*(*byte)(unsafe.Pointer(uintptr(buf) + uintptr(len(s)))) = 0
	a.bufs = append(a.bufs, buf)
	return uintptr(buf), nil
}

func (a *callAnchors) free() {
	for _, b := range a.bufs {
		C.free(b)
	}
	a.bufs = nil
}

// storeArgScalar is StoreScalar's sibling for the call engine: identical
// typed-marshalling rules, but pointer coercion is allowed to anchor an
// outgoing string for the lifetime of the call.
func storeArgScalar(ptr uintptr, code TypeCode, value Value, anchor StringAnchorer) error {
	switch {
	case code == Pointer:
		p, err := CoercePointer(value, anchor)
		if err != nil {
			return err
		}
		*(*uintptr)(unsafe.Pointer(ptr)) = p
		return nil
	default:
		return StoreScalar(ptr, code, value)
	}
}

// promoteVariadic implements spec §4.5's default-argument-promotion rules
// for a variadic-tail argument with no declared type hint. It returns the
// effective CType to drive FFI typing and the Value to marshal against it.
func promoteVariadic(v Value) (CType, Value, error) {
	switch v.Kind {
	case KindNil:
		return CType{Code: Pointer}, Nil(), nil
	case KindPointer:
		return CType{Code: Pointer}, v, nil
	case KindTable:
		if v.Data == nil || !v.Data.Marker {
			return CType{}, Value{}, newErrf(ErrTypeMismatch, "promoteVariadic", "table value is not cdata")
		}
		if v.Data.CType != nil {
			loaded, err := LoadScalar(v.Data.Ptr, v.Data.CType.Code)
			if err != nil {
				return CType{}, Value{}, err
			}
			return promoteScalarType(v.Data.CType.Code, loaded), nil
		}
		return CType{Code: Pointer}, PointerValue(v.Data.Ptr), nil
	case KindString:
		return CType{Code: Pointer}, v, nil
	case KindBool:
		return CType{Code: Int32}, Int(map[bool]int64{true: 1, false: 0}[v.B]), nil
	case KindInt:
		if pointerWidthBits == 64 {
			return CType{Code: Int64}, v, nil
		}
		if _, err := CoerceSigned(v, 32); err != nil {
			return CType{}, Value{}, err
		}
		return CType{Code: Int32}, v, nil
	case KindFloat:
		return CType{Code: Float64}, v, nil
	default:
		return CType{}, Value{}, newErrf(ErrTypeMismatch, "promoteVariadic", "cannot promote %v through the variadic tail", v.Kind)
	}
}

// promoteScalarType widens a loaded cdata scalar per C's default argument
// promotion: sub-int widths widen to int32, f32 widens to f64; int64/
// uint64/f64/pointer pass through unchanged.
func promoteScalarType(code TypeCode, loaded Value) (CType, Value) {
	switch code {
	case Int8, Int16, Int32:
		return CType{Code: Int32}, Int(loaded.I)
	case Uint8, Uint16, Uint32:
		return CType{Code: Int32}, Int(loaded.I)
	case Float32:
		return CType{Code: Float64}, loaded
	case Pointer:
		return CType{Code: Pointer}, loaded
	default:
		return CType{Code: code}, loaded
	}
}

// Call marshals args against sig, builds a Cif, invokes fn through it, and
// unmarshals the result. This is the call engine's single public operation
// (spec §4.5, component C6).
func Call(fn uintptr, sig *Signature, args Args) (Value, error) {
	if fn == 0 {
		return Value{}, newErr(ErrNullPointerDeref, "Call", nil)
	}

	n := args.count()
	if !sig.Variadic {
		if n != len(sig.Args) {
			return Value{}, newErrf(ErrInvalidSignature, "Call", "expected %d arguments, got %d", len(sig.Args), n)
		}
	} else if n < sig.FixedCount {
		return Value{}, newErrf(ErrInvalidSignature, "Call", "expected at least %d arguments, got %d", sig.FixedCount, n)
	}

	anchors := &callAnchors{}
	defer anchors.free()

	argStorage, err := cMallocBuf(uintptr(n) * 8)
	if err != nil {
		return Value{}, err
	}
	defer C.free(argStorage)

	avalues, err := cMallocBuf(uintptr(n) * ptrSize)
	if err != nil {
		return Value{}, err
	}
	defer C.free(avalues)

	atypes, err := cMallocBuf(uintptr(n) * ptrSize)
	if err != nil {
		return Value{}, err
	}
	defer C.free(atypes)

	for i := 0; i < n; i++ {
		slot := uintptr(argStorage) + uintptr(i)*8
		*(*unsafe.Pointer)(unsafe.Pointer(uintptr(avalues) + uintptr(i)*ptrSize)) = unsafe.Pointer(slot)

		v := args.at(i)
		var ct CType
		if declared, ok := sig.ArgTypeAt(i); ok {
			ct = declared
			if err := storeArgScalar(slot, ct.Code, v, anchors); err != nil {
				return Value{}, newErr(ErrTypeMismatch, "Call", err)
			}
		} else {
			var effective Value
			ct, effective, err = promoteVariadic(v)
			if err != nil {
				return Value{}, err
			}
			if err := storeArgScalar(slot, ct.Code, effective, anchors); err != nil {
				return Value{}, newErr(ErrTypeMismatch, "Call", err)
			}
		}
		*(**C.ffi_type)(unsafe.Pointer(uintptr(atypes) + uintptr(i)*ptrSize)) = ct.Code.toFFIType()
	}

	var cif C.ffi_cif
	rtype := sig.Result.Code.toFFIType()
	var status C.ffi_status
	if sig.Variadic {
		status = C.ffi_prep_cif_var(&cif, sig.Abi.ffiAbi(), C.uint(sig.FixedCount), C.uint(n), rtype, (**C.ffi_type)(atypes))
	} else {
		status = C.ffi_prep_cif(&cif, sig.Abi.ffiAbi(), C.uint(n), rtype, (**C.ffi_type)(atypes))
	}
	if status != C.FFI_OK {
		return Value{}, newErrf(ErrInvalidSignature, "Call", "ffi_prep_cif failed with status %d", int(status))
	}

	resultWidth := sig.ResultWidth()
	resultBuf, err := cMallocBuf(resultWidth)
	if err != nil {
		return Value{}, err
	}
	defer C.free(resultBuf)

	C.luneffi_ffi_call(&cif, unsafe.Pointer(fn), resultBuf, (*unsafe.Pointer)(avalues))

	return resultToValue(resultBuf, sig.Result.Code)
}

// resultToValue converts the raw result buffer written by ffi_call into a
// script Value, per spec §4.5's result-marshalling rules.
func resultToValue(buf unsafe.Pointer, code TypeCode) (Value, error) {
	if code == Void {
		return Nil(), nil
	}
	return LoadScalar(uintptr(buf), code)
}
