package luneffi

/*
#include <ffi.h>
#include <stdlib.h>
#include <string.h>

extern void luneffiGoTrampoline(void *cif, void *ret, void *args, void *userData);

// luneffi_trampoline_thunk is the fixed C-ABI function bound into every
// closure this package allocates. libffi calls it on the callee's own
// stack; it forwards to the exported Go trampoline with everything
// loosely typed as void*, sidestepping cgo's inability to export a Go
// function taking ffi_cif*/void** parameters directly.
static void luneffi_trampoline_thunk(ffi_cif *cif, void *ret, void **args, void *user_data) {
    luneffiGoTrampoline((void *)cif, ret, (void *)args, user_data);
}

static void *luneffi_closure_alloc(size_t size, void **code) {
    return ffi_closure_alloc(size, code);
}

static ffi_status luneffi_prep_closure(ffi_closure *closure, ffi_cif *cif, void *user_data, void *codeloc) {
    return ffi_prep_closure_loc(closure, cif, luneffi_trampoline_thunk, user_data, codeloc);
}

static void luneffi_closure_free(void *writable) {
    ffi_closure_free(writable);
}
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"
)

// CallbackData is the boxed context a closure's trampoline dispatches
// through: which runtime pinned the script function, the registry key
// identifying it, and the signature governing (de)marshalling (spec §3).
type CallbackData struct {
	Runtime Runtime
	Key     RegistryKey
	Sig     *Signature
}

// CallbackHandle owns a libffi closure and its boxed CallbackData. The
// script is responsible for ensuring it outlives any native code that may
// still invoke the function pointer it handed out (spec §3, §5).
type CallbackHandle struct {
	closure unsafe.Pointer // ffi_closure*, the writable mapping
	codePtr uintptr        // the executable mapping's address, handed to native code
	cif     unsafe.Pointer // ffi_cif*, C memory, must outlive the closure
	atypes  unsafe.Pointer // ffi_type**, C memory, must outlive the closure
	handle  cgo.Handle
	data    *CallbackData
	mgr     *CallbackManager
	closed  bool
}

// FuncPtr returns the native-callable entry point, suitable for handing to
// foreign code as a function pointer (light-userdata).
func (h *CallbackHandle) FuncPtr() uintptr { return h.codePtr }

// CreateCallback allocates a closure bound to sig and fn, pinning fn
// through rt's registry. Variadic signatures are rejected outright (spec
// §4.6, component C7).
func CreateCallback(rt Runtime, sig *Signature, fn Value) (*CallbackHandle, error) {
	if sig.Variadic {
		return nil, newErr(ErrVariadicCallback, "CreateCallback", nil)
	}

	key, err := rt.Pin(fn)
	if err != nil {
		return nil, newErr(ErrInvalidSignature, "CreateCallback", err)
	}

	n := len(sig.Args)
	atypes, err := cMallocBuf(uintptr(n) * ptrSize)
	if err != nil {
		rt.Unpin(key)
		return nil, err
	}
	for i, a := range sig.Args {
		*(**C.ffi_type)(unsafe.Pointer(uintptr(atypes) + uintptr(i)*ptrSize)) = a.Code.toFFIType()
	}

	cif, err := cMallocBuf(unsafe.Sizeof(C.ffi_cif{}))
	if err != nil {
		C.free(atypes)
		rt.Unpin(key)
		return nil, err
	}

	rtype := sig.Result.Code.toFFIType()
	status := C.ffi_prep_cif((*C.ffi_cif)(cif), sig.Abi.ffiAbi(), C.uint(n), rtype, (**C.ffi_type)(atypes))
	if status != C.FFI_OK {
		C.free(cif)
		C.free(atypes)
		rt.Unpin(key)
		return nil, newErrf(ErrInvalidSignature, "CreateCallback", "ffi_prep_cif failed with status %d", int(status))
	}

	var codeLoc unsafe.Pointer
	closure := C.luneffi_closure_alloc(C.size_t(unsafe.Sizeof(C.ffi_closure{})), (*unsafe.Pointer)(unsafe.Pointer(&codeLoc)))
	if closure == nil {
		C.free(cif)
		C.free(atypes)
		rt.Unpin(key)
		return nil, newErrf(ErrInvalidSignature, "CreateCallback", "ffi_closure_alloc failed")
	}

	data := &CallbackData{Runtime: rt, Key: key, Sig: sig}
	h := cgo.NewHandle(data)

	status = C.luneffi_prep_closure((*C.ffi_closure)(closure), (*C.ffi_cif)(cif), unsafe.Pointer(uintptr(h)), codeLoc)
	if status != C.FFI_OK {
		h.Delete()
		C.luneffi_closure_free(closure)
		C.free(cif)
		C.free(atypes)
		rt.Unpin(key)
		return nil, newErrf(ErrInvalidSignature, "CreateCallback", "ffi_prep_closure_loc failed with status %d", int(status))
	}

	cb := &CallbackHandle{
		closure: closure,
		codePtr: uintptr(codeLoc),
		cif:     cif,
		atypes:  atypes,
		handle:  h,
		data:    data,
		mgr:     defaultCallbackManager,
	}
	cb.mgr.track(cb.codePtr, cb)
	trace("created callback closure at %#x for registry key %d", cb.codePtr, uint64(key))
	return cb, nil
}

// Close tears the callback down. Per spec §4.6's destruction ordering, the
// closure is disposed before the registry key is released, and the
// registry key release must not re-enter the runtime for GC synchronously
// from inside trampoline execution -- both are the Runtime implementation's
// responsibility once Unpin is called here.
func (h *CallbackHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.mgr.untrack(h.codePtr)
	trace("closing callback closure at %#x", h.codePtr)

	C.luneffi_closure_free(h.closure)
	h.handle.Delete()
	C.free(h.cif)
	C.free(h.atypes)
	h.data.Runtime.Unpin(h.data.Key)
	return nil
}

//export luneffiGoTrampoline
func luneffiGoTrampoline(cifPtr, ret, args, userData unsafe.Pointer) {
	handle := cgo.Handle(uintptr(userData))
	data, ok := handle.Value().(*CallbackData)
	if !ok || data == nil {
		return
	}

	resultWidth := data.Sig.ResultWidth()
	zeroResult := func() {
		if ret != nil {
			for i := uintptr(0); i < resultWidth; i++ {
				*(*byte)(unsafe.Pointer(uintptr(ret) + i)) = 0
			}
		}
	}
	zeroResult()

	defer func() {
		if r := recover(); r != nil {
			zeroResult()
			data.Runtime.Warn(fmt.Sprintf("luneffi: callback panicked: %v", r))
		}
	}()

	sig := data.Sig
	values := make([]Value, len(sig.Args))
	for i, a := range sig.Args {
		if a.Code == Void {
			zeroResult()
			data.Runtime.Warn("luneffi: callback signature declares a void argument")
			return
		}
		argPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(args) + uintptr(i)*ptrSize))
		v, err := LoadScalar(uintptr(argPtr), a.Code)
		if err != nil {
			zeroResult()
			data.Runtime.Warn(fmt.Sprintf("luneffi: callback argument %d: %v", i, err))
			return
		}
		values[i] = v
	}

	results, err := data.Runtime.Invoke(data.Key, values)
	if err != nil {
		zeroResult()
		data.Runtime.Warn(fmt.Sprintf("luneffi: callback invocation failed: %v", err))
		return
	}

	if sig.Result.Code == Void {
		return
	}

	var rv Value
	if len(results) > 0 {
		rv = results[0]
	} else {
		rv = Nil()
	}

	if sig.Result.Code == Pointer {
		if err := storeCallbackPointerResult(ret, rv); err != nil {
			zeroResult()
			data.Runtime.Warn(fmt.Sprintf("luneffi: callback result: %v", err))
		}
		return
	}

	if err := StoreScalar(uintptr(ret), sig.Result.Code, rv); err != nil {
		zeroResult()
		data.Runtime.Warn(fmt.Sprintf("luneffi: callback result: %v", err))
	}
}

// storeCallbackPointerResult implements spec §4.6 step 4's pointer-result
// rule: nil/false are accepted as null, boolean true is rejected outright.
func storeCallbackPointerResult(ret unsafe.Pointer, v Value) error {
	if v.Kind == KindBool {
		if v.B {
			return newErrf(ErrTypeMismatch, "storeCallbackPointerResult", "boolean true cannot be a pointer result")
		}
		*(*uintptr)(ret) = 0
		return nil
	}
	p, err := CoercePointer(v, nil)
	if err != nil {
		return err
	}
	*(*uintptr)(ret) = p
	return nil
}
