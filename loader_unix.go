//go:build !windows

package luneffi

/*
#cgo LDFLAGS: -ldl

#include <dlfcn.h>
#include <errno.h>
#include <stdlib.h>

// luneffi_dlopen/dlsym/dlclose/dlerror are the tiny POSIX loader shim named
// in spec §6. They exist as a distinct C surface (rather than calling
// dlopen et al. directly from Go) so the Windows build below can present
// the identical four-symbol contract over LoadLibraryW/GetProcAddress/
// FreeLibrary/FormatMessage.
static void *luneffi_dlopen(const char *path) {
    return dlopen(path, RTLD_NOW | RTLD_GLOBAL);
}

static void *luneffi_dlsym(void *handle, const char *name) {
    return dlsym(handle, name);
}

static int luneffi_dlclose(void *handle) {
    return dlclose(handle);
}

static const char *luneffi_dlerror(void) {
    return dlerror();
}

static int luneffi_get_errno(void) {
    return errno;
}

static void luneffi_set_errno(int v) {
    errno = v;
}
*/
import "C"

import "unsafe"

// Handle is an opaque library handle returned by Open. Ownership is with
// the caller; this package never retains it across calls (spec §3).
type Handle struct {
	ptr unsafe.Pointer
}

// Open loads a shared library. An empty path means "the current process
// image" (spec §4.4).
func Open(path string) (Handle, error) {
	var cpath *C.char
	if path != "" {
		cpath = C.CString(path)
		defer C.free(unsafe.Pointer(cpath))
	}
	lastError() // clear any stale pending error before this op

	h := C.luneffi_dlopen(cpath)
	if h == nil {
		msg := lastError()
		if msg == "" {
			msg = "dlopen failed"
		}
		return Handle{}, newErrf(ErrLoader, "Open", "%s", msg)
	}
	trace("opened library %q", path)
	return Handle{ptr: h}, nil
}

// Resolve looks up a symbol in an open library. Per spec §7, this is the
// one entry point that does not raise: a failing lookup returns a message
// instead, so scripts can probe.
func Resolve(h Handle, name string) (uintptr, string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	lastError()

	sym := C.luneffi_dlsym(h.ptr, cname)
	if sym == nil {
		msg := lastError()
		if msg == "" {
			msg = "symbol not found: " + name
		}
		return 0, msg
	}
	return uintptr(sym), ""
}

// Close releases a library handle.
func Close(h Handle) error {
	lastError()
	if C.luneffi_dlclose(h.ptr) != 0 {
		msg := lastError()
		if msg == "" {
			msg = "dlclose failed"
		}
		return newErrf(ErrLoader, "Close", "%s", msg)
	}
	trace("closed library handle %p", h.ptr)
	return nil
}

// lastError consumes the dynamic linker's pending error state, returning ""
// when there is none. A successful op must call this before it runs so a
// stale error from an unrelated earlier failure is not misattributed.
func lastError() string {
	msg := C.luneffi_dlerror()
	if msg == nil {
		return ""
	}
	return C.GoString(msg)
}

// GetErrno reads the calling thread's C errno slot (spec §4.7).
func GetErrno() int {
	return int(C.luneffi_get_errno())
}

// SetErrno writes the calling thread's C errno slot. v is rejected if it
// does not fit in a C int.
func SetErrno(v int) error {
	if v < -2147483648 || v > 2147483647 {
		return newErrf(ErrRange, "SetErrno", "value %d does not fit in a C int", v)
	}
	C.luneffi_set_errno(C.int(v))
	return nil
}
