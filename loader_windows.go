//go:build windows

package luneffi

/*
#cgo LDFLAGS: -lkernel32

#include <windows.h>
#include <stdlib.h>
#include <errno.h>

// luneffi_dlopen/dlsym/dlclose/dlerror emulate the POSIX dl* contract over
// LoadLibraryW/GetProcAddress/FreeLibrary/FormatMessage (spec §6).
static void *luneffi_dlopen(const wchar_t *path) {
    if (path == NULL) {
        return GetModuleHandleW(NULL);
    }
    return (void *)LoadLibraryW(path);
}

static void *luneffi_dlsym(void *handle, const char *name) {
    return (void *)GetProcAddress((HMODULE)handle, name);
}

static int luneffi_dlclose(void *handle) {
    return FreeLibrary((HMODULE)handle) ? 0 : -1;
}

static char *luneffi_dlerror(void) {
    DWORD code = GetLastError();
    if (code == 0) {
        return NULL;
    }
    SetLastError(0);

    char *buf = NULL;
    DWORD n = FormatMessageA(
        FORMAT_MESSAGE_ALLOCATE_BUFFER | FORMAT_MESSAGE_FROM_SYSTEM | FORMAT_MESSAGE_IGNORE_INSERTS,
        NULL, code, 0, (LPSTR)&buf, 0, NULL);
    if (n == 0 || buf == NULL) {
        return NULL;
    }
    return buf;
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

// Handle is an opaque library handle returned by Open.
type Handle struct {
	ptr unsafe.Pointer
}

// Open loads a shared library. An empty path means "the current process
// image" (spec §4.4).
func Open(path string) (Handle, error) {
	var cpath *C.wchar_t
	if path != "" {
		u16 := utf16FromString(path)
		cpath = (*C.wchar_t)(unsafe.Pointer(&u16[0]))
	}
	C.SetLastError(0)

	h := C.luneffi_dlopen(cpath)
	if h == nil {
		msg := lastError()
		if msg == "" {
			msg = "LoadLibraryW failed"
		}
		return Handle{}, newErrf(ErrLoader, "Open", "%s", msg)
	}
	trace("opened library %q", path)
	return Handle{ptr: h}, nil
}

// Resolve looks up a symbol in an open library. Per spec §7 this does not
// raise: a failing lookup returns a message instead.
func Resolve(h Handle, name string) (uintptr, string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.SetLastError(0)

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
	C.SetLastError(0)
	if C.luneffi_dlclose(h.ptr) != 0 {
		msg := lastError()
		if msg == "" {
			msg = "FreeLibrary failed"
		}
		return newErrf(ErrLoader, "Close", "%s", msg)
	}
	trace("closed library handle %p", h.ptr)
	return nil
}

// lastError consumes GetLastError's pending state via the FormatMessage
// shim, returning "" when there is none.
func lastError() string {
	cmsg := C.luneffi_dlerror()
	if cmsg == nil {
		return ""
	}
	defer C.LocalFree(C.HLOCAL(unsafe.Pointer(cmsg)))
	return C.GoString(cmsg)
}

// GetErrno reads the calling thread's C errno slot.
func GetErrno() int {
	return int(C.luneffi_get_errno())
}

// SetErrno writes the calling thread's C errno slot.
func SetErrno(v int) error {
	if v < -2147483648 || v > 2147483647 {
		return newErrf(ErrRange, "SetErrno", "value %d does not fit in a C int", v)
	}
	C.luneffi_set_errno(C.int(v))
	return nil
}

// utf16FromString converts a Go string path to a NUL-terminated UTF-16
// buffer suitable for LoadLibraryW, matching spec §6's "mapping paths to
// UTF-16" requirement.
func utf16FromString(s string) []uint16 {
	out := make([]uint16, 0, len(s)+1)
	for _, r := range s {
		if r <= 0xFFFF {
			out = append(out, uint16(r))
			continue
		}
		r -= 0x10000
		out = append(out, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
	}
	out = append(out, 0)
	return out
}
