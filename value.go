package luneffi

// Kind names the shape of a dynamic script Value as it crosses into this
// package. The host scripting runtime's full value representation is out of
// scope (see spec §1); these are the variants the core actually inspects.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindPointer // light-userdata: a raw native pointer with no ownership
	KindTable   // a cdata object, recognised by its __ffi_cdata marker
)

// Value is the tagged variant the call engine, the memory surface and the
// callback trampoline pass dynamic script values around as. It is
// deliberately small and stack-local; it is never stored beyond one call.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	S    string
	Ptr  uintptr // valid for KindPointer and KindTable
	Data *CData  // non-nil only for KindTable
}

// CData is the boxed native value concept described in spec §3. The core
// never allocates or owns cdata -- it only reads these three fields when a
// KindTable value is presented where a pointer or variadic argument is
// expected.
type CData struct {
	Marker bool    // must be true for the value to be recognised as cdata
	Ptr    uintptr // __ptr: native pointer, or 0 for null
	CType  *CType  // __ctype: optional type descriptor used for variadic promotion
}

func Nil() Value                { return Value{Kind: KindNil} }
func Bool(b bool) Value         { return Value{Kind: KindBool, B: b} }
func Int(i int64) Value         { return Value{Kind: KindInt, I: i} }
func Float(f float64) Value     { return Value{Kind: KindFloat, F: f} }
func String(s string) Value     { return Value{Kind: KindString, S: s} }
func PointerValue(p uintptr) Value { return Value{Kind: KindPointer, Ptr: p} }
func Table(d *CData) Value      { return Value{Kind: KindTable, Ptr: d.Ptr, Data: d} }
func (v Value) IsNil() bool     { return v.Kind == KindNil }

// RegistryKey is an opaque handle into the host runtime's strong-reference
// table. The callback engine (C7) pins a script function behind one of
// these so that native code can invoke it from an arbitrary thread at an
// arbitrary later time.
type RegistryKey uint64

// Runtime is the external collaborator this package mediates against: the
// host scripting runtime. It is intentionally tiny -- spec §1 places the
// runtime's own value representation, GC and cdef parser out of scope, so
// this interface only names the handful of operations the call and callback
// engines actually need from it.
type Runtime interface {
	// Pin creates a strong reference to fn (a script function Value) that
	// survives until Unpin is called, and returns a key identifying it.
	Pin(fn Value) (RegistryKey, error)

	// Unpin releases a previously-pinned reference. Implementations must
	// not re-enter the scripting engine's GC synchronously from inside a
	// callback trampoline (spec §4.6 destruction ordering).
	Unpin(key RegistryKey)

	// Invoke calls the script function identified by key with args and
	// returns its results (a script function may be multi-value).
	Invoke(key RegistryKey, args []Value) ([]Value, error)

	// Warn reports a non-fatal error from inside the callback trampoline,
	// where propagating a Go error into the native caller is impossible.
	// Implementations typically forward to a global "warn" function if the
	// host scripting language defines one, else to standard error.
	Warn(msg string)
}
