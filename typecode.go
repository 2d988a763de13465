package luneffi

import (
	"runtime"
	"strings"
	"unsafe"
)

// TypeCode is the closed enumeration of primitive C type kinds the core
// understands. Every other C-ish spelling is normalised onto one of these
// during Parse.
type TypeCode int

const (
	Void TypeCode = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Intptr
	Uintptr
	Float32
	Float64
	Pointer
)

func (c TypeCode) String() string {
	switch c {
	case Void:
		return "void"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Intptr:
		return "intptr"
	case Uintptr:
		return "uintptr"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case Pointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// pointerWidthBits is the host's natural pointer width, driving long's width
// on Windows/32-bit targets and pointer/intptr/uintptr sizing everywhere.
const pointerWidthBits = 32 << (^uintptr(0) >> 63)

// longIs64 implements spec §3's data model rule for `long`/`unsigned long`:
// 64-bit on 64-bit Unix targets, 32-bit on Windows and on 32-bit targets.
func longIs64() bool {
	return pointerWidthBits == 64 && runtime.GOOS != "windows"
}

// spellings maps every recognised C-ish spelling to a TypeCode. Entries
// whose resolution is target-dependent (long, unsigned long) are filled in
// by init() below, mirroring flapc's ParseArch/ParseOS pattern of a closed
// parse function paired with an enumerable valid set.
var spellings map[string]TypeCode

func init() {
	spellings = map[string]TypeCode{
		"void": Void,

		"int8":   Int8,
		"int8_t": Int8,
		"char":   Int8,
		"signed char": Int8,

		"uint8":        Uint8,
		"uint8_t":      Uint8,
		"unsigned char": Uint8,
		"byte":         Uint8,

		"int16":   Int16,
		"int16_t": Int16,
		"short":   Int16,
		"short int": Int16,

		"uint16":          Uint16,
		"uint16_t":        Uint16,
		"unsigned short":  Uint16,
		"unsigned short int": Uint16,

		"int32":   Int32,
		"int32_t": Int32,
		"int":     Int32,
		"signed":  Int32,
		"signed int": Int32,

		"uint32":          Uint32,
		"uint32_t":        Uint32,
		"unsigned":        Uint32,
		"unsigned int":    Uint32,

		"int64":          Int64,
		"int64_t":        Int64,
		"long long":      Int64,
		"long long int":  Int64,

		"uint64":                  Uint64,
		"uint64_t":                Uint64,
		"unsigned long long":      Uint64,
		"unsigned long long int":  Uint64,

		"intptr":      Intptr,
		"intptr_t":    Intptr,
		"ssize_t":     Intptr,
		"ptrdiff_t":   Intptr,

		"uintptr":   Uintptr,
		"uintptr_t": Uintptr,
		"size_t":    Uintptr,

		"float": Float32,
		"f32":   Float32,

		"double": Float64,
		"f64":    Float64,

		"pointer": Pointer,
		"void*":   Pointer,
		"ptr":     Pointer,
	}

	if longIs64() {
		spellings["long"] = Int64
		spellings["long int"] = Int64
		spellings["unsigned long"] = Uint64
		spellings["unsigned long int"] = Uint64
	} else {
		spellings["long"] = Int32
		spellings["long int"] = Int32
		spellings["unsigned long"] = Uint32
		spellings["unsigned long int"] = Uint32
	}
}

// normalise lower-cases and trims a C type spelling, collapsing internal
// whitespace runs to a single space, before table lookup.
func normalise(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// ParseTypeCode resolves a C type spelling to its canonical TypeCode.
func ParseTypeCode(spelling string) (TypeCode, error) {
	code, ok := spellings[normalise(spelling)]
	if !ok {
		return 0, newErrf(ErrUnsupportedType, "ParseTypeCode", "unsupported type spelling %q", spelling)
	}
	return code, nil
}

// SizeOf returns the host C ABI's natural size in bytes for c. void is 0.
func (c TypeCode) SizeOf() uintptr {
	switch c {
	case Void:
		return 0
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Intptr, Uintptr, Pointer:
		return uintptr(unsafe.Sizeof(uintptr(0)))
	default:
		return 0
	}
}

// AlignOf returns the host C ABI's natural alignment in bytes for c. void is
// 1. All specified types here are scalars, so alignment equals size.
func (c TypeCode) AlignOf() uintptr {
	if c == Void {
		return 1
	}
	return c.SizeOf()
}

// IsInteger reports whether c is one of the signed/unsigned integer codes
// (including the pointer-width intptr/uintptr pair, but not Pointer itself).
func (c TypeCode) IsInteger() bool {
	switch c {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Intptr, Uintptr:
		return true
	default:
		return false
	}
}

// IsSigned reports whether c is a signed integer code.
func (c TypeCode) IsSigned() bool {
	switch c {
	case Int8, Int16, Int32, Int64, Intptr:
		return true
	default:
		return false
	}
}

// IsFloat reports whether c is f32 or f64.
func (c TypeCode) IsFloat() bool {
	return c == Float32 || c == Float64
}

// IsPointerLike reports whether c carries pointer-width semantics: the
// dedicated Pointer code plus the pointer-width integer aliases.
func (c TypeCode) IsPointerLike() bool {
	return c == Pointer || c == Intptr || c == Uintptr
}

// CType wraps a TypeCode and is what the signature and marshaller pass
// around. Additional descriptor fields beyond `code` (e.g. a structural
// `kind`) are tolerated but ignored -- this core only ever sees primitives
// and pointers (spec §1 non-goals exclude arbitrary aggregates).
type CType struct {
	Code TypeCode
}

// ParseCType builds a CType from a bare string spelling.
func ParseCType(spelling string) (CType, error) {
	code, err := ParseTypeCode(spelling)
	if err != nil {
		return CType{}, err
	}
	return CType{Code: code}, nil
}

// CTypeDescriptor is the shape of a script-provided type descriptor table:
// at minimum a `code` field, with any other fields (e.g. `kind`) ignored.
type CTypeDescriptor struct {
	Code string
}

// ParseCTypeDescriptor builds a CType from a descriptor, as used for
// `result`/`args` entries in a signature table (spec §6) that are tables
// rather than bare strings.
func ParseCTypeDescriptor(d CTypeDescriptor) (CType, error) {
	return ParseCType(d.Code)
}

// T is a convenience constructor for host-Go code (tests, the example CLI)
// that knows its spelling is valid at compile time. It panics on an
// unsupported spelling; script-facing code must use ParseCType instead.
func T(spelling string) CType {
	ct, err := ParseCType(spelling)
	if err != nil {
		panic(err)
	}
	return ct
}
