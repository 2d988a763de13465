package luneffi

import "testing"

// Confidence that this function is working: 95%
// TestParseTypeCodeAliases checks that the common C spellings for each
// primitive all resolve to the same canonical TypeCode.
func TestParseTypeCodeAliases(t *testing.T) {
	groups := map[TypeCode][]string{
		Int8:    {"int8", "int8_t", "char", "signed char"},
		Uint8:   {"uint8", "uint8_t", "unsigned char", "byte"},
		Int32:   {"int32", "int", "signed int"},
		Uint32:  {"uint32", "unsigned", "unsigned int"},
		Int64:   {"int64", "long long", "long long int"},
		Float32: {"float", "f32"},
		Float64: {"double", "f64"},
		Pointer: {"pointer", "void*", "ptr"},
	}
	for want, spellings := range groups {
		for _, s := range spellings {
			got, err := ParseTypeCode(s)
			if err != nil {
				t.Fatalf("ParseTypeCode(%q) returned error: %v", s, err)
			}
			if got != want {
				t.Errorf("ParseTypeCode(%q) = %v, want %v", s, got, want)
			}
		}
	}
}

// Confidence that this function is working: 90%
func TestParseTypeCodeNormalisesWhitespaceAndCase(t *testing.T) {
	for _, s := range []string{"  Int  ", "INT", "Unsigned   Int"} {
		if _, err := ParseTypeCode(s); err != nil {
			t.Errorf("ParseTypeCode(%q) unexpectedly failed: %v", s, err)
		}
	}
}

// Confidence that this function is working: 95%
func TestParseTypeCodeUnknownSpelling(t *testing.T) {
	_, err := ParseTypeCode("not_a_real_type")
	if err == nil {
		t.Fatal("expected an error for an unrecognised spelling")
	}
	if !Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

// Confidence that this function is working: 90%
// TestLongWidthMatchesDataModel checks that `long` resolves per the LP64 vs
// LLP64 rule: 64-bit everywhere except Windows and 32-bit targets.
func TestLongWidthMatchesDataModel(t *testing.T) {
	code, err := ParseTypeCode("long")
	if err != nil {
		t.Fatalf("ParseTypeCode(long) failed: %v", err)
	}
	wantWide := longIs64()
	gotWide := code == Int64
	if gotWide != wantWide {
		t.Errorf("long resolved to %v, but longIs64()=%v", code, wantWide)
	}
}

// Confidence that this function is working: 95%
func TestSizeOfAndAlignOf(t *testing.T) {
	cases := []struct {
		code TypeCode
		size uintptr
	}{
		{Void, 0},
		{Int8, 1}, {Uint8, 1},
		{Int16, 2}, {Uint16, 2},
		{Int32, 4}, {Uint32, 4}, {Float32, 4},
		{Int64, 8}, {Uint64, 8}, {Float64, 8},
	}
	for _, c := range cases {
		if got := c.code.SizeOf(); got != c.size {
			t.Errorf("%v.SizeOf() = %d, want %d", c.code, got, c.size)
		}
		wantAlign := c.size
		if c.code == Void {
			wantAlign = 1
		}
		if got := c.code.AlignOf(); got != wantAlign {
			t.Errorf("%v.AlignOf() = %d, want %d", c.code, got, wantAlign)
		}
	}
}

// Confidence that this function is working: 90%
func TestIsIntegerSignedFloatPointerLike(t *testing.T) {
	if !Int32.IsInteger() || !Int32.IsSigned() {
		t.Error("Int32 should be a signed integer")
	}
	if !Uint32.IsInteger() || Uint32.IsSigned() {
		t.Error("Uint32 should be an unsigned integer")
	}
	if !Float64.IsFloat() {
		t.Error("Float64 should be a float")
	}
	if !Pointer.IsPointerLike() || !Intptr.IsPointerLike() || !Uintptr.IsPointerLike() {
		t.Error("Pointer/Intptr/Uintptr should all be pointer-like")
	}
	if Int32.IsPointerLike() {
		t.Error("Int32 should not be pointer-like")
	}
}

// Confidence that this function is working: 85%
func TestTPanicsOnUnsupportedSpelling(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected T to panic on an unsupported spelling")
		}
	}()
	T("not_a_real_type")
}

// Confidence that this function is working: 90%
func TestParseCTypeDescriptor(t *testing.T) {
	ct, err := ParseCTypeDescriptor(CTypeDescriptor{Code: "double"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.Code != Float64 {
		t.Errorf("got %v, want Float64", ct.Code)
	}
}
