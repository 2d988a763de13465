package luneffi

import (
	"math"
	"testing"
)

// Confidence that this function is working: 95%
func TestCoerceSignedRange(t *testing.T) {
	if n, err := CoerceSigned(Int(127), 8); err != nil || n != 127 {
		t.Errorf("CoerceSigned(127, 8) = (%d, %v), want (127, nil)", n, err)
	}
	if _, err := CoerceSigned(Int(128), 8); err == nil {
		t.Error("CoerceSigned(128, 8) should overflow an int8")
	}
	if _, err := CoerceSigned(Int(-129), 8); err == nil {
		t.Error("CoerceSigned(-129, 8) should underflow an int8")
	}
}

// Confidence that this function is working: 90%
func TestCoerceSignedFromFloatRequiresIntegral(t *testing.T) {
	if n, err := CoerceSigned(Float(3.0), 32); err != nil || n != 3 {
		t.Errorf("CoerceSigned(3.0, 32) = (%d, %v), want (3, nil)", n, err)
	}
	if _, err := CoerceSigned(Float(3.5), 32); err == nil {
		t.Error("CoerceSigned(3.5, 32) should fail: not integral")
	}
	if _, err := CoerceSigned(Float(math.NaN()), 32); err == nil {
		t.Error("CoerceSigned(NaN, 32) should fail: not finite")
	}
}

// Confidence that this function is working: 90%
func TestCoerceSignedFromBool(t *testing.T) {
	if n, _ := CoerceSigned(Bool(true), 8); n != 1 {
		t.Errorf("CoerceSigned(true, 8) = %d, want 1", n)
	}
	if n, _ := CoerceSigned(Bool(false), 8); n != 0 {
		t.Errorf("CoerceSigned(false, 8) = %d, want 0", n)
	}
}

// Confidence that this function is working: 95%
func TestCoerceUnsignedRejectsNegative(t *testing.T) {
	if _, err := CoerceUnsigned(Int(-1), 32); err == nil {
		t.Error("CoerceUnsigned(-1, 32) should fail")
	}
	if u, err := CoerceUnsigned(Int(255), 8); err != nil || u != 255 {
		t.Errorf("CoerceUnsigned(255, 8) = (%d, %v), want (255, nil)", u, err)
	}
	if _, err := CoerceUnsigned(Int(256), 8); err == nil {
		t.Error("CoerceUnsigned(256, 8) should overflow a uint8")
	}
}

// Confidence that this function is working: 95%
func TestCoerceFloat(t *testing.T) {
	if f, err := CoerceFloat(Int(2)); err != nil || f != 2.0 {
		t.Errorf("CoerceFloat(2) = (%v, %v), want (2.0, nil)", f, err)
	}
	if f, _ := CoerceFloat(Bool(true)); f != 1.0 {
		t.Errorf("CoerceFloat(true) = %v, want 1.0", f)
	}
	if _, err := CoerceFloat(String("x")); err == nil {
		t.Error("CoerceFloat(string) should fail")
	}
}

// Confidence that this function is working: 90%
// TestCoercePointerOrderedRules walks spec §4.2's ordered pointer-coercion
// rules: nil, light-userdata, cdata, non-negative number, and string (via an
// anchor).
func TestCoercePointerOrderedRules(t *testing.T) {
	if p, err := CoercePointer(Nil(), nil); err != nil || p != 0 {
		t.Errorf("CoercePointer(nil) = (%d, %v), want (0, nil)", p, err)
	}
	if p, err := CoercePointer(PointerValue(0x1000), nil); err != nil || p != 0x1000 {
		t.Errorf("CoercePointer(light-userdata) = (%#x, %v), want (0x1000, nil)", p, err)
	}
	cdata := Table(&CData{Marker: true, Ptr: 0x2000})
	if p, err := CoercePointer(cdata, nil); err != nil || p != 0x2000 {
		t.Errorf("CoercePointer(cdata) = (%#x, %v), want (0x2000, nil)", p, err)
	}
	if _, err := CoercePointer(Int(-1), nil); err == nil {
		t.Error("CoercePointer(-1) should fail: negative address")
	}
	if _, err := CoercePointer(String("hi"), nil); err == nil {
		t.Error("CoercePointer(string) with no anchor should fail")
	}

	anchor := &fakeAnchor{}
	p, err := CoercePointer(String("hi"), anchor)
	if err != nil {
		t.Fatalf("CoercePointer(string) with an anchor failed: %v", err)
	}
	if p != 0xABCD {
		t.Errorf("CoercePointer(string) = %#x, want 0xabcd", p)
	}
}

// Confidence that this function is working: 90%
func TestCoercePointerRejectsNulInString(t *testing.T) {
	anchor := &fakeAnchor{}
	_, err := CoercePointer(String("a\x00b"), anchor)
	if err == nil {
		t.Fatal("expected a NUL-in-string error")
	}
	if !Is(err, ErrNulInString) {
		t.Errorf("expected ErrNulInString, got %v", err)
	}
}

type fakeAnchor struct{}

func (*fakeAnchor) AnchorCString(s string) (uintptr, error) { return 0xABCD, nil }
