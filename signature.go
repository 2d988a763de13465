package luneffi

// Signature is a validated, immutable record of a C function prototype: an
// ABI selector, a result type, an ordered argument list, and whether (and
// from what index) the tail is variadic.
type Signature struct {
	Abi        AbiChoice
	Result     CType
	Args       []CType
	Variadic   bool
	FixedCount int
}

// NewSignature validates and constructs a Signature per spec §3's
// invariants:
//   - 0 <= fixedCount <= len(args)
//   - when not variadic, fixedCount == len(args)
//   - when variadic, arguments beyond fixedCount are type hints only
func NewSignature(abi AbiChoice, result CType, args []CType, variadic bool, fixedCount int) (*Signature, error) {
	if fixedCount < 0 || fixedCount > len(args) {
		return nil, newErrf(ErrInvalidSignature, "NewSignature", "fixedCount %d out of range [0, %d]", fixedCount, len(args))
	}
	if !variadic && fixedCount != len(args) {
		return nil, newErrf(ErrInvalidSignature, "NewSignature", "non-variadic signature requires fixedCount == len(args) (%d != %d)", fixedCount, len(args))
	}
	for i, a := range args[:fixedCount] {
		if a.Code == Void {
			return nil, newErrf(ErrInvalidSignature, "NewSignature", "argument %d may not be void", i)
		}
	}
	argsCopy := make([]CType, len(args))
	copy(argsCopy, args)
	return &Signature{
		Abi:        abi,
		Result:     result,
		Args:       argsCopy,
		Variadic:   variadic,
		FixedCount: fixedCount,
	}, nil
}

// Sig is the fixed-arity convenience constructor: fixedCount = len(args),
// variadic = false, abi = Default. [EXPANSION], see SPEC_FULL.md §5.
func Sig(result CType, args ...CType) *Signature {
	sig, err := NewSignature(DefaultAbi, result, args, false, len(args))
	if err != nil {
		// Sig is for call sites that know their own shape at compile
		// time (len(args) always satisfies the fixed invariant); a
		// failure here can only mean a void argument, which is a
		// programmer error worth surfacing loudly.
		panic(err)
	}
	return sig
}

// VariadicSig is the variadic convenience constructor. [EXPANSION].
func VariadicSig(result CType, fixedCount int, args ...CType) *Signature {
	sig, err := NewSignature(DefaultAbi, result, args, true, fixedCount)
	if err != nil {
		panic(err)
	}
	return sig
}

// ArgTypeAt returns the CType governing argument index i: the signature's
// own declared type when i is within len(Args) (whether or not it falls in
// the variadic tail's type-hint region), or the zero CType with ok=false
// when i is beyond every declared hint and inference must apply.
func (s *Signature) ArgTypeAt(i int) (CType, bool) {
	if i < len(s.Args) {
		return s.Args[i], true
	}
	return CType{}, false
}

// ResultWidth returns the size in bytes of the widest scratch slot needed to
// hold the signature's result, used to size the callback trampoline's
// result buffer (spec §4.6 step 1, §9 "Result slot sizing").
func (s *Signature) ResultWidth() uintptr {
	w := s.Result.Code.SizeOf()
	if w < uintptr(pointerWidthBits/8) {
		// libffi requires the result buffer be at least one machine word.
		return uintptr(pointerWidthBits / 8)
	}
	return w
}
