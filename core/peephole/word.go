package peephole

import "github.com/holiman/uint256"

// Word is an unsigned integer modulo 2**256, the native value type of the
// expressions this package rewrites. It wraps uint256.Int and exposes only
// the EVM-defined arithmetic, bitwise, comparison, and signed-reinterpretation
// operations the rule catalog needs.
type Word struct {
	v uint256.Int
}

// WordFromUint64 builds a Word from a small unsigned value.
func WordFromUint64(x uint64) Word {
	var w Word
	w.v.SetUint64(x)
	return w
}

// WordFromBytes builds a Word from the low 256 bits of a big-endian byte
// string, matching uint256.Int.SetBytes.
func WordFromBytes(b []byte) Word {
	var w Word
	w.v.SetBytes(b)
	return w
}

// Zero is the additive identity.
var Zero = Word{}

// One is the multiplicative identity.
var One = WordFromUint64(1)

// AllOnes is the word with every bit set (2**256 - 1).
var AllOnes = Word{allOnesInt()}

func allOnesInt() uint256.Int {
	var v uint256.Int
	v.Not(&v)
	return v
}

// AddressMask is (2**160 - 1), the bit pattern an address-producing opcode's
// result is already known to fit within.
var AddressMask = shiftedMask(160)

func shiftedMask(bits uint) Word {
	var one, shifted uint256.Int
	one.SetOne()
	shifted.Lsh(&one, bits)
	var mask uint256.Int
	mask.Sub(&shifted, &one)
	return Word{mask}
}

func (w Word) IsZero() bool { return w.v.IsZero() }

func (w Word) Eq(o Word) bool { return w.v.Eq(&o.v) }

func (w Word) Lt(o Word) bool { return w.v.Lt(&o.v) }

func (w Word) Gt(o Word) bool { return w.v.Gt(&o.v) }

// Slt reports whether w < o under signed (two's-complement) comparison.
func (w Word) Slt(o Word) bool { return w.v.Slt(&o.v) }

// Sgt reports whether w > o under signed comparison.
func (w Word) Sgt(o Word) bool { return w.v.Sgt(&o.v) }

func (w Word) Add(o Word) Word { var r uint256.Int; r.Add(&w.v, &o.v); return Word{r} }
func (w Word) Sub(o Word) Word { var r uint256.Int; r.Sub(&w.v, &o.v); return Word{r} }
func (w Word) Mul(o Word) Word { var r uint256.Int; r.Mul(&w.v, &o.v); return Word{r} }

// Div is unsigned division; division by zero yields zero per the EVM spec.
func (w Word) Div(o Word) Word { var r uint256.Int; r.Div(&w.v, &o.v); return Word{r} }

// Mod is unsigned remainder; modulus zero yields zero.
func (w Word) Mod(o Word) Word { var r uint256.Int; r.Mod(&w.v, &o.v); return Word{r} }

// SDiv is signed division truncated toward zero; division by zero yields
// zero. The INT_MIN / -1 overflow case wraps rather than being special-cased,
// matching the source this catalog is grounded on.
func (w Word) SDiv(o Word) Word { var r uint256.Int; r.SDiv(&w.v, &o.v); return Word{r} }

// SMod is signed remainder truncated toward zero; modulus zero yields zero.
func (w Word) SMod(o Word) Word { var r uint256.Int; r.SMod(&w.v, &o.v); return Word{r} }

// AddMod computes (w+o) mod m using a full-width intermediate; m == 0 yields
// zero.
func (w Word) AddMod(o, m Word) Word {
	var r uint256.Int
	r.AddMod(&w.v, &o.v, &m.v)
	return Word{r}
}

// MulMod computes (w*o) mod m using a full-width intermediate; m == 0 yields
// zero.
func (w Word) MulMod(o, m Word) Word {
	var r uint256.Int
	r.MulMod(&w.v, &o.v, &m.v)
	return Word{r}
}

// Exp computes w**o mod 2**256 for any o >= 0.
func (w Word) Exp(o Word) Word { var r uint256.Int; r.Exp(&w.v, &o.v); return Word{r} }

func (w Word) Not() Word { var r uint256.Int; r.Not(&w.v); return Word{r} }
func (w Word) And(o Word) Word { var r uint256.Int; r.And(&w.v, &o.v); return Word{r} }
func (w Word) Or(o Word) Word  { var r uint256.Int; r.Or(&w.v, &o.v); return Word{r} }
func (w Word) Xor(o Word) Word { var r uint256.Int; r.Xor(&w.v, &o.v); return Word{r} }

// Shl is a logical left shift; shifting by 256 or more yields zero.
func (w Word) Shl(n Word) Word {
	if !n.v.LtUint64(256) {
		return Zero
	}
	var r uint256.Int
	r.Lsh(&w.v, uint(n.v.Uint64()))
	return Word{r}
}

// Shr is a logical right shift; shifting by 256 or more yields zero.
func (w Word) Shr(n Word) Word {
	if !n.v.LtUint64(256) {
		return Zero
	}
	var r uint256.Int
	r.Rsh(&w.v, uint(n.v.Uint64()))
	return Word{r}
}

// Byte returns the byte at index i (0 = most significant byte), or zero if
// i >= 32.
func (w Word) Byte(i Word) Word {
	var r uint256.Int
	r.Set(&w.v)
	r.Byte(&i.v)
	return Word{r}
}

// SignExtend sign-extends w, treating bit 8*k+7 of w as the sign bit. If
// k >= 31, w is returned unchanged.
func (w Word) SignExtend(k Word) Word {
	var r uint256.Int
	r.ExtendSign(&w.v, &k.v)
	return Word{r}
}

func boolWord(b bool) Word {
	if b {
		return One
	}
	return Zero
}

// LtWord, GtWord, SltWord, SgtWord, EqWord, IsZeroWord return the EVM
// boolean-result encoding (Word(1) or Word(0)) of the corresponding
// comparison, for use by constant folding where the result must itself be
// a Word rather than a Go bool.
func (w Word) LtWord(o Word) Word     { return boolWord(w.Lt(o)) }
func (w Word) GtWord(o Word) Word     { return boolWord(w.Gt(o)) }
func (w Word) SltWord(o Word) Word    { return boolWord(w.Slt(o)) }
func (w Word) SgtWord(o Word) Word    { return boolWord(w.Sgt(o)) }
func (w Word) EqWord(o Word) Word     { return boolWord(w.Eq(o)) }
func (w Word) IsZeroWord() Word       { return boolWord(w.IsZero()) }

// Uint64 returns the low 64 bits of w, silently discarding anything above
// bit 63 — useful only for values a caller already knows are small, such as
// a cmd/peepholefmt symbol-table id encoded through NewConstant/WordFromUint64.
func (w Word) Uint64() uint64 { return w.v.Uint64() }

func (w Word) String() string { return w.v.Dec() }

// Bytes32 returns the big-endian 32-byte representation.
func (w Word) Bytes32() [32]byte { return w.v.Bytes32() }
