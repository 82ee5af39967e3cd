package peephole

import (
	"math/rand"
	"testing"
)

func TestWordDivModByZero(t *testing.T) {
	ten := WordFromUint64(10)
	if got := ten.Div(Zero); !got.Eq(Zero) {
		t.Errorf("Div(10,0) = %v, want 0", got)
	}
	if got := ten.Mod(Zero); !got.Eq(Zero) {
		t.Errorf("Mod(10,0) = %v, want 0", got)
	}
	if got := ten.SDiv(Zero); !got.Eq(Zero) {
		t.Errorf("SDiv(10,0) = %v, want 0", got)
	}
	if got := ten.SMod(Zero); !got.Eq(Zero) {
		t.Errorf("SMod(10,0) = %v, want 0", got)
	}
}

func TestWordAddModMulModByZero(t *testing.T) {
	a, b := WordFromUint64(7), WordFromUint64(9)
	if got := a.AddMod(b, Zero); !got.Eq(Zero) {
		t.Errorf("AddMod(7,9,0) = %v, want 0", got)
	}
	if got := a.MulMod(b, Zero); !got.Eq(Zero) {
		t.Errorf("MulMod(7,9,0) = %v, want 0", got)
	}
}

func TestWordShiftByTooMany(t *testing.T) {
	one := WordFromUint64(1)
	if got := one.Shl(WordFromUint64(256)); !got.Eq(Zero) {
		t.Errorf("Shl(1,256) = %v, want 0", got)
	}
	if got := one.Shl(WordFromUint64(300)); !got.Eq(Zero) {
		t.Errorf("Shl(1,300) = %v, want 0", got)
	}
	if got := AllOnes.Shr(WordFromUint64(256)); !got.Eq(Zero) {
		t.Errorf("Shr(allOnes,256) = %v, want 0", got)
	}
}

func TestWordByteOutOfRange(t *testing.T) {
	v := WordFromUint64(0xFF)
	if got := v.Byte(WordFromUint64(32)); !got.Eq(Zero) {
		t.Errorf("Byte(32, 0xFF) = %v, want 0", got)
	}
	// the least significant byte is index 31
	if got := v.Byte(WordFromUint64(31)); !got.Eq(v) {
		t.Errorf("Byte(31, 0xFF) = %v, want 0xFF", got)
	}
}

func TestWordSignExtend(t *testing.T) {
	v := WordFromUint64(0xFF)
	got := v.SignExtend(WordFromUint64(0))
	if !got.Eq(AllOnes) {
		t.Errorf("SignExtend(0, 0xFF) = %v, want all-ones", got)
	}

	// k >= 31 leaves v unchanged
	if got := v.SignExtend(WordFromUint64(31)); !got.Eq(v) {
		t.Errorf("SignExtend(31, 0xFF) = %v, want 0xFF", got)
	}
	if got := v.SignExtend(WordFromUint64(40)); !got.Eq(v) {
		t.Errorf("SignExtend(40, 0xFF) = %v, want 0xFF", got)
	}
}

func TestWordComparisonsEncodeBoolean(t *testing.T) {
	a, b := WordFromUint64(3), WordFromUint64(5)
	if !a.LtWord(b).Eq(One) {
		t.Error("LtWord(3,5) should be 1")
	}
	if !b.LtWord(a).Eq(Zero) {
		t.Error("LtWord(5,3) should be 0")
	}
	if !a.EqWord(a).Eq(One) {
		t.Error("EqWord(3,3) should be 1")
	}
	if !Zero.IsZeroWord().Eq(One) {
		t.Error("IsZeroWord(0) should be 1")
	}
}

// TestWordAddModFullWidth checks that AddMod reduces the true,
// arbitrary-precision sum modulo m rather than first wrapping the sum at
// 2**256. AllOnes + 2 wraps to 1 mod 2**256, so a buggy wrap-then-reduce
// implementation would report 1 mod 10 = 1; the true sum 2**256 + 1 is 7
// mod 10 (2**256 mod 10 cycles with period 4: ...,2,4,8,6,... and 256 is a
// multiple of 4, landing on 6).
func TestWordAddModFullWidth(t *testing.T) {
	got := AllOnes.AddMod(WordFromUint64(2), WordFromUint64(10))
	if want := WordFromUint64(7); !got.Eq(want) {
		t.Errorf("AddMod(allOnes, 2, 10) = %v, want %v", got, want)
	}
}

func TestWordExpAndSignedDivModProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := randomWord(rng)
		b := randomWord(rng)

		// exp(a,0) == 1 for all a (including a==0, per EVM semantics).
		if got := a.Exp(Zero); !got.Eq(One) {
			t.Fatalf("Exp(%v,0) = %v, want 1", a, got)
		}

		// sdiv/smod by zero is zero, matching unsigned div/mod.
		if got := a.SDiv(Zero); !got.Eq(Zero) {
			t.Fatalf("SDiv(%v,0) = %v, want 0", a, got)
		}
		if got := a.SMod(Zero); !got.Eq(Zero) {
			t.Fatalf("SMod(%v,0) = %v, want 0", a, got)
		}
		_ = b
	}
}

func randomWord(rng *rand.Rand) Word {
	buf := make([]byte, 32)
	rng.Read(buf)
	return WordFromBytes(buf)
}
