package peephole

import "testing"

func c(x uint64) ExprNode { return NewConstant(WordFromUint64(x)) }

func TestMatchLiteralConst(t *testing.T) {
	pat := Lit(WordFromUint64(5))
	if _, ok := Match(pat, c(5)); !ok {
		t.Error("LiteralConst(5) should match Constant(5)")
	}
	if _, ok := Match(pat, c(6)); ok {
		t.Error("LiteralConst(5) should not match Constant(6)")
	}
	if _, ok := Match(pat, NewOp(NOT, c(5))); ok {
		t.Error("LiteralConst should never match an Op node")
	}
}

func TestMatchConstantOnlyPlaceholder(t *testing.T) {
	callExpr := NewOp(NOT, c(1)) // stands in for an arbitrary non-constant subexpression
	if _, ok := Match(A, c(5)); !ok {
		t.Error("ConstantOnly placeholder should match a Constant")
	}
	if _, ok := Match(A, callExpr); ok {
		t.Error("ConstantOnly placeholder should not match a non-constant")
	}
	if _, ok := Match(X, callExpr); !ok {
		t.Error("AnyExpression placeholder should match a non-constant")
	}
	if _, ok := Match(X, c(5)); !ok {
		t.Error("AnyExpression placeholder should also match a Constant")
	}
}

func TestMatchOpPatternOrderSignificant(t *testing.T) {
	pat := OpPat(SUB, X, A)
	subject := NewOp(SUB, c(10), c(3))
	b, ok := Match(pat, subject)
	if !ok {
		t.Fatal("expected match")
	}
	if got := b.Expr(PlaceholderX); !got.Equal(c(10)) {
		t.Errorf("X bound to %v, want 10", got)
	}
	if got := b.Word(PlaceholderA); !got.Eq(WordFromUint64(3)) {
		t.Errorf("A bound to %v, want 3", got)
	}

	// a pattern with the placeholder roles swapped matches the same subject
	// but produces different bindings; the matcher never reorders children
	// to find a fit.
	swapped := OpPat(SUB, A, X)
	b2, ok := Match(swapped, subject)
	if !ok {
		t.Fatal("expected OpPat(SUB, A, X) to match SUB(10, 3)")
	}
	if got := b2.Word(PlaceholderA); !got.Eq(WordFromUint64(10)) {
		t.Errorf("A bound to %v, want 10", got)
	}
	if got := b2.Expr(PlaceholderX); !got.Equal(c(3)) {
		t.Errorf("X bound to %v, want 3", got)
	}
}

func TestMatchNonLinearPlaceholderRequiresStructuralEquality(t *testing.T) {
	pat := OpPat(AND, X, X)

	e := NewOp(NOT, c(7))
	if _, ok := Match(pat, NewOp(AND, e, e)); !ok {
		t.Error("AND(X,X) should match AND(e,e) for any e")
	}

	e1 := NewOp(NOT, c(7))
	e2 := NewOp(NOT, c(8))
	if _, ok := Match(pat, NewOp(AND, e1, e2)); ok {
		t.Error("AND(X,X) should not match AND(e1,e2) when e1 != e2 structurally")
	}

	// two independently constructed but structurally identical trees must
	// still be treated as equal — no reliance on object identity.
	eA := NewOp(NOT, c(9))
	eB := NewOp(NOT, c(9))
	if _, ok := Match(pat, NewOp(AND, eA, eB)); !ok {
		t.Error("AND(X,X) should match AND(eA,eB) when eA and eB are structurally equal but distinct values")
	}
}

func TestMatchFailureLeavesNoPartialBinding(t *testing.T) {
	pat := OpPat(ADD, X, X)
	// X binds to c(1) while matching the first child, then fails to match
	// the second (c(2) != c(1)); Match must report failure, not a partial
	// binding of X to c(1).
	b, ok := Match(pat, NewOp(ADD, c(1), c(2)))
	if ok {
		t.Error("expected match failure")
	}
	if _, bound := b.Lookup(PlaceholderX); bound {
		t.Error("failed Match returned a binding with X still bound")
	}
}

func TestMatchOpcodeMismatch(t *testing.T) {
	pat := OpPat(ADD, X, A)
	if _, ok := Match(pat, NewOp(SUB, c(1), c(2))); ok {
		t.Error("pattern for ADD should not match a SUB node")
	}
}
