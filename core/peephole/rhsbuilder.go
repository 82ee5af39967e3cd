package peephole

// rhsKind distinguishes the RHS instruction variants.
type rhsKind uint8

const (
	rhsRef rhsKind = iota
	rhsLit
	rhsBuild
	rhsFold
	rhsCondLt
)

// FoldFn computes a constant result from the already-bound constant
// operands of a Fold instruction, at substitution time.
type FoldFn func(operands []Word) Word

// RHS is a small instruction tree describing how to build a rule's
// replacement expression from a completed Binding. This replaces the
// per-rule closure the source this catalog is grounded on embeds directly:
// Ref substitutes a bound placeholder, Lit produces a fixed constant, Build
// constructs an Op node from instantiated children, Fold computes a new
// constant from bound constants at substitution time, and CondLt picks
// between two branches by comparing two bound constants. The result is a
// catalog that is serializable and inspectable instead of a vector of
// closures (see DESIGN.md / spec.md design notes).
type RHS struct {
	kind     rhsKind
	ref      PlaceholderID
	lit      Word
	op       Opcode
	children []RHS
	fold     FoldFn
	operands []RHS
	condLeft  *RHS
	condRight *RHS
	condThen  *RHS
	condElse  *RHS
}

// Ref builds an RHS that substitutes the ExprNode bound to id.
func Ref(id PlaceholderID) RHS { return RHS{kind: rhsRef, ref: id} }

// LitRHS builds an RHS producing a fixed Constant, independent of the
// binding.
func LitRHS(w Word) RHS { return RHS{kind: rhsLit, lit: w} }

// LitRHSU64 is a convenience fixed-constant RHS for small values.
func LitRHSU64(x uint64) RHS { return LitRHS(WordFromUint64(x)) }

// Build builds an RHS producing Op(op, children...), each child itself
// instantiated from the binding.
func Build(op Opcode, children ...RHS) RHS {
	return RHS{kind: rhsBuild, op: op, children: append([]RHS(nil), children...)}
}

// FoldRHS builds an RHS that instantiates operands (each of which must
// resolve to a Constant), then applies fn to their Word values to produce a
// new Constant. Used both for pure constant folding (family (a)) and for
// constant-sinking rules that combine two already-bound constants (e.g.
// A+B) into the replacement.
func FoldRHS(fn FoldFn, operands ...RHS) RHS {
	return RHS{kind: rhsFold, fold: fn, operands: append([]RHS(nil), operands...)}
}

// CondLt builds an RHS that instantiates left and right (each resolving to
// a Constant), and instantiates then if left's value is unsigned-less-than
// right's value, else els. Used by the ADD/SUB constant-sinking family,
// which must choose the non-underflowing direction of a subtraction between
// two bound constants.
func CondLt(left, right, then, els RHS) RHS {
	return RHS{kind: rhsCondLt, condLeft: &left, condRight: &right, condThen: &then, condElse: &els}
}

// Instantiate substitutes b into rhs, producing the replacement ExprNode.
func (rhs RHS) Instantiate(b Binding) ExprNode {
	switch rhs.kind {
	case rhsRef:
		return b.Expr(rhs.ref)
	case rhsLit:
		return NewConstant(rhs.lit)
	case rhsBuild:
		children := make([]ExprNode, len(rhs.children))
		for i, c := range rhs.children {
			children[i] = c.Instantiate(b)
		}
		return NewOp(rhs.op, children...)
	case rhsFold:
		words := make([]Word, len(rhs.operands))
		for i, o := range rhs.operands {
			words[i] = o.Instantiate(b).ConstantValue()
		}
		return NewConstant(rhs.fold(words))
	case rhsCondLt:
		lv := rhs.condLeft.Instantiate(b).ConstantValue()
		rv := rhs.condRight.Instantiate(b).ConstantValue()
		if lv.Lt(rv) {
			return rhs.condThen.Instantiate(b)
		}
		return rhs.condElse.Instantiate(b)
	default:
		panic("peephole: malformed RHS instruction")
	}
}

// unaryFold and binaryFold adapt the Word methods the catalog folds over
// into the variadic FoldFn shape Fold expects.
func unaryFold(f func(Word) Word) FoldFn {
	return func(ops []Word) Word { return f(ops[0]) }
}

func binaryFold(f func(Word, Word) Word) FoldFn {
	return func(ops []Word) Word { return f(ops[0], ops[1]) }
}

func ternaryFold(f func(Word, Word, Word) Word) FoldFn {
	return func(ops []Word) Word { return f(ops[0], ops[1], ops[2]) }
}
