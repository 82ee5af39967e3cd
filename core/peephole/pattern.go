package peephole

// PlaceholderKind restricts what a Placeholder is allowed to bind against.
type PlaceholderKind uint8

const (
	// ConstantOnly placeholders (conventionally A, B, C) bind only to
	// Constant leaves.
	ConstantOnly PlaceholderKind = iota
	// AnyExpression placeholders (conventionally X, Y) bind to any
	// ExprNode.
	AnyExpression
)

// PlaceholderID identifies a placeholder within a single Pattern; the same
// id appearing more than once makes the pattern non-linear, requiring all
// occurrences to bind structurally equal expressions.
type PlaceholderID uint8

const (
	PlaceholderA PlaceholderID = iota
	PlaceholderB
	PlaceholderC
	PlaceholderX
	PlaceholderY
)

// patternKind distinguishes the three Pattern variants.
type patternKind uint8

const (
	patKindPlaceholder patternKind = iota
	patKindLiteralConst
	patKindOpPattern
)

// Pattern is a rule's left-hand-side shape: a tree of placeholders, literal
// constants, and opcode nodes.
type Pattern struct {
	kind     patternKind
	id       PlaceholderID
	pkind    PlaceholderKind
	constant Word
	op       Opcode
	children []Pattern
}

// Ph builds a Placeholder pattern.
func Ph(id PlaceholderID, kind PlaceholderKind) Pattern {
	return Pattern{kind: patKindPlaceholder, id: id, pkind: kind}
}

// Lit builds a LiteralConst pattern, matching only an identical constant.
func Lit(w Word) Pattern {
	return Pattern{kind: patKindLiteralConst, constant: w}
}

// LitU64 is a convenience literal pattern for small constants.
func LitU64(x uint64) Pattern {
	return Lit(WordFromUint64(x))
}

// OpPat builds an OpPattern matching Op(op, ...) with matching children.
func OpPat(op Opcode, children ...Pattern) Pattern {
	return Pattern{kind: patKindOpPattern, op: op, children: append([]Pattern(nil), children...)}
}

// Standard placeholder patterns shared across every rule in the catalog,
// matching the five bound placeholders spec.md §6 names: A, B, C are
// ConstantOnly; X, Y are AnyExpression.
var (
	A = Ph(PlaceholderA, ConstantOnly)
	B = Ph(PlaceholderB, ConstantOnly)
	C = Ph(PlaceholderC, ConstantOnly)
	X = Ph(PlaceholderX, AnyExpression)
	Y = Ph(PlaceholderY, AnyExpression)
)
