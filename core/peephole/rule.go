package peephole

// Rule is one entry of the catalog: a left-hand pattern to detect, a
// right-hand-side builder describing the replacement, and whether matched
// AnyExpression operands may be discarded without preserving their
// evaluation.
//
// Removable marks rules whose rewrite drops the evaluation of a matched
// AnyExpression operand. Mostly that is because the RHS does not reference
// some AnyExpression placeholder the LHS bound, so that subtree is
// discarded; AND(X,X) -> X and OR(X,X) -> X are also marked Removable,
// although X survives, because one of its two copies is dropped. A Rewriter
// checks the caller's side-effect predicate only for bound AnyExpression
// placeholders the RHS does not reference, and applies the rule only when
// each of those is proven free of observable effects.
type Rule struct {
	LHS       Pattern
	RHS       RHS
	Removable bool

	// family is a short label used for metrics bucketing (see metrics.go);
	// it carries no semantic weight.
	family string
}

func rule(family string, lhs Pattern, rhs RHS, removable bool) Rule {
	return Rule{LHS: lhs, RHS: rhs, Removable: removable, family: family}
}
