package peephole

// Match attempts to bind pattern against subject, returning a completed
// Binding and true on success. On failure it returns false and no partial
// binding is visible to the caller — a fresh Binding is built bottom-up and
// only returned once the whole pattern has matched.
//
// Commutativity is not built into the matcher: rules in the catalog that
// want both operand orderings of a commutative opcode enumerate both LHS
// patterns explicitly (§4.2 of the spec this package implements).
func Match(pattern Pattern, subject ExprNode) (Binding, bool) {
	b := newBinding()
	if matchInto(pattern, subject, b) {
		return b, true
	}
	return Binding{}, false
}

func matchInto(pattern Pattern, subject ExprNode, b Binding) bool {
	switch pattern.kind {
	case patKindLiteralConst:
		return subject.IsConstant() && subject.ConstantValue().Eq(pattern.constant)

	case patKindPlaceholder:
		if pattern.pkind == ConstantOnly && !subject.IsConstant() {
			return false
		}
		return b.bind(pattern.id, subject)

	case patKindOpPattern:
		if subject.IsConstant() || subject.Op() != pattern.op {
			return false
		}
		children := subject.Children()
		if len(children) != len(pattern.children) {
			return false
		}
		for i, childPattern := range pattern.children {
			if !matchInto(childPattern, children[i], b) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
