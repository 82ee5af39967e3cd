package peephole

// Binding maps a placeholder id to the concrete ExprNode it matched. A
// placeholder that appears more than once in a pattern (non-linear) must
// bind structurally equal ExprNodes at every occurrence; Binding.bind
// enforces that instead of silently overwriting.
type Binding struct {
	values map[PlaceholderID]ExprNode
}

func newBinding() Binding {
	return Binding{values: make(map[PlaceholderID]ExprNode, 5)}
}

// bind records id -> node, or verifies structural equality against a prior
// binding of the same id. Returns false on conflict.
func (b Binding) bind(id PlaceholderID, node ExprNode) bool {
	if prior, ok := b.values[id]; ok {
		return prior.Equal(node)
	}
	b.values[id] = node
	return true
}

// Lookup returns the ExprNode bound to id, and whether it was bound at all.
func (b Binding) Lookup(id PlaceholderID) (ExprNode, bool) {
	node, ok := b.values[id]
	return node, ok
}

// Word is a convenience accessor for ConstantOnly placeholders: it returns
// the bound node's constant value. Panics if id was never bound to a
// Constant — a contract violation by the caller, since every rule in the
// catalog only calls Word on placeholders its own LHS constrained to
// ConstantOnly.
func (b Binding) Word(id PlaceholderID) Word {
	node, ok := b.values[id]
	if !ok || !node.IsConstant() {
		panic("peephole: Binding.Word called on an unbound or non-constant placeholder")
	}
	return node.ConstantValue()
}

// Expr returns the ExprNode bound to id, panicking if unbound — mirrors
// Word but for AnyExpression placeholders.
func (b Binding) Expr(id PlaceholderID) ExprNode {
	node, ok := b.values[id]
	if !ok {
		panic("peephole: Binding.Expr called on an unbound placeholder")
	}
	return node
}
