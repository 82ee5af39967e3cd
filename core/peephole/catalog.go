package peephole

import "github.com/ethereum/go-ethereum/log"

// RuleCatalog is the fixed, ordered list of rewrite rules a Rewriter walks.
// Order only matters in that the Rewriter applies the first match; no rule
// in the catalog depends on another rule having run first.
type RuleCatalog struct {
	rules []Rule
}

// NewRuleCatalog builds the catalog once, from the fixed rule families
// below. The five placeholders A, B, C (ConstantOnly) and X, Y
// (AnyExpression) are shared across every rule, matching the bound
// placeholders spec.md §6 names.
func NewRuleCatalog() *RuleCatalog {
	var rules []Rule
	rules = append(rules, foldingRules()...)
	rules = append(rules, identityRules()...)
	rules = append(rules, selfCombinationRules()...)
	rules = append(rules, logicalCombinatorRules()...)
	rules = append(rules, powerOfTwoModRules()...)
	rules = append(rules, addressMaskRules()...)
	rules = append(rules, booleanDoubleNegationRules()...)
	rules = append(rules, associativityRules()...)
	rules = append(rules, addSubInteractionRules()...)
	log.Debug("peephole rule catalog built", "rules", len(rules))
	return &RuleCatalog{rules: rules}
}

// Rules exposes the catalog's rows for iteration by a Rewriter or for
// inspection/testing. The returned slice must not be mutated.
func (c *RuleCatalog) Rules() []Rule { return c.rules }

func byteOp(i, v Word) Word         { return v.Byte(i) }
func shlOp(n, v Word) Word          { return v.Shl(n) }
func shrOp(n, v Word) Word          { return v.Shr(n) }
func signExtendOp(k, v Word) Word   { return v.SignExtend(k) }
func addModOp(a, b, c Word) Word    { return a.AddMod(b, c) }
func mulModOp(a, b, c Word) Word    { return a.MulMod(b, c) }
func mulModDeadCodeOp(a, b, _ Word) Word { return a.Mul(b) }

// (a) constant folding: one rule per opcode, keyed on arity, with every
// child ConstantOnly. None of these are removable: a folded opcode never
// discards an AnyExpression operand, because it has none.
func foldingRules() []Rule {
	bin := func(op Opcode, fn func(Word, Word) Word) Rule {
		return rule("fold", OpPat(op, A, B), FoldRHS(binaryFold(fn), Ref(PlaceholderA), Ref(PlaceholderB)), false)
	}
	un := func(op Opcode, fn func(Word) Word) Rule {
		return rule("fold", OpPat(op, A), FoldRHS(unaryFold(fn), Ref(PlaceholderA)), false)
	}
	tern := func(op Opcode, fn func(Word, Word, Word) Word) Rule {
		return rule("fold", OpPat(op, A, B, C), FoldRHS(ternaryFold(fn), Ref(PlaceholderA), Ref(PlaceholderB), Ref(PlaceholderC)), false)
	}

	return []Rule{
		bin(ADD, Word.Add),
		bin(SADD, Word.Add),
		bin(SUB, Word.Sub),
		bin(SSUB, Word.Sub),
		bin(MUL, Word.Mul),
		bin(SMUL, Word.Mul),
		bin(DIV, Word.Div),
		bin(SDIV, Word.SDiv),
		bin(MOD, Word.Mod),
		bin(SMOD, Word.SMod),
		bin(EXP, Word.Exp),
		un(NOT, Word.Not),
		bin(LT, Word.LtWord),
		bin(GT, Word.GtWord),
		bin(SLT, Word.SltWord),
		bin(SGT, Word.SgtWord),
		bin(EQ, Word.EqWord),
		un(ISZERO, Word.IsZeroWord),
		bin(AND, Word.And),
		bin(OR, Word.Or),
		bin(XOR, Word.Xor),
		bin(BYTE, byteOp),
		tern(ADDMOD, addModOp),
		// MULMOD appears twice with conflicting RHS in the source this
		// catalog is grounded on: the first computes (A*B) mod C honestly,
		// the second reduces to A*B. The first dominates because the
		// Rewriter applies the first match; the second is preserved
		// unreachable dead code rather than resolved (open question,
		// spec.md §9).
		tern(MULMOD, mulModOp),
		tern(MULMOD, mulModDeadCodeOp),
		bin(SIGNEXTEND, signExtendOp),
		bin(SHL, shlOp),
		bin(SHR, shrOp),
	}
}

// (b) identity / absorption rules with one operand a known constant.
// Removable is true exactly where the rewrite discards the non-constant
// operand (MUL/DIV/AND by 0, MOD by 0, OR by all-ones) rather than
// returning it.
func identityRules() []Rule {
	add := func(lhs Pattern, rhs RHS, removable bool) Rule { return rule("identity", lhs, rhs, removable) }
	xR := Ref(PlaceholderX)
	zero := LitRHSU64(0)
	allOnesRHS := LitRHS(AllOnes)

	return []Rule{
		add(OpPat(ADD, X, LitU64(0)), xR, false),
		add(OpPat(ADD, LitU64(0), X), xR, false),
		add(OpPat(SADD, X, LitU64(0)), xR, false),
		add(OpPat(SADD, LitU64(0), X), xR, false),
		add(OpPat(SUB, X, LitU64(0)), xR, false),
		add(OpPat(SSUB, X, LitU64(0)), xR, false),

		add(OpPat(MUL, X, LitU64(0)), zero, true),
		add(OpPat(MUL, LitU64(0), X), zero, true),
		add(OpPat(MUL, X, LitU64(1)), xR, false),
		add(OpPat(MUL, LitU64(1), X), xR, false),
		add(OpPat(MUL, X, Lit(AllOnes)), Build(SUB, LitRHSU64(0), xR), false),
		add(OpPat(MUL, Lit(AllOnes), X), Build(SUB, LitRHSU64(0), xR), false),

		add(OpPat(SMUL, X, LitU64(0)), zero, true),
		add(OpPat(SMUL, LitU64(0), X), zero, true),
		add(OpPat(SMUL, X, LitU64(1)), xR, false),
		add(OpPat(SMUL, LitU64(1), X), xR, false),
		add(OpPat(SMUL, X, Lit(AllOnes)), Build(SSUB, LitRHSU64(0), xR), false),
		add(OpPat(SMUL, Lit(AllOnes), X), Build(SSUB, LitRHSU64(0), xR), false),

		add(OpPat(DIV, X, LitU64(0)), zero, true),
		add(OpPat(DIV, LitU64(0), X), zero, true),
		add(OpPat(DIV, X, LitU64(1)), xR, false),

		add(OpPat(SDIV, X, LitU64(0)), zero, true),
		add(OpPat(SDIV, LitU64(0), X), zero, true),
		add(OpPat(SDIV, X, LitU64(1)), xR, false),

		add(OpPat(AND, X, Lit(AllOnes)), xR, false),
		add(OpPat(AND, Lit(AllOnes), X), xR, false),
		add(OpPat(AND, X, LitU64(0)), zero, true),
		add(OpPat(AND, LitU64(0), X), zero, true),

		add(OpPat(OR, X, LitU64(0)), xR, false),
		add(OpPat(OR, LitU64(0), X), xR, false),
		add(OpPat(OR, X, Lit(AllOnes)), allOnesRHS, true),
		add(OpPat(OR, Lit(AllOnes), X), allOnesRHS, true),

		add(OpPat(XOR, X, LitU64(0)), xR, false),
		add(OpPat(XOR, LitU64(0), X), xR, false),

		add(OpPat(MOD, X, LitU64(0)), zero, true),
		add(OpPat(MOD, LitU64(0), X), zero, true),

		add(OpPat(EQ, X, LitU64(0)), Build(ISZERO, xR), false),
		add(OpPat(EQ, LitU64(0), X), Build(ISZERO, xR), false),
	}
}

// (c) self-combination: non-linear patterns where the same placeholder
// appears on both sides. All are marked removable. AND and OR keep one copy
// of X and drop the other; the remaining rules fold to a constant and
// discard X entirely, so the Rewriter applies them only once the caller's
// side-effect predicate accepts X.
func selfCombinationRules() []Rule {
	xR := Ref(PlaceholderX)
	zero := LitRHSU64(0)
	return []Rule{
		rule("self", OpPat(AND, X, X), xR, true),
		rule("self", OpPat(OR, X, X), xR, true),
		rule("self", OpPat(XOR, X, X), zero, true),
		rule("self", OpPat(SUB, X, X), zero, true),
		rule("self", OpPat(SSUB, X, X), zero, true),
		rule("self", OpPat(EQ, X, X), LitRHSU64(1), true),
		rule("self", OpPat(LT, X, X), zero, true),
		rule("self", OpPat(SLT, X, X), zero, true),
		rule("self", OpPat(GT, X, X), zero, true),
		rule("self", OpPat(SGT, X, X), zero, true),
		rule("self", OpPat(MOD, X, X), zero, true),
	}
}

// (d) logical combinators: double negation, XOR cancellation, absorption,
// and complement laws.
func logicalCombinatorRules() []Rule {
	xR, yR := Ref(PlaceholderX), Ref(PlaceholderY)
	notEqual := []Rule{
		rule("logical", OpPat(NOT, OpPat(NOT, X)), xR, false),

		rule("logical", OpPat(XOR, X, OpPat(XOR, X, Y)), yR, true),
		rule("logical", OpPat(XOR, X, OpPat(XOR, Y, X)), yR, true),
		rule("logical", OpPat(XOR, OpPat(XOR, X, Y), X), yR, true),
		rule("logical", OpPat(XOR, OpPat(XOR, Y, X), X), yR, true),

		rule("logical", OpPat(OR, X, OpPat(AND, X, Y)), xR, true),
		rule("logical", OpPat(OR, X, OpPat(AND, Y, X)), xR, true),
		rule("logical", OpPat(OR, OpPat(AND, X, Y), X), xR, true),
		rule("logical", OpPat(OR, OpPat(AND, Y, X), X), xR, true),

		rule("logical", OpPat(AND, X, OpPat(OR, X, Y)), xR, true),
		rule("logical", OpPat(AND, X, OpPat(OR, Y, X)), xR, true),
		rule("logical", OpPat(AND, OpPat(OR, X, Y), X), xR, true),
		rule("logical", OpPat(AND, OpPat(OR, Y, X), X), xR, true),

		rule("logical", OpPat(AND, X, OpPat(NOT, X)), LitRHSU64(0), true),
		rule("logical", OpPat(AND, OpPat(NOT, X), X), LitRHSU64(0), true),
		rule("logical", OpPat(OR, X, OpPat(NOT, X)), LitRHS(AllOnes), true),
		rule("logical", OpPat(OR, OpPat(NOT, X), X), LitRHS(AllOnes), true),
	}
	return notEqual
}

// (e) power-of-two MOD -> AND mask, generated programmatically for every
// shift amount in [0, 256).
func powerOfTwoModRules() []Rule {
	rules := make([]Rule, 0, 256)
	one := WordFromUint64(1)
	for i := 0; i < 256; i++ {
		value := one.Shl(WordFromUint64(uint64(i)))
		maskRHS := LitRHS(value.Sub(one))
		rules = append(rules, rule("pow2mod", OpPat(MOD, X, Lit(value)), Build(AND, Ref(PlaceholderX), maskRHS), false))
	}
	return rules
}

// (f) address-width masking: opcodes already known to fit in 160 bits are
// unaffected by masking with the 160-bit all-ones pattern.
func addressMaskRules() []Rule {
	addressOpcodes := []Opcode{ADDRESS, CALLER, ORIGIN, COINBASE}
	rules := make([]Rule, 0, len(addressOpcodes)*2)
	for _, op := range addressOpcodes {
		opNode := OpPat(op)
		opRHS := Build(op)
		rules = append(rules,
			rule("addrmask", OpPat(AND, opNode, Lit(AddressMask)), opRHS, false),
			rule("addrmask", OpPat(AND, Lit(AddressMask), opNode), opRHS, false),
		)
	}
	return rules
}

// (g) boolean double negation: ISZERO(ISZERO(cmp)) -> cmp for every
// comparison opcode with a boolean result, plus the ISZERO/XOR and
// triple-ISZERO special cases.
func booleanDoubleNegationRules() []Rule {
	comparisons := []Opcode{EQ, LT, SLT, GT, SGT}
	rules := make([]Rule, 0, len(comparisons)+2)
	for _, op := range comparisons {
		cmp := OpPat(op, X, Y)
		rules = append(rules, rule("boolnegate",
			OpPat(ISZERO, OpPat(ISZERO, cmp)),
			Build(op, Ref(PlaceholderX), Ref(PlaceholderY)),
			false))
	}
	rules = append(rules,
		rule("boolnegate",
			OpPat(ISZERO, OpPat(ISZERO, OpPat(ISZERO, X))),
			Build(ISZERO, Ref(PlaceholderX)),
			false),
		rule("boolnegate",
			OpPat(ISZERO, OpPat(XOR, X, Y)),
			Build(EQ, Ref(PlaceholderX), Ref(PlaceholderY)),
			false),
	)
	return rules
}

// xaOrdering is one of the two operand orderings {(X,A), (A,X)} the
// associativity and ADD/SUB families enumerate explicitly, since the
// matcher does not build commutativity in.
type xaOrdering struct {
	pattern [2]Pattern
}

var xaOrderings = []xaOrdering{
	{pattern: [2]Pattern{X, A}},
	{pattern: [2]Pattern{A, X}},
}

// (h) associativity/commutativity with constant sinking, for every
// commutative-associative opcode, both xa orderings, and the four rule
// shapes described in spec.md §4.3(h). None are removable: every
// AnyExpression placeholder bound on the left appears on the right.
func associativityRules() []Rule {
	type opFn struct {
		op Opcode
		fn func(Word, Word) Word
	}
	ops := []opFn{
		{ADD, Word.Add}, {SADD, Word.Add},
		{MUL, Word.Mul}, {SMUL, Word.Mul},
		{AND, Word.And}, {OR, Word.Or}, {XOR, Word.Xor},
	}

	var rules []Rule
	for _, o := range ops {
		for _, xa := range xaOrderings {
			inner := OpPat(o.op, xa.pattern[0], xa.pattern[1])
			fnB := FoldRHS(binaryFold(o.fn), Ref(PlaceholderA), Ref(PlaceholderB))

			rules = append(rules,
				// (X+A)+B -> X+(A+B)
				rule("assoc", OpPat(o.op, inner, B), Build(o.op, Ref(PlaceholderX), fnB), false),
				// (X+A)+Y -> (X+Y)+A
				rule("assoc", OpPat(o.op, inner, Y),
					Build(o.op, Build(o.op, Ref(PlaceholderX), Ref(PlaceholderY)), Ref(PlaceholderA)), false),
				// B+(X+A) -> X+(A+B)
				rule("assoc", OpPat(o.op, B, inner), Build(o.op, Ref(PlaceholderX), fnB), false),
				// Y+(X+A) -> (Y+X)+A
				rule("assoc", OpPat(o.op, Y, inner),
					Build(o.op, Build(o.op, Ref(PlaceholderY), Ref(PlaceholderX)), Ref(PlaceholderA)), false),
			)
		}
	}
	return rules
}

// (i) ADD/SUB interaction with constant sinking, for the wrapping
// (ADD, SUB) pair and the side-effect-preserving (SADD, SSUB) pair. All
// arithmetic on bound constants is modulo 2**256; the A<B / B<A
// comparisons CondLt performs are unsigned, matching spec.md §4.3(i).
func addSubInteractionRules() []Rule {
	type addSub struct{ add, sub Opcode }
	pairs := []addSub{{ADD, SUB}, {SADD, SSUB}}

	var rules []Rule
	for _, p := range pairs {
		aR, bR, xR, yR := Ref(PlaceholderA), Ref(PlaceholderB), Ref(PlaceholderX), Ref(PlaceholderY)
		sub := func(children ...RHS) RHS { return Build(p.sub, children...) }
		add := func(children ...RHS) RHS { return Build(p.add, children...) }
		bMinusA := FoldRHS(binaryFold(Word.Sub), bR, aR)
		aMinusB := FoldRHS(binaryFold(Word.Sub), aR, bR)
		aPlusB := FoldRHS(binaryFold(Word.Add), aR, bR)

		for _, xa := range xaOrderings {
			addXA := OpPat(p.add, xa.pattern[0], xa.pattern[1])

			// SUB(ADD(xa), B) -> if A<B then SUB(X,B-A) else ADD(X,A-B)
			rules = append(rules, rule("addsub",
				OpPat(p.sub, addXA, B),
				CondLt(aR, bR, sub(xR, bMinusA), add(xR, aMinusB)),
				false))

			// SUB(B, ADD(xa)) -> SUB(B-A, X)
			rules = append(rules, rule("addsub",
				OpPat(p.sub, B, addXA),
				sub(bMinusA, xR),
				false))
		}

		// (X - A) + B -> X + (B - A), X - (A - B)
		subXA := OpPat(p.sub, X, A)
		rules = append(rules,
			rule("addsub", OpPat(p.add, subXA, B),
				CondLt(bR, aR, sub(xR, aMinusB), add(xR, bMinusA)), false),
			// B + (X - A) -> same resolution
			rule("addsub", OpPat(p.add, B, subXA),
				CondLt(bR, aR, sub(xR, aMinusB), add(xR, bMinusA)), false),
			// (X - A) - B -> X - (A + B)
			rule("addsub", OpPat(p.sub, subXA, B), sub(xR, aPlusB), false),
			// (A - X) - B -> (A - B) - X
			rule("addsub", OpPat(p.sub, OpPat(p.sub, A, X), B), sub(aMinusB, xR), false),

			// move constants across subtractions
			// (X + A) - Y -> (X - Y) + A
			rule("addsub", OpPat(p.sub, OpPat(p.add, X, A), Y), add(sub(xR, yR), aR), false),
			// (A + X) - Y -> (X - Y) + A
			rule("addsub", OpPat(p.sub, OpPat(p.add, A, X), Y), add(sub(xR, yR), aR), false),
			// X - (Y + A) -> (X - Y) - A
			rule("addsub", OpPat(p.sub, X, OpPat(p.add, Y, A)), sub(sub(xR, yR), aR), false),
			// X - (A + Y) -> (X - Y) - A
			rule("addsub", OpPat(p.sub, X, OpPat(p.add, A, Y)), sub(sub(xR, yR), aR), false),
		)
	}
	return rules
}
