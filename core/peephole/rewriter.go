package peephole

import "github.com/ethereum/go-ethereum/log"

// SideEffectPredicate reports whether a subtree may be discarded without
// changing observable program behavior. The Rewriter never inspects
// ExprNode contents to decide this itself — side-effect-freedom depends on
// information (e.g. which opcode was originally present before the caller
// split it into an S-prefixed duplicate) that lives outside this package's
// scope.
type SideEffectPredicate func(ExprNode) bool

// RewriterConfig is the one configurable knob the engine exposes, mirroring
// the teacher's OpCodeProcessorConfig: whether to pay slog's
// argument-formatting cost for a log.Trace call on every successful match.
// Production call sites on the hot rewrite path leave this false.
type RewriterConfig struct {
	TraceRewrites bool
}

// Rewriter applies a RuleCatalog to single expression nodes. It is purely
// functional and holds no mutable state beyond its configuration; multiple
// goroutines may share one Rewriter (and one RuleCatalog) and rewrite
// disjoint expressions concurrently without synchronization.
type Rewriter struct {
	catalog *RuleCatalog
	cfg     RewriterConfig
}

// NewRewriter builds a Rewriter bound to catalog.
func NewRewriter(catalog *RuleCatalog, cfg RewriterConfig) *Rewriter {
	return &Rewriter{catalog: catalog, cfg: cfg}
}

// Apply attempts to simplify subject using the first catalog rule that
// matches. It does not recurse into subject's children — the caller is
// responsible for bottom-up traversal (spec.md §4.4).
//
// sideEffectSafe is consulted only for rules with Removable == true, and
// only for the AnyExpression placeholders such a rule bound on its LHS but
// does not reference on its RHS: applying the rule discards those bound
// subtrees. The rewrite is legal only if sideEffectSafe reports each of them
// free of observable effects; otherwise this rule is skipped and the next
// catalog entry is tried. A Removable rule whose RHS references every bound
// placeholder (AND(X,X) -> X, OR(X,X) -> X) fires without consulting it.
//
// Apply returns (rewritten, true) on a successful match, or (ExprNode{},
// false) — "no change" — if no rule applies. That is not an error: per
// spec.md §7, "no rule applies" is the expected steady state once a
// bottom-up pass reaches a fixed point.
func (r *Rewriter) Apply(subject ExprNode, sideEffectSafe SideEffectPredicate) (ExprNode, bool) {
	for i, rl := range r.catalog.rules {
		b, ok := Match(rl.LHS, subject)
		if !ok {
			continue
		}
		if rl.Removable && !allDiscardedOperandsSafe(rl, b, sideEffectSafe) {
			rewriteSkippedCounter.Inc(1)
			if r.cfg.TraceRewrites {
				log.Trace("peephole: skipped removable rule, discarded operand not proven side-effect-free",
					"rule", i, "subject", subject)
			}
			continue
		}
		result := rl.RHS.Instantiate(b)
		countMatch(rl.family)
		if r.cfg.TraceRewrites {
			log.Trace("peephole: rule matched", "rule", i, "family", rl.family, "subject", subject, "result", result)
		}
		return result, true
	}
	return ExprNode{}, false
}

// allDiscardedOperandsSafe checks every AnyExpression placeholder the rule
// bound on its LHS but did not reference on its RHS: each such binding must
// be proven side-effect-free before the rule may fire.
func allDiscardedOperandsSafe(rl Rule, b Binding, safe SideEffectPredicate) bool {
	for _, id := range []PlaceholderID{PlaceholderX, PlaceholderY} {
		node, bound := b.Lookup(id)
		if !bound {
			continue
		}
		if referencesPlaceholder(rl.RHS, id) {
			continue
		}
		if safe == nil || !safe(node) {
			return false
		}
	}
	return true
}

// referencesPlaceholder reports whether rhs's instruction tree contains a
// Ref to id, i.e. whether the binding survives into the replacement.
func referencesPlaceholder(rhs RHS, id PlaceholderID) bool {
	switch rhs.kind {
	case rhsRef:
		return rhs.ref == id
	case rhsLit:
		return false
	case rhsBuild:
		for _, c := range rhs.children {
			if referencesPlaceholder(c, id) {
				return true
			}
		}
		return false
	case rhsFold:
		for _, o := range rhs.operands {
			if referencesPlaceholder(o, id) {
				return true
			}
		}
		return false
	case rhsCondLt:
		return referencesPlaceholder(*rhs.condLeft, id) ||
			referencesPlaceholder(*rhs.condRight, id) ||
			referencesPlaceholder(*rhs.condThen, id) ||
			referencesPlaceholder(*rhs.condElse, id)
	default:
		return false
	}
}
