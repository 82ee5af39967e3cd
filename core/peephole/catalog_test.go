package peephole

import "testing"

func TestNewRuleCatalogNonEmptyAndFamiliesPresent(t *testing.T) {
	cat := NewRuleCatalog()
	rules := cat.Rules()
	if len(rules) == 0 {
		t.Fatal("expected a non-empty rule catalog")
	}

	wantFamilies := []string{
		"fold", "identity", "self", "logical", "pow2mod",
		"addrmask", "boolnegate", "assoc", "addsub",
	}
	seen := make(map[string]int)
	for _, rl := range rules {
		seen[rl.family]++
	}
	for _, f := range wantFamilies {
		if seen[f] == 0 {
			t.Errorf("expected at least one rule in family %q, found none", f)
		}
	}
}

func TestPowerOfTwoModRuleCount(t *testing.T) {
	cat := NewRuleCatalog()
	count := 0
	for _, rl := range cat.Rules() {
		if rl.family == "pow2mod" {
			count++
		}
	}
	if count != 256 {
		t.Errorf("expected 256 pow2mod rules, got %d", count)
	}
}

func TestRulesLengthStableAcrossCalls(t *testing.T) {
	cat := NewRuleCatalog()
	total := len(cat.Rules())
	// Calling Rules() twice must not rebuild or mutate the catalog.
	if got := len(cat.Rules()); got != total {
		t.Errorf("Rules() length changed between calls: %d vs %d", total, got)
	}
}

// TestIdentityRuleRemovableFlags spot-checks a handful of the Removable
// flags the identity family assigns, since an incorrect flag would let the
// Rewriter silently drop a side-effecting subexpression.
func TestIdentityRuleRemovableFlags(t *testing.T) {
	cat := NewRuleCatalog()

	find := func(lhs ExprNode) (Rule, bool) {
		for _, rl := range cat.Rules() {
			if _, ok := Match(rl.LHS, lhs); ok {
				return rl, true
			}
		}
		return Rule{}, false
	}

	mulByZero := NewOp(MUL, NewOp(NOT, c(1)), c(0))
	rl, ok := find(mulByZero)
	if !ok {
		t.Fatal("expected a rule to match MUL(X,0)")
	}
	if !rl.Removable {
		t.Error("MUL(X,0) should be Removable, since X is discarded")
	}

	addZero := NewOp(ADD, NewOp(NOT, c(1)), c(0))
	rl, ok = find(addZero)
	if !ok {
		t.Fatal("expected a rule to match ADD(X,0)")
	}
	if rl.Removable {
		t.Error("ADD(X,0) should not be Removable: X survives into the result")
	}
}
