package main

import (
	"errors"
	"testing"

	"github.com/jacky860226/evmsimplify/core/peephole"
)

func TestParseExprConstantAndVariable(t *testing.T) {
	syms := newSymbolTable()
	node, err := parseExpr("(ADD x 3)", syms)
	if err != nil {
		t.Fatalf("parseExpr: %v", err)
	}
	if node.Op() != peephole.ADD {
		t.Fatalf("expected top-level ADD, got %v", node.Op())
	}
	children := node.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Op() != peephole.VARIABLE {
		t.Errorf("expected first child to be a VARIABLE leaf, got %v", children[0].Op())
	}
	if !children[1].IsConstant() || children[1].ConstantValue().Uint64() != 3 {
		t.Errorf("expected second child to be constant 3, got %v", children[1])
	}
}

func TestParseExprRepeatedIdentifierSharesSymbolID(t *testing.T) {
	syms := newSymbolTable()
	node, err := parseExpr("(AND x x)", syms)
	if err != nil {
		t.Fatalf("parseExpr: %v", err)
	}
	a, b := node.Children()[0], node.Children()[1]
	if !a.Equal(b) {
		t.Error("two occurrences of the same identifier should parse to structurally equal VARIABLE nodes")
	}
}

func TestParseExprDistinctIdentifiersDiffer(t *testing.T) {
	syms := newSymbolTable()
	node, err := parseExpr("(AND x y)", syms)
	if err != nil {
		t.Fatalf("parseExpr: %v", err)
	}
	a, b := node.Children()[0], node.Children()[1]
	if a.Equal(b) {
		t.Error("distinct identifiers should parse to distinct VARIABLE nodes")
	}
}

func TestParseExprArityMismatch(t *testing.T) {
	syms := newSymbolTable()
	_, err := parseExpr("(ADD 1)", syms)
	if !errors.Is(err, peephole.ErrArityMismatch) {
		t.Fatalf("expected ErrArityMismatch, got %v", err)
	}
}

func TestParseExprUnknownOpcode(t *testing.T) {
	syms := newSymbolTable()
	if _, err := parseExpr("(FROB 1 2)", syms); err == nil {
		t.Fatal("expected an error for an unknown opcode")
	}
}

func TestParseExprUnterminatedParen(t *testing.T) {
	syms := newSymbolTable()
	if _, err := parseExpr("(ADD 1 2", syms); err == nil {
		t.Fatal("expected an error for an unterminated expression")
	}
}

func TestRenderRoundTripsVariableNames(t *testing.T) {
	syms := newSymbolTable()
	node, err := parseExpr("(MUL x 2)", syms)
	if err != nil {
		t.Fatalf("parseExpr: %v", err)
	}
	if got, want := render(node, syms), "(MUL x 2)"; got != want {
		t.Errorf("render() = %q, want %q", got, want)
	}
}

func TestIsSideEffectSafe(t *testing.T) {
	syms := newSymbolTable()
	pureNode, _ := parseExpr("(ADD 1 2)", syms)
	if !isSideEffectSafe(pureNode) {
		t.Error("an all-constant expression should be side-effect safe")
	}

	varNode, _ := parseExpr("(ADD x 2)", syms)
	if isSideEffectSafe(varNode) {
		t.Error("an expression containing a VARIABLE leaf should not be considered side-effect safe")
	}
}
