// Command peepholefmt is a small smoke-test harness for the peephole
// package: it parses one expression given on the command line, rewrites it
// to a local fixed point, and prints the result. It is not the fixed-point
// assembly-stream driver the peephole engine itself stays agnostic of; it
// only exercises a single expression end to end.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"

	"github.com/jacky860226/evmsimplify/core/peephole"
)

func main() {
	var (
		exprArg string
		trace   bool
	)
	flag.StringVar(&exprArg, "expr", "", `expression to simplify, e.g. "(ADD (MUL x 2) 3)"`)
	flag.BoolVar(&trace, "trace", false, "log each rewrite as it is applied")
	flag.Parse()

	if exprArg == "" {
		usage()
		fatal(errors.New("-expr is required"))
	}

	syms := newSymbolTable()
	node, err := parseExpr(exprArg, syms)
	if err != nil {
		fatal(err)
	}

	hash := crypto.Keccak256Hash([]byte(exprArg))
	log.Debug("peepholefmt: parsed expression", "input", exprArg, "hash", hash)

	rw := peephole.NewRewriter(peephole.NewRuleCatalog(), peephole.RewriterConfig{TraceRewrites: trace})
	simplified := simplify(rw, node)

	fmt.Println(render(simplified, syms))
}

// simplify walks node bottom-up, rewriting each node to a local fixed point
// before rewriting its parent, and repeats the whole pass until the tree
// stops changing. A rewrite of a node can introduce new structure above a
// subtree that already reached its own fixed point (associativity sinking,
// for instance), so a single bottom-up sweep is not always enough.
func simplify(rw *peephole.Rewriter, node peephole.ExprNode) peephole.ExprNode {
	const maxPasses = 64
	for i := 0; i < maxPasses; i++ {
		next := simplifyOnce(rw, node)
		if next.Equal(node) {
			return next
		}
		node = next
	}
	log.Warn("peepholefmt: gave up after reaching the pass limit without a fixed point", "passes", maxPasses)
	return node
}

func simplifyOnce(rw *peephole.Rewriter, node peephole.ExprNode) peephole.ExprNode {
	if node.IsConstant() {
		return node
	}
	children := node.Children()
	newChildren := make([]peephole.ExprNode, len(children))
	for i, c := range children {
		newChildren[i] = simplifyOnce(rw, c)
	}
	node = peephole.NewOp(node.Op(), newChildren...)

	for {
		next, ok := rw.Apply(node, isSideEffectSafe)
		if !ok {
			return node
		}
		node = next
	}
}

// isSideEffectSafe treats every VARIABLE leaf as potentially side-effecting
// (it stands for a subexpression this command cannot see into), and
// everything built only from constants and known opcodes as safe to
// discard.
func isSideEffectSafe(e peephole.ExprNode) bool {
	if e.IsConstant() {
		return true
	}
	if e.Op() == peephole.VARIABLE {
		return false
	}
	for _, c := range e.Children() {
		if !isSideEffectSafe(c) {
			return false
		}
	}
	return true
}

func render(e peephole.ExprNode, syms *symbolTable) string {
	if e.IsConstant() {
		return e.ConstantValue().String()
	}
	if e.Op() == peephole.VARIABLE {
		return syms.name(e.Children()[0].ConstantValue().Uint64())
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(e.Op().String())
	for _, c := range e.Children() {
		b.WriteByte(' ')
		b.WriteString(render(c, syms))
	}
	b.WriteByte(')')
	return b.String()
}

func usage() {
	fmt.Fprintln(os.Stderr, "peepholefmt - simplify one EVM-style expression")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, `  peepholefmt -expr "(ADD (MUL x 2) 3)"`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "peepholefmt: %v\n", err)
	os.Exit(1)
}
