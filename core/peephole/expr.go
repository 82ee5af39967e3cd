package peephole

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/log"
)

// ErrArityMismatch is the error that callers which check arity themselves
// before building a node (see cmd/peepholefmt's parser) return instead of
// triggering the fatal assertion NewOp performs. This package has no
// constructor that returns it.
var ErrArityMismatch = errors.New("peephole: expression node arity does not match opcode")

// exprKind distinguishes the two ExprNode variants.
type exprKind uint8

const (
	kindConstant exprKind = iota
	kindOp
)

// ExprNode is an immutable node of the expression tree the rewriter
// consumes and produces. It is either a Constant(Word) leaf or an
// Op(Opcode, children) interior node whose child count matches the
// opcode's declared arity.
type ExprNode struct {
	kind     exprKind
	constant Word
	op       Opcode
	children []ExprNode
}

// NewConstant builds a Constant leaf.
func NewConstant(w Word) ExprNode {
	return ExprNode{kind: kindConstant, constant: w}
}

// NewOp builds an Op(opcode, children) node. A child count that disagrees
// with opcode.Arity() is a contract violation by the caller: this package
// performs no silent recovery, matching spec.md's "malformed input" failure
// mode. Callers that cannot guarantee arity up front (e.g. a parser reading
// untrusted text) should validate with opcode.Arity() themselves and return
// ErrArityMismatch instead of calling NewOp.
func NewOp(op Opcode, children ...ExprNode) ExprNode {
	if want := op.Arity(); len(children) != want {
		log.Error("peephole: arity contract violated constructing Op node",
			"opcode", op, "want", want, "got", len(children))
		panic(fmt.Sprintf("peephole: opcode %s requires %d children, got %d", op, want, len(children)))
	}
	return ExprNode{kind: kindOp, op: op, children: append([]ExprNode(nil), children...)}
}

// IsConstant reports whether the node is a Constant leaf.
func (e ExprNode) IsConstant() bool { return e.kind == kindConstant }

// ConstantValue returns the node's Word value. Only valid when IsConstant
// is true.
func (e ExprNode) ConstantValue() Word { return e.constant }

// Op returns the node's opcode. Only valid when IsConstant is false.
func (e ExprNode) Op() Opcode { return e.op }

// Children returns the node's children. Nil for Constant leaves and
// zero-arity opcodes.
func (e ExprNode) Children() []ExprNode { return e.children }

// Equal reports structural equality: same variant, same opcode/word, and
// recursively equal children in order. Two independently constructed but
// shape-identical trees compare equal; this is the equality non-linear
// pattern matching (§4.2) relies on.
func (e ExprNode) Equal(o ExprNode) bool {
	if e.kind != o.kind {
		return false
	}
	if e.kind == kindConstant {
		return e.constant.Eq(o.constant)
	}
	if e.op != o.op || len(e.children) != len(o.children) {
		return false
	}
	for i := range e.children {
		if !e.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// String renders a debug s-expression form, e.g. "(ADD (NOT 1) 3)".
func (e ExprNode) String() string {
	if e.kind == kindConstant {
		return e.constant.String()
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(e.op.String())
	for _, c := range e.children {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}
