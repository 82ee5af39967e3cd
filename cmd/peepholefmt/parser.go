package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/jacky860226/evmsimplify/core/peephole"
)

// symbolTable assigns a stable integer id to each distinct bare identifier
// seen while parsing, so that two occurrences of the same name parse into
// structurally equal VARIABLE nodes (required for non-linear patterns like
// AND(X,X) to recognize repeated operands) while distinct names stay
// distinct. It also lets the printer recover the original name.
type symbolTable struct {
	idOf   map[string]uint64
	nameOf []string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{idOf: make(map[string]uint64)}
}

func (t *symbolTable) id(name string) uint64 {
	if id, ok := t.idOf[name]; ok {
		return id
	}
	id := uint64(len(t.nameOf))
	t.idOf[name] = id
	t.nameOf = append(t.nameOf, name)
	return id
}

func (t *symbolTable) name(id uint64) string {
	if id < uint64(len(t.nameOf)) {
		return t.nameOf[id]
	}
	return fmt.Sprintf("var%d", id)
}

// parseExpr parses a tiny s-expression form of one ExprNode: a numeric
// literal is a Constant, a bare identifier is an opaque VARIABLE leaf, and
// "(OPNAME child ...)" is an Op node. Whitespace is insignificant; parens
// must balance.
func parseExpr(src string, syms *symbolTable) (peephole.ExprNode, error) {
	toks := tokenize(src)
	if len(toks) == 0 {
		return peephole.ExprNode{}, fmt.Errorf("peepholefmt: empty expression")
	}
	p := &parser{toks: toks, syms: syms}
	node, err := p.parseOne()
	if err != nil {
		return peephole.ExprNode{}, err
	}
	if p.pos != len(p.toks) {
		return peephole.ExprNode{}, fmt.Errorf("peepholefmt: trailing input after expression: %q", strings.Join(p.toks[p.pos:], " "))
	}
	return node, nil
}

func tokenize(src string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range src {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

type parser struct {
	toks []string
	pos  int
	syms *symbolTable
}

func (p *parser) parseOne() (peephole.ExprNode, error) {
	if p.pos >= len(p.toks) {
		return peephole.ExprNode{}, fmt.Errorf("peepholefmt: unexpected end of input")
	}
	tok := p.toks[p.pos]
	if tok != "(" {
		p.pos++
		return p.parseAtom(tok)
	}
	p.pos++ // consume "("
	if p.pos >= len(p.toks) {
		return peephole.ExprNode{}, fmt.Errorf("peepholefmt: unterminated ( ")
	}
	opName := p.toks[p.pos]
	if opName == "(" || opName == ")" {
		return peephole.ExprNode{}, fmt.Errorf("peepholefmt: expected an opcode name, got %q", opName)
	}
	p.pos++

	op, ok := peephole.OpcodeByName(strings.ToUpper(opName))
	if !ok {
		return peephole.ExprNode{}, fmt.Errorf("peepholefmt: unknown opcode %q", opName)
	}

	var children []peephole.ExprNode
	for {
		if p.pos >= len(p.toks) {
			return peephole.ExprNode{}, fmt.Errorf("peepholefmt: unterminated (%s ...)", opName)
		}
		if p.toks[p.pos] == ")" {
			p.pos++
			break
		}
		child, err := p.parseOne()
		if err != nil {
			return peephole.ExprNode{}, err
		}
		children = append(children, child)
	}

	if want := op.Arity(); len(children) != want {
		return peephole.ExprNode{}, fmt.Errorf("%w: %s wants %d children, got %d", peephole.ErrArityMismatch, op, want, len(children))
	}
	return peephole.NewOp(op, children...), nil
}

func (p *parser) parseAtom(tok string) (peephole.ExprNode, error) {
	if n, ok := new(big.Int).SetString(tok, 0); ok {
		if n.Sign() < 0 {
			return peephole.ExprNode{}, fmt.Errorf("peepholefmt: negative literal %q not supported, Word is unsigned", tok)
		}
		return peephole.NewConstant(peephole.WordFromBytes(n.Bytes())), nil
	}
	id := p.syms.id(tok)
	return peephole.NewOp(peephole.VARIABLE, peephole.NewConstant(peephole.WordFromUint64(id))), nil
}
