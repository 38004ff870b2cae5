/*
Package parser parses ldgv programs.  The concrete syntax is
S-expressions:

	decl   := '(' 'val' <symbol> '(' <param>* ')' <symbol>? <expr> ')'
	param  := <symbol> | '(' <symbol> <symbol> ')'
	expr   := '(' <form> ')' | <int> | <label> | <symbol> | '(' ')'
	label  := \' <symbol>
	int    := /[+-]?[0-9]+/

Forms are let, lets, pair, fst, snd, lambda, fork, new, send, recv,
case, natrec, the arithmetic operators and application.  Parameter and
result annotations are carried through but never checked.
*/
package parser

import (
	"fmt"
	"strconv"

	"github.com/nilmonster/ldgv/ldgv"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeLabel
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeLabel:   "LABEL",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// Form is a single top-level form, either a declaration or a bare
// expression.  Exactly one of Decl and Expr is set.
type Form struct {
	Decl *ldgv.Decl
	Expr *ldgv.Expr
}

// Parse parses a sequence of top-level forms from text.
func Parse(text []byte) ([]Form, error) {
	nodes, err := parseNodes(text)
	if err != nil {
		return nil, err
	}
	var forms []Form
	for _, n := range nodes {
		if n.isDecl() {
			decl, err := analyzeDecl(n)
			if err != nil {
				return nil, err
			}
			forms = append(forms, Form{Decl: decl})
			continue
		}
		expr, err := analyzeExpr(n)
		if err != nil {
			return nil, err
		}
		forms = append(forms, Form{Expr: expr})
	}
	return forms, nil
}

// ParseProgram parses a program, a sequence of val declarations.
func ParseProgram(text []byte) ([]*ldgv.Decl, error) {
	forms, err := Parse(text)
	if err != nil {
		return nil, err
	}
	decls := make([]*ldgv.Decl, len(forms))
	for i, form := range forms {
		if form.Decl == nil {
			return nil, fmt.Errorf("expected declaration: %s", form.Expr)
		}
		decls[i] = form.Decl
	}
	return decls, nil
}

// ParseExpr parses a single expression from text.
func ParseExpr(text []byte) (*ldgv.Expr, error) {
	nodes, err := parseNodes(text)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no expression parsed")
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("more than one expression parsed (%d)", len(nodes))
	}
	return analyzeExpr(nodes[0])
}

func parseNodes(text []byte) ([]*snode, error) {
	s := parsec.NewScanner(text)
	parser := newParsecParser()

	var nodes []*snode
	root, s := parser(s)
	for root != nil {
		n := getSNode(root)
		if n != nil {
			nodes = append(nodes, n)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return nil, fmt.Errorf("syntax error at offset %d", s.GetCursor())
	}
	for _, n := range nodes {
		if err := n.check(); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	number := parsec.Token(`[+-]?[0-9]+`, "NUMBER")
	symbol := parsec.Token(`(?:\pL|[_+\-*/\=<>!&~%?])(?:\pL|[0-9]|[_+\-*/\=<>!&~%?])*`, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		number,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(astNode(nodeSExpr), openP, exprList, closeP)
	label := parsec.And(astNode(nodeLabel), q, &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, label)
	return expr
}

const (
	snInvalid snodeKind = iota
	snSym
	snInt
	snLabel
	snList
	snBad // carries a deferred parse error in sym
)

type snodeKind uint

// snode is the surface syntax tree handed to analysis.
type snode struct {
	kind snodeKind
	sym  string
	num  int
	kids []*snode
}

func (n *snode) isDecl() bool {
	return n.kind == snList && len(n.kids) > 0 &&
		n.kids[0].kind == snSym && n.kids[0].sym == "val"
}

// check reports the first deferred parse error in n, if any.
func (n *snode) check() error {
	if n.kind == snBad {
		return fmt.Errorf("%s", n.sym)
	}
	for _, k := range n.kids {
		if err := k.check(); err != nil {
			return err
		}
	}
	return nil
}

func (n *snode) String() string {
	switch n.kind {
	case snSym:
		return n.sym
	case snInt:
		return strconv.Itoa(n.num)
	case snLabel:
		return "'" + n.sym
	case snList:
		s := "("
		for i, k := range n.kids {
			if i > 0 {
				s += " "
			}
			s += k.String()
		}
		return s + ")"
	default:
		return fmt.Sprintf("%#v", n)
	}
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return &snode{kind: snBad, sym: fmt.Sprintf("unexpected token: %v", nodes[0])}
		}
		switch term.Name {
		case "NUMBER":
			x, err := strconv.Atoi(term.Value)
			if err != nil {
				return &snode{kind: snBad, sym: fmt.Sprintf("bad number: %v (%s)", err, term.Value)}
			}
			return &snode{kind: snInt, num: x}
		case "SYMBOL":
			return &snode{kind: snSym, sym: term.Value}
		}
		return &snode{kind: snBad, sym: fmt.Sprintf("unexpected token: %s", term.Value)}
	case nodeSExpr:
		list := &snode{kind: snList}
		// We don't want terminal parsec nodes '(' and ')'
		for _, c := range nodes {
			if sn, ok := c.(*snode); ok {
				list.kids = append(list.kids, sn)
			}
		}
		return list
	case nodeLabel:
		// We don't want the terminal parsec node for the quote
		c, ok := nodes[len(nodes)-1].(*snode)
		if !ok || c.kind != snSym {
			return &snode{kind: snBad, sym: "label expected after '"}
		}
		return &snode{kind: snLabel, sym: c.sym}
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getSNode(root parsec.ParsecNode) *snode {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// we can be here if there is only whitespace on a line
		return nil
	}
	n, ok := nodes[0].(*snode)
	if !ok {
		// we can be here if there is only a comment on a line
		return nil
	}
	return n
}
