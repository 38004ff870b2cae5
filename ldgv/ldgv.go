package ldgv

import (
	"bytes"
	"fmt"
	"strconv"
)

// ExprType is the type of an Expr node.
type ExprType uint

// Possible ExprType values
const (
	EInvalid ExprType = iota
	EUnit
	EVar
	ELabel
	EInt
	EBinop
	ENeg
	ESucc
	ELet
	ELetPair
	EPair
	EFst
	ESnd
	ELambda
	EApp
	EFork
	ENew
	ESend
	ERecv
	ECase
	ENatRec
)

var exprTypeStrings = []string{
	EInvalid: "INVALID",
	EUnit:    "unit",
	EVar:     "variable",
	ELabel:   "label",
	EInt:     "int",
	EBinop:   "binop",
	ENeg:     "neg",
	ESucc:    "succ",
	ELet:     "let",
	ELetPair: "lets",
	EPair:    "pair",
	EFst:     "fst",
	ESnd:     "snd",
	ELambda:  "lambda",
	EApp:     "application",
	EFork:    "fork",
	ENew:     "new",
	ESend:    "send",
	ERecv:    "recv",
	ECase:    "case",
	ENatRec:  "natrec",
}

func (t ExprType) String() string {
	if int(t) >= len(exprTypeStrings) {
		return exprTypeStrings[EInvalid]
	}
	return exprTypeStrings[t]
}

// Branch is one alternative of a case expression.
type Branch struct {
	Label string
	Body  *Expr
}

// Expr is an expression node.  The meaning of Sym, Sym2, Num, Op, Cells
// and Branches depends on Type.  Cells holds sub-expressions in
// evaluation order.  Expressions are immutable once constructed.
type Expr struct {
	Type     ExprType
	Sym      string // variable name, binder, or label
	Sym2     string // second binder (lets, natrec)
	Num      int    // integer literal
	Op       string // binary operator lexeme: + - * /
	Cells    []*Expr
	Branches []Branch
}

// Unit returns an Expr representing the unit literal.
func Unit() *Expr {
	return &Expr{Type: EUnit}
}

// Var returns an Expr referencing the variable name.
func Var(name string) *Expr {
	return &Expr{Type: EVar, Sym: name}
}

// Label returns an Expr representing the label literal 'name.
func Label(name string) *Expr {
	return &Expr{Type: ELabel, Sym: name}
}

// Int returns an Expr representing the integer literal x.
func Int(x int) *Expr {
	return &Expr{Type: EInt, Num: x}
}

// Binop returns an Expr applying the binary arithmetic operator op.
func Binop(op string, e1, e2 *Expr) *Expr {
	return &Expr{Type: EBinop, Op: op, Cells: []*Expr{e1, e2}}
}

// Neg returns an Expr negating e.
func Neg(e *Expr) *Expr {
	return &Expr{Type: ENeg, Cells: []*Expr{e}}
}

// Succ returns an Expr computing the successor of e.
func Succ(e *Expr) *Expr {
	return &Expr{Type: ESucc, Cells: []*Expr{e}}
}

// Let returns an Expr binding name to e1 while evaluating e2.
func Let(name string, e1, e2 *Expr) *Expr {
	return &Expr{Type: ELet, Sym: name, Cells: []*Expr{e1, e2}}
}

// LetPair returns an Expr deconstructing the pair e1 into n1 and n2
// while evaluating e2.
func LetPair(n1, n2 string, e1, e2 *Expr) *Expr {
	return &Expr{Type: ELetPair, Sym: n1, Sym2: n2, Cells: []*Expr{e1, e2}}
}

// Pair returns an Expr constructing a dependent pair.  The first
// component's value is bound to name while e2 evaluates.
func Pair(name string, e1, e2 *Expr) *Expr {
	return &Expr{Type: EPair, Sym: name, Cells: []*Expr{e1, e2}}
}

// Fst returns an Expr projecting the first component of e.
func Fst(e *Expr) *Expr {
	return &Expr{Type: EFst, Cells: []*Expr{e}}
}

// Snd returns an Expr projecting the second component of e.
func Snd(e *Expr) *Expr {
	return &Expr{Type: ESnd, Cells: []*Expr{e}}
}

// Lambda returns an Expr abstracting param over body.
func Lambda(param string, body *Expr) *Expr {
	return &Expr{Type: ELambda, Sym: param, Cells: []*Expr{body}}
}

// App returns an Expr applying f to arg.
func App(f, arg *Expr) *Expr {
	return &Expr{Type: EApp, Cells: []*Expr{f, arg}}
}

// Fork returns an Expr forking the evaluation of e.
func Fork(e *Expr) *Expr {
	return &Expr{Type: EFork, Cells: []*Expr{e}}
}

// New returns an Expr allocating a fresh channel pair.
func New() *Expr {
	return &Expr{Type: ENew}
}

// Send returns an Expr evaluating e to a channel endpoint and yielding
// its send closure.
func Send(e *Expr) *Expr {
	return &Expr{Type: ESend, Cells: []*Expr{e}}
}

// Recv returns an Expr receiving on the channel endpoint e.
func Recv(e *Expr) *Expr {
	return &Expr{Type: ERecv, Cells: []*Expr{e}}
}

// Case returns an Expr dispatching on the label value of e.
func Case(e *Expr, branches []Branch) *Expr {
	return &Expr{Type: ECase, Cells: []*Expr{e}, Branches: branches}
}

// NatRec returns an Expr for bounded recursion over the natural number
// e.  At index zero the result is ez; at a positive index n the step es
// is evaluated with id1 bound to n and id2 bound to the result for n-1.
func NatRec(e, ez *Expr, id1, id2 string, es *Expr) *Expr {
	return &Expr{Type: ENatRec, Sym: id1, Sym2: id2, Cells: []*Expr{e, ez, es}}
}

func (e *Expr) String() string {
	switch e.Type {
	case EUnit:
		return "()"
	case EVar:
		return e.Sym
	case ELabel:
		return "'" + e.Sym
	case EInt:
		return strconv.Itoa(e.Num)
	case EBinop:
		return formString(e.Op, e.Cells...)
	case ENeg:
		return formString("neg", e.Cells...)
	case ESucc:
		return formString("succ", e.Cells...)
	case ELet:
		return fmt.Sprintf("(let %s %s %s)", e.Sym, e.Cells[0], e.Cells[1])
	case ELetPair:
		return fmt.Sprintf("(lets %s %s %s %s)", e.Sym, e.Sym2, e.Cells[0], e.Cells[1])
	case EPair:
		return fmt.Sprintf("(pair %s %s %s)", e.Sym, e.Cells[0], e.Cells[1])
	case EFst:
		return formString("fst", e.Cells...)
	case ESnd:
		return formString("snd", e.Cells...)
	case ELambda:
		return fmt.Sprintf("(lambda (%s) %s)", e.Sym, e.Cells[0])
	case EApp:
		return fmt.Sprintf("(%s %s)", e.Cells[0], e.Cells[1])
	case EFork:
		return formString("fork", e.Cells...)
	case ENew:
		return "(new)"
	case ESend:
		return formString("send", e.Cells...)
	case ERecv:
		return formString("recv", e.Cells...)
	case ECase:
		var buf bytes.Buffer
		buf.WriteString("(case ")
		buf.WriteString(e.Cells[0].String())
		for _, b := range e.Branches {
			fmt.Fprintf(&buf, " ('%s %s)", b.Label, b.Body)
		}
		buf.WriteString(")")
		return buf.String()
	case ENatRec:
		return fmt.Sprintf("(natrec %s %s (%s %s) %s)",
			e.Cells[0], e.Cells[1], e.Sym, e.Sym2, e.Cells[2])
	default:
		return fmt.Sprintf("%#v", e)
	}
}

func formString(head string, cells ...*Expr) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(head)
	for _, c := range cells {
		buf.WriteString(" ")
		buf.WriteString(c.String())
	}
	buf.WriteString(")")
	return buf.String()
}
