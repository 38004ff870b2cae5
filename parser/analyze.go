package parser

import (
	"fmt"

	"github.com/nilmonster/ldgv/ldgv"
)

// specialForms dispatches list forms on their head symbol.  Lists with
// any other head are applications.
var specialForms map[string]func(*snode) (*ldgv.Expr, error)

func init() {
	specialForms = map[string]func(*snode) (*ldgv.Expr, error){
		"+":      formBinop,
		"-":      formBinop,
		"*":      formBinop,
		"/":      formBinop,
		"neg":    formUnary(ldgv.Neg),
		"succ":   formUnary(ldgv.Succ),
		"fst":    formUnary(ldgv.Fst),
		"snd":    formUnary(ldgv.Snd),
		"fork":   formUnary(ldgv.Fork),
		"send":   formUnary(ldgv.Send),
		"recv":   formUnary(ldgv.Recv),
		"new":    formNew,
		"let":    formLet,
		"lets":   formLets,
		"pair":   formPair,
		"lambda": formLambda,
		"case":   formCase,
		"natrec": formNatRec,
	}
}

func analyzeExpr(n *snode) (*ldgv.Expr, error) {
	switch n.kind {
	case snInt:
		return ldgv.Int(n.num), nil
	case snLabel:
		return ldgv.Label(n.sym), nil
	case snSym:
		return ldgv.Var(n.sym), nil
	case snList:
		if len(n.kids) == 0 {
			return ldgv.Unit(), nil
		}
		head := n.kids[0]
		if head.kind == snSym {
			if head.sym == "val" {
				return nil, fmt.Errorf("val declaration not allowed here: %s", n)
			}
			if form, ok := specialForms[head.sym]; ok {
				return form(n)
			}
		}
		return analyzeApp(n)
	}
	return nil, fmt.Errorf("unexpected syntax: %s", n)
}

// analyzeDecl converts (val name (param...) result? body).
func analyzeDecl(n *snode) (*ldgv.Decl, error) {
	kids := n.kids
	if len(kids) < 4 || len(kids) > 5 {
		return nil, fmt.Errorf("val expects a name, parameter list and body: %s", n)
	}
	if kids[1].kind != snSym {
		return nil, fmt.Errorf("val name is not a symbol: %s", kids[1])
	}
	decl := &ldgv.Decl{Name: kids[1].sym}
	params, err := analyzeParams(kids[2])
	if err != nil {
		return nil, err
	}
	decl.Params = params
	body := kids[len(kids)-1]
	if len(kids) == 5 {
		if kids[3].kind != snSym {
			return nil, fmt.Errorf("val result annotation is not a symbol: %s", kids[3])
		}
		decl.Result = kids[3].sym
	}
	decl.Body, err = analyzeExpr(body)
	if err != nil {
		return nil, err
	}
	return decl, nil
}

// analyzeParams accepts bare symbols and (name annotation) pairs.
func analyzeParams(n *snode) ([]ldgv.Param, error) {
	if n.kind != snList {
		return nil, fmt.Errorf("parameter list is not a list: %s", n)
	}
	var params []ldgv.Param
	for _, k := range n.kids {
		switch {
		case k.kind == snSym:
			params = append(params, ldgv.Param{Name: k.sym})
		case k.kind == snList && len(k.kids) == 2 &&
			k.kids[0].kind == snSym && k.kids[1].kind == snSym:
			params = append(params, ldgv.Param{Name: k.kids[0].sym, Annot: k.kids[1].sym})
		default:
			return nil, fmt.Errorf("bad parameter: %s", k)
		}
	}
	return params, nil
}

// analyzeApp folds (f a b ...) into nested single-argument
// applications.
func analyzeApp(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) < 2 {
		return nil, fmt.Errorf("application expects an argument: %s", n)
	}
	e, err := analyzeExpr(n.kids[0])
	if err != nil {
		return nil, err
	}
	for _, k := range n.kids[1:] {
		arg, err := analyzeExpr(k)
		if err != nil {
			return nil, err
		}
		e = ldgv.App(e, arg)
	}
	return e, nil
}

func formBinop(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) != 3 {
		return nil, fmt.Errorf("%s expects two arguments (got %d)", n.kids[0].sym, len(n.kids)-1)
	}
	e1, err := analyzeExpr(n.kids[1])
	if err != nil {
		return nil, err
	}
	e2, err := analyzeExpr(n.kids[2])
	if err != nil {
		return nil, err
	}
	return ldgv.Binop(n.kids[0].sym, e1, e2), nil
}

func formUnary(build func(*ldgv.Expr) *ldgv.Expr) func(*snode) (*ldgv.Expr, error) {
	return func(n *snode) (*ldgv.Expr, error) {
		if len(n.kids) != 2 {
			return nil, fmt.Errorf("%s expects one argument (got %d)", n.kids[0].sym, len(n.kids)-1)
		}
		e, err := analyzeExpr(n.kids[1])
		if err != nil {
			return nil, err
		}
		return build(e), nil
	}
}

func formNew(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) != 1 {
		return nil, fmt.Errorf("new expects no arguments (got %d)", len(n.kids)-1)
	}
	return ldgv.New(), nil
}

func formLet(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) != 4 || n.kids[1].kind != snSym {
		return nil, fmt.Errorf("let expects a symbol and two expressions: %s", n)
	}
	e1, err := analyzeExpr(n.kids[2])
	if err != nil {
		return nil, err
	}
	e2, err := analyzeExpr(n.kids[3])
	if err != nil {
		return nil, err
	}
	return ldgv.Let(n.kids[1].sym, e1, e2), nil
}

func formLets(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) != 5 || n.kids[1].kind != snSym || n.kids[2].kind != snSym {
		return nil, fmt.Errorf("lets expects two symbols and two expressions: %s", n)
	}
	e1, err := analyzeExpr(n.kids[3])
	if err != nil {
		return nil, err
	}
	e2, err := analyzeExpr(n.kids[4])
	if err != nil {
		return nil, err
	}
	return ldgv.LetPair(n.kids[1].sym, n.kids[2].sym, e1, e2), nil
}

func formPair(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) != 4 || n.kids[1].kind != snSym {
		return nil, fmt.Errorf("pair expects a symbol and two expressions: %s", n)
	}
	e1, err := analyzeExpr(n.kids[2])
	if err != nil {
		return nil, err
	}
	e2, err := analyzeExpr(n.kids[3])
	if err != nil {
		return nil, err
	}
	return ldgv.Pair(n.kids[1].sym, e1, e2), nil
}

// formLambda accepts multiple parameters and curries them into nested
// single-parameter lambdas.
func formLambda(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) != 3 {
		return nil, fmt.Errorf("lambda expects a parameter list and a body: %s", n)
	}
	params, err := analyzeParams(n.kids[1])
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("lambda expects at least one parameter: %s", n)
	}
	body, err := analyzeExpr(n.kids[2])
	if err != nil {
		return nil, err
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = ldgv.Lambda(params[i].Name, body)
	}
	return body, nil
}

func formCase(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) < 3 {
		return nil, fmt.Errorf("case expects a scrutinee and at least one branch: %s", n)
	}
	e, err := analyzeExpr(n.kids[1])
	if err != nil {
		return nil, err
	}
	var branches []ldgv.Branch
	for _, k := range n.kids[2:] {
		if k.kind != snList || len(k.kids) != 2 || k.kids[0].kind != snLabel {
			return nil, fmt.Errorf("bad case branch: %s", k)
		}
		body, err := analyzeExpr(k.kids[1])
		if err != nil {
			return nil, err
		}
		branches = append(branches, ldgv.Branch{Label: k.kids[0].sym, Body: body})
	}
	return ldgv.Case(e, branches), nil
}

func formNatRec(n *snode) (*ldgv.Expr, error) {
	if len(n.kids) != 5 {
		return nil, fmt.Errorf("natrec expects an index, a base, two binders and a step: %s", n)
	}
	binders := n.kids[3]
	if binders.kind != snList || len(binders.kids) != 2 ||
		binders.kids[0].kind != snSym || binders.kids[1].kind != snSym {
		return nil, fmt.Errorf("natrec binders must be two symbols: %s", binders)
	}
	e, err := analyzeExpr(n.kids[1])
	if err != nil {
		return nil, err
	}
	ez, err := analyzeExpr(n.kids[2])
	if err != nil {
		return nil, err
	}
	es, err := analyzeExpr(n.kids[4])
	if err != nil {
		return nil, err
	}
	return ldgv.NatRec(e, ez, binders.kids[0].sym, binders.kids[1].sym, es), nil
}
