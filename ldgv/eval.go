package ldgv

import (
	"fmt"
	"io"
	"os"
)

// MainName is the declaration a program starts from.
const MainName = "main"

// Runtime holds everything shared by the concurrent processes of one
// program run: the top-level environment, built once from the
// declarations and read-only afterwards, and the trace sink.
type Runtime struct {
	Globals *Env
	Trace   bool
	Stderr  io.Writer
}

// NewRuntime builds a Runtime from decls.  Every declaration name is
// bound to an unevaluated global; bodies only run when referenced.
func NewRuntime(decls []*Decl, config ...Config) *Runtime {
	env := NewEnv(nil)
	for _, d := range decls {
		env.Put(d.Name, GlobalVal(d))
	}
	rt := &Runtime{
		Globals: env,
		Stderr:  os.Stderr,
	}
	for _, fn := range config {
		fn(rt)
	}
	return rt
}

// RunMain resolves the declaration named main and returns its value.
func (rt *Runtime) RunMain() (*Val, error) {
	v := rt.Globals.Get(MainName)
	if v == nil {
		return nil, Errorf(ErrnoNoMain, "no main declaration")
	}
	return rt.Resolve(v.Decl, rt.Globals)
}

// Eval evaluates e in the scope of env and returns the resulting
// value.  Eval may block (recv) and may launch concurrent evaluations
// (fork).  A returned error is fatal to the calling process.
func (rt *Runtime) Eval(env *Env, e *Expr) (*Val, error) {
	if !rt.Trace {
		return rt.eval(env, e)
	}
	rt.tracef("eval %s", e)
	v, err := rt.eval(env, e)
	if err != nil {
		rt.tracef("eval %s fault: %v", e, err)
	} else {
		rt.tracef("eval %s => %s", e, v)
	}
	return v, err
}

func (rt *Runtime) eval(env *Env, e *Expr) (*Val, error) {
	switch e.Type {
	case EUnit:
		return UnitVal(), nil
	case EVar:
		v := env.Get(e.Sym)
		if v == nil {
			return nil, Errorf(ErrnoUnbound, "unbound symbol: %s", e.Sym)
		}
		if v.Type == VGlobal {
			// Globals are resolved fresh on every reference.
			return rt.Resolve(v.Decl, rt.Globals)
		}
		return v, nil
	case ELabel:
		return LabelVal(e.Sym), nil
	case EInt:
		return IntVal(e.Num), nil
	case EBinop:
		return rt.applyBinop(env, e.Op, e.Cells[0], e.Cells[1])
	case ENeg:
		// neg e == 0 - e
		x, err := rt.evalInt(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		return IntVal(0 - x), nil
	case ESucc:
		// succ e == 1 + e
		x, err := rt.evalInt(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		return IntVal(1 + x), nil
	case ELet:
		v1, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		scope := NewEnv(env)
		scope.Put(e.Sym, v1)
		return rt.Eval(scope, e.Cells[1])
	case ELetPair:
		v1, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if v1.Type != VPair {
			return nil, Errorf(ErrnoType, "lets on %s: %s", v1.Type, v1)
		}
		scope := NewEnv(env)
		scope.Put(e.Sym, v1.Fst)
		scope.Put(e.Sym2, v1.Snd)
		return rt.Eval(scope, e.Cells[1])
	case EPair:
		v1, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		// The second component may reference the first through e.Sym.
		scope := NewEnv(env)
		scope.Put(e.Sym, v1)
		v2, err := rt.Eval(scope, e.Cells[1])
		if err != nil {
			return nil, err
		}
		return PairVal(v1, v2), nil
	case EFst:
		v, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if v.Type != VPair {
			return nil, Errorf(ErrnoType, "fst on %s: %s", v.Type, v)
		}
		return v.Fst, nil
	case ESnd:
		v, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if v.Type != VPair {
			return nil, Errorf(ErrnoType, "snd on %s: %s", v.Type, v)
		}
		return v.Snd, nil
	case ELambda:
		param, body := e.Sym, e.Cells[0]
		return ClosureVal(func(arg *Val) (*Val, error) {
			scope := NewEnv(env)
			scope.Put(param, arg)
			return rt.Eval(scope, body)
		}), nil
	case EApp:
		// The argument is evaluated before the function.
		arg, err := rt.Eval(env, e.Cells[1])
		if err != nil {
			return nil, err
		}
		f, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if f.Type != VClosure {
			return nil, Errorf(ErrnoType, "application of %s: %s", f.Type, f)
		}
		return f.Fn(arg)
	case EFork:
		body := e.Cells[0]
		go func() {
			defer func() {
				if r := recover(); r != nil {
					rt.tracef("fork panic: %v", r)
				}
			}()
			_, err := rt.Eval(env, body)
			if err != nil {
				rt.tracef("fork fault: %v", err)
			}
		}()
		return UnitVal(), nil
	case ENew:
		a, b := NewChanPair()
		return PairVal(a, b), nil
	case ESend:
		c, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if c.Type != VChan {
			return nil, Errorf(ErrnoType, "send on %s: %s", c.Type, c)
		}
		return ClosureVal(func(payload *Val) (*Val, error) {
			c.Write.Enqueue(payload)
			rt.tracef("send %s", payload)
			return c, nil
		}), nil
	case ERecv:
		c, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if c.Type != VChan {
			return nil, Errorf(ErrnoType, "recv on %s: %s", c.Type, c)
		}
		v := c.Read.Dequeue()
		rt.tracef("recv %s", v)
		return PairVal(v, c), nil
	case ECase:
		v, err := rt.Eval(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if v.Type != VLabel {
			return nil, Errorf(ErrnoType, "case on %s: %s", v.Type, v)
		}
		for _, b := range e.Branches {
			if b.Label == v.Sym {
				return rt.Eval(env, b.Body)
			}
		}
		return nil, Errorf(ErrnoNoCase, "no matching case: '%s", v.Sym)
	case ENatRec:
		n, err := rt.evalInt(env, e.Cells[0])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, Errorf(ErrnoType, "natrec on negative number: %d", n)
		}
		return rt.natrec(env, n, e)
	default:
		return nil, Errorf(ErrnoPanic, "invalid expression: %s", e.Type)
	}
}

// natrec unrolls bounded recursion over the index n.  Index zero
// evaluates the base; index n first computes the result for n-1, then
// runs the step with e.Sym bound to n and e.Sym2 to the lower result.
func (rt *Runtime) natrec(env *Env, n int, e *Expr) (*Val, error) {
	if n == 0 {
		return rt.Eval(env, e.Cells[1])
	}
	lower, err := rt.natrec(env, n-1, e)
	if err != nil {
		return nil, err
	}
	scope := NewEnv(env)
	scope.Put(e.Sym, IntVal(n))
	scope.Put(e.Sym2, lower)
	return rt.Eval(scope, e.Cells[2])
}

// applyBinop evaluates both operands left to right and applies op.
func (rt *Runtime) applyBinop(env *Env, op string, e1, e2 *Expr) (*Val, error) {
	x, err := rt.evalInt(env, e1)
	if err != nil {
		return nil, err
	}
	y, err := rt.evalInt(env, e2)
	if err != nil {
		return nil, err
	}
	switch op {
	case "+":
		return IntVal(x + y), nil
	case "-":
		return IntVal(x - y), nil
	case "*":
		return IntVal(x * y), nil
	case "/":
		if y == 0 {
			return nil, Errorf(ErrnoDivZero, "division by zero: %d / 0", x)
		}
		return IntVal(x / y), nil
	default:
		return nil, Errorf(ErrnoPanic, "invalid operator: %s", op)
	}
}

func (rt *Runtime) evalInt(env *Env, e *Expr) (int, error) {
	v, err := rt.Eval(env, e)
	if err != nil {
		return 0, err
	}
	if v.Type != VInt {
		return 0, Errorf(ErrnoType, "arithmetic on %s: %s", v.Type, v)
	}
	return v.Num, nil
}

func (rt *Runtime) tracef(format string, v ...interface{}) {
	if !rt.Trace {
		return
	}
	fmt.Fprintf(rt.Stderr, format+"\n", v...)
}
