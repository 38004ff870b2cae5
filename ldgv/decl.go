package ldgv

// Param is a declaration parameter.  The annotation is carried through
// from the parser for printing but is never checked.
type Param struct {
	Name  string
	Annot string
}

// Decl is a top-level declaration.  A declaration with no parameters
// is a value; with N parameters it curries into N nested closures.
type Decl struct {
	Name   string
	Params []Param
	Body   *Expr
	Result string // optional result annotation, ignored
}

// Resolve evaluates decl against env.  A zero-parameter declaration
// evaluates its body directly.  Otherwise the result is a closure
// chain: each application binds the next parameter name to the
// (already evaluated) argument in a fresh scope, and the body runs
// once the last parameter is supplied.  Resolve starts from scratch on
// every call; partial applications and results are never shared
// between references.
func (rt *Runtime) Resolve(decl *Decl, env *Env) (*Val, error) {
	return rt.resolve(decl, decl.Params, env)
}

func (rt *Runtime) resolve(decl *Decl, params []Param, env *Env) (*Val, error) {
	if len(params) == 0 {
		return rt.Eval(env, decl.Body)
	}
	name := params[0].Name
	rest := params[1:]
	return ClosureVal(func(arg *Val) (*Val, error) {
		scope := NewEnv(env)
		scope.Put(name, arg)
		return rt.resolve(decl, rest, scope)
	}), nil
}
