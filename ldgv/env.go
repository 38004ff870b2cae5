package ldgv

// Env is an evaluation environment.  Lookup walks the parent chain so
// the innermost binding for a name shadows outer ones.  A child scope
// never writes through to its parent; extension is always NewEnv plus
// Put on the fresh scope.
type Env struct {
	Scope  map[string]*Val
	Parent *Env
}

// NewEnv initializes and returns a new Env with the given parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		Scope:  make(map[string]*Val),
		Parent: parent,
	}
}

// Get returns the value bound to name in env, consulting parent scopes
// when the local scope has no binding.  Get returns nil when name is
// unbound.
func (env *Env) Get(name string) *Val {
	v, ok := env.Scope[name]
	if ok {
		return v
	}
	if env.Parent != nil {
		return env.Parent.Get(name)
	}
	return nil
}

// Put binds name to v in env's local scope.
func (env *Env) Put(name string, v *Val) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[name] = v
}
