package ldgv

// Session evaluates an interleaved stream of declarations and
// expressions, as entered interactively.  Forked processes may still
// be reading the current global scope, so a declaration never writes
// to it: Declare rebuilds the runtime from the accumulated
// declarations and leaves every scope an existing process can see
// untouched.  Processes forked earlier keep the globals they were
// forked with.
type Session struct {
	decls  []*Decl
	config []Config
	rt     *Runtime
}

// NewSession returns a session with an empty global scope.
func NewSession(config ...Config) *Session {
	return &Session{
		config: config,
		rt:     NewRuntime(nil, config...),
	}
}

// Declare adds decl to the session's global scope.  A later
// declaration of the same name shadows the earlier one.
func (s *Session) Declare(decl *Decl) {
	s.decls = append(s.decls, decl)
	s.rt = NewRuntime(s.decls, s.config...)
}

// Eval evaluates e against the session's current global scope.
func (s *Session) Eval(e *Expr) (*Val, error) {
	return s.rt.Eval(s.rt.Globals, e)
}
