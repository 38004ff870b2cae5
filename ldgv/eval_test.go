package ldgv

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, rt *Runtime, e *Expr) *Val {
	t.Helper()
	v, err := rt.Eval(rt.Globals, e)
	require.NoError(t, err)
	return v
}

func assertErrno(t *testing.T, err error, errno Errno) {
	t.Helper()
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, errno, lerr.Errno)
}

func TestEvalLiterals(t *testing.T) {
	rt := NewRuntime(nil)
	assert.Equal(t, VUnit, mustEval(t, rt, Unit()).Type)
	assert.Equal(t, "a", mustEval(t, rt, Label("a")).Sym)
	assert.Equal(t, 42, mustEval(t, rt, Int(42)).Num)
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		expr *Expr
		want int
	}{
		{Binop("+", Int(1), Int(2)), 3},
		{Binop("-", Int(5), Int(9)), -4},
		{Binop("*", Int(3), Int(7)), 21},
		{Binop("/", Int(7), Int(2)), 3},
		{Binop("/", Int(-7), Int(2)), -3},
		{Neg(Int(5)), -5},
		{Succ(Int(41)), 42},
		{Binop("+", Binop("*", Int(2), Int(3)), Int(1)), 7},
	}
	rt := NewRuntime(nil)
	for _, test := range tests {
		v := mustEval(t, rt, test.expr)
		assert.Equal(t, VInt, v.Type, "%s", test.expr)
		assert.Equal(t, test.want, v.Num, "%s", test.expr)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	rt := NewRuntime(nil)
	_, err := rt.Eval(rt.Globals, Binop("/", Int(1), Int(0)))
	assertErrno(t, err, ErrnoDivZero)
}

func TestEvalArithmeticTypeFault(t *testing.T) {
	rt := NewRuntime(nil)
	_, err := rt.Eval(rt.Globals, Binop("+", Int(1), Label("a")))
	assertErrno(t, err, ErrnoType)
	_, err = rt.Eval(rt.Globals, Neg(Unit()))
	assertErrno(t, err, ErrnoType)
}

func TestEvalUnbound(t *testing.T) {
	rt := NewRuntime(nil)
	_, err := rt.Eval(rt.Globals, Var("undefined_name"))
	assertErrno(t, err, ErrnoUnbound)
}

func TestEvalLet(t *testing.T) {
	rt := NewRuntime(nil)
	v := mustEval(t, rt, Let("x", Int(5), Binop("+", Var("x"), Int(1))))
	assert.Equal(t, 6, v.Num)

	// inner let shadows outer
	v = mustEval(t, rt, Let("x", Int(1), Let("x", Int(2), Var("x"))))
	assert.Equal(t, 2, v.Num)
}

func TestEvalDependentPair(t *testing.T) {
	rt := NewRuntime(nil)
	// the first component's value is visible to the second
	v := mustEval(t, rt, Pair("x", Int(5), Binop("+", Var("x"), Int(1))))
	require.Equal(t, VPair, v.Type)
	assert.Equal(t, 5, v.Fst.Num)
	assert.Equal(t, 6, v.Snd.Num)
}

func TestEvalProjections(t *testing.T) {
	rt := NewRuntime(nil)
	p := Pair("x", Int(1), Int(2))
	assert.Equal(t, 1, mustEval(t, rt, Fst(p)).Num)
	assert.Equal(t, 2, mustEval(t, rt, Snd(p)).Num)

	_, err := rt.Eval(rt.Globals, Fst(Int(5)))
	assertErrno(t, err, ErrnoType)
	_, err = rt.Eval(rt.Globals, Snd(Unit()))
	assertErrno(t, err, ErrnoType)
}

func TestEvalLetPair(t *testing.T) {
	rt := NewRuntime(nil)
	e := LetPair("a", "b", Pair("x", Int(1), Int(2)), Binop("+", Var("a"), Var("b")))
	assert.Equal(t, 3, mustEval(t, rt, e).Num)

	_, err := rt.Eval(rt.Globals, LetPair("a", "b", Int(3), Var("a")))
	assertErrno(t, err, ErrnoType)
}

func TestEvalApplication(t *testing.T) {
	rt := NewRuntime(nil)
	inc := Lambda("x", Binop("+", Var("x"), Int(1)))
	assert.Equal(t, 42, mustEval(t, rt, App(inc, Int(41))).Num)

	// curried application
	add := Lambda("x", Lambda("y", Binop("+", Var("x"), Var("y"))))
	assert.Equal(t, 3, mustEval(t, rt, App(App(add, Int(1)), Int(2))).Num)
	assert.Equal(t, VClosure, mustEval(t, rt, App(add, Int(1))).Type)

	_, err := rt.Eval(rt.Globals, App(Int(3), Int(4)))
	assertErrno(t, err, ErrnoType)
}

func TestEvalApplicationOrder(t *testing.T) {
	// The argument is evaluated before the function position, so its
	// effect lands even when the function expression faults.
	rt := NewRuntime(nil)
	a, b := NewChanPair()
	rt.Globals.Put("c", a)

	arg := App(Send(Var("c")), Int(7))
	_, err := rt.Eval(rt.Globals, App(Fst(Int(5)), arg))
	assertErrno(t, err, ErrnoType)
	require.Equal(t, 1, b.Read.Len())
	assert.Equal(t, 7, b.Read.Dequeue().Num)
}

func TestEvalClosureCapture(t *testing.T) {
	rt := NewRuntime(nil)
	// the closure sees its definition scope, not the call scope
	e := Let("x", Int(1),
		Let("f", Lambda("y", Binop("+", Var("x"), Var("y"))),
			Let("x", Int(100),
				App(Var("f"), Int(2)))))
	assert.Equal(t, 3, mustEval(t, rt, e).Num)
}

func TestEvalCase(t *testing.T) {
	rt := NewRuntime(nil)
	branches := []Branch{
		{Label: "a", Body: Int(1)},
		{Label: "b", Body: Int(2)},
	}
	assert.Equal(t, 1, mustEval(t, rt, Case(Label("a"), branches)).Num)
	assert.Equal(t, 2, mustEval(t, rt, Case(Label("b"), branches)).Num)

	_, err := rt.Eval(rt.Globals, Case(Label("c"), branches))
	assertErrno(t, err, ErrnoNoCase)
	_, err = rt.Eval(rt.Globals, Case(Int(5), branches))
	assertErrno(t, err, ErrnoType)
}

func TestEvalNatRec(t *testing.T) {
	rt := NewRuntime(nil)
	fact := func(n int) *Expr {
		return NatRec(Int(n), Int(1), "k", "r", Binop("*", Var("k"), Var("r")))
	}
	assert.Equal(t, 6, mustEval(t, rt, fact(3)).Num)
	assert.Equal(t, 120, mustEval(t, rt, fact(5)).Num)
	assert.Equal(t, 1, mustEval(t, rt, fact(0)).Num)

	// index zero never touches the step expression
	e := NatRec(Int(0), Int(9), "k", "r", Var("undefined_name"))
	assert.Equal(t, 9, mustEval(t, rt, e).Num)

	_, err := rt.Eval(rt.Globals, NatRec(Int(-1), Int(1), "k", "r", Var("r")))
	assertErrno(t, err, ErrnoType)

	_, err = rt.Eval(rt.Globals, NatRec(Unit(), Int(1), "k", "r", Var("r")))
	assertErrno(t, err, ErrnoType)
}

func TestEvalNew(t *testing.T) {
	rt := NewRuntime(nil)
	v := mustEval(t, rt, New())
	require.Equal(t, VPair, v.Type)
	require.Equal(t, VChan, v.Fst.Type)
	require.Equal(t, VChan, v.Snd.Type)
	assert.True(t, v.Fst.Write == v.Snd.Read)
	assert.True(t, v.Snd.Write == v.Fst.Read)
}

func TestEvalSendRecv(t *testing.T) {
	rt := NewRuntime(nil)
	a, b := NewChanPair()
	rt.Globals.Put("a", a)
	rt.Globals.Put("b", b)

	// send returns the endpoint so sends chain on the returned value
	v := mustEval(t, rt, App(Send(App(Send(Var("a")), Int(1))), Int(2)))
	assert.Equal(t, VChan, v.Type)

	v = mustEval(t, rt, Recv(Var("b")))
	require.Equal(t, VPair, v.Type)
	assert.Equal(t, 1, v.Fst.Num)
	assert.Equal(t, VChan, v.Snd.Type)

	v = mustEval(t, rt, Recv(Var("b")))
	assert.Equal(t, 2, v.Fst.Num)

	_, err := rt.Eval(rt.Globals, Send(Int(1)))
	assertErrno(t, err, ErrnoType)
	_, err = rt.Eval(rt.Globals, Recv(Unit()))
	assertErrno(t, err, ErrnoType)
}

func TestEvalFork(t *testing.T) {
	rt := NewRuntime(nil)
	a, b := NewChanPair()
	rt.Globals.Put("a", a)

	v := mustEval(t, rt, Fork(App(Send(Var("a")), Int(99))))
	assert.Equal(t, VUnit, v.Type)
	assert.Equal(t, 99, b.Read.Dequeue().Num)
}

func TestEvalForkNoWait(t *testing.T) {
	// forking a computation that blocks forever returns immediately
	rt := NewRuntime(nil)
	a, _ := NewChanPair()
	rt.Globals.Put("a", a)
	v := mustEval(t, rt, Fork(Recv(Var("a"))))
	assert.Equal(t, VUnit, v.Type)
}

func TestEvalForkFaultIsolated(t *testing.T) {
	rt := NewRuntime(nil)
	v := mustEval(t, rt, Fork(Var("undefined_name")))
	assert.Equal(t, VUnit, v.Type)

	// the parent process continues unharmed
	assert.Equal(t, 2, mustEval(t, rt, Binop("+", Int(1), Int(1))).Num)
}

type chanWriter struct {
	ch chan string
}

func (w chanWriter) Write(p []byte) (int, error) {
	w.ch <- string(p)
	return len(p), nil
}

func TestEvalForkPanicIsolated(t *testing.T) {
	// A go-level panic in a forked process is recovered in its
	// goroutine instead of crashing the whole program.
	lines := make(chan string, 64)
	rt := NewRuntime(nil, WithTrace(true), WithStderr(chanWriter{lines}))

	bad := &Expr{Type: EBinop, Op: "+"} // no operands
	v := mustEval(t, rt, Fork(bad))
	assert.Equal(t, VUnit, v.Type)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case line := <-lines:
			if strings.Contains(line, "fork panic") {
				// the parent process continues unharmed
				assert.Equal(t, 2, mustEval(t, rt, Binop("+", Int(1), Int(1))).Num)
				return
			}
		case <-deadline:
			t.Fatal("forked panic was not recovered")
		}
	}
}

func TestGlobalsNotMemoized(t *testing.T) {
	// Each reference to a global re-runs its body; a let-bound value is
	// evaluated once and shared.
	a, b := NewChanPair()
	tick := &Decl{
		Name: "tick",
		Body: Let("u", App(Send(Var("c")), Int(1)), Int(7)),
	}
	rt := NewRuntime([]*Decl{tick})
	rt.Globals.Put("c", a)

	v := mustEval(t, rt, Binop("+", Var("tick"), Var("tick")))
	assert.Equal(t, 14, v.Num)
	assert.Equal(t, 2, b.Read.Len())

	v = mustEval(t, rt, Let("x", Var("tick"), Binop("+", Var("x"), Var("x"))))
	assert.Equal(t, 14, v.Num)
	assert.Equal(t, 3, b.Read.Len())
}

func TestEvalPingPong(t *testing.T) {
	// fork a responder and round-trip a value through a channel pair
	rt := NewRuntime(nil)
	responder := LetPair("v", "c", Recv(Var("b")),
		App(Send(Var("c")), Binop("*", Var("v"), Int(2))))
	e := LetPair("a", "b", New(),
		Let("u", Fork(responder),
			Let("s", App(Send(Var("a")), Int(21)),
				Fst(Recv(Var("a"))))))
	done := make(chan struct{})
	var v *Val
	var err error
	go func() {
		v, err = rt.Eval(rt.Globals, e)
		close(done)
	}()
	select {
	case <-done:
		require.NoError(t, err)
		assert.Equal(t, 42, v.Num)
	case <-time.After(5 * time.Second):
		t.Fatal("ping pong did not complete")
	}
}

func TestRunMain(t *testing.T) {
	main := &Decl{Name: "main", Body: Binop("+", Int(40), Int(2))}
	rt := NewRuntime([]*Decl{main})
	v, err := rt.RunMain()
	require.NoError(t, err)
	assert.Equal(t, 42, v.Num)
}

func TestRunMainMissing(t *testing.T) {
	rt := NewRuntime(nil)
	_, err := rt.RunMain()
	assertErrno(t, err, ErrnoNoMain)
}
