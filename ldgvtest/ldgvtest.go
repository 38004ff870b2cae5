package ldgvtest

import (
	"os"
	"testing"

	"github.com/nilmonster/ldgv/ldgv"
	"github.com/nilmonster/ldgv/parser"
)

// TestSequence is a sequence of source forms which are evaluated
// sequentially against a shared ldgv.Session.  A val declaration
// extends the session's global scope and renders as the empty string.
type TestSequence []struct {
	Expr   string // a source form
	Result string // the rendered result, or the fault message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated sessions.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		sess := ldgv.NewSession()
		for j, expr := range test.TestSequence {
			forms, err := parser.Parse([]byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(forms) == 0 {
				t.Errorf("test %d %q: expr %d: no form parsed", i, test.Name, j)
				continue
			}
			var result string
			for _, form := range forms {
				if form.Decl != nil {
					sess.Declare(form.Decl)
					result = ""
					continue
				}
				v, err := sess.Eval(form.Expr)
				if err != nil {
					result = err.Error()
					continue
				}
				result = v.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

// RunMainFile parses the program at path, evaluates its main
// declaration and compares the rendered value against want.
func RunMainFile(t *testing.T, path string, want string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("unable to read test file: %v", err)
		return
	}
	decls, err := parser.ParseProgram(source)
	if err != nil {
		t.Errorf("%s: parse error: %v", path, err)
		return
	}
	rt := ldgv.NewRuntime(decls)
	v, err := rt.RunMain()
	if err != nil {
		t.Errorf("%s: %v", path, err)
		return
	}
	if v.String() != want {
		t.Errorf("%s: expected result %s (got %s)", path, want, v)
	}
}
