package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nilmonster/ldgv/ldgv"
	"github.com/nilmonster/ldgv/parser"
)

// RunRepl runs a simple repl.  Declarations entered at the prompt
// extend the session's global scope; bare expressions are evaluated
// and printed.
func RunRepl(prompt string, config ...ldgv.Config) {
	sess := ldgv.NewSession(config...)

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		if !balanced(line) {
			buf = line
			rl.SetPrompt(contPrompt)
			continue
		}
		forms, err := parser.Parse(line)
		if err != nil {
			errln(err)
			continue
		}
		for _, form := range forms {
			if form.Decl != nil {
				sess.Declare(form.Decl)
				continue
			}
			v, err := sess.Eval(form.Expr)
			if err != nil {
				errln(err)
				break
			}
			fmt.Println(v)
		}
	}
	if err != io.EOF {
		errln(err)
		return
	}
	errln("done")
}

// balanced reports whether every open paren in line is closed,
// ignoring comments.  Unbalanced input triggers a continuation line.
func balanced(line []byte) bool {
	depth := 0
	comment := false
	for _, c := range line {
		switch {
		case comment:
			if c == '\n' {
				comment = false
			}
		case c == ';':
			comment = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return depth <= 0
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
