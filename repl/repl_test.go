package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanced(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"42", true},
		{"(+ 1 2)", true},
		{"(let x (new)", false},
		{"(let x (new) x)", true},
		{"; (unclosed in a comment", true},
		{"(+ 1 ; comment )\n 2)", true},
		{"))", true}, // excess closers are left for the parser to reject
	}
	for _, test := range tests {
		assert.Equal(t, test.want, balanced([]byte(test.line)), "%q", test.line)
	}
}
