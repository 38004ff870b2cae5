package ldgv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvGet(t *testing.T) {
	env := NewEnv(nil)
	assert.Nil(t, env.Get("x"))
	env.Put("x", IntVal(1))
	v := env.Get("x")
	if assert.NotNil(t, v) {
		assert.Equal(t, 1, v.Num)
	}
}

func TestEnvShadowing(t *testing.T) {
	parent := NewEnv(nil)
	parent.Put("x", IntVal(1))
	parent.Put("y", IntVal(2))

	child := NewEnv(parent)
	child.Put("x", IntVal(10))

	// the innermost binding wins and the parent is untouched
	assert.Equal(t, 10, child.Get("x").Num)
	assert.Equal(t, 2, child.Get("y").Num)
	assert.Equal(t, 1, parent.Get("x").Num)
}

func TestEnvPutNil(t *testing.T) {
	env := NewEnv(nil)
	assert.Panics(t, func() { env.Put("x", nil) })
}
