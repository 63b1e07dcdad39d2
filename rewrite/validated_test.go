package rewrite_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/rewrite"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	assert.True(t, rewrite.Required("name", "x").IsValid())

	for _, value := range []any{nil, ""} {
		v := rewrite.Required("name", value)
		require.False(t, v.IsValid())
		failures := v.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, "name", failures[0].Property)
		assert.Equal(t, "is required", failures[0].Message)
	}
}

func TestValidatedAnd(t *testing.T) {
	t.Parallel()

	v := rewrite.Valid().
		And(rewrite.Required("a", "")).
		And(rewrite.Required("b", "ok")).
		And(rewrite.Invalid("c", 3, "out of range", nil))

	failures := v.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "a", failures[0].Property)
	assert.Equal(t, "c", failures[1].Property)
	assert.ErrorIs(t, v.Err(), rewrite.ErrValidation)
}

func TestCompiled(t *testing.T) {
	t.Parallel()

	syntax := &rewrite.PatternSyntaxError{Pattern: "a.(", Offending: "(", Message: "unexpected token"}

	assert.True(t, rewrite.Compiled("method", "a.A foo()", nil).IsValid())

	missing := rewrite.Compiled("method", "", nil).Failures()
	require.Len(t, missing, 1)
	assert.Equal(t, "is required", missing[0].Message)

	bad := rewrite.Compiled("method", "a.(", syntax).Failures()
	require.Len(t, bad, 1)
	assert.True(t, errors.Is(bad[0], rewrite.ErrPatternSyntax))
	assert.Equal(t, "a.(", bad[0].Value)
}

func TestPrefixed(t *testing.T) {
	t.Parallel()

	v := rewrite.Required("xPath", "").Prefixed("xml.FindTags")
	require.Len(t, v.Failures(), 1)
	assert.Equal(t, "xml.FindTags.xPath", v.Failures()[0].Property)
}
