package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/rewrite"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := rewrite.NewRegistry()
	reg.Register("test.Replace", "Replace text.", func(o rewrite.Options) rewrite.Recipe {
		return replaceRecipe{old: o.String("old"), new: o.String("new")}
	})
	reg.Register("test.Other", "", func(rewrite.Options) rewrite.Recipe { return replaceRecipe{} })

	assert.Equal(t, []string{"test.Other", "test.Replace"}, reg.Names())
	assert.Equal(t, "Replace text.", reg.Describe("test.Replace"))

	r, err := reg.Build("test.Replace", rewrite.Options{"old": "a", "new": "b"})
	require.NoError(t, err)
	assert.True(t, r.Validate().IsValid())

	r, err = reg.Build("test.Replace", nil)
	require.NoError(t, err)
	assert.False(t, r.Validate().IsValid())

	_, err = reg.Build("test.Missing", nil)
	assert.ErrorIs(t, err, rewrite.ErrUnknownRecipe)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	o := rewrite.Options{"s": "x", "n": 3, "b": "true", "nil": nil}
	assert.Equal(t, "x", o.String("s"))
	assert.Equal(t, "3", o.String("n"))
	assert.Equal(t, "", o.String("nil"))
	assert.Equal(t, "", o.String("absent"))
	assert.True(t, o.Bool("b"))
	assert.False(t, o.Has("nil"))
	assert.True(t, o.Has("s"))
}

func TestOptionsIgnoreCase(t *testing.T) {
	t.Parallel()

	o := rewrite.Options{"xpath": "/a", "ordered": true}
	assert.Equal(t, "/a", o.String("xPath"))
	assert.True(t, o.Bool("Ordered"))
	assert.True(t, o.Has("XPATH"))
}
