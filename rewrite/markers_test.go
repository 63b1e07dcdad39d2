package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhamidi/recast/rewrite"
)

func TestMarkersRender(t *testing.T) {
	t.Parallel()

	var m rewrite.Markers
	on := rewrite.NewPrintOptions(rewrite.PrintMarkers())
	off := rewrite.NewPrintOptions()

	assert.Equal(t, "", m.Render(on))

	m, added := m.AddSearchResult("")
	assert.True(t, added)
	assert.Equal(t, "~~>", m.Render(on))
	assert.Equal(t, "", m.Render(off))

	_, added = m.AddSearchResult("again")
	assert.False(t, added)

	described, _ := rewrite.Markers{}.AddSearchResult("deprecated")
	assert.Equal(t, "~~(deprecated)~~>", described.Render(on))
}

func TestMarkersAddCopies(t *testing.T) {
	t.Parallel()

	base := rewrite.NewMarkers()
	a := base.Add(rewrite.NewSearchResult("a"))
	b := a.Add(rewrite.NewSearchResult("b"))

	assert.Equal(t, 0, base.Len())
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
}
