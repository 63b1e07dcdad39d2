package xml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

func TestFindTags(t *testing.T) {
	t.Parallel()
	marked := `<?xml version="1.0" encoding="UTF-8"?>
<dependencies>
    ~~><dependency>
        <artifactId scope="compile">org.openrewrite</artifactId>
    </dependency>
</dependencies>`
	tests := []struct {
		name  string
		xPath string
		want  string
		found int
	}{
		{"simple element", "/dependencies/dependency", marked, 1},
		{"wildcard", "/dependencies/*", marked, 1},
		{"no match", "/dependencies/dne", dependencies, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parse(t, dependencies)
			res := rewrite.NewPipeline().Run(doc, xml.NewFindTags(tt.xPath))
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Fixed.Print(rewrite.PrintMarkers()))
			assert.Equal(t, dependencies, res.Fixed.Print())
			assert.Len(t, res.Outcomes[0].Found, tt.found)
			assert.Equal(t, rewrite.StatusUnchanged, res.Outcomes[0].Status)
		})
	}
}

func TestFindTagsMarksOnce(t *testing.T) {
	t.Parallel()
	doc := parse(t, dependencies)
	recipe := xml.NewFindTags("/dependencies/dependency")
	res := rewrite.NewPipeline().Run(doc, recipe, recipe)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, countMarkers(res.Fixed.Print(rewrite.PrintMarkers())))
}

func countMarkers(s string) int {
	n := 0
	for i := 0; i+len(rewrite.SearchResultGlyph) <= len(s); i++ {
		if s[i:i+len(rewrite.SearchResultGlyph)] == rewrite.SearchResultGlyph {
			n++
		}
	}
	return n
}

func TestFindTagsValidation(t *testing.T) {
	t.Parallel()
	v := xml.NewFindTags("").Validate()
	assert.False(t, v.IsValid())
	require.Len(t, v.Failures(), 1)
	assert.Equal(t, "xPath", v.Failures()[0].Property)

	v = xml.NewFindTags("dependencies").Validate()
	require.Len(t, v.Failures(), 1)
	assert.ErrorIs(t, v.Failures()[0], rewrite.ErrPatternSyntax)

	assert.True(t, xml.NewFindTags("/dependencies/dependency").Validate().IsValid())
}

func TestRegister(t *testing.T) {
	t.Parallel()
	reg := rewrite.NewRegistry()
	xml.Register(reg)
	assert.Equal(t, []string{xml.AddToTagName, xml.ChangeTagValueName, xml.FindTagsName}, reg.Names())

	r, err := reg.Build(xml.FindTagsName, rewrite.Options{})
	require.NoError(t, err)
	require.Len(t, r.Validate().Failures(), 1)

	r, err = reg.Build(xml.AddToTagName, rewrite.Options{"xPath": "/beans", "tag": "<apple/>", "ordered": true, "indent": "  "})
	require.NoError(t, err)
	res := rewrite.NewPipeline().Run(parse(t, "<beans/>"), r)
	require.NoError(t, res.Err)
	assert.Equal(t, "<beans>\n  <apple/>\n</beans>", res.Fixed.Print())
}

func TestLocateFoundTags(t *testing.T) {
	t.Parallel()
	doc := parse(t, dependencies)
	res := rewrite.NewPipeline().Run(doc, xml.NewFindTags("/dependencies/dependency"))
	require.NoError(t, res.Err)

	locs := rewrite.Locate(res.Fixed)
	require.Len(t, locs, 1)
	assert.Equal(t, 3, locs[0].Line)
	assert.Equal(t, 5, locs[0].Column)
	assert.Equal(t, "<dependency>", dependencies[locs[0].Offset:locs[0].Offset+len("<dependency>")])

	assert.Empty(t, rewrite.Locate(doc))
}
