package xml_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

const dependencies = `<?xml version="1.0" encoding="UTF-8"?>
<dependencies>
    <dependency>
        <artifactId scope="compile">org.openrewrite</artifactId>
    </dependency>
</dependencies>`

func TestCompilePathErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		path      string
		offending string
	}{
		{"", ""},
		{"dependencies", "dependencies"},
		{"//dependency", "//"},
		{"/a/", "/a/"},
		{"/a/1b", "1b"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			_, err := xml.CompilePath(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, rewrite.ErrPatternSyntax)
			var pse *rewrite.PatternSyntaxError
			require.ErrorAs(t, err, &pse)
			assert.Equal(t, tt.offending, pse.Offending)
		})
	}
}

func TestFind(t *testing.T) {
	t.Parallel()
	doc := parse(t, dependencies)
	tests := []struct {
		path string
		want []string
	}{
		{"/dependencies/dependency", []string{"dependency"}},
		{"/dependencies/*", []string{"dependency"}},
		{"/dependencies/dependency/artifactId", []string{"artifactId"}},
		{"/*/*/*", []string{"artifactId"}},
		{"/dependencies", []string{"dependencies"}},
		{"/dependencies/dne", nil},
		{"/dependency", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			pattern, err := xml.CompilePath(tt.path)
			require.NoError(t, err)
			var got []string
			for tag := range xml.Find(doc, pattern) {
				got = append(got, tag.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindIsRestartableAndStops(t *testing.T) {
	t.Parallel()
	doc := parse(t, "<a><b>1</b><b>2</b><b>3</b></a>")
	pattern, err := xml.CompilePath("/a/b")
	require.NoError(t, err)
	seq := xml.Find(doc, pattern)

	var values []string
	for tag := range seq {
		values = append(values, tag.Value())
	}
	assert.Equal(t, []string{"1", "2", "3"}, values)
	assert.Len(t, slices.Collect(seq), 3)

	var first []string
	for tag := range seq {
		first = append(first, tag.Value())
		break
	}
	assert.Equal(t, []string{"1"}, first)
}
