package java_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/java/parser"
)

func parseAll(t *testing.T, texts ...string) []*java.CompilationUnit {
	t.Helper()
	var sources []parser.Source
	for i, text := range texts {
		sources = append(sources, parser.Source{Path: fmt.Sprintf("Unit%d.java", i), Text: text})
	}
	var cus []*java.CompilationUnit
	for _, u := range parser.Parse(sources...) {
		require.NoError(t, u.Err)
		cus = append(cus, u.CU)
	}
	return cus
}
