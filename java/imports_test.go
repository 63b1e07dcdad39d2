package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

func visit(t *testing.T, v rewrite.TreeVisitor, cu *java.CompilationUnit) rewrite.SourceFile {
	t.Helper()
	out, err := v.Visit(cu, rewrite.NewContext("test", cu.Path))
	require.NoError(t, err)
	return out
}

func TestAddImport(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		add    java.AddImport
		source string
		want   string
	}{
		{
			name:   "after package",
			add:    java.AddImport{Type: "x.Y"},
			source: "package p;\nclass C {}",
			want:   "package p;\n\nimport x.Y;\n\nclass C {}",
		},
		{
			name:   "first in file",
			add:    java.AddImport{Type: "x.Y"},
			source: "class C {}",
			want:   "import x.Y;\n\nclass C {}",
		},
		{
			name:   "after existing imports",
			add:    java.AddImport{Type: "x.Y"},
			source: "package p;\n\nimport a.A;\n\nclass C {}",
			want:   "package p;\n\nimport a.A;\nimport x.Y;\n\nclass C {}",
		},
		{
			name:   "static member",
			add:    java.AddImport{Type: "org.junit.Assert.assertTrue", Static: true},
			source: "import a.A;\nclass C {}",
			want:   "import a.A;\nimport static org.junit.Assert.assertTrue;\n\nclass C {}",
		},
		{
			name:   "same package",
			add:    java.AddImport{Type: "p.D"},
			source: "package p;\nclass C {}",
			want:   "package p;\nclass C {}",
		},
		{
			name:   "java.lang",
			add:    java.AddImport{Type: "java.lang.Math"},
			source: "class C {}",
			want:   "class C {}",
		},
		{
			name:   "default package",
			add:    java.AddImport{Type: "Y"},
			source: "class C {}",
			want:   "class C {}",
		},
		{
			name:   "covered by on-demand import",
			add:    java.AddImport{Type: "x.Y"},
			source: "import x.*;\nclass C {}",
			want:   "import x.*;\nclass C {}",
		},
		{
			name:   "already imported",
			add:    java.AddImport{Type: "x.Y"},
			source: "import x.Y;\nclass C {}",
			want:   "import x.Y;\nclass C {}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cu := parseAll(t, tt.source)[0]
			assert.Equal(t, tt.want, visit(t, tt.add, cu).Print())
		})
	}
}

func TestAddImportKeys(t *testing.T) {
	t.Parallel()
	assert.NotEqual(t, java.AddImport{Type: "a.B"}.Key(), java.AddImport{Type: "a.B", Static: true}.Key())
	assert.Equal(t, java.AddImport{Type: "a.B"}.Key(), java.AddImport{Type: "a.B"}.Key())
	assert.NotEqual(t, java.AddImport{Type: "a.B"}.Key(), java.RemoveImport{Type: "a.B"}.Key())
}

func TestRemoveImport(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		remove string
		source string
		want   string
	}{
		{
			name:   "unused first import",
			remove: "a.A",
			source: "import a.A;\nimport b.B;\n\nclass C { B b; }",
			want:   "import b.B;\n\nclass C { B b; }",
		},
		{
			name:   "only import after package",
			remove: "a.A",
			source: "package p;\n\nimport a.A;\n\nclass C {}",
			want:   "package p;\n\nclass C {}",
		},
		{
			name:   "only import",
			remove: "a.A",
			source: "import a.A;\n\nclass C {}",
			want:   "class C {}",
		},
		{
			name:   "still used",
			remove: "b.B",
			source: "import a.A;\nimport b.B;\n\nclass C { B b; }",
			want:   "import a.A;\nimport b.B;\n\nclass C { B b; }",
		},
		{
			name:   "unused on-demand import",
			remove: "a.A",
			source: "import a.*;\nimport b.B;\n\nclass C { B b; }",
			want:   "import b.B;\n\nclass C { B b; }",
		},
		{
			name:   "middle import",
			remove: "b.B",
			source: "import a.A;\nimport b.B;\nimport c.D;\n\nclass C { A a; D d; }",
			want:   "import a.A;\nimport c.D;\n\nclass C { A a; D d; }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cu := parseAll(t, tt.source)[0]
			assert.Equal(t, tt.want, visit(t, java.RemoveImport{Type: tt.remove}, cu).Print())
		})
	}
}

func TestRemoveStaticImport(t *testing.T) {
	t.Parallel()
	owner := "package org.junit;\npublic class Assert {\n    public static void assertTrue(boolean b) {}\n}"
	used := "import static org.junit.Assert.assertTrue;\n\nclass C {\n    void t() {\n        assertTrue(true);\n    }\n}"
	unused := "import static org.junit.Assert.assertTrue;\n\nclass C {\n    void t() {\n        org.junit.Assert.assertTrue(true);\n    }\n}"

	cus := parseAll(t, used, unused, owner)
	remove := java.RemoveImport{Type: "org.junit.Assert"}
	assert.Equal(t, used, visit(t, remove, cus[0]).Print())
	assert.Equal(t, "class C {\n    void t() {\n        org.junit.Assert.assertTrue(true);\n    }\n}", visit(t, remove, cus[1]).Print())
}
