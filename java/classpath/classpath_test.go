package classpath_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/classfile"
	"github.com/dhamidi/recast/classfile/classfiletest"
	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/java/classpath"
	"github.com/dhamidi/recast/java/parser"
	"github.com/dhamidi/recast/java/recipes"
	"github.com/dhamidi/recast/rewrite"
)

var demoClasses = []*classfile.ClassFile{
	{
		Access: classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract,
		Name:   "demo.Greeter",
		Super:  "java.lang.Object",
		Methods: []classfile.Member{
			{Access: classfile.AccPublic | classfile.AccAbstract, Name: "greet", Descriptor: "(Ljava/lang/String;)Ljava/lang/String;"},
			{Access: classfile.AccPublic, Name: "hello", Descriptor: "()V"},
		},
	},
	{
		Access:     classfile.AccPublic,
		Name:       "demo.Base",
		Super:      "java.lang.Object",
		Interfaces: []string{"demo.Greeter"},
		Fields: []classfile.Member{
			{Access: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal, Name: "NAME", Descriptor: "Ljava/lang/String;"},
			{Access: classfile.AccSynthetic, Name: "this$0", Descriptor: "Ldemo/Base;"},
		},
		Methods: []classfile.Member{
			{Access: classfile.AccStatic, Name: "<clinit>", Descriptor: "()V"},
			{Access: classfile.AccPublic, Name: "<init>", Descriptor: "(I)V"},
			{Access: classfile.AccPublic, Name: "greet", Descriptor: "(Ljava/lang/String;)Ljava/lang/String;"},
			{Access: classfile.AccPublic | classfile.AccStatic | classfile.AccVarargs, Name: "of", Descriptor: "([Ljava/lang/String;)Ldemo/Base;"},
			{Access: classfile.AccPublic | classfile.AccBridge | classfile.AccSynthetic, Name: "greet", Descriptor: "(Ljava/lang/Object;)Ljava/lang/Object;"},
		},
	},
	{Access: classfile.AccPublic | classfile.AccStatic, Name: "demo.Outer$Inner", Super: "java.lang.Object"},
	{Name: "demo.Outer$1", Super: "java.lang.Object"},
}

// writeJar stores classes in a jar under dir.
func writeJar(t *testing.T, dir string, classes []*classfile.ClassFile) string {
	t.Helper()
	path := filepath.Join(dir, "demo.jar")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("META-INF/MANIFEST.MF")
	require.NoError(t, err)
	for _, cf := range classes {
		w, err := zw.Create(classfile.InternalName(cf.Name) + ".class")
		require.NoError(t, err)
		_, err = w.Write(classfiletest.Bytes(cf))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func openDemo(t *testing.T) *classpath.Classpath {
	t.Helper()
	cp, err := classpath.Open(writeJar(t, t.TempDir(), demoClasses))
	require.NoError(t, err)
	t.Cleanup(func() { cp.Close() })
	return cp
}

func TestBinaryClass(t *testing.T) {
	t.Parallel()
	cp := openDemo(t)

	base, ok := cp.BinaryClass("demo.Base")
	require.True(t, ok)
	assert.Equal(t, "demo", base.Package)
	assert.Equal(t, java.ClassKindClass, base.Kind)
	assert.Equal(t, "java.lang.Object", base.Super)
	assert.Equal(t, []string{"demo.Greeter"}, base.Interfaces)
	assert.Equal(t, []java.BinaryField{{Name: "NAME", Type: "java.lang.String", Flags: java.Public | java.Static | java.Final}}, base.Fields)
	assert.Equal(t, []java.BinaryMethod{
		{Name: java.ConstructorName, Params: []string{"int"}, Return: "demo.Base", Flags: java.Public},
		{Name: "greet", Params: []string{"java.lang.String"}, Return: "java.lang.String", Flags: java.Public},
		{Name: "of", Params: []string{"java.lang.String[]"}, Return: "demo.Base", Flags: java.Public | java.Static, Varargs: true},
	}, base.Methods)

	greeter, ok := cp.BinaryClass("demo.Greeter")
	require.True(t, ok)
	assert.Equal(t, java.ClassKindInterface, greeter.Kind)
	require.Len(t, greeter.Methods, 2)
	assert.False(t, greeter.Methods[0].Flags.Has(java.Default))
	assert.True(t, greeter.Methods[1].Flags.Has(java.Default))
}

func TestBinaryClassNestedAndMissing(t *testing.T) {
	t.Parallel()
	cp := openDemo(t)

	inner, ok := cp.BinaryClass("demo.Outer.Inner")
	require.True(t, ok)
	assert.Equal(t, "demo.Outer.Inner", inner.FQN)
	assert.Equal(t, "demo", inner.Package)

	_, ok = cp.BinaryClass("demo.Outer.1")
	assert.False(t, ok)
	_, ok = cp.BinaryClass("demo.Missing")
	assert.False(t, ok)
	_, ok = cp.BinaryClass("demo.Missing")
	assert.False(t, ok)
}

func TestClassDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	classDir := filepath.Join(dir, "classes", "demo")
	require.NoError(t, os.MkdirAll(classDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(classDir, "Base.class"), classfiletest.Bytes(&classfile.ClassFile{
		Access: classfile.AccPublic | classfile.AccFinal,
		Name:   "demo.Base",
		Super:  "java.lang.Object",
	}), 0o644))
	jar := writeJar(t, dir, demoClasses)

	cp, err := classpath.Open(filepath.Join(dir, "classes") + string(os.PathListSeparator) + jar)
	require.NoError(t, err)
	defer cp.Close()

	base, ok := cp.BinaryClass("demo.Base")
	require.True(t, ok)
	assert.Equal(t, java.Public|java.Final, base.Flags)
	assert.Empty(t, base.Methods)

	_, ok = cp.BinaryClass("demo.Greeter")
	assert.True(t, ok)
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()
	_, err := classpath.Open(filepath.Join(t.TempDir(), "missing.jar"))
	assert.Error(t, err)

	notAJar := filepath.Join(t.TempDir(), "notes.jar")
	require.NoError(t, os.WriteFile(notAJar, []byte("hello"), 0o644))
	_, err = classpath.Open(notAJar)
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	t.Parallel()
	sep := string(os.PathListSeparator)
	assert.Equal(t, []string{"a.jar", "b", "c.jar"}, classpath.Split("a.jar"+sep+"b"+sep, "", "c.jar"))
}

const app = `package app;

import demo.*;

class App {
    void run(Base b) {
        b.greet("x");
        b.hello();
    }
}
`

func TestAttributionUsesClasspath(t *testing.T) {
	t.Parallel()
	find := recipes.NewFindMethods("demo.Greeter *(..)")

	found := func(units []parser.Unit) string {
		require.Len(t, units, 1)
		require.NoError(t, units[0].Err)
		res := rewrite.NewPipeline().Run(units[0].CU, find)
		return res.Fixed.Print(rewrite.PrintMarkers())
	}

	without := found(parser.Parse(parser.Source{Path: "App.java", Text: app}))
	assert.NotContains(t, without, "~~>")

	with := found(parser.ParseWith(openDemo(t), parser.Source{Path: "App.java", Text: app}))
	// Base overrides greet, so only the inherited default method matches.
	assert.Equal(t, 1, strings.Count(with, "~~>"))
	assert.Contains(t, with, "~~>b.hello();")
	assert.NotContains(t, with, "~~>b.greet")

	units := parser.ParseWith(openDemo(t), parser.Source{Path: "App.java", Text: app})
	base, ok := units[0].CU.Table.Class("demo.Base")
	require.True(t, ok)
	assert.True(t, base.Binary)
	assert.True(t, base.IsSubtypeOf("demo.Greeter"))
}
