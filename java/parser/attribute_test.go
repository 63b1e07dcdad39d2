package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/java/parser"
	"github.com/dhamidi/recast/rewrite"
)

func parseAll(t *testing.T, sources ...parser.Source) []*java.CompilationUnit {
	t.Helper()
	var cus []*java.CompilationUnit
	for _, u := range parser.Parse(sources...) {
		require.NoError(t, u.Err, u.Path)
		cus = append(cus, u.CU)
	}
	return cus
}

func TestAttributeResolvesOnDemandImport(t *testing.T) {
	t.Parallel()
	cus := parseAll(t,
		parser.Source{Path: "C.java", Text: "import a.*;\nclass C {\n   public void test() {\n       new A().nonStatic();\n   }\n}"},
		parser.Source{Path: "a/A.java", Text: "package a;\npublic class A {\n   public void nonStatic() {}\n}"},
	)
	body := methodBody(t, classNamed(t, cus[0], "C"), "test")
	mi, ok := body[0].(*java.MethodInvocation)
	require.True(t, ok)
	require.NotNil(t, mi.Type)
	assert.Equal(t, "a.A nonStatic()", mi.Type.String())
	assert.False(t, mi.Type.IsStatic())

	nc, ok := mi.Select.Elem.(*java.NewClass)
	require.True(t, ok)
	require.NotNil(t, nc.Type)
	assert.True(t, nc.Type.IsConstructor())
	assert.Equal(t, "a.A", nc.Type.DeclaringFQN())
}

func TestAttributeResolvesStaticImport(t *testing.T) {
	t.Parallel()
	cus := parseAll(t,
		parser.Source{Path: "C.java", Text: "import static a.A.*;\nclass C {\n   public void test() {\n       foo();\n   }\n}"},
		parser.Source{Path: "a/A.java", Text: "package a;\npublic class A {\n   public static void foo() {}\n}"},
	)
	mi, ok := methodBody(t, classNamed(t, cus[0], "C"), "test")[0].(*java.MethodInvocation)
	require.True(t, ok)
	require.NotNil(t, mi.Type)
	assert.Equal(t, "a.A", mi.Type.DeclaringFQN())
	assert.True(t, mi.Type.IsStatic())
}

func TestAttributeSynthesizesMethodsOfUnknownClasses(t *testing.T) {
	t.Parallel()
	cus := parseAll(t, parser.Source{Path: "C.java", Text: `import java.util.List;
import static org.junit.Assert.*;

class C {
    void test(List<String> names) {
        String s = "x";
        s.trim();
        names.add(s);
        assertEquals(1, names.size());
        Math.max(1, 2L);
    }
}
`})
	body := methodBody(t, classNamed(t, cus[0], "C"), "test")
	require.Len(t, body, 5)

	trim := body[1].(*java.MethodInvocation)
	assert.Equal(t, "java.lang.String", trim.Type.DeclaringFQN())

	add := body[2].(*java.MethodInvocation)
	assert.Equal(t, "java.util.List", add.Type.DeclaringFQN())
	require.Len(t, add.Type.ParamTypes, 1)
	assert.Equal(t, "java.lang.String", java.TypeName(add.Type.ParamTypes[0]))

	assertEquals := body[3].(*java.MethodInvocation)
	assert.Equal(t, "org.junit.Assert", assertEquals.Type.DeclaringFQN())
	assert.True(t, assertEquals.Type.IsStatic())

	maxCall := body[4].(*java.MethodInvocation)
	assert.Equal(t, "java.lang.Math max(int,long)", maxCall.Type.String())
	assert.True(t, maxCall.Type.IsStatic())
}

func TestAttributeDeclarations(t *testing.T) {
	t.Parallel()
	cus := parseAll(t, parser.Source{Path: "p/Outer.java", Text: `package p;

public class Outer extends Base implements Shape {
    private int count;

    static class Inner {
        Inner(String name) {}
    }

    public Inner make() { return new Inner("x"); }
}

interface Shape {
    int SIDES = 4;
    double area();
    default String label() { return "shape"; }
}

class Base {}
`})
	table := cus[0].Table
	require.NotNil(t, table)

	outer, ok := table.Class("p.Outer")
	require.True(t, ok)
	assert.True(t, outer.Declared)
	assert.Equal(t, "p.Base", outer.Supertype.FQN)
	require.Len(t, outer.Interfaces, 1)
	assert.True(t, outer.IsSubtypeOf("p.Shape"))
	assert.True(t, outer.IsSubtypeOf("java.lang.Object"))
	assert.Equal(t, java.Int, outer.Field("count").Type)
	assert.NotNil(t, outer.Constructor(0), "default constructor")

	mk := outer.FindMethod("make", 0)
	require.NotNil(t, mk)
	assert.Equal(t, "p.Outer.Inner", java.TypeName(mk.Return))

	inner, ok := table.Class("p.Outer.Inner")
	require.True(t, ok)
	assert.Nil(t, inner.Constructor(0))
	require.NotNil(t, inner.Constructor(1))

	shape, _ := table.Class("p.Shape")
	area := shape.FindMethod("area", 0)
	require.NotNil(t, area)
	assert.True(t, area.Flags.Has(java.Public))
	assert.True(t, area.Flags.Has(java.Abstract))
	label := shape.FindMethod("label", 0)
	assert.False(t, label.Flags.Has(java.Abstract))
	sides := shape.Field("SIDES")
	assert.True(t, sides.Flags.Has(java.Static))

	ret, ok := methodBody(t, classNamed(t, cus[0], "Outer"), "make")[0].(*java.Return)
	require.True(t, ok)
	nc := ret.Expr.(*java.NewClass)
	assert.Equal(t, "p.Outer.Inner <constructor>(java.lang.String)", nc.Type.String())
}

func TestAttributeExpressionTypes(t *testing.T) {
	t.Parallel()
	cus := parseAll(t, parser.Source{Path: "A.java", Text: `class A {
    int[] values;
    void m(long n) {
        int a = 1 + 2;
        double b = a * 2.0;
        long c = n << 2;
        String d = "v" + a;
        boolean e = a > 0 && !false;
        int f = values[0];
        int g = values.length;
        char h = 'x';
    }
}
`})
	body := methodBody(t, classNamed(t, cus[0], "A"), "m")
	want := []string{"int", "double", "long", "java.lang.String", "boolean", "int", "int", "char"}
	require.Len(t, body, len(want))
	for i, s := range body {
		vd := s.(*java.VariableDecls)
		init := vd.Vars[0].Elem.Init
		assert.Equal(t, want[i], java.TypeName(java.TypeOf(init)), java.Print(init, rewrite.NewPrintOptions()))
	}
}
