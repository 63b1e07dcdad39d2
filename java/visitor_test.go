package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

const walkSource = `class A {
    void a() {
        first();
        ;
        second(1 + 2);
    }

    void b() {
        third();
    }
}
`

// renamer renames invocations of one method.
type renamer struct {
	java.DefaultVisitor
	from, to string
}

func (v *renamer) VisitMethodInvocation(c *java.Cursor, n *java.MethodInvocation) java.J {
	if n.Name.Name != v.from {
		return n
	}
	return n.WithName(n.Name.WithName(v.to))
}

func TestWalkCopiesOnlyThePathToTheChange(t *testing.T) {
	t.Parallel()
	cu := parseAll(t, walkSource)[0]
	ctx := rewrite.NewContext("test", cu.Path)
	out := java.Walk(&renamer{from: "second", to: "renamed"}, cu, ctx).(*java.CompilationUnit)

	assert.Equal(t, walkSource, cu.Print(), "original is unchanged")
	assert.Contains(t, out.Print(), "renamed(1 + 2);")
	assert.NotSame(t, cu, out)
	assert.Equal(t, cu.ID(), out.ID())

	before := cu.Classes[0].(*java.ClassDecl).Body
	after := out.Classes[0].(*java.ClassDecl).Body
	assert.NotSame(t, before, after)
	assert.Same(t, before.Statements[1].Elem, after.Statements[1].Elem, "method b is shared")

	bodyBefore := before.Statements[0].Elem.(*java.MethodDecl).Body.Statements
	bodyAfter := after.Statements[0].Elem.(*java.MethodDecl).Body.Statements
	assert.Same(t, bodyBefore[0].Elem, bodyAfter[0].Elem)
	assert.NotSame(t, bodyBefore[2].Elem, bodyAfter[2].Elem)

	assert.Len(t, ctx.TouchedIDs(), 1)
	assert.Equal(t, bodyBefore[2].Elem.ID(), ctx.TouchedIDs()[0])
}

func TestWalkUnchangedReturnsSameTree(t *testing.T) {
	t.Parallel()
	cu := parseAll(t, walkSource)[0]
	out := java.Walk(&renamer{from: "missing", to: "x"}, cu, nil)
	assert.Same(t, cu, out)
}

type emptyRemover struct{ java.DefaultVisitor }

func (emptyRemover) VisitEmpty(c *java.Cursor, n *java.Empty) java.J { return nil }

func TestWalkDeletesFromLists(t *testing.T) {
	t.Parallel()
	cu := parseAll(t, walkSource)[0]
	out := java.Walk(emptyRemover{}, cu, nil)
	assert.Equal(t, "class A {\n    void a() {\n        first();\n        second(1 + 2);\n    }\n\n    void b() {\n        third();\n    }\n}\n",
		java.Print(out, rewrite.NewPrintOptions()))
}

type nameRemover struct{ java.DefaultVisitor }

func (nameRemover) VisitIdent(c *java.Cursor, n *java.Ident) java.J {
	if _, ok := c.Parent().Node().(*java.MethodInvocation); ok {
		return nil
	}
	return n
}

func TestWalkPanicsWhenRequiredChildIsDeleted(t *testing.T) {
	t.Parallel()
	cu := parseAll(t, walkSource)[0]
	defer func() {
		r := recover()
		require.NotNil(t, r)
		ie, ok := r.(*rewrite.InvariantError)
		require.True(t, ok)
		assert.Contains(t, ie.Message, "required")
	}()
	java.Walk(nameRemover{}, cu, nil)
}

func TestAdaptReportsBrokenInvariantsAsInternalErrors(t *testing.T) {
	t.Parallel()
	cu := parseAll(t, walkSource)[0]
	recipe := &visitorRecipe{visitor: java.Adapt(func() java.Visitor { return nameRemover{} })}
	res := rewrite.NewPipeline().Run(cu, recipe)
	require.Error(t, res.Err)
	var ie *rewrite.InternalError
	require.ErrorAs(t, res.Err, &ie)
	assert.Equal(t, walkSource, res.Fixed.Print())
}

// pathRecorder records cursor information at every invocation.
type pathRecorder struct {
	java.DefaultVisitor
	methods []string
	depths  []int
}

func (v *pathRecorder) Enter(c *java.Cursor, n java.J) java.Descent {
	if md, ok := n.(*java.MethodDecl); ok && md.Name.Name == "b" {
		return java.SkipChildren
	}
	return java.Continue
}

func (v *pathRecorder) VisitMethodInvocation(c *java.Cursor, n *java.MethodInvocation) java.J {
	md, ok := java.Enclosing[*java.MethodDecl](c)
	if ok {
		v.methods = append(v.methods, md.Name.Name+"/"+n.Name.Name)
	}
	v.depths = append(v.depths, len(c.Path()))
	cd := c.FirstEnclosing(func(j java.J) bool {
		_, ok := j.(*java.ClassDecl)
		return ok
	})
	if cd == nil || c.CompilationUnit() == nil {
		panic("missing ancestors")
	}
	return n
}

func TestCursorAndSkipChildren(t *testing.T) {
	t.Parallel()
	cu := parseAll(t, walkSource)[0]
	v := &pathRecorder{}
	java.Walk(v, cu, nil)
	assert.Equal(t, []string{"a/first", "a/second"}, v.methods)
	// CompilationUnit, ClassDecl, Block, MethodDecl, Block, MethodInvocation
	assert.Equal(t, []int{6, 6}, v.depths)
}

type visitorRecipe struct {
	visitor rewrite.TreeVisitor
}

func (r *visitorRecipe) Name() string                 { return "test.Visitor" }
func (r *visitorRecipe) Description() string          { return "Run a visitor." }
func (r *visitorRecipe) Validate() rewrite.Validated  { return rewrite.Valid() }
func (r *visitorRecipe) Visitor() rewrite.TreeVisitor { return r.visitor }
