package xml_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

type commentRemover struct{ xml.DefaultVisitor }

func (commentRemover) VisitComment(c *xml.Cursor, n *xml.Comment) xml.X { return nil }

func TestWalkDeletes(t *testing.T) {
	t.Parallel()
	doc := parse(t, "<!-- a -->\n<a>\n  <!-- b -->\n  <b/>\n</a>")
	ctx := rewrite.NewContext("test", doc.Path)
	out := xml.Walk(commentRemover{}, doc, ctx).(*xml.Document)
	assert.Equal(t, "\n<a>\n  <b/>\n</a>", out.Print())
	assert.Len(t, ctx.TouchedIDs(), 2)
	assert.Same(t, doc.Root.ChildTags()[0], out.Root.ChildTags()[0])
}

type rootRemover struct{ xml.DefaultVisitor }

func (rootRemover) VisitTag(c *xml.Cursor, n *xml.Tag) xml.X {
	if _, ok := c.Parent().Node().(*xml.Document); ok {
		return nil
	}
	return n
}

func TestWalkRequiredRoot(t *testing.T) {
	t.Parallel()
	doc := parse(t, "<a/>")
	res := rewrite.NewPipeline().Run(doc, &visitorRecipe{visitor: xml.Adapt(func() xml.Visitor { return rootRemover{} })})
	require.ErrorIs(t, res.Err, rewrite.ErrInternal)
	assert.Equal(t, "<a/>", res.Fixed.Print())
}

type pathCollector struct {
	xml.DefaultVisitor
	paths []string
}

func (v *pathCollector) VisitCharData(c *xml.Cursor, n *xml.CharData) xml.X {
	tag, ok := xml.Enclosing[*xml.Tag](c)
	if ok {
		v.paths = append(v.paths, tag.Name+"="+n.Text)
	}
	v.paths = append(v.paths, strconv.Itoa(len(c.TagPath())))
	return n
}

func TestCursor(t *testing.T) {
	t.Parallel()
	doc := parse(t, "<a><b>x</b><c><d>y</d></c></a>")
	v := &pathCollector{}
	xml.Walk(v, doc, nil)
	assert.Equal(t, []string{"b=x", "2", "d=y", "3"}, v.paths)
}

type visitorRecipe struct {
	visitor rewrite.TreeVisitor
}

func (r *visitorRecipe) Name() string                 { return "test.Visitor" }
func (r *visitorRecipe) Description() string          { return "Run a visitor." }
func (r *visitorRecipe) Validate() rewrite.Validated  { return rewrite.Valid() }
func (r *visitorRecipe) Visitor() rewrite.TreeVisitor { return r.visitor }
