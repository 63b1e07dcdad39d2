package xml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

func addToTag(t *testing.T, before string, parent func(*xml.Document) *xml.Tag, child string, order xml.Order, opts ...xml.AddOption) string {
	t.Helper()
	doc := parse(t, before)
	out := xml.Walk(xml.AddToTag(parent(doc), xml.MustParseTag(child), order, opts...), doc, nil)
	return out.(*xml.Document).Print()
}

func root(doc *xml.Document) *xml.Tag { return doc.Root }

func firstChild(doc *xml.Document) *xml.Tag { return doc.Root.ChildTags()[0] }

func TestAddToTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		before string
		parent func(*xml.Document) *xml.Tag
		child  string
		order  xml.Order
		want   string
	}{
		{
			name:   "append after sibling",
			before: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans >\n    <bean id=\"myBean\"/>\n</beans>",
			parent: root,
			child:  `<bean id="myBean2"/>`,
			want:   "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans >\n    <bean id=\"myBean\"/>\n    <bean id=\"myBean2\"/>\n</beans>",
		},
		{
			name:   "self-closing parent",
			before: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans >\n    <bean id=\"myBean\" />\n</beans>",
			parent: firstChild,
			child:  `<property name="myprop" ref="collaborator"/>`,
			want:   "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans >\n    <bean id=\"myBean\">\n        <property name=\"myprop\" ref=\"collaborator\"/>\n    </bean>\n</beans>",
		},
		{
			name:   "empty parent on one line",
			before: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans></beans>",
			parent: root,
			child:  `<bean id="myBean"/>`,
			want:   "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans>\n    <bean id=\"myBean\"/>\n</beans>",
		},
		{
			name:   "ordered",
			before: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans >\n    <banana/>\n</beans>",
			parent: root,
			child:  `<apple/>`,
			order:  xml.ByName,
			want:   "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<beans >\n    <apple/>\n    <banana/>\n</beans>",
		},
		{
			name:   "inline siblings",
			before: `<beans><bean id="myBean"/></beans>`,
			parent: root,
			child:  `<bean id="myBean2"/>`,
			want:   `<beans><bean id="myBean"/><bean id="myBean2"/></beans>`,
		},
		{
			name:   "inline ordered",
			before: `<beans><banana/></beans>`,
			parent: root,
			child:  `<apple/>`,
			order:  xml.ByName,
			want:   `<beans><apple/><banana/></beans>`,
		},
		{
			name:   "ordered append",
			before: "<beans>\n  <apple/>\n  <banana/>\n</beans>",
			parent: root,
			child:  `<cherry/>`,
			order:  xml.ByName,
			want:   "<beans>\n  <apple/>\n  <banana/>\n  <cherry/>\n</beans>",
		},
		{
			name:   "multi-line child",
			before: "<project>\n    <dependencies/>\n</project>",
			parent: firstChild,
			child:  "<dependency>\n    <groupId>g</groupId>\n</dependency>",
			want:   "<project>\n    <dependencies>\n        <dependency>\n            <groupId>g</groupId>\n        </dependency>\n    </dependencies>\n</project>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, addToTag(t, tt.before, tt.parent, tt.child, tt.order))
		})
	}
}

func TestAddToTagWithIndent(t *testing.T) {
	t.Parallel()
	got := addToTag(t, "<a>\n\t<b/>\n</a>", firstChild, "<c/>", nil, xml.WithIndent("\t"))
	assert.Equal(t, "<a>\n\t<b>\n\t\t<c/>\n\t</b>\n</a>", got)
}

func TestAddToTagKeepsChildrenSorted(t *testing.T) {
	t.Parallel()
	doc := parse(t, "<fruit>\n    <kiwi/>\n</fruit>")
	for _, name := range []string{"pear", "apple", "mango", "banana", "zucchini"} {
		out := xml.Walk(xml.AddToTag(doc.Root, xml.MustParseTag("<"+name+"/>"), xml.ByName), doc, nil)
		doc = out.(*xml.Document)
	}
	var names []string
	for _, tag := range doc.Root.ChildTags() {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"apple", "banana", "kiwi", "mango", "pear", "zucchini"}, names)
	assert.Equal(t, "<fruit>\n    <apple/>\n    <banana/>\n    <kiwi/>\n    <mango/>\n    <pear/>\n    <zucchini/>\n</fruit>", doc.Print())
}

func TestAddToTagLeavesSiblingsUntouched(t *testing.T) {
	t.Parallel()
	doc := parse(t, "<a>\n  <b  x='1' ><!-- keep --></b>\n</a>")
	out := xml.Walk(xml.AddToTag(doc.Root, xml.MustParseTag("<c/>"), nil), doc, nil).(*xml.Document)
	assert.Same(t, doc.Root.Content[0], out.Root.Content[0])
	assert.Equal(t, doc.Root.ID(), out.Root.ID())
	assert.Equal(t, "<a>\n  <b  x='1' ><!-- keep --></b>\n  <c/>\n</a>", out.Print())
}

func TestAddToTagRecipe(t *testing.T) {
	t.Parallel()
	doc := parse(t, "<project>\n  <modules>\n    <module>a</module>\n  </modules>\n</project>")
	res := rewrite.NewPipeline().Run(doc, xml.NewAddToTag("/project/modules", "<module>b</module>", nil))
	require.NoError(t, res.Err)
	assert.Equal(t, "<project>\n  <modules>\n    <module>a</module>\n    <module>b</module>\n  </modules>\n</project>", res.Fixed.Print())
	assert.Equal(t, rewrite.StatusApplied, res.Outcomes[0].Status)

	v := xml.NewAddToTag("/project", "<broken>", nil).Validate()
	require.False(t, v.IsValid())
	assert.Equal(t, "tag", v.Failures()[0].Property)

	v = xml.NewAddToTag("", "", nil).Validate()
	require.Len(t, v.Failures(), 2)
	assert.Equal(t, "xPath", v.Failures()[0].Property)
	assert.Equal(t, "tag", v.Failures()[1].Property)
}
