package xml

import (
	"slices"
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

const AddToTagName = "xml.AddToTag"

// DefaultIndent is the indent unit used for children of elements that had
// none.
const DefaultIndent = "    "

// Order compares two elements. Insertion keeps children sorted under it.
type Order func(a, b *Tag) int

// ByName orders elements by name.
func ByName(a, b *Tag) int { return strings.Compare(a.Name, b.Name) }

type addOptions struct {
	indent string
}

type AddOption func(*addOptions)

// WithIndent sets the indent unit added to the parent's indentation when an
// element gets its first child.
func WithIndent(unit string) AddOption {
	return func(o *addOptions) {
		o.indent = unit
	}
}

func newAddOptions(opts []AddOption) addOptions {
	o := addOptions{indent: DefaultIndent}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AddToTag returns a visitor inserting child into the element with the
// identity of parent. With a nil order the child is appended.
func AddToTag(parent, child *Tag, order Order, opts ...AddOption) Visitor {
	return &addToTagVisitor{
		matches: func(c *Cursor, t *Tag) bool { return t.ID() == parent.ID() },
		child:   func() *Tag { return child },
		order:   order,
		opts:    newAddOptions(opts),
	}
}

type addToTagVisitor struct {
	DefaultVisitor
	matches func(c *Cursor, t *Tag) bool
	child   func() *Tag
	order   Order
	opts    addOptions
}

func (v *addToTagVisitor) VisitTag(c *Cursor, n *Tag) X {
	if !v.matches(c, n) {
		return n
	}
	child := v.child()
	log.Debugf("adding <%s> to <%s>", child.Name, n.Name)
	return AddChild(n, child, v.order, v.opts.indent)
}

// AddChild returns a copy of parent with child inserted. An empty parent is
// first expanded to separate start and end tags on their own lines; the
// child then gets the parent's indentation plus unit. Otherwise the child
// takes the indentation of the sibling it is placed next to.
func AddChild(parent, child *Tag, order Order, unit string) *Tag {
	t := parent
	if len(t.Content) == 0 && (t.Closing == nil || !strings.Contains(t.Closing.Prefix, "\n")) {
		t = expand(t)
	}

	at := len(t.Content)
	if order != nil {
		for i, c := range t.Content {
			if sibling, ok := c.(*Tag); ok && order(sibling, child) >= 0 {
				at = i
				break
			}
		}
	}

	var prefix string
	siblings := t.ChildTags()
	switch {
	case at < len(t.Content):
		prefix = t.Content[at].Prefix()
	case len(siblings) > 0:
		prefix = siblings[len(siblings)-1].Prefix()
	case strings.Contains(t.Closing.Prefix, "\n"):
		prefix = "\n" + indentOf(t.Closing.Prefix) + unit
	default:
		prefix = "\n" + t.Indent() + unit
	}

	child = reindent(WithPrefix(child, prefix), indentOf(prefix))
	return t.WithContent(slices.Insert(slices.Clone(t.Content), at, Content(child)))
}

// expand turns <a/> and <a></a> into a start tag and an end tag on its own
// line.
func expand(t *Tag) *Tag {
	closing := &Closing{Prefix: "\n" + t.Indent(), Name: t.Name}
	if t.Closing != nil {
		closing.BeforeGT = t.Closing.BeforeGT
	} else {
		t = t.WithBeforeEnd("")
	}
	return t.WithClosing(closing).WithContent([]Content{})
}

// reindent shifts every line break below t by indent.
func reindent(t *Tag, indent string) *Tag {
	if indent == "" {
		return t
	}
	shift := func(s string) string { return strings.ReplaceAll(s, "\n", "\n"+indent) }
	out := *t
	if len(t.Attributes) > 0 {
		out.Attributes = make([]*Attribute, len(t.Attributes))
		for i, a := range t.Attributes {
			out.Attributes[i] = WithPrefix(a, shift(a.Prefix()))
		}
	}
	if t.Content != nil {
		out.Content = make([]Content, len(t.Content))
		for i, c := range t.Content {
			if ct, ok := c.(*Tag); ok {
				c = reindent(ct, indent)
			}
			out.Content[i] = WithPrefix(c, shift(c.Prefix()))
		}
	}
	if t.Closing != nil {
		closing := *t.Closing
		closing.Prefix = shift(closing.Prefix)
		out.Closing = &closing
	}
	return &out
}

// AddToTagRecipe inserts an element into every element matching a path.
type AddToTagRecipe struct {
	xPath   string
	tag     string
	order   Order
	opts    []AddOption
	pattern *PathPattern
	pathErr error
	tagErr  error
}

// NewAddToTag inserts the element written as tag into the elements matched
// by xPath. With a nil order it is appended.
func NewAddToTag(xPath, tag string, order Order, opts ...AddOption) *AddToTagRecipe {
	r := &AddToTagRecipe{xPath: xPath, tag: tag, order: order, opts: opts}
	r.pattern, r.pathErr = CompilePath(xPath)
	if tag != "" {
		_, r.tagErr = ParseTag(tag)
	}
	return r
}

func (r *AddToTagRecipe) Name() string { return AddToTagName }

func (r *AddToTagRecipe) Description() string {
	return "Add " + r.tag + " to elements at " + r.xPath + "."
}

func (r *AddToTagRecipe) Validate() rewrite.Validated {
	v := rewrite.Compiled("xPath", r.xPath, r.pathErr).And(rewrite.Required("tag", r.tag))
	if r.tagErr != nil {
		v = v.And(rewrite.Invalid("tag", r.tag, "is not a well-formed element", r.tagErr))
	}
	return v
}

func (r *AddToTagRecipe) Visitor() rewrite.TreeVisitor {
	return Adapt(func() Visitor {
		return &addToTagVisitor{
			matches: func(c *Cursor, t *Tag) bool { return r.pattern.Matches(c) },
			child:   func() *Tag { return MustParseTag(r.tag) },
			order:   r.order,
			opts:    newAddOptions(r.opts),
		}
	})
}
