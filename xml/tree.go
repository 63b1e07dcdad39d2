// Package xml models XML documents as lossless, immutable syntax trees.
//
// Every node records the whitespace in front of it, so printing an
// unmodified document reproduces its text exactly. Whitespace inside an
// element that precedes a child belongs to the child; whitespace before the
// closing tag belongs to the Closing of the element.
package xml

import (
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

// X is implemented by every XML node. The set of implementations is closed.
type X interface {
	rewrite.Tree
	Prefix() string
	Markers() rewrite.Markers

	clone() X
	baseRef() *Base
	accept(w *walker, c *Cursor) X
	dispatch(v Visitor, c *Cursor) X
}

// Content is a node that can appear between an element's tags.
type Content interface {
	X
	isContent()
}

// Base holds the identity, prefix and markers every node embeds.
type Base struct {
	id      rewrite.ID
	prefix  string
	markers rewrite.Markers
}

func NewBase(prefix string) Base {
	return Base{id: rewrite.NewID(), prefix: prefix}
}

func (b *Base) ID() rewrite.ID           { return b.id }
func (b *Base) Prefix() string           { return b.prefix }
func (b *Base) Markers() rewrite.Markers { return b.markers }
func (b *Base) baseRef() *Base           { return b }

// WithPrefix returns a copy of n with prefix p.
func WithPrefix[T X](n T, p string) T {
	c := n.clone().(T)
	c.baseRef().prefix = p
	return c
}

// WithMarkers returns a copy of n carrying m.
func WithMarkers[T X](n T, m rewrite.Markers) T {
	c := n.clone().(T)
	c.baseRef().markers = m
	return c
}

// Document is a parsed XML file.
type Document struct {
	Base
	Path   string
	Prolog *Prolog
	Root   *Tag
	// Epilog holds comments and processing instructions after the root.
	Epilog []Content
	EOF    string
}

func (n *Document) SourcePath() string { return n.Path }

func (n *Document) Print(opts ...rewrite.PrintOption) string {
	return Print(n, rewrite.NewPrintOptions(opts...))
}

func (n *Document) WithRoot(root *Tag) *Document {
	c := *n
	c.Root = root
	return &c
}

// Prolog is everything in front of the root element.
type Prolog struct {
	Base
	XMLDecl *XMLDecl
	Misc    []Content
}

// XMLDecl is a processing instruction, including the <?xml ...?>
// declaration. Body is the verbatim text between the target and "?>".
type XMLDecl struct {
	Base
	Name string
	Body string
}

// DocType is a verbatim <!DOCTYPE ...> declaration.
type DocType struct {
	Base
	Text string
}

type Comment struct {
	Base
	Text string
}

// CharData is text content. Leading whitespace is the prefix and trailing
// whitespace belongs to the following node. Text is kept escaped as written.
type CharData struct {
	Base
	Text  string
	CDATA bool
}

type Attribute struct {
	Base
	Key      string
	BeforeEq string
	AfterEq  string
	Quote    byte
	// Value is kept escaped as written.
	Value string
}

// Closing is the end tag of an element written with separate tags.
type Closing struct {
	Prefix string
	Name   string
	// BeforeGT is the whitespace between the name and ">".
	BeforeGT string
}

// Tag is an element. A nil Closing means the element is self-closing.
type Tag struct {
	Base
	Name       string
	Attributes []*Attribute
	// BeforeEnd is the whitespace in front of ">" or "/>" of the start tag.
	BeforeEnd string
	Content   []Content
	Closing   *Closing
}

func NewTag(name string) *Tag {
	return &Tag{Base: NewBase(""), Name: name}
}

func (n *Tag) SelfClosing() bool { return n.Closing == nil }

func (n *Tag) WithName(name string) *Tag {
	c := *n
	c.Name = name
	if c.Closing != nil {
		closing := *c.Closing
		closing.Name = name
		c.Closing = &closing
	}
	return &c
}

func (n *Tag) WithContent(content []Content) *Tag {
	c := *n
	c.Content = content
	return &c
}

func (n *Tag) WithClosing(closing *Closing) *Tag {
	c := *n
	c.Closing = closing
	return &c
}

func (n *Tag) WithBeforeEnd(s string) *Tag {
	c := *n
	c.BeforeEnd = s
	return &c
}

func (n *Tag) WithAttributes(attrs []*Attribute) *Tag {
	c := *n
	c.Attributes = attrs
	return &c
}

// Indent returns the indentation of the start tag.
func (n *Tag) Indent() string {
	return indentOf(n.Prefix())
}

// ChildTags returns the element children of n.
func (n *Tag) ChildTags() []*Tag {
	var tags []*Tag
	for _, c := range n.Content {
		if t, ok := c.(*Tag); ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// Child returns the first child element called name.
func (n *Tag) Child(name string) (*Tag, bool) {
	for _, t := range n.ChildTags() {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

func (n *Tag) Children(name string) []*Tag {
	var tags []*Tag
	for _, t := range n.ChildTags() {
		if t.Name == name {
			tags = append(tags, t)
		}
	}
	return tags
}

// Value returns the unescaped text content of n without surrounding
// whitespace.
func (n *Tag) Value() string {
	var sb strings.Builder
	for _, c := range n.Content {
		if cd, ok := c.(*CharData); ok {
			if cd.CDATA {
				sb.WriteString(cd.Text)
			} else {
				sb.WriteString(unescape(cd.Text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// ChildValue returns the value of the first child element called name.
func (n *Tag) ChildValue(name string) (string, bool) {
	t, ok := n.Child(name)
	if !ok {
		return "", false
	}
	return t.Value(), true
}

func (n *Tag) Attr(key string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Key == key {
			return unescape(a.Value), true
		}
	}
	return "", false
}

func indentOf(s string) string {
	i := strings.LastIndexByte(s, '\n')
	if i < 0 {
		return ""
	}
	return s[i+1:]
}

var (
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	unescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")
)

// Escape escapes text for use as character data.
func Escape(s string) string { return escaper.Replace(s) }

func unescape(s string) string { return unescaper.Replace(s) }

func (*XMLDecl) isContent()  {}
func (*DocType) isContent()  {}
func (*Comment) isContent()  {}
func (*CharData) isContent() {}
func (*Tag) isContent()      {}

func (n *Document) clone() X  { c := *n; return &c }
func (n *Prolog) clone() X    { c := *n; return &c }
func (n *XMLDecl) clone() X   { c := *n; return &c }
func (n *DocType) clone() X   { c := *n; return &c }
func (n *Comment) clone() X   { c := *n; return &c }
func (n *CharData) clone() X  { c := *n; return &c }
func (n *Attribute) clone() X { c := *n; return &c }
func (n *Tag) clone() X       { c := *n; return &c }
