package xml

import (
	"fmt"
	"reflect"

	"github.com/dhamidi/recast/rewrite"
)

// Descent tells the walker whether to visit a node's children.
type Descent int

const (
	Continue Descent = iota
	SkipChildren
)

// Visitor has one hook per node variant. Hooks run after the node's
// children were visited; returning nil deletes the node from its list.
type Visitor interface {
	Enter(c *Cursor, n X) Descent
	VisitDocument(c *Cursor, n *Document) X
	VisitProlog(c *Cursor, n *Prolog) X
	VisitXMLDecl(c *Cursor, n *XMLDecl) X
	VisitDocType(c *Cursor, n *DocType) X
	VisitComment(c *Cursor, n *Comment) X
	VisitCharData(c *Cursor, n *CharData) X
	VisitAttribute(c *Cursor, n *Attribute) X
	VisitTag(c *Cursor, n *Tag) X
}

// DefaultVisitor leaves every node unchanged.
type DefaultVisitor struct{}

func (DefaultVisitor) Enter(c *Cursor, n X) Descent { return Continue }

func (DefaultVisitor) VisitDocument(c *Cursor, n *Document) X   { return n }
func (DefaultVisitor) VisitProlog(c *Cursor, n *Prolog) X       { return n }
func (DefaultVisitor) VisitXMLDecl(c *Cursor, n *XMLDecl) X     { return n }
func (DefaultVisitor) VisitDocType(c *Cursor, n *DocType) X     { return n }
func (DefaultVisitor) VisitComment(c *Cursor, n *Comment) X     { return n }
func (DefaultVisitor) VisitCharData(c *Cursor, n *CharData) X   { return n }
func (DefaultVisitor) VisitAttribute(c *Cursor, n *Attribute) X { return n }
func (DefaultVisitor) VisitTag(c *Cursor, n *Tag) X             { return n }

func (n *Document) dispatch(v Visitor, c *Cursor) X  { return v.VisitDocument(c, n) }
func (n *Prolog) dispatch(v Visitor, c *Cursor) X    { return v.VisitProlog(c, n) }
func (n *XMLDecl) dispatch(v Visitor, c *Cursor) X   { return v.VisitXMLDecl(c, n) }
func (n *DocType) dispatch(v Visitor, c *Cursor) X   { return v.VisitDocType(c, n) }
func (n *Comment) dispatch(v Visitor, c *Cursor) X   { return v.VisitComment(c, n) }
func (n *CharData) dispatch(v Visitor, c *Cursor) X  { return v.VisitCharData(c, n) }
func (n *Attribute) dispatch(v Visitor, c *Cursor) X { return v.VisitAttribute(c, n) }
func (n *Tag) dispatch(v Visitor, c *Cursor) X       { return v.VisitTag(c, n) }

// Cursor is the position of a node in the document being walked.
type Cursor struct {
	parent *Cursor
	node   X
	ctx    *rewrite.Context
}

func (c *Cursor) Node() X                   { return c.node }
func (c *Cursor) Parent() *Cursor           { return c.parent }
func (c *Cursor) Context() *rewrite.Context { return c.ctx }

// Path returns the nodes from the root down to the current node.
func (c *Cursor) Path() []X {
	var path []X
	for cur := c; cur != nil; cur = cur.parent {
		path = append(path, cur.node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FirstEnclosing returns the nearest node, starting with the current one,
// for which match returns true.
func (c *Cursor) FirstEnclosing(match func(X) bool) X {
	for cur := c; cur != nil; cur = cur.parent {
		if match(cur.node) {
			return cur.node
		}
	}
	return nil
}

// Enclosing returns the nearest node of type T on the cursor's path.
func Enclosing[T X](c *Cursor) (T, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if t, ok := cur.node.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// TagPath returns the names of the elements from the root element down to
// the current node.
func (c *Cursor) TagPath() []string {
	var names []string
	for _, n := range c.Path() {
		if t, ok := n.(*Tag); ok {
			names = append(names, t.Name)
		}
	}
	return names
}

// Walk visits root depth first and returns the rewritten tree. ctx may be nil.
func Walk(v Visitor, root X, ctx *rewrite.Context) X {
	if ctx == nil {
		ctx = rewrite.NewContext("", "")
	}
	w := &walker{v: v, ctx: ctx}
	return w.walk(nil, root)
}

// Adapt turns a visitor into one the pipeline can run. Files that are not
// XML documents are returned unchanged.
func Adapt(newVisitor func() Visitor) rewrite.TreeVisitor {
	return rewrite.VisitorFunc(func(file rewrite.SourceFile, ctx *rewrite.Context) (rewrite.SourceFile, error) {
		doc, ok := file.(*Document)
		if !ok {
			return file, nil
		}
		out := Walk(newVisitor(), doc, ctx)
		next, ok := out.(*Document)
		if !ok {
			return file, &rewrite.InvariantError{Node: doc.ID(), Message: fmt.Sprintf("document replaced by %T", out)}
		}
		return next, nil
	})
}

type walker struct {
	v   Visitor
	ctx *rewrite.Context
}

func (w *walker) walk(parent *Cursor, n X) X {
	c := &Cursor{parent: parent, node: n, ctx: w.ctx}
	m := n
	if w.v.Enter(c, n) != SkipChildren {
		m = n.accept(w, c)
	}
	c.node = m
	out := m.dispatch(w.v, c)
	if isNil(out) {
		w.ctx.Touch(n.ID())
		return nil
	}
	if out != m {
		w.ctx.Touch(n.ID())
	}
	return out
}

func isNil(n X) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func visitOne[T X](w *walker, c *Cursor, n T, required bool) (T, bool) {
	var zero T
	if isNil(n) {
		return n, false
	}
	out := w.walk(c, n)
	if isNil(out) {
		if required {
			panic(&rewrite.InvariantError{Node: n.ID(), Message: fmt.Sprintf("required %T deleted", n)})
		}
		return zero, true
	}
	t, ok := out.(T)
	if !ok {
		panic(&rewrite.InvariantError{Node: n.ID(), Message: fmt.Sprintf("%T cannot replace %T", out, n)})
	}
	return t, X(t) != X(n)
}

func visitList[T X](w *walker, c *Cursor, list []T) ([]T, bool) {
	var out []T
	changed := false
	for i, n := range list {
		m, ch := visitOne(w, c, n, false)
		if ch && !changed {
			out = make([]T, i, len(list))
			copy(out, list[:i])
			changed = true
		}
		if changed && !isNil(m) {
			out = append(out, m)
		}
	}
	if !changed {
		return list, false
	}
	return out, true
}

func (n *Document) accept(w *walker, c *Cursor) X {
	prolog, c1 := visitOne(w, c, n.Prolog, false)
	root, c2 := visitOne(w, c, n.Root, true)
	epilog, c3 := visitList(w, c, n.Epilog)
	if !c1 && !c2 && !c3 {
		return n
	}
	m := *n
	m.Prolog, m.Root, m.Epilog = prolog, root, epilog
	return &m
}

func (n *Prolog) accept(w *walker, c *Cursor) X {
	decl, c1 := visitOne(w, c, n.XMLDecl, false)
	misc, c2 := visitList(w, c, n.Misc)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.XMLDecl, m.Misc = decl, misc
	return &m
}

func (n *Tag) accept(w *walker, c *Cursor) X {
	attrs, c1 := visitList(w, c, n.Attributes)
	content, c2 := visitList(w, c, n.Content)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Attributes = attrs
	if m.Closing != nil && content == nil {
		content = []Content{}
	}
	m.Content = content
	return &m
}

func (n *XMLDecl) accept(w *walker, c *Cursor) X   { return n }
func (n *DocType) accept(w *walker, c *Cursor) X   { return n }
func (n *Comment) accept(w *walker, c *Cursor) X   { return n }
func (n *CharData) accept(w *walker, c *Cursor) X  { return n }
func (n *Attribute) accept(w *walker, c *Cursor) X { return n }
