package java

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

// Visitor has one hook per node variant. Each hook is called after the
// node's children have been visited and receives a node that already holds
// the visited children. Returning a different node replaces it; returning
// nil deletes it from a list or optional slot.
//
// Embed DefaultVisitor to override only the hooks you need.
type Visitor interface {
	Enter(c *Cursor, n J) Descent
	VisitCompilationUnit(c *Cursor, n *CompilationUnit) J
	VisitPackage(c *Cursor, n *Package) J
	VisitImport(c *Cursor, n *Import) J
	VisitClassDecl(c *Cursor, n *ClassDecl) J
	VisitBlock(c *Cursor, n *Block) J
	VisitMethodDecl(c *Cursor, n *MethodDecl) J
	VisitVariableDecls(c *Cursor, n *VariableDecls) J
	VisitNamedVariable(c *Cursor, n *NamedVariable) J
	VisitReturn(c *Cursor, n *Return) J
	VisitIf(c *Cursor, n *If) J
	VisitElse(c *Cursor, n *Else) J
	VisitWhile(c *Cursor, n *While) J
	VisitThrow(c *Cursor, n *Throw) J
	VisitUnknown(c *Cursor, n *Unknown) J
	VisitEmpty(c *Cursor, n *Empty) J
	VisitIdent(c *Cursor, n *Ident) J
	VisitFieldAccess(c *Cursor, n *FieldAccess) J
	VisitMethodInvocation(c *Cursor, n *MethodInvocation) J
	VisitNewClass(c *Cursor, n *NewClass) J
	VisitLiteral(c *Cursor, n *Literal) J
	VisitBinary(c *Cursor, n *Binary) J
	VisitUnary(c *Cursor, n *Unary) J
	VisitAssign(c *Cursor, n *Assign) J
	VisitParens(c *Cursor, n *Parens) J
	VisitArrayAccess(c *Cursor, n *ArrayAccess) J
	VisitTernary(c *Cursor, n *Ternary) J
	VisitPrimitiveType(c *Cursor, n *PrimitiveType) J
	VisitArrayType(c *Cursor, n *ArrayType) J
	VisitParameterizedType(c *Cursor, n *ParameterizedType) J
	VisitWildcard(c *Cursor, n *Wildcard) J
	VisitModifier(c *Cursor, n *Modifier) J
	VisitAnnotation(c *Cursor, n *Annotation) J
}

// DefaultVisitor leaves every node unchanged.
type DefaultVisitor struct{}

func (DefaultVisitor) Enter(c *Cursor, n J) Descent { return Continue }

func (DefaultVisitor) VisitCompilationUnit(c *Cursor, n *CompilationUnit) J     { return n }
func (DefaultVisitor) VisitPackage(c *Cursor, n *Package) J                     { return n }
func (DefaultVisitor) VisitImport(c *Cursor, n *Import) J                       { return n }
func (DefaultVisitor) VisitClassDecl(c *Cursor, n *ClassDecl) J                 { return n }
func (DefaultVisitor) VisitBlock(c *Cursor, n *Block) J                         { return n }
func (DefaultVisitor) VisitMethodDecl(c *Cursor, n *MethodDecl) J               { return n }
func (DefaultVisitor) VisitVariableDecls(c *Cursor, n *VariableDecls) J         { return n }
func (DefaultVisitor) VisitNamedVariable(c *Cursor, n *NamedVariable) J         { return n }
func (DefaultVisitor) VisitReturn(c *Cursor, n *Return) J                       { return n }
func (DefaultVisitor) VisitIf(c *Cursor, n *If) J                               { return n }
func (DefaultVisitor) VisitElse(c *Cursor, n *Else) J                           { return n }
func (DefaultVisitor) VisitWhile(c *Cursor, n *While) J                         { return n }
func (DefaultVisitor) VisitThrow(c *Cursor, n *Throw) J                         { return n }
func (DefaultVisitor) VisitUnknown(c *Cursor, n *Unknown) J                     { return n }
func (DefaultVisitor) VisitEmpty(c *Cursor, n *Empty) J                         { return n }
func (DefaultVisitor) VisitIdent(c *Cursor, n *Ident) J                         { return n }
func (DefaultVisitor) VisitFieldAccess(c *Cursor, n *FieldAccess) J             { return n }
func (DefaultVisitor) VisitMethodInvocation(c *Cursor, n *MethodInvocation) J   { return n }
func (DefaultVisitor) VisitNewClass(c *Cursor, n *NewClass) J                   { return n }
func (DefaultVisitor) VisitLiteral(c *Cursor, n *Literal) J                     { return n }
func (DefaultVisitor) VisitBinary(c *Cursor, n *Binary) J                       { return n }
func (DefaultVisitor) VisitUnary(c *Cursor, n *Unary) J                         { return n }
func (DefaultVisitor) VisitAssign(c *Cursor, n *Assign) J                       { return n }
func (DefaultVisitor) VisitParens(c *Cursor, n *Parens) J                       { return n }
func (DefaultVisitor) VisitArrayAccess(c *Cursor, n *ArrayAccess) J             { return n }
func (DefaultVisitor) VisitTernary(c *Cursor, n *Ternary) J                     { return n }
func (DefaultVisitor) VisitPrimitiveType(c *Cursor, n *PrimitiveType) J         { return n }
func (DefaultVisitor) VisitArrayType(c *Cursor, n *ArrayType) J                 { return n }
func (DefaultVisitor) VisitParameterizedType(c *Cursor, n *ParameterizedType) J { return n }
func (DefaultVisitor) VisitWildcard(c *Cursor, n *Wildcard) J                   { return n }
func (DefaultVisitor) VisitModifier(c *Cursor, n *Modifier) J                   { return n }
func (DefaultVisitor) VisitAnnotation(c *Cursor, n *Annotation) J               { return n }

func (n *CompilationUnit) dispatch(v Visitor, c *Cursor) J   { return v.VisitCompilationUnit(c, n) }
func (n *Package) dispatch(v Visitor, c *Cursor) J           { return v.VisitPackage(c, n) }
func (n *Import) dispatch(v Visitor, c *Cursor) J            { return v.VisitImport(c, n) }
func (n *ClassDecl) dispatch(v Visitor, c *Cursor) J         { return v.VisitClassDecl(c, n) }
func (n *Block) dispatch(v Visitor, c *Cursor) J             { return v.VisitBlock(c, n) }
func (n *MethodDecl) dispatch(v Visitor, c *Cursor) J        { return v.VisitMethodDecl(c, n) }
func (n *VariableDecls) dispatch(v Visitor, c *Cursor) J     { return v.VisitVariableDecls(c, n) }
func (n *NamedVariable) dispatch(v Visitor, c *Cursor) J     { return v.VisitNamedVariable(c, n) }
func (n *Return) dispatch(v Visitor, c *Cursor) J            { return v.VisitReturn(c, n) }
func (n *If) dispatch(v Visitor, c *Cursor) J                { return v.VisitIf(c, n) }
func (n *Else) dispatch(v Visitor, c *Cursor) J              { return v.VisitElse(c, n) }
func (n *While) dispatch(v Visitor, c *Cursor) J             { return v.VisitWhile(c, n) }
func (n *Throw) dispatch(v Visitor, c *Cursor) J             { return v.VisitThrow(c, n) }
func (n *Unknown) dispatch(v Visitor, c *Cursor) J           { return v.VisitUnknown(c, n) }
func (n *Empty) dispatch(v Visitor, c *Cursor) J             { return v.VisitEmpty(c, n) }
func (n *Ident) dispatch(v Visitor, c *Cursor) J             { return v.VisitIdent(c, n) }
func (n *FieldAccess) dispatch(v Visitor, c *Cursor) J       { return v.VisitFieldAccess(c, n) }
func (n *MethodInvocation) dispatch(v Visitor, c *Cursor) J  { return v.VisitMethodInvocation(c, n) }
func (n *NewClass) dispatch(v Visitor, c *Cursor) J          { return v.VisitNewClass(c, n) }
func (n *Literal) dispatch(v Visitor, c *Cursor) J           { return v.VisitLiteral(c, n) }
func (n *Binary) dispatch(v Visitor, c *Cursor) J            { return v.VisitBinary(c, n) }
func (n *Unary) dispatch(v Visitor, c *Cursor) J             { return v.VisitUnary(c, n) }
func (n *Assign) dispatch(v Visitor, c *Cursor) J            { return v.VisitAssign(c, n) }
func (n *Parens) dispatch(v Visitor, c *Cursor) J            { return v.VisitParens(c, n) }
func (n *ArrayAccess) dispatch(v Visitor, c *Cursor) J       { return v.VisitArrayAccess(c, n) }
func (n *Ternary) dispatch(v Visitor, c *Cursor) J           { return v.VisitTernary(c, n) }
func (n *PrimitiveType) dispatch(v Visitor, c *Cursor) J     { return v.VisitPrimitiveType(c, n) }
func (n *ArrayType) dispatch(v Visitor, c *Cursor) J         { return v.VisitArrayType(c, n) }
func (n *ParameterizedType) dispatch(v Visitor, c *Cursor) J { return v.VisitParameterizedType(c, n) }
func (n *Wildcard) dispatch(v Visitor, c *Cursor) J          { return v.VisitWildcard(c, n) }
func (n *Modifier) dispatch(v Visitor, c *Cursor) J          { return v.VisitModifier(c, n) }
func (n *Annotation) dispatch(v Visitor, c *Cursor) J        { return v.VisitAnnotation(c, n) }

// Cursor is the position of a node in the tree being walked.
type Cursor struct {
	parent *Cursor
	node   J
	ctx    *rewrite.Context
}

func (c *Cursor) Node() J                   { return c.node }
func (c *Cursor) Parent() *Cursor           { return c.parent }
func (c *Cursor) Context() *rewrite.Context { return c.ctx }

// Path returns the nodes from the root down to the current node.
func (c *Cursor) Path() []J {
	var path []J
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
func (c *Cursor) FirstEnclosing(match func(J) bool) J {
	for cur := c; cur != nil; cur = cur.parent {
		if match(cur.node) {
			return cur.node
		}
	}
	return nil
}

// Enclosing returns the nearest node of type T on the cursor's path.
func Enclosing[T J](c *Cursor) (T, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if t, ok := cur.node.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func (c *Cursor) CompilationUnit() *CompilationUnit {
	cu, _ := Enclosing[*CompilationUnit](c)
	return cu
}

// Walk visits root depth first and returns the rewritten tree. ctx may be nil.
func Walk(v Visitor, root J, ctx *rewrite.Context) J {
	if ctx == nil {
		ctx = rewrite.NewContext("", "")
	}
	w := &walker{v: v, ctx: ctx}
	return w.walk(nil, root)
}

// Adapt turns v into a visitor the pipeline can run. Files that are not
// Java compilation units are returned unchanged.
func Adapt(newVisitor func() Visitor) rewrite.TreeVisitor {
	return rewrite.VisitorFunc(func(file rewrite.SourceFile, ctx *rewrite.Context) (rewrite.SourceFile, error) {
		cu, ok := file.(*CompilationUnit)
		if !ok {
			return file, nil
		}
		out := Walk(newVisitor(), cu, ctx)
		next, ok := out.(*CompilationUnit)
		if !ok {
			return file, &rewrite.InvariantError{Node: cu.ID(), Message: fmt.Sprintf("compilation unit replaced by %T", out)}
		}
		return next, nil
	})
}

type walker struct {
	v   Visitor
	ctx *rewrite.Context
}

func (w *walker) walk(parent *Cursor, n J) J {
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

func isNil(n J) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func visitOne[T J](w *walker, c *Cursor, n T, required bool) (T, bool) {
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
	return t, J(t) != J(n)
}

func visitList[T J](w *walker, c *Cursor, list []T) ([]T, bool) {
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

func visitPadded[T J](w *walker, c *Cursor, p Padded[T]) (Padded[T], bool) {
	e, ch := visitOne(w, c, p.Elem, true)
	if !ch {
		return p, false
	}
	return Padded[T]{Elem: e, After: p.After}, true
}

func visitPaddedPtr[T J](w *walker, c *Cursor, p *Padded[T]) (*Padded[T], bool) {
	if p == nil {
		return nil, false
	}
	e, ch := visitOne(w, c, p.Elem, false)
	if !ch {
		return p, false
	}
	if isNil(e) {
		return nil, true
	}
	return &Padded[T]{Elem: e, After: p.After}, true
}

func visitPaddedList[T J](w *walker, c *Cursor, list []Padded[T]) ([]Padded[T], bool) {
	var out []Padded[T]
	changed := false
	for i, p := range list {
		e, ch := visitOne(w, c, p.Elem, false)
		if ch && !changed {
			out = make([]Padded[T], i, len(list))
			copy(out, list[:i])
			changed = true
		}
		if changed && !isNil(e) {
			out = append(out, Padded[T]{Elem: e, After: p.After})
		}
	}
	if !changed {
		return list, false
	}
	return out, true
}

func visitContainer[T J](w *walker, c *Cursor, ct Container[T]) (Container[T], bool) {
	elems, ch := visitPaddedList(w, c, ct.Elems)
	if !ch {
		return ct, false
	}
	ct.Elems = elems
	return ct, true
}

func visitContainerPtr[T J](w *walker, c *Cursor, ct *Container[T]) (*Container[T], bool) {
	if ct == nil {
		return nil, false
	}
	next, ch := visitContainer(w, c, *ct)
	if !ch {
		return ct, false
	}
	return &next, true
}
