// Package java models Java compilation units as lossless, immutable syntax
// trees with attributed types, and provides the visitor, printer and method
// pattern matcher that recipes are built from.
package java

import (
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

// Space is the exact whitespace and comment text in front of a node.
type Space string

// Indent returns the text following the last newline, or "" when s has no
// newline.
func (s Space) Indent() string {
	i := strings.LastIndexByte(string(s), '\n')
	if i < 0 {
		return ""
	}
	return string(s[i+1:])
}

func (s Space) HasNewline() bool {
	return strings.ContainsRune(string(s), '\n')
}

// J is implemented by every Java node. The set of implementations is closed.
type J interface {
	rewrite.Tree
	Prefix() Space
	Markers() rewrite.Markers

	clone() J
	baseRef() *Base
	accept(w *walker, c *Cursor) J
	dispatch(v Visitor, c *Cursor) J
}

type Statement interface {
	J
	isStatement()
}

type Expression interface {
	J
	isExpression()
}

// TypeTree is an expression naming a type.
type TypeTree interface {
	Expression
	isTypeTree()
}

// Base holds the identity, prefix and markers every node embeds.
type Base struct {
	id      rewrite.ID
	prefix  Space
	markers rewrite.Markers
}

func NewBase(prefix Space) Base {
	return Base{id: rewrite.NewID(), prefix: prefix}
}

func (b *Base) ID() rewrite.ID           { return b.id }
func (b *Base) Prefix() Space            { return b.prefix }
func (b *Base) Markers() rewrite.Markers { return b.markers }
func (b *Base) baseRef() *Base           { return b }

// WithPrefix returns a copy of n with prefix p.
func WithPrefix[T J](n T, p Space) T {
	c := n.clone().(T)
	c.baseRef().prefix = p
	return c
}

// WithMarkers returns a copy of n carrying m.
func WithMarkers[T J](n T, m rewrite.Markers) T {
	c := n.clone().(T)
	c.baseRef().markers = m
	return c
}

// Padded is an element followed by the space before its separator or
// closing delimiter.
type Padded[T any] struct {
	Elem  T
	After Space
}

// Container is a delimited, separated list such as an argument list.
// Before is the space in front of the opening delimiter; Inner is the space
// between the delimiters when the list is empty.
type Container[T any] struct {
	Before Space
	Elems  []Padded[T]
	Inner  Space
}

func (c Container[T]) Len() int { return len(c.Elems) }

// List returns the elements without their padding.
func (c Container[T]) List() []T {
	out := make([]T, len(c.Elems))
	for i, e := range c.Elems {
		out[i] = e.Elem
	}
	return out
}

// ContainerOf builds a container separating elements with ", ".
func ContainerOf[T J](elems ...T) Container[T] {
	c := Container[T]{}
	for i, e := range elems {
		if i > 0 {
			e = WithPrefix(e, " ")
		}
		c.Elems = append(c.Elems, Padded[T]{Elem: e})
	}
	return c
}

type CompilationUnit struct {
	Base
	Path    string
	Package *Package
	Imports []*Import
	Classes []Statement
	EOF     Space
	Table   *Table
}

func (n *CompilationUnit) SourcePath() string { return n.Path }

func (n *CompilationUnit) Print(opts ...rewrite.PrintOption) string {
	return Print(n, rewrite.NewPrintOptions(opts...))
}

func (n *CompilationUnit) WithImports(imports []*Import) *CompilationUnit {
	c := *n
	c.Imports = imports
	return &c
}

func (n *CompilationUnit) WithClasses(classes []Statement) *CompilationUnit {
	c := *n
	c.Classes = classes
	return &c
}

// PackageName returns the declared package, or "" for the default package.
func (n *CompilationUnit) PackageName() string {
	if n.Package == nil {
		return ""
	}
	return QualifiedName(n.Package.Name)
}

type Package struct {
	Base
	Name Expression
	Semi Space
}

type Import struct {
	Base
	Static       bool
	StaticPrefix Space
	Qualid       *FieldAccess
	Semi         Space
}

// NewImport builds `import [static] fqn;` with a newline prefix.
func NewImport(fqn string, static bool) *Import {
	qualid, _ := NewQualifiedName(fqn).(*FieldAccess)
	imp := &Import{Base: NewBase("\n"), Static: static, Qualid: qualid}
	if static {
		imp.StaticPrefix = " "
	}
	imp.Qualid = WithPrefix(imp.Qualid, " ")
	return imp
}

// TypeName returns the imported name, e.g. "a.B", "a.*" or "a.B.foo".
func (n *Import) TypeName() string {
	return QualifiedName(n.Qualid)
}

// Qualifier returns the imported name without its last segment.
func (n *Import) Qualifier() string {
	return QualifiedName(n.Qualid.Target.Elem)
}

func (n *Import) SimpleName() string {
	return n.Qualid.Name.Name
}

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "@interface"
)

type ClassDecl struct {
	Base
	Modifiers     []J
	KindPrefix    Space
	Kind          ClassKind
	Name          *Ident
	TypeParams    *Unknown
	ExtendsPrefix Space
	Extends       TypeTree
	// Implements holds the implemented interfaces, or the extended
	// interfaces of an interface declaration.
	Implements *Container[TypeTree]
	Body       *Block
	Type       *Class
}

func (n *ClassDecl) WithImplements(impl *Container[TypeTree]) *ClassDecl {
	c := *n
	c.Implements = impl
	return &c
}

func (n *ClassDecl) WithType(t *Class) *ClassDecl {
	c := *n
	c.Type = t
	return &c
}

type Block struct {
	Base
	Statements []Padded[Statement]
	End        Space
}

func (n *Block) WithStatements(stmts []Padded[Statement]) *Block {
	c := *n
	c.Statements = stmts
	return &c
}

type MethodDecl struct {
	Base
	Modifiers  []J
	TypeParams *Unknown
	ReturnType TypeTree
	Name       *Ident
	Params     Container[*VariableDecls]
	Throws     *Container[TypeTree]
	Body       *Block
	Type       *Method
}

func (n *MethodDecl) IsConstructor() bool { return n.ReturnType == nil }

func (n *MethodDecl) WithName(name *Ident) *MethodDecl {
	c := *n
	c.Name = name
	return &c
}

func (n *MethodDecl) WithType(t *Method) *MethodDecl {
	c := *n
	c.Type = t
	return &c
}

type VariableDecls struct {
	Base
	Modifiers []J
	TypeExpr  TypeTree
	// Varargs is the space before "..." on a variable arity parameter.
	Varargs *Space
	Vars    []Padded[*NamedVariable]
}

type NamedVariable struct {
	Base
	Name     *Ident
	EqPrefix Space
	Init     Expression
}

type Return struct {
	Base
	Expr Expression
}

type If struct {
	Base
	Cond *Parens
	Then Padded[Statement]
	Else *Else
}

type Else struct {
	Base
	Body Padded[Statement]
}

type While struct {
	Base
	Cond *Parens
	Body Padded[Statement]
}

type Throw struct {
	Base
	Exception Expression
}

// Unknown holds source text the parser could not model, verbatim.
type Unknown struct {
	Base
	Text string
}

// Empty is a lone semicolon.
type Empty struct {
	Base
}

type Ident struct {
	Base
	Name string
	Type Type
}

func NewIdent(name string, t Type) *Ident {
	return &Ident{Base: NewBase(""), Name: name, Type: t}
}

func (n *Ident) WithName(name string) *Ident {
	c := *n
	c.Name = name
	return &c
}

func (n *Ident) WithType(t Type) *Ident {
	c := *n
	c.Type = t
	return &c
}

type FieldAccess struct {
	Base
	Target Padded[Expression]
	Name   *Ident
	Type   Type
}

// NewQualifiedName builds an Ident or a FieldAccess chain from a dotted name.
func NewQualifiedName(name string) Expression {
	parts := strings.Split(name, ".")
	var expr Expression = NewIdent(parts[0], nil)
	for _, p := range parts[1:] {
		expr = &FieldAccess{
			Base:   NewBase(""),
			Target: Padded[Expression]{Elem: expr},
			Name:   NewIdent(p, nil),
		}
	}
	return expr
}

type MethodInvocation struct {
	Base
	Select *Padded[Expression]
	Name   *Ident
	Args   Container[Expression]
	Type   *Method
}

func (n *MethodInvocation) WithSelect(sel *Padded[Expression]) *MethodInvocation {
	c := *n
	c.Select = sel
	return &c
}

func (n *MethodInvocation) WithName(name *Ident) *MethodInvocation {
	c := *n
	c.Name = name
	return &c
}

func (n *MethodInvocation) WithType(t *Method) *MethodInvocation {
	c := *n
	c.Type = t
	return &c
}

type NewClass struct {
	Base
	Clazz TypeTree
	Args  Container[Expression]
	Body  *Block
	Type  *Method
}

type Literal struct {
	Base
	Source string
	Type   Type
}

type Binary struct {
	Base
	Left     Expression
	OpPrefix Space
	Operator string
	Right    Expression
	Type     Type
}

type Unary struct {
	Base
	Operator string
	Postfix  bool
	OpPrefix Space
	Operand  Expression
	Type     Type
}

type Assign struct {
	Base
	Variable Expression
	OpPrefix Space
	Operator string
	Value    Expression
	Type     Type
}

type Parens struct {
	Base
	Tree Padded[Expression]
	Type Type
}

type ArrayAccess struct {
	Base
	Indexed       Expression
	BracketPrefix Space
	Index         Padded[Expression]
	Type          Type
}

type Ternary struct {
	Base
	Cond        Expression
	QPrefix     Space
	True        Expression
	ColonPrefix Space
	False       Expression
	Type        Type
}

type PrimitiveType struct {
	Base
	Keyword string
}

type ArrayType struct {
	Base
	Elem          TypeTree
	BracketPrefix Space
	Inner         Space
}

type ParameterizedType struct {
	Base
	Clazz    TypeTree
	TypeArgs Container[TypeTree]
}

// Wildcard is a type argument `?`, `? extends T` or `? super T`.
type Wildcard struct {
	Base
	Bound       string
	BoundPrefix Space
	BoundType   TypeTree
}

type Modifier struct {
	Base
	Keyword string
}

type Annotation struct {
	Base
	Name TypeTree
	Args *Container[Expression]
}

func (*ClassDecl) isStatement()        {}
func (*Block) isStatement()            {}
func (*MethodDecl) isStatement()       {}
func (*VariableDecls) isStatement()    {}
func (*Return) isStatement()           {}
func (*If) isStatement()               {}
func (*While) isStatement()            {}
func (*Throw) isStatement()            {}
func (*Unknown) isStatement()          {}
func (*Empty) isStatement()            {}
func (*MethodInvocation) isStatement() {}
func (*NewClass) isStatement()         {}
func (*Assign) isStatement()           {}
func (*Unary) isStatement()            {}

func (*Ident) isExpression()             {}
func (*FieldAccess) isExpression()       {}
func (*MethodInvocation) isExpression()  {}
func (*NewClass) isExpression()          {}
func (*Literal) isExpression()           {}
func (*Binary) isExpression()            {}
func (*Unary) isExpression()             {}
func (*Assign) isExpression()            {}
func (*Parens) isExpression()            {}
func (*ArrayAccess) isExpression()       {}
func (*Ternary) isExpression()           {}
func (*PrimitiveType) isExpression()     {}
func (*ArrayType) isExpression()         {}
func (*ParameterizedType) isExpression() {}
func (*Wildcard) isExpression()          {}

func (*Ident) isTypeTree()             {}
func (*FieldAccess) isTypeTree()       {}
func (*PrimitiveType) isTypeTree()     {}
func (*ArrayType) isTypeTree()         {}
func (*ParameterizedType) isTypeTree() {}
func (*Wildcard) isTypeTree()          {}

func (n *CompilationUnit) clone() J   { c := *n; return &c }
func (n *Package) clone() J           { c := *n; return &c }
func (n *Import) clone() J            { c := *n; return &c }
func (n *ClassDecl) clone() J         { c := *n; return &c }
func (n *Block) clone() J             { c := *n; return &c }
func (n *MethodDecl) clone() J        { c := *n; return &c }
func (n *VariableDecls) clone() J     { c := *n; return &c }
func (n *NamedVariable) clone() J     { c := *n; return &c }
func (n *Return) clone() J            { c := *n; return &c }
func (n *If) clone() J                { c := *n; return &c }
func (n *Else) clone() J              { c := *n; return &c }
func (n *While) clone() J             { c := *n; return &c }
func (n *Throw) clone() J             { c := *n; return &c }
func (n *Unknown) clone() J           { c := *n; return &c }
func (n *Empty) clone() J             { c := *n; return &c }
func (n *Ident) clone() J             { c := *n; return &c }
func (n *FieldAccess) clone() J       { c := *n; return &c }
func (n *MethodInvocation) clone() J  { c := *n; return &c }
func (n *NewClass) clone() J          { c := *n; return &c }
func (n *Literal) clone() J           { c := *n; return &c }
func (n *Binary) clone() J            { c := *n; return &c }
func (n *Unary) clone() J             { c := *n; return &c }
func (n *Assign) clone() J            { c := *n; return &c }
func (n *Parens) clone() J            { c := *n; return &c }
func (n *ArrayAccess) clone() J       { c := *n; return &c }
func (n *Ternary) clone() J           { c := *n; return &c }
func (n *PrimitiveType) clone() J     { c := *n; return &c }
func (n *ArrayType) clone() J         { c := *n; return &c }
func (n *ParameterizedType) clone() J { c := *n; return &c }
func (n *Wildcard) clone() J          { c := *n; return &c }
func (n *Modifier) clone() J          { c := *n; return &c }
func (n *Annotation) clone() J        { c := *n; return &c }

// QualifiedName renders an Ident or FieldAccess chain as a dotted name,
// ignoring formatting. Other expressions yield "".
func QualifiedName(e Expression) string {
	switch n := e.(type) {
	case *Ident:
		return n.Name
	case *FieldAccess:
		left := QualifiedName(n.Target.Elem)
		if left == "" {
			return ""
		}
		return left + "." + n.Name.Name
	case *ParameterizedType:
		return QualifiedName(n.Clazz)
	}
	return ""
}

// TypeOf returns the attributed type of an expression, or nil.
func TypeOf(e Expression) Type {
	switch n := e.(type) {
	case *Ident:
		return n.Type
	case *FieldAccess:
		return n.Type
	case *MethodInvocation:
		if n.Type == nil {
			return nil
		}
		return n.Type.Return
	case *NewClass:
		return TypeOf(n.Clazz)
	case *Literal:
		return n.Type
	case *Binary:
		return n.Type
	case *Unary:
		return n.Type
	case *Assign:
		return n.Type
	case *Parens:
		return n.Type
	case *ArrayAccess:
		return n.Type
	case *Ternary:
		return n.Type
	case *PrimitiveType:
		return Primitive(n.Keyword)
	case *ArrayType:
		if elem := TypeOf(n.Elem); elem != nil {
			return &Array{Elem: elem}
		}
	case *ParameterizedType:
		return TypeOf(n.Clazz)
	}
	return nil
}
