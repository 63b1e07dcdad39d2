package parser

import (
	"strings"

	"github.com/dhamidi/recast/java"
)

// Attribute resolves the declarations of a batch of units into one symbol
// table and records types on the nodes that reference them. The nodes are
// updated in place; units are attributed before anyone else sees them.
func Attribute(units []*java.CompilationUnit) *java.Table {
	return AttributeWith(java.NewTable(), units)
}

// AttributeWith attributes units against table and seals it.
func AttributeWith(table *java.Table, units []*java.CompilationUnit) *java.Table {
	a := &attributor{table: table}
	for _, cu := range units {
		cu.Table = a.table
		for _, s := range cu.Classes {
			if cd, ok := s.(*java.ClassDecl); ok {
				a.declare(cu.PackageName(), nil, cd)
			}
		}
	}
	files := make([]*fileScope, len(units))
	for i, cu := range units {
		files[i] = newFileScope(cu)
		for _, s := range cu.Classes {
			if cd, ok := s.(*java.ClassDecl); ok {
				a.header(files[i], nil, cd)
			}
		}
	}
	for i, cu := range units {
		for _, s := range cu.Classes {
			if cd, ok := s.(*java.ClassDecl); ok {
				a.classBody(files[i], nil, cd)
			}
		}
	}
	a.table.Seal()
	return a.table
}

type attributor struct {
	table *java.Table
}

type fileScope struct {
	pkg            string
	single         map[string]string
	onDemand       []string
	staticSingle   map[string]string
	staticOnDemand []string
}

func newFileScope(cu *java.CompilationUnit) *fileScope {
	fs := &fileScope{
		pkg:          cu.PackageName(),
		single:       map[string]string{},
		staticSingle: map[string]string{},
	}
	for _, imp := range cu.Imports {
		switch {
		case imp.Static && imp.SimpleName() == "*":
			fs.staticOnDemand = append(fs.staticOnDemand, imp.Qualifier())
		case imp.Static:
			fs.staticSingle[imp.SimpleName()] = imp.Qualifier()
		case imp.SimpleName() == "*":
			fs.onDemand = append(fs.onDemand, imp.Qualifier())
		default:
			fs.single[imp.SimpleName()] = imp.TypeName()
		}
	}
	return fs
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// scope is a lexical scope. Class scopes carry the class being declared.
type scope struct {
	parent     *scope
	class      *java.Class
	vars       map[string]*java.Variable
	typeParams map[string]bool
}

func (s *scope) child() *scope {
	return &scope{parent: s, vars: map[string]*java.Variable{}}
}

func (s *scope) define(v *java.Variable) {
	if s.vars == nil {
		s.vars = map[string]*java.Variable{}
	}
	s.vars[v.Name] = v
}

func (s *scope) variable(name string) *java.Variable {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.class != nil {
			// fields are searched separately, in enclosing class order
			if v, ok := sc.vars[name]; ok {
				return v
			}
			if f := sc.class.Field(name); f != nil {
				return f
			}
			continue
		}
		if v, ok := sc.vars[name]; ok {
			return v
		}
	}
	return nil
}

func (s *scope) enclosingClass() *java.Class {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.class != nil {
			return sc.class
		}
	}
	return nil
}

func (s *scope) isTypeParam(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.typeParams[name] {
			return true
		}
	}
	return false
}

// typeParamNames extracts the declared names from a verbatim type parameter
// list such as "<K extends Comparable<K>, V>".
func typeParamNames(u *java.Unknown) map[string]bool {
	if u == nil {
		return nil
	}
	names := map[string]bool{}
	toks := NewLexer([]byte(u.Text), "").Tokens()
	depth := 0
	expectName := false
	for _, t := range toks {
		switch t.Kind {
		case TokenLT:
			depth++
			expectName = depth == 1
			continue
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenComma:
			expectName = depth == 1
			continue
		case TokenIdent:
			if expectName {
				names[t.Literal] = true
			}
		}
		expectName = false
	}
	return names
}

func (a *attributor) declare(pkg string, outer *java.Class, cd *java.ClassDecl) {
	fqn := qualify(pkg, cd.Name.Name)
	if outer != nil {
		fqn = outer.FQN + "." + cd.Name.Name
	}
	cls := a.table.Declare(fqn)
	cls.Package = pkg
	cls.Kind = cd.Kind
	cd.Type = cls
	cd.Name.Type = cls
	for _, s := range cd.Body.Statements {
		if nested, ok := s.Elem.(*java.ClassDecl); ok {
			a.declare(pkg, cls, nested)
		}
	}
}

func flagsOf(mods []java.J) java.Flag {
	var f java.Flag
	for _, m := range mods {
		if mod, ok := m.(*java.Modifier); ok {
			if flag, ok := java.FlagOf(mod.Keyword); ok {
				f |= flag
			}
		}
	}
	return f
}

func (a *attributor) classScope(parent *scope, cd *java.ClassDecl) *scope {
	return &scope{parent: parent, class: cd.Type, typeParams: typeParamNames(cd.TypeParams)}
}

func (a *attributor) header(fs *fileScope, parent *scope, cd *java.ClassDecl) {
	cls := cd.Type
	sc := a.classScope(parent, cd)
	cls.Flags = flagsOf(cd.Modifiers)
	isInterface := cd.Kind == java.ClassKindInterface || cd.Kind == java.ClassKindAnnotation
	if isInterface {
		cls.Flags |= java.Abstract
	}

	if cd.Extends != nil {
		if sup, ok := a.typeTree(fs, sc, cd.Extends).(*java.Class); ok {
			cls.Supertype = sup
		}
	} else if cd.Kind == java.ClassKindClass && cls.FQN != "java.lang.Object" {
		cls.Supertype = a.table.Lookup("java.lang.Object")
	}
	if cd.Implements != nil {
		for _, e := range cd.Implements.Elems {
			if iface, ok := a.typeTree(fs, sc, e.Elem).(*java.Class); ok {
				cls.Interfaces = append(cls.Interfaces, iface)
			}
		}
	}

	hasCtor := false
	for _, s := range cd.Body.Statements {
		switch n := s.Elem.(type) {
		case *java.MethodDecl:
			m := a.methodType(fs, sc, cls, n, isInterface)
			n.Type = m
			n.Name.Type = m
			cls.Methods = append(cls.Methods, m)
			hasCtor = hasCtor || m.IsConstructor()
		case *java.VariableDecls:
			t := a.typeTree(fs, sc, n.TypeExpr)
			flags := flagsOf(n.Modifiers)
			if isInterface {
				flags |= java.Public | java.Static | java.Final
			}
			for _, v := range n.Vars {
				v.Elem.Name.Type = t
				cls.Fields = append(cls.Fields, &java.Variable{Name: v.Elem.Name.Name, Owner: cls, Type: t, Flags: flags})
			}
		case *java.ClassDecl:
			a.header(fs, sc, n)
		}
	}
	if !hasCtor && (cd.Kind == java.ClassKindClass || cd.Kind == java.ClassKindEnum) {
		flags := java.Public
		if cd.Kind == java.ClassKindEnum {
			flags = java.Private
		}
		cls.Methods = append(cls.Methods, &java.Method{
			Declaring: cls,
			Name:      java.ConstructorName,
			Return:    cls,
			Flags:     flags,
		})
	}
}

func (a *attributor) methodType(fs *fileScope, classScope *scope, cls *java.Class, md *java.MethodDecl, inInterface bool) *java.Method {
	sc := &scope{parent: classScope, typeParams: typeParamNames(md.TypeParams)}
	m := &java.Method{Declaring: cls, Name: md.Name.Name, Flags: flagsOf(md.Modifiers)}
	if md.IsConstructor() {
		m.Name = java.ConstructorName
		m.Return = cls
	} else {
		m.Return = a.typeTree(fs, sc, md.ReturnType)
	}
	if inInterface {
		m.Flags |= java.Public
		if md.Body == nil && !m.Flags.Has(java.Static) && !m.Flags.Has(java.Default) {
			m.Flags |= java.Abstract
		}
	}
	for _, p := range md.Params.Elems {
		t := a.typeTree(fs, sc, p.Elem.TypeExpr)
		if p.Elem.Varargs != nil {
			t = &java.Array{Elem: t}
			m.Varargs = true
		}
		m.ParamTypes = append(m.ParamTypes, t)
		name := p.Elem.Vars[0].Elem.Name
		name.Type = t
		m.ParamNames = append(m.ParamNames, name.Name)
	}
	return m
}

// simpleType resolves a simple type name. The bool result reports whether
// the name is known to denote a type.
func (a *attributor) simpleType(fs *fileScope, sc *scope, name string) (java.Type, bool) {
	if java.IsPrimitiveKeyword(name) {
		return java.Primitive(name), true
	}
	if sc.isTypeParam(name) {
		return &java.UnknownType{Name: name}, true
	}
	for s := sc; s != nil; s = s.parent {
		if s.class == nil {
			continue
		}
		for _, c := range append([]*java.Class{s.class}, s.class.Supertypes()...) {
			if fqn := c.FQN + "." + name; a.table.Known(fqn) {
				return a.table.Lookup(fqn), true
			}
		}
	}
	if fqn, ok := fs.single[name]; ok {
		return a.table.Lookup(fqn), true
	}
	if fqn := qualify(fs.pkg, name); a.table.Known(fqn) {
		return a.table.Lookup(fqn), true
	}
	for _, pkg := range fs.onDemand {
		if fqn := pkg + "." + name; a.table.Known(fqn) {
			return a.table.Lookup(fqn), true
		}
	}
	if java.JavaLang(name) || a.table.Known("java.lang."+name) {
		return a.table.Lookup("java.lang." + name), true
	}
	return nil, false
}

// typeName resolves a name in type position, guessing a class for names
// that are not known.
func (a *attributor) typeName(fs *fileScope, sc *scope, name string) java.Type {
	if t, ok := a.simpleType(fs, sc, name); ok {
		return t
	}
	if len(fs.onDemand) > 0 {
		return a.table.Lookup(fs.onDemand[0] + "." + name)
	}
	return a.table.Lookup(qualify(fs.pkg, name))
}

func (a *attributor) typeTree(fs *fileScope, sc *scope, t java.TypeTree) java.Type {
	switch n := t.(type) {
	case nil:
		return nil
	case *java.PrimitiveType:
		return java.Primitive(n.Keyword)
	case *java.Ident:
		n.Type = a.typeName(fs, sc, n.Name)
		return n.Type
	case *java.FieldAccess:
		n.Type = a.qualifiedType(fs, sc, n)
		n.Name.Type = n.Type
		return n.Type
	case *java.ParameterizedType:
		for _, arg := range n.TypeArgs.Elems {
			a.typeTree(fs, sc, arg.Elem)
		}
		return a.typeTree(fs, sc, n.Clazz)
	case *java.ArrayType:
		return &java.Array{Elem: a.typeTree(fs, sc, n.Elem)}
	case *java.Wildcard:
		if n.BoundType != nil {
			a.typeTree(fs, sc, n.BoundType)
		}
		return &java.UnknownType{Name: "?"}
	}
	return nil
}

// qualifiedType resolves Outer.Inner against a known outer class and falls
// back to reading the name as fully qualified.
func (a *attributor) qualifiedType(fs *fileScope, sc *scope, fa *java.FieldAccess) java.Type {
	name := java.QualifiedName(fa)
	first, rest, _ := strings.Cut(name, ".")
	if t, ok := a.simpleType(fs, sc, first); ok {
		if c, ok := t.(*java.Class); ok && a.table.Declared(c.FQN+"."+rest) {
			return a.table.Lookup(c.FQN + "." + rest)
		}
	}
	return a.table.Lookup(name)
}

func (a *attributor) classBody(fs *fileScope, parent *scope, cd *java.ClassDecl) {
	sc := a.classScope(parent, cd)
	a.members(fs, sc, cd.Body)
}

func (a *attributor) members(fs *fileScope, sc *scope, body *java.Block) {
	for _, s := range body.Statements {
		switch n := s.Elem.(type) {
		case *java.MethodDecl:
			msc := sc.child()
			msc.typeParams = typeParamNames(n.TypeParams)
			for i, p := range n.Params.Elems {
				v := &java.Variable{Name: p.Elem.Vars[0].Elem.Name.Name}
				if n.Type != nil && i < len(n.Type.ParamTypes) {
					v.Type = n.Type.ParamTypes[i]
				} else {
					v.Type = a.typeTree(fs, msc, p.Elem.TypeExpr)
				}
				msc.define(v)
			}
			if n.Body != nil {
				a.block(fs, msc, n.Body)
			}
		case *java.VariableDecls:
			for _, v := range n.Vars {
				if v.Elem.Init != nil {
					a.expr(fs, sc, v.Elem.Init)
				}
			}
		case *java.ClassDecl:
			a.classBody(fs, sc, n)
		case *java.Block:
			a.block(fs, sc, n)
		}
	}
}

func (a *attributor) block(fs *fileScope, parent *scope, b *java.Block) {
	sc := parent.child()
	for _, s := range b.Statements {
		a.stmt(fs, sc, s.Elem)
	}
}

func (a *attributor) stmt(fs *fileScope, sc *scope, s java.Statement) {
	switch n := s.(type) {
	case *java.Block:
		a.block(fs, sc, n)
	case *java.VariableDecls:
		t := a.typeTree(fs, sc, n.TypeExpr)
		for _, v := range n.Vars {
			if v.Elem.Init != nil {
				a.expr(fs, sc, v.Elem.Init)
			}
			v.Elem.Name.Type = t
			sc.define(&java.Variable{Name: v.Elem.Name.Name, Type: t, Flags: flagsOf(n.Modifiers)})
		}
	case *java.Return:
		if n.Expr != nil {
			a.expr(fs, sc, n.Expr)
		}
	case *java.Throw:
		a.expr(fs, sc, n.Exception)
	case *java.If:
		a.expr(fs, sc, n.Cond)
		a.stmt(fs, sc.child(), n.Then.Elem)
		if n.Else != nil {
			a.stmt(fs, sc.child(), n.Else.Body.Elem)
		}
	case *java.While:
		a.expr(fs, sc, n.Cond)
		a.stmt(fs, sc.child(), n.Body.Elem)
	case java.Expression:
		a.expr(fs, sc, n)
	}
}

func (a *attributor) literalType(src string) java.Type {
	switch {
	case src == "true" || src == "false":
		return java.Boolean
	case src == "null":
		return java.Null
	case strings.HasPrefix(src, `"`):
		return a.table.Lookup("java.lang.String")
	case strings.HasPrefix(src, "'"):
		return java.Char
	}
	lower := strings.ToLower(strings.ReplaceAll(src, "_", ""))
	hex := strings.HasPrefix(lower, "0x")
	switch {
	case strings.HasSuffix(lower, "l"):
		return java.Long
	case strings.HasSuffix(lower, "f") && !hex:
		return java.Float
	case strings.HasSuffix(lower, "d") && !hex,
		!hex && strings.ContainsAny(lower, ".e"),
		hex && strings.Contains(lower, "p"):
		return java.Double
	}
	return java.Int
}

func numericRank(t java.Type) int {
	switch t {
	case java.Byte, java.Short, java.Char:
		return 1
	case java.Int:
		return 2
	case java.Long:
		return 3
	case java.Float:
		return 4
	case java.Double:
		return 5
	}
	return 0
}

func (a *attributor) binaryType(op string, l, r java.Type) java.Type {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return java.Boolean
	case "+":
		if isString(l) || isString(r) {
			return a.table.Lookup("java.lang.String")
		}
	case "<<", ">>", ">>>":
		if l == java.Long {
			return java.Long
		}
		return java.Int
	}
	if l == java.Boolean && r == java.Boolean {
		return java.Boolean
	}
	lr, rr := numericRank(l), numericRank(r)
	switch {
	case lr == 0 || rr == 0:
		return &java.UnknownType{}
	case lr >= 3 && lr >= rr:
		return l
	case rr >= 3:
		return r
	}
	return java.Int
}

func isString(t java.Type) bool {
	c, ok := t.(*java.Class)
	return ok && c.FQN == "java.lang.String"
}

// expr attributes e and returns its type.
func (a *attributor) expr(fs *fileScope, sc *scope, e java.Expression) java.Type {
	switch n := e.(type) {
	case nil:
		return nil
	case *java.Literal:
		n.Type = a.literalType(n.Source)
		return n.Type
	case *java.Ident:
		n.Type, _ = a.identType(fs, sc, n.Name)
		return n.Type
	case *java.FieldAccess:
		n.Type = a.fieldAccessType(fs, sc, n)
		n.Name.Type = n.Type
		return n.Type
	case *java.MethodInvocation:
		n.Type = a.invocation(fs, sc, n)
		if n.Type == nil {
			return nil
		}
		n.Name.Type = n.Type
		return n.Type.Return
	case *java.NewClass:
		var cls *java.Class
		if c, ok := a.typeTree(fs, sc, n.Clazz).(*java.Class); ok {
			cls = c
		}
		args := a.args(fs, sc, n.Args)
		if cls == nil {
			return nil
		}
		n.Type = cls.Constructor(len(args))
		if n.Type == nil {
			n.Type = &java.Method{Declaring: cls, Name: java.ConstructorName, Return: cls, ParamTypes: args, Unresolved: true}
		}
		if n.Body != nil {
			a.members(fs, &scope{parent: sc, class: cls}, n.Body)
		}
		return cls
	case *java.Binary:
		l := a.expr(fs, sc, n.Left)
		r := a.expr(fs, sc, n.Right)
		n.Type = a.binaryType(n.Operator, l, r)
		return n.Type
	case *java.Unary:
		n.Type = a.expr(fs, sc, n.Operand)
		if n.Operator == "!" {
			n.Type = java.Boolean
		}
		return n.Type
	case *java.Assign:
		n.Type = a.expr(fs, sc, n.Variable)
		a.expr(fs, sc, n.Value)
		return n.Type
	case *java.Parens:
		n.Type = a.expr(fs, sc, n.Tree.Elem)
		return n.Type
	case *java.ArrayAccess:
		t := a.expr(fs, sc, n.Indexed)
		a.expr(fs, sc, n.Index.Elem)
		if arr, ok := t.(*java.Array); ok {
			n.Type = arr.Elem
		}
		return n.Type
	case *java.Ternary:
		a.expr(fs, sc, n.Cond)
		n.Type = a.expr(fs, sc, n.True)
		a.expr(fs, sc, n.False)
		return n.Type
	case java.TypeTree:
		return a.typeTree(fs, sc, n)
	}
	return nil
}

func (a *attributor) args(fs *fileScope, sc *scope, c java.Container[java.Expression]) []java.Type {
	types := make([]java.Type, len(c.Elems))
	for i, arg := range c.Elems {
		types[i] = a.expr(fs, sc, arg.Elem)
	}
	return types
}

// identType resolves an identifier in expression position. The bool result
// reports whether it names a type rather than a value.
func (a *attributor) identType(fs *fileScope, sc *scope, name string) (java.Type, bool) {
	switch name {
	case "this":
		if c := sc.enclosingClass(); c != nil {
			return c, false
		}
		return nil, false
	case "super":
		if c := sc.enclosingClass(); c != nil && c.Supertype != nil {
			return c.Supertype, false
		}
		return nil, false
	}
	if v := sc.variable(name); v != nil {
		return v.Type, false
	}
	if owner, ok := fs.staticSingle[name]; ok {
		if f := a.table.Lookup(owner).Field(name); f != nil {
			return f.Type, false
		}
	}
	for _, owner := range fs.staticOnDemand {
		if c, ok := a.table.Class(owner); ok {
			if f := c.Field(name); f != nil {
				return f.Type, false
			}
		}
	}
	if t, ok := a.simpleType(fs, sc, name); ok {
		return t, true
	}
	return nil, false
}

func (a *attributor) fieldAccessType(fs *fileScope, sc *scope, fa *java.FieldAccess) java.Type {
	target := a.expr(fs, sc, fa.Target.Elem)
	switch fa.Name.Name {
	case "class":
		return a.table.Lookup("java.lang.Class")
	case "length":
		if _, ok := target.(*java.Array); ok {
			return java.Int
		}
	}
	if c, ok := target.(*java.Class); ok {
		if f := c.Field(fa.Name.Name); f != nil {
			return f.Type
		}
		if fqn := c.FQN + "." + fa.Name.Name; a.table.Declared(fqn) {
			return a.table.Lookup(fqn)
		}
		return nil
	}
	if target == nil {
		if qn := java.QualifiedName(fa); qn != "" && a.table.Declared(qn) {
			return a.table.Lookup(qn)
		}
	}
	return nil
}

func (a *attributor) invocation(fs *fileScope, sc *scope, mi *java.MethodInvocation) *java.Method {
	args := a.args(fs, sc, mi.Args)
	name := mi.Name.Name
	if mi.Select == nil {
		return a.unqualifiedInvocation(fs, sc, name, args)
	}

	var (
		t      java.Type
		isType bool
	)
	if id, ok := mi.Select.Elem.(*java.Ident); ok {
		t, isType = a.identType(fs, sc, id.Name)
		id.Type = t
	} else {
		t = a.expr(fs, sc, mi.Select.Elem)
		if fa, ok := mi.Select.Elem.(*java.FieldAccess); ok {
			if c, ok := t.(*java.Class); ok && c.FQN == java.QualifiedName(fa) {
				isType = true
			}
		}
	}
	cls, ok := t.(*java.Class)
	if !ok {
		return nil
	}
	if m := cls.FindMethod(name, len(args)); m != nil {
		return m
	}
	m := &java.Method{Declaring: cls, Name: name, Return: &java.UnknownType{}, ParamTypes: args, Unresolved: true}
	if isType {
		m.Flags |= java.Static
	}
	return m
}

func (a *attributor) unqualifiedInvocation(fs *fileScope, sc *scope, name string, args []java.Type) *java.Method {
	switch name {
	case "this", "super":
		c := sc.enclosingClass()
		if c != nil && name == "super" {
			c = c.Supertype
		}
		if c == nil {
			return nil
		}
		if m := c.Constructor(len(args)); m != nil {
			return m
		}
		return &java.Method{Declaring: c, Name: java.ConstructorName, Return: c, ParamTypes: args, Unresolved: true}
	}

	for s := sc; s != nil; s = s.parent {
		if s.class == nil {
			continue
		}
		if m := s.class.FindMethod(name, len(args)); m != nil {
			return m
		}
	}
	if owner, ok := fs.staticSingle[name]; ok {
		cls := a.table.Lookup(owner)
		if m := cls.FindMethod(name, len(args)); m != nil {
			return m
		}
		return &java.Method{Declaring: cls, Name: name, Return: &java.UnknownType{}, ParamTypes: args, Flags: java.Static, Unresolved: true}
	}
	for _, owner := range fs.staticOnDemand {
		if c, ok := a.table.Class(owner); ok && c.Declared {
			if m := c.FindMethod(name, len(args)); m != nil {
				return m
			}
		}
	}
	if len(fs.staticOnDemand) == 1 {
		cls := a.table.Lookup(fs.staticOnDemand[0])
		if !cls.Declared {
			return &java.Method{Declaring: cls, Name: name, Return: &java.UnknownType{}, ParamTypes: args, Flags: java.Static, Unresolved: true}
		}
	}
	if c := sc.enclosingClass(); c != nil {
		return &java.Method{Declaring: c, Name: name, Return: &java.UnknownType{}, ParamTypes: args, Unresolved: true}
	}
	return nil
}
