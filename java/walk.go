package java

func (n *CompilationUnit) accept(w *walker, c *Cursor) J {
	pkg, c1 := visitOne(w, c, n.Package, false)
	imports, c2 := visitList(w, c, n.Imports)
	classes, c3 := visitList(w, c, n.Classes)
	if !c1 && !c2 && !c3 {
		return n
	}
	m := *n
	m.Package, m.Imports, m.Classes = pkg, imports, classes
	return &m
}

func (n *Package) accept(w *walker, c *Cursor) J {
	name, ch := visitOne(w, c, n.Name, true)
	if !ch {
		return n
	}
	m := *n
	m.Name = name
	return &m
}

func (n *Import) accept(w *walker, c *Cursor) J {
	qualid, ch := visitOne(w, c, n.Qualid, true)
	if !ch {
		return n
	}
	m := *n
	m.Qualid = qualid
	return &m
}

func (n *ClassDecl) accept(w *walker, c *Cursor) J {
	mods, c1 := visitList(w, c, n.Modifiers)
	name, c2 := visitOne(w, c, n.Name, true)
	tparams, c3 := visitOne(w, c, n.TypeParams, false)
	ext, c4 := visitOne(w, c, n.Extends, false)
	impl, c5 := visitContainerPtr(w, c, n.Implements)
	body, c6 := visitOne(w, c, n.Body, true)
	if !c1 && !c2 && !c3 && !c4 && !c5 && !c6 {
		return n
	}
	m := *n
	m.Modifiers, m.Name, m.TypeParams, m.Extends, m.Implements, m.Body = mods, name, tparams, ext, impl, body
	return &m
}

func (n *Block) accept(w *walker, c *Cursor) J {
	stmts, ch := visitPaddedList(w, c, n.Statements)
	if !ch {
		return n
	}
	m := *n
	m.Statements = stmts
	return &m
}

func (n *MethodDecl) accept(w *walker, c *Cursor) J {
	mods, c1 := visitList(w, c, n.Modifiers)
	tparams, c2 := visitOne(w, c, n.TypeParams, false)
	ret, c3 := visitOne(w, c, n.ReturnType, false)
	name, c4 := visitOne(w, c, n.Name, true)
	params, c5 := visitContainer(w, c, n.Params)
	throws, c6 := visitContainerPtr(w, c, n.Throws)
	body, c7 := visitOne(w, c, n.Body, false)
	if !c1 && !c2 && !c3 && !c4 && !c5 && !c6 && !c7 {
		return n
	}
	m := *n
	m.Modifiers, m.TypeParams, m.ReturnType, m.Name = mods, tparams, ret, name
	m.Params, m.Throws, m.Body = params, throws, body
	return &m
}

func (n *VariableDecls) accept(w *walker, c *Cursor) J {
	mods, c1 := visitList(w, c, n.Modifiers)
	typ, c2 := visitOne(w, c, n.TypeExpr, true)
	vars, c3 := visitPaddedList(w, c, n.Vars)
	if !c1 && !c2 && !c3 {
		return n
	}
	m := *n
	m.Modifiers, m.TypeExpr, m.Vars = mods, typ, vars
	return &m
}

func (n *NamedVariable) accept(w *walker, c *Cursor) J {
	name, c1 := visitOne(w, c, n.Name, true)
	init, c2 := visitOne(w, c, n.Init, false)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Name, m.Init = name, init
	return &m
}

func (n *Return) accept(w *walker, c *Cursor) J {
	expr, ch := visitOne(w, c, n.Expr, false)
	if !ch {
		return n
	}
	m := *n
	m.Expr = expr
	return &m
}

func (n *If) accept(w *walker, c *Cursor) J {
	cond, c1 := visitOne(w, c, n.Cond, true)
	then, c2 := visitPadded(w, c, n.Then)
	els, c3 := visitOne(w, c, n.Else, false)
	if !c1 && !c2 && !c3 {
		return n
	}
	m := *n
	m.Cond, m.Then, m.Else = cond, then, els
	return &m
}

func (n *Else) accept(w *walker, c *Cursor) J {
	body, ch := visitPadded(w, c, n.Body)
	if !ch {
		return n
	}
	m := *n
	m.Body = body
	return &m
}

func (n *While) accept(w *walker, c *Cursor) J {
	cond, c1 := visitOne(w, c, n.Cond, true)
	body, c2 := visitPadded(w, c, n.Body)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Cond, m.Body = cond, body
	return &m
}

func (n *Throw) accept(w *walker, c *Cursor) J {
	exc, ch := visitOne(w, c, n.Exception, true)
	if !ch {
		return n
	}
	m := *n
	m.Exception = exc
	return &m
}

func (n *Unknown) accept(w *walker, c *Cursor) J       { return n }
func (n *Empty) accept(w *walker, c *Cursor) J         { return n }
func (n *Ident) accept(w *walker, c *Cursor) J         { return n }
func (n *Literal) accept(w *walker, c *Cursor) J       { return n }
func (n *PrimitiveType) accept(w *walker, c *Cursor) J { return n }
func (n *Modifier) accept(w *walker, c *Cursor) J      { return n }

func (n *FieldAccess) accept(w *walker, c *Cursor) J {
	target, c1 := visitPadded(w, c, n.Target)
	name, c2 := visitOne(w, c, n.Name, true)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Target, m.Name = target, name
	return &m
}

func (n *MethodInvocation) accept(w *walker, c *Cursor) J {
	sel, c1 := visitPaddedPtr(w, c, n.Select)
	name, c2 := visitOne(w, c, n.Name, true)
	args, c3 := visitContainer(w, c, n.Args)
	if !c1 && !c2 && !c3 {
		return n
	}
	m := *n
	m.Select, m.Name, m.Args = sel, name, args
	return &m
}

func (n *NewClass) accept(w *walker, c *Cursor) J {
	clazz, c1 := visitOne(w, c, n.Clazz, true)
	args, c2 := visitContainer(w, c, n.Args)
	body, c3 := visitOne(w, c, n.Body, false)
	if !c1 && !c2 && !c3 {
		return n
	}
	m := *n
	m.Clazz, m.Args, m.Body = clazz, args, body
	return &m
}

func (n *Binary) accept(w *walker, c *Cursor) J {
	left, c1 := visitOne(w, c, n.Left, true)
	right, c2 := visitOne(w, c, n.Right, true)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Left, m.Right = left, right
	return &m
}

func (n *Unary) accept(w *walker, c *Cursor) J {
	operand, ch := visitOne(w, c, n.Operand, true)
	if !ch {
		return n
	}
	m := *n
	m.Operand = operand
	return &m
}

func (n *Assign) accept(w *walker, c *Cursor) J {
	variable, c1 := visitOne(w, c, n.Variable, true)
	value, c2 := visitOne(w, c, n.Value, true)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Variable, m.Value = variable, value
	return &m
}

func (n *Parens) accept(w *walker, c *Cursor) J {
	tree, ch := visitPadded(w, c, n.Tree)
	if !ch {
		return n
	}
	m := *n
	m.Tree = tree
	return &m
}

func (n *ArrayAccess) accept(w *walker, c *Cursor) J {
	indexed, c1 := visitOne(w, c, n.Indexed, true)
	index, c2 := visitPadded(w, c, n.Index)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Indexed, m.Index = indexed, index
	return &m
}

func (n *Ternary) accept(w *walker, c *Cursor) J {
	cond, c1 := visitOne(w, c, n.Cond, true)
	t, c2 := visitOne(w, c, n.True, true)
	f, c3 := visitOne(w, c, n.False, true)
	if !c1 && !c2 && !c3 {
		return n
	}
	m := *n
	m.Cond, m.True, m.False = cond, t, f
	return &m
}

func (n *ArrayType) accept(w *walker, c *Cursor) J {
	elem, ch := visitOne(w, c, n.Elem, true)
	if !ch {
		return n
	}
	m := *n
	m.Elem = elem
	return &m
}

func (n *ParameterizedType) accept(w *walker, c *Cursor) J {
	clazz, c1 := visitOne(w, c, n.Clazz, true)
	args, c2 := visitContainer(w, c, n.TypeArgs)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Clazz, m.TypeArgs = clazz, args
	return &m
}

func (n *Wildcard) accept(w *walker, c *Cursor) J {
	bound, ch := visitOne(w, c, n.BoundType, false)
	if !ch {
		return n
	}
	m := *n
	m.BoundType = bound
	return &m
}

func (n *Annotation) accept(w *walker, c *Cursor) J {
	name, c1 := visitOne(w, c, n.Name, true)
	args, c2 := visitContainerPtr(w, c, n.Args)
	if !c1 && !c2 {
		return n
	}
	m := *n
	m.Name, m.Args = name, args
	return &m
}
