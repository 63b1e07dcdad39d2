package java

import (
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

// Print renders n from its recorded formatting. Printing an unmodified tree
// reproduces the parsed source exactly.
func Print(n J, opts rewrite.PrintOptions) string {
	p := &printer{opts: opts}
	p.print(n)
	return p.sb.String()
}

type printer struct {
	sb   strings.Builder
	opts rewrite.PrintOptions
}

func (p *printer) str(s string)  { p.sb.WriteString(s) }
func (p *printer) space(s Space)  { p.sb.WriteString(string(s)) }

func (p *printer) prefix(n J) {
	p.space(n.Prefix())
	p.str(n.Markers().Render(p.opts))
}

func needsSemicolon(s Statement) bool {
	switch n := s.(type) {
	case *VariableDecls, *Return, *Throw, *MethodInvocation, *NewClass, *Assign, *Unary, *Empty:
		return true
	case *MethodDecl:
		return n.Body == nil
	}
	return false
}

func (p *printer) statement(s Padded[Statement]) {
	p.print(s.Elem)
	if needsSemicolon(s.Elem) {
		p.space(s.After)
		p.str(";")
	}
}

func printContainer[T J](p *printer, c Container[T], open, sep, close string) {
	p.space(c.Before)
	p.str(open)
	if len(c.Elems) == 0 {
		p.space(c.Inner)
	}
	for i, e := range c.Elems {
		if i > 0 {
			p.str(sep)
		}
		p.print(e.Elem)
		p.space(e.After)
	}
	p.str(close)
}

func (p *printer) list(nodes []J) {
	for _, n := range nodes {
		p.print(n)
	}
}

func (p *printer) print(j J) {
	if isNil(j) {
		return
	}
	p.prefix(j)
	switch n := j.(type) {
	case *CompilationUnit:
		if n.Package != nil {
			p.print(n.Package)
		}
		for _, imp := range n.Imports {
			p.print(imp)
		}
		for _, c := range n.Classes {
			p.print(c)
			if _, ok := c.(*Empty); ok {
				p.str(";")
			}
		}
		p.space(n.EOF)
	case *Package:
		p.str("package")
		p.print(n.Name)
		p.space(n.Semi)
		p.str(";")
	case *Import:
		p.str("import")
		if n.Static {
			p.space(n.StaticPrefix)
			p.str("static")
		}
		p.print(n.Qualid)
		p.space(n.Semi)
		p.str(";")
	case *ClassDecl:
		p.list(n.Modifiers)
		p.space(n.KindPrefix)
		p.str(string(n.Kind))
		p.print(n.Name)
		p.print(n.TypeParams)
		if n.Extends != nil {
			p.space(n.ExtendsPrefix)
			p.str("extends")
			p.print(n.Extends)
		}
		if n.Implements != nil {
			keyword := "implements"
			if n.Kind == ClassKindInterface {
				keyword = "extends"
			}
			printContainer(p, *n.Implements, keyword, ",", "")
		}
		p.print(n.Body)
	case *Block:
		p.str("{")
		for _, s := range n.Statements {
			p.statement(s)
		}
		p.space(n.End)
		p.str("}")
	case *MethodDecl:
		p.list(n.Modifiers)
		p.print(n.TypeParams)
		p.print(n.ReturnType)
		p.print(n.Name)
		printContainer(p, n.Params, "(", ",", ")")
		if n.Throws != nil {
			printContainer(p, *n.Throws, "throws", ",", "")
		}
		p.print(n.Body)
	case *VariableDecls:
		p.list(n.Modifiers)
		p.print(n.TypeExpr)
		if n.Varargs != nil {
			p.space(*n.Varargs)
			p.str("...")
		}
		for i, v := range n.Vars {
			if i > 0 {
				p.str(",")
			}
			p.print(v.Elem)
			p.space(v.After)
		}
	case *NamedVariable:
		p.print(n.Name)
		if n.Init != nil {
			p.space(n.EqPrefix)
			p.str("=")
			p.print(n.Init)
		}
	case *Return:
		p.str("return")
		p.print(n.Expr)
	case *If:
		p.str("if")
		p.print(n.Cond)
		p.statement(n.Then)
		p.print(n.Else)
	case *Else:
		p.str("else")
		p.statement(n.Body)
	case *While:
		p.str("while")
		p.print(n.Cond)
		p.statement(n.Body)
	case *Throw:
		p.str("throw")
		p.print(n.Exception)
	case *Unknown:
		p.str(n.Text)
	case *Empty:
	case *Ident:
		p.str(n.Name)
	case *FieldAccess:
		p.print(n.Target.Elem)
		p.space(n.Target.After)
		p.str(".")
		p.print(n.Name)
	case *MethodInvocation:
		if n.Select != nil {
			p.print(n.Select.Elem)
			p.space(n.Select.After)
			p.str(".")
		}
		p.print(n.Name)
		printContainer(p, n.Args, "(", ",", ")")
	case *NewClass:
		p.str("new")
		p.print(n.Clazz)
		printContainer(p, n.Args, "(", ",", ")")
		p.print(n.Body)
	case *Literal:
		p.str(n.Source)
	case *Binary:
		p.print(n.Left)
		p.space(n.OpPrefix)
		p.str(n.Operator)
		p.print(n.Right)
	case *Unary:
		if n.Postfix {
			p.print(n.Operand)
			p.space(n.OpPrefix)
			p.str(n.Operator)
		} else {
			p.str(n.Operator)
			p.print(n.Operand)
		}
	case *Assign:
		p.print(n.Variable)
		p.space(n.OpPrefix)
		p.str(n.Operator)
		p.print(n.Value)
	case *Parens:
		p.str("(")
		p.print(n.Tree.Elem)
		p.space(n.Tree.After)
		p.str(")")
	case *ArrayAccess:
		p.print(n.Indexed)
		p.space(n.BracketPrefix)
		p.str("[")
		p.print(n.Index.Elem)
		p.space(n.Index.After)
		p.str("]")
	case *Ternary:
		p.print(n.Cond)
		p.space(n.QPrefix)
		p.str("?")
		p.print(n.True)
		p.space(n.ColonPrefix)
		p.str(":")
		p.print(n.False)
	case *PrimitiveType:
		p.str(n.Keyword)
	case *ArrayType:
		p.print(n.Elem)
		p.space(n.BracketPrefix)
		p.str("[")
		p.space(n.Inner)
		p.str("]")
	case *ParameterizedType:
		p.print(n.Clazz)
		printContainer(p, n.TypeArgs, "<", ",", ">")
	case *Wildcard:
		p.str("?")
		if n.Bound != "" && n.BoundType != nil {
			p.space(n.BoundPrefix)
			p.str(n.Bound)
			p.print(n.BoundType)
		}
	case *Modifier:
		p.str(n.Keyword)
	case *Annotation:
		p.str("@")
		p.print(n.Name)
		if n.Args != nil {
			printContainer(p, *n.Args, "(", ",", ")")
		}
	}
}
