package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

var log = commonlog.GetLogger("recast.java.parser")

type syntaxError struct {
	tok Token
	msg string
}

type prefixUndo struct {
	idx    int
	prefix string
}

type parser struct {
	path string
	toks []Token
	pos  int
	undo []prefixUndo
}

// ParseCompilationUnit parses one unit without attributing it.
func ParseCompilationUnit(path, text string) (*java.CompilationUnit, error) {
	lx := NewLexer([]byte(text), path)
	toks := lx.Tokens()
	if last := toks[len(toks)-1]; last.Kind == TokenError {
		return nil, &rewrite.ParseError{
			Path:    path,
			Line:    last.Span.Start.Line,
			Column:  last.Span.Start.Column,
			Message: lx.Err(),
		}
	}
	p := &parser{path: path, toks: toks}
	return p.compilationUnit()
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) peekN(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) at(k TokenKind) bool { return p.peek().Kind == k }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != TokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k TokenKind) Token {
	t := p.peek()
	if t.Kind != k {
		p.fail(t, "expected %s, found %q", k, t.Literal)
	}
	return p.next()
}

func (p *parser) fail(t Token, format string, args ...any) {
	panic(&syntaxError{tok: t, msg: fmt.Sprintf(format, args...)})
}

func space(t Token) java.Space { return java.Space(t.Prefix) }

// takePrefix moves the prefix of the next token to the caller, so the node
// about to be parsed can own it instead of its first child.
func (p *parser) takePrefix() java.Space {
	t := &p.toks[p.pos]
	s := t.Prefix
	if s != "" {
		p.undo = append(p.undo, prefixUndo{idx: p.pos, prefix: s})
		t.Prefix = ""
	}
	return java.Space(s)
}

// try runs f and rewinds the parser when f fails with a syntax error.
func (p *parser) try(f func()) (ok bool) {
	save, mark := p.pos, len(p.undo)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, isSyntax := r.(*syntaxError); !isSyntax {
			panic(r)
		}
		for i := len(p.undo) - 1; i >= mark; i-- {
			p.toks[p.undo[i].idx].Prefix = p.undo[i].prefix
		}
		p.undo = p.undo[:mark]
		p.pos = save
		ok = false
	}()
	f()
	return true
}

func (p *parser) compilationUnit() (cu *java.CompilationUnit, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		se, ok := r.(*syntaxError)
		if !ok {
			panic(r)
		}
		cu = nil
		err = &rewrite.ParseError{
			Path:    p.path,
			Line:    se.tok.Span.Start.Line,
			Column:  se.tok.Span.Start.Column,
			Message: se.msg,
		}
	}()

	cu = &java.CompilationUnit{Base: java.NewBase(""), Path: p.path}
	if p.at(TokenPackage) {
		t := p.next()
		cu.Package = &java.Package{Base: java.NewBase(space(t)), Name: p.qualifiedName()}
		cu.Package.Semi = space(p.expect(TokenSemicolon))
	}
	for p.at(TokenImport) {
		cu.Imports = append(cu.Imports, p.importDecl())
	}
	for !p.at(TokenEOF) {
		cu.Classes = append(cu.Classes, p.topLevel())
	}
	cu.EOF = space(p.peek())
	return cu, nil
}

func (p *parser) ident() *java.Ident {
	t := p.expect(TokenIdent)
	return &java.Ident{Base: java.NewBase(space(t)), Name: t.Literal}
}

func fieldAccess(target java.Expression, dot Token, name *java.Ident) *java.FieldAccess {
	return &java.FieldAccess{
		Base:   java.NewBase(target.Prefix()),
		Target: java.Padded[java.Expression]{Elem: java.WithPrefix(target, ""), After: space(dot)},
		Name:   name,
	}
}

func (p *parser) qualifiedName() java.Expression {
	var expr java.Expression = p.ident()
	for p.at(TokenDot) && p.peekN(1).Kind == TokenIdent {
		dot := p.next()
		expr = fieldAccess(expr, dot, p.ident())
	}
	return expr
}

func (p *parser) importDecl() *java.Import {
	t := p.expect(TokenImport)
	imp := &java.Import{Base: java.NewBase(space(t))}
	if p.at(TokenStatic) {
		s := p.next()
		imp.Static = true
		imp.StaticPrefix = space(s)
	}
	name := p.qualifiedName()
	if p.at(TokenDot) && p.peekN(1).Kind == TokenStar {
		dot := p.next()
		star := p.next()
		name = fieldAccess(name, dot, &java.Ident{Base: java.NewBase(space(star)), Name: "*"})
	}
	fa, ok := name.(*java.FieldAccess)
	if !ok {
		p.fail(p.peek(), "import of unqualified name %q", java.QualifiedName(name))
	}
	imp.Qualid = fa
	imp.Semi = space(p.expect(TokenSemicolon))
	return imp
}

func (p *parser) topLevel() java.Statement {
	if p.at(TokenSemicolon) {
		t := p.next()
		return &java.Empty{Base: java.NewBase(space(t))}
	}
	var stmt java.Statement
	if !p.try(func() { stmt = p.classDecl(p.takePrefix(), p.modifiers()) }) {
		stmt = p.unknown()
	}
	return stmt
}

// unknown consumes the tokens of one statement or member and returns them
// as verbatim text.
func (p *parser) unknown() *java.Unknown {
	start := p.pos
	first := p.peek()
	depth := 0
	for {
		t := p.peek()
		switch t.Kind {
		case TokenEOF:
			p.fail(t, "unexpected end of file")
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket:
			if depth == 0 {
				p.fail(t, "unbalanced %q", t.Literal)
			}
			depth--
		case TokenRBrace:
			if depth == 0 {
				if p.pos == start {
					p.fail(t, "unexpected '}'")
				}
				return p.unknownText(start)
			}
			depth--
			if depth == 0 {
				p.next()
				switch p.peek().Kind {
				case TokenElse, TokenCatch, TokenFinally:
					continue
				case TokenWhile:
					if first.Kind == TokenDo {
						continue
					}
				case TokenSemicolon:
					p.next()
				}
				return p.unknownText(start)
			}
		case TokenSemicolon:
			if depth == 0 {
				p.next()
				return p.unknownText(start)
			}
		}
		p.next()
	}
}

func (p *parser) unknownText(start int) *java.Unknown {
	first := p.toks[start]
	text := p.rawText(start)
	log.Debugf("%s:%d: keeping %q verbatim", p.path, first.Span.Start.Line, firstLine(text))
	return &java.Unknown{Base: java.NewBase(space(first)), Text: text}
}

// rawText joins the tokens from start up to the current position, dropping
// the prefix of the first one.
func (p *parser) rawText(start int) string {
	var sb strings.Builder
	sb.WriteString(p.toks[start].Literal)
	for _, t := range p.toks[start+1 : p.pos] {
		sb.WriteString(t.Prefix)
		sb.WriteString(t.Literal)
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (p *parser) modifiers() []java.J {
	var mods []java.J
	for {
		t := p.peek()
		switch {
		case isModifier(t.Kind):
			p.next()
			mods = append(mods, &java.Modifier{Base: java.NewBase(space(t)), Keyword: t.Literal})
		case t.Kind == TokenAt && p.peekN(1).Kind != TokenInterface:
			mods = append(mods, p.annotation())
		default:
			return mods
		}
	}
}

func (p *parser) annotation() *java.Annotation {
	at := p.expect(TokenAt)
	name := p.qualifiedName().(java.TypeTree)
	ann := &java.Annotation{Base: java.NewBase(space(at)), Name: name}
	if p.at(TokenLParen) {
		args := p.arguments()
		ann.Args = &args
	}
	return ann
}

func (p *parser) classDecl(prefix java.Space, mods []java.J) *java.ClassDecl {
	t := p.next()
	cd := &java.ClassDecl{Base: java.NewBase(prefix), Modifiers: mods, KindPrefix: space(t)}
	switch t.Kind {
	case TokenClass:
		cd.Kind = java.ClassKindClass
	case TokenInterface:
		cd.Kind = java.ClassKindInterface
	case TokenEnum:
		cd.Kind = java.ClassKindEnum
	case TokenAt:
		kw := p.expect(TokenInterface)
		if kw.Prefix != "" {
			p.fail(kw, "expected @interface")
		}
		cd.Kind = java.ClassKindAnnotation
	default:
		p.fail(t, "expected a type declaration, found %q", t.Literal)
	}
	cd.Name = p.ident()
	if p.at(TokenLT) {
		cd.TypeParams = p.typeParams()
	}
	if p.at(TokenExtends) {
		kw := p.next()
		if cd.Kind == java.ClassKindInterface {
			cd.Implements = p.typeList(kw)
		} else {
			cd.ExtendsPrefix = space(kw)
			cd.Extends = p.typeTree()
		}
	}
	if p.at(TokenImplements) {
		cd.Implements = p.typeList(p.next())
	}
	cd.Body = p.classBody()
	return cd
}

// typeParams keeps a type parameter declaration verbatim.
func (p *parser) typeParams() *java.Unknown {
	start := p.pos
	depth := 0
	for {
		t := p.next()
		switch t.Kind {
		case TokenEOF:
			p.fail(t, "unterminated type parameters")
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenLBrace, TokenSemicolon, TokenLParen:
			p.fail(t, "unterminated type parameters")
		}
		if depth <= 0 {
			break
		}
	}
	return &java.Unknown{Base: java.NewBase(space(p.toks[start])), Text: p.rawText(start)}
}

func (p *parser) typeList(keyword Token) *java.Container[java.TypeTree] {
	c := &java.Container[java.TypeTree]{Before: space(keyword)}
	for {
		t := p.typeTree()
		if p.at(TokenComma) {
			comma := p.next()
			c.Elems = append(c.Elems, java.Padded[java.TypeTree]{Elem: t, After: space(comma)})
			continue
		}
		c.Elems = append(c.Elems, java.Padded[java.TypeTree]{Elem: t})
		return c
	}
}

func (p *parser) classBody() *java.Block {
	open := p.expect(TokenLBrace)
	b := &java.Block{Base: java.NewBase(space(open))}
	for !p.at(TokenRBrace) {
		if p.at(TokenEOF) {
			p.fail(p.peek(), "unexpected end of file in class body")
		}
		b.Statements = append(b.Statements, p.member())
	}
	b.End = space(p.next())
	return b
}

func (p *parser) member() java.Padded[java.Statement] {
	if p.at(TokenSemicolon) {
		t := p.next()
		return java.Padded[java.Statement]{Elem: &java.Empty{Base: java.NewBase(space(t))}}
	}
	var stmt java.Statement
	var after java.Space
	if !p.try(func() { stmt, after = p.memberDecl() }) {
		stmt, after = p.unknown(), ""
	}
	return java.Padded[java.Statement]{Elem: stmt, After: after}
}

func (p *parser) memberDecl() (java.Statement, java.Space) {
	prefix := p.takePrefix()
	mods := p.modifiers()
	switch {
	case p.at(TokenClass), p.at(TokenInterface), p.at(TokenEnum),
		p.at(TokenAt) && p.peekN(1).Kind == TokenInterface:
		return p.classDecl(prefix, mods), ""
	}

	md := &java.MethodDecl{Base: java.NewBase(prefix), Modifiers: mods}
	if p.at(TokenLT) {
		md.TypeParams = p.typeParams()
	}
	if p.at(TokenIdent) && p.peekN(1).Kind == TokenLParen {
		md.Name = p.ident()
		return p.methodRest(md)
	}
	typ := p.typeTree()
	if p.at(TokenIdent) && p.peekN(1).Kind == TokenLParen {
		md.ReturnType = typ
		md.Name = p.ident()
		return p.methodRest(md)
	}
	if md.TypeParams != nil {
		p.fail(p.peek(), "expected method declaration")
	}
	vd := p.variableDecls(prefix, mods, typ)
	return vd, space(p.expect(TokenSemicolon))
}

func (p *parser) methodRest(md *java.MethodDecl) (java.Statement, java.Space) {
	md.Params = p.params()
	if p.at(TokenThrows) {
		md.Throws = p.typeList(p.next())
	}
	if p.at(TokenSemicolon) {
		return md, space(p.next())
	}
	md.Body = p.block()
	return md, ""
}

func (p *parser) params() java.Container[*java.VariableDecls] {
	lp := p.expect(TokenLParen)
	c := java.Container[*java.VariableDecls]{Before: space(lp)}
	if p.at(TokenRParen) {
		c.Inner = space(p.next())
		return c
	}
	for {
		vd := p.param()
		t := p.next()
		switch t.Kind {
		case TokenComma:
			c.Elems = append(c.Elems, java.Padded[*java.VariableDecls]{Elem: vd, After: space(t)})
		case TokenRParen:
			c.Elems = append(c.Elems, java.Padded[*java.VariableDecls]{Elem: vd, After: space(t)})
			return c
		default:
			p.fail(t, "expected ',' or ')' in parameter list, found %q", t.Literal)
		}
	}
}

func (p *parser) param() *java.VariableDecls {
	prefix := p.takePrefix()
	vd := &java.VariableDecls{Base: java.NewBase(prefix), Modifiers: p.modifiers()}
	vd.TypeExpr = p.typeTree()
	if p.at(TokenEllipsis) {
		s := space(p.next())
		vd.Varargs = &s
	}
	name := p.expect(TokenIdent)
	nv := &java.NamedVariable{
		Base: java.NewBase(space(name)),
		Name: &java.Ident{Base: java.NewBase(""), Name: name.Literal},
	}
	vd.Vars = []java.Padded[*java.NamedVariable]{{Elem: nv}}
	return vd
}

func (p *parser) variableDecls(prefix java.Space, mods []java.J, typ java.TypeTree) *java.VariableDecls {
	vd := &java.VariableDecls{Base: java.NewBase(prefix), Modifiers: mods, TypeExpr: typ}
	for {
		name := p.expect(TokenIdent)
		nv := &java.NamedVariable{
			Base: java.NewBase(space(name)),
			Name: &java.Ident{Base: java.NewBase(""), Name: name.Literal},
		}
		if p.at(TokenAssign) {
			eq := p.next()
			nv.EqPrefix = space(eq)
			if p.at(TokenLBrace) {
				p.fail(p.peek(), "array initializers are not supported")
			}
			nv.Init = p.expression()
		}
		if p.at(TokenComma) {
			comma := p.next()
			vd.Vars = append(vd.Vars, java.Padded[*java.NamedVariable]{Elem: nv, After: space(comma)})
			continue
		}
		vd.Vars = append(vd.Vars, java.Padded[*java.NamedVariable]{Elem: nv})
		return vd
	}
}

func (p *parser) typeTree() java.TypeTree {
	var t java.TypeTree
	if isPrimitive(p.peek().Kind) {
		tok := p.next()
		t = &java.PrimitiveType{Base: java.NewBase(space(tok)), Keyword: tok.Literal}
	} else {
		t = p.classType()
	}
	if p.at(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		prefix := t.Prefix()
		t = java.WithPrefix(t, "")
		for p.at(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
			lb := p.next()
			rb := p.next()
			t = &java.ArrayType{Base: java.NewBase(""), Elem: t, BracketPrefix: space(lb), Inner: space(rb)}
		}
		t = java.WithPrefix(t, prefix)
	}
	return t
}

func (p *parser) classType() java.TypeTree {
	first := p.ident()
	prefix := first.Prefix()
	var t java.TypeTree = java.WithPrefix(first, "")
	t = p.typeArgs(t)
	for p.at(TokenDot) && p.peekN(1).Kind == TokenIdent {
		dot := p.next()
		t = &java.FieldAccess{
			Base:   java.NewBase(""),
			Target: java.Padded[java.Expression]{Elem: t, After: space(dot)},
			Name:   p.ident(),
		}
		t = p.typeArgs(t)
	}
	return java.WithPrefix(t, prefix)
}

func (p *parser) typeArgs(clazz java.TypeTree) java.TypeTree {
	if !p.at(TokenLT) {
		return clazz
	}
	lt := p.next()
	c := java.Container[java.TypeTree]{Before: space(lt)}
	if p.at(TokenGT) {
		c.Inner = space(p.next())
		return &java.ParameterizedType{Base: java.NewBase(""), Clazz: clazz, TypeArgs: c}
	}
	for {
		arg := p.typeArg()
		if p.at(TokenComma) {
			comma := p.next()
			c.Elems = append(c.Elems, java.Padded[java.TypeTree]{Elem: arg, After: space(comma)})
			continue
		}
		gt := p.expectGT()
		c.Elems = append(c.Elems, java.Padded[java.TypeTree]{Elem: arg, After: space(gt)})
		return &java.ParameterizedType{Base: java.NewBase(""), Clazz: clazz, TypeArgs: c}
	}
}

func (p *parser) typeArg() java.TypeTree {
	if !p.at(TokenQuestion) {
		return p.typeTree()
	}
	q := p.next()
	w := &java.Wildcard{Base: java.NewBase(space(q))}
	if p.at(TokenExtends) || p.at(TokenSuper) {
		kw := p.next()
		w.Bound = kw.Literal
		w.BoundPrefix = space(kw)
		w.BoundType = p.typeTree()
	}
	return w
}

// expectGT consumes one '>' and splits tokens such as ">>" that start with
// it.
func (p *parser) expectGT() Token {
	t := p.peek()
	if t.Kind == TokenGT {
		return p.next()
	}
	if !strings.HasPrefix(t.Literal, ">") || len(t.Literal) < 2 {
		p.fail(t, "expected '>', found %q", t.Literal)
	}
	first := t
	first.Kind = TokenGT
	first.Literal = ">"
	first.Span.End = t.Span.Start
	first.Span.End.Offset++
	first.Span.End.Column++
	rest := Token{Kind: operatorKind(t.Literal[1:]), Literal: t.Literal[1:], Span: Span{Start: first.Span.End, End: t.Span.End}}
	p.toks[p.pos] = first
	p.toks = slices.Insert(p.toks, p.pos+1, rest)
	return p.next()
}

func operatorKind(text string) TokenKind {
	for _, op := range operators {
		if op.text == text {
			return op.kind
		}
	}
	return TokenError
}

func (p *parser) block() *java.Block {
	open := p.expect(TokenLBrace)
	b := &java.Block{Base: java.NewBase(space(open))}
	for !p.at(TokenRBrace) {
		if p.at(TokenEOF) {
			p.fail(p.peek(), "unexpected end of file in block")
		}
		b.Statements = append(b.Statements, p.blockStatement())
	}
	b.End = space(p.next())
	return b
}

func (p *parser) blockStatement() java.Padded[java.Statement] {
	var stmt java.Statement
	var after java.Space
	if !p.try(func() { stmt, after = p.statement() }) {
		stmt, after = p.unknown(), ""
	}
	return java.Padded[java.Statement]{Elem: stmt, After: after}
}

func (p *parser) statement() (java.Statement, java.Space) {
	t := p.peek()
	switch t.Kind {
	case TokenLBrace:
		return p.block(), ""
	case TokenSemicolon:
		p.next()
		return &java.Empty{Base: java.NewBase(space(t))}, ""
	case TokenReturn:
		p.next()
		r := &java.Return{Base: java.NewBase(space(t))}
		if !p.at(TokenSemicolon) {
			r.Expr = p.expression()
		}
		return r, space(p.expect(TokenSemicolon))
	case TokenThrow:
		p.next()
		th := &java.Throw{Base: java.NewBase(space(t)), Exception: p.expression()}
		return th, space(p.expect(TokenSemicolon))
	case TokenIf:
		p.next()
		n := &java.If{Base: java.NewBase(space(t)), Cond: p.parens()}
		n.Then = p.blockStatement()
		if p.at(TokenElse) {
			e := p.next()
			n.Else = &java.Else{Base: java.NewBase(space(e)), Body: p.blockStatement()}
		}
		return n, ""
	case TokenWhile:
		p.next()
		n := &java.While{Base: java.NewBase(space(t)), Cond: p.parens()}
		n.Body = p.blockStatement()
		return n, ""
	case TokenFor, TokenDo, TokenTry, TokenSwitch, TokenBreak, TokenContinue,
		TokenSynchronized, TokenAssert, TokenClass, TokenInterface, TokenEnum:
		p.fail(t, "unsupported statement %q", t.Literal)
	}

	prefix := p.takePrefix()
	var decl *java.VariableDecls
	if p.try(func() {
		mods := p.modifiers()
		typ := p.typeTree()
		if !p.at(TokenIdent) {
			p.fail(p.peek(), "not a declaration")
		}
		decl = p.variableDecls(prefix, mods, typ)
	}) {
		return decl, space(p.expect(TokenSemicolon))
	}

	e := java.WithPrefix(p.expression(), prefix)
	stmt, ok := e.(java.Statement)
	if !ok {
		p.fail(t, "not a statement")
	}
	return stmt, space(p.expect(TokenSemicolon))
}

func (p *parser) parens() *java.Parens {
	lp := p.expect(TokenLParen)
	e := p.expression()
	rp := p.expect(TokenRParen)
	return &java.Parens{Base: java.NewBase(space(lp)), Tree: java.Padded[java.Expression]{Elem: e, After: space(rp)}}
}

func (p *parser) arguments() java.Container[java.Expression] {
	lp := p.expect(TokenLParen)
	c := java.Container[java.Expression]{Before: space(lp)}
	if p.at(TokenRParen) {
		c.Inner = space(p.next())
		return c
	}
	for {
		e := p.expression()
		t := p.next()
		switch t.Kind {
		case TokenComma:
			c.Elems = append(c.Elems, java.Padded[java.Expression]{Elem: e, After: space(t)})
		case TokenRParen:
			c.Elems = append(c.Elems, java.Padded[java.Expression]{Elem: e, After: space(t)})
			return c
		default:
			p.fail(t, "expected ',' or ')' in arguments, found %q", t.Literal)
		}
	}
}

func isAssignOp(k TokenKind) bool {
	switch k {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenShlAssign, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

func binaryPrec(k TokenKind) int {
	switch k {
	case TokenOr:
		return 1
	case TokenAnd:
		return 2
	case TokenBitOr:
		return 3
	case TokenBitXor:
		return 4
	case TokenBitAnd:
		return 5
	case TokenEQ, TokenNE:
		return 6
	case TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof:
		return 7
	case TokenShl, TokenShr, TokenUShr:
		return 8
	case TokenPlus, TokenMinus:
		return 9
	case TokenStar, TokenSlash, TokenPercent:
		return 10
	}
	return 0
}

// hoist moves the prefix of the leftmost operand to the node built around it.
func hoist(e java.Expression) (java.Space, java.Expression) {
	return e.Prefix(), java.WithPrefix(e, "")
}

func (p *parser) expression() java.Expression {
	lhs := p.ternary()
	if !isAssignOp(p.peek().Kind) {
		return lhs
	}
	prefix, lhs := hoist(lhs)
	op := p.next()
	return &java.Assign{
		Base:     java.NewBase(prefix),
		Variable: lhs,
		OpPrefix: space(op),
		Operator: op.Literal,
		Value:    p.expression(),
	}
}

func (p *parser) ternary() java.Expression {
	cond := p.binary(1)
	if !p.at(TokenQuestion) {
		return cond
	}
	prefix, cond := hoist(cond)
	q := p.next()
	t := p.ternary()
	colon := p.expect(TokenColon)
	f := p.ternary()
	return &java.Ternary{
		Base:        java.NewBase(prefix),
		Cond:        cond,
		QPrefix:     space(q),
		True:        t,
		ColonPrefix: space(colon),
		False:       f,
	}
}

func (p *parser) binary(minPrec int) java.Expression {
	left := p.unary()
	for {
		op := p.peek()
		prec := binaryPrec(op.Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		if op.Kind == TokenInstanceof {
			p.fail(op, "instanceof is not supported")
		}
		p.next()
		right := p.binary(prec + 1)
		prefix, l := hoist(left)
		left = &java.Binary{
			Base:     java.NewBase(prefix),
			Left:     l,
			OpPrefix: space(op),
			Operator: op.Literal,
			Right:    right,
		}
	}
}

func (p *parser) unary() java.Expression {
	t := p.peek()
	switch t.Kind {
	case TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		p.next()
		return &java.Unary{Base: java.NewBase(space(t)), Operator: t.Literal, Operand: p.unary()}
	}
	return p.postfix(p.primary())
}

func (p *parser) postfix(e java.Expression) java.Expression {
	switch p.peek().Kind {
	case TokenDot, TokenLBracket, TokenIncrement, TokenDecrement:
	default:
		return e
	}
	prefix, e := hoist(e)
	for {
		t := p.peek()
		switch t.Kind {
		case TokenDot:
			p.next()
			nt := p.peek()
			switch nt.Kind {
			case TokenIdent, TokenClass, TokenThis, TokenSuper:
				p.next()
			default:
				p.fail(nt, "unsupported member selection %q", nt.Literal)
			}
			name := &java.Ident{Base: java.NewBase(space(nt)), Name: nt.Literal}
			if p.at(TokenLParen) {
				e = &java.MethodInvocation{
					Base:   java.NewBase(""),
					Select: &java.Padded[java.Expression]{Elem: e, After: space(t)},
					Name:   name,
					Args:   p.arguments(),
				}
				continue
			}
			e = &java.FieldAccess{
				Base:   java.NewBase(""),
				Target: java.Padded[java.Expression]{Elem: e, After: space(t)},
				Name:   name,
			}
		case TokenLBracket:
			lb := p.next()
			idx := p.expression()
			rb := p.expect(TokenRBracket)
			e = &java.ArrayAccess{
				Base:          java.NewBase(""),
				Indexed:       e,
				BracketPrefix: space(lb),
				Index:         java.Padded[java.Expression]{Elem: idx, After: space(rb)},
			}
		case TokenIncrement, TokenDecrement:
			p.next()
			e = &java.Unary{Base: java.NewBase(""), Operator: t.Literal, Postfix: true, OpPrefix: space(t), Operand: e}
		default:
			return java.WithPrefix(e, prefix)
		}
	}
}

func (p *parser) primary() java.Expression {
	t := p.peek()
	switch t.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral, TokenTextBlock,
		TokenTrue, TokenFalse, TokenNull:
		p.next()
		return &java.Literal{Base: java.NewBase(space(t)), Source: t.Literal}
	case TokenIdent, TokenThis, TokenSuper:
		p.next()
		if p.at(TokenLParen) {
			return &java.MethodInvocation{
				Base: java.NewBase(space(t)),
				Name: &java.Ident{Base: java.NewBase(""), Name: t.Literal},
				Args: p.arguments(),
			}
		}
		if p.at(TokenArrow) {
			p.fail(p.peek(), "lambdas are not supported")
		}
		return &java.Ident{Base: java.NewBase(space(t)), Name: t.Literal}
	case TokenLParen:
		return p.parens()
	case TokenNew:
		return p.newClass()
	}
	p.fail(t, "unexpected %q in expression", t.Literal)
	return nil
}

func (p *parser) newClass() *java.NewClass {
	t := p.expect(TokenNew)
	if isPrimitive(p.peek().Kind) {
		p.fail(p.peek(), "array creation is not supported")
	}
	nc := &java.NewClass{Base: java.NewBase(space(t)), Clazz: p.classType()}
	if !p.at(TokenLParen) {
		p.fail(p.peek(), "array creation is not supported")
	}
	nc.Args = p.arguments()
	if p.at(TokenLBrace) {
		nc.Body = p.classBody()
	}
	return nc
}
