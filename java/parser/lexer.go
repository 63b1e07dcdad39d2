package parser

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits Java source into tokens. Whitespace and comments are not
// returned as tokens; they become the Prefix of the token that follows them.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
	// err describes the last TokenError.
	err string
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Err returns the reason for the last TokenError.
func (l *Lexer) Err() string { return l.err }

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for range n {
		l.advance()
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.input) }

// Tokens lexes the whole input. The last token is always TokenEOF or
// TokenError.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == TokenEOF || t.Kind == TokenError {
			return toks
		}
	}
}

func (l *Lexer) NextToken() Token {
	prefixStart := l.pos
	if msg := l.skipTrivia(); msg != "" {
		l.err = msg
		return l.finish(TokenError, l.Position(), prefixStart)
	}
	prefix := string(l.input[prefixStart:l.pos])
	tok := l.scan()
	tok.Prefix = prefix
	return tok
}

func (l *Lexer) finish(kind TokenKind, start Position, prefixStart int) Token {
	t := l.token(kind, start)
	t.Prefix = string(l.input[prefixStart:start.Offset])
	return t
}

func (l *Lexer) skipTrivia() string {
	for !l.eof() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f':
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekN(1) == '*':
			l.advanceN(2)
			for {
				if l.eof() {
					return "unterminated comment"
				}
				if l.peek() == '*' && l.peekN(1) == '/' {
					l.advanceN(2)
					break
				}
				l.advance()
			}
		default:
			return ""
		}
	}
	return ""
}

func (l *Lexer) scan() Token {
	start := l.Position()
	if l.eof() {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case l.isLetterAt(l.pos):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case ch == '\'':
		return l.scanQuoted(start, '\'', TokenCharLiteral)
	case ch == '"':
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanQuoted(start, '"', TokenStringLiteral)
	}
	return l.scanOperator(start)
}

func (l *Lexer) isLetterAt(pos int) bool {
	if pos >= len(l.input) {
		return false
	}
	ch := l.input[pos]
	if ch < utf8.RuneSelf {
		return isJavaLetter(ch)
	}
	r, _ := utf8.DecodeRune(l.input[pos:])
	return unicode.IsLetter(r)
}

func (l *Lexer) isLetterOrDigitAt(pos int) bool {
	if pos >= len(l.input) {
		return false
	}
	ch := l.input[pos]
	if ch < utf8.RuneSelf {
		return isJavaLetter(ch) || isDigit(ch)
	}
	r, _ := utf8.DecodeRune(l.input[pos:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for l.isLetterOrDigitAt(l.pos) {
		if l.peek() < utf8.RuneSelf {
			l.advance()
			continue
		}
		_, size := utf8.DecodeRune(l.input[l.pos:])
		l.advanceN(size)
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}

	isFloat := false
	digits := func() {
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	digits()
	if l.peek() == '.' && l.peekN(1) != '.' && !l.isLetterAt(l.pos+1) {
		isFloat = true
		l.advance()
		digits()
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		digits()
	}
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		l.advance()
	}
	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanQuoted(start Position, quote byte, kind TokenKind) Token {
	l.advance()
	for {
		ch := l.peek()
		if l.eof() || ch == '\n' {
			l.err = "unterminated literal"
			return l.token(TokenError, start)
		}
		if ch == '\\' {
			l.advanceN(2)
			continue
		}
		l.advance()
		if ch == quote {
			return l.token(kind, start)
		}
	}
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for {
		if l.eof() {
			l.err = "unterminated text block"
			return l.token(TokenError, start)
		}
		if l.peek() == '\\' {
			l.advanceN(2)
			continue
		}
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			return l.token(TokenTextBlock, start)
		}
		l.advance()
	}
}

// operators lists punctuation longest first so the first match wins.
var operators = []struct {
	text string
	kind TokenKind
}{
	{">>>=", TokenUShrAssign},
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{">>>", TokenUShr},
	{"...", TokenEllipsis},
	{"::", TokenColonColon},
	{"->", TokenArrow},
	{"==", TokenEQ},
	{"!=", TokenNE},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"&&", TokenAnd},
	{"||", TokenOr},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{";", TokenSemicolon},
	{",", TokenComma},
	{".", TokenDot},
	{"@", TokenAt},
	{"=", TokenAssign},
	{"<", TokenLT},
	{">", TokenGT},
	{"!", TokenNot},
	{"&", TokenBitAnd},
	{"|", TokenBitOr},
	{"^", TokenBitXor},
	{"~", TokenBitNot},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
	{"?", TokenQuestion},
	{":", TokenColon},
}

func (l *Lexer) scanOperator(start Position) Token {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}
	l.advance()
	l.err = "unexpected character"
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}
