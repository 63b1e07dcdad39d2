package xml

import (
	"fmt"
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

// Parse reads a document. Malformed input yields a *rewrite.ParseError.
func Parse(path, text string) (doc *Document, err error) {
	p := &parser{path: path, src: text}
	defer p.recover(&err)
	doc = p.document()
	log.Debugf("%s: parsed root <%s>", path, doc.Root.Name)
	return doc, nil
}

// ParseTag parses a single element, such as a fragment to insert into a
// document. Surrounding whitespace is ignored.
func ParseTag(snippet string) (tag *Tag, err error) {
	p := &parser{path: "<snippet>", src: strings.TrimSpace(snippet)}
	defer p.recover(&err)
	if !p.has("<") {
		p.fail("expected an element")
	}
	tag = p.tag("")
	if p.pos < len(p.src) {
		p.fail("unexpected text after element")
	}
	return tag, nil
}

// MustParseTag is ParseTag for fragments known to be well formed.
func MustParseTag(snippet string) *Tag {
	tag, err := ParseTag(snippet)
	if err != nil {
		panic(err)
	}
	return tag
}

type syntaxError struct {
	pos int
	msg string
}

type parser struct {
	path string
	src  string
	pos  int
}

func (p *parser) recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	se, ok := r.(*syntaxError)
	if !ok {
		panic(r)
	}
	line, col := p.position(se.pos)
	*err = &rewrite.ParseError{
		Path:    p.path,
		Line:    line,
		Column:  col,
		Message: se.msg,
		Err:     rewrite.ErrParse,
	}
}

func (p *parser) position(pos int) (line, col int) {
	line = 1 + strings.Count(p.src[:pos], "\n")
	col = pos - strings.LastIndexByte(p.src[:pos], '\n')
	return line, col
}

func (p *parser) fail(format string, args ...any) {
	panic(&syntaxError{pos: p.pos, msg: fmt.Sprintf(format, args...)})
}

func (p *parser) has(s string) bool { return strings.HasPrefix(p.src[p.pos:], s) }

func (p *parser) expect(s string) {
	if !p.has(s) {
		p.fail("expected %q", s)
	}
	p.pos += len(s)
}

func (p *parser) spaces() string {
	start := p.pos
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// until consumes text up to end and then end itself.
func (p *parser) until(end, what string) string {
	i := strings.Index(p.src[p.pos:], end)
	if i < 0 {
		p.fail("unterminated %s", what)
	}
	s := p.src[p.pos : p.pos+i]
	p.pos += i + len(end)
	return s
}

func (p *parser) name() string {
	start := p.pos
	for p.pos < len(p.src) && isNameByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	if p.pos == start {
		p.fail("expected a name")
	}
	return p.src[start:p.pos]
}

func (p *parser) document() *Document {
	doc := &Document{Base: NewBase(""), Path: p.path, Prolog: &Prolog{Base: NewBase("")}}
	prefix := p.spaces()
	if p.has("<?xml") {
		doc.Prolog.XMLDecl = p.pi(prefix)
		prefix = p.spaces()
	}
	for {
		misc := p.misc(prefix)
		if misc == nil {
			break
		}
		doc.Prolog.Misc = append(doc.Prolog.Misc, misc)
		prefix = p.spaces()
	}
	if !p.has("<") {
		p.fail("expected the root element")
	}
	doc.Root = p.tag(prefix)
	for {
		prefix = p.spaces()
		misc := p.misc(prefix)
		if misc == nil {
			break
		}
		if _, ok := misc.(*DocType); ok {
			p.fail("DOCTYPE after the root element")
		}
		doc.Epilog = append(doc.Epilog, misc)
	}
	if p.pos < len(p.src) {
		p.fail("unexpected content after the root element")
	}
	doc.EOF = prefix
	return doc
}

// misc parses a comment, processing instruction or doctype, or returns nil.
func (p *parser) misc(prefix string) Content {
	switch {
	case p.has("<!--"):
		return p.comment(prefix)
	case p.has("<!DOCTYPE"):
		p.pos += len("<!DOCTYPE")
		return &DocType{Base: NewBase(prefix), Text: p.doctypeBody()}
	case p.has("<?"):
		return p.pi(prefix)
	}
	return nil
}

// doctypeBody reads up to the closing ">", skipping an internal subset.
func (p *parser) doctypeBody() string {
	start := p.pos
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth == 0 {
				s := p.src[start:p.pos]
				p.pos++
				return s
			}
		}
		p.pos++
	}
	p.fail("unterminated DOCTYPE")
	return ""
}

func (p *parser) comment(prefix string) *Comment {
	p.expect("<!--")
	return &Comment{Base: NewBase(prefix), Text: p.until("-->", "comment")}
}

func (p *parser) pi(prefix string) *XMLDecl {
	p.expect("<?")
	name := p.name()
	return &XMLDecl{Base: NewBase(prefix), Name: name, Body: p.until("?>", "processing instruction")}
}

func (p *parser) tag(prefix string) *Tag {
	p.expect("<")
	t := &Tag{Base: NewBase(prefix), Name: p.name()}
	for {
		ws := p.spaces()
		switch {
		case p.has("/>"):
			p.pos += 2
			t.BeforeEnd = ws
			return t
		case p.has(">"):
			p.pos++
			t.BeforeEnd = ws
			t.Content, t.Closing = p.content(t.Name)
			return t
		case p.pos >= len(p.src):
			p.fail("unterminated start tag <%s", t.Name)
		case ws == "":
			p.fail("expected whitespace before attribute")
		}
		t.Attributes = append(t.Attributes, p.attribute(ws))
	}
}

func (p *parser) attribute(prefix string) *Attribute {
	a := &Attribute{Base: NewBase(prefix), Key: p.name()}
	a.BeforeEq = p.spaces()
	p.expect("=")
	a.AfterEq = p.spaces()
	if !p.has(`"`) && !p.has("'") {
		p.fail("expected a quoted value for %s", a.Key)
	}
	a.Quote = p.src[p.pos]
	p.pos++
	a.Value = p.until(string(a.Quote), "attribute value")
	if strings.ContainsRune(a.Value, '<') {
		p.fail("'<' in value of %s", a.Key)
	}
	return a
}

func (p *parser) content(name string) ([]Content, *Closing) {
	content := []Content{}
	for {
		prefix := p.spaces()
		switch {
		case p.pos >= len(p.src):
			p.fail("unclosed element <%s>", name)
		case p.has("</"):
			p.pos += 2
			closing := &Closing{Prefix: prefix, Name: p.name()}
			closing.BeforeGT = p.spaces()
			p.expect(">")
			if closing.Name != name {
				p.fail("closing tag </%s> does not match <%s>", closing.Name, name)
			}
			return content, closing
		case p.has("<![CDATA["):
			p.pos += len("<![CDATA[")
			content = append(content, &CharData{Base: NewBase(prefix), Text: p.until("]]>", "CDATA section"), CDATA: true})
		case p.has("<!--"):
			content = append(content, p.comment(prefix))
		case p.has("<?"):
			content = append(content, p.pi(prefix))
		case p.has("<"):
			content = append(content, p.tag(prefix))
		default:
			content = append(content, p.text(prefix))
		}
	}
}

// text reads character data up to the next markup. Trailing whitespace is
// left for the next node's prefix.
func (p *parser) text(prefix string) *CharData {
	start := p.pos
	end := strings.IndexByte(p.src[start:], '<')
	if end < 0 {
		end = len(p.src) - start
	}
	text := strings.TrimRightFunc(p.src[start:start+end], func(r rune) bool {
		return r < 0x80 && isSpace(byte(r))
	})
	p.pos = start + len(text)
	return &CharData{Base: NewBase(prefix), Text: text}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isNameByte(b byte, first bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_', b == ':', b >= 0x80:
		return true
	case b >= '0' && b <= '9', b == '-', b == '.':
		return !first
	}
	return false
}
