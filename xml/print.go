package xml

import (
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

// Print renders n from its recorded formatting.
func Print(n X, opts rewrite.PrintOptions) string {
	p := &printer{opts: opts}
	p.print(n)
	return p.sb.String()
}

type printer struct {
	sb   strings.Builder
	opts rewrite.PrintOptions
}

func (p *printer) str(s string) { p.sb.WriteString(s) }

func (p *printer) print(x X) {
	if isNil(x) {
		return
	}
	p.str(x.Prefix())
	p.str(x.Markers().Render(p.opts))
	switch n := x.(type) {
	case *Document:
		p.print(n.Prolog)
		p.print(n.Root)
		for _, c := range n.Epilog {
			p.print(c)
		}
		p.str(n.EOF)
	case *Prolog:
		p.print(n.XMLDecl)
		for _, c := range n.Misc {
			p.print(c)
		}
	case *XMLDecl:
		p.str("<?")
		p.str(n.Name)
		p.str(n.Body)
		p.str("?>")
	case *DocType:
		p.str("<!DOCTYPE")
		p.str(n.Text)
		p.str(">")
	case *Comment:
		p.str("<!--")
		p.str(n.Text)
		p.str("-->")
	case *CharData:
		if n.CDATA {
			p.str("<![CDATA[")
			p.str(n.Text)
			p.str("]]>")
		} else {
			p.str(n.Text)
		}
	case *Attribute:
		p.str(n.Key)
		p.str(n.BeforeEq)
		p.str("=")
		p.str(n.AfterEq)
		p.sb.WriteByte(n.Quote)
		p.str(n.Value)
		p.sb.WriteByte(n.Quote)
	case *Tag:
		p.str("<")
		p.str(n.Name)
		for _, a := range n.Attributes {
			p.print(a)
		}
		p.str(n.BeforeEnd)
		if n.Closing == nil {
			p.str("/>")
			return
		}
		p.str(">")
		for _, c := range n.Content {
			p.print(c)
		}
		p.str(n.Closing.Prefix)
		p.str("</")
		p.str(n.Closing.Name)
		p.str(n.Closing.BeforeGT)
		p.str(">")
	}
}
