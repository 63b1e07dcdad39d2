package xml

import "github.com/dhamidi/recast/rewrite"

const ChangeTagValueName = "xml.ChangeTagValue"

// WithValue returns n with its content replaced by the text value. It
// returns n itself when the value is unchanged.
func (n *Tag) WithValue(value string) *Tag {
	if n.Value() == value {
		return n
	}
	text := Escape(value)
	if len(n.Content) == 1 {
		if cd, ok := n.Content[0].(*CharData); ok && !cd.CDATA {
			c := *cd
			c.Text = text
			return n.WithContent([]Content{&c})
		}
	}
	closing := &Closing{Name: n.Name}
	if n.Closing != nil {
		closing.BeforeGT = n.Closing.BeforeGT
	}
	var content []Content
	if text != "" {
		content = []Content{&CharData{Base: NewBase(""), Text: text}}
	} else {
		content = []Content{}
	}
	return n.WithClosing(closing).WithContent(content)
}

// ChangeTagValue sets the text of every element matching a path.
type ChangeTagValue struct {
	xPath   string
	value   string
	pattern *PathPattern
	err     error
}

func NewChangeTagValue(xPath, value string) *ChangeTagValue {
	r := &ChangeTagValue{xPath: xPath, value: value}
	r.pattern, r.err = CompilePath(xPath)
	return r
}

func (r *ChangeTagValue) Name() string { return ChangeTagValueName }

func (r *ChangeTagValue) Description() string {
	return "Set the value of elements at " + r.xPath + " to " + r.value + "."
}

func (r *ChangeTagValue) Validate() rewrite.Validated {
	return rewrite.Compiled("xPath", r.xPath, r.err)
}

func (r *ChangeTagValue) Visitor() rewrite.TreeVisitor {
	return Adapt(func() Visitor { return &changeTagValueVisitor{pattern: r.pattern, value: r.value} })
}

type changeTagValueVisitor struct {
	DefaultVisitor
	pattern *PathPattern
	value   string
}

func (v *changeTagValueVisitor) VisitTag(c *Cursor, n *Tag) X {
	if !v.pattern.Matches(c) {
		return n
	}
	return n.WithValue(v.value)
}
