package xml

import "github.com/dhamidi/recast/rewrite"

const FindTagsName = "xml.FindTags"

// FindTags marks the elements matching a path with a search result. It
// never changes the document's text.
type FindTags struct {
	xPath   string
	pattern *PathPattern
	err     error
}

func NewFindTags(xPath string) *FindTags {
	r := &FindTags{xPath: xPath}
	r.pattern, r.err = CompilePath(xPath)
	return r
}

func (r *FindTags) Name() string { return FindTagsName }

func (r *FindTags) Description() string { return "Find elements at " + r.xPath + "." }

func (r *FindTags) Validate() rewrite.Validated {
	return rewrite.Compiled("xPath", r.xPath, r.err)
}

func (r *FindTags) Visitor() rewrite.TreeVisitor {
	return Adapt(func() Visitor { return &findTagsVisitor{pattern: r.pattern} })
}

type findTagsVisitor struct {
	DefaultVisitor
	pattern *PathPattern
}

func (v *findTagsVisitor) Enter(c *Cursor, n X) Descent {
	if _, ok := n.(*Tag); ok && len(c.TagPath()) >= len(v.pattern.segments) {
		return SkipChildren
	}
	return Continue
}

func (v *findTagsVisitor) VisitTag(c *Cursor, n *Tag) X {
	if !v.pattern.Matches(c) {
		return n
	}
	c.Context().Found(n.ID())
	markers, added := n.Markers().AddSearchResult("")
	if !added {
		return n
	}
	return WithMarkers(n, markers)
}
