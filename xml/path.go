package xml

import (
	"iter"
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

// PathPattern is an absolute element path such as
// "/project/dependencies/dependency". A "*" segment matches any element
// name.
type PathPattern struct {
	source   string
	segments []string
}

// CompilePath compiles an absolute element path. Malformed paths yield a
// *rewrite.PatternSyntaxError.
func CompilePath(s string) (*PathPattern, error) {
	fail := func(offending, msg string) (*PathPattern, error) {
		return nil, &rewrite.PatternSyntaxError{Pattern: s, Offending: offending, Message: msg}
	}
	if s == "" {
		return fail("", "empty path")
	}
	if !strings.HasPrefix(s, "/") {
		return fail(s, "path must start with /")
	}
	if strings.Contains(s, "//") {
		return fail("//", "descendant axis is not supported")
	}
	segments := strings.Split(s[1:], "/")
	for _, seg := range segments {
		if seg == "" {
			return fail(s, "empty segment")
		}
		if seg == "*" {
			continue
		}
		for i := 0; i < len(seg); i++ {
			if !isNameByte(seg[i], i == 0) {
				return fail(seg, "invalid element name")
			}
		}
	}
	return &PathPattern{source: s, segments: segments}, nil
}

func (p *PathPattern) String() string { return p.source }

// MatchesPath reports whether names, the element names from the root
// element down, are matched by p.
func (p *PathPattern) MatchesPath(names []string) bool {
	if len(names) != len(p.segments) {
		return false
	}
	for i, seg := range p.segments {
		if seg != "*" && seg != names[i] {
			return false
		}
	}
	return true
}

// Matches reports whether the cursor is positioned on an element whose
// path from the root element is matched by p.
func (p *PathPattern) Matches(c *Cursor) bool {
	if _, ok := c.Node().(*Tag); !ok {
		return false
	}
	return p.MatchesPath(c.TagPath())
}

// Find yields the elements of doc matched by pattern in document order.
func Find(doc *Document, pattern *PathPattern) iter.Seq[*Tag] {
	return func(yield func(*Tag) bool) {
		if doc == nil || doc.Root == nil {
			return
		}
		find(doc.Root, nil, pattern, yield)
	}
}

func find(t *Tag, names []string, pattern *PathPattern, yield func(*Tag) bool) bool {
	names = append(names, t.Name)
	if pattern.MatchesPath(names) {
		if !yield(t) {
			return false
		}
	}
	if len(names) >= len(pattern.segments) {
		return true
	}
	for _, child := range t.ChildTags() {
		if !find(child, names, pattern, yield) {
			return false
		}
	}
	return true
}
