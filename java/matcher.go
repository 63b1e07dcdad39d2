package java

import (
	"path"
	"strings"
	"unicode"

	"github.com/dhamidi/recast/rewrite"
)

// MethodPattern matches method types against a signature pattern such as
// "java.util.List add(int, *)" or "a..* get*(..)".
type MethodPattern struct {
	source   string
	owner    string
	ownerAny bool
	// ownerPkg is set for "pkg.*" and "pkg..*" owners.
	ownerPkg     string
	ownerSubpkgs bool
	name         string
	params       []string
	anyArity     bool
	// restAny is set when the parameter list ends in "..".
	restAny bool
}

// CompileMethodPattern parses a method signature pattern.
func CompileMethodPattern(s string) (*MethodPattern, error) {
	src := strings.TrimSpace(s)
	fail := func(offending, message string) (*MethodPattern, error) {
		return nil, &rewrite.PatternSyntaxError{Pattern: s, Offending: offending, Message: message}
	}
	if src == "" {
		return fail("", "empty pattern")
	}
	i := strings.IndexFunc(src, unicode.IsSpace)
	if i < 0 {
		return fail(src, "expected an owning type followed by a method name")
	}
	owner, rest := src[:i], strings.TrimSpace(src[i:])
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return fail(rest, "missing parameter list")
	}
	if !strings.HasSuffix(rest, ")") {
		return fail(rest[open:], "parameter list must end the pattern with ')'")
	}
	name := strings.TrimSpace(rest[:open])
	inner := rest[open+1 : len(rest)-1]

	p := &MethodPattern{source: s}
	if err := p.compileOwner(owner); err != "" {
		return fail(owner, err)
	}
	if err := p.compileName(name); err != "" {
		return fail(name, err)
	}
	if strings.ContainsAny(inner, "()") {
		return fail(inner, "unbalanced parentheses")
	}
	if offending, err := p.compileParams(inner); err != "" {
		return fail(offending, err)
	}
	return p, nil
}

func (p *MethodPattern) String() string { return p.source }

func (p *MethodPattern) compileOwner(owner string) string {
	for _, r := range owner {
		if !isPatternTypeRune(r) {
			return "invalid character in owning type"
		}
	}
	switch {
	case owner == "*":
		p.ownerAny = true
	case strings.HasSuffix(owner, "..*"):
		p.ownerPkg = strings.TrimSuffix(owner, "..*")
		p.ownerSubpkgs = true
	case strings.HasSuffix(owner, ".*"):
		p.ownerPkg = strings.TrimSuffix(owner, ".*")
	default:
		p.owner = normalizeTypeName(owner)
	}
	if p.ownerPkg != "" && strings.Contains(p.ownerPkg, "*") {
		return "wildcards are only allowed as the last segment of a package"
	}
	if strings.Contains(p.owner+p.ownerPkg, "..") || strings.HasPrefix(owner, ".") {
		return "empty segment in owning type"
	}
	return ""
}

func (p *MethodPattern) compileName(name string) string {
	if name == "" {
		return "missing method name"
	}
	if name == ConstructorName {
		p.name = ConstructorName
		return ""
	}
	for _, r := range name {
		if r != '*' && r != '$' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "invalid character in method name"
		}
	}
	if p.owner != "" && !strings.Contains(name, "*") && name == SimpleName(p.owner) {
		p.name = ConstructorName
		return ""
	}
	p.name = name
	return ""
}

func (p *MethodPattern) compileParams(inner string) (string, string) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return "", ""
	}
	if inner == "*" || inner == ".." {
		p.anyArity = true
		return "", ""
	}
	parts := strings.Split(inner, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			return inner, "empty parameter type"
		case part == "..":
			if i != len(parts)-1 {
				return part, "'..' must be the last parameter"
			}
			p.restAny = true
			continue
		case strings.HasSuffix(part, "...") && i != len(parts)-1:
			return part, "only the last parameter may be variable arity"
		}
		for _, r := range part {
			if !isPatternTypeRune(r) && r != '[' && r != ']' {
				return part, "invalid character in parameter type"
			}
		}
		p.params = append(p.params, normalizeTypeName(part))
	}
	return "", ""
}

func isPatternTypeRune(r rune) bool {
	return r == '.' || r == '*' || r == '$' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// normalizeTypeName expands java.lang simple names and turns varargs into
// array notation.
func normalizeTypeName(name string) string {
	dims := ""
	if strings.HasSuffix(name, "...") {
		name = strings.TrimSuffix(name, "...")
		dims = "[]"
	}
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
		dims += "[]"
	}
	if !strings.Contains(name, ".") && JavaLang(name) {
		name = "java.lang." + name
	}
	return name + dims
}

// Matches reports whether node is an invocation, constructor call or method
// declaration whose attributed method type matches the pattern.
func (p *MethodPattern) Matches(node J, table *Table) bool {
	var m *Method
	switch n := node.(type) {
	case *MethodInvocation:
		m = n.Type
	case *NewClass:
		m = n.Type
	case *MethodDecl:
		m = n.Type
	default:
		return false
	}
	if m == nil {
		return false
	}
	if table != nil && m.Declaring != nil && !m.Declaring.Declared {
		if c, ok := table.Class(m.Declaring.FQN); ok && c.Declared {
			m = m.WithDeclaringType(c)
		}
	}
	return p.MatchesType(m)
}

// MatchesType reports whether m is declared by the pattern's owning type and
// fits its name and parameters. A method declared by a subtype, such as an
// override, does not match an owner naming the supertype. Unresolved methods
// only match parameter lists made of "*" and "..".
func (p *MethodPattern) MatchesType(m *Method) bool {
	if m == nil || m.Declaring == nil {
		return false
	}
	if !p.matchesName(m.Name) || !p.matchesParams(m) {
		return false
	}
	if m.Unresolved && !p.arityOnly() {
		return false
	}
	return p.matchesOwner(m.Declaring)
}

// arityOnly reports whether the parameter list constrains nothing but the
// number of arguments.
func (p *MethodPattern) arityOnly() bool {
	for _, param := range p.params {
		if param != "*" {
			return false
		}
	}
	return true
}

func (p *MethodPattern) matchesOwner(c *Class) bool {
	switch {
	case p.ownerAny:
		return true
	case p.ownerPkg != "":
		pkg := c.Package
		if pkg == "" {
			pkg = PackageOf(c.FQN)
		}
		return pkg == p.ownerPkg || (p.ownerSubpkgs && strings.HasPrefix(pkg, p.ownerPkg+"."))
	case strings.Contains(p.owner, "*"):
		ok, _ := path.Match(p.owner, c.FQN)
		return ok
	}
	return p.owner == c.FQN
}

func (p *MethodPattern) matchesName(name string) bool {
	if p.name == "*" {
		return name != ConstructorName
	}
	if strings.Contains(p.name, "*") {
		ok, _ := path.Match(p.name, name)
		return ok
	}
	return p.name == name
}

func (p *MethodPattern) matchesParams(m *Method) bool {
	if p.anyArity {
		return true
	}
	if p.restAny {
		if len(m.ParamTypes) < len(p.params) {
			return false
		}
	} else if len(m.ParamTypes) != len(p.params) {
		return false
	}
	for i, want := range p.params {
		if !matchesParamType(want, m.ParamTypes[i]) {
			return false
		}
	}
	return true
}

func matchesParamType(want string, t Type) bool {
	if want == "*" {
		return true
	}
	got := TypeName(t)
	if want == got {
		return true
	}
	if !strings.Contains(want, ".") {
		return want == lastSegment(got)
	}
	return false
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
