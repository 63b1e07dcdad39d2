package recipes

import (
	"unicode"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

const ChangeMethodNameName = "java.ChangeMethodName"

// ChangeMethodName renames matching invocations and the matching
// declarations in the declaring class.
type ChangeMethodName struct {
	method     string
	name       string
	pattern    *java.MethodPattern
	patternErr error
}

func NewChangeMethodName(method, name string) *ChangeMethodName {
	r := &ChangeMethodName{method: method, name: name}
	r.pattern, r.patternErr = java.CompileMethodPattern(method)
	return r
}

func (r *ChangeMethodName) Name() string { return ChangeMethodNameName }

func (r *ChangeMethodName) Description() string {
	return "Rename methods matching " + r.method + " to " + r.name + "."
}

func (r *ChangeMethodName) Validate() rewrite.Validated {
	v := rewrite.Compiled("method", r.method, r.patternErr).And(rewrite.Required("name", r.name))
	if r.name != "" && !isIdentifier(r.name) {
		v = v.And(rewrite.Invalid("name", r.name, "is not a Java identifier", nil))
	}
	return v
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return s != ""
}

func (r *ChangeMethodName) Visitor() rewrite.TreeVisitor {
	return java.Adapt(func() java.Visitor {
		return &changeMethodNameVisitor{recipe: r}
	})
}

type changeMethodNameVisitor struct {
	java.DefaultVisitor
	recipe *ChangeMethodName
}

func (v *changeMethodNameVisitor) VisitMethodInvocation(c *java.Cursor, n *java.MethodInvocation) java.J {
	if n.Name.Name == v.recipe.name || !v.recipe.pattern.Matches(n, tableOf(c)) {
		return n
	}
	m := n.Type.WithName(v.recipe.name)
	return n.WithName(n.Name.WithName(v.recipe.name).WithType(m)).WithType(m)
}

func (v *changeMethodNameVisitor) VisitMethodDecl(c *java.Cursor, n *java.MethodDecl) java.J {
	if n.IsConstructor() || n.Name.Name == v.recipe.name || !v.recipe.pattern.Matches(n, tableOf(c)) {
		return n
	}
	cd, ok := java.Enclosing[*java.ClassDecl](c.Parent())
	if !ok || cd.Type == nil || cd.Type.FQN != n.Type.DeclaringFQN() {
		return n
	}
	m := n.Type.WithName(v.recipe.name)
	return n.WithName(n.Name.WithName(v.recipe.name).WithType(m)).WithType(m)
}
