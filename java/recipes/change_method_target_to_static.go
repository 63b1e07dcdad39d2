package recipes

import (
	"slices"
	"strings"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

const ChangeMethodTargetToStaticName = "java.ChangeMethodTargetToStatic"

// ChangeMethodTargetToStatic turns matching calls into static calls on a
// target type. The target is either a type ("b.B"), keeping the method name,
// or a factory method ("A factory()"), in which case matching constructor
// calls become calls to the factory.
type ChangeMethodTargetToStatic struct {
	method     string
	target     string
	pattern    *java.MethodPattern
	patternErr error
	targetType string
	factory    string
	targetErr  error
}

func NewChangeMethodTargetToStatic(method, target string) *ChangeMethodTargetToStatic {
	r := &ChangeMethodTargetToStatic{method: method, target: target}
	r.pattern, r.patternErr = java.CompileMethodPattern(method)
	r.targetType, r.factory, r.targetErr = parseTarget(target)
	return r
}

// parseTarget splits "A factory()" into its type and method name.
func parseTarget(target string) (string, string, error) {
	target = strings.TrimSpace(target)
	if !strings.Contains(target, "(") {
		if strings.ContainsAny(target, " *") {
			return "", "", &rewrite.PatternSyntaxError{Pattern: target, Offending: target, Message: "expected a fully qualified type name"}
		}
		return target, "", nil
	}
	if _, err := java.CompileMethodPattern(target); err != nil {
		return "", "", err
	}
	fields := strings.Fields(target)
	owner := fields[0]
	name, _, _ := strings.Cut(strings.Join(fields[1:], " "), "(")
	name = strings.TrimSpace(name)
	if strings.Contains(owner+name, "*") {
		return "", "", &rewrite.PatternSyntaxError{Pattern: target, Offending: owner, Message: "factory target must name a single method"}
	}
	return owner, name, nil
}

func (r *ChangeMethodTargetToStatic) Name() string { return ChangeMethodTargetToStaticName }

func (r *ChangeMethodTargetToStatic) Description() string {
	return "Change calls matching " + r.method + " into static calls on " + r.target + "."
}

func (r *ChangeMethodTargetToStatic) Validate() rewrite.Validated {
	return rewrite.Compiled("method", r.method, r.patternErr).
		And(rewrite.Compiled("target.type", r.target, r.targetErr))
}

func (r *ChangeMethodTargetToStatic) Visitor() rewrite.TreeVisitor {
	return java.Adapt(func() java.Visitor {
		return &changeMethodTargetVisitor{recipe: r}
	})
}

type changeMethodTargetVisitor struct {
	java.DefaultVisitor
	recipe    *ChangeMethodTargetToStatic
	declaring []string
}

func (v *changeMethodTargetVisitor) Enter(c *java.Cursor, n java.J) java.Descent {
	md, ok := n.(*java.MethodDecl)
	if ok && v.recipe.factory != "" && md.Type != nil &&
		md.Type.DeclaringFQN() == v.recipe.targetType && md.Name.Name == v.recipe.factory {
		return java.SkipChildren
	}
	return java.Continue
}

func (v *changeMethodTargetVisitor) targetClass(c *java.Cursor) *java.Class {
	if table := tableOf(c); table != nil {
		if cls, ok := table.Class(v.recipe.targetType); ok {
			return cls
		}
	}
	fqn := v.recipe.targetType
	return &java.Class{FQN: fqn, Package: java.PackageOf(fqn), Kind: java.ClassKindClass}
}

// matched records the old declaring type and schedules the import changes.
func (v *changeMethodTargetVisitor) matched(c *java.Cursor, old *java.Method) {
	fqn := old.DeclaringFQN()
	if !slices.Contains(v.declaring, fqn) {
		v.declaring = append(v.declaring, fqn)
	}
	c.Context().AndThen(java.AddImport{Type: v.recipe.targetType})
	if fqn != v.recipe.targetType {
		c.Context().AndThen(java.RemoveImport{Type: fqn})
	}
}

// staticMethod returns the method a retargeted call resolves to.
func (v *changeMethodTargetVisitor) staticMethod(target *java.Class, old *java.Method) *java.Method {
	name := old.Name
	if v.recipe.factory != "" {
		name = v.recipe.factory
	}
	if target.Declared {
		if m := target.FindMethod(name, len(old.ParamTypes)); m != nil {
			return m.WithFlags(m.Flags | java.Static)
		}
	}
	m := old.WithDeclaringType(target).WithName(name).WithFlags(old.Flags | java.Static)
	if old.IsConstructor() {
		m = m.WithReturn(old.Return)
	}
	return m
}

func (v *changeMethodTargetVisitor) VisitMethodInvocation(c *java.Cursor, n *java.MethodInvocation) java.J {
	if !v.recipe.pattern.Matches(n, tableOf(c)) {
		return n
	}
	target := v.targetClass(c)
	v.matched(c, n.Type)

	var prefix, after java.Space
	if n.Select != nil {
		prefix, after = n.Select.Elem.Prefix(), n.Select.After
	}
	sel := java.WithPrefix(java.NewIdent(java.SimpleName(target.FQN), target), prefix)
	m := v.staticMethod(target, n.Type)
	return n.WithSelect(&java.Padded[java.Expression]{Elem: sel, After: after}).
		WithName(n.Name.WithName(m.Name).WithType(m)).
		WithType(m)
}

func (v *changeMethodTargetVisitor) VisitNewClass(c *java.Cursor, n *java.NewClass) java.J {
	if v.recipe.factory == "" || n.Body != nil || !v.recipe.pattern.Matches(n, tableOf(c)) {
		return n
	}
	target := v.targetClass(c)
	v.matched(c, n.Type)
	m := v.staticMethod(target, n.Type)
	return &java.MethodInvocation{
		Base:   java.NewBase(n.Prefix()),
		Select: &java.Padded[java.Expression]{Elem: java.NewIdent(java.SimpleName(target.FQN), target)},
		Name:   java.NewIdent(m.Name, m),
		Args:   n.Args,
		Type:   m,
	}
}

func (v *changeMethodTargetVisitor) VisitCompilationUnit(c *java.Cursor, n *java.CompilationUnit) java.J {
	if len(v.declaring) > 1 {
		log.Warning("pattern matched several declaring types", "path", n.Path, "method", v.recipe.method, "types", len(v.declaring))
		c.Context().Warn(&rewrite.AmbiguousMatchWarning{
			Recipe:  ChangeMethodTargetToStaticName,
			Pattern: v.recipe.method,
			Matches: v.declaring,
		})
	}
	return n
}

// tableOf returns the symbol table of the unit being visited, if any.
func tableOf(c *java.Cursor) *java.Table {
	if cu := c.CompilationUnit(); cu != nil {
		return cu.Table
	}
	return nil
}
