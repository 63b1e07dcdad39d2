package java

import (
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

// AddImport adds an import for Type unless the unit already sees it: types
// in the unit's own package, in java.lang or in the default package, and
// types covered by an existing single or on-demand import are skipped.
// With Static set, Type names a member such as "org.junit.Assert.assertTrue".
type AddImport struct {
	Type   string
	Static bool
}

func (a AddImport) Key() string {
	if a.Static {
		return "java.AddImport:static:" + a.Type
	}
	return "java.AddImport:" + a.Type
}

func (a AddImport) Visit(file rewrite.SourceFile, ctx *rewrite.Context) (rewrite.SourceFile, error) {
	cu, ok := file.(*CompilationUnit)
	if !ok || !a.needed(cu) {
		return file, nil
	}
	imp := NewImport(a.Type, a.Static)
	switch {
	case len(cu.Imports) > 0:
	case cu.Package != nil:
		imp = WithPrefix(imp, "\n\n")
	default:
		imp = WithPrefix(imp, "")
	}
	imports := append(append([]*Import(nil), cu.Imports...), imp)
	next := cu.WithImports(imports)
	if len(next.Classes) > 0 {
		classes := append([]Statement(nil), next.Classes...)
		classes[0] = WithPrefix(classes[0], blankLineBefore(classes[0].Prefix()))
		next = next.WithClasses(classes)
	}
	log.Debugf("%s: adding import %s", cu.Path, a.Type)
	ctx.Touch(cu.ID())
	return next, nil
}

func (a AddImport) needed(cu *CompilationUnit) bool {
	owner := PackageOf(a.Type)
	if owner == "" || (!a.Static && (owner == cu.PackageName() || owner == "java.lang")) {
		return false
	}
	for _, imp := range cu.Imports {
		if imp.Static != a.Static {
			continue
		}
		if imp.TypeName() == a.Type || imp.TypeName() == owner+".*" {
			return false
		}
	}
	return true
}

// blankLineBefore makes s start with an empty line.
func blankLineBefore(s Space) Space {
	switch {
	case strings.HasPrefix(string(s), "\n\n"):
		return s
	case strings.HasPrefix(string(s), "\n"):
		return "\n" + s
	}
	return "\n\n" + s
}

// RemoveImport removes the imports that could refer to Type once nothing in
// the unit uses them: the single-type import of Type, an on-demand import
// of its package with no remaining reference to a type of that package, and
// static imports of its members with no remaining unqualified use.
type RemoveImport struct {
	Type string
}

func (r RemoveImport) Key() string { return "java.RemoveImport:" + r.Type }

func (r RemoveImport) Visit(file rewrite.SourceFile, ctx *rewrite.Context) (rewrite.SourceFile, error) {
	cu, ok := file.(*CompilationUnit)
	if !ok || len(cu.Imports) == 0 {
		return file, nil
	}
	refs := collectReferences(cu)
	pkg := PackageOf(r.Type)

	var kept []*Import
	var carry *Space
	removed := false
	for _, imp := range cu.Imports {
		if r.unused(imp, pkg, refs) {
			log.Debugf("%s: removing import %s", cu.Path, imp.TypeName())
			removed = true
			if len(kept) == 0 && carry == nil {
				p := imp.Prefix()
				carry = &p
			}
			continue
		}
		if carry != nil {
			imp = WithPrefix(imp, *carry)
			carry = nil
		}
		kept = append(kept, imp)
	}
	if !removed {
		return file, nil
	}
	next := cu.WithImports(kept)
	if carry != nil && len(next.Classes) > 0 {
		classes := append([]Statement(nil), next.Classes...)
		classes[0] = WithPrefix(classes[0], *carry+trimLeadingNewlines(classes[0].Prefix()))
		next = next.WithClasses(classes)
	}
	ctx.Touch(cu.ID())
	return next, nil
}

func trimLeadingNewlines(s Space) Space {
	return Space(strings.TrimLeft(string(s), "\n"))
}

func (r RemoveImport) unused(imp *Import, pkg string, refs *references) bool {
	name := imp.TypeName()
	switch {
	case imp.Static && imp.SimpleName() == "*":
		return imp.Qualifier() == r.Type && !refs.staticOwners[r.Type]
	case imp.Static:
		return imp.Qualifier() == r.Type && !refs.staticMembers[name]
	case imp.SimpleName() == "*":
		return imp.Qualifier() == pkg && !refs.packages[pkg]
	}
	return name == r.Type && !refs.types[r.Type]
}

type references struct {
	types         map[string]bool
	packages      map[string]bool
	staticOwners  map[string]bool
	staticMembers map[string]bool
}

type referenceCollector struct {
	DefaultVisitor
	refs *references
}

func (v *referenceCollector) Enter(c *Cursor, n J) Descent {
	if _, ok := n.(*Import); ok {
		return SkipChildren
	}
	return Continue
}

func (v *referenceCollector) VisitIdent(c *Cursor, n *Ident) J {
	if cls, ok := n.Type.(*Class); ok && n.Name == cls.SimpleName() {
		v.refs.types[cls.FQN] = true
		v.refs.packages[cls.Package] = true
	}
	return n
}

func (v *referenceCollector) VisitMethodInvocation(c *Cursor, n *MethodInvocation) J {
	if n.Select == nil && n.Type != nil && n.Type.Declaring != nil {
		owner := n.Type.DeclaringFQN()
		v.refs.staticOwners[owner] = true
		v.refs.staticMembers[owner+"."+n.Name.Name] = true
	}
	return n
}

// collectReferences finds the types a unit names outside its imports and
// the owners of its unqualified method invocations.
func collectReferences(cu *CompilationUnit) *references {
	refs := &references{
		types:         map[string]bool{},
		packages:      map[string]bool{},
		staticOwners:  map[string]bool{},
		staticMembers: map[string]bool{},
	}
	Walk(&referenceCollector{refs: refs}, cu, nil)
	return refs
}
