package recipes

import (
	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

const ImplementInterfaceName = "java.ImplementInterface"

// ImplementInterface adds an interface to the implements clause of a class,
// or the extends clause of an interface, and imports it.
type ImplementInterface struct {
	typ      string
	iface    string
	ifaceErr error
}

func NewImplementInterface(typ, iface string) *ImplementInterface {
	r := &ImplementInterface{typ: typ, iface: iface}
	_, factory, err := parseTarget(iface)
	if err == nil && factory != "" {
		err = &rewrite.PatternSyntaxError{Pattern: iface, Offending: iface, Message: "expected a fully qualified type name"}
	}
	r.ifaceErr = err
	return r
}

func (r *ImplementInterface) Name() string { return ImplementInterfaceName }

func (r *ImplementInterface) Description() string {
	return "Make " + r.typ + " implement " + r.iface + "."
}

func (r *ImplementInterface) Validate() rewrite.Validated {
	return rewrite.Required("type", r.typ).And(rewrite.Compiled("interface", r.iface, r.ifaceErr))
}

func (r *ImplementInterface) Visitor() rewrite.TreeVisitor {
	return java.Adapt(func() java.Visitor { return &implementInterfaceVisitor{recipe: r} })
}

type implementInterfaceVisitor struct {
	java.DefaultVisitor
	recipe *ImplementInterface
}

func (v *implementInterfaceVisitor) implements(cd *java.ClassDecl) bool {
	if cd.Type != nil && cd.Type.IsSubtypeOf(v.recipe.iface) {
		return true
	}
	if cd.Implements == nil {
		return false
	}
	for _, t := range cd.Implements.List() {
		name := java.QualifiedName(t)
		if name == v.recipe.iface || name == java.SimpleName(v.recipe.iface) {
			return true
		}
	}
	return false
}

func (v *implementInterfaceVisitor) VisitClassDecl(c *java.Cursor, n *java.ClassDecl) java.J {
	if n.Type == nil || n.Type.FQN != v.recipe.typ || v.implements(n) {
		return n
	}
	var iface *java.Class
	if table := tableOf(c); table != nil {
		iface, _ = table.Class(v.recipe.iface)
	}
	if iface == nil {
		iface = &java.Class{FQN: v.recipe.iface, Package: java.PackageOf(v.recipe.iface), Kind: java.ClassKindInterface}
	}
	elem := java.Padded[java.TypeTree]{Elem: java.WithPrefix[java.TypeTree](java.NewIdent(iface.SimpleName(), iface), " ")}

	impl := &java.Container[java.TypeTree]{Before: " "}
	if n.Implements != nil {
		impl = &java.Container[java.TypeTree]{
			Before: n.Implements.Before,
			Elems:  append(append([]java.Padded[java.TypeTree](nil), n.Implements.Elems...), elem),
		}
	} else {
		impl.Elems = []java.Padded[java.TypeTree]{elem}
	}
	c.Context().AndThen(java.AddImport{Type: v.recipe.iface})
	return n.WithImplements(impl)
}
