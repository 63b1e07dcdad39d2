package recipes

import "github.com/dhamidi/recast/rewrite"

// Register adds the java recipes to reg.
func Register(reg *rewrite.Registry) {
	reg.Register(ChangeMethodTargetToStaticName, "Change method calls to static calls on another type.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewChangeMethodTargetToStatic(o.String("method"), o.String("target.type"))
		})
	reg.Register(ChangeMethodNameName, "Rename methods.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewChangeMethodName(o.String("method"), o.String("name"))
		})
	reg.Register(FindMethodsName, "Find method calls.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewFindMethods(o.String("method"))
		})
	reg.Register(ImplementInterfaceName, "Add an interface to a class.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewImplementInterface(o.String("type"), o.String("interface"))
		})
	reg.Register(AddImportName, "Add an import.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewAddImport(o.String("type"), o.Bool("static"))
		})
	reg.Register(RemoveImportName, "Remove unused imports of a type.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewRemoveImport(o.String("type"))
		})
}
