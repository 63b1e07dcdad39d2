package recipes

import (
	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

const (
	AddImportName    = "java.AddImport"
	RemoveImportName = "java.RemoveImport"
)

// importRecipe exposes the import visitors as recipes.
type importRecipe struct {
	name        string
	description string
	typ         string
	visitor     rewrite.TreeVisitor
}

func NewAddImport(typ string, static bool) rewrite.Recipe {
	return &importRecipe{
		name:        AddImportName,
		description: "Add an import of " + typ + ".",
		typ:         typ,
		visitor:     java.AddImport{Type: typ, Static: static},
	}
}

func NewRemoveImport(typ string) rewrite.Recipe {
	return &importRecipe{
		name:        RemoveImportName,
		description: "Remove unused imports of " + typ + ".",
		typ:         typ,
		visitor:     java.RemoveImport{Type: typ},
	}
}

func (r *importRecipe) Name() string                 { return r.name }
func (r *importRecipe) Description() string          { return r.description }
func (r *importRecipe) Validate() rewrite.Validated  { return rewrite.Required("type", r.typ) }
func (r *importRecipe) Visitor() rewrite.TreeVisitor { return r.visitor }
