package rewrite

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeVisitor transforms one source file. Visitors written for one dialect
// return files of other dialects unchanged.
type TreeVisitor interface {
	Visit(file SourceFile, ctx *Context) (SourceFile, error)
}

type VisitorFunc func(file SourceFile, ctx *Context) (SourceFile, error)

func (f VisitorFunc) Visit(file SourceFile, ctx *Context) (SourceFile, error) {
	return f(file, ctx)
}

// Keyed is implemented by follow-up visitors that are equivalent to any other
// follow-up with the same key. Only the first one scheduled runs.
type Keyed interface {
	Key() string
}

// Recipe is a named, validated, configured transformation or search.
type Recipe interface {
	Name() string
	Description() string
	Validate() Validated
	Visitor() TreeVisitor
}

// Options is the untyped configuration a recipe is built from.
// Keys are matched exactly first and then ignoring case, since
// configuration loaders may lower-case them.
type Options map[string]any

func (o Options) lookup(key string) (any, bool) {
	if v, ok := o[key]; ok {
		return v, true
	}
	for k, v := range o {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func (o Options) String(key string) string {
	v, ok := o.lookup(key)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

func (o Options) Bool(key string) bool {
	v, _ := o.lookup(key)
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func (o Options) Has(key string) bool {
	v, ok := o.lookup(key)
	return ok && v != nil
}

// Composite runs its children in order as if each had been listed separately.
type Composite struct {
	name        string
	description string
	recipes     []Recipe
}

func NewComposite(name, description string, recipes ...Recipe) *Composite {
	return &Composite{name: name, description: description, recipes: recipes}
}

func (c *Composite) Name() string        { return c.name }
func (c *Composite) Description() string { return c.description }
func (c *Composite) Recipes() []Recipe   { return append([]Recipe(nil), c.recipes...) }

func (c *Composite) Validate() Validated {
	v := Valid()
	for _, r := range c.recipes {
		v = v.And(r.Validate().Prefixed(r.Name()))
	}
	return v
}

func (c *Composite) Visitor() TreeVisitor {
	return VisitorFunc(func(file SourceFile, ctx *Context) (SourceFile, error) {
		for _, r := range c.recipes {
			if !r.Validate().IsValid() {
				continue
			}
			var err error
			file, err = r.Visitor().Visit(file, ctx)
			if err != nil {
				return file, err
			}
			if file, err = ctx.drain(file); err != nil {
				return file, err
			}
		}
		return file, nil
	})
}

// Flatten expands composites depth first.
func Flatten(recipes ...Recipe) []Recipe {
	var out []Recipe
	for _, r := range recipes {
		if c, ok := r.(*Composite); ok {
			out = append(out, Flatten(c.recipes...)...)
			continue
		}
		out = append(out, r)
	}
	return out
}
