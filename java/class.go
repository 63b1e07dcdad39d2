package java

import "strings"

// Class describes a class or interface. Classes are built while a batch is
// attributed and are read-only afterwards.
type Class struct {
	FQN        string
	Package    string
	Kind       ClassKind
	Flags      Flag
	Supertype  *Class
	Interfaces []*Class
	Methods    []*Method
	Fields     []*Variable
	// Declared is false for classes only known by reference.
	Declared bool
	// Binary is set for undeclared classes loaded from compiled code.
	Binary bool

	loaded bool
}

func (c *Class) String() string { return c.FQN }

func (c *Class) SimpleName() string {
	return SimpleName(c.FQN)
}

// SimpleName returns the last segment of a dotted name.
func SimpleName(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// PackageOf returns everything before the last segment of a dotted name.
func PackageOf(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[:i]
	}
	return ""
}

// Supertypes returns the supertype and interfaces of c, transitively,
// nearest first.
func (c *Class) Supertypes() []*Class {
	var out []*Class
	seen := map[*Class]bool{c: true}
	queue := []*Class{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := append([]*Class(nil), cur.Interfaces...)
		if cur.Supertype != nil {
			next = append([]*Class{cur.Supertype}, next...)
		}
		for _, s := range next {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
			queue = append(queue, s)
		}
	}
	return out
}

func (c *Class) IsSubtypeOf(fqn string) bool {
	if c.FQN == fqn {
		return true
	}
	for _, s := range c.Supertypes() {
		if s.FQN == fqn {
			return true
		}
	}
	return false
}

// MethodsNamed returns methods called name declared on c or inherited from
// its supertypes.
func (c *Class) MethodsNamed(name string) []*Method {
	var out []*Method
	for _, cls := range append([]*Class{c}, c.Supertypes()...) {
		for _, m := range cls.Methods {
			if m.Name == name {
				out = append(out, m)
			}
		}
	}
	return out
}

// FindMethod picks the method called name accepting arity arguments,
// preferring the nearest declaration.
func (c *Class) FindMethod(name string, arity int) *Method {
	var varargs *Method
	for _, m := range c.MethodsNamed(name) {
		if len(m.ParamTypes) == arity && !m.Varargs {
			return m
		}
		if m.Varargs && arity >= len(m.ParamTypes)-1 && varargs == nil {
			varargs = m
		}
	}
	return varargs
}

func (c *Class) Constructor(arity int) *Method {
	return c.FindMethod(ConstructorName, arity)
}

func (c *Class) Field(name string) *Variable {
	for _, cls := range append([]*Class{c}, c.Supertypes()...) {
		for _, f := range cls.Fields {
			if f.Name == name {
				return f
			}
		}
	}
	return nil
}

// Variable describes a field, parameter or local variable.
type Variable struct {
	Name  string
	Owner *Class
	Type  Type
	Flags Flag
}
