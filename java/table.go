package java

import (
	"slices"
	"strings"
	"sync"
)

// Table indexes the classes of one parsed batch. Classes referenced but not
// declared in the batch are recorded as undeclared shells, filled in from
// the table's ClassSource while the batch is attributed.
type Table struct {
	mu      sync.RWMutex
	classes map[string]*Class
	source  ClassSource
	sealed  bool
}

// ClassSource supplies classes from compiled code.
type ClassSource interface {
	BinaryClass(fqn string) (*BinaryClass, bool)
}

// BinaryClass describes a compiled class. Type names use source spelling,
// as in java.lang.String[].
type BinaryClass struct {
	FQN        string
	Package    string
	Kind       ClassKind
	Flags      Flag
	Super      string
	Interfaces []string
	Fields     []BinaryField
	Methods    []BinaryMethod
}

type BinaryField struct {
	Name  string
	Type  string
	Flags Flag
}

type BinaryMethod struct {
	Name    string
	Params  []string
	Return  string
	Flags   Flag
	Varargs bool
}

func NewTable() *Table {
	return NewTableFrom(nil)
}

// NewTableFrom returns a table that loads undeclared classes from src until
// it is sealed.
func NewTableFrom(src ClassSource) *Table {
	return &Table{classes: make(map[string]*Class), source: src}
}

func (t *Table) Class(fqn string) (*Class, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.classes[fqn]
	return c, ok
}

// Declared reports whether fqn names a class declared in the batch.
func (t *Table) Declared(fqn string) bool {
	c, ok := t.Class(fqn)
	return ok && c.Declared
}

// Known reports whether fqn is declared in the batch or can be loaded from
// the table's source.
func (t *Table) Known(fqn string) bool {
	t.mu.RLock()
	c, ok := t.classes[fqn]
	src, sealed := t.source, t.sealed
	t.mu.RUnlock()
	switch {
	case ok && (c.Declared || c.Binary):
		return true
	case ok && c.loaded, src == nil, sealed:
		return false
	}
	_, found := src.BinaryClass(fqn)
	return found
}

// Lookup returns the class for fqn, creating an undeclared shell when the
// batch does not declare it.
func (t *Table) Lookup(fqn string) *Class {
	t.mu.RLock()
	c, ok := t.classes[fqn]
	done := ok && !t.loadable(c)
	t.mu.RUnlock()
	if done {
		return c
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookupLocked(fqn)
}

// Declare marks fqn as declared in the batch and returns its class. A shell
// created by an earlier Lookup is reused so references to it stay valid;
// members loaded from compiled code are dropped.
func (t *Table) Declare(fqn string) *Class {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.shellLocked(fqn)
	if c.Binary {
		*c = Class{FQN: fqn, Package: PackageOf(fqn), Kind: ClassKindClass}
	}
	c.Declared = true
	return c
}

// Seal stops loading classes from the table's source. Parsing seals the
// table once attribution is done, after which the table is only read.
func (t *Table) Seal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sealed = true
}

func (t *Table) loadable(c *Class) bool {
	return t.source != nil && !t.sealed && !c.loaded && !c.Declared
}

func (t *Table) shellLocked(fqn string) *Class {
	if c, ok := t.classes[fqn]; ok {
		return c
	}
	c := &Class{FQN: fqn, Package: PackageOf(fqn), Kind: ClassKindClass}
	t.classes[fqn] = c
	return c
}

// lookupLocked loads c with its supertypes. Types in member signatures stay
// shells until they are looked up themselves.
func (t *Table) lookupLocked(fqn string) *Class {
	c := t.shellLocked(fqn)
	if !t.loadable(c) {
		return c
	}
	c.loaded = true
	b, ok := t.source.BinaryClass(fqn)
	if !ok {
		return c
	}
	c.Binary = true
	c.Kind = b.Kind
	c.Flags = b.Flags
	if b.Package != "" {
		c.Package = b.Package
	}
	if b.Super != "" {
		c.Supertype = t.lookupLocked(b.Super)
	}
	for _, i := range b.Interfaces {
		c.Interfaces = append(c.Interfaces, t.lookupLocked(i))
	}
	for _, f := range b.Fields {
		c.Fields = append(c.Fields, &Variable{Name: f.Name, Owner: c, Type: t.typeLocked(f.Type), Flags: f.Flags})
	}
	for _, m := range b.Methods {
		params := make([]Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = t.typeLocked(p)
		}
		c.Methods = append(c.Methods, &Method{
			Declaring:  c,
			Name:       m.Name,
			Return:     t.typeLocked(m.Return),
			ParamTypes: params,
			Flags:      m.Flags,
			Varargs:    m.Varargs,
		})
	}
	return c
}

func (t *Table) typeLocked(name string) Type {
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		return &Array{Elem: t.typeLocked(elem)}
	}
	if IsPrimitiveKeyword(name) {
		return Primitive(name)
	}
	return t.shellLocked(name)
}

func (t *Table) Classes() []*Class {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Class, 0, len(t.classes))
	for _, c := range t.classes {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Class) int {
		return strings.Compare(a.FQN, b.FQN)
	})
	return out
}

// InPackage returns the declared classes of pkg.
func (t *Table) InPackage(pkg string) []*Class {
	var out []*Class
	for _, c := range t.Classes() {
		if c.Declared && c.Package == pkg {
			out = append(out, c)
		}
	}
	return out
}
