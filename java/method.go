package java

import (
	"slices"
	"strings"
)

// ConstructorName is the method name given to constructors.
const ConstructorName = "<constructor>"

// Method describes a method or constructor. Methods are immutable; the With
// methods return modified copies.
type Method struct {
	Declaring  *Class
	Name       string
	Return     Type
	ParamTypes []Type
	ParamNames []string
	Flags      Flag
	Varargs    bool
	// Unresolved is set when no declaration was found and ParamTypes are
	// the argument types of the call.
	Unresolved bool
}

func (m *Method) IsConstructor() bool { return m.Name == ConstructorName }

func (m *Method) DeclaringFQN() string {
	if m.Declaring == nil {
		return ""
	}
	return m.Declaring.FQN
}

func (m *Method) String() string {
	var sb strings.Builder
	sb.WriteString(m.DeclaringFQN())
	sb.WriteByte(' ')
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.ParamTypes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(TypeName(p))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Equal compares declaring type, name and parameter types.
func (m *Method) Equal(o *Method) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.DeclaringFQN() != o.DeclaringFQN() || m.Name != o.Name || len(m.ParamTypes) != len(o.ParamTypes) {
		return false
	}
	return slices.EqualFunc(m.ParamTypes, o.ParamTypes, func(a, b Type) bool {
		return TypeName(a) == TypeName(b)
	})
}

func (m *Method) WithDeclaringType(c *Class) *Method {
	n := *m
	n.Declaring = c
	return &n
}

func (m *Method) WithName(name string) *Method {
	n := *m
	n.Name = name
	return &n
}

func (m *Method) WithFlags(f Flag) *Method {
	n := *m
	n.Flags = f
	return &n
}

func (m *Method) WithReturn(t Type) *Method {
	n := *m
	n.Return = t
	return &n
}

func (m *Method) IsStatic() bool { return m.Flags.Has(Static) }
