package java

import (
	"strings"
)

// Type is an attributed type descriptor. Nodes whose type could not be
// resolved carry nil or an *UnknownType.
type Type interface {
	String() string
	isType()
}

type Primitive string

const (
	Boolean Primitive = "boolean"
	Byte    Primitive = "byte"
	Char    Primitive = "char"
	Short   Primitive = "short"
	Int     Primitive = "int"
	Long    Primitive = "long"
	Float   Primitive = "float"
	Double  Primitive = "double"
	Void    Primitive = "void"
	Null    Primitive = "null"
)

func (p Primitive) String() string { return string(p) }

func IsPrimitiveKeyword(name string) bool {
	switch Primitive(name) {
	case Boolean, Byte, Char, Short, Int, Long, Float, Double, Void:
		return true
	}
	return false
}

type Array struct {
	Elem Type
}

func (a *Array) String() string {
	if a.Elem == nil {
		return "?[]"
	}
	return a.Elem.String() + "[]"
}

// UnknownType stands for a type the attributor could not resolve.
type UnknownType struct {
	Name string
}

func (u *UnknownType) String() string {
	if u.Name == "" {
		return "<unknown>"
	}
	return u.Name
}

func (Primitive) isType()    {}
func (*Array) isType()       {}
func (*UnknownType) isType() {}
func (*Class) isType()       {}
func (*Method) isType()      {}

// TypeName renders t the way method patterns spell parameter types.
func TypeName(t Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}

// Flag is a set of declaration modifiers.
type Flag uint32

const (
	Public Flag = 1 << iota
	Protected
	Private
	Static
	Final
	Abstract
	Synchronized
	Native
	Default
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Static, "static"},
	{Final, "final"},
	{Synchronized, "synchronized"},
	{Native, "native"},
	{Default, "default"},
}

func (f Flag) Has(g Flag) bool {
	return f&g == g
}

func (f Flag) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, " ")
}

// FlagOf returns the flag for a modifier keyword.
func FlagOf(keyword string) (Flag, bool) {
	for _, fn := range flagNames {
		if fn.name == keyword {
			return fn.flag, true
		}
	}
	return 0, false
}

var javaLang = map[string]bool{
	"AutoCloseable":                 true,
	"Boolean":                       true,
	"Byte":                          true,
	"CharSequence":                  true,
	"Character":                     true,
	"Class":                         true,
	"Cloneable":                     true,
	"Comparable":                    true,
	"Deprecated":                    true,
	"Double":                        true,
	"Enum":                          true,
	"Error":                         true,
	"Exception":                     true,
	"Float":                         true,
	"FunctionalInterface":           true,
	"IllegalArgumentException":      true,
	"IllegalStateException":         true,
	"IndexOutOfBoundsException":     true,
	"Integer":                       true,
	"Iterable":                      true,
	"Long":                          true,
	"Math":                          true,
	"NullPointerException":          true,
	"Number":                        true,
	"Object":                        true,
	"Override":                      true,
	"Record":                        true,
	"Runnable":                      true,
	"RuntimeException":              true,
	"Short":                         true,
	"String":                        true,
	"StringBuilder":                 true,
	"SuppressWarnings":              true,
	"System":                        true,
	"Thread":                        true,
	"Throwable":                     true,
	"UnsupportedOperationException": true,
	"Void":                          true,
}

// JavaLang reports whether simple names a well-known java.lang type.
func JavaLang(simple string) bool {
	return javaLang[simple]
}
