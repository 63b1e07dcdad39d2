// Package classfile reads the declarations of compiled Java classes: names,
// supertypes, access flags and member descriptors. Code and other attributes
// are skipped.
package classfile

import (
	"errors"
	"strings"
)

const magic = 0xCAFEBABE

var (
	ErrNotClassFile = errors.New("not a class file")
	ErrMalformed    = errors.New("malformed class file")
)

type AccessFlags uint16

const (
	AccPublic     AccessFlags = 0x0001
	AccPrivate    AccessFlags = 0x0002
	AccProtected  AccessFlags = 0x0004
	AccStatic     AccessFlags = 0x0008
	AccFinal      AccessFlags = 0x0010
	AccVarargs    AccessFlags = 0x0080
	AccNative     AccessFlags = 0x0100
	AccInterface  AccessFlags = 0x0200
	AccAbstract   AccessFlags = 0x0400
	AccSynthetic  AccessFlags = 0x1000
	AccAnnotation AccessFlags = 0x2000
	AccEnum       AccessFlags = 0x4000
	AccModule     AccessFlags = 0x8000

	// AccSynchronized shares its bit with ACC_SUPER on classes.
	AccSynchronized AccessFlags = 0x0020
	// AccBridge shares its bit with ACC_VOLATILE on fields.
	AccBridge AccessFlags = 0x0040
)

func (f AccessFlags) Has(g AccessFlags) bool { return f&g == g }

// ClassFile holds the declarations of one class. Class names use dots, with
// nested classes separated by '.' as in source.
type ClassFile struct {
	MajorVersion uint16
	Access       AccessFlags
	Name         string
	Package      string
	Super        string
	Interfaces   []string
	Fields       []Member
	Methods      []Member
}

// Member is a field or method.
type Member struct {
	Access     AccessFlags
	Name       string
	Descriptor string
}

func (cf *ClassFile) IsInterface() bool {
	return cf.Access.Has(AccInterface) && !cf.Access.Has(AccAnnotation)
}

// Anonymous reports whether the class is a local or anonymous class, whose
// binary name has a numeric segment.
func (cf *ClassFile) Anonymous() bool {
	i := strings.LastIndexByte(cf.Name, '.')
	rest := cf.Name[i+1:]
	return rest == "" || rest[0] >= '0' && rest[0] <= '9'
}

func (cf *ClassFile) Method(name, descriptor string) (Member, bool) {
	for _, m := range cf.Methods {
		if m.Name == name && (descriptor == "" || m.Descriptor == descriptor) {
			return m, true
		}
	}
	return Member{}, false
}

func (cf *ClassFile) Field(name string) (Member, bool) {
	for _, f := range cf.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Member{}, false
}

// SourceName converts an internal name such as java/util/Map$Entry to
// java.util.Map.Entry.
func SourceName(internal string) string {
	return strings.NewReplacer("/", ".", "$", ".").Replace(internal)
}

// InternalName converts a dotted name to the path of its class file entry,
// without the .class suffix. Nested classes cannot be told apart from
// packages by name alone, so the result names a top-level class.
func InternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
