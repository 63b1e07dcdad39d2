// Package classpath loads compiled classes from jar files and class
// directories so that calls into libraries can be attributed.
package classpath

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/recast/classfile"
	"github.com/dhamidi/recast/java"
)

var log = commonlog.GetLogger("recast.classpath")

// Classpath reads classes from its entries in order; the first entry that
// has a class wins. It is safe for concurrent use.
type Classpath struct {
	entries []entry

	mu    sync.Mutex
	cache map[string]*java.BinaryClass
}

type entry interface {
	open(name string) (io.ReadCloser, bool)
	io.Closer
}

// Open opens jar files and class directories. Paths may also be joined with
// the OS list separator, as in a Java classpath.
func Open(paths ...string) (*Classpath, error) {
	cp := &Classpath{cache: make(map[string]*java.BinaryClass)}
	for _, p := range Split(paths...) {
		e, err := openEntry(p)
		if err != nil {
			cp.Close()
			return nil, err
		}
		cp.entries = append(cp.entries, e)
	}
	log.Debugf("opened %d classpath entries", len(cp.entries))
	return cp, nil
}

// Split splits each path on the OS list separator and drops empty parts.
func Split(paths ...string) []string {
	var out []string
	for _, p := range paths {
		for _, part := range filepath.SplitList(p) {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func openEntry(path string) (entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("classpath: %w", err)
	}
	if info.IsDir() {
		return dirEntry(path), nil
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("classpath: %s: %w", path, err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, ".class") {
			files[f.Name] = f
		}
	}
	return &jarEntry{zr: zr, files: files}, nil
}

func (cp *Classpath) Close() error {
	var errs []error
	for _, e := range cp.entries {
		errs = append(errs, e.Close())
	}
	return errors.Join(errs...)
}

// BinaryClass loads the class named fqn. Nested classes are named with dots,
// as in java.util.Map.Entry. Results, including misses, are cached.
func (cp *Classpath) BinaryClass(fqn string) (*java.BinaryClass, bool) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	if b, ok := cp.cache[fqn]; ok {
		return b, b != nil
	}
	b := cp.load(fqn)
	cp.cache[fqn] = b
	return b, b != nil
}

func (cp *Classpath) load(fqn string) *java.BinaryClass {
	for _, name := range candidates(fqn) {
		for _, e := range cp.entries {
			rc, ok := e.open(name)
			if !ok {
				continue
			}
			cf, err := classfile.Parse(rc)
			rc.Close()
			if err != nil {
				log.Warningf("%s: %s", name, err)
				return nil
			}
			if cf.Anonymous() {
				return nil
			}
			return binaryClass(cf)
		}
	}
	return nil
}

// candidates lists the class file entries that may hold fqn, from a
// top-level class to the most deeply nested reading of the name.
func candidates(fqn string) []string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for nested := 0; nested < len(parts); nested++ {
		split := len(parts) - nested
		name := strings.Join(parts[:split], "/")
		if nested > 0 {
			name += "$" + strings.Join(parts[split:], "$")
		}
		out = append(out, name+".class")
	}
	return out
}

func binaryClass(cf *classfile.ClassFile) *java.BinaryClass {
	b := &java.BinaryClass{
		FQN:        cf.Name,
		Package:    cf.Package,
		Kind:       kind(cf.Access),
		Flags:      flags(cf.Access),
		Super:      cf.Super,
		Interfaces: cf.Interfaces,
	}
	for _, f := range cf.Fields {
		if f.Access.Has(classfile.AccSynthetic) {
			continue
		}
		t, err := classfile.FieldType(f.Descriptor)
		if err != nil {
			log.Warningf("%s.%s: %s", cf.Name, f.Name, err)
			continue
		}
		b.Fields = append(b.Fields, java.BinaryField{Name: f.Name, Type: t, Flags: flags(f.Access)})
	}
	for _, m := range cf.Methods {
		if m.Access.Has(classfile.AccSynthetic) || m.Access.Has(classfile.AccBridge) || m.Name == "<clinit>" {
			continue
		}
		params, ret, err := classfile.MethodType(m.Descriptor)
		if err != nil {
			log.Warningf("%s.%s: %s", cf.Name, m.Name, err)
			continue
		}
		name := m.Name
		if name == "<init>" {
			name = java.ConstructorName
			ret = cf.Name
		}
		b.Methods = append(b.Methods, java.BinaryMethod{
			Name:    name,
			Params:  params,
			Return:  ret,
			Flags:   methodFlags(m.Access, cf.Access),
			Varargs: m.Access.Has(classfile.AccVarargs),
		})
	}
	return b
}

func kind(acc classfile.AccessFlags) java.ClassKind {
	switch {
	case acc.Has(classfile.AccAnnotation):
		return java.ClassKindAnnotation
	case acc.Has(classfile.AccEnum):
		return java.ClassKindEnum
	case acc.Has(classfile.AccInterface):
		return java.ClassKindInterface
	}
	return java.ClassKindClass
}

var flagBits = []struct {
	acc  classfile.AccessFlags
	flag java.Flag
}{
	{classfile.AccPublic, java.Public},
	{classfile.AccProtected, java.Protected},
	{classfile.AccPrivate, java.Private},
	{classfile.AccStatic, java.Static},
	{classfile.AccFinal, java.Final},
	{classfile.AccAbstract, java.Abstract},
}

func flags(acc classfile.AccessFlags) java.Flag {
	var f java.Flag
	for _, b := range flagBits {
		if acc.Has(b.acc) {
			f |= b.flag
		}
	}
	return f
}

// methodFlags adds the bits whose meaning depends on the member kind.
// Non-abstract instance methods of interfaces are default methods.
func methodFlags(acc, owner classfile.AccessFlags) java.Flag {
	f := flags(acc)
	if acc.Has(classfile.AccSynchronized) {
		f |= java.Synchronized
	}
	if acc.Has(classfile.AccNative) {
		f |= java.Native
	}
	if owner.Has(classfile.AccInterface) && !acc.Has(classfile.AccAbstract) && !acc.Has(classfile.AccStatic) && !acc.Has(classfile.AccPrivate) {
		f |= java.Default
	}
	return f
}

type dirEntry string

func (d dirEntry) open(name string) (io.ReadCloser, bool) {
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		return nil, false
	}
	return f, true
}

func (dirEntry) Close() error { return nil }

type jarEntry struct {
	zr    *zip.ReadCloser
	files map[string]*zip.File
}

func (j *jarEntry) open(name string) (io.ReadCloser, bool) {
	f, ok := j.files[name]
	if !ok {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		log.Warningf("%s: %s", name, err)
		return nil, false
	}
	return rc, true
}

func (j *jarEntry) Close() error { return j.zr.Close() }
