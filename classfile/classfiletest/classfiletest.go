// Package classfiletest assembles class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"

	"github.com/dhamidi/recast/classfile"
)

type builder struct {
	pool  bytes.Buffer
	count uint16
	utf8  map[string]uint16
	class map[string]uint16
}

func (b *builder) u1(w *bytes.Buffer, v uint8)  { w.WriteByte(v) }
func (b *builder) u2(w *bytes.Buffer, v uint16) { _ = binary.Write(w, binary.BigEndian, v) }
func (b *builder) u4(w *bytes.Buffer, v uint32) { _ = binary.Write(w, binary.BigEndian, v) }

func (b *builder) text(s string) uint16 {
	if i, ok := b.utf8[s]; ok {
		return i
	}
	b.u1(&b.pool, 1)
	b.u2(&b.pool, uint16(len(s)))
	b.pool.WriteString(s)
	b.count++
	b.utf8[s] = b.count
	return b.count
}

func (b *builder) classRef(name string) uint16 {
	if name == "" {
		return 0
	}
	internal := classfile.InternalName(name)
	if i, ok := b.class[internal]; ok {
		return i
	}
	n := b.text(internal)
	b.u1(&b.pool, 7)
	b.u2(&b.pool, n)
	b.count++
	b.class[internal] = b.count
	return b.count
}

// Bytes encodes the declarations of cf. Names are written as given, with
// dots turned into slashes, so nested classes need a '$' in Name. Every
// member gets a Code attribute and the pool carries a long constant, so
// readers have to skip both.
func Bytes(cf *classfile.ClassFile) []byte {
	b := &builder{utf8: map[string]uint16{}, class: map[string]uint16{}}

	b.u1(&b.pool, 5)
	b.u4(&b.pool, 0)
	b.u4(&b.pool, 42)
	b.count += 2

	var body bytes.Buffer
	b.u2(&body, uint16(cf.Access))
	b.u2(&body, b.classRef(cf.Name))
	b.u2(&body, b.classRef(cf.Super))
	b.u2(&body, uint16(len(cf.Interfaces)))
	for _, i := range cf.Interfaces {
		b.u2(&body, b.classRef(i))
	}
	code := b.text("Code")
	for _, members := range [][]classfile.Member{cf.Fields, cf.Methods} {
		b.u2(&body, uint16(len(members)))
		for _, m := range members {
			b.u2(&body, uint16(m.Access))
			b.u2(&body, b.text(m.Name))
			b.u2(&body, b.text(m.Descriptor))
			b.u2(&body, 1)
			b.u2(&body, code)
			b.u4(&body, 3)
			body.Write([]byte{0xB1, 0x00, 0x00})
		}
	}
	b.u2(&body, 1)
	b.u2(&body, b.text("SourceFile"))
	b.u4(&body, 2)
	b.u2(&body, b.text("Generated.java"))

	var out bytes.Buffer
	b.u4(&out, 0xCAFEBABE)
	b.u2(&out, 0)
	major := cf.MajorVersion
	if major == 0 {
		major = 61
	}
	b.u2(&out, major)
	b.u2(&out, b.count+1)
	out.Write(b.pool.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}
