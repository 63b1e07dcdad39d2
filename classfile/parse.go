package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// entrySize is the payload size of constant pool entries that are skipped.
var entrySize = map[uint8]int{
	tagInteger:            4,
	tagFloat:              4,
	tagLong:               8,
	tagDouble:             8,
	tagString:             2,
	tagFieldref:           4,
	tagMethodref:          4,
	tagInterfaceMethodref: 4,
	tagNameAndType:        4,
	tagMethodHandle:       3,
	tagMethodType:         2,
	tagDynamic:            4,
	tagInvokeDynamic:      4,
	tagModule:             2,
	tagPackage:            2,
}

// reader keeps the first error; later reads return zero values.
type reader struct {
	r   io.Reader
	err error
}

func (r *reader) u1() uint8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u2() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *reader) u4() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.err = fmt.Errorf("%w: %w", ErrMalformed, err)
		return nil
	}
	return buf
}

func (r *reader) skip(n int64) {
	if r.err != nil {
		return
	}
	if _, err := io.CopyN(io.Discard, r.r, n); err != nil {
		r.err = fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}

// pool keeps the UTF-8 and class entries of a constant pool.
type pool struct {
	utf8    map[uint16]string
	classes map[uint16]uint16
}

func (p *pool) text(i uint16) string { return p.utf8[i] }

func (p *pool) class(i uint16) string {
	if i == 0 {
		return ""
	}
	return SourceName(p.utf8[p.classes[i]])
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cf, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

// Parse reads the declarations of the class file in rd.
func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}
	if m := r.u4(); r.err != nil || m != magic {
		return nil, ErrNotClassFile
	}
	r.u2()
	cf := &ClassFile{MajorVersion: r.u2()}

	cp, err := readPool(r)
	if err != nil {
		return nil, err
	}

	cf.Access = AccessFlags(r.u2())
	this := r.u2()
	cf.Name = cp.class(this)
	if i := strings.LastIndexByte(cp.utf8[cp.classes[this]], '/'); i >= 0 {
		cf.Package = SourceName(cp.utf8[cp.classes[this]][:i])
	}
	cf.Super = cp.class(r.u2())
	n := r.u2()
	for range n {
		cf.Interfaces = append(cf.Interfaces, cp.class(r.u2()))
	}
	cf.Fields = readMembers(r, cp)
	cf.Methods = readMembers(r, cp)
	// Class attributes follow; none of them are needed.
	if r.err != nil {
		return nil, r.err
	}
	if cf.Name == "" {
		return nil, fmt.Errorf("%w: missing class name", ErrMalformed)
	}
	return cf, nil
}

func readPool(r *reader) (*pool, error) {
	cp := &pool{utf8: map[uint16]string{}, classes: map[uint16]uint16{}}
	count := r.u2()
	for i := uint16(1); i < count && r.err == nil; i++ {
		tag := r.u1()
		switch tag {
		case tagUtf8:
			cp.utf8[i] = decodeModifiedUTF8(r.bytes(int(r.u2())))
		case tagClass:
			cp.classes[i] = r.u2()
		default:
			size, ok := entrySize[tag]
			if !ok && r.err == nil {
				return nil, fmt.Errorf("%w: unknown constant pool tag %d at %d", ErrMalformed, tag, i)
			}
			r.skip(int64(size))
			// Long and double entries take two slots.
			if tag == tagLong || tag == tagDouble {
				i++
			}
		}
	}
	return cp, r.err
}

func readMembers(r *reader, cp *pool) []Member {
	n := r.u2()
	members := make([]Member, 0, n)
	for range n {
		m := Member{
			Access:     AccessFlags(r.u2()),
			Name:       cp.text(r.u2()),
			Descriptor: cp.text(r.u2()),
		}
		skipAttributes(r)
		if r.err != nil {
			return nil
		}
		members = append(members, m)
	}
	return members
}

func skipAttributes(r *reader) {
	n := r.u2()
	for range n {
		r.u2()
		r.skip(int64(r.u4()))
	}
}

// decodeModifiedUTF8 decodes the JVM's modified UTF-8, where NUL is two
// bytes and supplementary characters are surrogate pairs.
func decodeModifiedUTF8(b []byte) string {
	runes := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			runes = append(runes, rune(c&0x1F)<<6|rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			i += 3
			if r >= 0xD800 && r <= 0xDBFF && i+2 < len(b) && b[i] == 0xED {
				low := rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					r = 0x10000 + (r-0xD800)<<10 + (low - 0xDC00)
					i += 3
				}
			}
			runes = append(runes, r)
		default:
			runes = append(runes, rune(c))
			i++
		}
	}
	return string(runes)
}
