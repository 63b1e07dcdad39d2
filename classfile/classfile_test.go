package classfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/classfile"
	"github.com/dhamidi/recast/classfile/classfiletest"
)

func testClass() *classfile.ClassFile {
	return &classfile.ClassFile{
		MajorVersion: 65,
		Access:       classfile.AccPublic,
		Name:         "demo.Greeter$Inner",
		Super:        "java.lang.Object",
		Interfaces:   []string{"java.lang.Runnable", "java.io.Serializable"},
		Fields: []classfile.Member{
			{Access: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal, Name: "CONSTANT", Descriptor: "I"},
			{Access: classfile.AccPrivate, Name: "name", Descriptor: "Ljava/lang/String;"},
		},
		Methods: []classfile.Member{
			{Access: classfile.AccPublic, Name: "<init>", Descriptor: "()V"},
			{Access: classfile.AccPublic, Name: "greet", Descriptor: "(Ljava/lang/String;[I)Ljava/lang/String;"},
			{Access: classfile.AccPrivate | classfile.AccStatic, Name: "helper", Descriptor: "(II)I"},
			{Access: classfile.AccPublic, Name: "run", Descriptor: "()V"},
		},
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	cf, err := classfile.Parse(bytes.NewReader(classfiletest.Bytes(testClass())))
	require.NoError(t, err)

	assert.Equal(t, uint16(65), cf.MajorVersion)
	assert.Equal(t, "demo.Greeter.Inner", cf.Name)
	assert.Equal(t, "demo", cf.Package)
	assert.Equal(t, "java.lang.Object", cf.Super)
	assert.Equal(t, []string{"java.lang.Runnable", "java.io.Serializable"}, cf.Interfaces)
	assert.False(t, cf.IsInterface())
	assert.False(t, cf.Anonymous())

	constant, ok := cf.Field("CONSTANT")
	require.True(t, ok)
	assert.True(t, constant.Access.Has(classfile.AccStatic|classfile.AccFinal))
	assert.Equal(t, "I", constant.Descriptor)

	require.Len(t, cf.Methods, 4)
	helper, ok := cf.Method("helper", "(II)I")
	require.True(t, ok)
	assert.True(t, helper.Access.Has(classfile.AccPrivate|classfile.AccStatic))
	_, ok = cf.Method("helper", "()V")
	assert.False(t, ok)
	_, ok = cf.Method("run", "")
	assert.True(t, ok)
}

func TestParseFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Greeter.class")
	require.NoError(t, os.WriteFile(path, classfiletest.Bytes(testClass()), 0o644))

	cf, err := classfile.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo.Greeter.Inner", cf.Name)
}

func TestParseRejectsBadInput(t *testing.T) {
	t.Parallel()
	_, err := classfile.Parse(bytes.NewReader([]byte("PK\x03\x04")))
	assert.ErrorIs(t, err, classfile.ErrNotClassFile)

	data := classfiletest.Bytes(testClass())
	_, err = classfile.Parse(bytes.NewReader(data[:len(data)/2]))
	assert.ErrorIs(t, err, classfile.ErrMalformed)

	bad := append([]byte(nil), data...)
	bad[10] = 99
	_, err = classfile.Parse(bytes.NewReader(bad))
	assert.ErrorIs(t, err, classfile.ErrMalformed)
}

func TestAnonymous(t *testing.T) {
	t.Parallel()
	for name, want := range map[string]bool{
		"demo.Greeter":        false,
		"demo.Greeter.Inner":  false,
		"demo.Greeter.1":      true,
		"demo.Greeter.1Local": true,
		"Greeter":             false,
	} {
		cf := &classfile.ClassFile{Name: name}
		assert.Equal(t, want, cf.Anonymous(), name)
	}
}

func TestFieldType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		desc string
		want string
	}{
		{"I", "int"},
		{"Z", "boolean"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[I", "int[]"},
		{"[[D", "double[][]"},
		{"[Ljava/util/Map$Entry;", "java.util.Map.Entry[]"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := classfile.FieldType(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "X", "Ljava/lang/String", "[", "II", "L;"} {
		_, err := classfile.FieldType(bad)
		assert.ErrorIs(t, err, classfile.ErrMalformed, bad)
	}
}

func TestMethodType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		desc   string
		params []string
		ret    string
	}{
		{"()V", nil, "void"},
		{"()I", nil, "int"},
		{"(II)I", []string{"int", "int"}, "int"},
		{"(IDLjava/lang/Thread;)Ljava/lang/Object;", []string{"int", "double", "java.lang.Thread"}, "java.lang.Object"},
		{"([Ljava/lang/String;)V", []string{"java.lang.String[]"}, "void"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			params, ret, err := classfile.MethodType(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.params, params)
			assert.Equal(t, tt.ret, ret)
		})
	}

	for _, bad := range []string{"", "V", "(I", "(I)", "(Q)V", "()VV"} {
		_, _, err := classfile.MethodType(bad)
		assert.ErrorIs(t, err, classfile.ErrMalformed, bad)
	}
}
