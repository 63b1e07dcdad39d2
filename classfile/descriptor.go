package classfile

import (
	"fmt"
	"strings"
)

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// FieldType converts a field descriptor such as [Ljava/lang/String; to the
// source spelling java.lang.String[].
func FieldType(desc string) (string, error) {
	t, n, err := fieldType(desc, 0)
	if err != nil {
		return "", err
	}
	if n != len(desc) {
		return "", descriptorError(desc, n)
	}
	return t, nil
}

// MethodType converts a method descriptor into parameter and return types
// in source spelling. Void methods return "void".
func MethodType(desc string) (params []string, ret string, err error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, "", descriptorError(desc, 0)
	}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		t, n, err := fieldType(desc, i)
		if err != nil {
			return nil, "", err
		}
		params = append(params, t)
		i = n
	}
	if i >= len(desc) {
		return nil, "", descriptorError(desc, i)
	}
	i++
	if desc[i:] == "V" {
		return params, "void", nil
	}
	ret, err = FieldType(desc[i:])
	if err != nil {
		return nil, "", descriptorError(desc, i)
	}
	return params, ret, nil
}

// fieldType parses the type starting at desc[i] and returns the index after
// it.
func fieldType(desc string, i int) (string, int, error) {
	dims := 0
	for i < len(desc) && desc[i] == '[' {
		dims++
		i++
	}
	if i >= len(desc) {
		return "", i, descriptorError(desc, i)
	}
	var t string
	if base, ok := baseTypes[desc[i]]; ok {
		t = base
		i++
	} else if desc[i] == 'L' {
		end := strings.IndexByte(desc[i:], ';')
		if end < 2 {
			return "", i, descriptorError(desc, i)
		}
		t = SourceName(desc[i+1 : i+end])
		i += end + 1
	} else {
		return "", i, descriptorError(desc, i)
	}
	return t + strings.Repeat("[]", dims), i, nil
}

func descriptorError(desc string, at int) error {
	return fmt.Errorf("%w: bad descriptor %q at %d", ErrMalformed, desc, at)
}
