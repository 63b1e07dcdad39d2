// Package format renders attributed classes as JSON.
package format

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/dhamidi/recast/java"
)

type ClassJSONEncoder struct {
	w io.Writer
}

func NewClassJSONEncoder(w io.Writer) *ClassJSONEncoder {
	return &ClassJSONEncoder{w: w}
}

func (e *ClassJSONEncoder) Encode(classes ...*java.Class) error {
	text, err := MarshalClasses(classes...)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

// MarshalClasses renders a single class as an object and several as an
// array.
func MarshalClasses(classes ...*java.Class) ([]byte, error) {
	data := make([]jsonClass, len(classes))
	for i, c := range classes {
		data[i] = buildClass(c)
	}
	if len(data) == 1 {
		return json.MarshalIndent(data[0], "", "  ")
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name       string       `json:"name"`
	SimpleName string       `json:"simpleName"`
	Package    string       `json:"package"`
	Kind       string       `json:"kind"`
	Origin     string       `json:"origin"`
	SuperClass string       `json:"superClass,omitempty"`
	Interfaces []string     `json:"interfaces,omitempty"`
	Modifiers  []string     `json:"modifiers,omitempty"`
	Fields     []jsonField  `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
}

type jsonField struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Modifiers []string `json:"modifiers,omitempty"`
}

type jsonMethod struct {
	Name       string          `json:"name"`
	ReturnType string          `json:"returnType,omitempty"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Signature  string          `json:"signature"`
}

type jsonParameter struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

func buildClass(c *java.Class) jsonClass {
	data := jsonClass{
		Name:       c.FQN,
		SimpleName: c.SimpleName(),
		Package:    c.Package,
		Kind:       string(c.Kind),
		Origin:     origin(c),
		Modifiers:  modifiers(c.Flags),
	}
	if c.Supertype != nil {
		data.SuperClass = c.Supertype.FQN
	}
	for _, i := range c.Interfaces {
		data.Interfaces = append(data.Interfaces, i.FQN)
	}
	for _, f := range c.Fields {
		data.Fields = append(data.Fields, jsonField{
			Name:      f.Name,
			Type:      java.TypeName(f.Type),
			Modifiers: modifiers(f.Flags),
		})
	}
	for _, m := range c.Methods {
		data.Methods = append(data.Methods, buildMethod(m))
	}
	return data
}

func buildMethod(m *java.Method) jsonMethod {
	jm := jsonMethod{
		Name:      m.Name,
		Modifiers: modifiers(m.Flags),
		Signature: m.String(),
	}
	if !m.IsConstructor() {
		jm.ReturnType = java.TypeName(m.Return)
	}
	if m.Varargs {
		jm.Modifiers = append(jm.Modifiers, "varargs")
	}
	for i, p := range m.ParamTypes {
		param := jsonParameter{Type: java.TypeName(p)}
		if i < len(m.ParamNames) {
			param.Name = m.ParamNames[i]
		}
		jm.Parameters = append(jm.Parameters, param)
	}
	return jm
}

func origin(c *java.Class) string {
	switch {
	case c.Declared:
		return "source"
	case c.Binary:
		return "classpath"
	default:
		return "unknown"
	}
}

func modifiers(f java.Flag) []string {
	if f == 0 {
		return nil
	}
	return strings.Fields(f.String())
}
