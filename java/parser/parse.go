package parser

import (
	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

// Source is the text of one compilation unit.
type Source struct {
	Path string
	Text string
}

// Unit is the outcome of parsing one Source. Exactly one of CU and Err is
// set.
type Unit struct {
	Path string
	CU   *java.CompilationUnit
	Err  error
}

// Rewrite converts u into a pipeline unit.
func (u Unit) Rewrite() rewrite.Unit {
	ru := rewrite.Unit{Path: u.Path, Err: u.Err}
	if u.CU != nil {
		ru.Source = u.CU
	}
	return ru
}

// Parse parses a batch of sources and attributes the ones that parsed
// against a shared symbol table. A unit that fails to parse does not stop
// the others.
func Parse(sources ...Source) []Unit {
	return ParseWith(nil, sources...)
}

// ParseWith is Parse with classes the batch does not declare loaded from
// classes. A nil source leaves them as shells.
func ParseWith(classes java.ClassSource, sources ...Source) []Unit {
	units := make([]Unit, len(sources))
	var cus []*java.CompilationUnit
	for i, src := range sources {
		cu, err := ParseCompilationUnit(src.Path, src.Text)
		units[i] = Unit{Path: src.Path, CU: cu, Err: err}
		if err != nil {
			log.Warning("parse failed", "path", src.Path, "error", err.Error())
			continue
		}
		cus = append(cus, cu)
	}
	AttributeWith(java.NewTableFrom(classes), cus)
	return units
}

// Units converts parsed units into pipeline units.
func Units(units []Unit) []rewrite.Unit {
	out := make([]rewrite.Unit, len(units))
	for i, u := range units {
		out[i] = u.Rewrite()
	}
	return out
}
