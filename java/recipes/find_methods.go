package recipes

import (
	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/rewrite"
)

const FindMethodsName = "java.FindMethods"

// FindMethods marks invocations and constructor calls matching a method
// pattern with a search result.
type FindMethods struct {
	method     string
	pattern    *java.MethodPattern
	patternErr error
}

func NewFindMethods(method string) *FindMethods {
	r := &FindMethods{method: method}
	r.pattern, r.patternErr = java.CompileMethodPattern(method)
	return r
}

func (r *FindMethods) Name() string { return FindMethodsName }

func (r *FindMethods) Description() string { return "Find calls matching " + r.method + "." }

func (r *FindMethods) Validate() rewrite.Validated {
	return rewrite.Compiled("method", r.method, r.patternErr)
}

func (r *FindMethods) Visitor() rewrite.TreeVisitor {
	return java.Adapt(func() java.Visitor { return &findMethodsVisitor{pattern: r.pattern} })
}

type findMethodsVisitor struct {
	java.DefaultVisitor
	pattern *java.MethodPattern
}

func mark[T java.J](c *java.Cursor, n T) java.J {
	markers, added := n.Markers().AddSearchResult("")
	c.Context().Found(n.ID())
	if !added {
		return n
	}
	return java.WithMarkers(n, markers)
}

func (v *findMethodsVisitor) VisitMethodInvocation(c *java.Cursor, n *java.MethodInvocation) java.J {
	if v.pattern.Matches(n, tableOf(c)) {
		return mark(c, n)
	}
	return n
}

func (v *findMethodsVisitor) VisitNewClass(c *java.Cursor, n *java.NewClass) java.J {
	if v.pattern.Matches(n, tableOf(c)) {
		return mark(c, n)
	}
	return n
}
