package rewrite

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrParse         = errors.New("parse error")
	ErrPatternSyntax = errors.New("pattern syntax error")
	ErrValidation    = errors.New("validation failed")
	ErrAmbiguous     = errors.New("ambiguous match")
	ErrInternal      = errors.New("internal error")
	ErrUnknownRecipe = errors.New("unknown recipe")
)

// ParseError reports source text that could not be parsed. The unit it
// belongs to is excluded from the run.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// PatternSyntaxError reports a malformed method pattern or element path.
type PatternSyntaxError struct {
	Pattern   string
	Offending string
	Message   string
}

func (e *PatternSyntaxError) Error() string {
	if e.Offending == "" {
		return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Message)
	}
	return fmt.Sprintf("invalid pattern %q: %s near %q", e.Pattern, e.Message, e.Offending)
}

func (e *PatternSyntaxError) Is(target error) bool { return target == ErrPatternSyntax }

// AmbiguousMatchWarning is recorded when a pattern matched invocations with
// more than one declaring type. The recipe still rewrites all of them.
type AmbiguousMatchWarning struct {
	Recipe  string
	Pattern string
	Matches []string
}

func (w *AmbiguousMatchWarning) Error() string {
	return fmt.Sprintf("%s: pattern %q matches methods declared on %s",
		w.Recipe, w.Pattern, strings.Join(w.Matches, ", "))
}

func (w *AmbiguousMatchWarning) Is(target error) bool { return target == ErrAmbiguous }

// InvariantError is raised by tree walkers when a rewrite would leave a tree
// structurally invalid, for example by deleting a required child.
type InvariantError struct {
	Node    ID
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("node %s: %s", e.Node, e.Message)
}

// InternalError aborts the processing of one unit. The unit keeps its
// original tree.
type InternalError struct {
	Unit   string
	Recipe string
	Node   ID
	Cause  error
}

func (e *InternalError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: recipe %s", e.Unit, e.Recipe)
	if !e.Node.IsZero() {
		fmt.Fprintf(&sb, " at node %s", e.Node)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *InternalError) Unwrap() error { return e.Cause }

func (e *InternalError) Is(target error) bool { return target == ErrInternal }

func newInternalError(unit, recipe string, cause any) *InternalError {
	ie := &InternalError{Unit: unit, Recipe: recipe}
	switch c := cause.(type) {
	case *InternalError:
		return c
	case *InvariantError:
		ie.Node = c.Node
		ie.Cause = c
	case error:
		var inv *InvariantError
		if errors.As(c, &inv) {
			ie.Node = inv.Node
		}
		ie.Cause = c
	default:
		ie.Cause = fmt.Errorf("panic: %v", c)
	}
	return ie
}
