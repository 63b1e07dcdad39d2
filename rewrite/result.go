package rewrite

import "time"

type Status string

const (
	StatusApplied   Status = "applied"
	StatusUnchanged Status = "unchanged"
	StatusInvalid   Status = "invalid"
	StatusFailed    Status = "failed"
)

// Outcome records what one recipe did to one unit.
type Outcome struct {
	Recipe   string
	Status   Status
	Failures []ValidationFailure
	Found    []ID
	Touched  []ID
	Duration time.Duration
}

// Result is the product of running recipes over one unit. When Err is set
// Fixed is the original tree.
type Result struct {
	Path     string
	Original SourceFile
	Fixed    SourceFile
	Outcomes []Outcome
	Warnings []error
	Err      error
}

// Changed reports whether the fixed tree prints differently from the original.
func (r *Result) Changed() bool {
	if r.Original == nil || r.Fixed == nil || r.Err != nil {
		return false
	}
	return r.Original.Print() != r.Fixed.Print()
}

// Found returns the IDs of every node marked by a search recipe.
func (r *Result) Found() []ID {
	var ids []ID
	for _, o := range r.Outcomes {
		ids = append(ids, o.Found...)
	}
	return ids
}

func (r *Result) Diff() string {
	if !r.Changed() {
		return ""
	}
	return Diff(r.Path, r.Original.Print(), r.Fixed.Print())
}
