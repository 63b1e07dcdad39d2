package rewrite

import (
	"errors"
	"fmt"
)

// ValidationFailure describes one invalid recipe option.
type ValidationFailure struct {
	Property string
	Message  string
	Value    any
	Err      error
}

func (f ValidationFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Property, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Property, f.Message)
}

func (f ValidationFailure) Unwrap() error { return f.Err }

func (f ValidationFailure) Is(target error) bool { return target == ErrValidation }

// Validated accumulates validation failures. The zero value is valid.
type Validated struct {
	failures []ValidationFailure
}

func Valid() Validated {
	return Validated{}
}

func Invalid(property string, value any, message string, err error) Validated {
	return Validated{failures: []ValidationFailure{{
		Property: property,
		Message:  message,
		Value:    value,
		Err:      err,
	}}}
}

// Required fails when value is nil or an empty string.
func Required(property string, value any) Validated {
	switch v := value.(type) {
	case nil:
		return Invalid(property, value, "is required", nil)
	case string:
		if v == "" {
			return Invalid(property, value, "is required", nil)
		}
	}
	return Valid()
}

// Compiled validates an option that is compiled into a pattern. An empty
// value is reported as missing, a compile error as invalid.
func Compiled(property, value string, err error) Validated {
	if value == "" {
		return Required(property, value)
	}
	if err != nil {
		return Invalid(property, value, "is not a valid pattern", err)
	}
	return Valid()
}

func (v Validated) And(other Validated) Validated {
	if len(other.failures) == 0 {
		return v
	}
	if len(v.failures) == 0 {
		return other
	}
	failures := make([]ValidationFailure, 0, len(v.failures)+len(other.failures))
	failures = append(failures, v.failures...)
	failures = append(failures, other.failures...)
	return Validated{failures: failures}
}

func (v Validated) IsValid() bool {
	return len(v.failures) == 0
}

func (v Validated) Failures() []ValidationFailure {
	return append([]ValidationFailure(nil), v.failures...)
}

// Prefixed qualifies every failing property with prefix.
func (v Validated) Prefixed(prefix string) Validated {
	if len(v.failures) == 0 {
		return v
	}
	failures := make([]ValidationFailure, len(v.failures))
	for i, f := range v.failures {
		f.Property = prefix + "." + f.Property
		failures[i] = f
	}
	return Validated{failures: failures}
}

// Err joins the failures into a single error, or returns nil when valid.
func (v Validated) Err() error {
	if len(v.failures) == 0 {
		return nil
	}
	errs := make([]error, len(v.failures))
	for i, f := range v.failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
