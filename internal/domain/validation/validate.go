// Package validation evaluates field constraints against single input values.
//
// A constraint set is gated by the value's type: Required applies to every
// value (it is checked against the stringified, trimmed form), MinLength and
// MaxLength apply only to strings, and Min and Max apply only to numbers.
// Constraints that do not apply to the value's type are ignored rather than
// failed, so a field with no applicable constraints always passes.
//
//	ok := validation.Validate("Website Redesign", validation.Constraints{
//	    Required:  true,
//	    MinLength: validation.Int(2),
//	    MaxLength: validation.Int(30),
//	})
//
// Check aggregates several fields into one accept/reject decision:
//
//	err := validation.Check(
//	    validation.Field{Name: "title", Value: title, Constraints: titleRules},
//	    validation.Field{Name: "people", Value: people, Constraints: peopleRules},
//	)
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen11/project-tracker/internal/domain"
)

// Constraints is the set of checks applied to one value. Nil bounds are absent.
type Constraints struct {
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// Field names a value and the constraints it must satisfy.
type Field struct {
	Name        string
	Value       any
	Constraints Constraints
}

// Int returns a pointer to n, for MinLength and MaxLength.
func Int(n int) *int { return &n }

// Float returns a pointer to n, for Min and Max.
func Float(n float64) *float64 { return &n }

// Validate reports whether value satisfies every applicable constraint in c.
// It has no side effects.
func Validate(value any, c Constraints) bool {
	return violation(value, c) == ""
}

// Check validates every field and returns a *domain.ValidationError naming
// each failing field, or nil when all fields pass. Every field is evaluated
// so the caller sees all failures at once.
func Check(fields ...Field) error {
	failed := make(map[string]string)
	for _, f := range fields {
		if msg := violation(f.Value, f.Constraints); msg != "" {
			failed[f.Name] = msg
		}
	}

	if len(failed) > 0 {
		return &domain.ValidationError{Fields: failed}
	}
	return nil
}

// violation returns a message for the first failing constraint, or "" when
// value passes.
func violation(value any, c Constraints) string {
	if c.Required && strings.TrimSpace(stringify(value)) == "" {
		return domain.MsgRequired
	}

	if s, ok := value.(string); ok {
		n := utf8.RuneCountInString(s)
		if c.MinLength != nil && n < *c.MinLength {
			return fmt.Sprintf("must be at least %d characters", *c.MinLength)
		}
		if c.MaxLength != nil && n > *c.MaxLength {
			return fmt.Sprintf("must be at most %d characters", *c.MaxLength)
		}
	}

	if num, ok := numeric(value); ok {
		if c.Min != nil && num < *c.Min {
			return fmt.Sprintf("must be at least %g", *c.Min)
		}
		if c.Max != nil && num > *c.Max {
			return fmt.Sprintf("must be at most %g", *c.Max)
		}
	}

	return ""
}

// stringify renders value the way Required sees it. A nil value is empty.
func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// numeric converts any Go integer or float kind to float64.
func numeric(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
