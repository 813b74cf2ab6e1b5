package tstring

import (
	"errors"
	"fmt"
)

var (
	// ErrAutoToManual is returned when a format string switches from
	// automatic field numbering ("{}") to manual field numbering ("{1}").
	ErrAutoToManual = errors.New("cannot switch from automatic field numbering to manual field specification")

	// ErrManualToAuto is returned when a format string switches from
	// manual field numbering ("{1}") to automatic field numbering ("{}").
	ErrManualToAuto = errors.New("cannot switch from manual field specification to automatic field numbering")

	// ErrUnmatchedBrace is returned when a format string contains a "{"
	// with no matching "}", or a stray "}".
	ErrUnmatchedBrace = errors.New("single brace encountered in format string")

	// ErrSpecNesting is returned when a format spec interpolation itself
	// contains an interpolation. Specs like "{:{}}" are resolved; specs
	// like "{:{:{}}}" are not.
	ErrSpecNesting = errors.New("format spec interpolations cannot be nested more than one level deep")

	// ErrFragmentAttributes is returned when an Element with an empty tag
	// is constructed with attributes.
	ErrFragmentAttributes = errors.New("fragments cannot have attributes, only children")
)

// BadConversionError is returned when an Interpolation is constructed with,
// or a format string specifies, a conversion tag other than "a", "r", or
// "s".
type BadConversionError struct {
	Conv string
}

func (e *BadConversionError) Error() string {
	return fmt.Sprintf("unknown conversion specifier %q", e.Conv)
}

// MissingKeyError is returned when a keyword argument or bound name lookup
// fails.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing keyword argument %q", e.Key)
}

// IndexError is returned when a positional argument index, or an item
// access index within a field, is out of range.
type IndexError struct {
	// Index is the index that was requested.
	Index int

	// Count is the number of values that were available.
	Count int

	// Expr is the field path being resolved when the access failed. It
	// is empty for a top-level positional argument lookup.
	Expr string
}

func (e *IndexError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("index %d out of range for %q (len %d)", e.Index, e.Expr, e.Count)
	}
	return fmt.Sprintf("replacement index %d out of range for positional args (len %d)", e.Index, e.Count)
}

// NoSuchFieldError is returned when an attribute or item access in a field
// path cannot be resolved against the value it is applied to.
type NoSuchFieldError struct {
	// Expr is the field path being resolved.
	Expr string

	// Field is the attribute name or item key that failed to resolve.
	Field string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("cannot resolve %q in field %q", e.Field, e.Expr)
}

// UnhashableValueError is returned by Template.Hash when an interpolation
// value's type is not comparable.
type UnhashableValueError struct {
	Value any
}

func (e *UnhashableValueError) Error() string {
	return fmt.Sprintf("unhashable interpolation value of type %T", e.Value)
}

// NonStringValueError is returned by NewFormatter and NewBinder when the
// supplied Template has an interpolation whose value is not a string name.
type NonStringValueError struct {
	Value any
}

func (e *NonStringValueError) Error() string {
	return fmt.Sprintf("interpolation value %v (%T) is not a string name", e.Value, e.Value)
}

// ParseError is returned by HTML when a template cannot be parsed as a
// well-formed HTML fragment, or when an interpolation value's type isn't
// usable at the position it appears in.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "html parse: " + e.Message
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}
