package tstring

import (
	"fmt"
	"hash/fnv"
	"iter"
	"reflect"
)

// Conv selects the pre-formatting transform applied to an interpolation
// value before its format spec is applied.
type Conv string

const (
	// ConvNone applies no transform.
	ConvNone Conv = ""

	// ConvASCII transforms the value into its quoted representation with
	// non-ASCII characters escaped, like Python's ascii().
	ConvASCII Conv = "a"

	// ConvRepr transforms the value into its quoted representation.
	ConvRepr Conv = "r"

	// ConvStr transforms the value into its plain string form.
	ConvStr Conv = "s"
)

func (c Conv) valid() bool {
	switch c {
	case ConvNone, ConvASCII, ConvRepr, ConvStr:
		return true
	}
	return false
}

// Part is one element of a Template's canonical sequence: either a Literal
// or an Interpolation.
type Part interface {
	part()
}

// Literal is a run of literal text in a Template.
type Literal string

func (Literal) part() {}

// Interpolation is one embedded-expression site in a Template. It records
// the computed value of the expression, the source text of the expression
// as written, an optional conversion tag, and a format spec.
type Interpolation struct {
	// Value is the computed value of the expression. The Template model
	// treats it as opaque.
	Value any

	// Expr is the source text of the expression as written. It is never
	// re-evaluated; it exists for diagnostics, logging keys, and debug
	// rendering.
	Expr string

	// Conv is the conversion tag, if any.
	Conv Conv

	// FormatSpec is the format spec passed to the formatting routine. It
	// may have been produced by resolving nested interpolations, e.g.
	// ".{precision}f".
	FormatSpec string
}

func (Interpolation) part() {}

// Template is an immutable, canonical alternating sequence of literal text
// and Interpolations. The sequence always has odd length, starts and ends
// with a literal (possibly empty), and never contains two adjacent literals
// or two adjacent interpolations.
//
// The alternation invariant is structural: a Template holds one more
// literal than it holds interpolations, and Parts interleaves them.
type Template struct {
	text    []string
	interps []Interpolation
}

// New constructs a Template from parts, repairing any violations of the
// alternation invariant: adjacent literals are concatenated into one, and a
// missing literal between, before, or after interpolations is synthesized
// as "".
//
// It returns an error if any Interpolation carries an unrecognized
// conversion tag.
func New(parts ...Part) (*Template, error) {
	t := &Template{text: []string{""}}
	for _, part := range parts {
		switch p := part.(type) {
		case Literal:
			t.text[len(t.text)-1] += string(p)
		case Interpolation:
			if !p.Conv.valid() {
				return nil, &BadConversionError{Conv: string(p.Conv)}
			}
			t.interps = append(t.interps, p)
			t.text = append(t.text, "")
		default:
			return nil, fmt.Errorf("unsupported template part type %T", part)
		}
	}
	return t, nil
}

// MustNew is like New but panics on error. It is intended for templates
// built from constants, where a bad conversion tag is a programming error.
func MustNew(parts ...Part) *Template {
	t, err := New(parts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Parts iterates the canonical part sequence in order. It always yields an
// odd number of parts, alternating Literal and Interpolation, beginning and
// ending with a Literal.
func (t *Template) Parts() iter.Seq[Part] {
	return func(yield func(Part) bool) {
		for i, lit := range t.text {
			if !yield(Literal(lit)) {
				return
			}
			if i < len(t.interps) {
				if !yield(t.interps[i]) {
					return
				}
			}
		}
	}
}

// Literals returns a copy of the template's literal segments. There is
// always exactly one more literal than there are interpolations.
func (t *Template) Literals() []string {
	out := make([]string, len(t.text))
	copy(out, t.text)
	return out
}

// Interpolations returns a copy of the template's interpolations, in order.
func (t *Template) Interpolations() []Interpolation {
	out := make([]Interpolation, len(t.interps))
	copy(out, t.interps)
	return out
}

// Len returns the length of the canonical part sequence. It is always odd.
func (t *Template) Len() int {
	return len(t.text) + len(t.interps)
}

// Append returns a new Template with s merged into the trailing literal.
func (t *Template) Append(s string) *Template {
	out := t.clone()
	out.text[len(out.text)-1] += s
	return out
}

// Prepend returns a new Template with s merged into the leading literal.
func (t *Template) Prepend(s string) *Template {
	out := t.clone()
	out.text[0] = s + out.text[0]
	return out
}

// Concat returns a new Template holding t's parts followed by other's
// parts. The trailing literal of t and the leading literal of other are
// merged into a single literal rather than left as an empty-string seam.
func (t *Template) Concat(other *Template) *Template {
	out := &Template{
		text:    make([]string, 0, len(t.text)+len(other.text)-1),
		interps: make([]Interpolation, 0, len(t.interps)+len(other.interps)),
	}
	out.text = append(out.text, t.text[:len(t.text)-1]...)
	out.text = append(out.text, t.text[len(t.text)-1]+other.text[0])
	out.text = append(out.text, other.text[1:]...)
	out.interps = append(out.interps, t.interps...)
	out.interps = append(out.interps, other.interps...)
	return out
}

// Equal reports whether two Templates have equal canonical part sequences.
// Interpolations compare on value, expression text, conversion, and format
// spec, so templates with equal values but different source expressions are
// unequal.
func (t *Template) Equal(other *Template) bool {
	if other == nil {
		return false
	}
	if len(t.text) != len(other.text) || len(t.interps) != len(other.interps) {
		return false
	}
	for i, lit := range t.text {
		if lit != other.text[i] {
			return false
		}
	}
	for i, it := range t.interps {
		o := other.interps[i]
		if it.Expr != o.Expr || it.Conv != o.Conv || it.FormatSpec != o.FormatSpec {
			return false
		}
		if !reflect.DeepEqual(it.Value, o.Value) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the template's canonical part sequence, such that
// equal templates hash equally. It fails with an UnhashableValueError if
// any interpolation value's type is not comparable, matching the hashing
// semantics of the plain values themselves rather than silently falling
// back.
func (t *Template) Hash() (uint64, error) {
	for _, it := range t.interps {
		if it.Value != nil && !reflect.TypeOf(it.Value).Comparable() {
			return 0, &UnhashableValueError{Value: it.Value}
		}
	}
	h := fnv.New64a()
	for i, lit := range t.text {
		fmt.Fprintf(h, "%d:%s\x00", len(lit), lit)
		if i < len(t.interps) {
			it := t.interps[i]
			fmt.Fprintf(h, "%T=%v|%s|%s|%s\x00", it.Value, it.Value, it.Expr, it.Conv, it.FormatSpec)
		}
	}
	return h.Sum64(), nil
}

func (t *Template) clone() *Template {
	out := &Template{
		text:    make([]string, len(t.text)),
		interps: make([]Interpolation, len(t.interps)),
	}
	copy(out.text, t.text)
	copy(out.interps, t.interps)
	return out
}
