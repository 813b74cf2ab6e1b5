package tstring

import (
	"strings"
)

// Formatter is a reusable template whose interpolation values are names,
// not content. Each call to Format resolves the names against a fresh set
// of keyword arguments, recovering old-style "build the template once,
// apply it many times" behavior.
type Formatter struct {
	t *Template
}

// NewFormatter validates that every interpolation value in the Template is
// a string, and returns a Formatter that treats those strings as names.
func NewFormatter(t *Template) (*Formatter, error) {
	if err := checkNames(t); err != nil {
		return nil, err
	}
	return &Formatter{t: t}, nil
}

// Format resolves each name against kwargs, applies the original
// interpolation's conversion and format spec, and concatenates, with the
// same semantics as F plus the name-indirection step.
func (f *Formatter) Format(kwargs map[string]any) (string, error) {
	var b strings.Builder
	for i, lit := range f.t.text {
		b.WriteString(lit)
		if i < len(f.t.interps) {
			it := f.t.interps[i]
			value, err := lookupName(it.Value, kwargs)
			if err != nil {
				return "", err
			}
			s, err := Format(convert(value, it.Conv), it.FormatSpec)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

// Binder is a reusable template like Formatter, but Bind produces a new
// Template with the names replaced by resolved values instead of rendering
// to a string. The bound Template can be rendered later, compared for
// equality, or fed to any other Template consumer.
type Binder struct {
	t *Template
}

// NewBinder validates that every interpolation value in the Template is a
// string, and returns a Binder that treats those strings as names.
func NewBinder(t *Template) (*Binder, error) {
	if err := checkNames(t); err != nil {
		return nil, err
	}
	return &Binder{t: t}, nil
}

// Bind resolves each name against kwargs and returns a new Template with
// each interpolation's value replaced by the resolved argument. Conversion
// and format spec carry over; the expression text is regenerated from the
// resolved value's representation.
func (b *Binder) Bind(kwargs map[string]any) (*Template, error) {
	out := b.t.clone()
	for i, it := range out.interps {
		value, err := lookupName(it.Value, kwargs)
		if err != nil {
			return nil, err
		}
		out.interps[i] = Interpolation{
			Value:      value,
			Expr:       repr(value),
			Conv:       it.Conv,
			FormatSpec: it.FormatSpec,
		}
	}
	return out, nil
}

func checkNames(t *Template) error {
	for _, it := range t.interps {
		if _, ok := it.Value.(string); !ok {
			return &NonStringValueError{Value: it.Value}
		}
	}
	return nil
}

func lookupName(value any, kwargs map[string]any) (any, error) {
	name := value.(string)
	resolved, ok := kwargs[name]
	if !ok {
		return nil, &MissingKeyError{Key: name}
	}
	return resolved, nil
}
