package tstring

import (
	"fmt"
	"strings"
)

// DefaultPlaceholder is substituted for interpolations whose format spec
// doesn't match the selector passed to FormatSome.
const DefaultPlaceholder = "***"

// SomeOption configures FormatSome.
type SomeOption func(*someConfig)

type someConfig struct {
	placeholder string
}

// WithPlaceholder overrides the string substituted for unselected
// interpolations.
func WithPlaceholder(placeholder string) SomeOption {
	return func(cfg *someConfig) {
		cfg.placeholder = placeholder
	}
}

// FormatSome renders a Template whose interpolations use their format spec
// as a free-form selector label rather than a formatting directive.
// Literals render verbatim. An interpolation whose format spec equals
// selector has its value resolved (invoking it first if it's a func() any)
// and its conversion applied; every other interpolation renders as the
// placeholder, and its value is never invoked.
//
// Expensive computations behind unselected interpolations are guaranteed
// not to run, which is the point: wrap them in a func() any and tag them
// with a selector, and only the selected ones ever execute.
func FormatSome(selector string, t *Template, opts ...SomeOption) string {
	cfg := someConfig{placeholder: DefaultPlaceholder}
	for _, opt := range opts {
		opt(&cfg)
	}
	var b strings.Builder
	for i, lit := range t.text {
		b.WriteString(lit)
		if i < len(t.interps) {
			it := t.interps[i]
			if it.FormatSpec != selector {
				b.WriteString(cfg.placeholder)
				continue
			}
			value := it.Value
			if fn, ok := value.(func() any); ok {
				value = fn()
			}
			b.WriteString(fmt.Sprint(convert(value, it.Conv)))
		}
	}
	return b.String()
}
