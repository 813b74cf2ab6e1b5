package tstring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("impractical.co/tstring")

// F renders a Template to the string that would have resulted from
// formatting each interpolation inline: literals are appended verbatim,
// interpolation values have their conversion applied and are then formatted
// with their format spec using Format.
//
// A format spec that doesn't apply to a value fails with the same error a
// direct Format call on that value would produce; a caller can't tell a
// template was involved.
func F(t *Template) (string, error) {
	return Render(t, Format)
}

// Render is F with an explicit formatting routine.
func Render(t *Template, format FormatFunc) (string, error) {
	var out []byte
	for i, lit := range t.text {
		out = append(out, lit...)
		if i < len(t.interps) {
			it := t.interps[i]
			s, err := format(convert(it.Value, it.Conv), it.FormatSpec)
			if err != nil {
				return "", err
			}
			out = append(out, s...)
		}
	}
	return string(out), nil
}

// AFormat renders a Template like F, but first resolves interpolation
// values that are zero-argument callables:
//
//   - func(context.Context) (any, error) is invoked with ctx and its result
//     awaited before rendering continues
//   - func() (any, error) and func() any are invoked synchronously
//   - any other value is used as-is
//
// Resolutions happen strictly in template order; interpolation i+1 is not
// resolved until interpolation i's resolution has completed. A failing
// resolution propagates immediately and abandons the render.
func AFormat(ctx context.Context, t *Template) (string, error) {
	return AFormatWith(ctx, t, Format)
}

// AFormatWith is AFormat with an explicit formatting routine.
func AFormatWith(ctx context.Context, t *Template, format FormatFunc) (string, error) {
	ctx, span := tracer.Start(ctx, "tstring.AFormat", trace.WithAttributes(
		attribute.Int("template.interpolations", len(t.interps)),
	))
	defer span.End()

	var out []byte
	for i, lit := range t.text {
		out = append(out, lit...)
		if i < len(t.interps) {
			it := t.interps[i]
			value, err := resolve(ctx, it.Value)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return "", err
			}
			s, err := format(convert(value, it.Conv), it.FormatSpec)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return "", err
			}
			out = append(out, s...)
		}
	}
	return string(out), nil
}

func resolve(ctx context.Context, value any) (any, error) {
	switch fn := value.(type) {
	case func(context.Context) (any, error):
		return fn(ctx)
	case func() (any, error):
		return fn()
	case func() any:
		return fn(), nil
	}
	return value, nil
}
