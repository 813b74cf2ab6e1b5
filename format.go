package tstring

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type numberingMode int

const (
	modeUnset numberingMode = iota
	modeAuto
	modeManual
)

// FromFormat parses a format string using old-style "{field}" placeholder
// syntax and produces an equivalent Template, resolving each field against
// args and kwargs.
//
// A field is
//
//	{key[.name|[index]...][!conv][:spec]}
//
// where key is empty (automatic numbering), a non-negative integer (manual
// numbering), or a name looked up in kwargs. After the key, any chain of
// attribute access (".name": struct fields or string-keyed maps) and item
// access ("[index]": slices, arrays, strings, maps) is applied left to
// right. Doubled braces are literal braces.
//
// A format string may not mix automatic and manual numbering; the first
// mode used binds the whole string, and switching returns ErrAutoToManual
// or ErrManualToAuto. A format spec may itself contain "{field}"
// placeholders, which are resolved against the same args and kwargs before
// being attached to the Interpolation (so "{:.{precision}f}" works); nested
// placeholders inside those placeholders return ErrSpecNesting.
//
// The produced Interpolations record their resolved field path ("args[2]",
// `kwargs["name"]`, plus any access suffixes) as their expression text. The
// path exists for diagnostics and logging keys; it isn't guaranteed to be a
// parseable expression.
func FromFormat(format string, args []any, kwargs map[string]any) (*Template, error) {
	p := &fmtParser{args: args, kwargs: kwargs}
	var parts []Part
	var lit strings.Builder
	i := 0
	for i < len(format) {
		switch c := format[i]; c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end, err := matchBrace(format, i)
			if err != nil {
				return nil, err
			}
			if lit.Len() > 0 {
				parts = append(parts, Literal(lit.String()))
				lit.Reset()
			}
			interp, err := p.parseField(format[i+1 : end])
			if err != nil {
				return nil, err
			}
			parts = append(parts, interp)
			i = end + 1
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, ErrUnmatchedBrace
		default:
			lit.WriteByte(c)
			i++
		}
	}
	if lit.Len() > 0 {
		parts = append(parts, Literal(lit.String()))
	}
	return New(parts...)
}

// matchBrace returns the position of the "}" matching the "{" at open,
// tolerating one or more nested brace pairs (format specs may contain
// placeholders of their own).
func matchBrace(s string, open int) (int, error) {
	depth := 1
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, ErrUnmatchedBrace
}

type fmtParser struct {
	args   []any
	kwargs map[string]any
	mode   numberingMode
	next   int
}

// parseField turns the body of one "{...}" placeholder into an
// Interpolation with the field resolved to its value.
func (p *fmtParser) parseField(body string) (Interpolation, error) {
	fieldEnd := len(body)
	convStart := -1
	specStart := -1
	depth := 0
scan:
	for j := 0; j < len(body); j++ {
		switch body[j] {
		case '[':
			depth++
		case ']':
			depth--
		case '!':
			if depth == 0 && convStart < 0 {
				convStart = j
				fieldEnd = j
			}
		case ':':
			if depth == 0 {
				specStart = j
				if convStart < 0 {
					fieldEnd = j
				}
				break scan
			}
		}
	}

	conv := ConvNone
	if convStart >= 0 {
		convEnd := len(body)
		if specStart >= 0 {
			convEnd = specStart
		}
		tag := body[convStart+1 : convEnd]
		switch tag {
		case "a", "r", "s":
			conv = Conv(tag)
		default:
			return Interpolation{}, &BadConversionError{Conv: tag}
		}
	}

	// the field consumes its automatic index before any placeholders in
	// its spec consume theirs
	value, expr, err := p.resolveField(body[:fieldEnd])
	if err != nil {
		return Interpolation{}, err
	}

	spec := ""
	if specStart >= 0 {
		spec = body[specStart+1:]
		if strings.ContainsAny(spec, "{}") {
			resolved, err := p.resolveSpec(spec)
			if err != nil {
				return Interpolation{}, err
			}
			spec = resolved
		}
	}
	return Interpolation{Value: value, Expr: expr, Conv: conv, FormatSpec: spec}, nil
}

// resolveSpec substitutes "{field}" placeholders inside a format spec with
// their resolved values. Nested placeholders share the enclosing string's
// numbering mode, like str.format-style specs do.
func (p *fmtParser) resolveSpec(spec string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(spec) {
		switch c := spec[i]; c {
		case '{':
			if i+1 < len(spec) && spec[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end, err := matchBrace(spec, i)
			if err != nil {
				return "", err
			}
			inner := spec[i+1 : end]
			if strings.ContainsAny(inner, "{!:") {
				return "", ErrSpecNesting
			}
			value, _, err := p.resolveField(inner)
			if err != nil {
				return "", err
			}
			b.WriteString(fmt.Sprint(value))
			i = end + 1
		case '}':
			if i+1 < len(spec) && spec[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", ErrUnmatchedBrace
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// resolveField resolves a field path (key plus access suffixes) to a value
// and the expression text recorded for it.
func (p *fmtParser) resolveField(field string) (any, string, error) {
	keyEnd := len(field)
	for j := 0; j < len(field); j++ {
		if field[j] == '.' || field[j] == '[' {
			keyEnd = j
			break
		}
	}
	value, expr, err := p.resolveKey(field[:keyEnd])
	if err != nil {
		return nil, "", err
	}
	return p.applyAccess(value, field[keyEnd:], expr)
}

// resolveKey resolves the base of a field: an automatic index, a manual
// index, or a kwargs name.
func (p *fmtParser) resolveKey(key string) (any, string, error) {
	switch {
	case key == "":
		if p.mode == modeManual {
			return nil, "", ErrManualToAuto
		}
		p.mode = modeAuto
		index := p.next
		p.next++
		return p.positional(index)
	case isDigits(key):
		if p.mode == modeAuto {
			return nil, "", ErrAutoToManual
		}
		p.mode = modeManual
		index, err := strconv.Atoi(key)
		if err != nil {
			return nil, "", fmt.Errorf("invalid field index %q: %w", key, err)
		}
		return p.positional(index)
	default:
		value, ok := p.kwargs[key]
		if !ok {
			return nil, "", &MissingKeyError{Key: key}
		}
		return value, fmt.Sprintf("kwargs[%q]", key), nil
	}
}

func (p *fmtParser) positional(index int) (any, string, error) {
	if index >= len(p.args) {
		return nil, "", &IndexError{Index: index, Count: len(p.args)}
	}
	return p.args[index], fmt.Sprintf("args[%d]", index), nil
}

// applyAccess applies a chain of ".name" and "[index]" suffixes to a base
// value, left to right, extending the expression text as it goes.
func (p *fmtParser) applyAccess(base any, suffixes, expr string) (any, string, error) {
	cur := base
	i := 0
	for i < len(suffixes) {
		switch suffixes[i] {
		case '.':
			j := i + 1
			for j < len(suffixes) && suffixes[j] != '.' && suffixes[j] != '[' {
				j++
			}
			name := suffixes[i+1 : j]
			expr += "." + name
			if name == "" {
				return nil, "", &NoSuchFieldError{Expr: expr, Field: name}
			}
			next, err := attrAccess(cur, name, expr)
			if err != nil {
				return nil, "", err
			}
			cur = next
			i = j
		case '[':
			end := strings.IndexByte(suffixes[i:], ']')
			if end < 0 {
				return nil, "", fmt.Errorf("unterminated item access in field %q", expr+suffixes[i:])
			}
			key := suffixes[i+1 : i+end]
			expr += "[" + key + "]"
			next, err := itemAccess(cur, key, expr)
			if err != nil {
				return nil, "", err
			}
			cur = next
			i += end + 1
		default:
			return nil, "", &NoSuchFieldError{Expr: expr, Field: suffixes[i:]}
		}
	}
	return cur, expr, nil
}

// attrAccess resolves ".name" against a struct field or a string-keyed map
// entry.
func attrAccess(base any, name, expr string) (any, error) {
	v := reflect.ValueOf(base)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, &NoSuchFieldError{Expr: expr, Field: name}
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		field := v.FieldByName(name)
		if !field.IsValid() {
			// field paths written in a format string tend to use the
			// source language's casing; tolerate a lower-case first
			// letter for exported fields
			r, size := utf8.DecodeRuneInString(name)
			field = v.FieldByName(string(unicode.ToUpper(r)) + name[size:])
		}
		if !field.IsValid() || !field.CanInterface() {
			return nil, &NoSuchFieldError{Expr: expr, Field: name}
		}
		return field.Interface(), nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, &NoSuchFieldError{Expr: expr, Field: name}
		}
		entry := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !entry.IsValid() {
			return nil, &MissingKeyError{Key: name}
		}
		return entry.Interface(), nil
	}
	return nil, &NoSuchFieldError{Expr: expr, Field: name}
}

// itemAccess resolves "[key]" against a slice, array, string, or map.
func itemAccess(base any, key, expr string) (any, error) {
	v := reflect.ValueOf(base)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, &NoSuchFieldError{Expr: expr, Field: key}
		}
		v = v.Elem()
	}
	if isDigits(key) {
		index, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid item index %q: %w", key, err)
		}
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			if index >= v.Len() {
				return nil, &IndexError{Index: index, Count: v.Len(), Expr: expr}
			}
			return v.Index(index).Interface(), nil
		case reflect.String:
			runes := []rune(v.String())
			if index >= len(runes) {
				return nil, &IndexError{Index: index, Count: len(runes), Expr: expr}
			}
			return string(runes[index]), nil
		case reflect.Map:
			if isIntKind(v.Type().Key().Kind()) {
				entry := v.MapIndex(reflect.ValueOf(index).Convert(v.Type().Key()))
				if !entry.IsValid() {
					return nil, &MissingKeyError{Key: key}
				}
				return entry.Interface(), nil
			}
		}
	}
	if v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String {
		entry := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !entry.IsValid() {
			return nil, &MissingKeyError{Key: key}
		}
		return entry.Interface(), nil
	}
	return nil, &NoSuchFieldError{Expr: expr, Field: key}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
