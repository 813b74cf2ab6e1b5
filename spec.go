package tstring

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatFunc is the formatting routine applied to a (possibly converted)
// interpolation value and its format spec. Render and AFormat accept a
// custom FormatFunc; everything else in this package uses Format.
type FormatFunc func(value any, spec string) (string, error)

// SpecError is returned when a format spec is malformed, or combines
// directives that don't apply to the value being formatted.
type SpecError struct {
	Spec   string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid format spec %q: %s", e.Spec, e.Reason)
}

// VerbError is returned when a format spec's type character doesn't apply
// to the value being formatted.
type VerbError struct {
	Verb  byte
	Value any
}

func (e *VerbError) Error() string {
	return fmt.Sprintf("unknown format code %q for value of type %T", string(e.Verb), e.Value)
}

// Format renders a value according to a format spec of the form
//
//	[[fill]align][sign][#][0][width][,][.precision][type]
//
// where align is one of "<", ">", "^", or "=", sign is one of "+", "-", or
// " ", and type is one of "b", "c", "d", "n", "o", "x", "X", "e", "E", "f",
// "F", "g", "G", "s", or "%". An empty spec renders the value in its
// default form.
//
// Format is the default FormatFunc. Because the renderers call this same
// function, a failing render produces exactly the error a direct Format
// call on the value would.
func Format(value any, spec string) (string, error) {
	f, err := parseSpec(spec)
	if err != nil {
		return "", err
	}
	switch v := value.(type) {
	case string:
		return formatString(v, spec, f)
	case int:
		return formatSigned(int64(v), value, spec, f)
	case int8:
		return formatSigned(int64(v), value, spec, f)
	case int16:
		return formatSigned(int64(v), value, spec, f)
	case int32:
		return formatSigned(int64(v), value, spec, f)
	case int64:
		return formatSigned(v, value, spec, f)
	case uint:
		return formatInt(false, uint64(v), value, spec, f)
	case uint8:
		return formatInt(false, uint64(v), value, spec, f)
	case uint16:
		return formatInt(false, uint64(v), value, spec, f)
	case uint32:
		return formatInt(false, uint64(v), value, spec, f)
	case uint64:
		return formatInt(false, v, value, spec, f)
	case float32:
		return formatFloat(float64(v), value, spec, f)
	case float64:
		return formatFloat(v, value, spec, f)
	}
	return formatOther(value, spec, f)
}

type specFields struct {
	fill  rune
	align byte // '<', '>', '^', '=', or 0 for the value's default
	sign  byte // '+', '-', ' ', or 0
	alt   bool
	width int // -1 when absent
	comma bool
	prec  int  // -1 when absent
	verb  byte // 0 when absent
}

func isAlign(r rune) bool {
	return r == '<' || r == '>' || r == '^' || r == '='
}

func parseSpec(spec string) (specFields, error) {
	f := specFields{fill: ' ', width: -1, prec: -1}
	r := []rune(spec)
	i := 0
	if len(r) >= 2 && isAlign(r[1]) {
		f.fill = r[0]
		f.align = byte(r[1])
		i = 2
	} else if len(r) >= 1 && isAlign(r[0]) {
		f.align = byte(r[0])
		i = 1
	}
	if i < len(r) && (r[i] == '+' || r[i] == '-' || r[i] == ' ') {
		f.sign = byte(r[i])
		i++
	}
	if i < len(r) && r[i] == '#' {
		f.alt = true
		i++
	}
	if i < len(r) && r[i] == '0' {
		if f.align == 0 {
			f.align = '='
			f.fill = '0'
		}
		i++
	}
	for i < len(r) && r[i] >= '0' && r[i] <= '9' {
		if f.width < 0 {
			f.width = 0
		}
		f.width = f.width*10 + int(r[i]-'0')
		i++
	}
	if i < len(r) && r[i] == ',' {
		f.comma = true
		i++
	}
	if i < len(r) && r[i] == '.' {
		i++
		if i >= len(r) || r[i] < '0' || r[i] > '9' {
			return f, &SpecError{Spec: spec, Reason: "missing precision after '.'"}
		}
		f.prec = 0
		for i < len(r) && r[i] >= '0' && r[i] <= '9' {
			f.prec = f.prec*10 + int(r[i]-'0')
			i++
		}
	}
	if i < len(r) {
		if r[i] > 0x7f || !strings.ContainsRune("bcdnoxXeEfFgGs%", r[i]) {
			return f, &SpecError{Spec: spec, Reason: fmt.Sprintf("unknown format code %q", string(r[i]))}
		}
		f.verb = byte(r[i])
		i++
	}
	if i != len(r) {
		return f, &SpecError{Spec: spec, Reason: "unexpected trailing characters"}
	}
	return f, nil
}

func formatString(v, spec string, f specFields) (string, error) {
	if f.verb != 0 && f.verb != 's' {
		return "", &VerbError{Verb: f.verb, Value: v}
	}
	if f.sign != 0 {
		return "", &SpecError{Spec: spec, Reason: "sign not allowed in string format specifier"}
	}
	if f.comma {
		return "", &SpecError{Spec: spec, Reason: "',' not allowed in string format specifier"}
	}
	if f.alt {
		return "", &SpecError{Spec: spec, Reason: "'#' not allowed in string format specifier"}
	}
	if f.align == '=' {
		return "", &SpecError{Spec: spec, Reason: "'=' alignment not allowed in string format specifier"}
	}
	if f.prec >= 0 {
		runes := []rune(v)
		if len(runes) > f.prec {
			v = string(runes[:f.prec])
		}
	}
	return pad(v, "", f, '<'), nil
}

func formatSigned(i int64, value any, spec string, f specFields) (string, error) {
	neg := i < 0
	mag := uint64(i)
	if neg {
		mag = uint64(-i)
	}
	return formatInt(neg, mag, value, spec, f)
}

func formatInt(neg bool, mag uint64, value any, spec string, f specFields) (string, error) {
	switch f.verb {
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		fv := float64(mag)
		if neg {
			fv = -fv
		}
		return formatFloat(fv, value, spec, f)
	}
	if f.prec >= 0 {
		return "", &SpecError{Spec: spec, Reason: "precision not allowed in integer format specifier"}
	}
	var body string
	switch f.verb {
	case 0, 'd', 'n':
		body = strconv.FormatUint(mag, 10)
		if f.comma {
			body = groupThousands(body)
		}
	case 'b', 'o', 'x', 'X':
		if f.comma {
			return "", &SpecError{Spec: spec, Reason: fmt.Sprintf("cannot specify ',' with %q", string(f.verb))}
		}
		base := map[byte]int{'b': 2, 'o': 8, 'x': 16, 'X': 16}[f.verb]
		body = strconv.FormatUint(mag, base)
		if f.verb == 'X' {
			body = strings.ToUpper(body)
		}
		if f.alt {
			prefix := map[byte]string{'b': "0b", 'o': "0o", 'x': "0x", 'X': "0X"}[f.verb]
			body = prefix + body
		}
	case 'c':
		if f.sign != 0 {
			return "", &SpecError{Spec: spec, Reason: "sign not allowed with 'c'"}
		}
		if neg {
			return "", &SpecError{Spec: spec, Reason: "'c' not allowed with negative values"}
		}
		return pad(string(rune(mag)), "", f, '>'), nil
	default:
		return "", &VerbError{Verb: f.verb, Value: value}
	}
	return pad(body, signFor(neg, f.sign), f, '>'), nil
}

func formatFloat(v float64, value any, spec string, f specFields) (string, error) {
	neg := v < 0
	if neg {
		v = -v
	}
	var body string
	switch f.verb {
	case 0:
		if f.prec >= 0 {
			body = strconv.FormatFloat(v, 'g', f.prec, 64)
		} else {
			body = strconv.FormatFloat(v, 'g', -1, 64)
		}
	case 'f', 'F':
		prec := f.prec
		if prec < 0 {
			prec = 6
		}
		body = strconv.FormatFloat(v, 'f', prec, 64)
	case 'e', 'E':
		prec := f.prec
		if prec < 0 {
			prec = 6
		}
		body = strconv.FormatFloat(v, byte(f.verb|0x20), prec, 64)
		if f.verb == 'E' {
			body = strings.ToUpper(body)
		}
	case 'g', 'G':
		prec := f.prec
		if prec < 0 {
			prec = -1
		}
		body = strconv.FormatFloat(v, 'g', prec, 64)
		if f.verb == 'G' {
			body = strings.ToUpper(body)
		}
	case '%':
		prec := f.prec
		if prec < 0 {
			prec = 6
		}
		body = strconv.FormatFloat(v*100, 'f', prec, 64) + "%"
	default:
		return "", &VerbError{Verb: f.verb, Value: value}
	}
	if f.comma {
		if dot := strings.IndexByte(body, '.'); dot >= 0 {
			body = groupThousands(body[:dot]) + body[dot:]
		} else {
			body = groupThousands(body)
		}
	}
	return pad(body, signFor(neg, f.sign), f, '>'), nil
}

func formatOther(value any, spec string, f specFields) (string, error) {
	if f.verb != 0 {
		return "", &VerbError{Verb: f.verb, Value: value}
	}
	if f.sign != 0 || f.comma || f.alt || f.prec >= 0 {
		return "", &SpecError{Spec: spec, Reason: fmt.Sprintf("directives not supported for value of type %T", value)}
	}
	return pad(fmt.Sprint(value), "", f, '<'), nil
}

func signFor(neg bool, sign byte) string {
	if neg {
		return "-"
	}
	switch sign {
	case '+':
		return "+"
	case ' ':
		return " "
	}
	return ""
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func pad(body, sign string, f specFields, defaultAlign byte) string {
	align := f.align
	if align == 0 {
		align = defaultAlign
	}
	n := utf8.RuneCountInString(sign) + utf8.RuneCountInString(body)
	if f.width < 0 || n >= f.width {
		return sign + body
	}
	gap := f.width - n
	switch align {
	case '<':
		return sign + body + strings.Repeat(string(f.fill), gap)
	case '=':
		return sign + strings.Repeat(string(f.fill), gap) + body
	case '^':
		left := gap / 2
		return strings.Repeat(string(f.fill), left) + sign + body + strings.Repeat(string(f.fill), gap-left)
	default: // '>'
		return strings.Repeat(string(f.fill), gap) + sign + body
	}
}
