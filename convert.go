package tstring

import (
	"fmt"
	"strconv"
)

// convert applies an Interpolation's conversion tag to its value, before
// the format spec is applied.
func convert(value any, conv Conv) any {
	switch conv {
	case ConvStr:
		return fmt.Sprint(value)
	case ConvRepr:
		return repr(value)
	case ConvASCII:
		return asciiRepr(value)
	}
	return value
}

// repr renders a value's developer-facing representation. Strings are
// quoted; everything else falls through to its default formatting.
func repr(value any) string {
	if s, ok := value.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(value)
}

// asciiRepr is repr with non-ASCII characters escaped.
func asciiRepr(value any) string {
	if s, ok := value.(string); ok {
		return strconv.QuoteToASCII(s)
	}
	q := strconv.QuoteToASCII(fmt.Sprint(value))
	return q[1 : len(q)-1]
}
