package tstring_test

import (
	"errors"
	"testing"

	"impractical.co/tstring"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		value any
		spec  string
		want  string
	}{
		"string no spec":          {"world", "", "world"},
		"int no spec":             {42, "", "42"},
		"int width":               {42, "5", "   42"},
		"int left align":          {42, "<5", "42   "},
		"int center":              {42, "^6", "  42  "},
		"int zero pad":            {42, "05", "00042"},
		"negative zero pad":       {-7, "05", "-0007"},
		"explicit plus":           {42, "+", "+42"},
		"space sign":              {42, " ", " 42"},
		"hex":                     {255, "x", "ff"},
		"hex upper":               {255, "X", "FF"},
		"hex alternate":           {255, "#x", "0xff"},
		"binary":                  {5, "b", "101"},
		"octal":                   {8, "o", "10"},
		"thousands":               {1234567, ",", "1,234,567"},
		"char":                    {97, "c", "a"},
		"float fixed":             {3.14159, ".2f", "3.14"},
		"float fixed zero pad":    {3.14159, "08.2f", "00003.14"},
		"float default":           {2.5, "", "2.5"},
		"float significant":       {3.14159, ".3", "3.14"},
		"float thousands":         {1234.5, ",.2f", "1,234.50"},
		"percent":                 {0.25, ".0%", "25%"},
		"exponent":                {1250.0, ".2e", "1.25e+03"},
		"string truncate":         {"hello", ".3", "hel"},
		"string fill":             {"hi", "*<5", "hi***"},
		"string width":            {"hi", "5", "hi   "},
		"int formatted as float":  {42, ".1f", "42.0"},
		"uint":                    {uint8(200), "", "200"},
		"bool default formatting": {true, "", "true"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tstring.Format(tc.value, tc.spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Format(%v, %q) = %q, expected %q", tc.value, tc.spec, got, tc.want)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	verbCases := map[string]struct {
		value any
		spec  string
	}{
		"d on string": {"x", "d"},
		"d on float":  {3.5, "d"},
		"s on int":    {42, "s"},
		"x on bool":   {true, "x"},
	}
	for name, tc := range verbCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tstring.Format(tc.value, tc.spec)
			var verbErr *tstring.VerbError
			if !errors.As(err, &verbErr) {
				t.Fatalf("Format(%v, %q): expected VerbError, got %v", tc.value, tc.spec, err)
			}
		})
	}

	specCases := map[string]struct {
		value any
		spec  string
	}{
		"precision on integer": {42, ".2d"},
		"sign on string":       {"x", "+"},
		"comma on string":      {"x", ","},
		"comma with hex":       {255, ",x"},
		"missing precision":    {3.5, "."},
		"unknown code":         {42, "z"},
		"trailing garbage":     {42, "5dd"},
	}
	for name, tc := range specCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tstring.Format(tc.value, tc.spec)
			var specErr *tstring.SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("Format(%v, %q): expected SpecError, got %v", tc.value, tc.spec, err)
			}
		})
	}
}
