package tstring_test

import (
	"testing"

	"impractical.co/tstring"
)

func TestFormatSome(t *testing.T) {
	t.Parallel()

	cheapCalls := 0
	expensiveCalls := 0
	tmpl := tstring.MustNew(
		tstring.Literal("cheap="),
		tstring.Interpolation{
			Value:      func() any { cheapCalls++; return "fast" },
			Expr:       "cheap()",
			FormatSpec: "cheap",
		},
		tstring.Literal(" expensive="),
		tstring.Interpolation{
			Value:      func() any { expensiveCalls++; return "slow" },
			Expr:       "expensive()",
			FormatSpec: "expensive",
		},
	)

	got := tstring.FormatSome("cheap", tmpl)
	if got != "cheap=fast expensive=***" {
		t.Errorf("unexpected output %q", got)
	}
	if cheapCalls != 1 {
		t.Errorf("selected callable invoked %d times, expected 1", cheapCalls)
	}
	if expensiveCalls != 0 {
		t.Errorf("unselected callable invoked %d times, expected 0", expensiveCalls)
	}

	got = tstring.FormatSome("expensive", tmpl)
	if got != "cheap=*** expensive=slow" {
		t.Errorf("unexpected output %q", got)
	}
	if cheapCalls != 1 {
		t.Errorf("unselected callable invoked again, %d total calls", cheapCalls)
	}
	if expensiveCalls != 1 {
		t.Errorf("selected callable invoked %d times, expected 1", expensiveCalls)
	}
}

func TestFormatSomePlainValues(t *testing.T) {
	t.Parallel()

	tmpl := tstring.MustNew(
		tstring.Interpolation{Value: "shown", Expr: "a", FormatSpec: "debug"},
		tstring.Literal(" "),
		tstring.Interpolation{Value: "hidden", Expr: "b"},
	)
	if got := tstring.FormatSome("debug", tmpl); got != "shown ***" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFormatSomeAppliesConversion(t *testing.T) {
	t.Parallel()

	tmpl := tstring.MustNew(
		tstring.Interpolation{Value: "x", Expr: "x", Conv: tstring.ConvRepr, FormatSpec: "debug"},
	)
	if got := tstring.FormatSome("debug", tmpl); got != `"x"` {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFormatSomeWithPlaceholder(t *testing.T) {
	t.Parallel()

	tmpl := tstring.MustNew(
		tstring.Literal("secret: "),
		tstring.Interpolation{Value: "hunter2", Expr: "password"},
	)
	got := tstring.FormatSome("debug", tmpl, tstring.WithPlaceholder("[redacted]"))
	if got != "secret: [redacted]" {
		t.Errorf("unexpected output %q", got)
	}
}
