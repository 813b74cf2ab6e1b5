package tstring_test

import (
	"context"
	"errors"
	"testing"

	"impractical.co/tstring"
)

func TestAFormatResolvesCallables(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tmpl := tstring.MustNew(
		tstring.Literal("a="),
		tstring.Interpolation{Value: func(_ context.Context) (any, error) { return "async", nil }, Expr: "a"},
		tstring.Literal(" b="),
		tstring.Interpolation{Value: func() any { return "sync" }, Expr: "b"},
		tstring.Literal(" c="),
		tstring.Interpolation{Value: "plain", Expr: "c"},
	)
	got, err := tstring.AFormat(ctx, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a=async b=sync c=plain" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestAFormatResolvesSequentially(t *testing.T) {
	t.Parallel()

	var order []string
	record := func(name string) func(context.Context) (any, error) {
		return func(_ context.Context) (any, error) {
			order = append(order, name)
			return name, nil
		}
	}
	tmpl := tstring.MustNew(
		tstring.Interpolation{Value: record("first"), Expr: "first"},
		tstring.Interpolation{Value: record("second"), Expr: "second"},
		tstring.Interpolation{Value: record("third"), Expr: "third"},
	)
	got, err := tstring.AFormat(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "firstsecondthird" {
		t.Errorf("unexpected output %q", got)
	}
	for i, want := range []string{"first", "second", "third"} {
		if order[i] != want {
			t.Fatalf("resolution %d was %q, expected %q", i, order[i], want)
		}
	}
}

func TestAFormatErrorAbortsRender(t *testing.T) {
	t.Parallel()

	boom := errors.New("resolution failed")
	invoked := false
	tmpl := tstring.MustNew(
		tstring.Interpolation{Value: func(_ context.Context) (any, error) { return nil, boom }, Expr: "bad"},
		tstring.Interpolation{Value: func() any { invoked = true; return "never" }, Expr: "next"},
	)
	_, err := tstring.AFormat(context.Background(), tmpl)
	if !errors.Is(err, boom) {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if invoked {
		t.Error("interpolation after the failing one was resolved")
	}
}

func TestAFormatAppliesConversionAndSpec(t *testing.T) {
	t.Parallel()

	tmpl := tstring.MustNew(
		tstring.Interpolation{
			Value:      func() any { return 3.14159 },
			Expr:       "pi",
			FormatSpec: ".2f",
		},
	)
	got, err := tstring.AFormat(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "3.14" {
		t.Errorf("expected %q, got %q", "3.14", got)
	}
}
