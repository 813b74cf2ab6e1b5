package tstring_test

import (
	"strings"
	"testing"

	"impractical.co/tstring"
)

func TestElementNode(t *testing.T) {
	t.Parallel()

	el := tstring.Element{
		Tag:        "div",
		Attributes: tstring.Attrs{{Key: "class", Value: "greeting"}},
		Children: []tstring.Child{
			tstring.Text("Hello, "),
			tstring.Element{Tag: "em", Children: []tstring.Child{tstring.Text("world")}},
		},
	}
	var b strings.Builder
	if err := el.Node().Render(&b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="greeting">Hello, <em>world</em></div>`
	if b.String() != want {
		t.Errorf("expected %q, got %q", want, b.String())
	}
}

func TestElementNodeBooleanAttribute(t *testing.T) {
	t.Parallel()

	el := tstring.Element{
		Tag:        "input",
		Attributes: tstring.Attrs{{Key: "type", Value: "checkbox"}, {Key: "checked", Flag: true}},
	}
	var b strings.Builder
	if err := el.Node().Render(&b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<input type="checkbox" checked>`
	if b.String() != want {
		t.Errorf("expected %q, got %q", want, b.String())
	}
}

func TestElementNodeFragment(t *testing.T) {
	t.Parallel()

	el := tstring.Fragment(
		tstring.Element{Tag: "p", Children: []tstring.Child{tstring.Text("one")}},
		tstring.Text("two"),
	)
	var b strings.Builder
	if err := el.Node().Render(&b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<p>one</p>two"
	if b.String() != want {
		t.Errorf("expected %q, got %q", want, b.String())
	}
}
