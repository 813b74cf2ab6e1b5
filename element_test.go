package tstring_test

import (
	"errors"
	"testing"

	"impractical.co/tstring"
)

func TestElementString(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		element tstring.Element
		want    string
	}{
		"empty": {
			element: tstring.Empty(),
			want:    "",
		},
		"childless": {
			element: tstring.Element{Tag: "br"},
			want:    "<br />",
		},
		"childless with attributes": {
			element: tstring.Element{
				Tag:        "img",
				Attributes: tstring.Attrs{{Key: "src", Value: "x.png"}},
			},
			want: `<img src="x.png" />`,
		},
		"text child": {
			element: tstring.Element{Tag: "p", Children: []tstring.Child{tstring.Text("hi")}},
			want:    "<p>hi</p>",
		},
		"text child escaped": {
			element: tstring.Element{Tag: "p", Children: []tstring.Child{tstring.Text("a < b & c")}},
			want:    "<p>a &lt; b &amp; c</p>",
		},
		"attribute value escaped": {
			element: tstring.Element{
				Tag:        "div",
				Attributes: tstring.Attrs{{Key: "class", Value: `greeting" onclick="alert("hi")`}},
			},
			want: `<div class="greeting&quot; onclick=&quot;alert(&quot;hi&quot;)" />`,
		},
		"boolean attribute": {
			element: tstring.Element{
				Tag:        "input",
				Attributes: tstring.Attrs{{Key: "type", Value: "checkbox"}, {Key: "checked", Flag: true}},
			},
			want: `<input type="checkbox" checked />`,
		},
		"nested elements": {
			element: tstring.Element{Tag: "div", Children: []tstring.Child{
				tstring.Element{Tag: "p", Children: []tstring.Child{tstring.Text("one")}},
				tstring.Element{Tag: "p", Children: []tstring.Child{tstring.Text("two")}},
			}},
			want: "<div><p>one</p><p>two</p></div>",
		},
		"fragment": {
			element: tstring.Fragment(
				tstring.Element{Tag: "p", Children: []tstring.Child{tstring.Text("one")}},
				tstring.Text("two"),
			),
			want: "<p>one</p>two",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.element.String(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNewElementFragmentAttributes(t *testing.T) {
	t.Parallel()

	_, err := tstring.NewElement("", tstring.Attrs{{Key: "class", Value: "x"}})
	if !errors.Is(err, tstring.ErrFragmentAttributes) {
		t.Fatalf("expected ErrFragmentAttributes, got %v", err)
	}
}

func TestAttrsGet(t *testing.T) {
	t.Parallel()

	attrs := tstring.Attrs{{Key: "class", Value: "x"}, {Key: "checked", Flag: true}}
	if got, ok := attrs.Get("class"); !ok || got != "x" {
		t.Errorf("Get(class) = %q, %v", got, ok)
	}
	if got, ok := attrs.Get("checked"); !ok || got != "" {
		t.Errorf("Get(checked) = %q, %v", got, ok)
	}
	if _, ok := attrs.Get("missing"); ok {
		t.Error("Get(missing) reported presence")
	}
}

func TestElementEqual(t *testing.T) {
	t.Parallel()

	a := tstring.Element{Tag: "div", Attributes: tstring.Attrs{{Key: "class", Value: "x"}},
		Children: []tstring.Child{tstring.Text("hi")}}
	b := tstring.Element{Tag: "div", Attributes: tstring.Attrs{{Key: "class", Value: "x"}},
		Children: []tstring.Child{tstring.Text("hi")}}
	if !a.Equal(b) {
		t.Error("identical elements compared unequal")
	}

	c := b
	c.Tag = "span"
	if a.Equal(c) {
		t.Error("elements with different tags compared equal")
	}

	d := tstring.Element{Tag: "div", Attributes: tstring.Attrs{{Key: "class", Value: "y"}},
		Children: []tstring.Child{tstring.Text("hi")}}
	if a.Equal(d) {
		t.Error("elements with different attributes compared equal")
	}

	e := tstring.Element{Tag: "div", Attributes: tstring.Attrs{{Key: "class", Value: "x"}},
		Children: []tstring.Child{tstring.Text("bye")}}
	if a.Equal(e) {
		t.Error("elements with different children compared equal")
	}
}
