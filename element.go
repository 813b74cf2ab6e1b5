package tstring

import (
	"fmt"
	"sort"
	"strings"
)

var (
	// text children escape the bare minimum to stay inert in content
	// position; attribute values additionally escape double quotes so
	// they can't break out of the quoted value
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Attr is one attribute on an Element: either a key with a string value,
// or a bare boolean-presence key (Flag set, Value ignored).
type Attr struct {
	Key   string
	Value string
	Flag  bool
}

// Attrs is an ordered list of attributes. Order is preserved through
// parsing and serialization.
type Attrs []Attr

// Get returns the value of the named attribute. A boolean-presence
// attribute returns "" and true.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// render serializes the attributes as they appear inside a start tag,
// without surrounding whitespace.
func (a Attrs) render() string {
	parts := make([]string, 0, len(a))
	for _, attr := range a {
		if attr.Flag {
			parts = append(parts, attr.Key)
			continue
		}
		parts = append(parts, attr.Key+`="`+attrEscaper.Replace(attr.Value)+`"`)
	}
	return strings.Join(parts, " ")
}

// Child is one child of an Element: either Text or a nested Element.
type Child interface {
	child()
}

// Text is a literal text child. It is stored unescaped and escaped at
// serialization time.
type Text string

func (Text) child() {}

func (Element) child() {}

// Element is an immutable HTML tree node. An empty Tag denotes a fragment:
// a transparent grouping node that serializes as its children with no
// wrapper markup.
type Element struct {
	Tag        string
	Attributes Attrs
	Children   []Child
}

// NewElement constructs an Element, rejecting fragments with attributes.
func NewElement(tag string, attrs Attrs, children ...Child) (Element, error) {
	if tag == "" && len(attrs) > 0 {
		return Element{}, ErrFragmentAttributes
	}
	return Element{Tag: tag, Attributes: attrs, Children: children}, nil
}

// Empty returns an element with no tag, attributes, or children. It
// serializes to "".
func Empty() Element {
	return Element{}
}

// Fragment returns an element with no tag, grouping children without
// wrapper markup.
func Fragment(children ...Child) Element {
	return Element{Children: children}
}

// withChild returns a copy of the element with one more child. Elements
// are never mutated in place; the parser's stack discipline composes with
// this by replacing frames as it builds.
func (e Element) withChild(child Child) Element {
	children := make([]Child, 0, len(e.Children)+1)
	children = append(children, e.Children...)
	children = append(children, child)
	return Element{Tag: e.Tag, Attributes: e.Attributes, Children: children}
}

// String renders the element to an HTML string. Fragments render as their
// children concatenated. An element without children renders self-closing.
// Text children are escaped; nested elements render recursively without
// re-escaping.
func (e Element) String() string {
	if e.Tag == "" {
		return renderChildren(e.Children)
	}
	attrs := e.Attributes.render()
	if len(e.Children) == 0 {
		if attrs != "" {
			return "<" + e.Tag + " " + attrs + " />"
		}
		return "<" + e.Tag + " />"
	}
	children := renderChildren(e.Children)
	if attrs != "" {
		return "<" + e.Tag + " " + attrs + ">" + children + "</" + e.Tag + ">"
	}
	return "<" + e.Tag + ">" + children + "</" + e.Tag + ">"
}

// Equal reports whether two elements have the same tag, the same
// attributes in the same order, and recursively equal children.
func (e Element) Equal(other Element) bool {
	if e.Tag != other.Tag {
		return false
	}
	if len(e.Attributes) != len(other.Attributes) {
		return false
	}
	for i, attr := range e.Attributes {
		if attr != other.Attributes[i] {
			return false
		}
	}
	if len(e.Children) != len(other.Children) {
		return false
	}
	for i, child := range e.Children {
		switch c := child.(type) {
		case Text:
			o, ok := other.Children[i].(Text)
			if !ok || c != o {
				return false
			}
		case Element:
			o, ok := other.Children[i].(Element)
			if !ok || !c.Equal(o) {
				return false
			}
		}
	}
	return true
}

func renderChildren(children []Child) string {
	var b strings.Builder
	for _, child := range children {
		switch c := child.(type) {
		case Text:
			b.WriteString(textEscaper.Replace(string(c)))
		case Element:
			b.WriteString(c.String())
		}
	}
	return b.String()
}

// attrsFromValue converts an attribute-map interpolation value to Attrs.
// Attrs pass through with their order intact; plain maps serialize in
// sorted key order, since Go maps don't carry one. A true value is a bare
// boolean attribute, a false value is omitted entirely, and a nil value is
// treated as bare presence.
func attrsFromValue(value any) (Attrs, bool) {
	switch m := value.(type) {
	case Attrs:
		return m, true
	case map[string]string:
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		attrs := make(Attrs, 0, len(m))
		for _, key := range keys {
			attrs = append(attrs, Attr{Key: key, Value: m[key]})
		}
		return attrs, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		attrs := make(Attrs, 0, len(m))
		for _, key := range keys {
			switch v := m[key].(type) {
			case string:
				attrs = append(attrs, Attr{Key: key, Value: v})
			case bool:
				if v {
					attrs = append(attrs, Attr{Key: key, Flag: true})
				}
			case nil:
				attrs = append(attrs, Attr{Key: key, Flag: true})
			default:
				attrs = append(attrs, Attr{Key: key, Value: fmt.Sprint(v)})
			}
		}
		return attrs, true
	}
	return nil, false
}
