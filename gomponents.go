package tstring

import (
	g "maragu.dev/gomponents"
)

// Node lowers the Element tree to a gomponents Node, so trees produced by
// HTML can be composed with hand-written gomponents views and rendered
// through their io.Writer pipeline. Fragments lower to a Group; boolean
// attributes lower to bare Attr nodes.
//
// Note that gomponents applies its own rendering rules, so Node output can
// differ from Element.String in details like void-element syntax.
func (e Element) Node() g.Node {
	if e.Tag == "" {
		return g.Group(childNodes(e.Children))
	}
	args := make([]g.Node, 0, len(e.Attributes)+len(e.Children))
	for _, attr := range e.Attributes {
		if attr.Flag {
			args = append(args, g.Attr(attr.Key))
			continue
		}
		args = append(args, g.Attr(attr.Key, attr.Value))
	}
	args = append(args, childNodes(e.Children)...)
	return g.El(e.Tag, args...)
}

func childNodes(children []Child) []g.Node {
	nodes := make([]g.Node, 0, len(children))
	for _, child := range children {
		switch c := child.(type) {
		case Text:
			nodes = append(nodes, g.Text(string(c)))
		case Element:
			nodes = append(nodes, c.Node())
		}
	}
	return nodes
}
