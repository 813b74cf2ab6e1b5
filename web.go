package tstring

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

// Component is a callable interpolation value in an HTML template. When a
// template uses a Component where a tag name would go, HTML records it,
// parses the subtree under a placeholder tag, and then invokes the
// Component with the parsed attributes and fully resolved children,
// splicing the Element it returns into the tree.
type Component func(attrs Attrs, children []Child) Element

// HTML parses a Template as HTML markup and returns the Element tree it
// describes. Literal parts are fed to the tokenizer verbatim, as raw HTML
// syntax. Interpolation values are serialized and fed based on their kind
// and on where the parser currently is:
//
//   - inside a start tag, an Attrs or map value becomes a run of
//     attributes, and a string becomes a quoted, escaped attribute value
//   - in content position, an Element is spliced in without re-escaping, a
//     *Template is recursively parsed and spliced, a string is escaped as
//     text, and a Component is registered for the post-parse resolution
//     pass
//
// Any other value type, in either position, is a *ParseError. So is
// markup that doesn't reduce to exactly one root element: an empty
// template, text with no tags, multiple roots, a mismatched end tag, or
// text outside any open element.
func HTML(ctx context.Context, t *Template) (Element, error) {
	ctx, span := tracer.Start(ctx, "tstring.HTML", trace.WithAttributes(
		attribute.Int("template.interpolations", len(t.interps)),
	))
	defer span.End()

	root, err := buildTree(ctx, t)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Element{}, err
	}
	return root, nil
}

func buildTree(ctx context.Context, t *Template) (Element, error) {
	log := logger(ctx)
	parser := &templateParser{log: log}
	components := map[string]Component{}

	for i, lit := range t.text {
		parser.feed(lit)
		if i < len(t.interps) {
			chunk, err := serializeInterpolation(ctx, parser, t.interps[i], components)
			if err != nil {
				return Element{}, err
			}
			parser.feed(chunk)
		}
	}

	root, err := parser.close()
	if err != nil {
		return Element{}, err
	}
	log.DebugContext(ctx, "parsed html template", "root", root.Tag, "components", len(components))
	if len(components) > 0 {
		root = invokeComponents(root, components)
	}
	return root, nil
}

// serializeInterpolation decides, from the value's kind and the parser's
// position, what text stands in for an interpolation. Dispatch is a closed
// match over the kinds classify recognizes; it lives here and nowhere
// else.
func serializeInterpolation(ctx context.Context, parser *templateParser, it Interpolation, components map[string]Component) (string, error) {
	if parser.inStartTag() {
		switch classify(it.Value) {
		case kindAttrMap:
			attrs, _ := attrsFromValue(it.Value)
			return attrs.render(), nil
		case kindText:
			// assumed to sit in attribute-value position within the tag
			return `"` + attrEscaper.Replace(it.Value.(string)) + `"`, nil
		}
		return "", parseErrorf("unsupported start tag interpolation type %T", it.Value)
	}
	switch classify(it.Value) {
	case kindComponent:
		name := componentName(it.Expr)
		components[name] = asComponent(it.Value)
		return name, nil
	case kindNode:
		// already-safe: serialized without re-escaping
		return it.Value.(Element).String(), nil
	case kindSubTemplate:
		sub, err := buildTree(ctx, it.Value.(*Template))
		if err != nil {
			return "", err
		}
		return sub.String(), nil
	case kindText:
		return textEscaper.Replace(it.Value.(string)), nil
	}
	return "", parseErrorf("unsupported content interpolation type %T", it.Value)
}

// valueKind is the closed set of interpolation value capabilities the HTML
// engine understands.
type valueKind int

const (
	kindUnknown valueKind = iota
	kindText
	kindAttrMap
	kindNode
	kindSubTemplate
	kindComponent
)

// classify is the single classification point for interpolation values;
// position-specific dispatch builds on it rather than scattering type
// switches.
func classify(value any) valueKind {
	switch value.(type) {
	case string:
		return kindText
	case Attrs, map[string]any, map[string]string:
		return kindAttrMap
	case Element:
		return kindNode
	case *Template:
		return kindSubTemplate
	case Component, func(Attrs, []Child) Element:
		return kindComponent
	}
	return kindUnknown
}

func asComponent(value any) Component {
	switch fn := value.(type) {
	case Component:
		return fn
	case func(Attrs, []Child) Element:
		return fn
	}
	return nil
}

var (
	slugStrip    = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// componentName slugifies a component interpolation's expression text into
// a placeholder tag name. The same expression always maps to the same
// name, so a component's start and end tags pair up. Distinct expressions
// that slug identically would collide; that's a documented limitation of
// name-based placeholders, not something this relies on being foolproof.
func componentName(expr string) string {
	cleaned := slugCollapse.ReplaceAllString(slugStrip.ReplaceAllString(expr, ""), "-")
	cleaned = strings.ToLower(strings.Trim(cleaned, "-"))
	return "component-" + cleaned + "-component"
}

// invokeComponents walks the finished tree bottom-up, replacing every
// element whose tag names a registered component with that component's
// output, so components always receive fully resolved children.
func invokeComponents(el Element, components map[string]Component) Element {
	children := make([]Child, 0, len(el.Children))
	for _, child := range el.Children {
		if sub, ok := child.(Element); ok {
			children = append(children, invokeComponents(sub, components))
			continue
		}
		children = append(children, child)
	}
	if component, ok := components[el.Tag]; ok {
		return component(el.Attributes, children)
	}
	return Element{Tag: el.Tag, Attributes: el.Attributes, Children: children}
}

// scanState tracks where in the HTML grammar the fed text currently sits.
// The tokenizer doesn't expose "inside an unterminated start tag", and the
// engine needs exactly that to decide how to serialize an interpolation,
// so the wrapper tracks it itself over everything fed.
type scanState int

const (
	scanContent scanState = iota
	scanLT                // just consumed "<", not yet committed to a tag
	scanTag               // inside a start tag
	scanTagSQ             // inside a single-quoted attribute value
	scanTagDQ             // inside a double-quoted attribute value
	scanEnd               // inside an end tag, comment, or declaration
)

// templateParser is the push side of the engine: feed accepts raw HTML
// text incrementally, close tokenizes everything fed and builds the tree.
// Its state is private to one HTML invocation.
type templateParser struct {
	buf   bytes.Buffer
	state scanState
	log   *slog.Logger
}

func (p *templateParser) feed(s string) {
	p.buf.WriteString(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch p.state {
		case scanContent:
			if c == '<' {
				p.state = scanLT
			}
		case scanLT:
			switch {
			case isTagNameStart(c):
				p.state = scanTag
			case c == '/' || c == '!' || c == '?':
				p.state = scanEnd
			case c == '<':
				// still undecided
			default:
				p.state = scanContent
			}
		case scanTag:
			switch c {
			case '>':
				p.state = scanContent
			case '"':
				p.state = scanTagDQ
			case '\'':
				p.state = scanTagSQ
			}
		case scanTagDQ:
			if c == '"' {
				p.state = scanTag
			}
		case scanTagSQ:
			if c == '\'' {
				p.state = scanTag
			}
		case scanEnd:
			if c == '>' {
				p.state = scanContent
			}
		}
	}
}

// inStartTag reports whether the last fed byte left the parser inside an
// unterminated start tag. A bare "<" with nothing after it doesn't count:
// the next interpolation may still become the tag name.
func (p *templateParser) inStartTag() bool {
	return p.state == scanTag || p.state == scanTagSQ || p.state == scanTagDQ
}

func isTagNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// close tokenizes the fed text and builds the Element tree: a start tag
// pushes a frame, an end tag pops its frame and appends it to the new top
// (or finishes the root), non-blank text appends to the open frame.
func (p *templateParser) close() (Element, error) {
	z := html.NewTokenizer(&p.buf)
	var root *Element
	var stack []Element
	for {
		if z.Next() == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return Element{}, parseErrorf("tokenizer: %v", z.Err())
		}
		tok := z.Token()
		switch tok.Type {
		case html.StartTagToken:
			if root != nil {
				return Element{}, parseErrorf("multiple root elements (%s and %s)", root.Tag, tok.Data)
			}
			p.log.Debug("start tag", "tag", tok.Data)
			stack = append(stack, Element{Tag: tok.Data, Attributes: attrsFromTokens(tok.Attr)})
		case html.SelfClosingTagToken:
			if root != nil {
				return Element{}, parseErrorf("multiple root elements (%s and %s)", root.Tag, tok.Data)
			}
			p.log.Debug("self-closing tag", "tag", tok.Data)
			el := Element{Tag: tok.Data, Attributes: attrsFromTokens(tok.Attr)}
			if len(stack) == 0 {
				root = &el
			} else {
				stack[len(stack)-1] = stack[len(stack)-1].withChild(el)
			}
		case html.EndTagToken:
			if len(stack) == 0 {
				return Element{}, parseErrorf("unexpected end tag: %s", tok.Data)
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if el.Tag != tok.Data {
				return Element{}, parseErrorf("unexpected end tag: %s", tok.Data)
			}
			p.log.Debug("end tag", "tag", tok.Data)
			if len(stack) == 0 {
				root = &el
			} else {
				stack[len(stack)-1] = stack[len(stack)-1].withChild(el)
			}
		case html.TextToken:
			data := strings.TrimSpace(tok.Data)
			if data == "" {
				continue
			}
			if len(stack) == 0 {
				return Element{}, parseErrorf("data outside of root element: %s", data)
			}
			stack[len(stack)-1] = stack[len(stack)-1].withChild(Text(data))
		}
	}
	if root == nil {
		return Element{}, parseErrorf("no root element")
	}
	return *root, nil
}

func attrsFromTokens(attrs []html.Attribute) Attrs {
	if len(attrs) == 0 {
		return nil
	}
	out := make(Attrs, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Val == "" {
			// the tokenizer doesn't distinguish key="" from a bare
			// key; treat both as boolean presence
			out = append(out, Attr{Key: attr.Key, Flag: true})
			continue
		}
		out = append(out, Attr{Key: attr.Key, Value: attr.Val})
	}
	return out
}
