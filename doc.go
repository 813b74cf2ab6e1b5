// Package tstring models tagged template strings: a literal string with
// embedded expressions, decomposed into an ordered sequence of literal text
// segments and Interpolations. Each Interpolation carries the computed value
// of its expression, the source text of the expression as written, an
// optional conversion tag, and a format spec.
//
// tstring is organized around the Template type and a family of consumers
// that all iterate it through the same Parts contract. F renders a Template
// to a string, exactly as if the values had been formatted inline. AFormat
// does the same but resolves callable values first, one at a time, in
// template order. FromFormat parses an old-style "{field}" format string
// plus its arguments into an equivalent Template. FormatSome renders only
// the interpolations whose format spec matches a selector, leaving the rest
// uninvoked. Formatter and Binder treat interpolation values as names to be
// resolved later against a map. Message exposes a Template to structured
// logging as a rendered message plus an expression-to-value mapping. HTML
// parses a Template as HTML markup and produces an Element tree, dispatching
// each interpolation on its value's kind and on whether the parser is
// currently inside a start tag.
//
// A Template is immutable once constructed. Its parts always alternate:
// the sequence starts and ends with a literal (possibly empty), and no two
// literals or two interpolations are ever adjacent. New repairs any input
// that violates this, merging adjacent literals and synthesizing empty ones,
// so every consumer can rely on the canonical shape.
//
// In a language with tagged template literals the compiler would construct
// Templates from source syntax like t"Hello {name}". Here they're built
// with New, or by FromFormat, or by Binder.Bind. Raw literals (where
// backslash escapes are not interpreted) correspond to building a Template
// from Go backquoted strings; the model itself never interprets escapes.
package tstring
