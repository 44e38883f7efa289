// Package wikitext provides a lexer and parser for MediaWiki markup.
//
// The parser understands just enough of the markup to extract templates
// reliably: template transclusions ({{...}}), wiki links ([[...]]), HTML-style
// tags and comments. Everything else is kept as literal text, so the raw
// source of any node can be recovered exactly.
//
// # Parsing
//
// [Parse] tokenizes the input with a [Lexer] and builds a [Document]:
//
//	doc, err := wikitext.Parse(src)
//	if err != nil {
//	    // only pathological nesting fails to parse
//	}
//	for _, t := range doc.Templates() {
//	    fmt.Println(t.Name())
//	}
//
// Constructs that are opened but never closed (an unbalanced "{{" or "[[",
// an unclosed <span>) fall back to literal text, the way MediaWiki itself
// renders them. The only fatal condition is nesting deeper than [MaxDepth],
// reported as [ErrTooDeep].
//
// # Templates
//
// A [Template] holds its name and an ordered list of [Param] values.
// Unnamed parameters are numbered "1", "2", ... in order of appearance.
// [Template.Get] returns the last parameter with a given name, mirroring
// how MediaWiki resolves duplicate keys.
//
// [Document.Templates] walks the tree in document order, listing each
// template before the templates nested inside it.
package wikitext
