package wikitext

import (
	"strconv"
	"strings"
)

// Node is a piece of parsed markup. Raw returns the exact source text the
// node was parsed from.
type Node interface {
	Raw() string
}

// Text is a run of literal text.
type Text struct {
	Value string

	// sep marks an '=' token, which may split a template parameter.
	sep bool
}

// Raw returns the text.
func (t *Text) Raw() string { return t.Value }

// Comment is an HTML comment, including its delimiters.
type Comment struct {
	Value string
}

// Raw returns the comment source.
func (c *Comment) Raw() string { return c.Value }

// Tag is an HTML-style tag. Self-closing and opaque tags carry their full
// source in Open and have no contents.
type Tag struct {
	Name     string
	Open     string
	Contents []Node
	Close    string
}

// Raw returns the tag source.
func (t *Tag) Raw() string {
	return t.Open + rawOf(t.Contents) + t.Close
}

// Wikilink is a [[target|label]] link.
type Wikilink struct {
	Contents []Node
}

// Raw returns the link source.
func (w *Wikilink) Raw() string {
	return "[[" + rawOf(w.Contents) + "]]"
}

// Title returns the link target (the part before the first pipe).
func (w *Wikilink) Title() string {
	title, _, _ := strings.Cut(rawOf(w.Contents), "|")
	return strings.TrimSpace(title)
}

// Template is a {{name|param|key=value}} transclusion.
type Template struct {
	NameNodes []Node
	Params    []*Param
}

// Raw returns the template source.
func (t *Template) Raw() string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(rawOf(t.NameNodes))
	for _, p := range t.Params {
		b.WriteByte('|')
		b.WriteString(p.Raw())
	}
	b.WriteString("}}")
	return b.String()
}

// Name returns the raw template name, untrimmed.
func (t *Template) Name() string {
	return rawOf(t.NameNodes)
}

// Get returns the last parameter whose trimmed name equals the trimmed key.
func (t *Template) Get(key string) (*Param, bool) {
	key = strings.TrimSpace(key)
	for i := len(t.Params) - 1; i >= 0; i-- {
		if strings.TrimSpace(t.Params[i].Name) == key {
			return t.Params[i], true
		}
	}
	return nil, false
}

// Has reports whether a parameter named key exists.
func (t *Template) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Param is one template parameter.
type Param struct {
	// Name is the raw key for named parameters, or the position ("1", "2", ...)
	// for unnamed ones.
	Name string
	// Value is the raw source of the value, untrimmed.
	Value string
	// Showkey is true when the key was written out (key=value).
	Showkey bool

	ValueNodes []Node
}

// Raw returns the parameter source as written.
func (p *Param) Raw() string {
	if p.Showkey {
		return p.Name + "=" + p.Value
	}
	return p.Value
}

// newParam splits nodes at the first top-level '=' into key and value.
// positional counts unnamed parameters seen so far in the template.
func newParam(nodes []Node, positional *int) *Param {
	for i, n := range nodes {
		if t, ok := n.(*Text); ok && t.sep {
			value := nodes[i+1:]
			return &Param{
				Name:       rawOf(nodes[:i]),
				Value:      rawOf(value),
				Showkey:    true,
				ValueNodes: value,
			}
		}
	}
	*positional++
	return &Param{
		Name:       strconv.Itoa(*positional),
		Value:      rawOf(nodes),
		ValueNodes: nodes,
	}
}

func rawOf(nodes []Node) string {
	switch len(nodes) {
	case 0:
		return ""
	case 1:
		return nodes[0].Raw()
	}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Raw())
	}
	return b.String()
}
