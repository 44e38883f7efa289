package wikitext

import (
	"errors"
	"fmt"
)

// MaxDepth is the deepest nesting of templates, links and tags the parser
// accepts.
const MaxDepth = 100

// ErrTooDeep is returned when markup nests deeper than the parser allows.
var ErrTooDeep = errors.New("wikitext: markup nested too deeply")

// frame identifies the construct currently being parsed, which decides
// the tokens that end a run of nodes.
type frame int

const (
	frameRoot frame = iota
	frameTemplate
	frameLink
	frameTag
)

// Document is the parse result for one page of markup. It is immutable.
type Document struct {
	Nodes  []Node
	source string
}

// Source returns the markup the document was parsed from.
func (d *Document) Source() string {
	return d.source
}

// String returns the document re-serialized from its nodes.
func (d *Document) String() string {
	return rawOf(d.Nodes)
}

// Templates returns every template in document order. A template is listed
// before the templates nested in its name or parameters.
func (d *Document) Templates() []*Template {
	var out []*Template
	walkTemplates(d.Nodes, func(t *Template) {
		out = append(out, t)
	})
	return out
}

func walkTemplates(nodes []Node, fn func(*Template)) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Template:
			fn(v)
			walkTemplates(v.NameNodes, fn)
			for _, p := range v.Params {
				walkTemplates(p.ValueNodes, fn)
			}
		case *Wikilink:
			walkTemplates(v.Contents, fn)
		case *Tag:
			walkTemplates(v.Contents, fn)
		}
	}
}

// Parser parses wiki markup into a Document. It works on the full token
// slice so an unclosed construct can be rewound and re-read as text.
type Parser struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int

	// bad records opening tokens already known not to close. A construct
	// ends the same way wherever it is nested, so each is tried once.
	bad map[int]bool
}

// NewParser creates a parser for src.
func NewParser(src string) *Parser {
	return &Parser{
		tokens:   Tokenize(src),
		maxDepth: MaxDepth,
		bad:      make(map[int]bool),
	}
}

// Parse parses src into a Document.
func Parse(src string) (*Document, error) {
	p := NewParser(src)
	nodes, _, err := p.parseNodes(frameRoot, "")
	if err != nil {
		return nil, err
	}
	return &Document{Nodes: nodes, source: src}, nil
}

// peek returns the current token. The trailing EOF token is never consumed.
func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) enter(tok Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return fmt.Errorf("%w: more than %d levels at offset %d", ErrTooDeep, p.maxDepth, tok.Pos)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseNodes reads nodes until a token that ends fr. The ending token is
// returned but not consumed.
func (p *Parser) parseNodes(fr frame, tagName string) ([]Node, Token, error) {
	var nodes []Node
	for {
		tok := p.peek()
		switch tok.Type {
		case TokenEOF:
			return nodes, tok, nil

		case TokenTemplateOpen:
			n, err := p.parseTemplate()
			if err != nil {
				return nil, tok, err
			}
			nodes = append(nodes, n)
			continue

		case TokenLinkOpen:
			n, err := p.parseLink()
			if err != nil {
				return nil, tok, err
			}
			nodes = append(nodes, n)
			continue

		case TokenTagOpen:
			n, err := p.parseTag()
			if err != nil {
				return nil, tok, err
			}
			nodes = append(nodes, n)
			continue

		case TokenTemplateClose:
			if fr != frameRoot {
				return nodes, tok, nil
			}

		case TokenPipe:
			if fr == frameTemplate {
				return nodes, tok, nil
			}

		case TokenLinkClose:
			if fr == frameLink || fr == frameTag {
				return nodes, tok, nil
			}

		case TokenTagClose:
			if fr == frameTag && tok.Tag == tagName {
				return nodes, tok, nil
			}

		case TokenComment:
			p.pos++
			nodes = append(nodes, &Comment{Value: tok.Value})
			continue

		case TokenTagSelfClosing:
			p.pos++
			nodes = append(nodes, &Tag{Name: tok.Tag, Open: tok.Value})
			continue
		}

		// Everything that falls through is literal text.
		p.pos++
		nodes = append(nodes, &Text{Value: tok.Value, sep: tok.Type == TokenEquals})
	}
}

// parseTemplate parses {{name|params}}. An unterminated template rewinds
// and yields its opening braces as text.
func (p *Parser) parseTemplate() (Node, error) {
	start := p.pos
	open := p.peek()
	if p.bad[start] {
		p.pos++
		return &Text{Value: open.Value}, nil
	}
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++

	name, end, err := p.parseNodes(frameTemplate, "")
	if err != nil {
		return nil, err
	}

	t := &Template{NameNodes: name}
	positional := 0
	for end.Type == TokenPipe {
		p.pos++
		var nodes []Node
		nodes, end, err = p.parseNodes(frameTemplate, "")
		if err != nil {
			return nil, err
		}
		t.Params = append(t.Params, newParam(nodes, &positional))
	}

	if end.Type != TokenTemplateClose {
		p.bad[start] = true
		p.pos = start + 1
		return &Text{Value: open.Value}, nil
	}
	p.pos++
	return t, nil
}

// parseLink parses [[target|label]].
func (p *Parser) parseLink() (Node, error) {
	start := p.pos
	open := p.peek()
	if p.bad[start] {
		p.pos++
		return &Text{Value: open.Value}, nil
	}
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++

	contents, end, err := p.parseNodes(frameLink, "")
	if err != nil {
		return nil, err
	}
	if end.Type != TokenLinkClose {
		p.bad[start] = true
		p.pos = start + 1
		return &Text{Value: open.Value}, nil
	}
	p.pos++
	return &Wikilink{Contents: contents}, nil
}

// parseTag parses <name>contents</name>. A tag with no matching close is
// kept as a lone opening tag.
func (p *Parser) parseTag() (Node, error) {
	start := p.pos
	open := p.peek()
	if p.bad[start] {
		p.pos++
		return &Tag{Name: open.Tag, Open: open.Value}, nil
	}
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++

	contents, end, err := p.parseNodes(frameTag, open.Tag)
	if err != nil {
		return nil, err
	}
	if end.Type != TokenTagClose || end.Tag != open.Tag {
		p.bad[start] = true
		p.pos = start + 1
		return &Tag{Name: open.Tag, Open: open.Value}, nil
	}
	p.pos++
	return &Tag{Name: open.Tag, Open: open.Value, Contents: contents, Close: end.Value}, nil
}
