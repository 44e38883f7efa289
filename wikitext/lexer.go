package wikitext

import (
	"strings"

	"golang.org/x/net/html"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF            TokenType = iota
	TokenText                     // plain text run
	TokenTemplateOpen             // {{
	TokenTemplateClose            // }}
	TokenLinkOpen                 // [[
	TokenLinkClose                // ]]
	TokenPipe                     // |
	TokenEquals                   // =
	TokenComment                  // <!-- ... -->
	TokenTagOpen                  // <ref name="x">
	TokenTagClose                 // </ref>
	TokenTagSelfClosing           // <br/>, or a whole <nowiki>...</nowiki> block
)

// String returns a readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenText:
		return "Text"
	case TokenTemplateOpen:
		return "TemplateOpen"
	case TokenTemplateClose:
		return "TemplateClose"
	case TokenLinkOpen:
		return "LinkOpen"
	case TokenLinkClose:
		return "LinkClose"
	case TokenPipe:
		return "Pipe"
	case TokenEquals:
		return "Equals"
	case TokenComment:
		return "Comment"
	case TokenTagOpen:
		return "TagOpen"
	case TokenTagClose:
		return "TagClose"
	case TokenTagSelfClosing:
		return "TagSelfClosing"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string // exact source text
	Tag   string // lowercased tag name for tag tokens
	Pos   int    // byte offset in the source
}

// knownTags lists the tags MediaWiki accepts in page source. Anything else
// that looks like a tag is plain text.
var knownTags = map[string]bool{
	"ref": true, "references": true, "nowiki": true, "pre": true, "math": true,
	"br": true, "hr": true, "small": true, "big": true, "sup": true, "sub": true,
	"span": true, "div": true, "s": true, "u": true, "b": true, "i": true,
	"center": true, "code": true, "tt": true, "del": true, "ins": true,
	"includeonly": true, "noinclude": true, "onlyinclude": true,
	"gallery": true, "poem": true, "source": true, "syntaxhighlight": true,
}

// opaqueTags have contents that are never parsed as markup.
var opaqueTags = map[string]bool{
	"nowiki": true, "pre": true, "math": true, "gallery": true,
	"source": true, "syntaxhighlight": true,
}

// voidTags never take a closing tag.
var voidTags = map[string]bool{
	"br": true, "hr": true,
}

// Lexer performs lexical analysis of wiki markup
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a new lexer
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize returns every token in src, terminated by a TokenEOF.
func Tokenize(src string) []Token {
	l := NewLexer(src)
	tokens := make([]Token, 0, len(src)/8+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.src) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	rest := l.src[l.pos:]
	switch {
	case strings.HasPrefix(rest, "{{"):
		return l.emit(TokenTemplateOpen, 2)
	case strings.HasPrefix(rest, "}}"):
		return l.emit(TokenTemplateClose, 2)
	case strings.HasPrefix(rest, "[["):
		return l.emit(TokenLinkOpen, 2)
	case strings.HasPrefix(rest, "]]"):
		return l.emit(TokenLinkClose, 2)
	case rest[0] == '|':
		return l.emit(TokenPipe, 1)
	case rest[0] == '=':
		return l.emit(TokenEquals, 1)
	case strings.HasPrefix(rest, "<!--"):
		// An unterminated comment runs to the end of the page.
		end := strings.Index(rest[4:], "-->")
		if end < 0 {
			return l.emit(TokenComment, len(rest))
		}
		return l.emit(TokenComment, 4+end+3)
	case rest[0] == '<':
		if tok, ok := l.readTag(); ok {
			return tok
		}
		return l.emit(TokenText, 1)
	}

	return l.readText()
}

// emit consumes n bytes as a token of type t.
func (l *Lexer) emit(t TokenType, n int) Token {
	tok := Token{Type: t, Value: l.src[l.pos : l.pos+n], Pos: l.pos}
	l.pos += n
	return tok
}

// readText reads a run of text up to the next markup boundary.
func (l *Lexer) readText() Token {
	end := l.pos + 1
	for end < len(l.src) && !l.isBoundary(end) {
		end++
	}
	return l.emit(TokenText, end-l.pos)
}

// isBoundary reports whether a token other than text may start at i.
func (l *Lexer) isBoundary(i int) bool {
	switch c := l.src[i]; c {
	case '|', '=', '<':
		return true
	case '{', '}', '[', ']':
		return i+1 < len(l.src) && l.src[i+1] == c
	}
	return false
}

// readTag recognizes an HTML-style tag at the current position. The tag
// text up to the first '>' is handed to the HTML tokenizer, which decides
// whether it is a start, end or self-closing tag and normalizes its name.
func (l *Lexer) readTag() (Token, bool) {
	rest := l.src[l.pos:]
	end := strings.IndexByte(rest, '>')
	if end < 0 {
		return Token{}, false
	}
	frag := rest[:end+1]
	if !tagShaped(frag) {
		return Token{}, false
	}

	z := html.NewTokenizer(strings.NewReader(frag))
	tt := z.Next()
	raw, _ := z.TagName()
	name := string(raw)
	if !knownTags[name] {
		return Token{}, false
	}

	switch tt {
	case html.SelfClosingTagToken:
		tok := l.emit(TokenTagSelfClosing, len(frag))
		tok.Tag = name
		return tok, true

	case html.EndTagToken:
		tok := l.emit(TokenTagClose, len(frag))
		tok.Tag = name
		return tok, true

	case html.StartTagToken:
		if voidTags[name] {
			tok := l.emit(TokenTagSelfClosing, len(frag))
			tok.Tag = name
			return tok, true
		}
		if opaqueTags[name] {
			// Swallow everything through the matching close tag.
			closeAt := indexFold(rest[len(frag):], "</"+name)
			if closeAt >= 0 {
				tail := rest[len(frag)+closeAt:]
				if gt := strings.IndexByte(tail, '>'); gt >= 0 {
					tok := l.emit(TokenTagSelfClosing, len(frag)+closeAt+gt+1)
					tok.Tag = name
					return tok, true
				}
			}
		}
		tok := l.emit(TokenTagOpen, len(frag))
		tok.Tag = name
		return tok, true
	}

	return Token{}, false
}

// tagShaped reports whether frag can be a single tag. A tag stays on one
// line and never spans template or link delimiters or an unquoted pipe.
func tagShaped(frag string) bool {
	if strings.Contains(frag, "\n") {
		return false
	}
	for _, delim := range []string{"{{", "}}", "[[", "]]"} {
		if strings.Contains(frag, delim) {
			return false
		}
	}

	var quote byte
	for i := 0; i < len(frag); i++ {
		switch c := frag[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '|':
			return false
		}
	}
	return true
}

// indexFold is a case-insensitive strings.Index for ASCII needles.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}
