// Package lexer tokenizes hotkey DSL source text into a stream of
// token.Token values. It is stateful over position/row/col and a single
// context flag: the token immediately following a Colon is always read
// as a raw Command line.
package lexer

import (
	"strings"

	"github.com/hotkeyd/hotkeyd/internal/keycode"
	"github.com/hotkeyd/hotkeyd/internal/token"
)

// Lexer produces tokens from config text on demand via Peek/Next.
type Lexer struct {
	src string
	pos int
	row int
	col int

	nextIsCommand bool

	hasPeeked bool
	peeked    token.Token
}

// New creates a Lexer over the given source text.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Peek returns the next token without consuming it, lexing one if none
// is cached.
func (l *Lexer) Peek() token.Token {
	if !l.hasPeeked {
		l.peeked = l.lex()
		l.hasPeeked = true
	}
	return l.peeked
}

// Next consumes and returns the next token.
func (l *Lexer) Next() token.Token {
	if l.hasPeeked {
		l.hasPeeked = false
		return l.peeked
	}
	return l.lex()
}

func (l *Lexer) lex() token.Token {
	if l.nextIsCommand {
		l.nextIsCommand = false
		for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
			l.advance()
		}
		return l.readCommand()
	}

	l.skipWhitespaceAndComments()

	if l.pos >= len(l.src) {
		return token.Token{Type: token.EndOfFile, Row: l.row, Col: l.col}
	}

	row, col := l.row, l.col
	c := l.src[l.pos]

	switch c {
	case '+':
		l.advance()
		return token.Token{Type: token.Plus, Text: "+", Row: row, Col: col}
	case '=':
		l.advance()
		return token.Token{Type: token.Equals, Text: "=", Row: row, Col: col}
	case ':':
		l.advance()
		l.nextIsCommand = true
		return token.Token{Type: token.Colon, Text: ":", Row: row, Col: col}
	case ',':
		l.advance()
		return token.Token{Type: token.Comma, Text: ",", Row: row, Col: col}
	case ';':
		l.advance()
		return token.Token{Type: token.Semicolon, Text: ";", Row: row, Col: col}
	case '{':
		l.advance()
		return token.Token{Type: token.OpenBrace, Text: "{", Row: row, Col: col}
	case '}':
		l.advance()
		return token.Token{Type: token.CloseBrace, Text: "}", Row: row, Col: col}
	case '@':
		l.advance()
		return token.Token{Type: token.At, Text: "@", Row: row, Col: col}
	case '^':
		l.advance()
		return token.Token{Type: token.Caret, Text: "^", Row: row, Col: col}
	case '&':
		l.advance()
		return token.Token{Type: token.Ampersand, Text: "&", Row: row, Col: col}
	}

	text := l.readIdentifier()
	if text == "" {
		// Unknown character: skip it and continue (the lexer is forgiving;
		// the parser is where rejection happens, per spec.md §4.C).
		l.advance()
		return l.lex()
	}

	return l.classifyIdentifier(text, row, col)
}

// classifyIdentifier applies spec.md §4.C rule 5's disambiguation order.
func (l *Lexer) classifyIdentifier(text string, row, col int) token.Token {
	if text == "define_modifier" {
		return token.Token{Type: token.DefineModifier, Text: text, Row: row, Col: col}
	}
	if isHexLiteral(text) {
		return token.Token{Type: token.KeyHex, Text: text, Row: row, Col: col}
	}
	if keycode.IsLiteralName(text) {
		return token.Token{Type: token.Literal, Text: text, Row: row, Col: col}
	}
	if len(text) == 1 {
		return token.Token{Type: token.Key, Text: text, Row: row, Col: col}
	}
	return token.Token{Type: token.Modifier, Text: text, Row: row, Col: col}
}

// isHexLiteral reports whether text is a "0x"-prefixed hex literal.
func isHexLiteral(text string) bool {
	if len(text) < 3 {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(text), "0x") {
		return false
	}
	for _, c := range text[2:] {
		if !isHexDigit(byte(c)) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// readIdentifier accumulates [A-Za-z0-9_] characters.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.advance()
	}
	return l.src[start:l.pos]
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

// readCommand reads the remainder of the current line verbatim (no escape
// processing) and consumes the trailing newline.
func (l *Lexer) readCommand() token.Token {
	row, col := l.row, l.col
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance()
	}
	text := strings.TrimRight(l.src[start:l.pos], "\r")
	if l.pos < len(l.src) && l.src[l.pos] == '\n' {
		l.advanceNewline()
	}
	return token.Token{Type: token.Command, Text: text, Row: row, Col: col}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		l.skipWhitespace()
		if l.pos < len(l.src) && l.src[l.pos] == '#' {
			l.skipComment()
			continue
		}
		break
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.advanceNewline()
		default:
			return
		}
	}
}

func (l *Lexer) skipComment() {
	for l.pos < len(l.src) {
		if l.src[l.pos] == '\n' {
			l.advanceNewline()
			return
		}
		l.advance()
	}
}

func (l *Lexer) advance() {
	if l.pos < len(l.src) {
		l.pos++
		l.col++
	}
}

func (l *Lexer) advanceNewline() {
	l.pos++
	l.row++
	l.col = 0
}
