// Package parser implements a hand-written recursive-descent parser over
// the hotkey DSL's token stream, producing an ast.Program. It preserves
// source positions but does not expand braces or resolve modifier names
// — that is internal/interpreter's job.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hotkeyd/hotkeyd/internal/ast"
	"github.com/hotkeyd/hotkeyd/internal/lexer"
	"github.com/hotkeyd/hotkeyd/internal/modifier"
	"github.com/hotkeyd/hotkeyd/internal/token"
)

// Error is a fatal parse error with the source position it occurred at.
type Error struct {
	Row, Col int
	Msg      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Row, e.Col, e.Msg)
}

// Parser consumes tokens from a lexer.Lexer and builds an ast.Program.
// buf holds up to two tokens of lookahead (parseStmt's dispatch needs to
// see two tokens ahead without consuming either).
type Parser struct {
	lex *lexer.Lexer
	buf []token.Token
}

// New creates a Parser over src.
func New(src string) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// Parse runs the full program grammar over src in one call, returning the
// first fatal error encountered.
func Parse(src string) (*ast.Program, error) {
	return New(src).Parse()
}

// Parse implements: program := (stmt)* EOF
// Lex/parse errors abort the whole load per spec.md §7; Parse recovers
// the internal panic used for early-exit and returns it as an error.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()

	prog = &ast.Program{}
	for p.peekAt(0).Type != token.EndOfFile {
		prog.Statements = append(prog.Statements, p.parseStmt())
	}
	return prog, nil
}

func (p *Parser) fail(t token.Token, format string, args ...any) {
	panic(&Error{Row: t.Row, Col: t.Col, Msg: fmt.Sprintf(format, args...)})
}

// peekAt returns the token n positions ahead (0 = next token) without
// consuming anything.
func (p *Parser) peekAt(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lex.Next())
	}
	return p.buf[n]
}

func (p *Parser) peek() token.Token { return p.peekAt(0) }

func (p *Parser) next() token.Token {
	t := p.peekAt(0)
	p.buf = p.buf[1:]
	return t
}

func (p *Parser) expectTok(tt token.Type) token.Token {
	t := p.next()
	if t.Type != tt {
		p.fail(t, "expected %s, got %s %q", tt, t.Type, t.Text)
	}
	return t
}

func isIdentToken(tt token.Type) bool {
	return tt == token.Modifier || tt == token.Key || tt == token.Literal
}

// parseStmt implements: stmt := define_modifier | config_property | hotkey_stmt
// define_modifier and config_property are recognised only at statement
// position (spec.md §4.D edge cases).
func (p *Parser) parseStmt() ast.Stmt {
	t := p.peekAt(0)
	if t.Type == token.DefineModifier {
		return p.parseDefineModifier()
	}
	if isIdentToken(t.Type) && p.peekAt(1).Type == token.Equals {
		return p.parseConfigProperty()
	}
	return p.parseHotkeyStmt()
}

// parseDefineModifier implements:
// define_modifier := "define_modifier" IDENT "=" modifier_atom ("+" modifier_atom)*
func (p *Parser) parseDefineModifier() ast.Stmt {
	dm := p.next()
	name := p.next()
	if !isIdentToken(name.Type) {
		p.fail(name, "expected modifier name after define_modifier, got %s", name.Type)
	}
	p.expectTok(token.Equals)

	stmt := ast.DefineModifierStmt{Name: strings.ToLower(name.Text), Row: dm.Row, Col: dm.Col}
	stmt.Parts = append(stmt.Parts, p.parseModifierAtom())
	for p.peek().Type == token.Plus {
		p.next()
		stmt.Parts = append(stmt.Parts, p.parseModifierAtom())
	}
	return stmt
}

// parseConfigProperty implements: config_property := IDENT "=" INT
func (p *Parser) parseConfigProperty() ast.Stmt {
	name := p.next()
	p.expectTok(token.Equals)
	val := p.next()
	n, err := strconv.ParseInt(val.Text, 10, 64)
	if err != nil {
		p.fail(val, "expected integer config value, got %q", val.Text)
	}
	return ast.ConfigPropertyStmt{Name: name.Text, Value: n, Row: name.Row, Col: name.Col}
}

// parseHotkeyStmt implements: hotkey_stmt := hotkey_syntax ":" COMMAND
// ':' ends the chord list; the very next token must be Command.
func (p *Parser) parseHotkeyStmt() ast.Stmt {
	start := p.peek()
	syntax := p.parseHotkeySyntax()
	p.expectTok(token.Colon)
	cmd := p.expectTok(token.Command)
	return ast.HotkeyStmt{Syntax: syntax, Command: cmd.Text, Row: start.Row, Col: start.Col}
}

// parseHotkeySyntax implements: hotkey_syntax := chord_syn (";" chord_syn)*
// A ';' resets the chord but stays within the same hotkey.
func (p *Parser) parseHotkeySyntax() ast.HotkeySyntax {
	var hk ast.HotkeySyntax
	hk.Chords = append(hk.Chords, p.parseChordSyntax(&hk))
	for p.peek().Type == token.Semicolon {
		p.next()
		hk.Chords = append(hk.Chords, p.parseChordSyntax(&hk))
	}
	return hk
}

// parseFlags consumes any run of '@'/'&'/'^' flag tokens, OR-ing them
// into the enclosing hotkey_stmt: per-flag semantics are captured on the
// nearest enclosing hotkey_stmt, not the individual chord (spec.md §4.D).
func (p *Parser) parseFlags(hk *ast.HotkeySyntax) {
	for {
		switch p.peek().Type {
		case token.At:
			p.next()
			hk.Passthrough = true
		case token.Ampersand:
			p.next()
			hk.Repeat = true
		case token.Caret:
			p.next()
			hk.OnRelease = true
		default:
			return
		}
	}
}

// parseChordSyntax implements: chord_syn := flag* (modifier_atom "+")* key_syn
func (p *Parser) parseChordSyntax(hk *ast.HotkeySyntax) ast.ChordSyntax {
	var chord ast.ChordSyntax

	p.parseFlags(hk)
	for isIdentToken(p.peek().Type) && p.peekAt(1).Type == token.Plus {
		chord.Modifiers = append(chord.Modifiers, p.parseModifierAtom())
		p.expectTok(token.Plus)
		p.parseFlags(hk)
	}

	key := p.parseKeySyntax()
	chord.Key = &key
	return chord
}

// parseModifierAtom implements: modifier_atom := IDENT, resolved later
// into builtin-or-custom by the interpreter; the parser only tags
// whether the name happens to match one of the 13 fixed builtin names.
func (p *Parser) parseModifierAtom() ast.ModifierAtom {
	t := p.next()
	if !isIdentToken(t.Type) {
		p.fail(t, "expected modifier name, got %s %q", t.Type, t.Text)
	}
	lower := strings.ToLower(t.Text)
	idx := modifier.BuiltinIndex(lower)
	return ast.ModifierAtom{BuiltinIndex: idx, Name: lower, Row: t.Row, Col: t.Col}
}

// parseKeySyntax implements: key_syn := key_atom | "{" key_atom ("," key_atom)* "}"
func (p *Parser) parseKeySyntax() ast.KeySyntax {
	if p.peek().Type == token.OpenBrace {
		p.next()
		var ks ast.KeySyntax
		ks.IsBraceExpansion = true
		ks.Items = append(ks.Items, p.parseKeyAtom())
		for p.peek().Type == token.Comma {
			p.next()
			ks.Items = append(ks.Items, p.parseKeyAtom())
		}
		p.expectTok(token.CloseBrace)
		return ks
	}
	return ast.KeySyntax{Items: []ast.KeyAtom{p.parseKeyAtom()}}
}

// parseKeyAtom implements: key_atom := Key | Literal | KeyHex
func (p *Parser) parseKeyAtom() ast.KeyAtom {
	t := p.next()
	switch t.Type {
	case token.Literal:
		return ast.KeyAtom{Literal: strings.ToLower(t.Text), Row: t.Row, Col: t.Col}
	case token.Key:
		return ast.KeyAtom{Char: t.Text[0], IsChar: true, Row: t.Row, Col: t.Col}
	case token.KeyHex:
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(t.Text), "0x"), 16, 32)
		if err != nil {
			p.fail(t, "invalid hex key literal %q", t.Text)
		}
		return ast.KeyAtom{IsChar: true, IsHex: true, HexValue: uint32(v), Row: t.Row, Col: t.Col}
	default:
		p.fail(t, "expected key atom, got %s %q", t.Type, t.Text)
	}
	panic("unreachable")
}
