package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hotkeyd/hotkeyd/internal/token"
)

func collect(src string) []token.Token {
	l := New(src)
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Type == token.EndOfFile {
			return out
		}
	}
}

func TestBasicHotkeyLine(t *testing.T) {
	toks := collect("ctrl + a : echo hi\n")
	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	assert.Equal(t, []token.Type{
		token.Modifier, token.Plus, token.Key, token.Colon, token.Command, token.EndOfFile,
	}, types)
	assert.Equal(t, "echo hi", toks[4].Text)
}

func TestDefineModifier(t *testing.T) {
	toks := collect("define_modifier hyper = ctrl + alt\n")
	assert.Equal(t, token.DefineModifier, toks[0].Type)
	assert.Equal(t, token.Modifier, toks[1].Type)
	assert.Equal(t, "hyper", toks[1].Text)
	assert.Equal(t, token.Equals, toks[2].Type)
}

func TestConfigProperty(t *testing.T) {
	toks := collect("max_chord_interval = 500\n")
	assert.Equal(t, token.Modifier, toks[0].Type)
	assert.Equal(t, token.Equals, toks[1].Type)
	assert.Equal(t, token.Modifier, toks[2].Type)
	assert.Equal(t, "500", toks[2].Text)
}

func TestLiteralAndHexKeys(t *testing.T) {
	toks := collect("space : echo a\n0x31 : echo b\n")
	assert.Equal(t, token.Literal, toks[0].Type)
	assert.Equal(t, token.Command, toks[2].Type)
	assert.Equal(t, token.KeyHex, toks[3].Type)
}

func TestFlagsAndBraceExpansion(t *testing.T) {
	toks := collect("ctrl + {a,b} @&^ : echo {1,2}\n")
	var types []token.Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Contains(t, types, token.OpenBrace)
	assert.Contains(t, types, token.CloseBrace)
	assert.Contains(t, types, token.At)
	assert.Contains(t, types, token.Ampersand)
	assert.Contains(t, types, token.Caret)
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	toks := collect("# a comment\n  \t ctrl + a : echo hi\n")
	assert.Equal(t, token.Modifier, toks[0].Type)
	assert.Equal(t, "ctrl", toks[0].Text)
}

func TestRowColTracking(t *testing.T) {
	toks := collect("a : echo x\nb : echo y\n")
	// toks[0] is the Key "a" on row 0.
	assert.Equal(t, 0, toks[0].Row)
	// The second line's key should be on row 1.
	var secondKeyRow = -1
	for i, tok := range toks {
		if tok.Type == token.Key && tok.Text == "b" {
			secondKeyRow = toks[i].Row
		}
	}
	assert.Equal(t, 1, secondKeyRow)
}

func TestSequenceSemicolon(t *testing.T) {
	toks := collect("ctrl + a ; ctrl + b : echo seq\n")
	assert.Equal(t, token.Semicolon, toks[3].Type)
}
