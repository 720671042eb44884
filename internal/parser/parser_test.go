package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotkeyd/hotkeyd/internal/ast"
)

func TestParseSimpleHotkey(t *testing.T) {
	prog, err := Parse("ctrl + a : echo hi\n")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	hk, ok := prog.Statements[0].(ast.HotkeyStmt)
	require.True(t, ok)
	assert.Equal(t, "echo hi", hk.Command)
	require.Len(t, hk.Syntax.Chords, 1)
	require.Len(t, hk.Syntax.Chords[0].Modifiers, 1)
	assert.Equal(t, "ctrl", hk.Syntax.Chords[0].Modifiers[0].Name)
	assert.True(t, hk.Syntax.Chords[0].Key.Items[0].IsChar)
	assert.Equal(t, byte('a'), hk.Syntax.Chords[0].Key.Items[0].Char)
}

func TestParsePositionFidelity(t *testing.T) {
	prog, err := Parse("a : echo x\nctrl + b : echo y\n")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	second := prog.Statements[1].(ast.HotkeyStmt)
	assert.Equal(t, 1, second.Row)
}

func TestParseDefineModifier(t *testing.T) {
	prog, err := Parse("define_modifier hyper = ctrl + alt\n")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	dm, ok := prog.Statements[0].(ast.DefineModifierStmt)
	require.True(t, ok)
	assert.Equal(t, "hyper", dm.Name)
	require.Len(t, dm.Parts, 2)
	assert.Equal(t, "ctrl", dm.Parts[0].Name)
	assert.Equal(t, "alt", dm.Parts[1].Name)
}

func TestParseConfigProperty(t *testing.T) {
	prog, err := Parse("max_chord_interval = 500\n")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	cp, ok := prog.Statements[0].(ast.ConfigPropertyStmt)
	require.True(t, ok)
	assert.Equal(t, "max_chord_interval", cp.Name)
	assert.Equal(t, int64(500), cp.Value)
}

func TestParseSequence(t *testing.T) {
	prog, err := Parse("ctrl + x ; ctrl + c : echo seq\n")
	require.NoError(t, err)
	hk := prog.Statements[0].(ast.HotkeyStmt)
	assert.Len(t, hk.Syntax.Chords, 2)
}

func TestParseFlags(t *testing.T) {
	prog, err := Parse("@&^ ctrl + a : echo hi\n")
	require.NoError(t, err)
	hk := prog.Statements[0].(ast.HotkeyStmt)
	assert.True(t, hk.Syntax.Passthrough)
	assert.True(t, hk.Syntax.Repeat)
	assert.True(t, hk.Syntax.OnRelease)
}

func TestParseBraceExpansion(t *testing.T) {
	prog, err := Parse("ctrl + {a,b,c} : echo {1,2,3}\n")
	require.NoError(t, err)
	hk := prog.Statements[0].(ast.HotkeyStmt)
	require.True(t, hk.Syntax.Chords[0].Key.IsBraceExpansion)
	assert.Len(t, hk.Syntax.Chords[0].Key.Items, 3)
	assert.Equal(t, "echo {1,2,3}", hk.Command)
}

func TestParseSingleCharModifier(t *testing.T) {
	prog, err := Parse("a + space : echo hi\n")
	require.NoError(t, err)
	hk := prog.Statements[0].(ast.HotkeyStmt)
	require.Len(t, hk.Syntax.Chords[0].Modifiers, 1)
	assert.Equal(t, "a", hk.Syntax.Chords[0].Modifiers[0].Name)
	assert.Equal(t, "space", hk.Syntax.Chords[0].Key.Items[0].Literal)
}

func TestParseLiteralAndHexKeys(t *testing.T) {
	prog, err := Parse("space : echo a\n0x31 : echo b\n")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	lit := prog.Statements[0].(ast.HotkeyStmt)
	assert.Equal(t, "space", lit.Syntax.Chords[0].Key.Items[0].Literal)

	hex := prog.Statements[1].(ast.HotkeyStmt)
	assert.True(t, hex.Syntax.Chords[0].Key.Items[0].IsHex)
	assert.Equal(t, uint32(0x31), hex.Syntax.Chords[0].Key.Items[0].HexValue)
}

func TestParseErrorOnMissingColon(t *testing.T) {
	_, err := Parse("ctrl + a echo hi\n")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
}
