package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotkeyd/hotkeyd/internal/modifier"
	"github.com/hotkeyd/hotkeyd/internal/parser"
)

func compile(t *testing.T, src string) *Result {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	res, err := Compile(prog)
	require.NoError(t, err)
	return res
}

func TestCompileSimpleHotkey(t *testing.T) {
	res := compile(t, "ctrl + space : echo hi\n")
	require.Equal(t, 1, res.Table.Len())

	entry := res.Table.Entries()[0]
	assert.Equal(t, "echo hi", entry.Command)
	require.Len(t, entry.Chords, 1)
	assert.True(t, entry.Chords[0].Mods.Has(modifier.CtrlGeneric))
}

func TestCompileCustomModifierResolution(t *testing.T) {
	res := compile(t, "define_modifier hyper = ctrl + alt\nhyper + space : echo hi\n")
	entry := res.Table.Entries()[0]
	assert.True(t, entry.Chords[0].Mods.Has(modifier.CtrlGeneric))
	assert.True(t, entry.Chords[0].Mods.Has(modifier.AltGeneric))
}

func TestCompileCyclicModifierFails(t *testing.T) {
	prog, err := parser.Parse("define_modifier a = b\ndefine_modifier b = a\na + space : echo hi\n")
	require.NoError(t, err)

	_, err = Compile(prog)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicModifier)
}

func TestCompileUnknownModifierIsWarningNotError(t *testing.T) {
	res := compile(t, "bogus + space : echo hi\n")
	require.Equal(t, 1, res.Table.Len())
	assert.NotEmpty(t, res.Warnings)
}

func TestCompileUnknownConfigPropertyFails(t *testing.T) {
	prog, err := parser.Parse("not_a_real_property = 100\n")
	require.NoError(t, err)

	_, err = Compile(prog)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestCompileConfigPropertyAppliesMilliseconds(t *testing.T) {
	res := compile(t, "max_chord_interval = 250\n")
	assert.Equal(t, 250*time.Millisecond, res.Properties.MaxChordInterval)
}

func TestCompileBraceExpansionMatchingCommands(t *testing.T) {
	res := compile(t, "ctrl + {space,tab} : echo {first,second}\n")
	require.Equal(t, 2, res.Table.Len())

	entries := res.Table.Entries()
	commands := []string{entries[0].Command, entries[1].Command}
	assert.ElementsMatch(t, []string{"echo first", "echo second"}, commands)
}

func TestCompileBraceExpansionWithoutCommandBraces(t *testing.T) {
	res := compile(t, "ctrl + {space,tab} : echo fixed\n")
	require.Equal(t, 2, res.Table.Len())
	for _, e := range res.Table.Entries() {
		assert.Equal(t, "echo fixed", e.Command)
	}
}

func TestCompileMismatchedExpansionFails(t *testing.T) {
	prog, err := parser.Parse("ctrl + {space,tab} : echo {onlyone}\n")
	require.NoError(t, err)

	_, err = Compile(prog)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMismatchedExpansion)
}

func TestCompileTooManyBraceChordsFails(t *testing.T) {
	prog, err := parser.Parse("ctrl + {space,tab} ; ctrl + {home,end} : echo hi\n")
	require.NoError(t, err)

	_, err = Compile(prog)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyBraceChords)
}

func TestCompileSequenceHotkey(t *testing.T) {
	res := compile(t, "ctrl + space ; ctrl + tab : echo seq\n")
	entry := res.Table.Entries()[0]
	assert.True(t, entry.IsSequence())
	assert.Len(t, entry.Chords, 2)
}

func TestCompileFnRangeImplicitModifier(t *testing.T) {
	res := compile(t, "left : echo hi\n")
	entry := res.Table.Entries()[0]
	assert.True(t, entry.Chords[0].Mods.Has(modifier.Fn))
}

func TestCompilePlainLiteralCarriesNoImplicitModifier(t *testing.T) {
	res := compile(t, "space : echo hi\n")
	entry := res.Table.Entries()[0]
	assert.Equal(t, modifier.Mask(0), entry.Chords[0].Mods)
}

func TestCompileRedefinitionPreservesPosition(t *testing.T) {
	res := compile(t, "ctrl + space : echo first\ntab : echo middle\nctrl + space : echo second\n")
	entries := res.Table.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "echo second", entries[0].Command)
	assert.Equal(t, "echo middle", entries[1].Command)
}
