package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hotkeyd/hotkeyd/internal/modifier"
)

func TestActivatedBy(t *testing.T) {
	configured := Chord{Key: 0x31, Mods: modifier.CtrlGeneric}

	assert.True(t, configured.ActivatedBy(Chord{Key: 0x31, Mods: modifier.CtrlLeft}))
	assert.False(t, configured.ActivatedBy(Chord{Key: 0x24, Mods: modifier.CtrlLeft}))
	assert.False(t, configured.ActivatedBy(Chord{Key: 0x31, Mods: modifier.ShiftGeneric}))
}

func TestString(t *testing.T) {
	c := Chord{Key: 0x31, Mods: modifier.CtrlGeneric | modifier.Fn}
	assert.Equal(t, "ctrl+fn+space", c.String())

	bare := Chord{Key: 0x31}
	assert.Equal(t, "space", bare.String())
}
