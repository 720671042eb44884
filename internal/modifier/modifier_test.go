package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivatedBy(t *testing.T) {
	tests := []struct {
		name     string
		config   Mask
		event    Mask
		activate bool
	}{
		{"generic accepts generic", AltGeneric, AltGeneric, true},
		{"generic accepts left", AltGeneric, AltLeft, true},
		{"generic accepts right", AltGeneric, AltRight, true},
		{"left rejects right", AltLeft, AltRight, false},
		{"left requires left exactly", AltLeft, AltLeft, true},
		{"left rejects generic", AltLeft, AltGeneric, false},
		{"no modifier requires no modifier", 0, 0, true},
		{"no modifier rejects any", 0, AltGeneric, false},
		{"fn must match exactly", Fn, Fn, true},
		{"fn absent rejects fn present", 0, Fn, false},
		{"multi-group conjunction", AltGeneric | CtrlLeft, AltRight | CtrlLeft, true},
		{"multi-group conjunction fails on one group", AltGeneric | CtrlLeft, AltRight | CtrlRight, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.activate, tt.config.ActivatedBy(tt.event))
		})
	}
}

func TestBuiltinIndex(t *testing.T) {
	for i, name := range BuiltinNames {
		assert.Equal(t, i, BuiltinIndex(name))
	}
	assert.Equal(t, -1, BuiltinIndex("nonexistent"))
}

func TestDecodeEvent(t *testing.T) {
	m := DecodeEvent(RawGroup{Any: true, Left: true}, RawGroup{}, RawGroup{Any: true}, RawGroup{}, true, false)
	assert.True(t, m.Has(AltLeft))
	assert.False(t, m.Has(AltGeneric))
	assert.True(t, m.Has(CmdGeneric))
	assert.True(t, m.Has(Fn))
	assert.False(t, m.Has(NX))

	none := DecodeEvent(RawGroup{Left: true}, RawGroup{}, RawGroup{}, RawGroup{}, false, false)
	assert.Equal(t, Mask(0), none, "Any must gate the group even when a side is set")
}
