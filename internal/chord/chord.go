// Package chord defines the single-instant (keycode, modifier-mask) pair
// that is the unit of dispatch for both single hotkeys and sequences.
package chord

import (
	"fmt"

	"github.com/hotkeyd/hotkeyd/internal/keycode"
	"github.com/hotkeyd/hotkeyd/internal/modifier"
)

// Chord represents a single simultaneous key press: a key plus the
// modifier state required to activate it.
type Chord struct {
	Key  keycode.Code
	Mods modifier.Mask
}

// ActivatedBy reports whether the observed chord `event` activates this
// configured chord, per modifier.Mask.ActivatedBy and exact key equality.
func (c Chord) ActivatedBy(event Chord) bool {
	return c.Key == event.Key && c.Mods.ActivatedBy(event.Mods)
}

// String renders a chord for diagnostics and the `list`/`watch` CLI
// subcommands.
func (c Chord) String() string {
	name := keycode.NameOf(c.Key)
	if c.Mods == 0 {
		return name
	}
	return fmt.Sprintf("%s+%s", modsString(c.Mods), name)
}

func modsString(m modifier.Mask) string {
	var out string
	add := func(bit modifier.Mask, name string) {
		if m.Has(bit) {
			if out != "" {
				out += "+"
			}
			out += name
		}
	}
	add(modifier.AltGeneric, "alt")
	add(modifier.AltLeft, "lalt")
	add(modifier.AltRight, "ralt")
	add(modifier.ShiftGeneric, "shift")
	add(modifier.ShiftLeft, "lshift")
	add(modifier.ShiftRight, "rshift")
	add(modifier.CmdGeneric, "cmd")
	add(modifier.CmdLeft, "lcmd")
	add(modifier.CmdRight, "rcmd")
	add(modifier.CtrlGeneric, "ctrl")
	add(modifier.CtrlLeft, "lctrl")
	add(modifier.CtrlRight, "rctrl")
	add(modifier.Fn, "fn")
	add(modifier.NX, "nx")
	return out
}
