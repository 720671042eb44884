// Package modifier implements the 14-bit modifier mask algebra: generic
// vs left/right vs side-specific activation, plus Fn/NX bits.
package modifier

// Mask is a 14-bit modifier bitfield. Bit layout: for each of
// {Alt, Shift, Cmd, Ctrl} a (generic, left, right) triple, followed by a
// single Fn bit and a single NX bit.
type Mask uint16

// Bit offsets, grouped in base-index order alt/shift/cmd/ctrl so a
// group's generic/left/right bits are base, base+1, base+2.
const (
	altBase = 0
	AltGeneric Mask = 1 << (altBase + 0)
	AltLeft    Mask = 1 << (altBase + 1)
	AltRight   Mask = 1 << (altBase + 2)

	shiftBase = 3
	ShiftGeneric Mask = 1 << (shiftBase + 0)
	ShiftLeft    Mask = 1 << (shiftBase + 1)
	ShiftRight   Mask = 1 << (shiftBase + 2)

	cmdBase = 6
	CmdGeneric Mask = 1 << (cmdBase + 0)
	CmdLeft    Mask = 1 << (cmdBase + 1)
	CmdRight   Mask = 1 << (cmdBase + 2)

	ctrlBase = 9
	CtrlGeneric Mask = 1 << (ctrlBase + 0)
	CtrlLeft    Mask = 1 << (ctrlBase + 1)
	CtrlRight   Mask = 1 << (ctrlBase + 2)

	Fn Mask = 1 << 12
	NX Mask = 1 << 13
)

// group describes one L/R-capable modifier group's three bits.
type group struct {
	generic, left, right Mask
}

var groups = [4]group{
	{AltGeneric, AltLeft, AltRight},
	{ShiftGeneric, ShiftLeft, ShiftRight},
	{CmdGeneric, CmdLeft, CmdRight},
	{CtrlGeneric, CtrlLeft, CtrlRight},
}

// Builtin names, in the 13 fixed indices spec.md §4.B specifies.
const (
	NameAlt = iota
	NameLAlt
	NameRAlt
	NameShift
	NameLShift
	NameRShift
	NameCmd
	NameLCmd
	NameRCmd
	NameCtrl
	NameLCtrl
	NameRCtrl
	NameFn
)

// BuiltinNames is the fixed array of the 13 builtin modifier names, in
// the order their indices above reference.
var BuiltinNames = [13]string{
	"alt", "lalt", "ralt",
	"shift", "lshift", "rshift",
	"cmd", "lcmd", "rcmd",
	"ctrl", "lctrl", "rctrl",
	"fn",
}

// builtinBit maps a builtin index to its Mask bit.
var builtinBit = [13]Mask{
	AltGeneric, AltLeft, AltRight,
	ShiftGeneric, ShiftLeft, ShiftRight,
	CmdGeneric, CmdLeft, CmdRight,
	CtrlGeneric, CtrlLeft, CtrlRight,
	Fn,
}

// BuiltinBit returns the bit for a builtin modifier by its fixed index.
func BuiltinBit(index int) Mask {
	if index < 0 || index >= len(builtinBit) {
		return 0
	}
	return builtinBit[index]
}

// BuiltinIndex resolves a builtin name (lowercase) to its fixed index, or
// -1 if name is not one of the 13 builtins.
func BuiltinIndex(name string) int {
	for i, n := range BuiltinNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Has reports whether m has every bit of flag set.
func (m Mask) Has(flag Mask) bool {
	return m&flag == flag
}

// compareGroup implements spec.md §4.B's per-group activation predicate.
// a is the configured chord's mask, b is the observed event's mask.
func compareGroup(a, b Mask, g group) bool {
	if a.Has(g.generic) {
		return b.Has(g.generic) || b.Has(g.left) || b.Has(g.right)
	}
	return a.Has(g.left) == b.Has(g.left) &&
		a.Has(g.right) == b.Has(g.right) &&
		a.Has(g.generic) == b.Has(g.generic)
}

// ActivatedBy reports whether the observed mask `event` satisfies this
// configured mask's activation predicate (spec.md §4.B). a.ActivatedBy(b)
// reads as "configured chord a is activated by observed chord b".
func (a Mask) ActivatedBy(event Mask) bool {
	for _, g := range groups {
		if !compareGroup(a, event, g) {
			return false
		}
	}
	return a.Has(Fn) == event.Has(Fn) && a.Has(NX) == event.Has(NX)
}

// RawGroup carries one group's raw OS modifier bits. Any reports whether
// the group's "any side" flag is present in the raw flags; Left and Right
// report the specific sides. Per spec.md §4.B: if Any is set but neither
// side is reported, DecodeEvent sets only the generic bit.
type RawGroup struct {
	Any, Left, Right bool
}

// DecodeEvent builds an event-side Mask from decoded raw OS flags for the
// four L/R-capable groups plus Fn/NX singletons.
func DecodeEvent(alt, shift, cmd, ctrl RawGroup, fn, nx bool) Mask {
	var m Mask
	m |= decodeGroup(alt, groups[0])
	m |= decodeGroup(shift, groups[1])
	m |= decodeGroup(cmd, groups[2])
	m |= decodeGroup(ctrl, groups[3])
	if fn {
		m |= Fn
	}
	if nx {
		m |= NX
	}
	return m
}

func decodeGroup(raw RawGroup, g group) Mask {
	if !raw.Any {
		return 0
	}
	var m Mask
	if raw.Left {
		m |= g.left
	}
	if raw.Right {
		m |= g.right
	}
	if !raw.Left && !raw.Right {
		m |= g.generic
	}
	return m
}
