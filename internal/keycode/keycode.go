// Package keycode maps between the hotkey DSL's textual key names and the
// numeric Code the current keyboard layout assigns to a physical key.
package keycode

import (
	"fmt"
	"strconv"
	"strings"
)

// Code is an opaque identifier for a physical key on the current layout.
// Equality is numeric.
type Code uint32

// The literal table holds the 47 fixed key names the DSL recognises
// independent of keyboard layout. Index ranges carry implicit modifier
// semantics (spec.md §4.A): indices [FnRangeStart, FnRangeEnd] imply the
// Fn modifier bit, indices [NXRangeStart, NXRangeEnd] imply the NX bit.
// These ranges are disjoint and constant.
const (
	FnRangeStart = 5
	FnRangeEnd   = 34
	NXRangeStart = 35
	NXRangeEnd   = 46
)

type literalEntry struct {
	name string
	code Code
}

// literalTable is indexed 0..46. Order is significant: it is what defines
// the Fn/NX implicit-modifier ranges above.
var literalTable = [...]literalEntry{
	// 0-4: plain, no implicit modifier
	{"return", 0x24},
	{"tab", 0x30},
	{"space", 0x31},
	{"delete", 0x33},
	{"escape", 0x35},

	// 5-34: Fn range (function/navigation keys)
	{"capslock", 0x39},
	{"help", 0x72},
	{"home", 0x73},
	{"pageup", 0x74},
	{"forwarddelete", 0x75},
	{"end", 0x77},
	{"pagedown", 0x79},
	{"left", 0x7B},
	{"right", 0x7C},
	{"down", 0x7D},
	{"up", 0x7E},
	{"f1", 0x7A},
	{"f2", 0x78},
	{"f3", 0x63},
	{"f4", 0x76},
	{"f5", 0x60},
	{"f6", 0x61},
	{"f7", 0x62},
	{"f8", 0x64},
	{"f9", 0x65},
	{"f10", 0x6D},
	{"f11", 0x67},
	{"f12", 0x6F},
	{"f13", 0x69},
	{"f14", 0x6B},
	{"f15", 0x71},
	{"f16", 0x6A},
	{"f17", 0x40},
	{"f18", 0x4F},
	{"f19", 0x50},

	// 35-46: NX range (media / secondary-function keys)
	{"mute", 0},
	{"volumeup", 1},
	{"volumedown", 2},
	{"play", 3},
	{"next", 4},
	{"previous", 5},
	{"rewind", 6},
	{"fastforward", 7},
	{"brightnessup", 8},
	{"brightnessdown", 9},
	{"illuminationup", 10},
	{"illuminationdown", 11},
}

var (
	nameToIndex = make(map[string]int, len(literalTable))
	codeToName  = make(map[Code]string, len(literalTable))
)

func init() {
	for i, e := range literalTable {
		nameToIndex[e.name] = i
		codeToName[e.code] = e.name
	}
}

// IsLiteralName reports whether name (compared case-insensitively) is one
// of the 47 fixed literal key names. Used by the lexer to
// disambiguate a Literal token from a user Modifier identifier.
func IsLiteralName(name string) bool {
	_, ok := nameToIndex[strings.ToLower(name)]
	return ok
}

// LiteralIndex returns the fixed-table index of a literal name, or -1.
func LiteralIndex(name string) int {
	i, ok := nameToIndex[strings.ToLower(name)]
	if !ok {
		return -1
	}
	return i
}

// ImpliesFn reports whether the literal at this index carries the
// implicit Fn modifier bit.
func ImpliesFn(index int) bool {
	return index >= FnRangeStart && index <= FnRangeEnd
}

// ImpliesNX reports whether the literal at this index carries the
// implicit NX modifier bit.
func ImpliesNX(index int) bool {
	return index >= NXRangeStart && index <= NXRangeEnd
}

// registry is the process-wide, layout-dependent A-Z/0-9 char map. Built
// once by Init() and treated as immutable thereafter (spec.md §9).
var registry struct {
	charToCode map[byte]Code
	codeToChar map[Code]byte
}

// Init queries the host for the current ASCII-capable keyboard layout and
// builds the char<->Code table for the 36 layout-dependent keys (A-Z,
// 0-9). Platform-specific; see keycode_darwin.go / keycode_linux.go.
// Returns false on host failure.
func Init() bool {
	table, ok := buildLayoutTable()
	if !ok {
		return false
	}
	registry.charToCode = table
	registry.codeToChar = make(map[Code]byte, len(table))
	for c, code := range table {
		registry.codeToChar[code] = c
	}
	return true
}

// CodeOf resolves a DSL key name to a Code: a length-1 name is looked up
// in the layout table; otherwise it is looked up in the literal table,
// then parsed as hexadecimal ("0x1f" or bare "1f"); else it errors.
func CodeOf(name string) (Code, error) {
	if len(name) == 1 {
		ch := name[0]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		c, ok := registry.charToCode[ch]
		if !ok {
			return 0, fmt.Errorf("keycode: no layout mapping for key %q", name)
		}
		return c, nil
	}

	if idx := LiteralIndex(name); idx >= 0 {
		return literalTable[idx].code, nil
	}

	if code, ok := parseHex(name); ok {
		return code, nil
	}

	return 0, fmt.Errorf("keycode: unknown key name %q", name)
}

// parseHex accepts both a "0x"-prefixed and a bare hexadecimal literal.
func parseHex(s string) (Code, bool) {
	trimmed := strings.TrimPrefix(strings.ToLower(s), "0x")
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, false
	}
	return Code(v), true
}

// NameOf is the inverse of CodeOf: layout map first, then literal table,
// else a hex rendering of the raw code.
func NameOf(code Code) string {
	if c, ok := registry.codeToChar[code]; ok {
		return string(c)
	}
	if name, ok := codeToName[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint32(code))
}
