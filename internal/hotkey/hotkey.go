// Package hotkey defines the compiled Hotkey and the CompiledTable the
// interpreter produces from a parsed program.
package hotkey

import (
	"fmt"
	"strings"

	"github.com/hotkeyd/hotkeyd/internal/chord"
)

// Hotkey is a fully compiled binding: an ordered, non-empty chord list
// (length > 1 means a sequence) plus its dispatch flags and command.
type Hotkey struct {
	Chords      []chord.Chord
	Passthrough bool
	Repeat      bool
	OnRelease   bool
	Command     string
}

// IsSequence reports whether this hotkey requires more than one chord.
func (h Hotkey) IsSequence() bool {
	return len(h.Chords) > 1
}

// dispatchKey is the total-ordering key spec.md §3 describes: (flags,
// chord list) serialized to a comparable Go value. Chord equality here is
// exact mask+key equality (both sides are configured chords, not an
// event), which is what makes two compiled Hotkeys "equal for dispatch".
type dispatchKey string

func (h Hotkey) key() dispatchKey {
	var b strings.Builder
	fmt.Fprintf(&b, "%v|%v|%v", h.Passthrough, h.Repeat, h.OnRelease)
	for _, c := range h.Chords {
		fmt.Fprintf(&b, "|%d:%d", c.Key, c.Mods)
	}
	return dispatchKey(b.String())
}

// CompiledTable maps a compiled Hotkey to its command string. Keys are
// unique under dispatch-equality. Entries() returns hotkeys in
// config-authoring order, single-chord hotkeys and sequences interleaved
// as written; that deterministic order makes reloads reproducible, per
// spec.md §4.F's tie-breaking note.
type CompiledTable struct {
	byKey   map[dispatchKey]*Hotkey
	ordered []*Hotkey
}

// NewCompiledTable creates an empty table.
func NewCompiledTable() *CompiledTable {
	return &CompiledTable{byKey: make(map[dispatchKey]*Hotkey)}
}

// Put inserts or overwrites a compiled hotkey. Later insertions with the
// same dispatch key replace earlier ones but keep their original
// position, so config-order authoring is preserved across a redefinition.
func (t *CompiledTable) Put(h Hotkey) {
	k := h.key()
	if existing, ok := t.byKey[k]; ok {
		*existing = h
		return
	}
	stored := h
	t.byKey[k] = &stored
	t.ordered = append(t.ordered, &stored)
}

// Len returns the number of distinct compiled hotkeys.
func (t *CompiledTable) Len() int {
	return len(t.ordered)
}

// Entries returns all compiled hotkeys in config-authoring order (a
// redefinition keeps its original position; see Put), which is also
// deterministic across reloads of the same config, per spec.md §4.F's
// tie-breaking note.
func (t *CompiledTable) Entries() []*Hotkey {
	out := make([]*Hotkey, len(t.ordered))
	copy(out, t.ordered)
	return out
}
