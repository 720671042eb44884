// Package interpreter is the semantic pass that turns a parsed ast.Program
// into a compiled hotkey.CompiledTable and properties.Config: it resolves
// modifier aliases (with cycle detection), expands brace macros, attaches
// implicit Fn/NX modifier bits, and normalises everything into the
// runtime's dispatch representation.
package interpreter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hotkeyd/hotkeyd/internal/ast"
	"github.com/hotkeyd/hotkeyd/internal/chord"
	"github.com/hotkeyd/hotkeyd/internal/hotkey"
	"github.com/hotkeyd/hotkeyd/internal/keycode"
	"github.com/hotkeyd/hotkeyd/internal/modifier"
	"github.com/hotkeyd/hotkeyd/internal/properties"
)

// Sentinel errors for the semantic error taxonomy (spec.md §7). Use
// errors.Is to distinguish them; each is wrapped with detail via %w.
var (
	ErrCyclicModifier      = errors.New("cyclic modifier alias")
	ErrUnknownProperty     = errors.New("unknown config property")
	ErrMismatchedExpansion = errors.New("mismatched brace expansion")
	ErrTooManyBraceChords  = errors.New("more than one brace-expansion chord in a hotkey")
)

// Result is the output of a successful compile: the dispatch table, the
// resolved timing properties, and any non-fatal warnings collected along
// the way (spec.md §7: UnknownModifier is a warning, not a load error).
type Result struct {
	Table      *hotkey.CompiledTable
	Properties properties.Config
	Warnings   []string
}

// Compile runs the full semantic pass over prog.
func Compile(prog *ast.Program) (*Result, error) {
	c := &compiler{
		customDefs: make(map[string][]ast.ModifierAtom),
		resolved:   make(map[string]modifier.Mask),
		table:      hotkey.NewCompiledTable(),
		props:      properties.Default(),
	}

	for _, stmt := range prog.Statements {
		if dm, ok := stmt.(ast.DefineModifierStmt); ok {
			c.customDefs[dm.Name] = dm.Parts
		}
	}

	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case ast.DefineModifierStmt:
			// Registered above; nothing further to do per-statement.
		case ast.ConfigPropertyStmt:
			if err := c.applyProperty(s); err != nil {
				return nil, err
			}
		case ast.HotkeyStmt:
			if err := c.compileHotkeyStmt(s); err != nil {
				return nil, err
			}
		}
	}

	return &Result{Table: c.table, Properties: c.props, Warnings: c.warnings}, nil
}

type compiler struct {
	customDefs map[string][]ast.ModifierAtom
	resolved   map[string]modifier.Mask
	table      *hotkey.CompiledTable
	props      properties.Config
	warnings   []string
}

func (c *compiler) applyProperty(s ast.ConfigPropertyStmt) error {
	ms := durationMillis(s.Value)
	switch s.Name {
	case properties.NameMaxChordInterval:
		c.props.MaxChordInterval = ms
	case properties.NameHoldModifierThreshold:
		c.props.HoldModifierThreshold = ms
	case properties.NameSimultaneousThreshold:
		c.props.SimultaneousThreshold = ms
	default:
		return fmt.Errorf("%w: %q at %d:%d", ErrUnknownProperty, s.Name, s.Row, s.Col)
	}
	return nil
}

// resolveModifier resolves a single named alias to its bitmask, caching
// results and detecting cycles with an explicit visited set (spec.md §9).
// An unknown name produces a warning and resolves to zero flags rather
// than a fatal error.
func (c *compiler) resolveModifier(name string, visiting map[string]bool) (modifier.Mask, error) {
	if m, ok := c.resolved[name]; ok {
		return m, nil
	}
	parts, ok := c.customDefs[name]
	if !ok {
		c.warnings = append(c.warnings, fmt.Sprintf("UnknownModifier: %q resolves to zero flags", name))
		return 0, nil
	}
	if visiting[name] {
		return 0, fmt.Errorf("%w: %q", ErrCyclicModifier, name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	var mask modifier.Mask
	for _, atom := range parts {
		m, err := c.resolveAtom(atom, visiting)
		if err != nil {
			return 0, err
		}
		mask |= m
	}
	c.resolved[name] = mask
	return mask, nil
}

func (c *compiler) resolveAtom(atom ast.ModifierAtom, visiting map[string]bool) (modifier.Mask, error) {
	if atom.IsBuiltin() {
		return modifier.BuiltinBit(atom.BuiltinIndex), nil
	}
	return c.resolveModifier(atom.Name, visiting)
}

// resolveChordMask OR's the resolved masks of every modifier atom on a
// syntactic chord.
func (c *compiler) resolveChordMask(atoms []ast.ModifierAtom) (modifier.Mask, error) {
	var mask modifier.Mask
	for _, atom := range atoms {
		m, err := c.resolveAtom(atom, make(map[string]bool))
		if err != nil {
			return 0, err
		}
		mask |= m
	}
	return mask, nil
}

// keyAtomCode resolves a single KeyAtom to its keycode plus any implicit
// Fn/NX bits the literal table range attaches (spec.md §4.A, §4.E).
func keyAtomCode(atom ast.KeyAtom) (keycode.Code, modifier.Mask, error) {
	if atom.IsHex {
		return keycode.Code(atom.HexValue), 0, nil
	}
	if atom.Literal != "" {
		idx := keycode.LiteralIndex(atom.Literal)
		code, err := keycode.CodeOf(atom.Literal)
		if err != nil {
			return 0, 0, err
		}
		var implicit modifier.Mask
		if keycode.ImpliesFn(idx) {
			implicit |= modifier.Fn
		}
		if keycode.ImpliesNX(idx) {
			implicit |= modifier.NX
		}
		return code, implicit, nil
	}
	code, err := keycode.CodeOf(string(atom.Char))
	if err != nil {
		return 0, 0, err
	}
	return code, 0, nil
}

// compileHotkeyStmt implements spec.md §4.E's hotkey compilation
// algorithm, including brace expansion of both the key list and a
// parallel command list.
func (c *compiler) compileHotkeyStmt(s ast.HotkeyStmt) error {
	chordMasks := make([]modifier.Mask, len(s.Syntax.Chords))
	for i, cs := range s.Syntax.Chords {
		m, err := c.resolveChordMask(cs.Modifiers)
		if err != nil {
			return err
		}
		chordMasks[i] = m
	}

	braceIdx := -1
	for i, cs := range s.Syntax.Chords {
		if cs.Key != nil && cs.Key.IsBraceExpansion {
			if braceIdx != -1 {
				return fmt.Errorf("%w: at %d:%d", ErrTooManyBraceChords, s.Row, s.Col)
			}
			braceIdx = i
		}
	}

	if braceIdx == -1 {
		chords := make([]chord.Chord, len(s.Syntax.Chords))
		for i, cs := range s.Syntax.Chords {
			code, implicit, err := keyAtomCode(cs.Key.Items[0])
			if err != nil {
				return err
			}
			chords[i] = chord.Chord{Key: code, Mods: chordMasks[i] | implicit}
		}
		c.table.Put(hotkey.Hotkey{
			Chords:      chords,
			Passthrough: s.Syntax.Passthrough,
			Repeat:      s.Syntax.Repeat,
			OnRelease:   s.Syntax.OnRelease,
			Command:     s.Command,
		})
		return nil
	}

	items := s.Syntax.Chords[braceIdx].Key.Items
	n := len(items)

	prefix, cmdItems, suffix, hasCmdBraces := splitCommand(s.Command)
	m := 0
	if hasCmdBraces {
		m = len(cmdItems)
	}
	if m != 0 && m != n {
		return fmt.Errorf("%w: key list has %d items, command list has %d at %d:%d", ErrMismatchedExpansion, n, m, s.Row, s.Col)
	}

	for i := 0; i < n; i++ {
		chords := make([]chord.Chord, len(s.Syntax.Chords))
		for j, cs := range s.Syntax.Chords {
			var atom ast.KeyAtom
			if j == braceIdx {
				atom = items[i]
			} else {
				atom = cs.Key.Items[0]
			}
			code, implicit, err := keyAtomCode(atom)
			if err != nil {
				return err
			}
			chords[j] = chord.Chord{Key: code, Mods: chordMasks[j] | implicit}
		}

		command := s.Command
		if m == n {
			command = prefix + cmdItems[i] + suffix
		}

		c.table.Put(hotkey.Hotkey{
			Chords:      chords,
			Passthrough: s.Syntax.Passthrough,
			Repeat:      s.Syntax.Repeat,
			OnRelease:   s.Syntax.OnRelease,
			Command:     command,
		})
	}
	return nil
}

// splitCommand finds the first top-level "{...}" in cmd and comma-splits
// its contents. Only one level of nesting is recognised (spec.md §4.E).
func splitCommand(cmd string) (prefix string, items []string, suffix string, ok bool) {
	open := strings.IndexByte(cmd, '{')
	if open == -1 {
		return cmd, nil, "", false
	}
	closeIdx := strings.IndexByte(cmd[open:], '}')
	if closeIdx == -1 {
		return cmd, nil, "", false
	}
	closeIdx += open
	return cmd[:open], strings.Split(cmd[open+1:closeIdx], ","), cmd[closeIdx+1:], true
}

func durationMillis(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}
