// Package engine implements the event-driven chord/sequence matching
// state machine: spec.md §4.F's single source of truth for turning a
// KeyEvent plus a compiled table into a Consume/Passthrough decision.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hotkeyd/hotkeyd/internal/chord"
	"github.com/hotkeyd/hotkeyd/internal/hotkey"
	"github.com/hotkeyd/hotkeyd/internal/keycode"
	"github.com/hotkeyd/hotkeyd/internal/modifier"
	"github.com/hotkeyd/hotkeyd/internal/properties"
)

// EventKind distinguishes a key-down from a key-up.
type EventKind int

const (
	Down EventKind = iota
	Up
)

// KeyEvent is the engine's sole input, supplied by the OS event tap
// collaborator (spec.md §6).
type KeyEvent struct {
	Kind         EventKind
	Keycode      keycode.Code
	Mods         modifier.Mask
	IsAutorepeat bool
}

// Decision is the engine's sole output: whether the OS tap should
// suppress (Consume) or forward (Passthrough) the event.
type Decision int

const (
	Consume Decision = iota
	Passthrough
)

// Runner executes a matched hotkey's command. Fire-and-forget: the
// engine never waits on it (spec.md §5).
type Runner interface {
	Run(command string)
}

// exitChordKeycode is the reserved universal exit chord: RAlt + keycode 8
// (spec.md §4.F step 2, §9 Open Questions — gated by ExitChordEnabled).
const exitChordKeycode = keycode.Code(8)

var exitChordMods = modifier.AltRight

// state is the engine's mutable, single-threaded-steady-state data
// (spec.md §3's Engine state).
type state struct {
	currentChords []chord.Chord
	lastPressTime time.Time
	hasLastPress  bool
	lastTriggered *keycode.Code
}

func (s *state) reset() {
	s.currentChords = nil
	s.hasLastPress = false
	s.lastTriggered = nil
}

// Engine owns the mutable matching state and a shared-immutable reference
// to the currently published compiled table (spec.md §5: reload publishes
// a new table via atomic swap; the previous table is simply dropped once
// no event holds a reference to it).
type Engine struct {
	table atomic.Pointer[published]

	mu    sync.Mutex
	state state

	runner Runner

	// ExitChordEnabled gates the RAlt+keycode-8 universal exit chord
	// (spec.md §9 Open Questions — a development affordance that
	// production builds should disable).
	ExitChordEnabled bool

	// OnExit is invoked when the exit chord fires and ExitChordEnabled is
	// true. If nil, the exit chord is a silent Consume with no effect
	// beyond that.
	OnExit func()
}

type published struct {
	table *hotkey.CompiledTable
	props properties.Config
}

// New creates an Engine with an empty compiled table and the default
// timing properties.
func New(runner Runner) *Engine {
	e := &Engine{runner: runner}
	e.table.Store(&published{table: hotkey.NewCompiledTable(), props: properties.Default()})
	return e
}

// Reload atomically swaps in a newly compiled table and clears in-flight
// sequence state (spec.md §3 Lifecycles, §5 Shared-resource policy).
func (e *Engine) Reload(table *hotkey.CompiledTable, props properties.Config) {
	e.table.Store(&published{table: table, props: props})
	e.mu.Lock()
	e.state.reset()
	e.mu.Unlock()
}

// OnEvent runs spec.md §4.F's algorithm for a single event. It invokes
// the Runner at most once per call (spec.md §8 property 10).
func (e *Engine) OnEvent(ev KeyEvent) Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	pub := e.table.Load()
	current := chord.Chord{Key: ev.Keycode, Mods: ev.Mods}

	if e.ExitChordEnabled && ev.Keycode == exitChordKeycode && exitChordMods.ActivatedBy(current.Mods) {
		if e.OnExit != nil {
			e.OnExit()
		}
		return Consume
	}

	if ev.Kind == Up && e.state.lastTriggered != nil && *e.state.lastTriggered == ev.Keycode {
		e.state.lastTriggered = nil
		return Consume
	}

	if ev.Kind == Down && !ev.IsAutorepeat {
		if decision, handled := e.matchSequence(pub, current); handled {
			return decision
		}
	}

	return e.matchSingle(pub, ev, current)
}

// matchSequence implements spec.md §4.F step 5. The bool return reports
// whether the event was fully handled by sequence logic; false means the
// caller should fall through to single-chord matching with the (possibly
// reset) current chord.
func (e *Engine) matchSequence(pub *published, current chord.Chord) (Decision, bool) {
	now := time.Now()

	if e.state.hasLastPress && now.Sub(e.state.lastPressTime) > pub.props.MaxChordInterval {
		e.state.reset()
	}

	e.state.currentChords = append(e.state.currentChords, current)
	e.state.lastPressTime = now
	e.state.hasLastPress = true

	bestPrefix := false
	for _, hk := range pub.table.Entries() {
		if !hk.IsSequence() {
			continue
		}
		if !isActivationPrefix(hk.Chords, e.state.currentChords) {
			continue
		}
		if len(e.state.currentChords) == len(hk.Chords) {
			if hk.Command != "" && e.runner != nil {
				e.runner.Run(hk.Command)
			}
			e.state.reset()
			return Consume, true
		}
		bestPrefix = true
	}

	if bestPrefix {
		return Consume, true
	}

	// No compiled hotkey begins with this prefix: reset and fall through
	// to single-chord matching with the (new) current chord.
	e.state.reset()
	return Consume, false
}

// isActivationPrefix reports whether observed is an element-wise
// activation-equivalent (strict or exact) prefix of configured.
func isActivationPrefix(configured, observed []chord.Chord) bool {
	if len(observed) > len(configured) {
		return false
	}
	for i, obs := range observed {
		if !configured[i].ActivatedBy(obs) {
			return false
		}
	}
	return true
}

// matchSingle implements spec.md §4.F step 6. The repeat gate only guards
// whether the command fires; once the chord is activated and the event
// kind matches, the hotkey's Consume/Passthrough decision always applies
// (spec.md §8 property 8: a held-down bound key without `&` must keep
// consuming every autorepeat, it just stops re-firing the command).
func (e *Engine) matchSingle(pub *published, ev KeyEvent, current chord.Chord) Decision {
	for _, hk := range pub.table.Entries() {
		if hk.IsSequence() {
			continue
		}
		if !hk.Chords[0].ActivatedBy(current) {
			continue
		}

		kindOK := (!hk.OnRelease && ev.Kind == Down) || (hk.OnRelease && ev.Kind == Up)
		if !kindOK {
			continue
		}

		if !ev.IsAutorepeat || hk.Repeat {
			if hk.Command != "" && e.runner != nil {
				e.runner.Run(hk.Command)
			}
			if ev.Kind == Down {
				k := ev.Keycode
				e.state.lastTriggered = &k
			}
		}
		if hk.Passthrough {
			return Passthrough
		}
		return Consume
	}
	return Passthrough
}
