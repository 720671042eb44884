// Package properties defines the DSL's tunable timing properties.
package properties

import "time"

// Defaults per spec.md §3.
const (
	DefaultMaxChordInterval     = 3000 * time.Millisecond
	DefaultHoldModifierThreshold = 500 * time.Millisecond
	DefaultSimultaneousThreshold = 100 * time.Millisecond
)

// Config holds the three recognised DSL config properties, each set in
// milliseconds by a `name = value` statement.
type Config struct {
	// MaxChordInterval is the maximum inter-chord delay in a sequence
	// before the engine resets.
	MaxChordInterval time.Duration
	// HoldModifierThreshold is reserved for the hold-as-modifier feature,
	// which is not implemented (spec.md §9 Open Questions); the field
	// exists purely so config files that set it still load successfully.
	HoldModifierThreshold time.Duration
	// SimultaneousThreshold is reserved for multi-key simultaneous
	// chords, which spec.md §9 defers to future work; same as above.
	SimultaneousThreshold time.Duration
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		MaxChordInterval:      DefaultMaxChordInterval,
		HoldModifierThreshold: DefaultHoldModifierThreshold,
		SimultaneousThreshold: DefaultSimultaneousThreshold,
	}
}

// Names of the three recognised properties, as they appear in DSL text.
const (
	NameMaxChordInterval      = "max_chord_interval"
	NameHoldModifierThreshold = "hold_modifier_threshold"
	NameSimultaneousThreshold = "simultaneous_threshold"
)
