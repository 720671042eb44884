// Package tap is the OS keyboard event tap collaborator: it owns the
// platform-specific code that turns real key presses into engine.KeyEvent
// values and feeds them to an EventSink. Per spec.md §1, its correctness
// is not itself a tested invariant — it exists so the daemon is a
// complete, runnable program.
package tap

import (
	"context"

	"github.com/hotkeyd/hotkeyd/internal/engine"
)

// EventSink receives decoded key events. *engine.Engine satisfies this
// via its OnEvent method.
type EventSink interface {
	OnEvent(engine.KeyEvent) engine.Decision
}

// Tap listens for global keyboard events and forwards them to a sink
// until ctx is cancelled.
type Tap interface {
	Run(ctx context.Context, sink EventSink) error
}
