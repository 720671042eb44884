//go:build darwin

package tap

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation

#include <CoreGraphics/CoreGraphics.h>
#include <ApplicationServices/ApplicationServices.h>

extern int goTapCallback(int type, int64_t keycode, uint64_t flags, int autorepeat);

static CFMachPortRef gTap = NULL;
static CFRunLoopRef gRunLoop = NULL;
static CFRunLoopSourceRef gSource = NULL;

static CGEventRef tapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon) {
	if (type == kCGEventTapDisabledByTimeout || type == kCGEventTapDisabledByUserInput) {
		if (gTap != NULL) {
			CGEventTapEnable(gTap, true);
		}
		return event;
	}

	int64_t keycode = CGEventGetIntegerValueField(event, kCGKeyboardEventKeycode);
	uint64_t flags = (uint64_t)CGEventGetFlags(event);
	int autorepeat = (int)CGEventGetIntegerValueField(event, kCGKeyboardEventAutorepeat);

	int consume = goTapCallback((int)type, keycode, flags, autorepeat);
	if (consume) {
		return NULL;
	}
	return event;
}

// startEventTap creates the tap, attaches it to a fresh run loop, and
// blocks in CFRunLoopRun until stopEventTap is called from another thread.
// Returns 0 on a clean stop, nonzero if the tap could not be created
// (usually a missing Input Monitoring grant).
static int startEventTap(void) {
	CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventKeyUp);

	gTap = CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap,
		kCGEventTapOptionDefault, mask, tapCallback, NULL);
	if (gTap == NULL) {
		return 1;
	}

	gSource = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, gTap, 0);
	gRunLoop = CFRunLoopGetCurrent();
	CFRunLoopAddSource(gRunLoop, gSource, kCFRunLoopCommonModes);
	CGEventTapEnable(gTap, true);

	CFRunLoopRun();

	CFRunLoopRemoveSource(gRunLoop, gSource, kCFRunLoopCommonModes);
	CFRelease(gSource);
	CFRelease(gTap);
	gTap = NULL;
	gSource = NULL;
	gRunLoop = NULL;
	return 0;
}

static void stopEventTap(void) {
	if (gRunLoop != NULL) {
		CFRunLoopStop(gRunLoop);
	}
}
*/
import "C"

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hotkeyd/hotkeyd/internal/engine"
	"github.com/hotkeyd/hotkeyd/internal/keycode"
	"github.com/hotkeyd/hotkeyd/internal/modifier"
)

// CGEventFlags bits this package decodes. The left/right-specific NX
// device masks are not exposed through CGEventFlags, so macOS activation
// is necessarily generic-only for Alt/Shift/Cmd/Ctrl (documented as a
// platform asymmetry, not a bug).
const (
	flagShift   = 0x00020000
	flagCtrl    = 0x00040000
	flagAlt     = 0x00080000
	flagCmd     = 0x00100000
	flagSecFn   = 0x00800000
)

var activeSink EventSink
var sinkMu sync.Mutex

// Tap is the darwin CGEventTap collaborator, adapted from the teacher's
// internal/hotkey/hotkey_darwin.go CGEventTap bridge and generalized from
// a single hotkey listener to a full keyboard stream.
type Tap struct{}

// New creates a darwin event tap.
func New() *Tap {
	return &Tap{}
}

// Run blocks until ctx is cancelled, decoding every key event and handing
// it to sink.
func (t *Tap) Run(ctx context.Context, sink EventSink) error {
	sinkMu.Lock()
	activeSink = sink
	sinkMu.Unlock()
	defer func() {
		sinkMu.Lock()
		activeSink = nil
		sinkMu.Unlock()
	}()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	go func() {
		<-ctx.Done()
		C.stopEventTap()
	}()

	if ret := C.startEventTap(); ret != 0 {
		return fmt.Errorf("create event tap (grant Input Monitoring permission in System Settings > Privacy & Security > Input Monitoring)")
	}
	return ctx.Err()
}

//export goTapCallback
func goTapCallback(eventType C.int, keycodeVal C.int64_t, flags C.uint64_t, autorepeat C.int) C.int {
	sinkMu.Lock()
	sink := activeSink
	sinkMu.Unlock()
	if sink == nil {
		return 0
	}

	kind := engine.Down
	if int(eventType) == C.kCGEventKeyUp {
		kind = engine.Up
	}

	f := uint64(flags)
	alt := modifier.RawGroup{Any: f&flagAlt != 0}
	shift := modifier.RawGroup{Any: f&flagShift != 0}
	cmd := modifier.RawGroup{Any: f&flagCmd != 0}
	ctrl := modifier.RawGroup{Any: f&flagCtrl != 0}
	fn := f&flagSecFn != 0

	mask := modifier.DecodeEvent(alt, shift, cmd, ctrl, fn, false)

	decision := sink.OnEvent(engine.KeyEvent{
		Kind:         kind,
		Keycode:      keycode.Code(keycodeVal),
		Mods:         mask,
		IsAutorepeat: autorepeat != 0,
	})
	if decision == engine.Consume {
		return 1
	}
	return 0
}
