//go:build linux

package tap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	evdev "github.com/holoplot/go-evdev"

	"github.com/hotkeyd/hotkeyd/internal/engine"
	"github.com/hotkeyd/hotkeyd/internal/keycode"
	"github.com/hotkeyd/hotkeyd/internal/modifier"
)

// modState tracks which of the four L/R-capable modifier keys are
// currently held, since evdev reports each physical key independently
// rather than a combined flags word the way CGEvent does.
type modState struct {
	lalt, ralt, lshift, rshift, lcmd, rcmd, lctrl, rctrl, fn bool
}

func (s modState) mask() modifier.Mask {
	g := func(l, r bool) modifier.RawGroup { return modifier.RawGroup{Any: l || r, Left: l, Right: r} }
	return modifier.DecodeEvent(g(s.lalt, s.ralt), g(s.lshift, s.rshift), g(s.lcmd, s.rcmd), g(s.lctrl, s.rctrl), s.fn, false)
}

// trackModifier updates s in place for a raw evdev key code and value,
// returning true if code was a tracked modifier key.
func trackModifier(s *modState, code evdev.EvCode, down bool) bool {
	switch code {
	case evdev.KEY_LEFTALT:
		s.lalt = down
	case evdev.KEY_RIGHTALT:
		s.ralt = down
	case evdev.KEY_LEFTSHIFT:
		s.lshift = down
	case evdev.KEY_RIGHTSHIFT:
		s.rshift = down
	case evdev.KEY_LEFTMETA:
		s.lcmd = down
	case evdev.KEY_RIGHTMETA:
		s.rcmd = down
	case evdev.KEY_LEFTCTRL:
		s.lctrl = down
	case evdev.KEY_RIGHTCTRL:
		s.rctrl = down
	case evdev.KEY_FN:
		s.fn = down
	default:
		return false
	}
	return true
}

// Tap is the linux evdev event tap collaborator, adapted from the
// teacher's internal/hotkey/hotkey_linux.go single-key listener and
// generalized to decode the entire keyboard stream.
type Tap struct {
	DevicePath string
}

// New creates a linux event tap. If devicePath is empty, Run auto-detects
// a keyboard device under /dev/input.
func New(devicePath string) *Tap {
	return &Tap{DevicePath: devicePath}
}

// Run blocks until ctx is cancelled, decoding every key event and handing
// it to sink.
func (t *Tap) Run(ctx context.Context, sink EventSink) error {
	dev, err := findKeyboard(t.DevicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	// Grab makes this process the exclusive reader of the device, which
	// is what lets a Consume decision actually suppress a key from
	// reaching the focused application. Re-injecting Passthrough events
	// through a virtual uinput device is not implemented, so no event read
	// here reaches other readers of the device, whatever the decision.
	if err := dev.Grab(); err != nil {
		return fmt.Errorf("grab device: %w", err)
	}
	defer dev.Ungrab()

	errCh := make(chan error, 1)
	var state modState

	go func() {
		for {
			ev, err := dev.ReadOne()
			if err != nil {
				if errors.Is(err, os.ErrClosed) || strings.Contains(err.Error(), "file already closed") ||
					strings.Contains(err.Error(), "bad file descriptor") {
					errCh <- nil
					return
				}
				errCh <- fmt.Errorf("read event: %w", err)
				return
			}
			if ev.Type != evdev.EV_KEY {
				continue
			}

			down := ev.Value != 0
			isModifier := trackModifier(&state, ev.Code, down)

			kind := engine.Down
			if ev.Value == 0 {
				kind = engine.Up
			}

			// The device is grabbed exclusively, so a Consume decision is
			// already the effective outcome: the event never reaches
			// anything else. Modifier key events still flow through
			// OnEvent (consulting isModifier would only matter once
			// passthrough re-injection exists, per the Grab comment above).
			sink.OnEvent(engine.KeyEvent{
				Kind:         kind,
				Keycode:      keycode.Code(ev.Code),
				Mods:         state.mask(),
				IsAutorepeat: ev.Value == 2,
			})
			_ = isModifier
		}
	}()

	select {
	case <-ctx.Done():
		dev.Close()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// findKeyboard opens a specific device path, or auto-detects a keyboard
// by scanning /dev/input/event* for devices that support letter keys,
// distinguishing real keyboards from power buttons and mice.
func findKeyboard(devicePath string) (*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := evdev.Open(devicePath)
		if err != nil {
			return nil, fmt.Errorf("open device %s: %w", devicePath, err)
		}
		return dev, nil
	}

	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("glob /dev/input/event*: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(matches[i], "/dev/input/event"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(matches[j], "/dev/input/event"))
		return ni < nj
	})

	for _, path := range matches {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		if isKeyboard(dev) {
			return dev, nil
		}
		_ = dev.Close()
	}

	return nil, fmt.Errorf("no keyboard device found in /dev/input/event*")
}

// isKeyboard returns true if the device supports letter keys (KEY_A..KEY_Z)
// and has no relative axes (ruling out mice and trackpads).
func isKeyboard(dev *evdev.InputDevice) bool {
	for _, evType := range dev.CapableTypes() {
		if evType == evdev.EV_REL {
			return false
		}
	}

	keys := dev.CapableEvents(evdev.EV_KEY)
	hasA, hasZ := false, false
	for _, code := range keys {
		if code == evdev.KEY_A {
			hasA = true
		}
		if code == evdev.KEY_Z {
			hasZ = true
		}
	}
	return hasA && hasZ
}
