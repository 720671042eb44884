//go:build linux

package keycode

// Linux has no per-process "current keyboard layout" API symmetrical to
// macOS's TISCopyCurrentKeyboardLayoutInputSource (the layout lives in
// the X11/Wayland compositor, not in libc or the kernel evdev layer), so
// buildLayoutTable falls back to a fixed US-QWERTY evdev code table. This
// mirrors the teacher's own internal/hotkey/hotkey_linux.go keyNameMap.
var usQwertyEvdevCodes = map[byte]Code{
	'A': 30, 'B': 48, 'C': 46, 'D': 32, 'E': 18, 'F': 33, 'G': 34,
	'H': 35, 'I': 23, 'J': 36, 'K': 37, 'L': 38, 'M': 50, 'N': 49,
	'O': 24, 'P': 25, 'Q': 16, 'R': 19, 'S': 31, 'T': 20, 'U': 22,
	'V': 47, 'W': 17, 'X': 45, 'Y': 21, 'Z': 44,
	'0': 11, '1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10,
}

func buildLayoutTable() (map[byte]Code, bool) {
	table := make(map[byte]Code, len(usQwertyEvdevCodes))
	for k, v := range usQwertyEvdevCodes {
		table[k] = v
	}
	return table, true
}
