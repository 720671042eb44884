//go:build darwin

package keycode

/*
#cgo LDFLAGS: -framework Carbon

#include <Carbon/Carbon.h>
#include <stdlib.h>

// charForVirtualKey translates a macOS virtual keycode into the ASCII
// character it produces under the current keyboard layout, using the
// layout's own Unicode translation table. Returns 0 if the key does not
// produce a plain ASCII character (dead keys, layout gaps).
static unsigned char charForVirtualKey(int keycode) {
	TISInputSourceRef source = TISCopyCurrentKeyboardLayoutInputSource();
	if (source == NULL) {
		return 0;
	}
	CFDataRef layoutData = (CFDataRef)TISGetInputSourceProperty(source, kTISPropertyUnicodeKeyLayoutData);
	if (layoutData == NULL) {
		CFRelease(source);
		return 0;
	}
	const UCKeyboardLayout *layout = (const UCKeyboardLayout *)CFDataGetBytePtr(layoutData);

	UInt32 deadKeyState = 0;
	UniChar chars[4];
	UniCharCount length = 0;

	OSStatus status = UCKeyTranslate(layout, (UInt16)keycode, kUCKeyActionDown, 0,
		LMGetKbdType(), kUCKeyTranslateNoDeadKeysBit, &deadKeyState, 4, &length, chars);

	CFRelease(source);

	if (status != noErr || length == 0) {
		return 0;
	}
	if (chars[0] > 0x7E || chars[0] < 0x20) {
		return 0;
	}
	return (unsigned char)chars[0];
}
*/
import "C"

// candidateVirtualKeys is the macOS virtual-keycode range covering A-Z
// and 0-9 on every known layout; buildLayoutTable probes each and keeps
// whichever produces an ASCII letter or digit.
var candidateVirtualKeys = []int{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09,
	0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12, 0x13, 0x14,
	0x15, 0x16, 0x17, 0x19, 0x1A, 0x1C, 0x1D, 0x1F, 0x20, 0x22,
	0x23, 0x25, 0x26, 0x28, 0x2D, 0x2E,
}

func buildLayoutTable() (map[byte]Code, bool) {
	table := make(map[byte]Code, 36)
	for _, vk := range candidateVirtualKeys {
		ch := byte(C.charForVirtualKey(C.int(vk)))
		if ch == 0 {
			continue
		}
		upper := ch
		if upper >= 'a' && upper <= 'z' {
			upper -= 'a' - 'A'
		}
		table[upper] = Code(vk)
	}
	if len(table) == 0 {
		return nil, false
	}
	return table, true
}
