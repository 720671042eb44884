//go:build darwin

package main

import "github.com/hotkeyd/hotkeyd/internal/tap"

func newPlatformTap() tap.Tap {
	return tap.New()
}
