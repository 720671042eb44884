//go:build linux

package main

import "github.com/hotkeyd/hotkeyd/internal/tap"

func newPlatformTap() tap.Tap {
	return tap.New("")
}
