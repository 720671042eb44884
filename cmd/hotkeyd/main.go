// Command hotkeyd runs the keyboard hotkey daemon: a config DSL compiled
// to a dispatch table, matched against the live keyboard event stream.
package main

import (
	"fmt"
	"os"

	"github.com/hotkeyd/hotkeyd/internal/keycode"
)

func main() {
	if !keycode.Init() {
		fmt.Fprintln(os.Stderr, "hotkeyd: keyboard layout unavailable; single-character keys will not resolve")
	}
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "check":
			runCheck(os.Args[2:])
			return
		case "list":
			runList(os.Args[2:])
			return
		case "watch":
			runWatch(os.Args[2:])
			return
		case "help", "-h", "-help", "--help":
			usage()
			return
		}
	}
	runDaemon(os.Args[1:])
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hotkeyd [-debug] [-config path]
       hotkeyd check <file>
       hotkeyd list [-config path]
       hotkeyd watch [-config path]`)
}
