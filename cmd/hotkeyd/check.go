package main

import (
	"fmt"
	"os"

	"github.com/hotkeyd/hotkeyd/internal/interpreter"
	"github.com/hotkeyd/hotkeyd/internal/parser"
)

func runCheck(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: hotkeyd check <file>")
		os.Exit(2)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", args[0], err)
		os.Exit(1)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		os.Exit(1)
	}

	result, err := interpreter.Compile(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("ok: %d hotkeys, max_chord_interval=%s\n", result.Table.Len(), result.Properties.MaxChordInterval)
}
