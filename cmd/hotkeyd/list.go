package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hotkeyd/hotkeyd/internal/appconfig"
	"github.com/hotkeyd/hotkeyd/internal/hotkey"
	"github.com/hotkeyd/hotkeyd/internal/interpreter"
	"github.com/hotkeyd/hotkeyd/internal/parser"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00E5FF"))
	chordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A7C080"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DBBC7F"))
	cmdStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D3C6AA"))
)

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	cfgPath := fs.String("config", "", "daemon config path")
	fs.Parse(args)

	path := *cfgPath
	if path == "" {
		path = appconfig.DefaultPath()
	}
	cfg, err := appconfig.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	src, err := os.ReadFile(cfg.HotkeyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", cfg.HotkeyFile, err)
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

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s — %d hotkeys", cfg.HotkeyFile, result.Table.Len())))
	for _, hk := range result.Table.Entries() {
		fmt.Println(renderEntry(hk))
	}
}

func renderEntry(hk *hotkey.Hotkey) string {
	parts := make([]string, len(hk.Chords))
	for i, c := range hk.Chords {
		parts[i] = c.String()
	}
	chord := chordStyle.Render(strings.Join(parts, " ; "))

	var flags []string
	if hk.Passthrough {
		flags = append(flags, "@")
	}
	if hk.Repeat {
		flags = append(flags, "&")
	}
	if hk.OnRelease {
		flags = append(flags, "^")
	}
	flagStr := ""
	if len(flags) > 0 {
		flagStr = " " + flagStyle.Render(strings.Join(flags, ""))
	}

	return fmt.Sprintf("  %s%s : %s", chord, flagStr, cmdStyle.Render(hk.Command))
}
