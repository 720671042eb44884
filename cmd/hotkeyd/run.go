package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hotkeyd/hotkeyd/internal/appconfig"
	"github.com/hotkeyd/hotkeyd/internal/engine"
	"github.com/hotkeyd/hotkeyd/internal/orchestrator"
	"github.com/hotkeyd/hotkeyd/internal/reload"
	"github.com/hotkeyd/hotkeyd/internal/shellrun"
)

func runDaemon(args []string) {
	fs := flag.NewFlagSet("hotkeyd", flag.ExitOnError)
	debug := fs.Bool("debug", false, "enable debug logging to stderr and arm the RAlt+exit chord")
	cfgPath := fs.String("config", "", "daemon config path (default ~/.config/hotkeyd/hotkeyd.toml)")
	hotkeyFile := fs.String("hotkeys", "", "hotkey DSL config path (overrides the daemon config's hotkey_file)")
	fs.Parse(args)

	path := *cfgPath
	if path == "" {
		path = appconfig.DefaultPath()
	}
	cfg, err := appconfig.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *debug {
		cfg.Debug = true
	}
	if *hotkeyFile != "" {
		cfg.HotkeyFile = *hotkeyFile
	}

	var dbg *log.Logger
	if cfg.Debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	runner := shellrun.New(dbg)
	eng := engine.New(runner)
	eng.ExitChordEnabled = cfg.Debug || cfg.ExitChord

	t := newPlatformTap()
	orch := orchestrator.New(cfg.HotkeyFile, eng, t, dbg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng.OnExit = func() {
		dbg.Printf("exit chord fired, shutting down")
		cancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if cfg.WatchConfig {
		go func() {
			if err := reload.Watch(ctx, cfg.HotkeyFile, orch, dbg); err != nil && ctx.Err() == nil {
				dbg.Printf("reload watcher stopped: %v", err)
			}
		}()
	}

	dbg.Printf("hotkeyd starting, hotkeys=%s", cfg.HotkeyFile)
	if err := orch.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("hotkeyd: %v", err)
	}
}
