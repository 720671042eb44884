// Package orchestrator wires lexer -> parser -> interpreter -> engine
// into a runnable daemon and owns reload: it reads the hotkey config file
// for the running daemon and is the daemon's only caller of engine.Reload
// (spec.md §4.G). The check and list subcommands read and compile the
// file on their own.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hotkeyd/hotkeyd/internal/engine"
	"github.com/hotkeyd/hotkeyd/internal/interpreter"
	"github.com/hotkeyd/hotkeyd/internal/parser"
	"github.com/hotkeyd/hotkeyd/internal/tap"
)

// Orchestrator owns config loading, compilation, and reload for a single
// running daemon instance.
type Orchestrator struct {
	ConfigPath string
	Engine     *engine.Engine
	Logger     *log.Logger
	Tap        tap.Tap
}

// New creates an Orchestrator.
func New(configPath string, eng *engine.Engine, t tap.Tap, logger *log.Logger) *Orchestrator {
	return &Orchestrator{ConfigPath: configPath, Engine: eng, Logger: logger, Tap: t}
}

// compile reads the config file and runs lexer->parser->interpreter,
// returning the compiled result.
func (o *Orchestrator) compile() (*interpreter.Result, error) {
	src, err := os.ReadFile(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", o.ConfigPath, err)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	result, err := interpreter.Compile(prog)
	if err != nil {
		return nil, fmt.Errorf("compile config: %w", err)
	}
	for _, w := range result.Warnings {
		o.Logger.Printf("warning: %s", w)
	}
	return result, nil
}

// Load performs the initial compile-and-publish at startup.
func (o *Orchestrator) Load() error {
	result, err := o.compile()
	if err != nil {
		return err
	}
	o.Engine.Reload(result.Table, result.Properties)
	o.Logger.Printf("loaded %d hotkeys from %s", result.Table.Len(), o.ConfigPath)
	return nil
}

// Reload implements reload.Reloader: it recompiles the config and
// atomically republishes it. A bad edit is reported but the previously
// published table is left untouched (spec.md §7 propagation policy).
func (o *Orchestrator) Reload() error {
	result, err := o.compile()
	if err != nil {
		return err
	}
	o.Engine.Reload(result.Table, result.Properties)
	o.Logger.Printf("reloaded %d hotkeys from %s", result.Table.Len(), o.ConfigPath)
	return nil
}

// Run loads the initial config and then blocks, feeding tap events to the
// engine until ctx is cancelled or the tap returns a fatal error.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.Load(); err != nil {
		return err
	}
	return o.Tap.Run(ctx, o.Engine)
}
