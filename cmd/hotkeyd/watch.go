package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hotkeyd/hotkeyd/internal/appconfig"
	"github.com/hotkeyd/hotkeyd/internal/engine"
	"github.com/hotkeyd/hotkeyd/internal/orchestrator"
	"github.com/hotkeyd/hotkeyd/internal/shellrun"
	"github.com/hotkeyd/hotkeyd/internal/tap"
)

// watchSink intercepts engine decisions and forwards them to the running
// bubbletea program as messages, the watch-mode analogue of the teacher's
// internal/tui debug panel.
type watchSink struct {
	eng  *engine.Engine
	prog *tea.Program
}

func (s *watchSink) OnEvent(ev engine.KeyEvent) engine.Decision {
	decision := s.eng.OnEvent(ev)
	s.prog.Send(eventMsg{ev: ev, decision: decision, at: time.Now()})
	return decision
}

type eventMsg struct {
	ev       engine.KeyEvent
	decision engine.Decision
	at       time.Time
}

type watchModel struct {
	events []eventMsg
	max    int
}

func newWatchModel() watchModel {
	return watchModel{max: 20}
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case eventMsg:
		m.events = append(m.events, msg)
		if len(m.events) > m.max {
			m.events = m.events[len(m.events)-m.max:]
		}
	}
	return m, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6AC1"))
	consumeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#64FFDA"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAB40"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func (m watchModel) View() string {
	out := titleStyle.Render("hotkeyd watch") + dimStyle.Render("  (q to quit)") + "\n\n"
	for _, e := range m.events {
		kind := "down"
		if e.ev.Kind == engine.Up {
			kind = "up"
		}
		decision := consumeStyle.Render("consume")
		if e.decision == engine.Passthrough {
			decision = passStyle.Render("passthrough")
		}
		out += fmt.Sprintf("%s  key=%-4d mods=%04x %-5s -> %s\n",
			dimStyle.Render(e.at.Format("15:04:05.000")), e.ev.Keycode, uint16(e.ev.Mods), kind, decision)
	}
	return out
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
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

	dbg := log.New(io.Discard, "", 0)
	runner := shellrun.New(dbg)
	eng := engine.New(runner)

	p := tea.NewProgram(newWatchModel())
	sink := &watchSink{eng: eng, prog: p}
	t := newPlatformTap()
	orch := orchestrator.New(cfg.HotkeyFile, eng, watchTapAdapter{t, sink}, dbg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := orch.Run(ctx); err != nil && ctx.Err() == nil {
			p.Send(tea.Quit())
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

// watchTapAdapter re-points a tap.Tap's sink argument at the watch
// wrapper instead of the bare engine, so every event also reaches the
// bubbletea program.
type watchTapAdapter struct {
	inner tap.Tap
	sink  *watchSink
}

func (a watchTapAdapter) Run(ctx context.Context, _ tap.EventSink) error {
	return a.inner.Run(ctx, a.sink)
}
