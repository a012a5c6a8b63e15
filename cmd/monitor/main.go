package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ecegroup2/projectweb/internal/anim"
	"github.com/ecegroup2/projectweb/internal/config"
	"github.com/ecegroup2/projectweb/internal/display"
	"github.com/ecegroup2/projectweb/internal/source"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

const (
	plotHeight = 12
	margin     = 10 // eje y de asciigraph
)

type tickMsg time.Time

type fetchedMsg struct {
	ticket int
	res    source.Result
}

type model struct {
	d        *display.Display
	host     *anim.ManualHost
	interval time.Duration
	speed    float64
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) fetch() tea.Cmd {
	ticket := m.d.BeginFetch()
	return func() tea.Msg {
		return fetchedMsg{ticket: ticket, res: m.d.Resolve(context.Background())}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), m.fetch())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.d.Close()
			return m, tea.Quit
		case "f":
			return m, m.fetch()
		case " ":
			m.d.Toggle()
		case "r":
			m.d.Reset()
		}

	case tea.WindowSizeMsg:
		cols := msg.Width - margin
		if cols < 1 {
			cols = 1
		}
		m.d.Resize(int(float64(cols)*m.speed), plotHeight)

	case fetchedMsg:
		m.d.Apply(msg.ticket, msg.res)

	case tickMsg:
		// un frame del host por tick de la terminal
		m.host.Step()
		return m, tick(m.interval)
	}
	return m, nil
}

func (m model) View() string {
	var s strings.Builder
	st := m.d.Status()

	s.WriteString(headerStyle.Render("ECG monitor") + "\n")

	values := m.d.Values()
	switch {
	case st.Loading:
		s.WriteString("Loading ECG data...\n")
	case len(values) > 0:
		s.WriteString(graphStyle.Render(asciigraph.Plot(values, asciigraph.Height(plotHeight))) + "\n")
	default:
		s.WriteString("\n")
	}

	if st.Advisory != "" {
		s.WriteString(warnStyle.Render(st.Advisory) + "\n")
	}

	state := "paused"
	if st.Running {
		state = "running"
	}
	s.WriteString(labelStyle.Render("State") + valueStyle.Render(state) + "\n")
	s.WriteString(labelStyle.Render("Window") + valueStyle.Render(fmt.Sprintf("%d/%d", st.Length, st.Capacity)) + "\n")
	s.WriteString(labelStyle.Render("Source") + valueStyle.Render(fmt.Sprintf("%d samples", st.SourceLen)) + "\n")

	s.WriteString(helpStyle.Render("f fetch • space start/pause • r reset • q quit"))
	return s.String()
}

func main() {
	cfg := config.LoadConfig()

	var (
		apiURL  = flag.String("api", cfg.Source.APIURL, "remote ecgValues endpoint (empty = synthetic)")
		pattern = flag.String("pattern", cfg.Source.Pattern, "synthetic rhythm pattern")
		rate    = flag.Duration("rate", cfg.Display.RefreshRate, "frame interval")
		logFile = flag.String("log", "monitor.log", "log file")
	)
	flag.Parse()

	cfg.Source.APIURL = *apiURL
	cfg.Source.Pattern = *pattern

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	logger := config.NewLogger(f, cfg.App)

	// en la terminal cada columna es un sample
	cfg.Display.AnimationSpeed = 1
	cfg.Display.Width = 70
	cfg.Display.Height = plotHeight

	host := anim.NewManualHost()
	d := display.New(cfg, host, display.WithLogger(logger))

	m := model{d: d, host: host, interval: *rate, speed: cfg.Display.AnimationSpeed}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
