package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecegroup2/projectweb/internal/anim"
	"github.com/ecegroup2/projectweb/internal/config"
	"github.com/ecegroup2/projectweb/internal/display"
)

func newTestModel() model {
	cfg := config.LoadConfig()
	cfg.Source.APIURL = ""
	cfg.Source.Seed = 1
	cfg.Display.AnimationSpeed = 1
	cfg.Display.Width = 30

	host := anim.NewManualHost()
	d := display.New(cfg, host, display.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return model{d: d, host: host, interval: time.Millisecond, speed: 1}
}

func TestMonitorLoop(t *testing.T) {
	m := newTestModel()
	ticket := m.d.BeginFetch()
	res := m.d.Resolve(context.Background())

	next, _ := m.Update(fetchedMsg{ticket: ticket, res: res})
	m = next.(model)
	for i := 0; i < 5; i++ {
		next, cmd := m.Update(tickMsg(time.Now()))
		m = next.(model)
		if cmd == nil {
			t.Fatal("tick did not schedule its successor")
		}
	}
	if got := m.d.Status().Length; got != 5 {
		t.Fatalf("length = %d, want 5", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(model)
	if m.d.Running() {
		t.Fatal("space did not pause")
	}
	m.Update(tickMsg(time.Now()))
	if got := m.d.Status().Length; got != 5 {
		t.Errorf("length changed while paused: %d", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(model)
	if !m.d.Running() || m.d.Status().Length != 0 {
		t.Errorf("reset: %+v", m.d.Status())
	}

	if !strings.Contains(m.View(), "running") {
		t.Error("view does not show the running state")
	}
}

func TestMonitorResize(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	if got := m.d.Status().Capacity; got != 40 {
		t.Errorf("capacity = %d, want 40", got)
	}
}

func TestMonitorRepeatedFetchKeepsNewest(t *testing.T) {
	m := newTestModel()
	f := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}

	next, first := m.Update(f)
	m = next.(model)
	next, second := m.Update(f)
	m = next.(model)

	// llegan al revés de como se pidieron
	newer, older := second(), first()

	next, _ = m.Update(newer)
	m = next.(model)
	for i := 0; i < 2; i++ {
		next, _ = m.Update(tickMsg(time.Now()))
		m = next.(model)
	}
	next, _ = m.Update(older)
	m = next.(model)

	st := m.d.Status()
	if st.Fetches != 2 || st.Length != 2 {
		t.Errorf("older fetch replaced the newer one: %+v", st)
	}
}
