package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/cycle"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"
)

func loadedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(config.DefaultConfig(), false)
	a.needSetup = false
	a.loaded = true
	a.tables = &pipeline.Tables{}
	a.width = 100
	a.height = 30
	return a
}

func press(t *testing.T, a App, key string) (App, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestPageTransitions(t *testing.T) {
	a := loadedApp(t)
	if a.page != pageDashboard {
		t.Fatalf("initial page = %d, want dashboard", a.page)
	}

	a, _ = press(t, a, "o")
	if a.page != pageOKR {
		t.Errorf("after o: page = %d, want okr", a.page)
	}

	a, _ = press(t, a, "d")
	if a.page != pageDashboard {
		t.Errorf("after d: page = %d, want dashboard", a.page)
	}

	a, cmd := press(t, a, "t")
	if a.page != pagePresentation {
		t.Fatalf("after t: page = %d, want presentation", a.page)
	}
	if a.cycler.State() != cycle.Running {
		t.Error("entering the presentation did not start the cycler")
	}
	if !a.onAir {
		t.Error("presentation entered with no slide on air")
	}
	if cmd == nil {
		t.Error("entering the presentation scheduled no tick")
	}

	a, _ = press(t, a, "esc")
	if a.page != pageDashboard {
		t.Errorf("after esc: page = %d, want dashboard", a.page)
	}
	if a.cycler.State() != cycle.Off {
		t.Error("leaving the presentation did not stop the cycler")
	}
	if a.onAir {
		t.Error("slide still on air after leaving")
	}
}

func TestPresentationTickAdvances(t *testing.T) {
	a := loadedApp(t)
	a, _ = press(t, a, "t")
	first := a.slide

	m, cmd := a.Update(presentTickMsg{})
	a = m.(App)

	if a.slide.Title == first.Title {
		t.Errorf("tick did not advance past %q", first.Title)
	}
	if cmd == nil {
		t.Error("tick did not reschedule itself")
	}
}

func TestStaleTickDroppedAfterStop(t *testing.T) {
	a := loadedApp(t)
	a, _ = press(t, a, "t")
	a, _ = press(t, a, "q")
	if a.cycler.State() != cycle.Off {
		t.Fatal("q inside the presentation did not stop the cycler")
	}

	idx := a.cycler.Index()
	m, cmd := a.Update(presentTickMsg{})
	a = m.(App)

	if cmd != nil {
		t.Error("stale tick rescheduled after stop")
	}
	if a.cycler.Index() != idx {
		t.Error("stale tick advanced the playlist")
	}
	if a.page != pageDashboard {
		t.Errorf("page = %d, want dashboard", a.page)
	}
}

func TestFirstRunLoadErrorShowsSetup(t *testing.T) {
	a := NewApp(config.DefaultConfig(), false)
	a.needSetup = true
	a.width = 100
	a.height = 30

	m, cmd := a.Update(DataLoadedMsg{Err: errors.New("open budget.xlsx: no such file or directory")})
	a = m.(App)

	if a.setupForm == nil {
		t.Fatal("load failure on first run did not open the setup form")
	}
	if cmd == nil {
		t.Error("setup form init command missing")
	}
	if out := a.View(); strings.Contains(out, "Data load failed") {
		t.Error("first run rendered the fatal error screen instead of setup")
	}
}

func TestLoadErrorAllowsRetry(t *testing.T) {
	a := NewApp(config.DefaultConfig(), false)
	a.needSetup = false
	a.width = 100
	a.height = 30

	m, _ := a.Update(DataLoadedMsg{Err: errors.New("boom")})
	a = m.(App)

	if !strings.Contains(a.View(), "Data load failed") {
		t.Fatal("load failure did not render the error screen")
	}

	a, cmd := press(t, a, "r")
	if !a.reloading || cmd == nil {
		t.Error("r on the error screen did not trigger a reload")
	}
}
