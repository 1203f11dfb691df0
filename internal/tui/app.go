// Package tui provides the interactive Bubble Tea dashboard for progdash.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/cycle"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"
	"github.com/GregLauar/Progress-Dashboard/internal/store"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/components"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// page identifies which screen the app is showing. Transitions are explicit:
// entering the presentation starts the cycler, leaving it stops it.
type page int

const (
	pageDashboard page = iota
	pageOKR
	pagePresentation
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Tables   *pipeline.Tables
	LoadTime time.Duration
	Err      error
}

// presentTickMsg fires once per presentation dwell interval.
type presentTickMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config

	// Data
	tables   *pipeline.Tables
	loaded   bool
	loadErr  error
	loadTime time.Duration
	lastLoad time.Time

	// Brand banner, shown on the dashboard when the asset exists.
	brand     string
	brandWarn string

	// UI state
	width  int
	height int
	page   page

	// OKR page state
	okrCursor int

	// Presentation state
	cycler *cycle.Cycler
	slide  model.ViewSpec
	onAir  bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner   spinner.Model
	reloading bool
	loadSub   chan tea.Msg
	startInTV bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model. startInTV opens directly in the
// presentation page once data is loaded.
func NewApp(cfg config.Config, startInTV bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:       cfg,
		needSetup: !config.Exists(),
		cycler:    cycle.New(cycle.Playlist(cfg)),
		spinner:   sp,
		loadSub:   make(chan tea.Msg, 1),
		startInTV: startInTV,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.cfg, a.loadSub),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case DataLoadedMsg:
		a.reloading = false
		a.loadTime = msg.LoadTime
		a.lastLoad = time.Now()
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.loaded = false
		} else {
			a.loadErr = nil
			a.tables = msg.Tables
			a.loaded = true
			a.brand, a.brandWarn = loadBrand(a.cfg)
		}

		// First run opens the setup form even when the default data
		// directory has nothing to load yet, so the user can point the
		// app at their files instead of hitting a retry dead end.
		if a.needSetup {
			a.setupForm = newSetupForm(a.cfg, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		if msg.Err != nil {
			return a, nil
		}
		if a.startInTV {
			a.startInTV = false
			return a.enterPresentation()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded && a.loadErr == nil {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case presentTickMsg:
		// A stop between ticks means this message is stale; drop it.
		if a.page != pagePresentation || a.cycler.State() != cycle.Running {
			return a, nil
		}
		if view, ok := a.cycler.Tick(); ok {
			a.slide = view
			a.onAir = true
		}
		return a, presentTickCmd(a.cfg.Delay())
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// The setup form owns the keyboard while it is on screen.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// A fatal load error still allows retry and quit.
	if a.loadErr != nil {
		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			a.loadErr = nil
			a.reloading = true
			return a, tea.Batch(loadDataCmd(a.cfg, a.loadSub), a.spinner.Tick)
		}
		return a, nil
	}

	if !a.loaded {
		return a, nil
	}

	// OKR page list navigation
	if a.page == pageOKR {
		summaries := a.objectiveSummaries()
		switch key {
		case "j", "down":
			if a.okrCursor < len(summaries)-1 {
				a.okrCursor++
			}
			return a, nil
		case "k", "up":
			if a.okrCursor > 0 {
				a.okrCursor--
			}
			return a, nil
		}
	}

	switch key {
	case "q":
		if a.page == pagePresentation {
			return a.leavePresentation()
		}
		return a, tea.Quit
	case "esc":
		if a.page == pagePresentation {
			return a.leavePresentation()
		}
		a.page = pageDashboard
		return a, nil
	case "r":
		if !a.reloading {
			a.reloading = true
			return a, loadDataCmd(a.cfg, a.loadSub)
		}
		return a, nil
	}

	// Page shortcuts share their definition with the tab bar.
	if len(key) == 1 {
		switch components.TabIdxByKey(rune(key[0])) {
		case 0:
			if a.page == pagePresentation {
				return a.leavePresentation()
			}
			a.page = pageDashboard
			return a, nil
		case 1:
			if a.page != pagePresentation {
				a.page = pageOKR
			}
			return a, nil
		case 2:
			if a.page != pagePresentation {
				return a.enterPresentation()
			}
			return a, nil
		}
	}

	return a, nil
}

// enterPresentation starts the cycler and shows its first view immediately;
// subsequent advances ride the dwell timer.
func (a App) enterPresentation() (tea.Model, tea.Cmd) {
	a.page = pagePresentation
	a.cycler.Start()
	if view, ok := a.cycler.Tick(); ok {
		a.slide = view
		a.onAir = true
	} else {
		a.onAir = false
	}
	return a, presentTickCmd(a.cfg.Delay())
}

// leavePresentation stops the cycler. The pending timer message is dropped
// in Update once the state reads as off.
func (a App) leavePresentation() (tea.Model, tea.Cmd) {
	a.cycler.Stop()
	a.onAir = false
	a.page = pageDashboard
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.cfg = a.setupVals.apply(a.cfg)
		_ = config.Save(a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.cycler = cycle.New(cycle.Playlist(a.cfg))
		a.needSetup = false
		a.setupForm = nil
		a.loadErr = nil
		a.reloading = true
		return a, loadDataCmd(a.cfg, a.loadSub)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) objectiveSummaries() []model.ObjectiveSummary {
	if a.tables == nil {
		return nil
	}
	return pipeline.SummarizeObjectives(a.tables.Objectives)
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.loadErr != nil {
		return a.viewLoadError()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.page == pagePresentation {
		return a.viewPresentation()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  progdash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ progdash"))
	b.WriteString(subtitleStyle.Render(" · Budget & OKR Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading spreadsheets..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// viewLoadError renders a fatal load failure. Missing source files never
// degrade to an empty dashboard.
func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Bold(true)

	bodyStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("✗ Data load failed"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.loadErr.Error()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[r]etry  [q]uit"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(int(a.page), w)

	dataAge := ""
	if !a.lastLoad.IsZero() {
		dataAge = fmt.Sprintf("%s ago", time.Since(a.lastLoad).Round(time.Second))
	}
	statusBar := components.RenderStatusBar(w, dataAge, a.brandWarn)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.page {
	case pageDashboard:
		content = a.renderDashboard(cw, contentH)
	case pageOKR:
		content = a.renderOKRPage(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func presentTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return presentTickMsg{}
	})
}

// loadDataCmd runs the data pipeline in a background goroutine so the
// spinner keeps animating while workbooks parse.
func loadDataCmd(cfg config.Config, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			cache, err := store.Open(pipeline.CachePath())
			if err == nil {
				tables, loadErr := pipeline.LoadWithCache(cfg, cache)
				_ = cache.Close()
				if loadErr == nil {
					sub <- DataLoadedMsg{Tables: tables, LoadTime: time.Since(start)}
					return
				}
				sub <- DataLoadedMsg{Err: loadErr, LoadTime: time.Since(start)}
				return
			}

			// Cache unavailable: load straight from the workbooks.
			tables, loadErr := pipeline.Load(cfg)
			sub <- DataLoadedMsg{Tables: tables, Err: loadErr, LoadTime: time.Since(start)}
		}()

		return <-sub
	}
}

// loadBrand reads the optional banner asset. A missing banner is a warning,
// never a load failure.
func loadBrand(cfg config.Config) (banner, warning string) {
	path := cfg.BrandPath()
	if path == "" {
		return "", ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Sprintf("brand asset not found: %s", path)
	}
	return strings.TrimRight(string(data), "\n"), ""
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
