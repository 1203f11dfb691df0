package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects first-run form answers.
type setupValues struct {
	dataDir    string
	themeName  string
	delaySec   string
	includeOKR bool
}

// newSetupForm builds the first-run setup form, pre-filled from the current
// config so Enter-through keeps the defaults.
func newSetupForm(cfg config.Config, vals *setupValues) *huh.Form {
	vals.dataDir = cfg.Data.Dir
	vals.themeName = cfg.Appearance.Theme
	vals.delaySec = strconv.Itoa(cfg.Presentation.DelaySec)
	vals.includeOKR = cfg.Presentation.IncludeOKR

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to progdash").
				Description("A few questions before the first dashboard."),

			huh.NewInput().
				Title("Data directory").
				Description("Folder holding the budget, AuM, and OKR exports.").
				Value(&vals.dataDir),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),

			huh.NewInput().
				Title("Presentation dwell (seconds)").
				Description("How long each TV slide stays on screen.").
				Value(&vals.delaySec).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a whole number of seconds")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Include the OKR slide in the TV rotation?").
				Value(&vals.includeOKR),
		),
	)
}

// apply folds the form answers back into the config.
func (v setupValues) apply(cfg config.Config) config.Config {
	if dir := strings.TrimSpace(v.dataDir); dir != "" {
		cfg.Data.Dir = dir
	}
	cfg.Appearance.Theme = v.themeName
	if n, err := strconv.Atoi(strings.TrimSpace(v.delaySec)); err == nil && n >= 1 {
		cfg.Presentation.DelaySec = n
	}
	cfg.Presentation.IncludeOKR = v.includeOKR
	return cfg
}
