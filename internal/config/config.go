// Package config loads and persists progdash configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all progdash configuration.
type Config struct {
	Data         DataConfig         `toml:"data"`
	Window       WindowConfig       `toml:"window"`
	Transforms   []TransformRule    `toml:"transforms"`
	Presentation PresentationConfig `toml:"presentation"`
	Appearance   AppearanceConfig   `toml:"appearance"`
}

// DataConfig holds the source file locations.
type DataConfig struct {
	Dir        string `toml:"dir"`
	BudgetFile string `toml:"budget_file"`
	AuMFile    string `toml:"aum_file"`
	OKRFile    string `toml:"okr_file"`
	BrandFile  string `toml:"brand_file,omitempty"`
}

// WindowConfig bounds the fiscal reporting window (inclusive).
type WindowConfig struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// TransformRule declares a load-time value transform for one category in one
// table. Scale and Negate apply to both the budget and actual/estimate columns.
type TransformRule struct {
	Table    string  `toml:"table"`
	Category string  `toml:"category"`
	Scale    float64 `toml:"scale,omitempty"`
	Negate   bool    `toml:"negate,omitempty"`
}

// PresentationConfig controls the auto-advancing view cycle.
type PresentationConfig struct {
	DelaySec   int         `toml:"delay_sec"`
	Views      []ViewEntry `toml:"views,omitempty"`
	IncludeOKR bool        `toml:"include_okr"`
}

// ViewEntry is one configured slide of the presentation cycle.
type ViewEntry struct {
	Title      string `toml:"title"`
	Table      string `toml:"table"`
	Category   string `toml:"category"`
	Cumulative bool   `toml:"cumulative,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the stock configuration: FY25 window, the three
// tabular exports under data_base/, and the original transform rules
// (AuM stock figures from millions to units, disbursements negated).
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Dir:        "data_base",
			BudgetFile: "budget_base_tabular.xlsx",
			AuMFile:    "budget_aum_tabular.xlsx",
			OKRFile:    "okr_tabular.xlsx",
			BrandFile:  "logo.txt",
		},
		Window: WindowConfig{
			Start: "2025-04-01",
			End:   "2026-03-31",
		},
		Transforms: []TransformRule{
			{Table: "aum", Category: "AuM at the EoP", Scale: 1_000_000},
			{Table: "aum", Category: "Disbursement", Negate: true},
		},
		Presentation: PresentationConfig{
			DelaySec:   15,
			IncludeOKR: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// WindowBounds parses the configured window into times. A malformed bound is
// a config error, not a silent default.
func (c Config) WindowBounds() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.Window.Start)
	if err != nil {
		return start, end, fmt.Errorf("parsing window start %q: %w", c.Window.Start, err)
	}
	end, err = time.Parse("2006-01-02", c.Window.End)
	if err != nil {
		return start, end, fmt.Errorf("parsing window end %q: %w", c.Window.End, err)
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("window end %s precedes start %s", c.Window.End, c.Window.Start)
	}
	return start, end, nil
}

// TransformsFor returns the transform rules that apply to one table.
func (c Config) TransformsFor(table string) []TransformRule {
	var rules []TransformRule
	for _, r := range c.Transforms {
		if r.Table == table {
			rules = append(rules, r)
		}
	}
	return rules
}

// BudgetPath returns the full path of the budget export.
func (c Config) BudgetPath() string { return filepath.Join(c.Data.Dir, c.Data.BudgetFile) }

// AuMPath returns the full path of the AuM export.
func (c Config) AuMPath() string { return filepath.Join(c.Data.Dir, c.Data.AuMFile) }

// OKRPath returns the full path of the OKR export.
func (c Config) OKRPath() string { return filepath.Join(c.Data.Dir, c.Data.OKRFile) }

// BrandPath returns the optional banner asset path, or "" if unset.
func (c Config) BrandPath() string {
	if c.Data.BrandFile == "" {
		return ""
	}
	return filepath.Join(c.Data.Dir, c.Data.BrandFile)
}

// Delay returns the presentation dwell time.
func (c Config) Delay() time.Duration {
	if c.Presentation.DelaySec < 1 {
		return 15 * time.Second
	}
	return time.Duration(c.Presentation.DelaySec) * time.Second
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "progdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "progdash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
