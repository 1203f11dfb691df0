// Package pipeline orchestrates table loading, caching, and series aggregation.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/source"
	"github.com/GregLauar/Progress-Dashboard/internal/store"
)

// ErrMissingData marks a required source file that is absent. Callers must
// treat it as fatal for the page that needed the table — never substitute
// empty data.
var ErrMissingData = errors.New("required data file missing")

// Tables holds the loaded, windowed, transformed source tables. They are
// read-only after load; derived series are computed fresh per view.
type Tables struct {
	Budget     []model.FinancialRecord
	AuM        []model.FinancialRecord
	Objectives []model.ObjectiveRecord

	// CacheHits counts source files served from the fingerprint cache.
	CacheHits int
}

// Load reads all three exports without cache assistance.
func Load(cfg config.Config) (*Tables, error) {
	return load(cfg, nil)
}

// LoadWithCache reads the exports, serving each file from the cache when its
// content fingerprint matches and refreshing the cache when it does not.
// Cached rows are already transformed, so transforms apply exactly once per
// file content version.
func LoadWithCache(cfg config.Config, cache *store.Cache) (*Tables, error) {
	return load(cfg, cache)
}

func load(cfg config.Config, cache *store.Cache) (*Tables, error) {
	start, end, err := cfg.WindowBounds()
	if err != nil {
		return nil, err
	}

	t := &Tables{}

	t.Budget, err = loadFinancial(cfg.BudgetPath(), start, end, cfg.TransformsFor("budget"), cache, &t.CacheHits)
	if err != nil {
		return nil, err
	}

	t.AuM, err = loadFinancial(cfg.AuMPath(), start, end, cfg.TransformsFor("aum"), cache, &t.CacheHits)
	if err != nil {
		return nil, err
	}

	t.Objectives, err = loadObjectives(cfg.OKRPath(), cache, &t.CacheHits)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func loadFinancial(path string, start, end time.Time, rules []config.TransformRule, cache *store.Cache, hits *int) ([]model.FinancialRecord, error) {
	if cache != nil {
		records, hit, err := cachedFinancial(cache, path)
		if err == nil && hit {
			*hits++
			return records, nil
		}
	}

	rows, err := source.ReadWorkbook(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingData)
		}
		return nil, err
	}

	records, err := source.ParseFinancialRows(path, rows)
	if err != nil {
		return nil, err
	}

	records = filterWindow(records, start, end)
	applyTransforms(records, rules)

	if cache != nil {
		if fp, err := store.FingerprintFile(path); err == nil {
			_ = cache.SaveFinancial(path, fp, records)
		}
	}

	return records, nil
}

func loadObjectives(path string, cache *store.Cache, hits *int) ([]model.ObjectiveRecord, error) {
	if cache != nil {
		fp, err := store.FingerprintFile(path)
		if err == nil {
			hit, merr := cache.Matches(path, fp)
			if merr == nil && hit {
				records, lerr := cache.LoadObjectives(path)
				if lerr == nil {
					*hits++
					return records, nil
				}
			}
		}
	}

	rows, err := source.ReadWorkbook(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingData)
		}
		return nil, err
	}

	records, err := source.ParseObjectiveRows(path, rows)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if fp, err := store.FingerprintFile(path); err == nil {
			_ = cache.SaveObjectives(path, fp, records)
		}
	}

	return records, nil
}

func cachedFinancial(cache *store.Cache, path string) ([]model.FinancialRecord, bool, error) {
	fp, err := store.FingerprintFile(path)
	if err != nil {
		return nil, false, err
	}
	hit, err := cache.Matches(path, fp)
	if err != nil || !hit {
		return nil, false, err
	}
	records, err := cache.LoadFinancial(path)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}

// filterWindow keeps rows whose date lies within [start, end] inclusive.
func filterWindow(records []model.FinancialRecord, start, end time.Time) []model.FinancialRecord {
	n := 0
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		records[n] = r
		n++
	}
	return records[:n]
}

// applyTransforms rewrites both value columns in place per the table's rules.
func applyTransforms(records []model.FinancialRecord, rules []config.TransformRule) {
	if len(rules) == 0 {
		return
	}
	for i, r := range records {
		for _, rule := range rules {
			if r.Category != rule.Category {
				continue
			}
			if rule.Scale != 0 && rule.Scale != 1 {
				factor := decimal.NewFromFloat(rule.Scale)
				r.Budget = r.Budget.Mul(factor)
				r.ActualEst = r.ActualEst.Mul(factor)
			}
			if rule.Negate {
				r.Budget = r.Budget.Neg()
				r.ActualEst = r.ActualEst.Neg()
			}
		}
		records[i] = r
	}
}

// Table returns the financial table a view references.
func (t *Tables) Table(ref model.TableRef) []model.FinancialRecord {
	if ref == model.TableAuM {
		return t.AuM
	}
	return t.Budget
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "progdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "progdash")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "tables.db")
}
