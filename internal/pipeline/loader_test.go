package pipeline

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/store"
)

// writeWorkbook creates an xlsx file with the given rows on the first sheet.
func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

var financialHeader = []interface{}{"Data", "Categoria", "Natureza do Dado", "Budget", "Actual/Est"}

// testConfig writes all three exports into a temp dir and returns a config
// pointing at them with the stock window and transforms.
func testConfig(t *testing.T, budgetRows, aumRows, okrRows [][]interface{}) config.Config {
	t.Helper()
	dir := t.TempDir()

	writeWorkbook(t, filepath.Join(dir, "budget.xlsx"), budgetRows)
	writeWorkbook(t, filepath.Join(dir, "aum.xlsx"), aumRows)
	writeWorkbook(t, filepath.Join(dir, "okr.xlsx"), okrRows)

	cfg := config.DefaultConfig()
	cfg.Data.Dir = dir
	cfg.Data.BudgetFile = "budget.xlsx"
	cfg.Data.AuMFile = "aum.xlsx"
	cfg.Data.OKRFile = "okr.xlsx"
	cfg.Data.BrandFile = ""
	return cfg
}

func defaultOKRRows() [][]interface{} {
	return [][]interface{}{
		{"Objectives", "Child Items", "Current"},
		{"Obj", "KR", "0.5"},
	}
}

func TestLoad_WindowFilter(t *testing.T) {
	budget := [][]interface{}{
		financialHeader,
		{"2025-03-31", "Revenues", "Actual", "1", "1"}, // day before window
		{"2025-04-01", "Revenues", "Actual", "2", "2"}, // first day, inclusive
		{"2026-03-31", "Revenues", "Forecast", "3", "3"}, // last day, inclusive
		{"2026-04-01", "Revenues", "Forecast", "4", "4"}, // day after window
	}
	aum := [][]interface{}{financialHeader}

	cfg := testConfig(t, budget, aum, defaultOKRRows())
	tables, err := Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(tables.Budget) != 2 {
		t.Fatalf("len(Budget) = %d, want 2 (window inclusive)", len(tables.Budget))
	}
	if tables.Budget[0].Budget.String() != "2" || tables.Budget[1].Budget.String() != "3" {
		t.Errorf("kept rows %s, %s, want 2, 3", tables.Budget[0].Budget, tables.Budget[1].Budget)
	}
}

func TestLoad_AuMTransforms(t *testing.T) {
	budget := [][]interface{}{financialHeader}
	aum := [][]interface{}{
		financialHeader,
		{"2025-04-01", "AuM at the EoP", "Actual", "1.5", "1.2"},
		{"2025-04-01", "Disbursement", "Actual", "10", "8"},
		{"2025-04-01", "Committed", "Actual", "7", "7"},
	}

	cfg := testConfig(t, budget, aum, defaultOKRRows())
	tables, err := Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.AuM) != 3 {
		t.Fatalf("len(AuM) = %d, want 3", len(tables.AuM))
	}

	// Stock AuM figures scale from millions to units.
	if got := tables.AuM[0].Budget.String(); got != "1500000" {
		t.Errorf("AuM budget = %s, want 1500000", got)
	}
	if got := tables.AuM[0].ActualEst.String(); got != "1200000" {
		t.Errorf("AuM actual = %s, want 1200000", got)
	}

	// Disbursements flip sign.
	if got := tables.AuM[1].Budget.String(); got != "-10" {
		t.Errorf("Disbursement budget = %s, want -10", got)
	}
	if got := tables.AuM[1].ActualEst.String(); got != "-8" {
		t.Errorf("Disbursement actual = %s, want -8", got)
	}

	// Untouched categories pass through.
	if got := tables.AuM[2].Budget.String(); got != "7" {
		t.Errorf("Committed budget = %s, want 7", got)
	}
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	cfg := testConfig(t, [][]interface{}{financialHeader}, [][]interface{}{financialHeader}, defaultOKRRows())
	cfg.Data.BudgetFile = "does-not-exist.xlsx"

	_, err := Load(cfg)
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("error = %v, want ErrMissingData", err)
	}
}

func TestLoadWithCache_SecondLoadHits(t *testing.T) {
	budget := [][]interface{}{
		financialHeader,
		{"2025-04-01", "Revenues", "Actual", "100", "90"},
	}
	aum := [][]interface{}{
		financialHeader,
		{"2025-04-01", "AuM at the EoP", "Actual", "2", "2"},
	}

	cfg := testConfig(t, budget, aum, defaultOKRRows())

	cache, err := store.Open(filepath.Join(t.TempDir(), "tables.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer cache.Close()

	first, err := LoadWithCache(cfg, cache)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.CacheHits != 0 {
		t.Errorf("first load CacheHits = %d, want 0", first.CacheHits)
	}

	second, err := LoadWithCache(cfg, cache)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if second.CacheHits != 3 {
		t.Errorf("second load CacheHits = %d, want 3", second.CacheHits)
	}

	// Cached rows carry the already-transformed values.
	if len(second.AuM) != 1 || second.AuM[0].Budget.String() != "2000000" {
		t.Errorf("cached AuM = %+v, want single row with budget 2000000", second.AuM)
	}
	if len(second.Budget) != 1 || second.Budget[0].ActualEst.String() != "90" {
		t.Errorf("cached Budget = %+v, want single row with actual 90", second.Budget)
	}
}
