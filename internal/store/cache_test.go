package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregLauar/Progress-Dashboard/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "tables.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFingerprintFile_ContentSensitive(t *testing.T) {
	path := writeFile(t, "version one")

	fp1, err := FingerprintFile(path)
	if err != nil {
		t.Fatalf("FingerprintFile: %v", err)
	}
	if fp1.SizeBytes != int64(len("version one")) {
		t.Errorf("SizeBytes = %d, want %d", fp1.SizeBytes, len("version one"))
	}

	// Same content hashes the same.
	fp2, err := FingerprintFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if fp1 != fp2 {
		t.Errorf("fingerprints differ for identical content: %+v vs %+v", fp1, fp2)
	}

	// Rewritten content (same length) changes the hash.
	if err := os.WriteFile(path, []byte("version two"), 0o600); err != nil {
		t.Fatal(err)
	}
	fp3, err := FingerprintFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if fp3.SHA256 == fp1.SHA256 {
		t.Error("hash unchanged after content rewrite")
	}
}

func TestCache_MatchesAndInvalidate(t *testing.T) {
	c := openTestCache(t)
	path := writeFile(t, "data")

	fp, err := FingerprintFile(path)
	if err != nil {
		t.Fatal(err)
	}

	hit, err := c.Matches(path, fp)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Matches = true before any save")
	}

	if err := c.SaveFinancial(path, fp, nil); err != nil {
		t.Fatalf("SaveFinancial: %v", err)
	}

	hit, err = c.Matches(path, fp)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("Matches = false after save")
	}

	// A different fingerprint is a miss.
	other := Fingerprint{SHA256: "deadbeef", SizeBytes: fp.SizeBytes}
	hit, err = c.Matches(path, other)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Matches = true for different hash")
	}

	if err := c.Invalidate(path); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	hit, err = c.Matches(path, fp)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Matches = true after Invalidate")
	}
}

func TestCache_FinancialRoundTrip(t *testing.T) {
	c := openTestCache(t)
	path := writeFile(t, "data")
	fp, err := FingerprintFile(path)
	if err != nil {
		t.Fatal(err)
	}

	records := []model.FinancialRecord{
		{
			Date:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Category:  "AuM at the EoP",
			Nature:    model.NatureActual,
			Budget:    decimal.RequireFromString("1500000"),
			ActualEst: decimal.RequireFromString("-8.25"),
		},
		{
			Date:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			Category:  "Disbursement",
			Nature:    model.NatureForecast,
			Budget:    decimal.RequireFromString("0"),
			ActualEst: decimal.RequireFromString("3.5"),
		},
	}

	if err := c.SaveFinancial(path, fp, records); err != nil {
		t.Fatalf("SaveFinancial: %v", err)
	}

	got, err := c.LoadFinancial(path)
	if err != nil {
		t.Fatalf("LoadFinancial: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}

	if !got[0].Date.Equal(records[0].Date) {
		t.Errorf("Date = %v, want %v", got[0].Date, records[0].Date)
	}
	if got[0].Nature != model.NatureActual {
		t.Errorf("Nature = %q", got[0].Nature)
	}
	if !got[0].Budget.Equal(records[0].Budget) {
		t.Errorf("Budget = %s, want %s", got[0].Budget, records[0].Budget)
	}
	if !got[0].ActualEst.Equal(records[0].ActualEst) {
		t.Errorf("ActualEst = %s, want %s", got[0].ActualEst, records[0].ActualEst)
	}

	// Saving again replaces, not appends.
	if err := c.SaveFinancial(path, fp, records[:1]); err != nil {
		t.Fatal(err)
	}
	got, err = c.LoadFinancial(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("len(got) = %d after re-save, want 1", len(got))
	}
}

func TestCache_ObjectivesKeepOrder(t *testing.T) {
	c := openTestCache(t)
	path := writeFile(t, "okr")
	fp, err := FingerprintFile(path)
	if err != nil {
		t.Fatal(err)
	}

	records := []model.ObjectiveRecord{
		{Objective: "Z", ChildItem: "z1", Progress: 0.9},
		{Objective: "A", ChildItem: "a1", Progress: 0.1},
		{Objective: "Z", ChildItem: "z2", Progress: 0.5},
	}

	if err := c.SaveObjectives(path, fp, records); err != nil {
		t.Fatalf("SaveObjectives: %v", err)
	}

	got, err := c.LoadObjectives(path)
	if err != nil {
		t.Fatalf("LoadObjectives: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], records[i])
		}
	}
}
