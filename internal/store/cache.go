// Package store provides a SQLite-backed cache for loaded table data,
// keyed by a content fingerprint of each source file.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregLauar/Progress-Dashboard/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache stores already-transformed records so repeated renders neither
// reread the workbooks nor re-apply the load-time transforms.
type Cache struct {
	db *sql.DB
}

// Fingerprint identifies one version of a source file's content.
type Fingerprint struct {
	SHA256    string
	SizeBytes int64
}

// FingerprintFile hashes a source file. Content hash, not mtime: a touched
// but unchanged file stays a cache hit, a rewritten file never does.
func FingerprintFile(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	return Fingerprint{
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		SizeBytes: n,
	}, nil
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Matches reports whether the cached fingerprint for a file equals fp.
func (c *Cache) Matches(path string, fp Fingerprint) (bool, error) {
	var sha string
	var size int64
	err := c.db.QueryRow("SELECT sha256, size_bytes FROM files WHERE file_path = ?", path).
		Scan(&sha, &size)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sha == fp.SHA256 && size == fp.SizeBytes, nil
}

// Invalidate drops a file and its cached rows.
func (c *Cache) Invalidate(path string) error {
	_, err := c.db.Exec("DELETE FROM files WHERE file_path = ?", path)
	return err
}

// SaveFinancial replaces the cached financial rows for one source file.
func (c *Cache) SaveFinancial(path string, fp Fingerprint, records []model.FinancialRecord) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertFile(tx, path, fp); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM financial_records WHERE file_path = ?", path); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO financial_records
		(file_path, record_date, category, nature, budget, actual_est)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		_, err := stmt.Exec(path, r.Date.UTC().Format(time.RFC3339), r.Category,
			string(r.Nature), r.Budget.String(), r.ActualEst.String())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadFinancial reads the cached financial rows for one source file.
func (c *Cache) LoadFinancial(path string) ([]model.FinancialRecord, error) {
	rows, err := c.db.Query(`SELECT record_date, category, nature, budget, actual_est
		FROM financial_records WHERE file_path = ?`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.FinancialRecord
	for rows.Next() {
		var dateStr, category, nature, budgetStr, actualStr string
		if err := rows.Scan(&dateStr, &category, &nature, &budgetStr, &actualStr); err != nil {
			return nil, err
		}

		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached date %q: %w", dateStr, err)
		}
		budget, err := decimal.NewFromString(budgetStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached budget %q: %w", budgetStr, err)
		}
		actual, err := decimal.NewFromString(actualStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached actual %q: %w", actualStr, err)
		}

		records = append(records, model.FinancialRecord{
			Date:      date,
			Category:  category,
			Nature:    model.DataNature(nature),
			Budget:    budget,
			ActualEst: actual,
		})
	}
	return records, rows.Err()
}

// SaveObjectives replaces the cached OKR rows for one source file.
func (c *Cache) SaveObjectives(path string, fp Fingerprint, records []model.ObjectiveRecord) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertFile(tx, path, fp); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM objective_records WHERE file_path = ?", path); err != nil {
		return err
	}

	for _, r := range records {
		_, err := tx.Exec(`INSERT INTO objective_records
			(file_path, objective, child_item, progress) VALUES (?, ?, ?, ?)`,
			path, r.Objective, r.ChildItem, r.Progress)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadObjectives reads the cached OKR rows for one source file.
// Row order is preserved by rowid so child items keep their sheet order.
func (c *Cache) LoadObjectives(path string) ([]model.ObjectiveRecord, error) {
	rows, err := c.db.Query(`SELECT objective, child_item, progress
		FROM objective_records WHERE file_path = ? ORDER BY rowid`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.ObjectiveRecord
	for rows.Next() {
		var r model.ObjectiveRecord
		if err := rows.Scan(&r.Objective, &r.ChildItem, &r.Progress); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func upsertFile(tx *sql.Tx, path string, fp Fingerprint) error {
	_, err := tx.Exec(`INSERT OR REPLACE INTO files (file_path, sha256, size_bytes, loaded_at)
		VALUES (?, ?, ?, ?)`,
		path, fp.SHA256, fp.SizeBytes, time.Now().UTC().Format(time.RFC3339))
	return err
}
