package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregLauar/Progress-Dashboard/internal/model"
)

// Column headers the financial exports must carry. Matching is
// case-insensitive and whitespace-trimmed.
const (
	ColDate     = "Data"
	ColCategory = "Categoria"
	ColNature   = "Natureza do Dado"
	ColBudget   = "Budget"
	ColActual   = "Actual/Est"

	ColObjective = "Objectives"
	ColChild     = "Child Items"
	ColProgress  = "Current"
)

// SchemaError reports a structurally invalid export: a missing column or a
// cell that cannot be parsed. It is fatal for the table it names.
type SchemaError struct {
	Path   string
	Column string
	Row    int // 1-based data row, 0 when the header itself is wrong
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: column %q: %s", e.Path, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: row %d, column %q: %s", e.Path, e.Row, e.Column, e.Reason)
}

// dateLayouts are the cell formats seen across the exports. Excel renders
// date cells per the sheet's number format, so several layouts are accepted.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"2006-01-02T15:04:05Z07:00",
}

// ParseFinancialRows converts sheet rows (header first) into financial
// records. No windowing or transforms happen here; the pipeline owns those.
func ParseFinancialRows(path string, rows [][]string) ([]model.FinancialRecord, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Path: path, Column: ColDate, Reason: "empty sheet"}
	}

	idx, err := headerIndex(path, rows[0], ColDate, ColCategory, ColNature, ColBudget, ColActual)
	if err != nil {
		return nil, err
	}

	var records []model.FinancialRecord
	for i, row := range rows[1:] {
		rowNum := i + 1
		if blankRow(row) {
			continue
		}

		date, err := parseDate(cell(row, idx[ColDate]))
		if err != nil {
			return nil, &SchemaError{Path: path, Column: ColDate, Row: rowNum, Reason: err.Error()}
		}

		budget, err := parseMoney(cell(row, idx[ColBudget]))
		if err != nil {
			return nil, &SchemaError{Path: path, Column: ColBudget, Row: rowNum, Reason: err.Error()}
		}

		actual, err := parseMoney(cell(row, idx[ColActual]))
		if err != nil {
			return nil, &SchemaError{Path: path, Column: ColActual, Row: rowNum, Reason: err.Error()}
		}

		records = append(records, model.FinancialRecord{
			Date:      date,
			Category:  strings.TrimSpace(cell(row, idx[ColCategory])),
			Nature:    model.DataNature(strings.TrimSpace(cell(row, idx[ColNature]))),
			Budget:    budget,
			ActualEst: actual,
		})
	}

	return records, nil
}

// ParseObjectiveRows converts OKR sheet rows into objective records.
// Progress cells may be fractions ("0.4") or percentages ("40%").
func ParseObjectiveRows(path string, rows [][]string) ([]model.ObjectiveRecord, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Path: path, Column: ColObjective, Reason: "empty sheet"}
	}

	idx, err := headerIndex(path, rows[0], ColObjective, ColChild, ColProgress)
	if err != nil {
		return nil, err
	}

	var records []model.ObjectiveRecord
	for i, row := range rows[1:] {
		rowNum := i + 1
		if blankRow(row) {
			continue
		}

		progress, err := parseProgress(cell(row, idx[ColProgress]))
		if err != nil {
			return nil, &SchemaError{Path: path, Column: ColProgress, Row: rowNum, Reason: err.Error()}
		}

		records = append(records, model.ObjectiveRecord{
			Objective: strings.TrimSpace(cell(row, idx[ColObjective])),
			ChildItem: strings.TrimSpace(cell(row, idx[ColChild])),
			Progress:  progress,
		})
	}

	return records, nil
}

// headerIndex maps required column names to their positions in the header row.
func headerIndex(path string, header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := make(map[string]int, len(required))
	for _, col := range required {
		pos, ok := idx[strings.ToLower(col)]
		if !ok {
			return nil, &SchemaError{Path: path, Column: col, Reason: "required column not found"}
		}
		out[col] = pos
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable number %q", s)
	}
	return d, nil
}

func parseProgress(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty progress cell")
	}

	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable progress %q", s)
	}
	if pct {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("progress %v outside [0,1]", v)
	}
	return v, nil
}
