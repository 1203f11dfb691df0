// Package model defines domain types for the budget dashboard.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataNature labels a financial row as realized or projected.
type DataNature string

const (
	NatureActual   DataNature = "Actual"
	NatureForecast DataNature = "Forecast"
)

// Well-known categories from the budget exports. Category values are free
// strings in the source files; these are the ones the default views chart.
const (
	CategoryAuM          = "AuM at the EoP"
	CategoryDisbursement = "Disbursement"
	CategoryCommitted    = "Committed"
	CategoryRevenues     = "Revenues - Net of ECL"
	CategoryProfit       = "PROFIT BEFORE TAX"
)

// FinancialRecord is one row of a budget/actual export after loading:
// date-windowed and with per-category transforms already applied.
type FinancialRecord struct {
	Date      time.Time
	Category  string
	Nature    DataNature
	Budget    decimal.Decimal
	ActualEst decimal.Decimal
}

// ObjectiveRecord is one key-result row of the OKR export.
// Progress is a fraction in [0,1], not a percentage.
type ObjectiveRecord struct {
	Objective string
	ChildItem string
	Progress  float64
}

// ObjectiveSummary aggregates the key results sharing one objective.
type ObjectiveSummary struct {
	Objective   string
	AvgProgress float64
	Children    []ObjectiveRecord
}
