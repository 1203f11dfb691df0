package model

// ViewKind selects what a presentation view renders.
type ViewKind string

const (
	ViewChart ViewKind = "chart"
	ViewOKR   ViewKind = "okr"
)

// TableRef names one of the loaded financial tables.
type TableRef string

const (
	TableBudget TableRef = "budget"
	TableAuM    TableRef = "aum"
)

// ViewSpec describes one slide of the presentation cycle. Specs are built
// once when the cycle starts and consumed round-robin; they are immutable.
type ViewSpec struct {
	Kind       ViewKind
	Title      string
	Table      TableRef
	Category   string
	Cumulative bool
}
