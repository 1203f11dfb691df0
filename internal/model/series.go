package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Point is one dated value in a series.
type Point struct {
	Date  time.Time
	Value decimal.Decimal
}

// Series is a time series ordered ascending by date. Dates are unique:
// the aggregator sums duplicates before a Series is built.
type Series []Point

// SeriesTriple holds the three aligned series a comparison chart draws.
// It is derived per view request and never cached; any member may be empty.
type SeriesTriple struct {
	Budget   Series
	Actual   Series
	Forecast Series
}

// NewSeries builds a date-sorted series from a date→value map.
func NewSeries(byDate map[time.Time]decimal.Decimal) Series {
	if len(byDate) == 0 {
		return nil
	}
	s := make(Series, 0, len(byDate))
	for d, v := range byDate {
		s = append(s, Point{Date: d, Value: v})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	return s
}

// Cumulative returns the running prefix sum of s in date order.
func (s Series) Cumulative() Series {
	if len(s) == 0 {
		return nil
	}
	out := make(Series, len(s))
	run := decimal.Zero
	for i, p := range s {
		run = run.Add(p.Value)
		out[i] = Point{Date: p.Date, Value: run}
	}
	return out
}

// Diff returns successive differences, the inverse of Cumulative.
func (s Series) Diff() Series {
	if len(s) == 0 {
		return nil
	}
	out := make(Series, len(s))
	prev := decimal.Zero
	for i, p := range s {
		out[i] = Point{Date: p.Date, Value: p.Value.Sub(prev)}
		prev = p.Value
	}
	return out
}

// ValueAt returns the value for a date and whether it is present.
func (s Series) ValueAt(d time.Time) (decimal.Decimal, bool) {
	for _, p := range s {
		if p.Date.Equal(d) {
			return p.Value, true
		}
	}
	return decimal.Zero, false
}

// Dates returns the union of dates across the triple, ascending.
func (t SeriesTriple) Dates() []time.Time {
	seen := make(map[time.Time]struct{})
	var dates []time.Time
	for _, s := range []Series{t.Budget, t.Actual, t.Forecast} {
		for _, p := range s {
			if _, ok := seen[p.Date]; !ok {
				seen[p.Date] = struct{}{}
				dates = append(dates, p.Date)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Empty reports whether no series in the triple has any points.
func (t SeriesTriple) Empty() bool {
	return len(t.Budget) == 0 && len(t.Actual) == 0 && len(t.Forecast) == 0
}
