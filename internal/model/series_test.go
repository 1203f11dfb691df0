package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(m, d int) time.Time {
	return time.Date(2025, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNewSeries_Sorted(t *testing.T) {
	s := NewSeries(map[time.Time]decimal.Decimal{
		day(6, 1): decimal.NewFromInt(3),
		day(4, 1): decimal.NewFromInt(1),
		day(5, 1): decimal.NewFromInt(2),
	})

	if len(s) != 3 {
		t.Fatalf("len = %d, want 3", len(s))
	}
	for i := 1; i < len(s); i++ {
		if !s[i-1].Date.Before(s[i].Date) {
			t.Errorf("series not ascending at %d: %v >= %v", i, s[i-1].Date, s[i].Date)
		}
	}
}

func TestSeries_CumulativeDiffRoundTrip(t *testing.T) {
	s := Series{
		{Date: day(4, 1), Value: decimal.NewFromInt(10)},
		{Date: day(5, 1), Value: decimal.NewFromInt(-5)},
		{Date: day(6, 1), Value: decimal.NewFromInt(7)},
	}

	cum := s.Cumulative()
	want := []int64{10, 5, 12}
	for i, w := range want {
		if !cum[i].Value.Equal(decimal.NewFromInt(w)) {
			t.Errorf("Cumulative[%d] = %s, want %d", i, cum[i].Value, w)
		}
	}

	back := cum.Diff()
	for i := range s {
		if !back[i].Value.Equal(s[i].Value) {
			t.Errorf("Diff(Cumulative)[%d] = %s, want %s", i, back[i].Value, s[i].Value)
		}
	}
}

func TestSeries_ValueAt(t *testing.T) {
	s := Series{
		{Date: day(4, 1), Value: decimal.NewFromInt(10)},
	}

	v, ok := s.ValueAt(day(4, 1))
	if !ok || !v.Equal(decimal.NewFromInt(10)) {
		t.Errorf("ValueAt hit = %s/%v, want 10/true", v, ok)
	}
	if _, ok := s.ValueAt(day(5, 1)); ok {
		t.Error("ValueAt miss reported ok")
	}
}

func TestSeriesTriple_DatesUnion(t *testing.T) {
	triple := SeriesTriple{
		Budget:   Series{{Date: day(4, 1)}, {Date: day(5, 1)}},
		Actual:   Series{{Date: day(4, 1)}},
		Forecast: Series{{Date: day(6, 1)}},
	}

	dates := triple.Dates()
	if len(dates) != 3 {
		t.Fatalf("len(dates) = %d, want 3", len(dates))
	}
	wantMonths := []time.Month{4, 5, 6}
	for i, w := range wantMonths {
		if dates[i].Month() != w {
			t.Errorf("dates[%d] = %v, want month %d", i, dates[i], w)
		}
	}
}

func TestSeriesTriple_Empty(t *testing.T) {
	var triple SeriesTriple
	if !triple.Empty() {
		t.Error("zero triple not empty")
	}
	triple.Forecast = Series{{Date: day(4, 1)}}
	if triple.Empty() {
		t.Error("triple with a forecast point reported empty")
	}
}
