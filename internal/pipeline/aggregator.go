package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregLauar/Progress-Dashboard/internal/model"
)

// CompareSeries builds the three aligned series a comparison chart draws:
// budget summed by date over all rows of the category, actuals and forecasts
// summed by date from the Actual/Est column split on data nature. Any series
// may come back empty; that renders as an absent trace, not an error.
func CompareSeries(records []model.FinancialRecord, category string, cumulative bool) model.SeriesTriple {
	budget := make(map[time.Time]decimal.Decimal)
	actual := make(map[time.Time]decimal.Decimal)
	forecast := make(map[time.Time]decimal.Decimal)

	for _, r := range records {
		if r.Category != category {
			continue
		}
		budget[r.Date] = budget[r.Date].Add(r.Budget)

		switch r.Nature {
		case model.NatureActual:
			actual[r.Date] = actual[r.Date].Add(r.ActualEst)
		case model.NatureForecast:
			forecast[r.Date] = forecast[r.Date].Add(r.ActualEst)
		}
	}

	triple := model.SeriesTriple{
		Budget:   model.NewSeries(budget),
		Actual:   model.NewSeries(actual),
		Forecast: model.NewSeries(forecast),
	}

	if cumulative {
		triple.Budget = triple.Budget.Cumulative()
		triple.Actual = triple.Actual.Cumulative()
		triple.Forecast = triple.Forecast.Cumulative()
	}

	return triple
}

// Categories returns the distinct categories of a table in first-seen order.
func Categories(records []model.FinancialRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Category]; !ok {
			seen[r.Category] = struct{}{}
			out = append(out, r.Category)
		}
	}
	return out
}
