package daemon

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"
)

func TestNew_Defaults(t *testing.T) {
	s := New(Config{App: config.DefaultConfig()})
	if s.cfg.Addr != "127.0.0.1:8787" {
		t.Errorf("Addr = %q", s.cfg.Addr)
	}
	if s.cfg.Interval != time.Minute {
		t.Errorf("Interval = %v, want 1m", s.cfg.Interval)
	}
}

func testTables() *pipeline.Tables {
	apr := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return &pipeline.Tables{
		Budget: []model.FinancialRecord{
			{Date: apr, Category: "Revenues", Nature: model.NatureActual,
				Budget: decimal.NewFromInt(100), ActualEst: decimal.NewFromInt(90)},
			{Date: may, Category: "Revenues", Nature: model.NatureForecast,
				Budget: decimal.NewFromInt(110), ActualEst: decimal.NewFromInt(105)},
		},
		Objectives: []model.ObjectiveRecord{
			{Objective: "Obj", ChildItem: "KR1", Progress: 0.25},
			{Objective: "Obj", ChildItem: "KR2", Progress: 0.75},
		},
	}
}

func TestHandleSeries(t *testing.T) {
	s := New(Config{App: config.DefaultConfig()})
	s.tables = testTables()

	req := httptest.NewRequest("GET", "/v1/series?table=budget&category=Revenues", nil)
	rec := httptest.NewRecorder()
	s.handleSeries(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload SeriesPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Points) != 2 {
		t.Fatalf("len(Points) = %d, want 2", len(payload.Points))
	}

	apr := payload.Points[0]
	if apr.Budget == nil || *apr.Budget != 100 {
		t.Errorf("April budget = %v, want 100", apr.Budget)
	}
	if apr.Actual == nil || *apr.Actual != 90 {
		t.Errorf("April actual = %v, want 90", apr.Actual)
	}
	if apr.Forecast != nil {
		t.Errorf("April forecast = %v, want null", *apr.Forecast)
	}

	may := payload.Points[1]
	if may.Actual != nil {
		t.Errorf("May actual = %v, want null", *may.Actual)
	}
	if may.Forecast == nil || *may.Forecast != 105 {
		t.Errorf("May forecast = %v, want 105", may.Forecast)
	}
}

func TestHandleSeries_Validation(t *testing.T) {
	s := New(Config{App: config.DefaultConfig()})
	s.tables = testTables()

	// Missing category is a client error.
	rec := httptest.NewRecorder()
	s.handleSeries(rec, httptest.NewRequest("GET", "/v1/series?table=budget", nil))
	if rec.Code != 400 {
		t.Errorf("missing category: status = %d, want 400", rec.Code)
	}

	// Unknown table is a client error.
	rec = httptest.NewRecorder()
	s.handleSeries(rec, httptest.NewRequest("GET", "/v1/series?table=nope&category=Revenues", nil))
	if rec.Code != 400 {
		t.Errorf("unknown table: status = %d, want 400", rec.Code)
	}

	// No data loaded yet is a 503, not an empty payload.
	s.tables = nil
	rec = httptest.NewRecorder()
	s.handleSeries(rec, httptest.NewRequest("GET", "/v1/series?category=Revenues", nil))
	if rec.Code != 503 {
		t.Errorf("no data: status = %d, want 503", rec.Code)
	}
}

func TestHandleOKR(t *testing.T) {
	s := New(Config{App: config.DefaultConfig()})
	s.tables = testTables()

	rec := httptest.NewRecorder()
	s.handleOKR(rec, httptest.NewRequest("GET", "/v1/okr", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}

	var payload []ObjectivePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("len = %d, want 1", len(payload))
	}
	if payload[0].AvgProgress != 0.5 {
		t.Errorf("AvgProgress = %v, want 0.5", payload[0].AvgProgress)
	}
	if len(payload[0].KeyResults) != 2 {
		t.Errorf("KeyResults = %+v", payload[0].KeyResults)
	}
}

func TestStatus_BeforeLoad(t *testing.T) {
	s := New(Config{App: config.DefaultConfig()})

	st := s.snapshotStatus()
	if st.BudgetRows != 0 || st.ObjectiveRows != 0 {
		t.Errorf("rows = %d/%d, want 0/0 before load", st.BudgetRows, st.ObjectiveRows)
	}
	if st.SlideDwellSec != 15 {
		t.Errorf("SlideDwellSec = %d, want 15", st.SlideDwellSec)
	}
	if st.PlaylistLength != 4 {
		t.Errorf("PlaylistLength = %d, want 4", st.PlaylistLength)
	}
}
