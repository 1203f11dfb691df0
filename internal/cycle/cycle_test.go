package cycle

import (
	"testing"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
)

func threeViews() []model.ViewSpec {
	return []model.ViewSpec{
		{Kind: model.ViewChart, Title: "A"},
		{Kind: model.ViewChart, Title: "B"},
		{Kind: model.ViewOKR, Title: "C"},
	}
}

func TestCycler_OffByDefault(t *testing.T) {
	c := New(threeViews())
	if c.State() != Off {
		t.Errorf("State = %v, want Off", c.State())
	}
	if _, ok := c.Tick(); ok {
		t.Error("Tick returned a view while off")
	}
	if _, ok := c.Current(); ok {
		t.Error("Current returned a view while off")
	}
}

func TestCycler_RoundRobin(t *testing.T) {
	c := New(threeViews())
	c.Start()

	want := []string{"A", "B", "C", "A", "B"}
	for i, w := range want {
		view, ok := c.Tick()
		if !ok {
			t.Fatalf("tick %d: not ok", i)
		}
		if view.Title != w {
			t.Errorf("tick %d = %q, want %q", i, view.Title, w)
		}
	}
	// After 3 full ticks the index wrapped to the third position again.
	if c.Index() != 2 {
		t.Errorf("Index = %d, want 2", c.Index())
	}
}

func TestCycler_StopKeepsPosition(t *testing.T) {
	c := New(threeViews())
	c.Start()
	c.Tick() // A consumed, index now 1

	c.Stop()
	if _, ok := c.Tick(); ok {
		t.Error("Tick returned a view after Stop")
	}

	c.Start()
	view, ok := c.Tick()
	if !ok || view.Title != "B" {
		t.Errorf("resumed tick = %q (ok=%v), want B", view.Title, ok)
	}
}

func TestCycler_EmptyPlaylist(t *testing.T) {
	c := New(nil)
	c.Start()
	if _, ok := c.Tick(); ok {
		t.Error("Tick returned a view from an empty playlist")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestPlaylist_Stock(t *testing.T) {
	cfg := config.DefaultConfig()

	views := Playlist(cfg)
	if len(views) != 4 {
		t.Fatalf("len(views) = %d, want 4 (three charts + OKR)", len(views))
	}
	if views[0].Table != model.TableAuM || views[0].Category != model.CategoryAuM {
		t.Errorf("views[0] = %+v, want the AuM chart", views[0])
	}
	if views[3].Kind != model.ViewOKR {
		t.Errorf("views[3].Kind = %v, want ViewOKR", views[3].Kind)
	}
}

func TestPlaylist_NoOKRSlide(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Presentation.IncludeOKR = false

	views := Playlist(cfg)
	if len(views) != 3 {
		t.Fatalf("len(views) = %d, want 3", len(views))
	}
	for _, v := range views {
		if v.Kind == model.ViewOKR {
			t.Errorf("OKR slide present despite include_okr=false")
		}
	}
}

func TestPlaylist_ConfiguredViews(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Presentation.IncludeOKR = false
	cfg.Presentation.Views = []config.ViewEntry{
		{Title: "Custom", Table: "budget", Category: "Revenues - Net of ECL", Cumulative: true},
	}

	views := Playlist(cfg)
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want 1", len(views))
	}
	v := views[0]
	if v.Title != "Custom" || v.Table != model.TableBudget || !v.Cumulative {
		t.Errorf("views[0] = %+v", v)
	}
}
