package pipeline

import (
	"math"
	"testing"

	"github.com/GregLauar/Progress-Dashboard/internal/model"
)

func TestSummarizeObjectives_Average(t *testing.T) {
	records := []model.ObjectiveRecord{
		{Objective: "Grow the book", ChildItem: "KR1", Progress: 0.2},
		{Objective: "Grow the book", ChildItem: "KR2", Progress: 0.4},
		{Objective: "Grow the book", ChildItem: "KR3", Progress: 0.6},
	}

	summaries := SummarizeObjectives(records)
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1", len(summaries))
	}
	if math.Abs(summaries[0].AvgProgress-0.4) > 1e-9 {
		t.Errorf("AvgProgress = %v, want 0.4", summaries[0].AvgProgress)
	}
	if len(summaries[0].Children) != 3 {
		t.Errorf("len(Children) = %d, want 3", len(summaries[0].Children))
	}
}

func TestSummarizeObjectives_KeepsSheetOrder(t *testing.T) {
	records := []model.ObjectiveRecord{
		{Objective: "B", ChildItem: "b1", Progress: 1},
		{Objective: "A", ChildItem: "a1", Progress: 0},
		{Objective: "B", ChildItem: "b2", Progress: 0},
	}

	summaries := SummarizeObjectives(records)
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}
	if summaries[0].Objective != "B" || summaries[1].Objective != "A" {
		t.Errorf("order = %q, %q, want B, A", summaries[0].Objective, summaries[1].Objective)
	}
	if summaries[0].AvgProgress != 0.5 {
		t.Errorf("AvgProgress = %v, want 0.5", summaries[0].AvgProgress)
	}
	if summaries[0].Children[0].ChildItem != "b1" || summaries[0].Children[1].ChildItem != "b2" {
		t.Errorf("children out of order: %+v", summaries[0].Children)
	}
}

func TestSummarizeObjectives_Empty(t *testing.T) {
	if got := SummarizeObjectives(nil); len(got) != 0 {
		t.Errorf("SummarizeObjectives(nil) = %v, want empty", got)
	}
}
