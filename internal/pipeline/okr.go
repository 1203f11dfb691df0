package pipeline

import "github.com/GregLauar/Progress-Dashboard/internal/model"

// SummarizeObjectives averages progress per objective and collects each
// objective's key results. The average is an unweighted arithmetic mean;
// objectives and children keep their sheet order.
func SummarizeObjectives(records []model.ObjectiveRecord) []model.ObjectiveSummary {
	index := make(map[string]int)
	var summaries []model.ObjectiveSummary

	for _, r := range records {
		i, ok := index[r.Objective]
		if !ok {
			i = len(summaries)
			index[r.Objective] = i
			summaries = append(summaries, model.ObjectiveSummary{Objective: r.Objective})
		}
		summaries[i].Children = append(summaries[i].Children, r)
	}

	for i := range summaries {
		var sum float64
		for _, c := range summaries[i].Children {
			sum += c.Progress
		}
		summaries[i].AvgProgress = sum / float64(len(summaries[i].Children))
	}

	return summaries
}
