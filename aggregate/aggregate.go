// Package aggregate rolls per-case scores up through the taxonomy.
//
// Level-1 scores are unweighted means of the level-2 means under them, and
// the overall score is the unweighted mean of the level-1 scores. This keeps
// every tag equally important regardless of how many cases populate it, so
// over-represented tags cannot dominate the rollup. Summation order within a
// group follows record order; permuting inputs may move the least-significant
// bits but nothing more.
package aggregate

import (
	"fmt"

	"github.com/unieval-ai/unieval/api"
	"github.com/unieval-ai/unieval/taxonomy"
)

// Options configures aggregation.
type Options struct {
	// Mode selects how taxonomy tags with zero cases are treated:
	// api.Strict fails with *api.EmptyGroupError, api.Lenient omits them
	// from the rollup and lists them in Report.NotCovered.
	Mode api.Mode
}

// Report groups records by level-2 tag and rolls them up into a Report.
// Every record's tag must exist in the taxonomy.
func Report(records []api.ScoreRecord, tax *taxonomy.Taxonomy, opts Options) (*api.Report, error) {
	byTag := make(map[string][]api.ScoreRecord)
	for _, rec := range records {
		if !tax.HasLevel2(rec.Tag) {
			return nil, &api.UnknownTagError{CaseID: rec.CaseID, Tag: rec.Tag}
		}
		byTag[rec.Tag] = append(byTag[rec.Tag], rec)
	}

	var notCovered []string
	for _, id := range tax.Level2IDs() {
		if len(byTag[id]) == 0 {
			notCovered = append(notCovered, id)
		}
	}
	if len(notCovered) > 0 && opts.Mode == api.Strict {
		return nil, &api.EmptyGroupError{Tags: notCovered}
	}
	if len(byTag) == 0 {
		return nil, fmt.Errorf("no score records to aggregate")
	}

	report := &api.Report{
		PerLevel1:  make(map[string]float64),
		PerLevel2:  make(map[string]api.TagScore),
		NotCovered: notCovered,
	}

	for id, group := range byTag {
		tag, _ := tax.Tag(id)
		var sum float64
		perfect := 0
		for _, rec := range group {
			sum += rec.CaseAccuracy
			if rec.Perfect {
				perfect++
			}
		}
		report.PerLevel2[id] = api.TagScore{
			Tag:              tag,
			CaseCount:        len(group),
			MeanCaseAccuracy: sum / float64(len(group)),
			PerfectRate:      float64(perfect) / float64(len(group)),
		}
	}

	// Level-1 rollup: mean over the covered level-2 means, not over raw cases.
	var overallSum float64
	level1Count := 0
	for _, l1 := range tax.Level1IDs() {
		var sum float64
		covered := 0
		for _, l2 := range tax.Level2Under(l1) {
			ts, ok := report.PerLevel2[l2]
			if !ok {
				continue
			}
			sum += ts.MeanCaseAccuracy
			covered++
		}
		if covered == 0 {
			continue
		}
		score := sum / float64(covered)
		report.PerLevel1[l1] = score
		overallSum += score
		level1Count++
	}
	report.Overall = overallSum / float64(level1Count)

	return report, nil
}
