// Package differential isolates a unified model's understanding contribution
// by comparing two judging passes over the same generated content: the
// model's own answers (uni track) against an external understanding model's
// answers (gen track).
//
// Sign convention: delta = uni - gen. Positive means the unified model's own
// understanding outperforms the external judge on its own generations.
package differential

import (
	"fmt"
	"sort"

	"github.com/unieval-ai/unieval/api"
	"github.com/unieval-ai/unieval/taxonomy"
)

// Options configures track comparison.
type Options struct {
	// Mode selects how structural gaps are treated. api.Strict fails with
	// *api.TrackMismatchError when the two tracks cover different case sets
	// and with *api.EmptyGroupError on uncovered taxonomy tags; api.Lenient
	// skips the affected cases and surfaces them in the report.
	Mode api.Mode
}

// Compare pairs the two tracks case by case and rolls the {uni, gen, delta}
// triples up through the taxonomy with the same equal-tag weighting as the
// aggregate package.
func Compare(uni, gen []api.ScoreRecord, tax *taxonomy.Taxonomy, opts Options) (*api.DifferentialReport, error) {
	uniByID, err := indexTrack("uni", uni)
	if err != nil {
		return nil, err
	}
	genByID, err := indexTrack("gen", gen)
	if err != nil {
		return nil, err
	}

	var missingFromGen, missingFromUni []string
	for id := range uniByID {
		if _, ok := genByID[id]; !ok {
			missingFromGen = append(missingFromGen, id)
		}
	}
	for id := range genByID {
		if _, ok := uniByID[id]; !ok {
			missingFromUni = append(missingFromUni, id)
		}
	}
	// A case judged under different tags in the two tracks cannot be paired.
	for id, u := range uniByID {
		if g, ok := genByID[id]; ok && g.Tag != u.Tag {
			missingFromUni = append(missingFromUni, id)
			missingFromGen = append(missingFromGen, id)
			delete(uniByID, id)
			delete(genByID, id)
		}
	}
	sort.Strings(missingFromUni)
	sort.Strings(missingFromGen)

	if (len(missingFromUni) > 0 || len(missingFromGen) > 0) && opts.Mode == api.Strict {
		return nil, &api.TrackMismatchError{
			MissingFromUni: missingFromUni,
			MissingFromGen: missingFromGen,
		}
	}

	records, err := pair(uniByID, genByID, tax)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no case ids shared between tracks")
	}

	report := rollup(records, tax)
	report.Mismatched = mergeSorted(missingFromUni, missingFromGen)

	var notCovered []string
	for _, id := range tax.Level2IDs() {
		if _, ok := report.PerLevel2[id]; !ok {
			notCovered = append(notCovered, id)
		}
	}
	if len(notCovered) > 0 && opts.Mode == api.Strict {
		return nil, &api.EmptyGroupError{Tags: notCovered}
	}
	report.NotCovered = notCovered

	return report, nil
}

// Records returns the per-case differential records for the cases present in
// both tracks, sorted by case id. Useful for persisting an audit trail.
func Records(uni, gen []api.ScoreRecord) ([]api.DifferentialRecord, error) {
	uniByID, err := indexTrack("uni", uni)
	if err != nil {
		return nil, err
	}
	genByID, err := indexTrack("gen", gen)
	if err != nil {
		return nil, err
	}

	var out []api.DifferentialRecord
	for id, u := range uniByID {
		g, ok := genByID[id]
		if !ok || g.Tag != u.Tag {
			continue
		}
		out = append(out, api.DifferentialRecord{
			CaseID: id,
			Tag:    u.Tag,
			Uni:    u.CaseAccuracy,
			Gen:    g.CaseAccuracy,
			Delta:  u.CaseAccuracy - g.CaseAccuracy,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaseID < out[j].CaseID })
	return out, nil
}

func indexTrack(name string, records []api.ScoreRecord) (map[string]api.ScoreRecord, error) {
	byID := make(map[string]api.ScoreRecord, len(records))
	for _, rec := range records {
		if _, dup := byID[rec.CaseID]; dup {
			return nil, fmt.Errorf("duplicate case id %q in %s track", rec.CaseID, name)
		}
		byID[rec.CaseID] = rec
	}
	return byID, nil
}

func pair(uniByID, genByID map[string]api.ScoreRecord, tax *taxonomy.Taxonomy) ([]api.DifferentialRecord, error) {
	var records []api.DifferentialRecord
	for id, u := range uniByID {
		g, ok := genByID[id]
		if !ok {
			continue
		}
		if !tax.HasLevel2(u.Tag) {
			return nil, &api.UnknownTagError{CaseID: id, Tag: u.Tag}
		}
		records = append(records, api.DifferentialRecord{
			CaseID: id,
			Tag:    u.Tag,
			Uni:    u.CaseAccuracy,
			Gen:    g.CaseAccuracy,
			Delta:  u.CaseAccuracy - g.CaseAccuracy,
		})
	}
	return records, nil
}

func rollup(records []api.DifferentialRecord, tax *taxonomy.Taxonomy) *api.DifferentialReport {
	report := &api.DifferentialReport{
		PerLevel1: make(map[string]api.DeltaScore),
		PerLevel2: make(map[string]api.DeltaScore),
	}

	byTag := make(map[string][]api.DifferentialRecord)
	for _, rec := range records {
		byTag[rec.Tag] = append(byTag[rec.Tag], rec)
	}
	for tag, group := range byTag {
		var uniSum, genSum float64
		for _, rec := range group {
			uniSum += rec.Uni
			genSum += rec.Gen
		}
		n := float64(len(group))
		report.PerLevel2[tag] = api.DeltaScore{
			Uni:       uniSum / n,
			Gen:       genSum / n,
			Delta:     uniSum/n - genSum/n,
			CaseCount: len(group),
		}
	}

	var overallUni, overallGen float64
	level1Count := 0
	for _, l1 := range tax.Level1IDs() {
		var uniSum, genSum float64
		covered := 0
		for _, l2 := range tax.Level2Under(l1) {
			ds, ok := report.PerLevel2[l2]
			if !ok {
				continue
			}
			uniSum += ds.Uni
			genSum += ds.Gen
			covered++
		}
		if covered == 0 {
			continue
		}
		n := float64(covered)
		caseCount := 0
		for _, l2 := range tax.Level2Under(l1) {
			caseCount += report.PerLevel2[l2].CaseCount
		}
		report.PerLevel1[l1] = api.DeltaScore{
			Uni:       uniSum / n,
			Gen:       genSum / n,
			Delta:     uniSum/n - genSum/n,
			CaseCount: caseCount,
		}
		overallUni += uniSum / n
		overallGen += genSum / n
		level1Count++
	}

	n := float64(level1Count)
	report.Overall = api.DeltaScore{
		Uni:       overallUni / n,
		Gen:       overallGen / n,
		Delta:     overallUni/n - overallGen/n,
		CaseCount: len(records),
	}
	return report
}

func mergeSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, id := range append(append([]string{}, a...), b...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
