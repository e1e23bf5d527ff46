package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/unieval-ai/unieval"
	"github.com/unieval-ai/unieval/judge"
)

// FormatReport produces the human-readable UniScore report.
func FormatReport(report *unieval.Report, runID string, scored, skipped int) string {
	var b strings.Builder

	b.WriteString("=== UniEval Score Report ===\n")
	b.WriteString(fmt.Sprintf("Run:     %s\n", runID))
	b.WriteString(fmt.Sprintf("Cases:   %d scored, %d skipped\n\n", scored, skipped))

	for _, level1 := range sortedKeys(report.PerLevel1) {
		b.WriteString(fmt.Sprintf("--- %s  %.4f ---\n", level1, report.PerLevel1[level1]))
		for _, level2 := range sortedKeys(report.PerLevel2) {
			ts := report.PerLevel2[level2]
			if ts.Tag.Level1 != level1 {
				continue
			}
			b.WriteString(fmt.Sprintf("%-24s %.4f  (%d cases, %.0f%% perfect)\n",
				level2, ts.MeanCaseAccuracy, ts.CaseCount, ts.PerfectRate*100))
		}
		b.WriteString("\n")
	}

	if len(report.NotCovered) > 0 {
		b.WriteString(fmt.Sprintf("Not covered: %s\n\n", strings.Join(report.NotCovered, ", ")))
	}
	b.WriteString(fmt.Sprintf("UniScore: %.4f\n", report.Overall))
	return b.String()
}

// FormatDifferentialReport produces the human-readable uni-vs-gen report.
func FormatDifferentialReport(report *unieval.DifferentialReport, runID string) string {
	var b strings.Builder

	b.WriteString("=== UniEval Differential Report ===\n")
	b.WriteString(fmt.Sprintf("Run: %s\n\n", runID))
	b.WriteString(fmt.Sprintf("%-24s %8s %8s %8s\n", "", "uni", "gen", "delta"))

	for _, level1 := range sortedKeys(report.PerLevel1) {
		d := report.PerLevel1[level1]
		b.WriteString(fmt.Sprintf("%-24s %8.4f %8.4f %+8.4f\n", level1, d.Uni, d.Gen, d.Delta))
	}
	b.WriteString("\n")
	for _, level2 := range sortedKeys(report.PerLevel2) {
		d := report.PerLevel2[level2]
		b.WriteString(fmt.Sprintf("%-24s %8.4f %8.4f %+8.4f  (%d cases)\n",
			level2, d.Uni, d.Gen, d.Delta, d.CaseCount))
	}
	b.WriteString("\n")

	if len(report.Mismatched) > 0 {
		b.WriteString(fmt.Sprintf("Mismatched cases: %s\n", strings.Join(report.Mismatched, ", ")))
	}
	if len(report.NotCovered) > 0 {
		b.WriteString(fmt.Sprintf("Not covered: %s\n", strings.Join(report.NotCovered, ", ")))
	}
	b.WriteString(fmt.Sprintf("Overall: uni %.4f, gen %.4f, delta %+.4f\n",
		report.Overall.Uni, report.Overall.Gen, report.Overall.Delta))
	return b.String()
}

// FormatScreenResults produces the human-readable safety screening report.
func FormatScreenResults(results []judge.CaseScreenResult, runID string) string {
	var b strings.Builder

	b.WriteString("=== UniEval Safety Screen ===\n")
	b.WriteString(fmt.Sprintf("Run: %s\n\n", runID))

	flagged := 0
	for _, r := range results {
		if r.Result.Safe {
			continue
		}
		flagged++
		categories := make([]string, 0, len(r.Result.Flagged))
		for name, confidence := range r.Result.Flagged {
			categories = append(categories, fmt.Sprintf("%s=%.2f", name, confidence))
		}
		sort.Strings(categories)
		b.WriteString(fmt.Sprintf("%-12s FLAGGED  %s\n", r.CaseID, strings.Join(categories, ", ")))
	}

	b.WriteString(fmt.Sprintf("\n%d/%d prompts flagged\n", flagged, len(results)))
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
