package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/unieval-ai/unieval"
	"github.com/unieval-ai/unieval/internal/logging"
)

var diffFlags struct {
	taxonomyPath string
	casesPath    string
	uniPath      string
	genPath      string
	strict       bool
	workers      int
	jsonOut      bool
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the unified model's self-judging track against the external judge track",
	Long: `Diff scores two response files over the same benchmark cases and reports
the per-tag delta (uni - gen). A positive delta means the unified model's
own understanding outperforms the external judge on its generations.`,
	RunE: runDiff,
}

func init() {
	f := diffCmd.Flags()
	f.StringVar(&diffFlags.taxonomyPath, "taxonomy", "", "Path to taxonomy YAML (required)")
	f.StringVar(&diffFlags.casesPath, "cases", "", "Path to benchmark cases YAML (required)")
	f.StringVar(&diffFlags.uniPath, "responses-uni", "", "Path to the unified model's own responses (required)")
	f.StringVar(&diffFlags.genPath, "responses-gen", "", "Path to the external judge's responses (required)")
	f.BoolVar(&diffFlags.strict, "strict", false, "Error on track mismatches and uncovered tags instead of reporting them")
	f.IntVar(&diffFlags.workers, "workers", 0, "Parallel scoring workers (0 = sequential)")
	f.BoolVar(&diffFlags.jsonOut, "json", false, "Emit the report as JSON instead of text")
	_ = diffCmd.MarkFlagRequired("taxonomy")
	_ = diffCmd.MarkFlagRequired("cases")
	_ = diffCmd.MarkFlagRequired("responses-uni")
	_ = diffCmd.MarkFlagRequired("responses-gen")
}

func runDiff(cmd *cobra.Command, _ []string) error {
	runID := uuid.NewString()
	log := logging.New("diff").With("run_id", runID)

	uniCases, tax, err := loadTrack(diffFlags.taxonomyPath, diffFlags.casesPath, diffFlags.uniPath, log)
	if err != nil {
		return err
	}
	genCases, _, err := loadTrack(diffFlags.taxonomyPath, diffFlags.casesPath, diffFlags.genPath, log)
	if err != nil {
		return err
	}

	mode := unieval.Lenient
	if diffFlags.strict {
		mode = unieval.Strict
	}
	eval, err := unieval.NewEvaluator(
		unieval.WithTaxonomy(tax),
		unieval.WithMode(mode),
		unieval.WithWorkers(diffFlags.workers),
	)
	if err != nil {
		return err
	}

	uni := eval.Score(uniCases)
	gen := eval.Score(genCases)
	for _, f := range append(uni.Failures, gen.Failures...) {
		log.Warn("case skipped", "case_id", f.CaseID, "reason", f.Err.Error())
	}

	report, err := eval.Compare(uni.Records, gen.Records)
	if err != nil {
		return fmt.Errorf("compare tracks: %w", err)
	}
	log.Info("compared",
		"uni_cases", len(uni.Records),
		"gen_cases", len(gen.Records),
		"mismatched", len(report.Mismatched),
		"delta", report.Overall.Delta)

	out := cmd.OutOrStdout()
	if diffFlags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprint(out, FormatDifferentialReport(report, runID))
	return nil
}
