package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/unieval-ai/unieval"
	"github.com/unieval-ai/unieval/benchmark"
	"github.com/unieval-ai/unieval/internal/logging"
)

var scoreFlags struct {
	taxonomyPath  string
	casesPath     string
	responsesPath string
	strict        bool
	workers       int
	jsonOut       bool
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one track of responses and report the UniScore rollup",
	Long: `Score loads a taxonomy, benchmark cases, and one response file, extracts
a label from every raw answer, scores each case, and rolls the results up
through the taxonomy into a UniScore report.`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.taxonomyPath, "taxonomy", "", "Path to taxonomy YAML (required)")
	f.StringVar(&scoreFlags.casesPath, "cases", "", "Path to benchmark cases YAML (required)")
	f.StringVar(&scoreFlags.responsesPath, "responses", "", "Path to response YAML; omit to score responses embedded in the cases file")
	f.BoolVar(&scoreFlags.strict, "strict", false, "Error on uncovered taxonomy tags instead of reporting them")
	f.IntVar(&scoreFlags.workers, "workers", 0, "Parallel scoring workers (0 = sequential)")
	f.BoolVar(&scoreFlags.jsonOut, "json", false, "Emit the report as JSON instead of text")
	_ = scoreCmd.MarkFlagRequired("taxonomy")
	_ = scoreCmd.MarkFlagRequired("cases")
}

func runScore(cmd *cobra.Command, _ []string) error {
	runID := uuid.NewString()
	log := logging.New("score").With("run_id", runID)

	cases, tax, err := loadTrack(scoreFlags.taxonomyPath, scoreFlags.casesPath, scoreFlags.responsesPath, log)
	if err != nil {
		return err
	}

	mode := unieval.Lenient
	if scoreFlags.strict {
		mode = unieval.Strict
	}
	eval, err := unieval.NewEvaluator(
		unieval.WithTaxonomy(tax),
		unieval.WithMode(mode),
		unieval.WithWorkers(scoreFlags.workers),
	)
	if err != nil {
		return err
	}

	report, batch, err := eval.Evaluate(cases)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	for _, f := range batch.Failures {
		log.Warn("case skipped", "case_id", f.CaseID, "reason", f.Err.Error())
	}
	log.Info("scored", "cases", len(batch.Records), "skipped", len(batch.Failures), "overall", report.Overall)

	out := cmd.OutOrStdout()
	if scoreFlags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprint(out, FormatReport(report, runID, len(batch.Records), len(batch.Failures)))
	return nil
}

// loadTrack loads the taxonomy and cases and, when a response path is given,
// attaches its raw answers to the cases.
func loadTrack(taxonomyPath, casesPath, responsesPath string, log *slog.Logger) ([]unieval.CaseRecord, *unieval.Taxonomy, error) {
	tax, err := benchmark.LoadTaxonomyFile(taxonomyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load taxonomy: %w", err)
	}
	cases, err := benchmark.LoadCasesFile(casesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load cases: %w", err)
	}
	if responsesPath == "" {
		return cases, tax, nil
	}
	responses, err := benchmark.LoadResponsesFile(responsesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load responses: %w", err)
	}
	attached, orphans := benchmark.AttachResponses(cases, responses)
	for _, id := range orphans {
		log.Warn("response for unknown case", "case_id", id)
	}
	return attached, tax, nil
}
